package zork

// State is the full snapshot returned by Reset and Step. Collaborators
// (planners, the MCP surface, the TUI) consume this record and nothing else.
type State struct {
	Observation  string   `json:"observation"`
	Score        int      `json:"score"`
	Done         bool     `json:"done"`
	Moves        int      `json:"moves"`
	ValidActions []string `json:"valid_actions"`
	Inventory    string   `json:"inventory"`
	Location     string   `json:"location"`
}

// Location tags used in the object state table alongside room ids.
const (
	LocInventory = "inventory"
	LocInMailbox = "in_mailbox"
)

// ObjectState holds the mutable per-object flags. Which flags are meaningful
// depends on the object kind; the zero value is a closed, unlit, unread,
// unmoved object.
type ObjectState struct {
	Location string
	Open     bool
	On       bool
	Read     bool
	Moved    bool
}

// ObjectTable is the single source of truth for where every object is and
// what state it is in. Callers validate transitions before mutating; the
// table itself enforces nothing beyond the one-location-per-object shape,
// which holds structurally because location is a single field.
type ObjectTable struct {
	objects map[string]*ObjectState
}

func NewObjectTable() *ObjectTable {
	return &ObjectTable{objects: make(map[string]*ObjectState)}
}

// Locate returns the current location tag for an object: a room id,
// LocInventory, or a container tag such as LocInMailbox. The second result
// is false for ids with no state entry (inert scenery like the kitchen
// table, which is anchored to a room but never visible or interactive).
func (t *ObjectTable) Locate(id string) (string, bool) {
	st, ok := t.objects[id]
	if !ok {
		return "", false
	}
	return st.Location, true
}

// Move reassigns an object's location. The caller must already have
// validated the transition.
func (t *ObjectTable) Move(id, location string) {
	if st, ok := t.objects[id]; ok {
		st.Location = location
	}
}

func (t *ObjectTable) SetOpen(id string, open bool) {
	if st, ok := t.objects[id]; ok {
		st.Open = open
	}
}

func (t *ObjectTable) SetOn(id string, on bool) {
	if st, ok := t.objects[id]; ok {
		st.On = on
	}
}

func (t *ObjectTable) SetRead(id string, read bool) {
	if st, ok := t.objects[id]; ok {
		st.Read = read
	}
}

func (t *ObjectTable) SetMoved(id string, moved bool) {
	if st, ok := t.objects[id]; ok {
		st.Moved = moved
	}
}

// IsOpen and friends are read-side accessors for the kind handlers.
func (t *ObjectTable) IsOpen(id string) bool  { return t.flag(id, func(s *ObjectState) bool { return s.Open }) }
func (t *ObjectTable) IsOn(id string) bool    { return t.flag(id, func(s *ObjectState) bool { return s.On }) }
func (t *ObjectTable) IsRead(id string) bool  { return t.flag(id, func(s *ObjectState) bool { return s.Read }) }
func (t *ObjectTable) IsMoved(id string) bool { return t.flag(id, func(s *ObjectState) bool { return s.Moved }) }

func (t *ObjectTable) flag(id string, get func(*ObjectState) bool) bool {
	st, ok := t.objects[id]
	if !ok {
		return false
	}
	return get(st)
}

// IDs returns every object id with a state entry, in no particular order.
func (t *ObjectTable) IDs() []string {
	ids := make([]string, 0, len(t.objects))
	for id := range t.objects {
		ids = append(ids, id)
	}
	return ids
}
