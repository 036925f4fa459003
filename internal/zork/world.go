package zork

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed world.yaml
var worldYAML []byte

// World holds the map topology for one play session. Rooms and exits are
// fixed at construction with a single exception: moving the rug connects
// living_room to the cellar (see Connect).
type World struct {
	Start    string
	MaxMoves int
	Rooms    map[string]*Room
	Dark     map[string]bool

	initialStates map[string]ObjectState
}

// Room is one node in the map graph. An exit whose destination is the empty
// string is a blocked passage: the direction is known but cannot be
// travelled.
type Room struct {
	Description string
	Exits       map[string]string
	Objects     []string
}

type worldDef struct {
	Start    string   `yaml:"start"`
	MaxMoves int      `yaml:"max_moves"`
	DarkRooms []string `yaml:"dark_rooms"`
	Rooms    map[string]struct {
		Description string            `yaml:"description"`
		Exits       map[string]string `yaml:"exits"`
		Objects     []string          `yaml:"objects"`
	} `yaml:"rooms"`
	Objects map[string]struct {
		Location string `yaml:"location"`
		Open     bool   `yaml:"open"`
	} `yaml:"objects"`
}

var (
	defOnce sync.Once
	def     worldDef
	defErr  error
)

func loadWorldDef() (worldDef, error) {
	defOnce.Do(func() {
		defErr = yaml.Unmarshal(worldYAML, &def)
		if defErr != nil {
			defErr = fmt.Errorf("parse embedded world definition: %w", defErr)
		}
	})
	return def, defErr
}

// NewWorld builds a fresh copy of the fixed starting map. Each session owns
// its own copy so that the rug mutation never leaks between sessions.
func NewWorld() *World {
	d, err := loadWorldDef()
	if err != nil {
		// The world definition is a compiled-in asset; failing to parse it
		// is a build defect, not a runtime condition.
		panic(err)
	}

	w := &World{
		Start:         d.Start,
		MaxMoves:      d.MaxMoves,
		Rooms:         make(map[string]*Room, len(d.Rooms)),
		Dark:          make(map[string]bool, len(d.DarkRooms)),
		initialStates: make(map[string]ObjectState, len(d.Objects)),
	}
	for id, rd := range d.Rooms {
		room := &Room{
			Description: rd.Description,
			Exits:       make(map[string]string, len(rd.Exits)),
			Objects:     append([]string(nil), rd.Objects...),
		}
		for dir, dest := range rd.Exits {
			// A destination with no room definition is a blocked passage,
			// same as an explicitly empty one. Movement must never land the
			// player in a room the map cannot describe.
			if _, defined := d.Rooms[dest]; !defined {
				dest = ""
			}
			room.Exits[dir] = dest
		}
		w.Rooms[id] = room
	}
	for _, id := range d.DarkRooms {
		w.Dark[id] = true
	}
	for id, od := range d.Objects {
		w.initialStates[id] = ObjectState{Location: od.Location, Open: od.Open}
	}
	return w
}

// Exit reports the destination for a direction from a room. ok is false when
// the room has no such direction at all; a blocked exit returns ok true with
// an empty destination.
func (w *World) Exit(roomID, direction string) (dest string, ok bool) {
	room, exists := w.Rooms[roomID]
	if !exists {
		return "", false
	}
	dest, ok = room.Exits[direction]
	return dest, ok
}

// Connect adds or unblocks an exit. This is the one sanctioned topology
// mutation; only the rug handler calls it.
func (w *World) Connect(roomID, direction, dest string) {
	if room, ok := w.Rooms[roomID]; ok {
		room.Exits[direction] = dest
	}
}

// InitialTable builds the object state table for a fresh session.
func (w *World) InitialTable() *ObjectTable {
	t := NewObjectTable()
	for id, st := range w.initialStates {
		s := st
		t.objects[id] = &s
	}
	return t
}
