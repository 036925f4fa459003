package zork

import "fmt"

// directionOrder fixes the enumeration order for exits; map iteration order
// would make ValidActions nondeterministic between calls.
var directionOrder = []string{"north", "south", "east", "west", "up", "down", "window"}

// ValidActions enumerates every command accepted in the current state. The
// list is recomputed from scratch each turn and is what external planners
// use to constrain their choices.
func (e *Environment) ValidActions() []string {
	var actions []string

	room := e.world.Rooms[e.location]
	for _, direction := range directionOrder {
		dest, ok := room.Exits[direction]
		if !ok || dest == "" {
			continue
		}
		if direction == "window" {
			actions = append(actions, "enter window", "go through window")
		} else {
			actions = append(actions, "go "+direction, direction)
		}
	}

	for _, id := range e.visibleObjects() {
		actions = append(actions,
			"examine "+id,
			"look at "+id,
		)
		if !e.holding(id) {
			actions = append(actions, "take "+id, "get "+id)
		}
		actions = append(actions, e.objectActions(id, false)...)
	}

	for _, id := range e.inventory {
		actions = append(actions,
			"examine "+id,
			"look at "+id,
			fmt.Sprintf("drop %s", id),
		)
		actions = append(actions, e.objectActions(id, true)...)
	}

	actions = append(actions, "look", "inventory", "i", "help", "score")
	return actions
}

// objectActions lists the kind-specific commands for one object, split by
// whether the object is held (the lamp can only be toggled in hand).
func (e *Environment) objectActions(id string, held bool) []string {
	kind, ok := objectKinds[id]
	if !ok {
		return nil
	}

	var actions []string
	if _, ok := kind.(Openable); ok && !held {
		actions = append(actions, "open "+id)
	}
	if _, ok := kind.(Closeable); ok && !held {
		actions = append(actions, "close "+id)
	}
	if _, ok := kind.(Toggleable); ok && held {
		actions = append(actions, "turn on "+id, "turn off "+id)
	}
	if _, ok := kind.(Readable); ok {
		actions = append(actions, "read "+id)
	}
	if _, ok := kind.(Movable); ok && !held {
		actions = append(actions, "move "+id, "lift "+id)
	}
	return actions
}
