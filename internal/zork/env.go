// Package zork implements a small simulated slice of the Zork world: a graph
// of rooms, objects with mutable state, an inventory, a free-text command
// interpreter, and the darkness/grue hazard. It stands in for a real game
// interpreter behind a fixed reset/step contract so that agents can be
// developed against deterministic state.
package zork

import (
	"fmt"
	"strings"
)

const (
	msgDontUnderstand = "I don't understand that command."
	msgMaxMoves       = "You have exceeded the maximum number of moves."
	msgGrueWarning    = "It is pitch black. You are likely to be eaten by a grue."
	msgGrueDeath      = "Oh, no! You have walked into the slavering fangs of a lurking grue!\n\n***** You have died *****"
	msgPitchBlack     = "It is pitch black."
	msgDontSee        = "You don't see that here."

	helpText = "Some useful commands:\n" +
		"- Movement: north, south, east, west, up, down\n" +
		"- Actions: look, examine [object], take [object], drop [object]\n" +
		"- Inventory: inventory or i\n" +
		"- Object interaction: open [object], close [object], read [object]\n" +
		"- Lamp: turn on lamp, turn off lamp\n" +
		"- Other: score, help"
)

// Environment is one play session. It owns all mutable state and processes
// each Step to completion before the next; it has no internal locking, so
// concurrent callers need separate instances or external synchronization.
type Environment struct {
	world     *World
	objects   *ObjectTable
	location  string
	inventory []string

	score      int
	moves      int
	gameOver   bool
	grueWarned bool
}

// New returns an environment in the fixed starting configuration. Equivalent
// to constructing and immediately discarding the result of Reset.
func New() *Environment {
	e := &Environment{}
	e.rebuild()
	return e
}

func (e *Environment) rebuild() {
	e.world = NewWorld()
	e.objects = e.world.InitialTable()
	e.location = e.world.Start
	e.inventory = nil
	e.score = 0
	e.moves = 0
	e.gameOver = false
	e.grueWarned = false
}

// Reset discards all session state and returns the initial snapshot: player
// west of the house, empty inventory, score 0, moves 0.
func (e *Environment) Reset() State {
	e.rebuild()
	return e.snapshot(e.describeLocation())
}

// Step applies one free-text command and returns the resulting snapshot.
// The move counter increments on every call, including unrecognized or
// refused commands. Malformed input never errors; it yields the canned
// don't-understand observation with no state change.
func (e *Environment) Step(command string) State {
	e.moves++

	if e.moves >= e.world.MaxMoves {
		e.gameOver = true
		return State{
			Observation:  msgMaxMoves,
			Score:        e.score,
			Done:         true,
			Moves:        e.moves,
			ValidActions: []string{},
			Inventory:    e.formatInventory(),
			Location:     e.location,
		}
	}

	result := e.dispatch(strings.ToLower(command))

	// Darkness hazard. One warning per session; after that, every move
	// divisible by three spent in the dark without light is fatal. This is
	// a deterministic counter, not a dice roll.
	if e.world.Dark[e.location] && !e.hasLight() {
		switch {
		case !e.grueWarned && !strings.Contains(result, "grue"):
			e.grueWarned = true
			result = msgGrueWarning + "\n\n" + result
		case e.grueWarned && e.moves%3 == 0:
			e.gameOver = true
			result = msgGrueDeath
		}
	}

	return e.snapshot(result)
}

func (e *Environment) snapshot(observation string) State {
	return State{
		Observation:  observation,
		Score:        e.score,
		Done:         e.gameOver,
		Moves:        e.moves,
		ValidActions: e.ValidActions(),
		Inventory:    e.formatInventory(),
		Location:     e.location,
	}
}

// hasLight reports whether the player carries an active light source. The
// lamp is the only one.
func (e *Environment) hasLight() bool {
	return e.holding("lamp") && e.objects.IsOn("lamp")
}

func (e *Environment) holding(id string) bool {
	for _, held := range e.inventory {
		if held == id {
			return true
		}
	}
	return false
}

func (e *Environment) leafletInMailbox() bool {
	loc, _ := e.objects.Locate("leaflet")
	return e.objects.IsOpen("mailbox") && loc == LocInMailbox
}

// takeIntoInventory performs the location transfer for a validated take.
func (e *Environment) takeIntoInventory(id string) {
	e.objects.Move(id, LocInventory)
	e.inventory = append(e.inventory, id)
}

// visibleObjects lists the objects the player can currently interact with in
// the room: objects physically located here (nothing in the dark without
// light) plus anything revealed by an open container. Held objects are not
// part of this list.
func (e *Environment) visibleObjects() []string {
	if e.world.Dark[e.location] && !e.hasLight() {
		return nil
	}

	var visible []string
	room, ok := e.world.Rooms[e.location]
	if !ok {
		return nil
	}
	for _, id := range room.Objects {
		if loc, tracked := e.objects.Locate(id); tracked && loc == e.location {
			visible = append(visible, id)
		}
	}
	for _, id := range visible {
		if container, ok := objectKinds[id].(Container); ok {
			visible = append(visible, container.Reveals(e)...)
		}
	}
	return visible
}

func (e *Environment) isVisible(id string) bool {
	for _, v := range e.visibleObjects() {
		if v == id {
			return true
		}
	}
	return false
}

// describeLocation renders the current room: its static description plus one
// annotation block for each visible object. In the dark it is just black.
func (e *Environment) describeLocation() string {
	if e.world.Dark[e.location] && !e.hasLight() {
		return msgPitchBlack
	}

	room := e.world.Rooms[e.location]
	description := room.Description

	var lines []string
	for _, id := range room.Objects {
		loc, tracked := e.objects.Locate(id)
		if !tracked || loc != e.location {
			continue
		}
		lines = append(lines, objectKinds[id].RoomLines(e)...)
	}
	if len(lines) > 0 {
		description += "\n\n" + strings.Join(lines, "\n")
	}
	return description
}

// formatInventory renders the carried-items list.
func (e *Environment) formatInventory() string {
	if len(e.inventory) == 0 {
		return "You are not carrying anything."
	}

	var b strings.Builder
	b.WriteString("You are carrying:")
	for _, id := range e.inventory {
		b.WriteString("\n")
		if portable, ok := objectKinds[id].(Portable); ok {
			b.WriteString(portable.InventoryLine(e))
		} else {
			b.WriteString(fmt.Sprintf("  %s", id))
		}
	}
	return b.String()
}
