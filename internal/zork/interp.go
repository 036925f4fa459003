package zork

import (
	"fmt"
	"strings"
)

var movementVerbs = map[string]bool{
	"go": true, "walk": true, "move": true, "enter": true,
	"north": true, "south": true, "east": true, "west": true,
	"up": true, "down": true,
}

// dispatch classifies a lowercased command by verb and routes it to the
// matching handler. Order matters: object "move"/"lift" actions win over
// movement, and a bare "look" wins over "look at <obj>".
func (e *Environment) dispatch(action string) string {
	words := strings.Fields(action)
	if len(words) == 0 {
		return msgDontUnderstand
	}

	verb := words[0]
	object := ""
	if len(words) > 1 {
		object = words[len(words)-1]
	}

	switch {
	case (verb == "move" || verb == "lift") && isMovable(object):
		return e.handleShift(object)

	case movementVerbs[verb] || e.hasExitDirection(verb):
		return e.handleMovement(words)

	case (verb == "look" || verb == "l") && len(words) == 1:
		return e.describeLocation()

	case (verb == "examine" || verb == "look") && object != "" && object != "at":
		return e.handleExamine(object)

	case verb == "inventory" || verb == "i":
		return e.formatInventory()

	case verb == "take" || verb == "get" || verb == "pick":
		return e.handleTake(object)

	case verb == "drop" || verb == "put":
		return e.handleDrop(object)

	case verb == "open":
		return e.handleOpen(object)

	case verb == "close":
		return e.handleClose(object)

	case verb == "turn" && len(words) > 1:
		switch words[1] {
		case "on":
			return e.handleTurnOn(object)
		case "off":
			return e.handleTurnOff(object)
		}
		return msgDontUnderstand

	case verb == "read":
		return e.handleRead(object)

	case verb == "score":
		return fmt.Sprintf("Your score is %d (in %d moves).", e.score, e.moves)

	case verb == "help":
		return helpText

	default:
		return msgDontUnderstand
	}
}

func isMovable(id string) bool {
	_, ok := objectKinds[id].(Movable)
	return ok
}

func (e *Environment) hasExitDirection(word string) bool {
	_, ok := e.world.Exit(e.location, word)
	return ok
}

func (e *Environment) handleMovement(words []string) string {
	direction := words[0]

	if direction == "go" || direction == "move" || direction == "walk" || direction == "enter" {
		if len(words) == 1 {
			return "Go where?"
		}
		direction = words[len(words)-1]
	}

	// "enter window" and "go through window" both mean the window exit.
	if (contains(words, "enter") || contains(words, "through")) && contains(words, "window") {
		direction = "window"
	}

	dest, ok := e.world.Exit(e.location, direction)
	if !ok {
		return "You can't go that way."
	}
	if dest == "" {
		if e.location == "living_room" && direction == "west" {
			return "The door is nailed shut."
		}
		return "You can't go that way."
	}

	e.location = dest
	return e.describeLocation()
}

func (e *Environment) handleExamine(id string) string {
	if !e.isVisible(id) && !e.holding(id) {
		return msgDontSee
	}
	if kind, ok := objectKinds[id]; ok {
		return kind.Examine(e)
	}
	return fmt.Sprintf("You see nothing special about the %s.", id)
}

func (e *Environment) handleTake(id string) string {
	if !e.isVisible(id) {
		return msgDontSee
	}
	if e.holding(id) {
		return "You're already carrying that."
	}
	// Fixed-in-place objects provide no take behavior.
	portable, ok := objectKinds[id].(Portable)
	if !ok {
		return "You can't take that."
	}
	// Contained objects are only reachable through an open container; the
	// visibility check above already enforces that, but a closed container
	// keeps its own refusal message.
	if loc, _ := e.objects.Locate(id); loc == LocInMailbox && !e.objects.IsOpen("mailbox") {
		return "The mailbox is closed."
	}
	return portable.Take(e)
}

func (e *Environment) handleDrop(id string) string {
	if !e.holding(id) {
		return "You're not carrying that."
	}
	for i, held := range e.inventory {
		if held == id {
			e.inventory = append(e.inventory[:i], e.inventory[i+1:]...)
			break
		}
	}
	e.objects.Move(id, e.location)
	return "Dropped."
}

func (e *Environment) handleOpen(id string) string {
	if !e.isVisible(id) && !e.holding(id) {
		return msgDontSee
	}
	openable, ok := objectKinds[id].(Openable)
	if !ok {
		return "You can't open that."
	}
	return openable.Open(e)
}

func (e *Environment) handleClose(id string) string {
	if !e.isVisible(id) && !e.holding(id) {
		return msgDontSee
	}
	closeable, ok := objectKinds[id].(Closeable)
	if !ok {
		return "You can't close that."
	}
	return closeable.Close(e)
}

func (e *Environment) handleTurnOn(id string) string {
	toggleable, ok := objectKinds[id].(Toggleable)
	if !ok {
		return msgDontUnderstand
	}
	return toggleable.TurnOn(e)
}

func (e *Environment) handleTurnOff(id string) string {
	toggleable, ok := objectKinds[id].(Toggleable)
	if !ok {
		return msgDontUnderstand
	}
	return toggleable.TurnOff(e)
}

func (e *Environment) handleRead(id string) string {
	if !e.isVisible(id) && !e.holding(id) {
		return msgDontSee
	}
	readable, ok := objectKinds[id].(Readable)
	if !ok {
		return fmt.Sprintf("There's nothing written on the %s.", id)
	}
	return readable.Read(e)
}

func (e *Environment) handleShift(id string) string {
	if !e.isVisible(id) {
		return msgDontSee
	}
	return objectKinds[id].(Movable).Shift(e)
}

func contains(words []string, word string) bool {
	for _, w := range words {
		if w == word {
			return true
		}
	}
	return false
}
