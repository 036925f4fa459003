package zork

import "fmt"

// Object is the behavior shared by every interactive thing in the world.
// Kind-specific behavior hangs off the optional capability interfaces below;
// the command handlers type-switch on capabilities instead of on object ids,
// so adding a new kind means adding a type here, not editing every handler.
type Object interface {
	ID() string
	// Examine returns the description shown for "examine <obj>".
	Examine(e *Environment) string
	// RoomLines returns the annotation lines appended to a room description
	// while the object sits in that room. Empty means no annotation.
	RoomLines(e *Environment) []string
}

// Openable objects respond to "open".
type Openable interface {
	Open(e *Environment) string
}

// Closeable objects respond to "close".
type Closeable interface {
	Close(e *Environment) string
}

// Toggleable objects respond to "turn on" / "turn off".
type Toggleable interface {
	TurnOn(e *Environment) string
	TurnOff(e *Environment) string
}

// Readable objects respond to "read".
type Readable interface {
	Read(e *Environment) string
}

// Movable objects respond to "move" / "lift" as an object action rather than
// a movement command.
type Movable interface {
	Shift(e *Environment) string
}

// Portable objects can be picked up. Take performs the transfer itself (or
// refuses) and returns the response line; InventoryLine is the entry shown
// in the carried-items list.
type Portable interface {
	Take(e *Environment) string
	InventoryLine(e *Environment) string
}

// Container objects can reveal further object ids when inspected in a room.
type Container interface {
	Reveals(e *Environment) []string
}

// objectKinds maps object ids to their behavior. Ids anchored in rooms but
// absent here (table, sack, nest) are inert scenery and never interactive.
var objectKinds = map[string]Object{
	"mailbox":     mailbox{},
	"leaflet":     leaflet{},
	"lamp":        lamp{},
	"sword":       sword{},
	"trophy_case": trophyCase{},
	"rug":         rug{},
	"egg":         egg{},
	"water":       water{},
}

type mailbox struct{}

func (mailbox) ID() string { return "mailbox" }

func (mailbox) Examine(e *Environment) string {
	status := "closed"
	if e.objects.IsOpen("mailbox") {
		status = "open"
	}
	description := fmt.Sprintf("It's a small %s mailbox.", status)
	if e.leafletInMailbox() {
		description += " There is a small leaflet inside."
	}
	return description
}

func (mailbox) RoomLines(e *Environment) []string {
	status := "closed"
	if e.objects.IsOpen("mailbox") {
		status = "open"
	}
	lines := []string{fmt.Sprintf("There is a %s mailbox here.", status)}
	if e.leafletInMailbox() {
		lines = append(lines, "There is a small leaflet in the mailbox.")
	}
	return lines
}

func (mailbox) Open(e *Environment) string {
	if e.objects.IsOpen("mailbox") {
		return "It's already open."
	}
	e.objects.SetOpen("mailbox", true)
	if loc, _ := e.objects.Locate("leaflet"); loc == LocInMailbox {
		return "Opening the mailbox reveals a small leaflet."
	}
	return "Opened."
}

func (mailbox) Close(e *Environment) string {
	if !e.objects.IsOpen("mailbox") {
		return "It's already closed."
	}
	e.objects.SetOpen("mailbox", false)
	return "Closed."
}

func (mailbox) Reveals(e *Environment) []string {
	if e.leafletInMailbox() {
		return []string{"leaflet"}
	}
	return nil
}

type leaflet struct{}

func (leaflet) ID() string { return "leaflet" }

func (leaflet) Examine(*Environment) string {
	return "A small leaflet. It appears to contain instructions."
}

func (leaflet) RoomLines(*Environment) []string {
	return []string{"There is a leaflet here."}
}

func (leaflet) Take(e *Environment) string {
	e.takeIntoInventory("leaflet")
	return "Taken."
}

func (leaflet) InventoryLine(*Environment) string {
	return "  A small leaflet"
}

func (leaflet) Read(e *Environment) string {
	if !e.objects.IsRead("leaflet") {
		e.objects.SetRead("leaflet", true)
		e.score++ // first read only
	}
	return "WELCOME TO ZORK!\n\n" +
		"ZORK is a game of adventure, danger, and low cunning. " +
		"In it you will explore some of the most amazing territory ever seen by mortals. " +
		"No computer should be without one!"
}

type lamp struct{}

func (lamp) ID() string { return "lamp" }

func (lamp) Examine(e *Environment) string {
	status := "off"
	if e.objects.IsOn("lamp") {
		status = "on"
	}
	return fmt.Sprintf("It's a brass lamp. It is currently %s.", status)
}

func (lamp) RoomLines(e *Environment) []string {
	status := "turned off"
	if e.objects.IsOn("lamp") {
		status = "lit"
	}
	return []string{fmt.Sprintf("There is a brass lamp here (%s).", status)}
}

func (lamp) Take(e *Environment) string {
	e.takeIntoInventory("lamp")
	return "Taken."
}

func (lamp) InventoryLine(e *Environment) string {
	status := " (turned off)"
	if e.objects.IsOn("lamp") {
		status = " (providing light)"
	}
	return "  A brass lamp" + status
}

func (lamp) TurnOn(e *Environment) string {
	if !e.holding("lamp") {
		return "You're not carrying that."
	}
	if e.objects.IsOn("lamp") {
		return "The lamp is already on."
	}
	e.objects.SetOn("lamp", true)
	return "The lamp is now on and providing light."
}

func (lamp) TurnOff(e *Environment) string {
	if !e.holding("lamp") {
		return "You're not carrying that."
	}
	if !e.objects.IsOn("lamp") {
		return "The lamp is already off."
	}
	e.objects.SetOn("lamp", false)
	if e.world.Dark[e.location] {
		return "The lamp is now off. It is pitch black."
	}
	return "The lamp is now off."
}

type sword struct{}

func (sword) ID() string { return "sword" }

func (sword) Examine(*Environment) string {
	return "The sword is made of Elvish workmanship with strange runes on the blade."
}

func (sword) RoomLines(*Environment) []string {
	return []string{"There is a sword of Elvish workmanship here."}
}

func (sword) Take(e *Environment) string {
	e.takeIntoInventory("sword")
	return "Taken."
}

func (sword) InventoryLine(*Environment) string {
	return "  A sword of Elvish workmanship"
}

type trophyCase struct{}

func (trophyCase) ID() string { return "trophy_case" }

func (trophyCase) Examine(*Environment) string {
	return "The trophy case is empty and waiting for treasures."
}

func (trophyCase) RoomLines(*Environment) []string {
	return []string{"There is a trophy case here."}
}

// The trophy case starts open and stays open.
func (trophyCase) Open(*Environment) string {
	return "The trophy case is already open."
}

type rug struct{}

func (rug) ID() string { return "rug" }

func (rug) Examine(e *Environment) string {
	status := "lying in the center of the room"
	if e.objects.IsMoved("rug") {
		status = "moved aside, revealing a trapdoor"
	}
	return fmt.Sprintf("It's a large oriental rug, %s.", status)
}

func (rug) RoomLines(e *Environment) []string {
	status := "lying in the center of the room"
	if e.objects.IsMoved("rug") {
		status = "moved aside"
	}
	return []string{fmt.Sprintf("There is a large oriental rug %s.", status)}
}

func (rug) Shift(e *Environment) string {
	if e.objects.IsMoved("rug") {
		return "The rug has already been moved aside."
	}
	e.objects.SetMoved("rug", true)
	e.score += 2
	// The one dynamic topology change in the game.
	e.world.Connect("living_room", "down", "cellar")
	return "You move the rug aside, revealing a closed trapdoor in the floor."
}

type egg struct{}

func (egg) ID() string { return "egg" }

func (egg) Examine(*Environment) string {
	return "The egg is covered with fine gold inlay, and is extremely valuable."
}

func (egg) RoomLines(*Environment) []string {
	return []string{"There is a egg here."}
}

func (egg) Take(e *Environment) string {
	e.takeIntoInventory("egg")
	// No already-scored flag: dropping and retaking the egg re-awards the
	// treasure points. Observed behavior, kept as-is.
	e.score += 5
	return "Taken."
}

func (egg) InventoryLine(*Environment) string {
	return "  A jewel-encrusted egg"
}

type water struct{}

func (water) ID() string { return "water" }

func (water) Examine(*Environment) string {
	return "The water is clear and refreshing."
}

func (water) RoomLines(*Environment) []string {
	return []string{"There is a water here."}
}

func (water) Take(*Environment) string {
	return "The water slips through your fingers."
}

func (water) InventoryLine(*Environment) string {
	return "  water"
}
