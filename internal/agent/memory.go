package agent

import (
	"fmt"
	"strings"
	"time"

	"zorkagent/internal/zork"
)

// Observation is one environment response as the agent remembers it.
type Observation struct {
	Timestamp time.Time
	Text      string
	Location  string
	Score     int
	Moves     int
}

// Action is one command the agent issued, with a rough success verdict.
type Action struct {
	Timestamp   time.Time
	Text        string
	Success     bool
	Location    string
	ScoreChange int
}

// Event is a single entry in the combined history timeline.
type Event struct {
	Type      string // "observation" or "action"
	Timestamp time.Time
	Content   string
	Location  string
	Success   bool
}

// refusal phrases used to judge whether an action did anything
var refusalMarkers = []string{
	"you can't", "you don't", "i don't", "nothing happens",
}

// Memory is the agent's record of the session: a chronological log of
// observations and actions plus derived state (current location, visited
// locations, a parsed inventory).
type Memory struct {
	observations []Observation
	actions      []Action

	CurrentLocation   string
	previousLocations []string
	inventory         []string
	Score             int
	Moves             int

	createdAt   time.Time
	lastUpdated time.Time
}

func NewMemory() *Memory {
	now := time.Now()
	return &Memory{createdAt: now, lastUpdated: now}
}

// AddObservation records an environment response and folds its state fields
// into the derived view.
func (m *Memory) AddObservation(text string, st zork.State) {
	now := time.Now()
	m.observations = append(m.observations, Observation{
		Timestamp: now,
		Text:      text,
		Location:  st.Location,
		Score:     st.Score,
		Moves:     st.Moves,
	})

	if st.Location != "" && st.Location != m.CurrentLocation {
		if m.CurrentLocation != "" {
			m.previousLocations = append(m.previousLocations, m.CurrentLocation)
		}
		m.CurrentLocation = st.Location
	}

	m.Score = st.Score
	m.Moves = st.Moves
	m.lastUpdated = now
}

// AddAction records an issued command together with the state it produced.
// Success is a heuristic: any response that reads as a refusal counts as a
// failure.
func (m *Memory) AddAction(text string, result zork.State) {
	now := time.Now()
	lower := strings.ToLower(result.Observation)
	success := true
	for _, marker := range refusalMarkers {
		if strings.Contains(lower, marker) {
			success = false
			break
		}
	}

	m.actions = append(m.actions, Action{
		Timestamp:   now,
		Text:        text,
		Success:     success,
		Location:    result.Location,
		ScoreChange: result.Score - m.Score,
	})
	m.lastUpdated = now
}

// RecentHistory returns the last n events across observations and actions in
// chronological order.
func (m *Memory) RecentHistory(n int) []Event {
	events := make([]Event, 0, len(m.observations)+len(m.actions))
	for _, o := range m.observations {
		events = append(events, Event{
			Type:      "observation",
			Timestamp: o.Timestamp,
			Content:   o.Text,
			Location:  o.Location,
		})
	}
	for _, a := range m.actions {
		events = append(events, Event{
			Type:      "action",
			Timestamp: a.Timestamp,
			Content:   a.Text,
			Success:   a.Success,
		})
	}

	// Records append in real time, so a stable sort on timestamps keeps
	// same-instant observation/action pairs in insertion order.
	for i := 1; i < len(events); i++ {
		for j := i; j > 0 && events[j].Timestamp.Before(events[j-1].Timestamp); j-- {
			events[j], events[j-1] = events[j-1], events[j]
		}
	}

	if n > 0 && n < len(events) {
		return events[len(events)-n:]
	}
	return events
}

// LocationHistory returns visited locations in order of first visit.
func (m *Memory) LocationHistory() []string {
	locations := append([]string(nil), m.previousLocations...)
	if m.CurrentLocation != "" {
		seen := false
		for _, l := range locations {
			if l == m.CurrentLocation {
				seen = true
				break
			}
		}
		if !seen {
			locations = append(locations, m.CurrentLocation)
		}
	}
	return locations
}

// Inventory returns a copy of the parsed inventory.
func (m *Memory) Inventory() []string {
	return append([]string(nil), m.inventory...)
}

// UpdateInventory re-parses the inventory from its rendered form, as returned
// in the state envelope. Item lines are stripped of list markers and any
// trailing parenthesized status.
func (m *Memory) UpdateInventory(text string) {
	m.inventory = nil

	const marker = "You are carrying:"
	idx := strings.Index(text, marker)
	if idx < 0 {
		return
	}

	for _, line := range strings.Split(text[idx+len(marker):], "\n") {
		item := strings.TrimLeft(strings.TrimSpace(line), " •-")
		if open := strings.Index(item, "("); open >= 0 {
			item = strings.TrimSpace(item[:open])
		}
		if item != "" {
			m.inventory = append(m.inventory, item)
		}
	}
}

func (m *Memory) String() string {
	return fmt.Sprintf(
		"Memory: %d observations, %d actions, Current location: %s, Score: %d, Moves: %d, Inventory: %d items",
		len(m.observations), len(m.actions), m.CurrentLocation, m.Score, m.Moves, len(m.inventory),
	)
}
