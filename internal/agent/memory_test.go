package agent

import (
	"testing"

	"zorkagent/internal/zork"
)

func TestMemoryTracksLocations(t *testing.T) {
	m := NewMemory()

	m.AddObservation("You are west of the house.", zork.State{Location: "west_of_house"})
	m.AddObservation("You are behind the house.", zork.State{Location: "behind_house", Moves: 1})
	m.AddObservation("Still behind the house.", zork.State{Location: "behind_house", Moves: 2})
	m.AddObservation("Kitchen.", zork.State{Location: "kitchen", Moves: 3})

	if m.CurrentLocation != "kitchen" {
		t.Errorf("current location = %q, want kitchen", m.CurrentLocation)
	}

	history := m.LocationHistory()
	want := []string{"west_of_house", "behind_house", "kitchen"}
	if len(history) != len(want) {
		t.Fatalf("location history = %v, want %v", history, want)
	}
	for i := range want {
		if history[i] != want[i] {
			t.Errorf("history[%d] = %q, want %q", i, history[i], want[i])
		}
	}
}

func TestMemoryActionSuccessHeuristic(t *testing.T) {
	tests := []struct {
		observation string
		success     bool
	}{
		{"Taken.", true},
		{"You can't take that.", false},
		{"You don't see that here.", false},
		{"I don't understand that command.", false},
		{"Opening the mailbox reveals a small leaflet.", true},
	}

	for _, tt := range tests {
		m := NewMemory()
		m.AddAction("take leaflet", zork.State{Observation: tt.observation})
		if got := m.actions[0].Success; got != tt.success {
			t.Errorf("success for %q = %v, want %v", tt.observation, got, tt.success)
		}
	}
}

func TestMemoryScoreChange(t *testing.T) {
	m := NewMemory()
	m.AddObservation("start", zork.State{Score: 0})
	m.AddAction("read leaflet", zork.State{Observation: "WELCOME TO ZORK!", Score: 1})

	if got := m.actions[0].ScoreChange; got != 1 {
		t.Errorf("score change = %d, want 1", got)
	}
}

func TestMemoryRecentHistory(t *testing.T) {
	m := NewMemory()
	m.AddObservation("first", zork.State{Location: "a"})
	m.AddAction("go east", zork.State{Observation: "ok", Location: "b"})
	m.AddObservation("second", zork.State{Location: "b"})

	events := m.RecentHistory(2)
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	if events[len(events)-1].Content != "second" {
		t.Errorf("last event = %q, want the latest observation", events[len(events)-1].Content)
	}

	all := m.RecentHistory(10)
	if len(all) != 3 {
		t.Errorf("got %d events, want all 3", len(all))
	}
}

func TestUpdateInventoryParsing(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "empty",
			text: "You are not carrying anything.",
			want: nil,
		},
		{
			name: "items",
			text: "You are carrying:\n  A brass lamp\n  A small leaflet",
			want: []string{"A brass lamp", "A small leaflet"},
		},
		{
			name: "status stripped",
			text: "You are carrying:\n  A brass lamp (providing light)",
			want: []string{"A brass lamp"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMemory()
			m.UpdateInventory(tt.text)
			got := m.Inventory()
			if len(got) != len(tt.want) {
				t.Fatalf("inventory = %v, want %v", got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("inventory[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}
