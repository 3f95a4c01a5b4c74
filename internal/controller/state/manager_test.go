package state

import (
	"testing"

	"github.com/glebkhl/zapis_bot/internal/service"
)

func TestManager_PerUserIsolation(t *testing.T) {
	sm := NewManager()

	selA := &service.Selection{UserID: 1, Phase: service.PhaseBrowsing}
	selB := &service.Selection{UserID: 2, Phase: service.PhaseDateChosen}

	sm.SetSelection(1, selA)
	sm.SetSelection(2, selB)

	if got := sm.GetSelection(1); got != selA {
		t.Fatalf("user 1 must see own selection, got %+v", got)
	}
	if got := sm.GetSelection(2); got != selB {
		t.Fatalf("user 2 must see own selection, got %+v", got)
	}

	sm.Clear(1)

	if sm.GetSelection(1) != nil {
		t.Fatal("cleared selection must be gone")
	}
	if sm.GetSelection(2) != selB {
		t.Fatal("clearing one user must not touch another")
	}
}

func TestManager_Active(t *testing.T) {
	sm := NewManager()

	if sm.Active(1) {
		t.Fatal("fresh manager must have no active selections")
	}

	sm.SetSelection(1, &service.Selection{UserID: 1})
	if !sm.Active(1) {
		t.Fatal("selection must be active after set")
	}

	sm.Clear(1)
	if sm.Active(1) {
		t.Fatal("selection must be inactive after clear")
	}
}
