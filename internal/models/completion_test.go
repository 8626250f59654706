package models

import "testing"

func TestCompletionStateStartsEmpty(t *testing.T) {
	c := NewCompletionState()
	for _, slot := range AllMealSlots {
		if c.Done(slot) {
			t.Errorf("slot %q should start not done", slot)
		}
	}
	if c.Progress() != 0 {
		t.Errorf("Progress() = %v, want 0", c.Progress())
	}
}

func TestCompletionStateToggleTwiceRestores(t *testing.T) {
	c := NewCompletionState()
	for _, slot := range AllMealSlots {
		if err := c.Toggle(slot); err != nil {
			t.Fatalf("Toggle(%q) failed: %v", slot, err)
		}
		if err := c.Toggle(slot); err != nil {
			t.Fatalf("Toggle(%q) failed: %v", slot, err)
		}
		if c.Done(slot) {
			t.Errorf("slot %q should be back to not done", slot)
		}
	}
}

func TestCompletionStateProgress(t *testing.T) {
	c := NewCompletionState()
	_ = c.Toggle(SlotBreakfast)
	_ = c.Toggle(SlotLunch)

	if got := c.CompletedCount(); got != 2 {
		t.Errorf("CompletedCount() = %d, want 2", got)
	}
	if got := c.Progress(); got != 40 {
		t.Errorf("Progress() = %v, want 40", got)
	}
}

func TestCompletionStateRejectsUnknownSlot(t *testing.T) {
	c := NewCompletionState()
	if err := c.Toggle("brunch"); err == nil {
		t.Fatal("Toggle(brunch) should fail")
	}
	if c.Done("brunch") {
		t.Error("unknown slot must not be added")
	}
	if got := len(c.done); got != len(AllMealSlots) {
		t.Errorf("state has %d keys, want %d", got, len(AllMealSlots))
	}
}

func TestCompletionStateZeroValue(t *testing.T) {
	var c CompletionState
	if err := c.Toggle(SlotDinner); err != nil {
		t.Fatalf("Toggle on zero value failed: %v", err)
	}
	if !c.Done(SlotDinner) {
		t.Error("dinner should be done")
	}
}
