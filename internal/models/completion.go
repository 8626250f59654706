package models

import "fmt"

// CompletionState tracks which meals the user reported as eaten. It lives
// only in the view and starts all false on every mount.
type CompletionState struct {
	done map[MealSlot]bool
}

// NewCompletionState returns a state with every slot marked not done.
func NewCompletionState() CompletionState {
	done := make(map[MealSlot]bool, len(AllMealSlots))
	for _, slot := range AllMealSlots {
		done[slot] = false
	}
	return CompletionState{done: done}
}

// Toggle flips the slot. Unknown slots are rejected and never added.
func (c *CompletionState) Toggle(slot MealSlot) error {
	if c.done == nil {
		*c = NewCompletionState()
	}
	current, ok := c.done[slot]
	if !ok {
		return fmt.Errorf("unknown meal slot %q", slot)
	}
	c.done[slot] = !current
	return nil
}

// Done reports whether the slot is marked as eaten.
func (c CompletionState) Done(slot MealSlot) bool {
	return c.done[slot]
}

// CompletedCount returns how many slots are marked done.
func (c CompletionState) CompletedCount() int {
	count := 0
	for _, done := range c.done {
		if done {
			count++
		}
	}
	return count
}

// Progress returns the completion percentage, completedCount / 5 * 100.
func (c CompletionState) Progress() float64 {
	return float64(c.CompletedCount()) / float64(len(AllMealSlots)) * 100
}
