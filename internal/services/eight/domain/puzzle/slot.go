package puzzle

// Slot is one digit position on the display.
type Slot struct {
	Value    int  // true digit
	Char     byte // rendered character
	Disabled bool
	Removed  bool
	Active   bool
}

// Available reports whether the slot can still be removed this round.
func (s Slot) Available() bool {
	return s.Active && !s.Disabled && !s.Removed
}

// Snapshot is a read-only copy of the engine state.
type Snapshot struct {
	Slots            [SlotCount]Slot
	Stage            byte
	Activated        bool
	Solved           bool
	NotDisabled      int
	RemainingMinutes int
	SolvesCount      int
}

// Display returns the rendered characters of every slot, with disabled slots
// shown as a blank.
func (s Snapshot) Display() string {
	out := make([]byte, SlotCount)
	for i, slot := range s.Slots {
		switch {
		case slot.Disabled:
			out[i] = ' '
		case slot.Removed:
			out[i] = '_'
		default:
			out[i] = slot.Char
		}
	}
	return string(out)
}
