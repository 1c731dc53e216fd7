package puzzle

import "fmt"

// SlotCount is the number of digit slots on the display.
const SlotCount = 8

// addendumTable holds one row per slot, indexed by the stage digit.
var addendumTable = [SlotCount]string{
	"4280752097",
	"8126837692",
	"5317800685",
	"9852322448",
	"3710561298",
	"6154187606",
	"8863108821",
	"4628679367",
}

// AddendumFor returns the table part of the addendum for a slot and stage digit.
func AddendumFor(slot, stage int) int {
	if slot < 0 || slot >= SlotCount {
		panic(fmt.Sprintf("puzzle: addendum slot %d out of range", slot))
	}
	if stage < 0 || stage > 9 {
		panic(fmt.Sprintf("puzzle: addendum stage %d out of range", stage))
	}
	return int(addendumTable[slot][stage] - '0')
}

// RenderDigit converts a true value to the character shown for a given addendum.
func RenderDigit(value, addendum int) byte {
	return byte('0' + wrapDigit(value-addendum))
}

// RecoverDigit reverses RenderDigit: it returns the true value behind a
// rendered character once the addendum is known.
func RecoverDigit(rendered byte, addendum int) int {
	return wrapDigit(int(rendered-'0') + addendum)
}

func wrapDigit(v int) int {
	v %= 10
	if v < 0 {
		v += 10
	}
	return v
}
