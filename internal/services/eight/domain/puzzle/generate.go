package puzzle

import (
	"fmt"
	"math/rand"
)

// lastDigits are the candidates for the highest active slot once four or more
// slots are in play.
var lastDigits = [...]int{0, 2, 4, 6}

// forbiddenCompanions lists, per last digit, the digits that would pair with
// it into a two-digit multiple of 8.
var forbiddenCompanions = map[int][]int{
	0: {4},
	2: {3, 7},
	4: {2, 6},
	6: {1, 5, 9},
}

// narrowing lists, per drawn digit, what later draws may no longer use.
var narrowing = map[int][]int{
	1: {6},
	5: {6},
	9: {6},
	2: {4},
	6: {4},
	3: {2},
	7: {2},
	4: {0},
}

// roundValues draws the true values for count active slots, lowest index
// first.
func roundValues(rng *rand.Rand, count int) []int {
	switch {
	case count == 2:
		return twoSlotValues(rng)
	case count == 3:
		return uniformValues(rng, count)
	case count >= 4 && count <= SlotCount:
		return spreadValues(rng, count)
	default:
		panic(fmt.Sprintf("puzzle: cannot generate for %d active slots", count))
	}
}

// twoSlotValues picks a two-digit number biased towards multiples of 8 and
// hands out its digits ones first.
func twoSlotValues(rng *rand.Rand) []int {
	var v int
	switch rng.Intn(3) {
	case 0:
		if rng.Intn(2) == 0 {
			v = (rng.Intn(11) + 2) * 8
		} else {
			v = rng.Intn(100)
		}
	case 1:
		v = 80 + rng.Intn(5)*2
	case 2:
		v = rng.Intn(10)*10 + 8
	}
	values := make([]int, 2)
	for i := range values {
		values[i] = v % 10
		v /= 10
	}
	return values
}

func uniformValues(rng *rand.Rand, count int) []int {
	values := make([]int, count)
	for i := range values {
		values[i] = rng.Intn(10)
	}
	return values
}

// spreadValues ends the sequence on an even digit and keeps every earlier
// digit from pairing with a later one into a two-digit multiple of 8.
func spreadValues(rng *rand.Rand, count int) []int {
	candidates := newDigitSet(0, 1, 2, 3, 4, 5, 6, 7, 9)
	last := lastDigits[rng.Intn(len(lastDigits))]
	forbidden, ok := forbiddenCompanions[last]
	if !ok {
		panic(fmt.Sprintf("puzzle: unexpected last digit %d", last))
	}
	candidates.remove(forbidden...)

	values := make([]int, count)
	for i := 0; i < count-1; i++ {
		d := candidates.pick(rng)
		candidates.remove(narrowing[d]...)
		values[i] = d
	}
	values[count-1] = last
	return values
}

type digitSet [10]bool

func newDigitSet(digits ...int) *digitSet {
	var s digitSet
	for _, d := range digits {
		s[d] = true
	}
	return &s
}

func (s *digitSet) remove(digits ...int) {
	for _, d := range digits {
		s[d] = false
	}
}

func (s *digitSet) members() []int {
	out := make([]int, 0, len(s))
	for d, ok := range s {
		if ok {
			out = append(out, d)
		}
	}
	return out
}

func (s *digitSet) pick(rng *rand.Rand) int {
	members := s.members()
	if len(members) == 0 {
		panic("puzzle: digit candidates exhausted")
	}
	return members[rng.Intn(len(members))]
}
