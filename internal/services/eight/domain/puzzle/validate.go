package puzzle

// Verdict is the result of checking a submitted digit sequence.
type Verdict int

const (
	VerdictUnspecified Verdict = iota
	VerdictCorrect
	VerdictEmpty
	VerdictLeadingZero
	VerdictNotDivisible
)

func (v Verdict) String() string {
	switch v {
	case VerdictUnspecified:
		return "Unspecified"
	case VerdictCorrect:
		return "Correct"
	case VerdictEmpty:
		return "All digits removed"
	case VerdictLeadingZero:
		return "Leading zero"
	case VerdictNotDivisible:
		return "Not divisible by 8"
	default:
		return "Unknown"
	}
}

// Validate checks the digits left after removal, in slot order.
func Validate(values []int) Verdict {
	if len(values) == 0 {
		return VerdictEmpty
	}
	if values[0] == 0 {
		return VerdictLeadingZero
	}
	if Concat(values)%8 != 0 {
		return VerdictNotDivisible
	}
	return VerdictCorrect
}

// Concat joins digits into the decimal number they spell.
func Concat(values []int) int {
	n := 0
	for _, v := range values {
		n = n*10 + v
	}
	return n
}

// Digits renders a digit sequence as text.
func Digits(values []int) string {
	out := make([]byte, len(values))
	for i, v := range values {
		out[i] = byte('0' + v)
	}
	return string(out)
}
