package puzzle

// FindSolution searches contiguous runs of one to three digits for a non-zero
// multiple of 8. Runs are tried by start position, shortest first; a lone 8
// ends the search at once.
func FindSolution(values []int) (int, bool) {
	for i := range values {
		v1 := values[i]
		if v1 == 8 {
			return v1, true
		}
		if i+1 >= len(values) {
			continue
		}
		v2 := v1*10 + values[i+1]
		if v2 != 0 && v2%8 == 0 {
			return v2, true
		}
		if i+2 >= len(values) {
			continue
		}
		v3 := v2*10 + values[i+2]
		if v3 != 0 && v3%8 == 0 {
			return v3, true
		}
	}
	return 0, false
}
