package resolve

// Distance is the classic Levenshtein edit distance over runes.
func Distance(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(ra)+1)
	curr := make([]int, len(ra)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(rb); i++ {
		curr[0] = i
		for j := 1; j <= len(ra); j++ {
			if rb[i-1] == ra[j-1] {
				curr[j] = prev[j-1]
			} else {
				curr[j] = min(prev[j-1], min(curr[j-1], prev[j])) + 1
			}
		}
		prev, curr = curr, prev
	}

	return prev[len(ra)]
}

// NormalizedDistance maps the edit distance into [0,1] by dividing by the
// longer string's length. Two empty strings normalize to 1 (no signal, no
// match).
func NormalizedDistance(a, b string) float64 {
	maxLen := len([]rune(a))
	if l := len([]rune(b)); l > maxLen {
		maxLen = l
	}
	if maxLen == 0 {
		return 1
	}
	return float64(Distance(a, b)) / float64(maxLen)
}
