package restorer

// NGram represents an n-gram (ordered sequence of n consecutive words)
type NGram []string

// String returns the n-gram as a space-separated string
func (ng NGram) String() string {
	result := ""
	for i, word := range ng {
		if i > 0 {
			result += " "
		}
		result += word
	}
	return result
}

// Context returns the context (all words except the last one)
func (ng NGram) Context() NGram {
	if len(ng) <= 1 {
		return NGram{}
	}
	return ng[:len(ng)-1]
}

// LastWord returns the last word in the n-gram
func (ng NGram) LastWord() string {
	if len(ng) == 0 {
		return ""
	}
	return ng[len(ng)-1]
}
