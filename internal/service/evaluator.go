package service

import "unicode"

// boundaryCounts are pooled alignment counts between predicted and reference
// boundary positions. Boundaries are modeled as the set of character offsets
// (counted over non-space runes) at which a space occurs.
type boundaryCounts struct {
	tp int64 // boundaries correctly placed
	fp int64 // boundaries placed where the reference has none
	fn int64 // reference boundaries missing from the prediction
}

func (c *boundaryCounts) add(other boundaryCounts) {
	c.tp += other.tp
	c.fp += other.fp
	c.fn += other.fn
}

// precision returns TP/(TP+FP), or zero when nothing was predicted
func (c boundaryCounts) precision() float64 {
	if c.tp+c.fp == 0 {
		return 0
	}
	return float64(c.tp) / float64(c.tp+c.fp)
}

// recall returns TP/(TP+FN), or zero when the reference has no boundaries
func (c boundaryCounts) recall() float64 {
	if c.tp+c.fn == 0 {
		return 0
	}
	return float64(c.tp) / float64(c.tp+c.fn)
}

// fScore returns the weighted harmonic mean of precision and recall
func (c boundaryCounts) fScore(beta float64) float64 {
	p, r := c.precision(), c.recall()
	if p == 0 && r == 0 {
		return 0
	}
	b2 := beta * beta
	return (1 + b2) * p * r / (b2*p + r)
}

// boundaryOffsets returns the set of offsets at which segmented places a
// boundary. Offsets count the non-space runes preceding the boundary, so two
// segmentations of the same underlying characters are directly comparable.
func boundaryOffsets(segmented string) map[int]bool {
	offsets := make(map[int]bool)
	chars := 0
	for _, r := range segmented {
		if unicode.IsSpace(r) {
			if chars > 0 {
				offsets[chars] = true
			}
			continue
		}
		chars++
	}
	// A trailing space is not a word boundary.
	delete(offsets, chars)
	return offsets
}

// scoreBoundaries aligns the predicted boundaries of one document against
// the reference
func scoreBoundaries(reference, predicted string) boundaryCounts {
	refSet := boundaryOffsets(reference)
	predSet := boundaryOffsets(predicted)

	var counts boundaryCounts
	for offset := range predSet {
		if refSet[offset] {
			counts.tp++
		} else {
			counts.fp++
		}
	}
	for offset := range refSet {
		if !predSet[offset] {
			counts.fn++
		}
	}
	return counts
}
