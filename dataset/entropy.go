package dataset

import (
	"math"
	"sort"
)

/*
EntropyOf takes a map of label counts and returns the entropy in bits of the
label distribution they describe. Only labels with a positive count contribute,
so any set of int labels (negative, sparse or otherwise) is supported. The
result is 0 for an empty or pure distribution. Terms are added in label order
so equal distributions always yield the exact same value.
*/
func EntropyOf(counts map[int]int) float64 {
	var total int
	labels := make([]int, 0, len(counts))
	for l, c := range counts {
		if c > 0 {
			total += c
			labels = append(labels, l)
		}
	}
	if total == 0 {
		return 0
	}
	sort.Ints(labels)
	var result float64
	for _, l := range labels {
		p := float64(counts[l]) / float64(total)
		result -= p * math.Log2(p)
	}
	return result
}

/*
MajorityOf takes a map of label counts and returns the label with the highest
count, ties going to the lowest label, or ErrEmptyDataset if no label has a
positive count.
*/
func MajorityOf(counts map[int]int) (int, error) {
	var best, bestCount int
	found := false
	for l, c := range counts {
		if c <= 0 {
			continue
		}
		if !found || c > bestCount || (c == bestCount && l < best) {
			best, bestCount, found = l, c, true
		}
	}
	if !found {
		return 0, ErrEmptyDataset
	}
	return best, nil
}

/*
Error represents an error related with datasets
*/
type Error string

/*
ErrEmptyDataset is the error returned when trying to obtain the majority label
of a dataset without samples.
*/
const ErrEmptyDataset = Error("cannot compute the majority label of an empty dataset")

func (e Error) Error() string {
	return string(e)
}
