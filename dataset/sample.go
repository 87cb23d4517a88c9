package dataset

import (
	"fmt"

	"github.com/pbanos/bonsai/feature"
)

/*
Sample represents an item from which to learn how to classify others.

Its ValueFor method returns the value of the sample corresponding to the feature
passed as parameter, and its Label method returns the class it belongs to.
*/
type Sample interface {
	feature.Sample
	Label() int
}

type sample struct {
	featureValues feature.Values
	label         int
}

/*
NewSample takes a map of feature string names to values and a label and returns
a sample.
*/
func NewSample(featureValues map[string]float64, label int) Sample {
	return &sample{feature.Values(featureValues), label}
}

func (s *sample) ValueFor(f feature.Feature) (float64, error) {
	return s.featureValues.ValueFor(f)
}

func (s *sample) Label() int {
	return s.label
}

func (s *sample) String() string {
	return fmt.Sprintf("%v -> %d", s.featureValues, s.label)
}
