/*
Package feature defines the continuous features a tree can split on, the
samples that provide values for them and the criteria that constrain
those values.
*/
package feature

import (
	"fmt"
	"math"
)

/*
Feature represents a property that can be observed
*/
type Feature interface {
	Name() string
	Valid(float64) error
}

/*
ContinuousFeature represents a property that can be observed and that can take
a real value
*/
type ContinuousFeature struct {
	name string
}

/*
NewContinuousFeature takes a name string and returns a continuous feature with
the given name.
*/
func NewContinuousFeature(name string) *ContinuousFeature {
	return &ContinuousFeature{name}
}

/*
NewContinuousFeatures takes a slice of names and returns a slice of continuous
features with those names, in the same order.
*/
func NewContinuousFeatures(names []string) []Feature {
	features := make([]Feature, 0, len(names))
	for _, n := range names {
		features = append(features, NewContinuousFeature(n))
	}
	return features
}

/*
Name returns a string with the name of the feature
*/
func (cf *ContinuousFeature) Name() string {
	return cf.name
}

/*
Valid receives a float64 value and returns an error describing why it cannot
be used as a value for the feature, or nil if it can. NaN and infinite values
are rejected, as they cannot be ordered against a threshold.
*/
func (cf *ContinuousFeature) Valid(value float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return fmt.Errorf("continuous feature %s expects a finite value, got %v", cf.Name(), value)
	}
	return nil
}

func (cf *ContinuousFeature) String() string {
	return cf.name
}

/*
Names takes a slice of features and returns a slice with their names
*/
func Names(features []Feature) []string {
	names := make([]string, 0, len(features))
	for _, f := range features {
		names = append(names, f.Name())
	}
	return names
}
