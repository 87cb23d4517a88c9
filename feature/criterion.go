package feature

import (
	"fmt"
	"math"
)

/*
Criterion represents a constraint on a feature

Its SatisfiedBy method takes a sample and returns a boolean indicating if
the given value satisfies the feature criterion.

Its Feature method returns the feature on which the criterion is applied.
*/
type Criterion interface {
	Feature() Feature
	SatisfiedBy(sample Sample) (bool, error)
}

/*
ContinuousCriterion represents a constraint on a continuous feature, a
range [a, b) that delimits which values it may take. The interval can be
open on one end, thus representing -Infinity or +Infinity

Its Interval method returns the start and end of the interval to which the
feature is constrained as a pair of float64 values.
*/
type ContinuousCriterion interface {
	Criterion
	Interval() (float64, float64)
}

type continuousCriterion struct {
	feature Feature
	a, b    float64
}

/*
NewContinuousCriterion takes a Feature and a pair of float64 values
indicating the start and the end of an interval and returns a
ContinuousCriterion with the feature and interval. The interval can be
open on any end by providing -Inf and/or +Inf.
*/
func NewContinuousCriterion(feature Feature, a float64, b float64) ContinuousCriterion {
	return &continuousCriterion{feature, a, b}
}

/*
Below takes a Feature and a threshold and returns the criterion satisfied
by samples whose value for the feature is strictly less than the threshold.
*/
func Below(feature Feature, threshold float64) ContinuousCriterion {
	return NewContinuousCriterion(feature, math.Inf(-1), threshold)
}

/*
AtOrAbove takes a Feature and a threshold and returns the criterion
satisfied by samples whose value for the feature is greater than or equal
to the threshold.
*/
func AtOrAbove(feature Feature, threshold float64) ContinuousCriterion {
	return NewContinuousCriterion(feature, threshold, math.Inf(1))
}

/*
Feature returns the feature to which the constraint applies.
*/
func (cc *continuousCriterion) Feature() Feature {
	return cc.feature
}

/*
SatisfiedBy receives a sample as parameter and returns a boolean indicating if the
sample satisfies the criterion, that is, if its value for the feature is in the
range defined by the criterion. An error is returned if the sample does not
define a value for the feature.
*/
func (cc *continuousCriterion) SatisfiedBy(sample Sample) (bool, error) {
	val, err := sample.ValueFor(cc.feature)
	if err != nil {
		return false, err
	}
	return (math.IsInf(cc.a, -1) || cc.a <= val) && (math.IsInf(cc.b, 1) || val < cc.b), nil
}

func (cc *continuousCriterion) Interval() (float64, float64) {
	return cc.a, cc.b
}

func (cc *continuousCriterion) String() string {
	if math.IsInf(cc.a, -1) {
		return fmt.Sprintf("%s < %f", cc.feature.Name(), cc.b)
	}
	if math.IsInf(cc.b, 1) {
		return fmt.Sprintf("%f <= %s", cc.a, cc.feature.Name())
	}
	return fmt.Sprintf("%f <= %s < %f", cc.a, cc.feature.Name(), cc.b)
}
