package bonsai

import "fmt"

// ModelError represents an error related with the state of a
// classifier's model
type ModelError string

const (
	// ErrUntrained is returned when a classifier without a trained
	// tree is asked to predict, score or be saved
	ErrUntrained = ModelError("classifier is not trained yet")
	// ErrNoSplitFound is returned when no available feature splits a
	// dataset with a positive information gain
	ErrNoSplitFound = ModelError("no feature splits the dataset with positive information gain")
)

func (me ModelError) Error() string {
	return string(me)
}

// ConfigurationError is returned when a classifier is configured with
// an invalid value
type ConfigurationError struct {
	Field  string
	Value  interface{}
	Reason string
}

func (ce *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid %s %v: %s", ce.Field, ce.Value, ce.Reason)
}

// InputError is returned when the training data given to a classifier
// cannot be used to fit it
type InputError struct {
	Reason string
	Err    error
}

func (ie *InputError) Error() string {
	if ie.Err != nil {
		return fmt.Sprintf("invalid input: %s: %v", ie.Reason, ie.Err)
	}
	return fmt.Sprintf("invalid input: %s", ie.Reason)
}

func (ie *InputError) Unwrap() error {
	return ie.Err
}

// RecordError wraps the error obtained for the record at Index of a
// batch
type RecordError struct {
	Index int
	Err   error
}

func (re *RecordError) Error() string {
	return fmt.Sprintf("record %d: %v", re.Index, re.Err)
}

func (re *RecordError) Unwrap() error {
	return re.Err
}
