package feature

import (
	"fmt"
	"sort"
	"strings"
)

/*
Sample is an interface for something that can satisfy a Criterion.

Its ValueFor method returns the value corresponding to the feature
passed as parameter, or a *MissingFeatureError if the sample does not
define one.
*/
type Sample interface {
	ValueFor(Feature) (float64, error)
}

/*
MissingFeatureError is the error returned when a sample is asked for the
value of a feature it does not define.
*/
type MissingFeatureError struct {
	Feature string
}

func (mfe *MissingFeatureError) Error() string {
	return fmt.Sprintf("sample has no value for feature %s", mfe.Feature)
}

/*
Values is a Sample backed by a map of feature names to values.
*/
type Values map[string]float64

/*
ValueFor returns the value in the map for the name of the given feature,
or a *MissingFeatureError when the name is not a key of the map.
*/
func (vs Values) ValueFor(f Feature) (float64, error) {
	v, ok := vs[f.Name()]
	if !ok {
		return 0, &MissingFeatureError{f.Name()}
	}
	return v, nil
}

func (vs Values) String() string {
	keys := make([]string, 0, len(vs))
	for k := range vs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, fmt.Sprintf("%s:%v", k, vs[k]))
	}
	return fmt.Sprintf("[%s]", strings.Join(pairs, " "))
}
