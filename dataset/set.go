package dataset

import (
	"context"
	"fmt"
	"sync"

	"github.com/pbanos/bonsai/feature"
)

const (
	sampleCountThresholdForDatasetImplementation = 1000
	ctxCheckInterval                             = 1024
)

/*
Dataset represents a collection of labelled samples along with the features
still available to partition it.

Its Entropy method returns the entropy of the dataset labels: a measure of the
disinformation we have on the classes of samples that belong to it.

Its SubsetWith method takes a feature.Criterion and returns a subset that only
contains samples that satisfy it, and its Without method returns the same
dataset with one feature less available.

Its Samples method returns the samples it contains.

Datasets are not modified once built, every operation that would change
them returns a new one instead.
*/
type Dataset interface {
	Entropy(context.Context) (float64, error)
	SubsetWith(context.Context, feature.Criterion) (Dataset, error)
	Without(feature.Feature) Dataset
	Features() []feature.Feature
	FeatureValues(context.Context, feature.Feature) ([]float64, error)
	CountLabels(context.Context) (map[int]int, error)
	MajorityLabel(context.Context) (int, error)
	Samples(context.Context) ([]Sample, error)
	Count(context.Context) (int, error)
	Criteria(context.Context) ([]feature.Criterion, error)
}

type memoryIntensiveSubsettingDataset struct {
	lock     sync.Mutex
	entropy  *float64
	samples  []Sample
	features []feature.Feature
	criteria []feature.Criterion
}

type cpuIntensiveSubsettingDataset struct {
	lock     sync.Mutex
	entropy  *float64
	count    *int
	samples  []Sample
	features []feature.Feature
	criteria []feature.Criterion
}

/*
New takes a slice of features and a slice of samples and returns a dataset
built with them. The dataset will be a CPU intensive one when the number of
samples is over sampleCountThresholdForDatasetImplementation
*/
func New(features []feature.Feature, samples []Sample) Dataset {
	if len(samples) > sampleCountThresholdForDatasetImplementation {
		return NewCPUIntensive(features, samples)
	}
	return NewMemoryIntensive(features, samples)
}

/*
NewMemoryIntensive takes a slice of features and a slice of samples and
returns a Dataset built with them. A memory-intensive dataset is an
implementation that replicates the slice of samples when subsetting to reduce
calculations at the cost of increased memory.
*/
func NewMemoryIntensive(features []feature.Feature, samples []Sample) Dataset {
	return &memoryIntensiveSubsettingDataset{samples: samples, features: copyFeatures(features)}
}

/*
NewCPUIntensive takes a slice of features and a slice of samples and returns a
Dataset built with them. A cpu-intensive dataset is an implementation that
instead of replicating the samples when subsetting, stores the
applying feature criteria to define the subset and keeps the same
sample slice. This can achieve a drastic reduction in memory use
that comes at the cost of CPU time: every calculation that goes over
the samples of the dataset will apply the feature criteria of the dataset
on all original samples (the ones provided to this method).
*/
func NewCPUIntensive(features []feature.Feature, samples []Sample) Dataset {
	return &cpuIntensiveSubsettingDataset{samples: samples, features: copyFeatures(features)}
}

func (s *memoryIntensiveSubsettingDataset) Count(ctx context.Context) (int, error) {
	return len(s.samples), nil
}

func (s *cpuIntensiveSubsettingDataset) Count(ctx context.Context) (int, error) {
	s.lock.Lock()
	defer s.lock.Unlock()
	if s.count != nil {
		return *s.count, nil
	}
	var length int
	err := s.iterateOnDataset(ctx, func(_ Sample) (bool, error) {
		length++
		return true, nil
	})
	if err != nil {
		return 0, err
	}
	s.count = &length
	return length, nil
}

func (s *memoryIntensiveSubsettingDataset) Entropy(ctx context.Context) (float64, error) {
	s.lock.Lock()
	defer s.lock.Unlock()
	if s.entropy != nil {
		return *s.entropy, nil
	}
	counts, err := s.CountLabels(ctx)
	if err != nil {
		return 0, err
	}
	result := EntropyOf(counts)
	s.entropy = &result
	return result, nil
}

func (s *cpuIntensiveSubsettingDataset) Entropy(ctx context.Context) (float64, error) {
	s.lock.Lock()
	defer s.lock.Unlock()
	if s.entropy != nil {
		return *s.entropy, nil
	}
	counts, err := s.CountLabels(ctx)
	if err != nil {
		return 0, err
	}
	result := EntropyOf(counts)
	s.entropy = &result
	return result, nil
}

func (s *memoryIntensiveSubsettingDataset) FeatureValues(ctx context.Context, f feature.Feature) ([]float64, error) {
	result := make([]float64, 0, len(s.samples))
	for i, sample := range s.samples {
		if i%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		v, err := sample.ValueFor(f)
		if err != nil {
			return nil, err
		}
		result = append(result, v)
	}
	return result, nil
}

func (s *cpuIntensiveSubsettingDataset) FeatureValues(ctx context.Context, f feature.Feature) ([]float64, error) {
	var result []float64
	err := s.iterateOnDataset(ctx, func(sample Sample) (bool, error) {
		v, err := sample.ValueFor(f)
		if err != nil {
			return false, err
		}
		result = append(result, v)
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *memoryIntensiveSubsettingDataset) SubsetWith(ctx context.Context, fc feature.Criterion) (Dataset, error) {
	var samples []Sample
	for i, sample := range s.samples {
		if i%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		ok, err := fc.SatisfiedBy(sample)
		if err != nil {
			return nil, err
		}
		if ok {
			samples = append(samples, sample)
		}
	}
	return &memoryIntensiveSubsettingDataset{
		samples:  samples,
		features: s.features,
		criteria: appendCriterion(s.criteria, fc),
	}, nil
}

func (s *cpuIntensiveSubsettingDataset) SubsetWith(ctx context.Context, fc feature.Criterion) (Dataset, error) {
	return &cpuIntensiveSubsettingDataset{
		samples:  s.samples,
		features: s.features,
		criteria: appendCriterion(s.criteria, fc),
	}, nil
}

func (s *memoryIntensiveSubsettingDataset) Without(f feature.Feature) Dataset {
	return &memoryIntensiveSubsettingDataset{
		samples:  s.samples,
		features: withoutFeature(s.features, f),
		criteria: s.criteria,
	}
}

func (s *cpuIntensiveSubsettingDataset) Without(f feature.Feature) Dataset {
	return &cpuIntensiveSubsettingDataset{
		samples:  s.samples,
		features: withoutFeature(s.features, f),
		criteria: s.criteria,
	}
}

func (s *memoryIntensiveSubsettingDataset) Features() []feature.Feature {
	return copyFeatures(s.features)
}

func (s *cpuIntensiveSubsettingDataset) Features() []feature.Feature {
	return copyFeatures(s.features)
}

func (s *memoryIntensiveSubsettingDataset) Samples(ctx context.Context) ([]Sample, error) {
	return s.samples, nil
}

func (s *cpuIntensiveSubsettingDataset) Samples(ctx context.Context) ([]Sample, error) {
	var samples []Sample
	err := s.iterateOnDataset(ctx, func(sample Sample) (bool, error) {
		samples = append(samples, sample)
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return samples, nil
}

func (s *memoryIntensiveSubsettingDataset) CountLabels(ctx context.Context) (map[int]int, error) {
	result := make(map[int]int)
	for _, sample := range s.samples {
		result[sample.Label()]++
	}
	return result, nil
}

func (s *cpuIntensiveSubsettingDataset) CountLabels(ctx context.Context) (map[int]int, error) {
	result := make(map[int]int)
	err := s.iterateOnDataset(ctx, func(sample Sample) (bool, error) {
		result[sample.Label()]++
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *memoryIntensiveSubsettingDataset) MajorityLabel(ctx context.Context) (int, error) {
	counts, err := s.CountLabels(ctx)
	if err != nil {
		return 0, err
	}
	return MajorityOf(counts)
}

func (s *cpuIntensiveSubsettingDataset) MajorityLabel(ctx context.Context) (int, error) {
	counts, err := s.CountLabels(ctx)
	if err != nil {
		return 0, err
	}
	return MajorityOf(counts)
}

func (s *memoryIntensiveSubsettingDataset) Criteria(ctx context.Context) ([]feature.Criterion, error) {
	return s.criteria, nil
}

func (s *cpuIntensiveSubsettingDataset) Criteria(ctx context.Context) ([]feature.Criterion, error) {
	return s.criteria, nil
}

func (s *memoryIntensiveSubsettingDataset) String() string {
	return fmt.Sprintf("[ %v ]", len(s.samples))
}

func (s *cpuIntensiveSubsettingDataset) String() string {
	count, _ := s.Count(context.TODO())
	return fmt.Sprintf("[ %v ]", count)
}

func (s *cpuIntensiveSubsettingDataset) iterateOnDataset(ctx context.Context, lambda func(Sample) (bool, error)) error {
	for i, sample := range s.samples {
		if i%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		skip := false
		for _, criterion := range s.criteria {
			ok, err := criterion.SatisfiedBy(sample)
			if err != nil {
				return err
			}
			if !ok {
				skip = true
				break
			}
		}
		if !skip {
			ok, err := lambda(sample)
			if err != nil {
				return err
			}
			if !ok {
				break
			}
		}
	}
	return nil
}

func appendCriterion(criteria []feature.Criterion, fc feature.Criterion) []feature.Criterion {
	result := make([]feature.Criterion, 0, len(criteria)+1)
	result = append(result, fc)
	return append(result, criteria...)
}

func withoutFeature(features []feature.Feature, f feature.Feature) []feature.Feature {
	result := make([]feature.Feature, 0, len(features))
	for _, af := range features {
		if af.Name() != f.Name() {
			result = append(result, af)
		}
	}
	return result
}

func copyFeatures(features []feature.Feature) []feature.Feature {
	return append([]feature.Feature(nil), features...)
}
