//                           _       _
// __      _____  __ ___   ___  __ _| |_ ___
// \ \ /\ / / _ \/ _` \ \ / / |/ _` | __/ _ \
//  \ V  V /  __/ (_| |\ V /| | (_| | ||  __/
//   \_/\_/ \___|\__,_| \_/ |_|\__,_|\__\___|
//
//  Copyright © 2016 - 2024 Weaviate B.V. All rights reserved.
//
//  CONTACT: hello@weaviate.io
//

package filters

type Combination int

const (
	// CombinationUnspecified leaves the choice to the server; it is what a
	// bare list of names means.
	CombinationUnspecified Combination = iota
	CombinationSum
	CombinationAverage
	CombinationMinimum
	CombinationMaximum
	CombinationRelativeScore
	CombinationManual
)

func (c Combination) String() string {
	switch c {
	case CombinationSum:
		return "sum"
	case CombinationAverage:
		return "average"
	case CombinationMinimum:
		return "minimum"
	case CombinationMaximum:
		return "maximum"
	case CombinationRelativeScore:
		return "relativeScore"
	case CombinationManual:
		return "manualWeights"
	default:
		return "unspecified"
	}
}

// TargetVector is one named vector of a target expression. Weights is empty
// for unweighted combinations and may carry more than one weight when the
// same target is searched with several vectors.
type TargetVector struct {
	Name    string
	Weights []float32
}

func Target(name string, weights ...float32) TargetVector {
	return TargetVector{Name: name, Weights: append([]float32{}, weights...)}
}

// TargetVectors selects the named vectors a vector search runs against and
// how their distances are combined.
type TargetVectors struct {
	Combination Combination
	Targets     []TargetVector
}

// TargetVectorNames searches the given vectors with the server's default
// combination.
func TargetVectorNames(names ...string) *TargetVectors {
	return &TargetVectors{Targets: targetsOf(names)}
}

func Sum(names ...string) *TargetVectors {
	return &TargetVectors{Combination: CombinationSum, Targets: targetsOf(names)}
}

func Average(names ...string) *TargetVectors {
	return &TargetVectors{Combination: CombinationAverage, Targets: targetsOf(names)}
}

func Minimum(names ...string) *TargetVectors {
	return &TargetVectors{Combination: CombinationMinimum, Targets: targetsOf(names)}
}

func Maximum(names ...string) *TargetVectors {
	return &TargetVectors{Combination: CombinationMaximum, Targets: targetsOf(names)}
}

func RelativeScore(targets ...TargetVector) *TargetVectors {
	return &TargetVectors{Combination: CombinationRelativeScore, Targets: copyTargets(targets)}
}

func ManualWeights(targets ...TargetVector) *TargetVectors {
	return &TargetVectors{Combination: CombinationManual, Targets: copyTargets(targets)}
}

// Names returns the target names in declaration order, once per target.
func (t *TargetVectors) Names() []string {
	if t == nil {
		return nil
	}
	names := make([]string, len(t.Targets))
	for i := range t.Targets {
		names[i] = t.Targets[i].Name
	}
	return names
}

// IsNamesOnly reports whether the expression is a bare name or list of names.
func (t *TargetVectors) IsNamesOnly() bool {
	if t.Combination != CombinationUnspecified {
		return false
	}
	for _, target := range t.Targets {
		if len(target.Weights) > 0 {
			return false
		}
	}
	return true
}

// HasMultiWeights reports whether any target carries more than one weight.
// One such target is enough to force the flattened form for all of them.
func (t *TargetVectors) HasMultiWeights() bool {
	for _, target := range t.Targets {
		if len(target.Weights) > 1 {
			return true
		}
	}
	return false
}

// WeightForTarget is one entry of the flattened weights list.
type WeightForTarget struct {
	Target string
	Weight float32
}

// Flatten repeats every target once per weight, preserving declaration order:
// {title: [0.5, 0.5], description: 0.5} becomes
// names [title title description] with one weight each. Targets without a
// weight keep a single entry with weight 0.
func (t *TargetVectors) Flatten() ([]string, []WeightForTarget) {
	var names []string
	var weights []WeightForTarget
	for _, target := range t.Targets {
		if len(target.Weights) == 0 {
			names = append(names, target.Name)
			weights = append(weights, WeightForTarget{Target: target.Name})
			continue
		}
		for _, w := range target.Weights {
			names = append(names, target.Name)
			weights = append(weights, WeightForTarget{Target: target.Name, Weight: w})
		}
	}
	return names, weights
}

func targetsOf(names []string) []TargetVector {
	out := make([]TargetVector, len(names))
	for i, name := range names {
		out[i] = TargetVector{Name: name}
	}
	return out
}

func copyTargets(in []TargetVector) []TargetVector {
	out := make([]TargetVector, len(in))
	for i := range in {
		out[i] = Target(in[i].Name, in[i].Weights...)
	}
	return out
}
