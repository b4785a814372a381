// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 saidb Contributors

package graph

import (
	"cmp"
	"slices"
)

// MaxFeatureLength is the longest name or value a feature may carry. It
// matches the varbinary(256) feature columns.
const MaxFeatureLength = 256

// Feature is a name/value tag attached to a graph, node, or edge. An owner may
// carry several features with the same name; identical pairs collapse.
type Feature struct {
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value" yaml:"value"`
}

// F is shorthand for Feature{Name: name, Value: value}.
func F(name, value string) Feature {
	return Feature{Name: name, Value: value}
}

func (f Feature) String() string {
	return f.Name + "=" + f.Value
}

func compareFeatures(a, b Feature) int {
	if c := cmp.Compare(a.Name, b.Name); c != 0 {
		return c
	}
	return cmp.Compare(a.Value, b.Value)
}

type featureSet map[Feature]struct{}

func (s featureSet) add(f Feature) {
	s[f] = struct{}{}
}

// sorted returns the members ordered by name, then value. A nil or empty set
// yields nil.
func (s featureSet) sorted() []Feature {
	if len(s) == 0 {
		return nil
	}
	out := make([]Feature, 0, len(s))
	for f := range s {
		out = append(out, f)
	}
	slices.SortFunc(out, compareFeatures)
	return out
}

func (s featureSet) clone() featureSet {
	c := make(featureSet, len(s))
	for f := range s {
		c[f] = struct{}{}
	}
	return c
}
