package cluster

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownPolicy is returned by ParsePolicy for unrecognised names.
var ErrUnknownPolicy = errors.New("unknown selection policy")

// Updater computes the next selection from the previous one. Updaters must
// not modify prev.
type Updater func(prev Set) Set

// Policy decides what expanding a collapsed cluster does to the others.
type Policy int

const (
	// PolicyMulti keeps other expanded clusters open.
	PolicyMulti Policy = iota
	// PolicySingle collapses every other cluster when one is expanded.
	PolicySingle
)

func (p Policy) String() string {
	switch p {
	case PolicySingle:
		return "single"
	default:
		return "multi"
	}
}

// ParsePolicy maps "multi" or "single" (case-insensitive) to a Policy.
func ParsePolicy(name string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "multi":
		return PolicyMulti, nil
	case "single":
		return PolicySingle, nil
	}
	return PolicyMulti, fmt.Errorf("%w: %q", ErrUnknownPolicy, name)
}

// Toggle returns the updater for a click on cluster id. An expanded cluster
// is always collapsed. A collapsed cluster is expanded, either alongside the
// current selection (PolicyMulti) or replacing it (PolicySingle).
func Toggle(id int, policy Policy) Updater {
	return func(prev Set) Set {
		if prev.Has(id) {
			return prev.Without(id)
		}
		if policy == PolicySingle {
			return NewSet(id)
		}
		return prev.With(id)
	}
}
