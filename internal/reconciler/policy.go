package reconciler

import (
	"fmt"
	"strings"
)

// Policy decides how a missing cached plan is filled from the service.
type Policy int

const (
	// PolicyCacheFirst serves the cached plan and otherwise generates a new one.
	PolicyCacheFirst Policy = iota
	// PolicyFetchThenGenerate looks up the stored plan first and generates
	// only when the service has none.
	PolicyFetchThenGenerate
)

func (p Policy) String() string {
	switch p {
	case PolicyCacheFirst:
		return "cache-first"
	case PolicyFetchThenGenerate:
		return "fetch-then-generate"
	}
	return fmt.Sprintf("Policy(%d)", int(p))
}

// ParsePolicy accepts the names printed by String. Empty means the default.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "cache-first":
		return PolicyCacheFirst, nil
	case "fetch-then-generate":
		return PolicyFetchThenGenerate, nil
	}
	return 0, fmt.Errorf("unknown plan policy %q (want cache-first or fetch-then-generate)", s)
}

// Source records where the current plan came from.
type Source int

const (
	SourceNone Source = iota
	SourceCache
	SourceFetched
	SourceGenerated
	SourceEdited
)

func (s Source) String() string {
	switch s {
	case SourceCache:
		return "cache"
	case SourceFetched:
		return "fetched"
	case SourceGenerated:
		return "generated"
	case SourceEdited:
		return "edited"
	}
	return "none"
}
