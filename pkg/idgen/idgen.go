// Package idgen generates tile identifiers.
//
// Operations that create tiles (split, insert) take a Generator so callers
// choose the id scheme at startup. Tests use [Sequential] for stable ids.
package idgen

import (
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"
)

// Generator produces unique string identifiers.
type Generator func() string

// UUIDv7 returns a Generator that produces RFC 9562 UUID v7 strings.
func UUIDv7() Generator {
	return func() string {
		return uuid.Must(uuid.NewV7()).String()
	}
}

// Short returns a Generator producing the last n hex digits of a random
// UUID. Short ids are friendlier on the command line.
func Short(n int) Generator {
	return func() string {
		s := strings.ReplaceAll(uuid.NewString(), "-", "")
		return s[len(s)-min(n, len(s)):]
	}
}

// Sequential returns a Generator producing prefix1, prefix2, ...
func Sequential(prefix string) Generator {
	var n atomic.Uint64
	return func() string {
		return prefix + strconv.FormatUint(n.Add(1), 10)
	}
}

// Prefixed wraps a Generator and prepends a fixed prefix to every id.
func Prefixed(prefix string, gen Generator) Generator {
	return func() string {
		return prefix + gen()
	}
}

// Unique wraps gen so that ids for which taken reports true are skipped.
func Unique(gen Generator, taken func(string) bool) Generator {
	return func() string {
		for {
			if id := gen(); !taken(id) {
				return id
			}
		}
	}
}

// Default produces short prefixed tile ids such as "t-3f9a1c2e".
var Default = Prefixed("t-", Short(8))

// New produces an id using the Default generator.
func New() string {
	return Default()
}
