package language

import (
	"strings"
	"sync/atomic"

	syncmap "github.com/SaveTheRbtz/generic-sync-map-go"
)

// Names repeat heavily across documents parsed by one process (field and
// type names), so the lexer shares a single copy of each.
const (
	maxInternedLen   = 64
	maxInternedNames = 1 << 16
)

var (
	names      syncmap.MapOf[string, string]
	namesCount atomic.Int64
)

// intern returns a canonical, source-independent copy of s.
func intern(s string) string {
	if v, ok := names.Load(s); ok {
		return v
	}
	owned := strings.Clone(s)
	if len(s) > maxInternedLen || namesCount.Load() >= maxInternedNames {
		return owned
	}
	v, loaded := names.LoadOrStore(owned, owned)
	if !loaded {
		namesCount.Add(1)
	}
	return v
}
