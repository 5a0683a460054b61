// Package guide provides scoring guide implementations: a static set of
// low-certification states, a function adapter for injection in tests, and
// a reloadable guide the config watcher can swap at runtime.
package guide

import (
	"sort"
	"strings"
	"sync/atomic"

	"github.com/underwrite/candidatescore/pkg/types"
	"github.com/underwrite/candidatescore/scorer/internal/config"
)

var (
	_ types.ScoringGuide = (*Static)(nil)
	_ types.ScoringGuide = Func(nil)
	_ types.ScoringGuide = (*Reloadable)(nil)
)

// Static classifies a fixed set of state codes as low-certification.
// Lookups ignore case and surrounding whitespace. A Static is immutable
// once built.
type Static struct {
	low map[string]struct{}
}

// NewStatic returns a Static guide for the given state codes.
func NewStatic(codes ...string) *Static {
	low := make(map[string]struct{}, len(codes))
	for _, c := range codes {
		if k := key(c); k != "" {
			low[k] = struct{}{}
		}
	}
	return &Static{low: low}
}

// FromConfig builds a Static guide from the configured state list.
func FromConfig(cfg config.GuideConfig) *Static {
	return NewStatic(cfg.States()...)
}

// StateWithLowCertification implements types.ScoringGuide. A nil Static
// classifies nothing as low.
func (s *Static) StateWithLowCertification(stateCode string) bool {
	if s == nil {
		return false
	}
	_, ok := s.low[key(stateCode)]
	return ok
}

// States returns the low-certification codes in sorted order.
func (s *Static) States() []string {
	if s == nil {
		return nil
	}
	out := make([]string, 0, len(s.low))
	for k := range s.low {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Func adapts an ordinary function to types.ScoringGuide.
type Func func(stateCode string) bool

// StateWithLowCertification calls f(stateCode).
func (f Func) StateWithLowCertification(stateCode string) bool {
	return f(stateCode)
}

// Reloadable is a guide whose state set can be replaced while scorers are
// reading it. All methods are safe for concurrent use.
type Reloadable struct {
	cur atomic.Pointer[Static]
}

// NewReloadable returns a Reloadable serving initial.
func NewReloadable(initial *Static) *Reloadable {
	r := &Reloadable{}
	r.Swap(initial)
	return r
}

// Swap replaces the served guide. A nil guide is treated as an empty set.
func (r *Reloadable) Swap(next *Static) {
	if next == nil {
		next = NewStatic()
	}
	r.cur.Store(next)
}

// Current returns the guide currently being served.
func (r *Reloadable) Current() *Static {
	return r.cur.Load()
}

// StateWithLowCertification implements types.ScoringGuide against the
// current state set.
func (r *Reloadable) StateWithLowCertification(stateCode string) bool {
	return r.cur.Load().StateWithLowCertification(stateCode)
}

func key(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
