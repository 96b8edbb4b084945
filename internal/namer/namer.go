// Package namer assigns deterministic, collision-free identifiers to signals
// for one conversion call.
package namer

import (
	"fmt"
	"strings"

	"verigen/internal/ir"
)

// Namespace maps each signal to a unique printable identifier that never
// equals a reserved word. The mapping is injective for the lifetime of the
// namespace and stable across runs for the same signal set.
type Namespace struct {
	reserved map[string]struct{}
	names    map[*ir.Signal]string
	taken    map[string]struct{}
}

// Build constructs a namespace over the given signals. Signals are processed
// in creation order so that collision suffixes are assigned the same way on
// every run.
func Build(signals *ir.SignalSet, reserved map[string]struct{}) *Namespace {
	ns := &Namespace{
		reserved: reserved,
		names:    make(map[*ir.Signal]string),
		taken:    make(map[string]struct{}),
	}
	for _, s := range signals.Ordered() {
		ns.register(s)
	}
	return ns
}

// Name returns the identifier assigned to the signal. Signals not seen at
// build time (e.g. instrumentation signals created during emission) are
// registered on demand under the same rules.
func (ns *Namespace) Name(s *ir.Signal) string {
	if name, ok := ns.names[s]; ok {
		return name
	}
	return ns.register(s)
}

// Names returns the number of assigned identifiers.
func (ns *Namespace) Names() int { return len(ns.names) }

func (ns *Namespace) register(s *ir.Signal) string {
	base := sanitize(candidate(s))
	name := base
	for suffix := 0; !ns.free(name); suffix++ {
		name = fmt.Sprintf("%s_%d", base, suffix)
	}
	ns.names[s] = name
	ns.taken[name] = struct{}{}
	return name
}

func (ns *Namespace) free(name string) bool {
	if _, ok := ns.reserved[name]; ok {
		return false
	}
	_, ok := ns.taken[name]
	return !ok
}

// candidate picks the raw name to derive the identifier from: the fixed
// override when present, else the first non-empty debug-trail entry.
func candidate(s *ir.Signal) string {
	if s.NameOverride != "" {
		return s.NameOverride
	}
	for _, t := range s.Trail {
		if t != "" {
			return t
		}
	}
	return "sig"
}

// sanitize rewrites a raw name into a legal identifier: letters, digits and
// underscores only, not starting with a digit.
func sanitize(name string) string {
	var b strings.Builder
	for i, r := range name {
		switch {
		case r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r == '_':
			b.WriteRune(r)
		case r >= '0' && r <= '9':
			if i == 0 {
				b.WriteRune('_')
			}
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "sig"
	}
	return b.String()
}
