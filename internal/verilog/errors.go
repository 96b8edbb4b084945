package verilog

import (
	"fmt"
	"strings"
)

// UnresolvedDomainError reports a synchronous block referencing a clock
// domain that is not registered, with auto-creation disabled.
type UnresolvedDomainError struct {
	Domain string
	Known  []string
}

func (e *UnresolvedDomainError) Error() string {
	known := "none"
	if len(e.Known) > 0 {
		known = strings.Join(e.Known, ", ")
	}
	return fmt.Sprintf("verilog: unresolved clock domain %q, available: %s", e.Domain, known)
}

// UnknownNodeError reports an expression or statement outside the closed IR
// variant set reaching the renderer. Well-formed input never triggers it; it
// indicates an IR construction or lowering defect upstream.
type UnknownNodeError struct {
	Node any
}

func (e *UnknownNodeError) Error() string {
	return fmt.Sprintf("verilog: node of unrecognized kind %T", e.Node)
}

// UnimplementedSpecialError reports a special instance whose kind has no
// registered emitter.
type UnimplementedSpecialError struct {
	Kind string
}

func (e *UnimplementedSpecialError) Error() string {
	return fmt.Sprintf("verilog: no emitter registered for special kind %q", e.Kind)
}
