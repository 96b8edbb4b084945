package verilog

import (
	"strings"

	"verigen/internal/ir"
	"verigen/internal/namer"
)

// renderSync emits one edge-triggered block per clock domain, in
// lexicographic domain order. Registers are written non-blocking; the
// context-dependent mode lets variable-like destinations keep blocking
// semantics.
func renderSync(f *ir.Fragment, ns *namer.Namespace) (string, error) {
	var b strings.Builder
	for _, name := range ir.ListClockDomains(f) {
		block := f.Sync[name]
		if len(block) == 0 {
			continue
		}
		cd, ok := f.Domain(name)
		if !ok {
			return "", &UnresolvedDomainError{Domain: name, Known: domainNames(f)}
		}
		b.WriteString("always @(posedge " + ns.Name(cd.Clk) + ") begin\n")
		body, err := renderBlock(ns, atSignal, 1, block, nil)
		if err != nil {
			return "", err
		}
		b.WriteString(body)
		b.WriteString("end\n\n")
	}
	return b.String(), nil
}

func domainNames(f *ir.Fragment) []string {
	names := make([]string, 0, len(f.ClockDomains))
	for _, cd := range f.ClockDomains {
		names = append(names, cd.Name)
	}
	return names
}
