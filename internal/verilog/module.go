package verilog

import (
	"sort"
	"strconv"
	"strings"

	"verigen/internal/ir"
	"verigen/internal/namer"
)

// printSignal renders the width/sign prefix and name of a signal
// declaration, e.g. "signed [7:0] counter".
func printSignal(ns *namer.Namespace, s *ir.Signal) string {
	var b strings.Builder
	if s.Signed {
		b.WriteString("signed ")
	}
	if s.Width > 1 {
		b.WriteString("[" + strconv.Itoa(s.Width-1) + ":0] ")
	}
	b.WriteString(ns.Name(s))
	return b.String()
}

// renderAttributes emits the "(* k = v, ... *)" prefix for a signal or
// special instance. Plain attributes go through the translator and are
// silently dropped when no translation exists; explicit attributes carry
// their own value. Plain attributes sort before explicit ones, then by name
// and value.
func renderAttributes(attrs []ir.Attribute, translate AttrTranslator) string {
	sorted := make([]ir.Attribute, len(attrs))
	copy(sorted, attrs)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.Explicit != b.Explicit {
			return !a.Explicit
		}
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.Value < b.Value
	})

	var parts []string
	for _, attr := range sorted {
		name, value, number := attr.Name, attr.Value, attr.Number
		if !attr.Explicit {
			var ok bool
			name, value, ok = translate(attr.Name)
			if !ok {
				continue
			}
			number = false
		}
		if !number {
			value = "\"" + value + "\""
		}
		parts = append(parts, name+" = "+value)
	}
	if len(parts) == 0 {
		return ""
	}
	return "(* " + strings.Join(parts, ", ") + " *)"
}

// combWires returns the targets driven by a single unconditional
// combinational assignment; these are declared as continuously-driven wires
// rather than registers.
func combWires(f *ir.Fragment) *ir.SignalSet {
	wires := ir.NewSignalSet()
	for _, g := range ir.GroupByTargets(f.Comb) {
		if len(g.Stmts) == 1 {
			if _, ok := g.Stmts[0].(*ir.Assign); ok {
				wires.AddSet(g.Targets)
			}
		}
	}
	return wires
}

// renderModuleHeader emits the module declaration with its direction-
// classified port list and the internal wire/reg declarations. Resolved
// directions and storage kinds are recorded on out.
func renderModuleHeader(f *ir.Fragment, ios *ir.SignalSet, name string, ns *namer.Namespace, cfg Config, out *Output) (string, error) {
	sigs := ir.ListSignals(f)
	sigs.AddSet(ir.ListSpecialIOs(f, true, true, true))
	specialOuts := ir.ListSpecialIOs(f, false, true, true)
	inouts := ir.ListSpecialIOs(f, false, false, true)

	allSync := make([]ir.Statement, 0)
	for _, block := range f.Sync {
		allSync = append(allSync, block...)
	}
	targets := ir.ListTargets(append(append([]ir.Statement{}, f.Comb...), allSync...)...)
	targets.AddSet(specialOuts)

	wires := combWires(f)
	wires.AddSet(specialOuts)

	var b strings.Builder
	b.WriteString("module " + name + "(\n")
	first := true
	for _, sig := range ios.Ordered() {
		if !first {
			b.WriteString(",\n")
		}
		first = false
		line := "\t"
		if attr := renderAttributes(sig.Attr, cfg.AttrTranslate); attr != "" {
			line += attr + " "
		}
		switch {
		case inouts.Has(sig):
			line += "inout wire " + printSignal(ns, sig)
			out.recordSignal(sig, ns.Name(sig), "inout", "wire")
		case targets.Has(sig):
			if wires.Has(sig) {
				line += "output wire " + printSignal(ns, sig)
				out.recordSignal(sig, ns.Name(sig), "output", "wire")
			} else {
				line += "output reg " + printSignal(ns, sig)
				out.recordSignal(sig, ns.Name(sig), "output", "reg")
			}
		default:
			line += "input wire " + printSignal(ns, sig)
			out.recordSignal(sig, ns.Name(sig), "input", "wire")
		}
		b.WriteString(line)
	}
	b.WriteString("\n);\n\n")

	for _, sig := range sigs.Ordered() {
		if ios.Has(sig) {
			continue
		}
		if attr := renderAttributes(sig.Attr, cfg.AttrTranslate); attr != "" {
			b.WriteString(attr + " ")
		}
		if wires.Has(sig) {
			b.WriteString("wire " + printSignal(ns, sig) + ";\n")
			out.recordSignal(sig, ns.Name(sig), "", "wire")
		} else {
			if cfg.RegInitialization {
				reset, _, err := renderExpr(ns, sig.ResetValue())
				if err != nil {
					return "", err
				}
				b.WriteString("reg " + printSignal(ns, sig) + " = " + reset + ";\n")
			} else {
				b.WriteString("reg " + printSignal(ns, sig) + ";\n")
			}
			out.recordSignal(sig, ns.Name(sig), "", "reg")
		}
	}
	b.WriteString("\n")
	return b.String(), nil
}
