package verilog

import (
	"strconv"
	"strings"

	"verigen/internal/ir"
	"verigen/internal/namer"
)

const (
	synthOff = "// synthesis translate_off\n"
	synthOn  = "// synthesis translate_on\n"
)

// renderCombSynth emits the combinational section for synthesis: statements
// are grouped by shared write targets, a lone unconditional assignment
// becomes a continuous assign, and every other group becomes a
// level-sensitive block that drives each target to its reset value before
// replaying the group's statements. The up-front defaults keep synthesis
// tools from inferring latches.
func renderCombSynth(f *ir.Fragment, ns *namer.Namespace, cfg Config) (string, error) {
	var b strings.Builder
	mode, op := combAssignMode(cfg)
	for _, g := range ir.GroupByTargets(f.Comb) {
		if assign, ok := singleAssign(g.Stmts); ok {
			r, err := renderStmt(ns, atBlocking, 0, assign, nil)
			if err != nil {
				return "", err
			}
			b.WriteString("assign " + r)
			continue
		}
		b.WriteString("always @(*) begin\n")
		if err := writeDefaults(&b, ns, g.Targets, op); err != nil {
			return "", err
		}
		body, err := renderBlock(ns, mode, 1, g.Stmts, g.Targets)
		if err != nil {
			return "", err
		}
		b.WriteString(body)
		b.WriteString("end\n")
	}
	b.WriteString("\n")
	return b.String(), nil
}

// renderCombSim emits the combinational section for simulation: one process
// per written signal, in first-write order, so scheduling matches step-wise
// simulation. The optional dummy trigger forces simulators to evaluate every
// block once at time zero even without an input edge.
func renderCombSim(f *ir.Fragment, ns *namer.Namespace, cfg Config) (string, error) {
	var b strings.Builder
	if len(f.Comb) == 0 {
		b.WriteString("\n")
		return b.String(), nil
	}

	var dummySource *ir.Signal
	if cfg.DummyTrigger {
		dummySource = ir.NewNamedSignal(1, "dummy_s")
		b.WriteString(synthOff)
		b.WriteString("reg " + printSignal(ns, dummySource) + ";\n")
		b.WriteString("initial " + ns.Name(dummySource) + " <= 1'd0;\n")
		b.WriteString(synthOn)
	}

	var order []*ir.Signal
	perTarget := make(map[*ir.Signal][]ir.Statement)
	for _, stmt := range f.Comb {
		for _, t := range ir.ListTargets(stmt).Ordered() {
			if _, seen := perTarget[t]; !seen {
				order = append(order, t)
			}
			perTarget[t] = append(perTarget[t], stmt)
		}
	}

	mode, op := combAssignMode(cfg)
	for n, t := range order {
		stmts := perTarget[t]
		if assign, ok := singleAssign(stmts); ok {
			r, err := renderStmt(ns, atBlocking, 0, assign, nil)
			if err != nil {
				return "", err
			}
			b.WriteString("assign " + r)
			continue
		}
		var dummySink *ir.Signal
		if cfg.DummyTrigger {
			dummySink = ir.NewNamedSignal(1, "dummy_d")
			b.WriteString("\n" + synthOff)
			b.WriteString("reg " + printSignal(ns, dummySink) + ";\n")
			b.WriteString(synthOn)
		}
		b.WriteString("always @(*) begin\n")
		if cfg.DisplayRun {
			b.WriteString("\t$display(\"Running comb block #" + strconv.Itoa(n) + "\");\n")
		}
		if err := writeDefaults(&b, ns, ir.NewSignalSet(t), op); err != nil {
			return "", err
		}
		body, err := renderBlock(ns, mode, 1, stmts, ir.NewSignalSet(t))
		if err != nil {
			return "", err
		}
		b.WriteString(body)
		if cfg.DummyTrigger {
			b.WriteString(synthOff)
			b.WriteString("\t" + ns.Name(dummySink) + " = " + ns.Name(dummySource) + ";\n")
			b.WriteString(synthOn)
		}
		b.WriteString("end\n")
	}
	b.WriteString("\n")
	return b.String(), nil
}

func combAssignMode(cfg Config) (assignMode, string) {
	if cfg.BlockingAssign {
		return atBlocking, " = "
	}
	return atNonBlocking, " <= "
}

func singleAssign(stmts []ir.Statement) (*ir.Assign, bool) {
	if len(stmts) != 1 {
		return nil, false
	}
	assign, ok := stmts[0].(*ir.Assign)
	return assign, ok
}

// writeDefaults drives every target to its reset value at the top of a
// level-sensitive block.
func writeDefaults(b *strings.Builder, ns *namer.Namespace, targets *ir.SignalSet, op string) error {
	for _, t := range targets.Ordered() {
		reset, _, err := renderExpr(ns, t.ResetValue())
		if err != nil {
			return err
		}
		b.WriteString("\t" + ns.Name(t) + op + reset + ";\n")
	}
	return nil
}
