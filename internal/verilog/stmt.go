package verilog

import (
	"sort"
	"strconv"
	"strings"

	"verigen/internal/ir"
	"verigen/internal/namer"
)

// assignMode selects the assignment operator used when rendering statements.
type assignMode int

const (
	// atBlocking always emits "=".
	atBlocking assignMode = iota
	// atNonBlocking always emits "<=".
	atNonBlocking
	// atSignal picks "=" for variable-like destinations and "<=" for
	// registers, as required inside clocked blocks.
	atSignal
)

func indent(level int) string {
	return strings.Repeat("\t", level)
}

// renderStmt converts one statement to indented Verilog text. When filter is
// non-nil, statements whose write targets do not intersect it render as
// nothing; this lets one statement list serve several per-target blocks.
func renderStmt(ns *namer.Namespace, at assignMode, level int, node ir.Statement, filter *ir.SignalSet) (string, error) {
	if filter != nil && !ir.ListTargets(node).Intersects(filter) {
		return "", nil
	}
	switch n := node.(type) {
	case *ir.Assign:
		return renderAssign(ns, at, level, n)
	case *ir.If:
		return renderIf(ns, at, level, n, filter)
	case *ir.Case:
		return renderCase(ns, at, level, n, filter)
	case *ir.Display:
		return renderDisplay(ns, level, n)
	case *ir.Finish:
		return indent(level) + "$finish;\n", nil
	default:
		return "", &UnknownNodeError{Node: node}
	}
}

// renderBlock renders a statement sequence in order.
func renderBlock(ns *namer.Namespace, at assignMode, level int, stmts []ir.Statement, filter *ir.SignalSet) (string, error) {
	var b strings.Builder
	for _, stmt := range stmts {
		r, err := renderStmt(ns, at, level, stmt, filter)
		if err != nil {
			return "", err
		}
		b.WriteString(r)
	}
	return b.String(), nil
}

func renderAssign(ns *namer.Namespace, at assignMode, level int, n *ir.Assign) (string, error) {
	var op string
	switch {
	case at == atBlocking:
		op = " = "
	case at == atNonBlocking:
		op = " <= "
	case ir.IsVariable(n.LHS):
		op = " = "
	default:
		op = " <= "
	}
	lhs, _, err := renderExpr(ns, n.LHS)
	if err != nil {
		return "", err
	}
	rhs, _, err := renderExpr(ns, n.RHS)
	if err != nil {
		return "", err
	}
	return indent(level) + lhs + op + rhs + ";\n", nil
}

func renderIf(ns *namer.Namespace, at assignMode, level int, n *ir.If, filter *ir.SignalSet) (string, error) {
	cond, _, err := renderExpr(ns, n.Cond)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	b.WriteString(indent(level) + "if (" + cond + ") begin\n")
	body, err := renderBlock(ns, at, level+1, n.Then, filter)
	if err != nil {
		return "", err
	}
	b.WriteString(body)
	if len(n.Else) > 0 {
		b.WriteString(indent(level) + "end else begin\n")
		body, err = renderBlock(ns, at, level+1, n.Else, filter)
		if err != nil {
			return "", err
		}
		b.WriteString(body)
	}
	b.WriteString(indent(level) + "end\n")
	return b.String(), nil
}

func renderCase(ns *namer.Namespace, at assignMode, level int, n *ir.Case, filter *ir.SignalSet) (string, error) {
	if len(n.Arms) == 0 {
		return "", nil
	}
	test, _, err := renderExpr(ns, n.Test)
	if err != nil {
		return "", err
	}
	// Constant arms sorted by ascending value, default last, regardless of
	// the order the arms were built in.
	constArms := make([]ir.CaseArm, 0, len(n.Arms))
	var defaultArms []ir.CaseArm
	for _, arm := range n.Arms {
		if arm.Choice == nil {
			defaultArms = append(defaultArms, arm)
		} else {
			constArms = append(constArms, arm)
		}
	}
	sort.SliceStable(constArms, func(i, j int) bool {
		return constArms[i].Choice.Value < constArms[j].Choice.Value
	})

	var b strings.Builder
	b.WriteString(indent(level) + "case (" + test + ")\n")
	for _, arm := range constArms {
		b.WriteString(indent(level+1) + renderConstant(arm.Choice) + ": begin\n")
		body, err := renderBlock(ns, at, level+2, arm.Body, filter)
		if err != nil {
			return "", err
		}
		b.WriteString(body)
		b.WriteString(indent(level+1) + "end\n")
	}
	for _, arm := range defaultArms {
		b.WriteString(indent(level+1) + "default: begin\n")
		body, err := renderBlock(ns, at, level+2, arm.Body, filter)
		if err != nil {
			return "", err
		}
		b.WriteString(body)
		b.WriteString(indent(level+1) + "end\n")
	}
	b.WriteString(indent(level) + "endcase\n")
	return b.String(), nil
}

func renderDisplay(ns *namer.Namespace, level int, n *ir.Display) (string, error) {
	var b strings.Builder
	b.WriteString("\"" + n.Format + "\"")
	for _, arg := range n.Args {
		b.WriteString(", ")
		switch a := arg.(type) {
		case *ir.Signal:
			b.WriteString(ns.Name(a))
		case *ir.Constant:
			b.WriteString(strconv.FormatInt(a.Value, 10))
		default:
			r, _, err := renderExpr(ns, arg)
			if err != nil {
				return "", err
			}
			b.WriteString(r)
		}
	}
	return indent(level) + "$display(" + b.String() + ");\n", nil
}
