// Package validate checks the structural integrity of an IR fragment before
// conversion. It verifies the shape of the IR only; it never judges design
// behavior.
package validate

import (
	"fmt"

	"verigen/internal/ir"
)

// Check walks the fragment and collects every integrity violation: bad
// widths, out-of-range slices, malformed operators and duplicate case arms.
// All findings are reported at once.
func Check(f *ir.Fragment) error {
	if f == nil {
		return fmt.Errorf("validate: fragment is nil")
	}
	c := &checker{}
	for _, sig := range ir.ListSignals(f).Ordered() {
		c.checkSignal(sig)
	}
	for _, stmt := range f.Comb {
		c.checkStmt(stmt)
	}
	for _, name := range ir.ListClockDomains(f) {
		for _, stmt := range f.Sync[name] {
			c.checkStmt(stmt)
		}
	}
	for _, sp := range f.Specials {
		c.checkSpecial(sp)
	}
	if len(c.issues) > 0 {
		return fmt.Errorf("validate: %d issue(s), first: %s", len(c.issues), c.issues[0])
	}
	return nil
}

type checker struct {
	issues []string
}

func (c *checker) reportf(format string, args ...any) {
	c.issues = append(c.issues, fmt.Sprintf(format, args...))
}

func (c *checker) checkSignal(sig *ir.Signal) {
	if sig.Width < 1 {
		c.reportf("signal #%d has width %d", sig.DUID, sig.Width)
	}
	if sig.Reset != nil && sig.Reset.Width != sig.Width {
		c.reportf("signal #%d reset width %d does not match signal width %d",
			sig.DUID, sig.Reset.Width, sig.Width)
	}
}

func (c *checker) checkStmt(stmt ir.Statement) {
	switch s := stmt.(type) {
	case *ir.Assign:
		c.checkExpr(s.LHS)
		c.checkExpr(s.RHS)
	case *ir.If:
		c.checkExpr(s.Cond)
		for _, sub := range s.Then {
			c.checkStmt(sub)
		}
		for _, sub := range s.Else {
			c.checkStmt(sub)
		}
	case *ir.Case:
		c.checkExpr(s.Test)
		c.checkCase(s)
	case *ir.Display:
		for _, arg := range s.Args {
			c.checkExpr(arg)
		}
	case *ir.Finish:
	default:
		c.reportf("statement of unrecognized kind %T", stmt)
	}
}

func (c *checker) checkCase(s *ir.Case) {
	seenValues := make(map[int64]bool)
	seenDefault := false
	for _, arm := range s.Arms {
		if arm.Choice == nil {
			if seenDefault {
				c.reportf("case has more than one default arm")
			}
			seenDefault = true
		} else {
			if seenValues[arm.Choice.Value] {
				c.reportf("case has duplicate arm for value %d", arm.Choice.Value)
			}
			seenValues[arm.Choice.Value] = true
		}
		for _, sub := range arm.Body {
			c.checkStmt(sub)
		}
	}
}

func (c *checker) checkExpr(expr ir.Expression) {
	switch e := expr.(type) {
	case *ir.Constant, *ir.Signal:
	case *ir.Operator:
		if len(e.Operands) < 1 || len(e.Operands) > 3 {
			c.reportf("operator %q has %d operands", e.Op, len(e.Operands))
		}
		if len(e.Operands) == 3 && e.Op != "m" {
			c.reportf("ternary operator %q is not the value select", e.Op)
		}
		for _, op := range e.Operands {
			c.checkExpr(op)
		}
	case *ir.Slice:
		if e.Stop <= e.Start || e.Start < 0 {
			c.reportf("slice range [%d, %d) is empty or negative", e.Start, e.Stop)
		}
		if sig, ok := e.Value.(*ir.Signal); ok && e.Stop > sig.Width {
			c.reportf("slice [%d, %d) exceeds %d-bit signal #%d", e.Start, e.Stop, sig.Width, sig.DUID)
		}
		c.checkExpr(e.Value)
	case *ir.Cat:
		if len(e.Parts) == 0 {
			c.reportf("empty concatenation")
		}
		for _, part := range e.Parts {
			c.checkExpr(part)
		}
	case *ir.Replicate:
		if e.Count < 1 {
			c.reportf("replication count %d", e.Count)
		}
		c.checkExpr(e.Value)
	default:
		c.reportf("expression of unrecognized kind %T", expr)
	}
}

func (c *checker) checkSpecial(sp ir.Special) {
	m, ok := sp.(*ir.Memory)
	if !ok {
		return
	}
	if m.Width < 1 || m.Depth < 1 {
		c.reportf("memory #%d is %d x %d", m.SpecialDUID(), m.Depth, m.Width)
	}
	if len(m.Init) > m.Depth {
		c.reportf("memory #%d has %d init words for depth %d", m.SpecialDUID(), len(m.Init), m.Depth)
	}
	for _, p := range m.Ports {
		if p.Adr == nil {
			c.reportf("memory #%d port has no address pin", m.SpecialDUID())
		}
		if p.WE != nil && p.DatW == nil {
			c.reportf("memory #%d port has a write enable but no write data", m.SpecialDUID())
		}
	}
}
