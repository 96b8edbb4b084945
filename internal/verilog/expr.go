package verilog

import (
	"fmt"
	"strconv"
	"strings"

	"verigen/internal/ir"
	"verigen/internal/namer"
)

// toSigned reinterprets an unsigned rendering as signed without changing its
// numeric value, by concatenating a zero high bit.
func toSigned(r string) string {
	return "$signed({1'd0, " + r + "})"
}

// renderExpr converts an expression to Verilog text and reports whether the
// result is signed.
func renderExpr(ns *namer.Namespace, expr ir.Expression) (string, bool, error) {
	switch e := expr.(type) {
	case *ir.Constant:
		return renderConstant(e), e.Signed, nil
	case *ir.Signal:
		return ns.Name(e), e.Signed, nil
	case *ir.Operator:
		return renderOperator(ns, e)
	case *ir.Slice:
		return renderSlice(ns, e)
	case *ir.Cat:
		parts := make([]string, 0, len(e.Parts))
		for i := len(e.Parts) - 1; i >= 0; i-- {
			r, _, err := renderExpr(ns, e.Parts[i])
			if err != nil {
				return "", false, err
			}
			parts = append(parts, r)
		}
		return "{" + strings.Join(parts, ", ") + "}", false, nil
	case *ir.Replicate:
		r, _, err := renderExpr(ns, e.Value)
		if err != nil {
			return "", false, err
		}
		return "{" + strconv.Itoa(e.Count) + "{" + r + "}}", false, nil
	default:
		return "", false, &UnknownNodeError{Node: expr}
	}
}

func renderConstant(c *ir.Constant) string {
	sign := ""
	value := c.Value
	if value < 0 {
		sign = "-"
		value = -value
	}
	return fmt.Sprintf("%s%d'd%d", sign, c.Width, value)
}

func renderOperator(ns *namer.Namespace, op *ir.Operator) (string, bool, error) {
	switch len(op.Operands) {
	case 1:
		r1, s1, err := renderExpr(ns, op.Operands[0])
		if err != nil {
			return "", false, err
		}
		// Negation always yields a signed result; an unsigned operand is
		// reinterpreted as signed first so the numeric value is preserved.
		if op.Op == "-" {
			if !s1 {
				r1 = toSigned(r1)
			}
			return "(-" + r1 + ")", true, nil
		}
		return "(" + op.Op + r1 + ")", s1, nil
	case 2:
		r1, s1, err := renderExpr(ns, op.Operands[0])
		if err != nil {
			return "", false, err
		}
		r2, s2, err := renderExpr(ns, op.Operands[1])
		if err != nil {
			return "", false, err
		}
		// Sign-preserving shifts keep their operands as-is; everything else
		// harmonizes to signed when one side is signed.
		if op.Op != "<<<" && op.Op != ">>>" {
			if s2 && !s1 {
				r1 = toSigned(r1)
			}
			if s1 && !s2 {
				r2 = toSigned(r2)
			}
		}
		return "(" + r1 + " " + op.Op + " " + r2 + ")", s1 || s2, nil
	case 3:
		if op.Op != "m" {
			return "", false, fmt.Errorf("verilog: invalid ternary operator %q", op.Op)
		}
		r1, _, err := renderExpr(ns, op.Operands[0])
		if err != nil {
			return "", false, err
		}
		r2, s2, err := renderExpr(ns, op.Operands[1])
		if err != nil {
			return "", false, err
		}
		r3, s3, err := renderExpr(ns, op.Operands[2])
		if err != nil {
			return "", false, err
		}
		// Only the selectable branches harmonize; the selector is a plain
		// condition.
		if s2 && !s3 {
			r3 = toSigned(r3)
		}
		if s3 && !s2 {
			r2 = toSigned(r2)
		}
		return "(" + r1 + " ? " + r2 + " : " + r3 + ")", s2 || s3, nil
	default:
		return "", false, fmt.Errorf("verilog: operator %q with %d operands", op.Op, len(op.Operands))
	}
}

func renderSlice(ns *namer.Namespace, sl *ir.Slice) (string, bool, error) {
	if sl.Stop-sl.Start < 1 {
		return "", false, fmt.Errorf("verilog: empty slice [%d, %d)", sl.Start, sl.Stop)
	}
	var sr string
	if sig, ok := sl.Value.(*ir.Signal); ok && sig.Width == 1 {
		// Slicing a 1-bit signal would produce an invalid or redundant
		// range; emit the bare reference.
		if sl.Start != 0 {
			return "", false, fmt.Errorf("verilog: slice of 1-bit signal starts at %d", sl.Start)
		}
	} else if sl.Stop-sl.Start == 1 {
		sr = "[" + strconv.Itoa(sl.Start) + "]"
	} else {
		sr = "[" + strconv.Itoa(sl.Stop-1) + ":" + strconv.Itoa(sl.Start) + "]"
	}
	r, s, err := renderExpr(ns, sl.Value)
	if err != nil {
		return "", false, err
	}
	return r + sr, s, nil
}
