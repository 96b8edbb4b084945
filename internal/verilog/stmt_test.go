package verilog

import (
	"testing"

	"verigen/internal/ir"
)

func TestRenderAssignModes(t *testing.T) {
	x := ir.NewNamedSignal(8, "x")
	v := ir.NewNamedSignal(8, "v")
	v.Variable = true
	y := ir.NewNamedSignal(8, "y")
	ns := newTestNS(x, v, y)

	cases := []struct {
		name string
		at   assignMode
		stmt *ir.Assign
		want string
	}{
		{"blocking", atBlocking, &ir.Assign{LHS: x, RHS: y}, "x = y;\n"},
		{"non-blocking", atNonBlocking, &ir.Assign{LHS: x, RHS: y}, "x <= y;\n"},
		{"context register", atSignal, &ir.Assign{LHS: x, RHS: y}, "x <= y;\n"},
		{"context variable", atSignal, &ir.Assign{LHS: v, RHS: y}, "v = y;\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := renderStmt(ns, tc.at, 0, tc.stmt, nil)
			if err != nil {
				t.Fatalf("renderStmt failed: %v", err)
			}
			if got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestRenderIfElse(t *testing.T) {
	x := ir.NewNamedSignal(1, "x")
	c := ir.NewNamedSignal(1, "c")
	ns := newTestNS(x, c)

	stmt := &ir.If{
		Cond: c,
		Then: ir.Block{&ir.Assign{LHS: x, RHS: ir.NewConstant(1, 1, false)}},
		Else: ir.Block{&ir.Assign{LHS: x, RHS: ir.NewConstant(0, 1, false)}},
	}
	got, err := renderStmt(ns, atNonBlocking, 1, stmt, nil)
	if err != nil {
		t.Fatalf("renderStmt failed: %v", err)
	}
	want := "\tif (c) begin\n" +
		"\t\tx <= 1'd1;\n" +
		"\tend else begin\n" +
		"\t\tx <= 1'd0;\n" +
		"\tend\n"
	if got != want {
		t.Errorf("got:\n%q\nwant:\n%q", got, want)
	}
}

func TestRenderCaseSortsArms(t *testing.T) {
	x := ir.NewNamedSignal(2, "x")
	sel := ir.NewNamedSignal(2, "sel_")
	ns := newTestNS(x, sel)

	// Arms deliberately built default-first and descending.
	stmt := &ir.Case{
		Test: sel,
		Arms: []ir.CaseArm{
			{Choice: nil, Body: ir.Block{&ir.Assign{LHS: x, RHS: ir.NewConstant(3, 2, false)}}},
			{Choice: ir.NewConstant(2, 2, false), Body: ir.Block{&ir.Assign{LHS: x, RHS: ir.NewConstant(2, 2, false)}}},
			{Choice: ir.NewConstant(1, 2, false), Body: ir.Block{&ir.Assign{LHS: x, RHS: ir.NewConstant(1, 2, false)}}},
		},
	}
	got, err := renderStmt(ns, atNonBlocking, 0, stmt, nil)
	if err != nil {
		t.Fatalf("renderStmt failed: %v", err)
	}
	want := "case (sel_)\n" +
		"\t2'd1: begin\n" +
		"\t\tx <= 2'd1;\n" +
		"\tend\n" +
		"\t2'd2: begin\n" +
		"\t\tx <= 2'd2;\n" +
		"\tend\n" +
		"\tdefault: begin\n" +
		"\t\tx <= 2'd3;\n" +
		"\tend\n" +
		"endcase\n"
	if got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestRenderCaseEmptyArmsRendersNothing(t *testing.T) {
	sel := ir.NewNamedSignal(2, "sel_")
	ns := newTestNS(sel)
	got, err := renderStmt(ns, atNonBlocking, 0, &ir.Case{Test: sel}, nil)
	if err != nil {
		t.Fatalf("renderStmt failed: %v", err)
	}
	if got != "" {
		t.Errorf("expected no output, got %q", got)
	}
}

func TestRenderDisplayAndFinish(t *testing.T) {
	x := ir.NewNamedSignal(8, "x")
	ns := newTestNS(x)

	got, err := renderStmt(ns, atBlocking, 1, &ir.Display{
		Format: "x=%d at %d",
		Args:   []ir.Expression{x, ir.NewConstant(42, 8, false)},
	}, nil)
	if err != nil {
		t.Fatalf("renderStmt failed: %v", err)
	}
	if want := "\t$display(\"x=%d at %d\", x, 42);\n"; got != want {
		t.Errorf("display: got %q, want %q", got, want)
	}

	got, err = renderStmt(ns, atBlocking, 2, &ir.Finish{}, nil)
	if err != nil {
		t.Fatalf("renderStmt failed: %v", err)
	}
	if want := "\t\t$finish;\n"; got != want {
		t.Errorf("finish: got %q, want %q", got, want)
	}
}

func TestTargetFilterSkipsForeignStatements(t *testing.T) {
	x := ir.NewNamedSignal(1, "x")
	y := ir.NewNamedSignal(1, "y")
	ns := newTestNS(x, y)

	stmts := []ir.Statement{
		&ir.Assign{LHS: x, RHS: ir.NewConstant(1, 1, false)},
		&ir.Assign{LHS: y, RHS: ir.NewConstant(0, 1, false)},
	}
	got, err := renderBlock(ns, atBlocking, 0, stmts, ir.NewSignalSet(y))
	if err != nil {
		t.Fatalf("renderBlock failed: %v", err)
	}
	if want := "y = 1'd0;\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRenderStmtUnknownNode(t *testing.T) {
	ns := newTestNS()
	if _, err := renderStmt(ns, atBlocking, 0, nil, nil); err == nil {
		t.Fatalf("expected an error for unknown statement")
	}
}
