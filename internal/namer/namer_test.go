package namer

import (
	"testing"

	"verigen/internal/ir"
)

var reserved = map[string]struct{}{
	"module": {},
	"reg":    {},
}

func TestBuildUsesOverrideName(t *testing.T) {
	s := ir.NewNamedSignal(8, "counter")
	ns := Build(ir.NewSignalSet(s), reserved)
	if got := ns.Name(s); got != "counter" {
		t.Fatalf("expected counter, got %q", got)
	}
}

func TestBuildFallsBackToTrail(t *testing.T) {
	s := ir.NewSignal(8)
	s.Trail = []string{"", "adder_out", "tmp"}
	ns := Build(ir.NewSignalSet(s), reserved)
	if got := ns.Name(s); got != "adder_out" {
		t.Fatalf("expected first non-empty trail candidate, got %q", got)
	}
}

func TestBuildUnnamedSignal(t *testing.T) {
	s := ir.NewSignal(1)
	ns := Build(ir.NewSignalSet(s), reserved)
	if got := ns.Name(s); got != "sig" {
		t.Fatalf("expected sig, got %q", got)
	}
}

func TestReservedWordCollision(t *testing.T) {
	s := ir.NewSignal(1)
	s.Trail = []string{"module"}
	ns := Build(ir.NewSignalSet(s), reserved)
	got := ns.Name(s)
	if got == "module" {
		t.Fatalf("reserved word handed out as identifier")
	}
	if got != "module_0" {
		t.Fatalf("expected module_0, got %q", got)
	}
}

func TestCollisionSuffixesAreDeterministic(t *testing.T) {
	a := ir.NewNamedSignal(1, "x")
	b := ir.NewNamedSignal(1, "x")
	c := ir.NewNamedSignal(1, "x")
	ns := Build(ir.NewSignalSet(a, b, c), reserved)
	if got := ns.Name(a); got != "x" {
		t.Fatalf("first signal: expected x, got %q", got)
	}
	if got := ns.Name(b); got != "x_0" {
		t.Fatalf("second signal: expected x_0, got %q", got)
	}
	if got := ns.Name(c); got != "x_1" {
		t.Fatalf("third signal: expected x_1, got %q", got)
	}
}

func TestInjectivity(t *testing.T) {
	set := ir.NewSignalSet()
	sigs := make([]*ir.Signal, 0, 20)
	for i := 0; i < 10; i++ {
		s := ir.NewNamedSignal(1, "clash")
		set.Add(s)
		sigs = append(sigs, s)
	}
	for i := 0; i < 10; i++ {
		s := ir.NewSignal(1)
		s.Trail = []string{"reg"}
		set.Add(s)
		sigs = append(sigs, s)
	}
	ns := Build(set, reserved)
	seen := make(map[string]bool)
	for _, s := range sigs {
		name := ns.Name(s)
		if seen[name] {
			t.Fatalf("name %q assigned twice", name)
		}
		if _, bad := reserved[name]; bad {
			t.Fatalf("reserved word %q assigned", name)
		}
		seen[name] = true
	}
}

func TestOnDemandRegistration(t *testing.T) {
	a := ir.NewNamedSignal(1, "dummy")
	ns := Build(ir.NewSignalSet(a), reserved)
	late := ir.NewNamedSignal(1, "dummy")
	if got := ns.Name(late); got != "dummy_0" {
		t.Fatalf("expected dummy_0 for late registration, got %q", got)
	}
	// Stable on repeat lookups.
	if got := ns.Name(late); got != "dummy_0" {
		t.Fatalf("name changed on second lookup: %q", got)
	}
}

func TestSanitize(t *testing.T) {
	s := ir.NewSignal(1)
	s.Trail = []string{"9th-stage.out"}
	ns := Build(ir.NewSignalSet(s), reserved)
	if got := ns.Name(s); got != "_9th_stage_out" {
		t.Fatalf("expected _9th_stage_out, got %q", got)
	}
}
