// Package verilog converts an elaborated structural IR fragment to
// synthesizable Verilog text. Conversion is a pure function of the fragment
// and configuration: the same input produces byte-identical output.
package verilog

import (
	"fmt"
	"strings"

	"verigen/internal/ir"
	"verigen/internal/namer"
)

// Design is anything convertible to an IR fragment. *ir.Fragment implements
// it directly.
type Design interface {
	Fragment() *ir.Fragment
}

// Lowering is an opaque fragment-to-fragment transform supplied by an
// external collaborator (slice simplification, reset insertion, special
// lowering). A nil hook is the identity.
type Lowering func(*ir.Fragment) *ir.Fragment

// AttrTranslator maps a plain attribute name to its emitted name and value.
// Returning ok=false drops the attribute.
type AttrTranslator func(name string) (outName, value string, ok bool)

// Config carries the recognized conversion options.
type Config struct {
	// SpecialOverrides maps special kinds to emitters, extending (or
	// replacing) the built-in memory emitter.
	SpecialOverrides map[string]SpecialEmitter
	// AttrTranslate resolves plain attribute annotations.
	AttrTranslate AttrTranslator
	// AutoCreateClockDomains creates missing clock domains on the fly,
	// exposing their clock and reset signals as additional ports. When
	// disabled, an unknown domain aborts the conversion.
	AutoCreateClockDomains bool
	// SimulationMode selects the per-target combinational strategy instead
	// of the synthesis grouping.
	SimulationMode bool
	// DisplayRun prints each combinational block's sequence number when it
	// runs (simulation strategy only).
	DisplayRun bool
	// RegInitialization initializes internal registers to their reset value
	// inline.
	RegInitialization bool
	// DummyTrigger emits the zero-time trigger forcing simulators to
	// evaluate combinational blocks once at startup (simulation strategy
	// only).
	DummyTrigger bool
	// BlockingAssign uses blocking assignments for combinational defaults
	// and bodies.
	BlockingAssign bool

	// Lowering hooks, applied in this order between domain resolution and
	// emission.
	LowerSlices   Lowering
	InsertResets  Lowering
	LowerSpecials Lowering
	Simplify      Lowering
}

// DefaultConfig returns the settings most conversions want: synthesis
// grouping, auto-created clock domains, initialized registers and the
// simulation dummy trigger armed for when simulation mode is selected.
func DefaultConfig() Config {
	return Config{
		AttrTranslate:          PassthroughAttrTranslator,
		AutoCreateClockDomains: true,
		RegInitialization:      true,
		DummyTrigger:           true,
	}
}

// PassthroughAttrTranslator emits every plain attribute unchanged with the
// value "true".
func PassthroughAttrTranslator(name string) (string, string, bool) {
	return name, "true", true
}

// Convert renders one fragment as a Verilog module named name, with the
// given signals exposed as ports. It returns the document, the resolved
// namespace and any auxiliary data files registered by special emitters.
func Convert(design Design, ios []*ir.Signal, name string, cfg Config) (*Output, error) {
	if design == nil {
		return nil, fmt.Errorf("verilog: design is nil")
	}
	f := design.Fragment()
	if f == nil {
		return nil, fmt.Errorf("verilog: design produced a nil fragment")
	}
	if name == "" {
		name = "top"
	}
	if cfg.AttrTranslate == nil {
		cfg.AttrTranslate = PassthroughAttrTranslator
	}

	ports := ir.NewSignalSet(ios...)

	// Every domain referenced by a synchronous block must resolve before
	// sequential emission.
	for _, domain := range ir.ListClockDomains(f) {
		if _, ok := f.Domain(domain); ok {
			continue
		}
		if !cfg.AutoCreateClockDomains {
			return nil, &UnresolvedDomainError{Domain: domain, Known: domainNames(f)}
		}
		cd := ir.NewClockDomain(domain)
		f.AddClockDomain(cd)
		ports.Add(cd.Clk)
		ports.Add(cd.Rst)
	}

	for _, lower := range []Lowering{cfg.LowerSlices, cfg.InsertResets, cfg.LowerSpecials, cfg.Simplify} {
		if lower != nil {
			f = lower(f)
		}
	}

	signals := ir.ListSignals(f)
	signals.AddSet(ir.ListSpecialIOs(f, true, true, true))
	signals.AddSet(ports)
	ns := namer.Build(signals, ieee18002017ReservedKeywords)

	out := newOutput()
	out.Namespace = ns

	var b strings.Builder
	b.WriteString("// Machine-generated Verilog, do not edit.\n\n")

	header, err := renderModuleHeader(f, ports, name, ns, cfg, out)
	if err != nil {
		return nil, err
	}
	b.WriteString(header)

	var comb string
	if cfg.SimulationMode {
		comb, err = renderCombSim(f, ns, cfg)
	} else {
		comb, err = renderCombSynth(f, ns, cfg)
	}
	if err != nil {
		return nil, err
	}
	b.WriteString(comb)

	sync, err := renderSync(f, ns)
	if err != nil {
		return nil, err
	}
	b.WriteString(sync)

	specials, err := renderSpecials(f, ns, cfg, out)
	if err != nil {
		return nil, err
	}
	b.WriteString(specials)

	b.WriteString("endmodule\n")

	out.Verilog = b.String()
	return out, nil
}
