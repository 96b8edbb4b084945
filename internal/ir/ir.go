package ir

import "sync/atomic"

// duidCounter hands out creation ordinals. Signals and specials share one
// sequence so that mixed orderings (ports, declarations, special instances)
// stay stable across runs.
var duidCounter atomic.Int64

func nextDUID() int64 {
	return duidCounter.Add(1)
}

// Signal is a named wire or register of the design. Signals are created by
// the front end and never mutated by the backend; resolved names and storage
// kinds are accumulated in per-conversion side state instead.
type Signal struct {
	// DUID is the creation ordinal, used for stable ordering everywhere a
	// set of signals has to be emitted deterministically.
	DUID   int64
	Width  int
	Signed bool
	// Reset is the value the signal takes under reset and the default
	// emitted before combinational override blocks. Same width as the
	// signal.
	Reset *Constant
	// NameOverride, when non-empty, fixes the emitted identifier (before
	// collision disambiguation).
	NameOverride string
	// Trail holds candidate names recorded at creation time, oldest first.
	// Consulted only when NameOverride is empty.
	Trail []string
	// Variable marks variable-like storage: in context-dependent assignment
	// mode it is written with a blocking assignment even inside a clocked
	// block.
	Variable bool
	Attr     []Attribute
}

// NewSignal creates a width-bit unsigned signal with a zero reset value.
func NewSignal(width int) *Signal {
	return &Signal{
		DUID:  nextDUID(),
		Width: width,
		Reset: NewConstant(0, width, false),
	}
}

// NewNamedSignal creates a signal with a fixed emitted name.
func NewNamedSignal(width int, name string) *Signal {
	s := NewSignal(width)
	s.NameOverride = name
	return s
}

func (s *Signal) isExpression() {}

// ResetValue returns the signal's reset constant, defaulting to zero for
// signals built without one.
func (s *Signal) ResetValue() *Constant {
	if s.Reset != nil {
		return s.Reset
	}
	return NewConstant(0, s.Width, false)
}

// Constant is an immutable sized literal.
type Constant struct {
	Value  int64
	Width  int
	Signed bool
}

// NewConstant builds a constant; width and signedness are fixed for life.
func NewConstant(value int64, width int, signed bool) *Constant {
	return &Constant{Value: value, Width: width, Signed: signed}
}

func (c *Constant) isExpression() {}

// Expression is the closed set of value-producing IR nodes: *Constant,
// *Signal, *Operator, *Slice, *Cat and *Replicate.
type Expression interface {
	isExpression()
}

// Operator applies Op to one, two or three operands. The only ternary
// operator is "m" (value select).
type Operator struct {
	Op       string
	Operands []Expression
}

func (o *Operator) isExpression() {}

// Slice selects the half-open bit range [Start, Stop) of Value.
type Slice struct {
	Value Expression
	Start int
	Stop  int
}

func (s *Slice) isExpression() {}

// Cat concatenates Parts, stored least-significant first. Emission reverses
// the order so the most significant part is printed first.
type Cat struct {
	Parts []Expression
}

func (c *Cat) isExpression() {}

// Replicate repeats Value Count times.
type Replicate struct {
	Count int
	Value Expression
}

func (r *Replicate) isExpression() {}

// Statement is the closed set of behavioral IR nodes: *Assign, *If, *Case,
// *Display and *Finish.
type Statement interface {
	isStatement()
}

// Block is an order-significant statement sequence.
type Block []Statement

// Assign drives LHS with RHS.
type Assign struct {
	LHS Expression
	RHS Expression
}

func (a *Assign) isStatement() {}

// If guards Then (and an optional Else) with Cond.
type If struct {
	Cond Expression
	Then Block
	Else Block
}

func (i *If) isStatement() {}

// Case dispatches on Test over constant-keyed arms. A nil Choice marks the
// default arm. Arms are emitted sorted by ascending constant value with the
// default last, independent of their order here.
type Case struct {
	Test Expression
	Arms []CaseArm
}

// CaseArm is one branch of a Case.
type CaseArm struct {
	Choice *Constant
	Body   Block
}

func (c *Case) isStatement() {}

// Display is a simulation diagnostic print.
type Display struct {
	Format string
	Args   []Expression
}

func (d *Display) isStatement() {}

// Finish terminates simulation.
type Finish struct{}

func (f *Finish) isStatement() {}

// Attribute annotates a signal or special instance. Plain attributes (Explicit
// false) are looked up in the conversion's attribute translator and silently
// dropped when no translation exists; explicit attributes carry their own
// value. Number marks values emitted without quotes.
type Attribute struct {
	Name     string
	Value    string
	Explicit bool
	Number   bool
}

// ClockDomain associates a name with the clock and reset signals governing a
// group of synchronous statements.
type ClockDomain struct {
	Name string
	Clk  *Signal
	Rst  *Signal
}

// NewClockDomain creates a domain with freshly created 1-bit clock and reset
// signals named after the domain.
func NewClockDomain(name string) *ClockDomain {
	return &ClockDomain{
		Name: name,
		Clk:  NewNamedSignal(1, name+"_clk"),
		Rst:  NewNamedSignal(1, name+"_rst"),
	}
}

// Fragment is the unit of translation: the combinational and synchronous
// statements, special instances and known clock domains of one module.
type Fragment struct {
	Comb []Statement
	// Sync maps a clock-domain name to the statements clocked by it.
	Sync         map[string]Block
	Specials     []Special
	ClockDomains []*ClockDomain
}

// NewFragment returns an empty fragment.
func NewFragment() *Fragment {
	return &Fragment{Sync: make(map[string]Block)}
}

// Fragment implements the converter's Design interface so a fragment can be
// handed over directly.
func (f *Fragment) Fragment() *Fragment { return f }

// Domain looks up a registered clock domain by name.
func (f *Fragment) Domain(name string) (*ClockDomain, bool) {
	for _, cd := range f.ClockDomains {
		if cd.Name == name {
			return cd, true
		}
	}
	return nil, false
}

// AddClockDomain registers a domain.
func (f *Fragment) AddClockDomain(cd *ClockDomain) {
	f.ClockDomains = append(f.ClockDomains, cd)
}

// AddComb appends combinational statements.
func (f *Fragment) AddComb(stmts ...Statement) {
	f.Comb = append(f.Comb, stmts...)
}

// AddSync appends statements to the named clock domain.
func (f *Fragment) AddSync(domain string, stmts ...Statement) {
	if f.Sync == nil {
		f.Sync = make(map[string]Block)
	}
	f.Sync[domain] = append(f.Sync[domain], stmts...)
}

// AddSpecial registers a structural primitive instance.
func (f *Fragment) AddSpecial(sp Special) {
	f.Specials = append(f.Specials, sp)
}

// Special is an instantiated structural primitive, rendered by a dedicated
// kind-specific emitter rather than generic statement rendering.
type Special interface {
	SpecialKind() string
	SpecialDUID() int64
	SpecialAttr() []Attribute
}

// SpecialIOLister is implemented by specials whose pins must participate in
// port classification and namespace construction.
type SpecialIOLister interface {
	SpecialIOs(ins, outs, inouts bool) []*Signal
}
