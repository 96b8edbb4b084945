package ir

// MemoryKind tags the built-in memory special.
const MemoryKind = "memory"

// Memory is a depth x width word store with one or more access ports. It is
// the one special with a built-in emitter; all other kinds need a registered
// override.
type Memory struct {
	duid int64
	// Name seeds the identifier of the storage array; "mem" when empty.
	Name  string
	Width int
	Depth int
	// Init, when non-empty, holds the initial word contents registered as an
	// auxiliary data file at emission time.
	Init  []int64
	Ports []*MemoryPort
	Attr  []Attribute
}

// MemoryPort is one access port of a memory. DatR is the read data pin; a
// non-nil WE gates writes of DatW. Async ports read combinationally, clocked
// ports register the address on Clk.
type MemoryPort struct {
	Adr   *Signal
	DatR  *Signal
	WE    *Signal
	DatW  *Signal
	Async bool
	Clk   *Signal
}

// NewMemory creates an empty memory special.
func NewMemory(width, depth int) *Memory {
	return &Memory{duid: nextDUID(), Width: width, Depth: depth}
}

// AddPort attaches an access port.
func (m *Memory) AddPort(p *MemoryPort) {
	m.Ports = append(m.Ports, p)
}

func (m *Memory) SpecialKind() string      { return MemoryKind }
func (m *Memory) SpecialDUID() int64       { return m.duid }
func (m *Memory) SpecialAttr() []Attribute { return m.Attr }

// SpecialIOs reports the port pins in each direction. Address, write data,
// write enable and clock pins are inputs of the memory; read data pins are
// outputs. Memories have no bidirectional pins.
func (m *Memory) SpecialIOs(ins, outs, inouts bool) []*Signal {
	var sigs []*Signal
	for _, p := range m.Ports {
		if ins {
			for _, s := range []*Signal{p.Adr, p.WE, p.DatW, p.Clk} {
				if s != nil {
					sigs = append(sigs, s)
				}
			}
		}
		if outs && p.DatR != nil {
			sigs = append(sigs, p.DatR)
		}
	}
	return sigs
}
