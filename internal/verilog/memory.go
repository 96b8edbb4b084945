package verilog

import (
	"fmt"
	"strconv"
	"strings"

	"verigen/internal/ir"
	"verigen/internal/namer"
)

// emitMemory is the built-in emitter for the memory special: a word-array
// register, per-port read/write logic and an optional $readmemh
// initialization backed by a registered data file.
func emitMemory(sp ir.Special, ns *namer.Namespace, addDataFile AddDataFileFunc) (string, error) {
	m, ok := sp.(*ir.Memory)
	if !ok {
		return "", fmt.Errorf("verilog: memory emitter invoked on %T", sp)
	}
	base := m.Name
	if base == "" {
		base = "mem"
	}
	// Route the array name through the namespace so it cannot collide with
	// any signal identifier.
	storage := ns.Name(ir.NewNamedSignal(1, base))

	var b strings.Builder
	b.WriteString("reg [" + strconv.Itoa(m.Width-1) + ":0] " + storage + "[0:" + strconv.Itoa(m.Depth-1) + "];\n")

	for _, p := range m.Ports {
		clockedWrite := p.WE != nil
		clockedRead := !p.Async && p.DatR != nil
		if (clockedWrite || clockedRead) && p.Clk == nil {
			return "", fmt.Errorf("verilog: clocked memory port of %s has no clock", storage)
		}

		var adrReg *ir.Signal
		if clockedRead {
			adrReg = ir.NewSignal(p.Adr.Width)
			adrReg.NameOverride = storage + "_adr"
			b.WriteString("reg " + printSignal(ns, adrReg) + ";\n")
		}

		if clockedWrite || clockedRead {
			b.WriteString("always @(posedge " + ns.Name(p.Clk) + ") begin\n")
			if clockedWrite {
				b.WriteString("\tif (" + ns.Name(p.WE) + ")\n")
				b.WriteString("\t\t" + storage + "[" + ns.Name(p.Adr) + "] <= " + ns.Name(p.DatW) + ";\n")
			}
			if clockedRead {
				b.WriteString("\t" + ns.Name(adrReg) + " <= " + ns.Name(p.Adr) + ";\n")
			}
			b.WriteString("end\n")
		}

		if p.DatR != nil {
			if p.Async {
				b.WriteString("assign " + ns.Name(p.DatR) + " = " + storage + "[" + ns.Name(p.Adr) + "];\n")
			} else {
				b.WriteString("assign " + ns.Name(p.DatR) + " = " + storage + "[" + ns.Name(adrReg) + "];\n")
			}
		}
	}

	if len(m.Init) > 0 {
		filename := addDataFile(storage+".init", memoryInitContents(m))
		b.WriteString("initial begin\n")
		b.WriteString("\t$readmemh(\"" + filename + "\", " + storage + ");\n")
		b.WriteString("end\n")
	}
	b.WriteString("\n")
	return b.String(), nil
}

// memoryInitContents formats the initial words as hexadecimal text, one word
// per line, truncated to the memory width.
func memoryInitContents(m *ir.Memory) []byte {
	mask := uint64(1)<<uint(m.Width) - 1
	if m.Width >= 64 {
		mask = ^uint64(0)
	}
	var b strings.Builder
	for _, word := range m.Init {
		fmt.Fprintf(&b, "%x\n", uint64(word)&mask)
	}
	return []byte(b.String())
}
