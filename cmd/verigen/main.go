// Command verigen emits the built-in demonstration design as Verilog. It
// exists to exercise the whole emission pipeline end to end; real front ends
// construct their own fragments and call verilog.Convert directly.
package main

import (
	"flag"
	"fmt"
	"os"

	"verigen/internal/config"
	"verigen/internal/ir"
	"verigen/internal/validate"
	"verigen/internal/verilog"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("verigen", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	configPath := fs.String("config", "", "TOML configuration file (optional)")
	output := fs.String("o", "", "output file path (stdout when omitted)")
	top := fs.String("top", "", "emitted module name")
	sim := fs.Bool("sim", false, "use the simulation-oriented combinational strategy")
	blocking := fs.Bool("blocking", false, "use blocking assignments in combinational blocks")
	dumpIR := fs.Bool("dump-ir", false, "print the IR fragment to stderr before emission")
	if err := fs.Parse(args); err != nil {
		return err
	}

	settings := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			return err
		}
		settings = loaded
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "o":
			settings.Output = *output
		case "top":
			settings.Top = *top
		case "sim":
			settings.SimulationMode = *sim
		case "blocking":
			settings.BlockingAssign = *blocking
		}
	})

	f, ports := buildDemoDesign()
	if *dumpIR {
		ir.Dump(f, os.Stderr)
	}
	if err := validate.Check(f); err != nil {
		return err
	}

	out, err := verilog.Convert(f, ports, settings.Top, settings.Conversion())
	if err != nil {
		return err
	}

	if settings.Output == "" || settings.Output == "-" {
		if len(out.DataFiles) > 0 {
			return fmt.Errorf("verigen: design registers data files, -o is required")
		}
		_, err := os.Stdout.WriteString(out.Verilog)
		return err
	}
	return out.Write(settings.Output)
}

// buildDemoDesign assembles a small blinker: a free-running counter in the
// "sys" domain, a combinational LED drive off the counter's top bit, and a
// preloaded memory streamed out over a clocked read port.
func buildDemoDesign() (*ir.Fragment, []*ir.Signal) {
	f := ir.NewFragment()

	sw := ir.NewNamedSignal(1, "sw")
	led := ir.NewNamedSignal(1, "led")
	pattern := ir.NewNamedSignal(8, "pattern")

	counter := ir.NewSignal(24)
	counter.Trail = []string{"counter"}

	f.AddSync("sys", &ir.Assign{
		LHS: counter,
		RHS: &ir.Operator{Op: "+", Operands: []ir.Expression{counter, ir.NewConstant(1, 24, false)}},
	})

	f.AddComb(&ir.Assign{
		LHS: led,
		RHS: &ir.Operator{Op: "^", Operands: []ir.Expression{
			&ir.Slice{Value: counter, Start: 23, Stop: 24},
			sw,
		}},
	})

	adr := ir.NewSignal(4)
	adr.Trail = []string{"pattern_adr"}
	f.AddComb(&ir.Assign{
		LHS: adr,
		RHS: &ir.Slice{Value: counter, Start: 0, Stop: 4},
	})

	mem := ir.NewMemory(8, 16)
	mem.Name = "pattern_mem"
	mem.Init = []int64{0x01, 0x02, 0x04, 0x08, 0x10, 0x20, 0x40, 0x80}
	cd := ir.NewClockDomain("sys")
	f.AddClockDomain(cd)
	mem.AddPort(&ir.MemoryPort{
		Adr:  adr,
		DatR: pattern,
		Clk:  cd.Clk,
	})
	f.AddSpecial(mem)

	ports := []*ir.Signal{sw, led, pattern, cd.Clk, cd.Rst}
	return f, ports
}
