package verilog

import (
	"fmt"
	"os"
	"path/filepath"

	"verigen/internal/ir"
	"verigen/internal/namer"
)

// DataFile is an auxiliary artifact registered during conversion, such as
// initial memory contents referenced by the emitted Verilog.
type DataFile struct {
	Name    string
	Content []byte
}

// SignalInfo is the emission metadata resolved for one signal during a
// conversion call. It lives here rather than on the IR so the input stays
// immutable.
type SignalInfo struct {
	Name      string
	Direction string // input, output or inout; empty for internal signals
	Kind      string // wire or reg
}

// Output is the result of one conversion call: the Verilog document, the
// resolved namespace, per-signal emission metadata and any registered
// auxiliary data files.
type Output struct {
	Verilog   string
	Namespace *namer.Namespace
	Signals   map[*ir.Signal]SignalInfo
	DataFiles []DataFile
}

func newOutput() *Output {
	return &Output{Signals: make(map[*ir.Signal]SignalInfo)}
}

// addDataFile registers an auxiliary file and returns the name it was stored
// under, which differs from the requested one when that name is already
// taken.
func (o *Output) addDataFile(name string, content []byte) string {
	final := name
	ext := filepath.Ext(name)
	base := name[:len(name)-len(ext)]
	for i := 1; o.hasDataFile(final); i++ {
		final = fmt.Sprintf("%s_%d%s", base, i, ext)
	}
	o.DataFiles = append(o.DataFiles, DataFile{Name: final, Content: content})
	return final
}

func (o *Output) hasDataFile(name string) bool {
	for _, df := range o.DataFiles {
		if df.Name == name {
			return true
		}
	}
	return false
}

// Write stores the Verilog document at mainPath and every data file next to
// it.
func (o *Output) Write(mainPath string) error {
	if err := os.WriteFile(mainPath, []byte(o.Verilog), 0o644); err != nil {
		return fmt.Errorf("verilog: write output: %w", err)
	}
	dir := filepath.Dir(mainPath)
	for _, df := range o.DataFiles {
		if err := os.WriteFile(filepath.Join(dir, df.Name), df.Content, 0o644); err != nil {
			return fmt.Errorf("verilog: write data file %s: %w", df.Name, err)
		}
	}
	return nil
}

func (o *Output) recordSignal(s *ir.Signal, name, direction, kind string) {
	o.Signals[s] = SignalInfo{Name: name, Direction: direction, Kind: kind}
}
