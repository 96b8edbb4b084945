package ir

import (
	"fmt"
	"io"
)

// Dump writes a simple human-readable summary of the fragment, for
// debugging. It is not the Verilog emitter; see the verilog package.
func Dump(f *Fragment, w io.Writer) {
	if f == nil {
		fmt.Fprintln(w, "<nil fragment>")
		return
	}
	fmt.Fprintf(w, "fragment: %d comb statement(s)\n", len(f.Comb))
	dumpSignals(f, w)
	dumpDomains(f, w)
	dumpSpecials(f, w)
}

func dumpSignals(f *Fragment, w io.Writer) {
	sigs := ListSignals(f)
	if sigs.Len() == 0 {
		return
	}
	fmt.Fprintln(w, "  signals:")
	for _, s := range sigs.Ordered() {
		name := s.NameOverride
		if name == "" && len(s.Trail) > 0 {
			name = s.Trail[0]
		}
		if name == "" {
			name = "?"
		}
		fmt.Fprintf(w, "    #%d %-12s %db%s\n", s.DUID, name, s.Width, signSuffix(s.Signed))
	}
}

func dumpDomains(f *Fragment, w io.Writer) {
	if len(f.Sync) == 0 {
		return
	}
	fmt.Fprintln(w, "  sync domains:")
	for _, name := range ListClockDomains(f) {
		fmt.Fprintf(w, "    %-12s %d statement(s)\n", name, len(f.Sync[name]))
	}
}

func dumpSpecials(f *Fragment, w io.Writer) {
	if len(f.Specials) == 0 {
		return
	}
	fmt.Fprintln(w, "  specials:")
	for _, sp := range f.Specials {
		fmt.Fprintf(w, "    #%d %s\n", sp.SpecialDUID(), sp.SpecialKind())
	}
}

func signSuffix(signed bool) string {
	if signed {
		return " signed"
	}
	return ""
}
