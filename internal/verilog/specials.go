package verilog

import (
	"sort"
	"strings"

	"verigen/internal/ir"
	"verigen/internal/namer"
)

// AddDataFileFunc registers an auxiliary data file produced by a special
// emitter and returns the (possibly deduplicated) name it was stored under.
type AddDataFileFunc func(name string, content []byte) string

// SpecialEmitter renders one structural-primitive instance. Emitters are
// keyed by the primitive's kind; the memory kind has a built-in emitter,
// every other kind needs a caller-supplied override.
type SpecialEmitter func(sp ir.Special, ns *namer.Namespace, addDataFile AddDataFileFunc) (string, error)

// renderSpecials dispatches each special instance to its kind's emitter,
// in creation order, with attribute annotations first.
func renderSpecials(f *ir.Fragment, ns *namer.Namespace, cfg Config, out *Output) (string, error) {
	specials := make([]ir.Special, len(f.Specials))
	copy(specials, f.Specials)
	sort.Slice(specials, func(i, j int) bool {
		return specials[i].SpecialDUID() < specials[j].SpecialDUID()
	})

	var b strings.Builder
	for _, sp := range specials {
		if attr := renderAttributes(sp.SpecialAttr(), cfg.AttrTranslate); attr != "" {
			b.WriteString(attr + " ")
		}
		emitter, ok := cfg.SpecialOverrides[sp.SpecialKind()]
		if !ok {
			if sp.SpecialKind() != ir.MemoryKind {
				return "", &UnimplementedSpecialError{Kind: sp.SpecialKind()}
			}
			emitter = emitMemory
		}
		r, err := emitter(sp, ns, out.addDataFile)
		if err != nil {
			return "", err
		}
		b.WriteString(r)
	}
	return b.String(), nil
}
