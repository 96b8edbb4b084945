package ir

import "sort"

// SignalSet is a set of signals with deterministic, creation-ordered
// iteration.
type SignalSet struct {
	m map[*Signal]struct{}
}

// NewSignalSet builds a set from the given signals.
func NewSignalSet(sigs ...*Signal) *SignalSet {
	set := &SignalSet{m: make(map[*Signal]struct{})}
	for _, s := range sigs {
		set.Add(s)
	}
	return set
}

// Add inserts a signal.
func (set *SignalSet) Add(s *Signal) {
	if s != nil {
		set.m[s] = struct{}{}
	}
}

// AddSet inserts every signal of other.
func (set *SignalSet) AddSet(other *SignalSet) {
	for s := range other.m {
		set.m[s] = struct{}{}
	}
}

// Remove deletes a signal from the set.
func (set *SignalSet) Remove(s *Signal) {
	delete(set.m, s)
}

// Has reports membership.
func (set *SignalSet) Has(s *Signal) bool {
	_, ok := set.m[s]
	return ok
}

// Len returns the number of signals in the set.
func (set *SignalSet) Len() int { return len(set.m) }

// Intersects reports whether the two sets share any signal.
func (set *SignalSet) Intersects(other *SignalSet) bool {
	small, large := set, other
	if large.Len() < small.Len() {
		small, large = large, small
	}
	for s := range small.m {
		if large.Has(s) {
			return true
		}
	}
	return false
}

// Ordered returns the signals sorted by creation ordinal.
func (set *SignalSet) Ordered() []*Signal {
	sigs := make([]*Signal, 0, len(set.m))
	for s := range set.m {
		sigs = append(sigs, s)
	}
	sort.Slice(sigs, func(i, j int) bool { return sigs[i].DUID < sigs[j].DUID })
	return sigs
}

// lhsSignals collects the signals written through an assignment destination,
// looking through slices, concatenations and replications.
func lhsSignals(expr Expression, into *SignalSet) {
	switch e := expr.(type) {
	case *Signal:
		into.Add(e)
	case *Slice:
		lhsSignals(e.Value, into)
	case *Cat:
		for _, part := range e.Parts {
			lhsSignals(part, into)
		}
	case *Replicate:
		lhsSignals(e.Value, into)
	}
}

// ListTargets returns the set of signals the given statements may write.
// Both branches of an If and every arm of a Case contribute.
func ListTargets(stmts ...Statement) *SignalSet {
	set := NewSignalSet()
	for _, stmt := range stmts {
		listTargets(stmt, set)
	}
	return set
}

func listTargets(stmt Statement, into *SignalSet) {
	switch s := stmt.(type) {
	case *Assign:
		lhsSignals(s.LHS, into)
	case *If:
		for _, sub := range s.Then {
			listTargets(sub, into)
		}
		for _, sub := range s.Else {
			listTargets(sub, into)
		}
	case *Case:
		for _, arm := range s.Arms {
			for _, sub := range arm.Body {
				listTargets(sub, into)
			}
		}
	}
}

// exprSignals collects every signal referenced by an expression.
func exprSignals(expr Expression, into *SignalSet) {
	switch e := expr.(type) {
	case *Signal:
		into.Add(e)
	case *Operator:
		for _, op := range e.Operands {
			exprSignals(op, into)
		}
	case *Slice:
		exprSignals(e.Value, into)
	case *Cat:
		for _, part := range e.Parts {
			exprSignals(part, into)
		}
	case *Replicate:
		exprSignals(e.Value, into)
	}
}

func stmtSignals(stmt Statement, into *SignalSet) {
	switch s := stmt.(type) {
	case *Assign:
		exprSignals(s.LHS, into)
		exprSignals(s.RHS, into)
	case *If:
		exprSignals(s.Cond, into)
		for _, sub := range s.Then {
			stmtSignals(sub, into)
		}
		for _, sub := range s.Else {
			stmtSignals(sub, into)
		}
	case *Case:
		exprSignals(s.Test, into)
		for _, arm := range s.Arms {
			for _, sub := range arm.Body {
				stmtSignals(sub, into)
			}
		}
	case *Display:
		for _, arg := range s.Args {
			exprSignals(arg, into)
		}
	}
}

// ListSignals returns every signal read or written by the fragment's
// combinational and synchronous statements.
func ListSignals(f *Fragment) *SignalSet {
	set := NewSignalSet()
	for _, stmt := range f.Comb {
		stmtSignals(stmt, set)
	}
	for _, block := range f.Sync {
		for _, stmt := range block {
			stmtSignals(stmt, set)
		}
	}
	return set
}

// ListSpecialIOs returns the pins of the fragment's specials in the requested
// directions. Specials that do not implement SpecialIOLister contribute
// nothing.
func ListSpecialIOs(f *Fragment, ins, outs, inouts bool) *SignalSet {
	set := NewSignalSet()
	for _, sp := range f.Specials {
		lister, ok := sp.(SpecialIOLister)
		if !ok {
			continue
		}
		for _, s := range lister.SpecialIOs(ins, outs, inouts) {
			set.Add(s)
		}
	}
	return set
}

// ListClockDomains returns the sorted names of the clock domains referenced
// by the fragment's synchronous statements.
func ListClockDomains(f *Fragment) []string {
	names := make([]string, 0, len(f.Sync))
	for name := range f.Sync {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// TargetGroup is a maximal set of combinational statements whose write-target
// sets overlap, together with the union of those targets.
type TargetGroup struct {
	Targets *SignalSet
	Stmts   []Statement
}

// GroupByTargets partitions the statements so that any two statements sharing
// a write target land in the same group, transitively. Groups are ordered by
// the position of their first statement, and statements keep their original
// order inside a group.
func GroupByTargets(stmts []Statement) []TargetGroup {
	type protoGroup struct {
		targets *SignalSet
		indices []int
	}
	var groups []*protoGroup
	for idx, stmt := range stmts {
		targets := ListTargets(stmt)
		var merged *protoGroup
		kept := groups[:0]
		for _, g := range groups {
			if !g.targets.Intersects(targets) {
				kept = append(kept, g)
				continue
			}
			if merged == nil {
				merged = g
				kept = append(kept, g)
				continue
			}
			merged.targets.AddSet(g.targets)
			merged.indices = append(merged.indices, g.indices...)
		}
		groups = kept
		if merged == nil {
			groups = append(groups, &protoGroup{targets: targets, indices: []int{idx}})
		} else {
			merged.targets.AddSet(targets)
			merged.indices = append(merged.indices, idx)
		}
	}
	for _, g := range groups {
		sort.Ints(g.indices)
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].indices[0] < groups[j].indices[0] })
	result := make([]TargetGroup, 0, len(groups))
	for _, g := range groups {
		grouped := make([]Statement, 0, len(g.indices))
		for _, idx := range g.indices {
			grouped = append(grouped, stmts[idx])
		}
		result = append(result, TargetGroup{Targets: g.targets, Stmts: grouped})
	}
	return result
}

// IsVariable reports whether an assignment destination is variable-like
// storage. Concatenations are variable only when every part is.
func IsVariable(expr Expression) bool {
	switch e := expr.(type) {
	case *Signal:
		return e.Variable
	case *Slice:
		return IsVariable(e.Value)
	case *Replicate:
		return IsVariable(e.Value)
	case *Cat:
		for _, part := range e.Parts {
			if !IsVariable(part) {
				return false
			}
		}
		return len(e.Parts) > 0
	default:
		return false
	}
}
