package config

import (
	"io"

	"tempfin-go/nvm"
	"tempfin-go/status"
	"tempfin-go/x/fmtx"
)

// Runner is the request context: the registry, the node arena, the comm
// mode and the persistence hook. Exactly one in-flight request owns it;
// the arena and pool are fully reset at the start of every parse.
//
// Get, Set, Print and Persist are the index-checked gateways used by both
// codecs and by external consumers. They bounds-check so accessors don't
// have to.
type Runner struct {
	Reg  *Registry
	List List
	Mode Mode
	NVM  nvm.Store // nil disables persistence

	lineLen int // length of the input line, reported once in the footer
}

func NewRunner(reg *Registry, store nvm.Store) *Runner {
	r := &Runner{Reg: reg, Mode: ModeJSON, NVM: store}
	r.List.Reset()
	return r
}

// Get copies the target's value into the node and tags its type.
func (r *Runner) Get(n *Node) status.Code {
	if n.Index < 0 || int(n.Index) >= r.Reg.Len() {
		return status.UnrecognizedCommand
	}
	e := r.Reg.Entry(n.Index)
	switch e.Kind {
	case KindNull:
		n.Type = TypeNull
		return status.NoOp
	case KindUint8:
		n.Value = float64(*e.Target.(*uint8))
		n.Type = TypeInteger
	case KindUint32:
		n.Value = float64(*e.Target.(*uint32))
		n.Type = TypeInteger
	case KindFloat:
		n.Value = *e.Target.(*float64)
		n.Type = TypeFloat
	case KindString:
		if sc := r.List.SetString(n, []byte(*e.Target.(*string))); sc != status.OK {
			return sc
		}
		n.Type = TypeString
	case KindGroup:
		return r.getGroup(n)
	}
	return status.OK
}

// Set copies the node's value into the target. No validation is performed
// beyond the index bounds check; targets accept whatever the wire said.
func (r *Runner) Set(n *Node) status.Code {
	if n.Index < 0 || int(n.Index) >= r.Reg.Len() {
		return status.UnrecognizedCommand
	}
	e := r.Reg.Entry(n.Index)
	switch e.Kind {
	case KindNull:
		return status.NoOp
	case KindUint8:
		*e.Target.(*uint8) = uint8(n.Value)
		n.Type = TypeInteger
	case KindUint32:
		*e.Target.(*uint32) = uint32(n.Value)
		n.Type = TypeInteger
	case KindFloat:
		*e.Target.(*float64) = n.Value
		n.Type = TypeFloat
	case KindString:
		*e.Target.(*string) = string(r.List.String(n))
	case KindGroup:
		return r.setGroup(n)
	}
	return status.OK
}

// Print refreshes the node from its target and renders it through the
// entry's bound format string. Entries with an empty format print nothing.
func (r *Runner) Print(n *Node, w io.Writer) {
	if n.Index < 0 || int(n.Index) >= r.Reg.Len() {
		return
	}
	e := r.Reg.Entry(n.Index)
	if e.Kind == KindNull || e.Kind == KindGroup || e.Format == "" {
		return
	}
	r.Get(n)
	switch e.Kind {
	case KindUint8, KindUint32:
		fmtx.Fprintf(w, e.Format, int64(n.Value))
	case KindFloat:
		fmtx.Fprintf(w, e.Format, n.Value)
	case KindString:
		fmtx.Fprintf(w, e.Format, string(r.List.String(n)))
	}
}

// Persist conditionally writes the node's value through to NVM: only for
// Persist-flagged entries in the single-valued range, and only when the
// stored value actually differs.
func (r *Runner) Persist(n *Node) {
	if r.NVM == nil {
		return
	}
	if n.Index < 0 || !r.Reg.IsSingle(n.Index) {
		return
	}
	if r.Reg.Entry(n.Index).Flags&FlagPersist == 0 {
		return
	}
	prev, err := r.NVM.Read(int(n.Index))
	if err == nil && prev == n.Value {
		return
	}
	_ = r.NVM.Write(int(n.Index), n.Value)
}

// Hydrate populates a node from its registry entry: token, group and
// current value. The group prefix is stripped from the token unless the
// entry carries NoStrip, in which case the group field is cleared instead
// (system identity children print bare).
func (r *Runner) Hydrate(n *Node) {
	if n.Index < 0 || int(n.Index) >= r.Reg.Len() {
		return
	}
	idx := n.Index
	r.List.ResetNode(n)
	n.Index = idx

	e := r.Reg.Entry(idx)
	n.SetToken(e.Token)
	n.SetGroup(e.Group)
	if e.Group != "" {
		if e.Flags&FlagNoStrip != 0 {
			n.SetGroup("")
		} else {
			n.SetToken(e.Token[len(e.Group):])
		}
	}
	r.Get(n)
}

// getGroup expands a group request: the node's token names the group, the
// node becomes the Parent, and one hydrated child is appended per matching
// single-valued entry, in registry order.
func (r *Runner) getGroup(n *Node) status.Code {
	group := n.Token()
	n.Type = TypeParent
	for i := 0; i < r.Reg.startGroups(); i++ {
		if r.Reg.entries[i].Group != group {
			continue
		}
		n = n.Nx
		if n == nil {
			return status.BufferFull
		}
		n.Index = Index(i)
		r.Hydrate(n)
	}
	return status.OK
}

// setGroup walks a group's already-parsed children in list order: a Null
// child reads its value, anything else writes it and persists. Only the
// JSON grammar can express this; text mode rejects it outright.
func (r *Runner) setGroup(n *Node) status.Code {
	if r.Mode == ModeText {
		return status.UnrecognizedCommand
	}
	for i := 0; i < MaxObjects; i++ {
		if n = n.Nx; n == nil {
			break
		}
		if n.Type == TypeEmpty {
			break
		}
		if n.Type == TypeNull {
			r.Get(n)
		} else {
			r.Set(n)
			r.Persist(n)
		}
	}
	return status.OK
}

// ApplyDefaults runs the startup sweep: every Initialize-flagged
// single-valued entry has its default written through the normal set path.
func (r *Runner) ApplyDefaults() {
	n := r.List.Reset()
	for i := 0; i < r.Reg.startGroups(); i++ {
		e := r.Reg.Entry(Index(i))
		if e.Flags&FlagInitialize == 0 {
			continue
		}
		n.Index = Index(i)
		n.Value = e.Def
		n.SetToken(e.Token)
		r.Set(n)
	}
}

// RestoreNVM overwrites Persist-flagged entries with their stored values.
// Slots never written stay at their defaults.
func (r *Runner) RestoreNVM() {
	if r.NVM == nil {
		return
	}
	n := r.List.Reset()
	for i := 0; i < r.Reg.startGroups(); i++ {
		e := r.Reg.Entry(Index(i))
		if e.Flags&FlagPersist == 0 {
			continue
		}
		v, err := r.NVM.Read(i)
		if err != nil {
			continue
		}
		n.Index = Index(i)
		n.Value = v
		n.SetToken(e.Token)
		r.Set(n)
	}
}
