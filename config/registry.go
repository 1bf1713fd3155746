package config

// Entry is one compiled field descriptor. Entries are immutable after
// NewRegistry; the Target pointer is the only window onto live memory.
//
// Token carries the full lookup token including any group prefix (e.g.
// "h1st" in group "h1"). System identity entries keep bare tokens ("fv")
// with group "sys" and the NoStrip flag.
type Entry struct {
	Group  string
	Token  string
	Flags  Flags
	Format string // print format; empty means print nothing
	Kind   Kind
	Target any     // *uint8, *uint32, *float64 or *string per Kind; nil for null/group
	Def    float64 // default value applied when FlagInitialize is set
}

// Registry is the process-wide, read-only table of entries. Group entries
// (and uber-group entries, if any) must sit at the tail of the table, after
// every single-valued entry.
//
// Authoring invariant, not checked at runtime: where tokens overlap as
// prefixes the longer token must be listed first, or resolution picks the
// wrong entry.
type Registry struct {
	entries []Entry
	groups  int // count of group entries at the tail
	ubers   int // count of uber-group entries after those
}

func NewRegistry(entries []Entry, groups, ubers int) *Registry {
	return &Registry{entries: entries, groups: groups, ubers: ubers}
}

func (r *Registry) Len() int { return len(r.entries) }

// Entry returns the descriptor at i. Callers must bounds-check first; the
// dispatch gateways do.
func (r *Registry) Entry(i Index) *Entry { return &r.entries[i] }

func (r *Registry) startGroups() int { return len(r.entries) - r.ubers - r.groups }
func (r *Registry) startUbers() int  { return len(r.entries) - r.ubers }

// IsSingle reports whether i names a single-valued entry (not a group or
// uber-group). Only these participate in persistence.
func (r *Registry) IsSingle(i Index) bool {
	return int(i) < r.startGroups()
}

func (r *Registry) IsGroup(i Index) bool {
	return int(i) >= r.startGroups() && int(i) < r.startUbers()
}

// Resolve maps a (group, token) pair to a registry index, or NoMatch. The
// group is prepended to the token and the table is scanned linearly,
// comparing characters progressively and short-circuiting on the first
// mismatch; an entry matches when its characters run out exactly as the
// input's do. O(len(table) * TokenLen), no allocation.
func (r *Registry) Resolve(group, token string) Index {
	if len(group)+len(token) > TokenLen {
		return NoMatch
	}
	var buf [TokenLen]byte
	n := copy(buf[:], group)
	n += copy(buf[n:], token)
	str := buf[:n]

	for i := range r.entries {
		if tokenMatch(r.entries[i].Token, str) {
			return Index(i)
		}
	}
	return NoMatch
}

func tokenMatch(tok string, str []byte) bool {
	for j := 0; j < TokenLen; j++ {
		var tc, sc byte
		if j < len(tok) {
			tc = tok[j]
		}
		if j < len(str) {
			sc = str[j]
		}
		if tc == 0 {
			return sc == 0 // entry exhausted exactly when the input is
		}
		if tc != sc {
			return false
		}
	}
	return true // all TokenLen characters matched
}

// GroupIsPrefixed reports whether a group's children carry the group as a
// token prefix. Members of the groups named here are stored with bare
// tokens, so the group must not be prepended when resolving them.
func (r *Registry) GroupIsPrefixed(group string) bool {
	switch group {
	case "sr", "sys":
		return false
	}
	return true
}
