package config

import "tempfin-go/status"

// Type tags a node's value.
type Type uint8

const (
	TypeEmpty   Type = iota // node carries no value (not the same as null)
	TypeNull                // JSON null; on requests it means "read"
	TypeBool                // true or false, carried in Value
	TypeInteger             // integral value, carried in Value
	TypeFloat               // floating point value, carried in Value
	TypeString              // value is in the string pool
	TypeArray               // array payload held verbatim in the string pool
	TypeParent              // node opens a nested object
)

// strRef locates a string payload in the pool.
type strRef struct {
	off uint8
	n   uint8
}

// Pool is a single append-only byte arena shared by all nodes of one
// request. There is no individual reclamation, only whole-pool reset.
type Pool struct {
	wp  int
	buf [SharedStringLen]byte
}

func (p *Pool) Reset() { p.wp = 0 }

// Copy appends src to the arena and returns its reference.
func (p *Pool) Copy(src []byte) (strRef, status.Code) {
	if p.wp+len(src) > SharedStringLen {
		return strRef{}, status.BufferFull
	}
	off := p.wp
	p.wp += copy(p.buf[off:], src)
	return strRef{off: uint8(off), n: uint8(len(src))}, status.OK
}

func (p *Pool) bytes(r strRef) []byte { return p.buf[r.off : int(r.off)+int(r.n)] }

// Node is one slot in the flat request/response list. Nesting is encoded by
// Depth rather than child pointers: a node's depth is its predecessor's
// depth plus one if the predecessor is a Parent, else the same.
type Node struct {
	Pv, Nx *Node // arena links; Pv == nil on the header, Nx == nil on the last node
	Index  Index
	Depth  int8
	Type   Type
	Value  float64

	str  strRef
	tok  [TokenLen]byte
	grp  [GroupLen]byte
	tlen uint8
	glen uint8
}

func (n *Node) Token() string { return string(n.tok[:n.tlen]) }
func (n *Node) Group() string { return string(n.grp[:n.glen]) }

func (n *Node) TokenBytes() []byte { return n.tok[:n.tlen] }

func (n *Node) SetToken(s string) {
	n.tlen = uint8(copy(n.tok[:], s))
}

func (n *Node) SetGroup(s string) {
	n.glen = uint8(copy(n.grp[:], s))
}

func (n *Node) setTokenBytes(b []byte) {
	n.tlen = uint8(copy(n.tok[:], b))
}

// List is the fixed-capacity node arena for one request: a header node, a
// body, and room for a trailing footer. It is reset before every parse and
// reused for the response.
type List struct {
	nodes [ListLen]Node
	pool  Pool
}

// Header returns the response header node ("r").
func (l *List) Header() *Node { return &l.nodes[0] }

// Body returns the first body node.
func (l *List) Body() *Node { return &l.nodes[1] }

// String resolves a node's string payload from the pool.
func (l *List) String(n *Node) []byte { return l.pool.bytes(n.str) }

// SetString copies src into the pool and links it to n.
func (l *List) SetString(n *Node, src []byte) status.Code {
	ref, sc := l.pool.Copy(src)
	if sc != status.OK {
		return sc
	}
	n.str = ref
	return status.OK
}

// Reset clears the arena and the string pool, links the nodes, and installs
// the response header: token "r", depth 0, type Parent. Every round trip
// begins this way. Returns the first body node as a convenience.
func (l *List) Reset() *Node {
	l.pool.Reset()
	for i := range l.nodes {
		n := &l.nodes[i]
		n.Pv = &l.nodes[max(i-1, 0)]
		n.Nx = nil
		if i+1 < ListLen {
			n.Nx = &l.nodes[i+1]
		}
		n.Index = 0
		n.Depth = 1 // header and footer are corrected below / by the caller
		n.Type = TypeEmpty
		n.Value = 0
		n.str = strRef{}
		n.tlen = 0
		n.glen = 0
	}
	hdr := l.Header()
	hdr.Pv = nil
	hdr.Depth = 0
	hdr.Type = TypeParent
	hdr.SetToken("r")
	return l.Body()
}

// ResetNode clears a single node and derives its depth from its
// predecessor: one deeper if the predecessor is a Parent, else equal.
func (l *List) ResetNode(n *Node) *Node {
	n.Type = TypeEmpty
	n.Index = 0
	n.Value = 0
	n.str = strRef{}
	n.tlen = 0
	n.glen = 0
	switch {
	case n.Pv == nil:
		n.Depth = 0
	case n.Pv.Type == TypeParent:
		n.Depth = n.Pv.Depth + 1
	default:
		n.Depth = n.Pv.Depth
	}
	return n
}

// firstFree returns the first empty body node, or nil if the body is full.
func (l *List) firstFree() *Node {
	n := l.Body()
	for i := 0; i < BodyLen; i++ {
		if n.Type == TypeEmpty {
			return n
		}
		n = n.Nx
	}
	return nil
}

// AddInteger appends an integer value to the end of the body.
func (l *List) AddInteger(token string, value uint32) *Node {
	n := l.firstFree()
	if n == nil {
		return nil
	}
	n.SetToken(token)
	n.Value = float64(value)
	n.Type = TypeInteger
	return n
}

// AddFloat appends a floating point value to the end of the body.
func (l *List) AddFloat(token string, value float64) *Node {
	n := l.firstFree()
	if n == nil {
		return nil
	}
	n.SetToken(token)
	n.Value = value
	n.Type = TypeFloat
	return n
}

// AddString appends a string value to the end of the body.
func (l *List) AddString(token string, s string) *Node {
	n := l.firstFree()
	if n == nil {
		return nil
	}
	n.SetToken(token)
	if l.SetString(n, []byte(s)) != status.OK {
		return nil
	}
	n.Type = TypeString
	return n
}

// AddMessage appends a "msg" string to the body.
func (l *List) AddMessage(s string) *Node { return l.AddString("msg", s) }

// AddFooter installs the response footer: an array node at depth 0 that
// terminates the list. payload is the bare array body without brackets.
func (l *List) AddFooter(payload []byte) *Node {
	n := l.firstFree()
	if n == nil {
		return nil
	}
	n.SetToken("f")
	n.Depth = 0
	if l.SetString(n, payload) != status.OK {
		return nil
	}
	n.Type = TypeArray
	n.Nx = nil
	return n
}
