package config

import (
	"bytes"

	"tempfin-go/status"
	"tempfin-go/x/conv"
	"tempfin-go/x/strconvx"
)

// The JSON parser is deliberately small: no recursion, no allocation, one
// level of nesting. Accepted forms:
//
//	{"name":"value"}
//	{"name":12345}
//	{"n1":"v1", "n2":"v2", ... "nN":"vN"}
//	{"parent":""}
//	{"parent":{"n1":"v1", "n2":"v2"}}
//
// Values may be string, number, true, false or null. Numbers can start with
// a digit or '-', never '+' or '.'. A '{' value marks a Parent node and the
// parser keeps going at the deeper level instead of recursing; the active
// group prefix is extended for the sibling tokens that follow. Arrays are
// recognized and rejected with a distinct status.

// ParseExecuteJSON resets the request context, normalizes and parses one
// line into the node body, resolves every token, then executes the lead
// node: Null means get, anything else means set followed by the
// persistence gate. Any error short-circuits to the caller, which
// serializes the error response.
func (r *Runner) ParseExecuteJSON(line []byte) status.Code {
	n := r.List.Reset()
	r.lineLen = len(line)

	buf, sc := normalizeJSON(line)
	if sc != status.OK {
		return sc
	}

	// Parse the name-value pairs into the body.
	var depth int8
	var group string
	pos := 0
	for i := BodyLen; ; {
		if i--; i == 0 {
			return status.TooManyPairs
		}
		sc = r.parsePair(n, buf, &pos, &depth)
		if sc != status.OK && sc != status.Again {
			return sc
		}
		// propagate the parent's group onto this child
		if group != "" {
			n.SetGroup(group)
		}
		if n.Index = r.Reg.Resolve(n.Group(), n.Token()); n.Index == NoMatch {
			return status.UnrecognizedCommand
		}
		if r.Reg.IsGroup(n.Index) && r.Reg.GroupIsPrefixed(n.Token()) {
			group = n.Token() // extend the prefix for the children
		}
		n = n.Nx
		if sc == status.OK { // parsing is complete
			break
		}
	}

	// Execute the lead node.
	lead := r.List.Body()
	if lead.Type == TypeNull { // null means GET the value
		if sc = r.Get(lead); sc != status.OK {
			return sc
		}
	} else {
		if sc = r.Set(lead); sc != status.OK {
			return sc
		}
		r.Persist(lead)
	}
	return status.OK
}

// normalizeJSON rewrites the line in place: control characters and
// whitespace are dropped and everything is folded to lower case, except
// inside "(...)" comment spans which pass through untouched.
func normalizeJSON(str []byte) ([]byte, status.Code) {
	if len(str) > MaxLineLen {
		return nil, status.InputExceedsMaxLen
	}
	w := 0
	inComment := false
	for _, c := range str {
		if !inComment {
			if c == '(' {
				inComment = true
			}
			if c <= ' ' || c == 0x7f {
				continue
			}
			if 'A' <= c && c <= 'Z' {
				c += 'a' - 'A'
			}
			str[w] = c
			w++
		} else {
			if c == ')' {
				inComment = false
			}
			str[w] = c
			w++
		}
	}
	return str[:w], status.OK
}

// parsePair decodes the next name-value pair into n, leaving pos just past
// the pair's terminator. Returns Again while there is more to parse at this
// or a deeper level, OK when the statement is complete, or an error status.
// Assumes the buffer has been normalized.
func (r *Runner) parsePair(n *Node, buf []byte, pos *int, depth *int8) status.Code {
	r.List.ResetNode(n)

	// name part
	q := bytes.IndexByte(buf[*pos:], '"')
	if q < 0 {
		return status.SyntaxError
	}
	*pos += q + 1
	q = bytes.IndexByte(buf[*pos:], '"')
	if q < 0 {
		return status.SyntaxError
	}
	n.setTokenBytes(buf[*pos : *pos+q])
	*pos += q + 1

	// value part, organized from most to least encountered
	c := bytes.IndexByte(buf[*pos:], ':')
	if c < 0 {
		return status.SyntaxError
	}
	*pos += c + 1
	if *pos >= len(buf) {
		return status.SyntaxError
	}

	switch v := buf[*pos]; {
	case v == 'n' || (v == '"' && *pos+1 < len(buf) && buf[*pos+1] == '"'): // null (a get)
		n.Type = TypeNull

	case v >= '0' && v <= '9' || v == '-': // number
		end := *pos
		for end < len(buf) && isNumberChar(buf[end]) {
			end++
		}
		f, err := strconvx.ParseFloat(string(buf[*pos:end]), 64)
		if err != nil || end == *pos {
			return status.BadNumberFormat
		}
		n.Value = f
		n.Type = TypeFloat

	case v == '{': // object parent; continue at the deeper level
		n.Type = TypeParent
		*pos++
		return status.Again

	case v == '"': // string
		*pos++
		n.Type = TypeString
		q = bytes.IndexByte(buf[*pos:], '"')
		if q < 0 {
			return status.SyntaxError
		}
		if sc := r.List.SetString(n, buf[*pos:*pos+q]); sc != status.OK {
			return sc
		}
		*pos += q + 1

	case v == 't': // true
		n.Type = TypeBool
		n.Value = 1
	case v == 'f': // false
		n.Type = TypeBool
		n.Value = 0

	case v == '[': // arrays are rejected, but kept for the error echo
		n.Type = TypeArray
		if sc := r.List.SetString(n, buf[*pos:]); sc != status.OK {
			return sc
		}
		return status.InputValueUnsupported

	default:
		return status.SyntaxError
	}

	// comma separators and closing curlies
	t := bytes.IndexAny(buf[*pos:], "},")
	if t < 0 {
		return status.SyntaxError
	}
	*pos += t
	if buf[*pos] == '}' {
		*depth-- // pop up a nesting level
		*pos++
	}
	if *pos < len(buf) && buf[*pos] == ',' {
		return status.Again
	}
	*pos++
	return status.OK
}

func isNumberChar(c byte) bool {
	return c >= '0' && c <= '9' || c == '-' || c == '+' || c == '.' || c == 'e'
}

// SerializeJSON walks the flat node list once and renders it as a JSON
// object into out's backing array, returning the used slice. A Parent node
// opens a brace; braces close whenever the next node's depth drops, one per
// level, with a final unwind for any depths still open at list end. Empty
// nodes are skipped. Multiple independent runs at the same depth are fine.
func SerializeJSON(l *List, out []byte) []byte {
	n := l.Header()
	initial := n.Depth
	prev := int8(0)
	needComma := false
	var tmp [32]byte

	w := append(out[:0], '{')
	for {
		if n.Type != TypeEmpty {
			if needComma {
				w = append(w, ',')
			}
			needComma = true
			w = append(w, '"')
			w = append(w, n.TokenBytes()...)
			w = append(w, '"', ':')
			switch n.Type {
			case TypeNull:
				w = append(w, '"', '"')
			case TypeInteger:
				w = append(w, conv.Itoa(tmp[:20], int64(n.Value))...)
			case TypeFloat:
				w = append(w, conv.Ftoa(tmp[:], n.Value, 3)...)
			case TypeString:
				w = append(w, '"')
				w = append(w, l.String(n)...)
				w = append(w, '"')
			case TypeArray:
				w = append(w, '[')
				w = append(w, l.String(n)...)
				w = append(w, ']')
			case TypeBool:
				if n.Value == 0 {
					w = append(w, "false"...)
				} else {
					w = append(w, "true"...)
				}
			case TypeParent:
				w = append(w, '{')
				needComma = false
			}
		}
		if n = n.Nx; n == nil {
			break
		}
		for d := prev; d > n.Depth; d-- {
			w = append(w, '}')
			needComma = true
		}
		prev = n.Depth
	}
	for ; prev > initial; prev-- {
		w = append(w, '}')
	}
	w = append(w, '}', '\n')
	return w
}

// SerializeResponse appends the protocol footer - revision, status code,
// input line length and a checksum placeholder - and renders the full
// header/body/footer list. The line length is reported once and then reset.
func (r *Runner) SerializeResponse(st status.Code, out []byte) []byte {
	var fb [24]byte
	var tmp [20]byte
	f := append(fb[:0], '1', ',')
	f = append(f, conv.Itoa(tmp[:], int64(st))...)
	f = append(f, ',')
	f = append(f, conv.Itoa(tmp[:], int64(r.lineLen))...)
	f = append(f, ",0"...)
	r.lineLen = 0
	r.List.AddFooter(f)
	return SerializeJSON(&r.List, out)
}
