package config

import (
	"bytes"
	"io"

	"tempfin-go/status"
	"tempfin-go/x/conv"
	"tempfin-go/x/strconvx"
)

// Text mode is the human side of the wire: "$token=value" sets a value,
// bare "$token" or "$group" reads one. Any of space, '=', ':', '|' or tab
// separates token from value. There is no way to express a multi-value
// group write in this grammar, so group sets report UnrecognizedCommand.

// ParseExecuteText resets the request context, decodes one text-mode line,
// executes it, and prints the result one formatted value per line. Errors
// are returned without printing; the caller echoes them.
func (r *Runner) ParseExecuteText(line []byte, w io.Writer) status.Code {
	n := r.List.Reset()

	if sc := r.parseText(line, n); sc != status.OK {
		return sc
	}
	if n.Type == TypeParent || n.Type == TypeNull {
		if r.Get(n) == status.Complete {
			return status.OK // fully handled by its own accessor; don't re-print
		}
	} else {
		if sc := r.Set(n); sc != status.OK {
			return sc
		}
		r.Persist(n)
	}
	r.PrintMultiline(w)
	return status.OK
}

// parseText folds the line to lower case, strips a leading '$' and any
// commas, splits on the first separator, and resolves the token with an
// empty default group. A present value parses as Float; an absent or
// unparseable one leaves the node Null, meaning "read".
func (r *Runner) parseText(line []byte, n *Node) status.Code {
	r.List.ResetNode(n)

	var buf [MaxLineLen]byte
	str := buf[:0]
	for i, c := range line {
		if i == 0 && c == '$' {
			continue
		}
		if c == ',' || c == '\r' || c == '\n' {
			continue
		}
		if 'A' <= c && c <= 'Z' {
			c += 'a' - 'A'
		}
		if len(str) == MaxLineLen {
			return status.InputExceedsMaxLen
		}
		str = append(str, c)
	}

	n.Type = TypeNull
	sep := bytes.IndexAny(str, " =:|\t")
	if sep < 0 {
		n.setTokenBytes(str)
	} else {
		n.setTokenBytes(str[:sep])
		val := bytes.Trim(str[sep+1:], " =:|\t")
		if f, err := strconvx.ParseFloat(string(val), 64); err == nil {
			n.Value = f
			n.Type = TypeFloat
		}
	}
	if n.Index = r.Reg.Resolve("", n.Token()); n.Index == NoMatch {
		return status.UnrecognizedCommand
	}
	return status.OK
}

// PrintInlinePairs renders the body as comma-joined token:value pairs on
// one line.
func (r *Runner) PrintInlinePairs(w io.Writer) {
	var tmp [32]byte
	n := r.List.Body()
	for i := 0; i < BodyLen-1; i++ {
		switch n.Type {
		case TypeParent:
			n = n.Nx
			continue
		case TypeEmpty:
			io.WriteString(w, "\n")
			return
		case TypeFloat, TypeInteger:
			w.Write(n.TokenBytes())
			io.WriteString(w, ":")
			w.Write(inlineValue(tmp[:], n))
		case TypeString:
			w.Write(n.TokenBytes())
			io.WriteString(w, ":")
			w.Write(r.List.String(n))
		}
		n = n.Nx
		if n.Type != TypeEmpty {
			io.WriteString(w, ",")
		}
	}
}

// PrintInlineValues renders the body as comma-joined bare values on one
// line.
func (r *Runner) PrintInlineValues(w io.Writer) {
	var tmp [32]byte
	n := r.List.Body()
	for i := 0; i < BodyLen-1; i++ {
		switch n.Type {
		case TypeParent:
			n = n.Nx
			continue
		case TypeEmpty:
			io.WriteString(w, "\n")
			return
		case TypeFloat, TypeInteger:
			w.Write(inlineValue(tmp[:], n))
		case TypeString:
			w.Write(r.List.String(n))
		}
		n = n.Nx
		if n.Type != TypeEmpty {
			io.WriteString(w, ",")
		}
	}
}

// PrintMultiline renders the body one value per line through each entry's
// bound format string. This is where units and labels appear for a human
// operator.
func (r *Runner) PrintMultiline(w io.Writer) {
	n := r.List.Body()
	for i := 0; i < BodyLen-1; i++ {
		if n.Type != TypeParent {
			r.Print(n, w)
		}
		n = n.Nx
		if n == nil || n.Type == TypeEmpty {
			break
		}
	}
}

func inlineValue(tmp []byte, n *Node) []byte {
	if n.Type == TypeInteger {
		return conv.Itoa(tmp[:20], int64(n.Value))
	}
	return conv.Ftoa(tmp, n.Value, 3)
}
