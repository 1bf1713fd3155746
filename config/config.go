// Package config implements the registry-driven configuration model and its
// dual wire protocol (JSON and text mode).
//
// Every tunable the firmware exposes is one Entry in a compiled Registry:
// a short mnemonic token, optional group prefix, operation flags, a print
// format string, an accessor kind and a bound target address. Requests are
// decoded into a fixed-capacity List of Nodes - a flat, depth-tagged
// encoding of a shallow tree - executed against live memory through the
// Runner gateways, and serialized back out. Strings live in a single
// bump-allocated pool that is reset together with the list before every
// parse; there is no per-node allocation and no recursion anywhere in the
// request path.
//
// The List, Pool and comm mode ride on a Runner, which is the explicit
// request context: exactly one request owns it at a time.
package config

// Sizing. The list and pool capacities bound every request; inputs that do
// not fit produce an error status rather than growing anything.
const (
	GroupLen  = 3  // max length of a group prefix
	TokenLen  = 5  // group prefix + short token
	FormatLen = 80 // print format string max length

	SharedStringLen = 80 // shared string pool for string values
	BodyLen         = 16 // body nodes: 1 parent + N children
	ListLen         = BodyLen + 2 // +2 for the response header and footer
	MaxObjects      = BodyLen - 1

	MaxLineLen = 254 // longest accepted input line
	OutBufLen  = 256 // response buffer size
)

// Flags are per-entry operation flags.
type Flags uint8

const (
	FlagInitialize Flags = 1 << iota // apply the default value at startup
	FlagPersist                      // write through to NVM when set
	FlagNoStrip                      // keep the group prefix off hydrated children
)

// Mode selects the wire protocol. It is process-wide state, not negotiated
// per request.
type Mode uint8

const (
	ModeText Mode = iota
	ModeJSON
)

// Kind selects the accessor bound to a registry entry. The closed enum
// replaces the original firmware's function-pointer tables; call sites
// switch on it against the same per-entry binding contract.
type Kind uint8

const (
	KindNull   Kind = iota // no target; get tags Null, set is a no-op
	KindUint8              // target is *uint8
	KindUint32             // target is *uint32
	KindFloat              // target is *float64
	KindString             // target is *string
	KindGroup              // token names a group; expands to its members
)

// Index identifies a registry entry. NoMatch marks failed resolution.
type Index int16

const NoMatch Index = -1
