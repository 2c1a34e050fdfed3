package txn

import "github.com/google/uuid"

// Handle is the opaque token a caller holds a transaction by. It is
// backed by a UUID rather than a raw index so a stale or forged value can
// never alias a live transaction.
type Handle uuid.UUID

// Zero reports whether h is the zero-value handle, used the way a null
// txn_t is checked against in the C-shaped contract.
func (h Handle) Zero() bool {
	return h == Handle{}
}

func (h Handle) String() string {
	return uuid.UUID(h).String()
}

func newHandle() Handle {
	return Handle(uuid.New())
}

// State is a transaction's position in its lifecycle state machine:
//
//	fresh --begin--> active --commit--> committed | conflicted
//	active --free--> gone
//	committed|conflicted --begin--> active (reuse)
type State int

const (
	StateFresh State = iota
	StateActive
	StateCommitted
	StateConflicted
	StateGone
)

func (s State) String() string {
	switch s {
	case StateFresh:
		return "fresh"
	case StateActive:
		return "active"
	case StateCommitted:
		return "committed"
	case StateConflicted:
		return "conflicted"
	case StateGone:
		return "gone"
	default:
		return "unknown"
	}
}

// Options mirrors the txn_snapshot option bit at the transaction-manager
// level. read_track has no txn-wide counterpart: per the original
// contract it is requested on each read call, not at txn_begin, so
// Manager.Read takes it as a per-call argument instead.
type Options struct {
	Snapshot bool
}
