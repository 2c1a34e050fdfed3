package engine

import (
	"math"

	"github.com/unum-cloud/ukv-go/lib/arena"
	"github.com/unum-cloud/ukv-go/lib/backend"
)

// DefaultCollection is the reserved id of the always-present anonymous
// collection.
const DefaultCollection = backend.DefaultCollection

// MissingValueLength is the sentinel length reported for an absent key,
// distinct from a present zero-length value.
const MissingValueLength = arena.MissingLength

// UnknownKey is a reserved key value distinct from any valid key a caller
// can supply, used internally where a min-key argument is entirely
// absent.
const UnknownKey int64 = math.MinInt64
