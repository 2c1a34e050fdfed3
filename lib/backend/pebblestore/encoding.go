package pebblestore

import (
	"encoding/binary"

	"github.com/unum-cloud/ukv-go/lib/backend"
)

// signBit flips the sign bit of a two's-complement int64 so its
// big-endian byte encoding sorts the same way the signed integer does —
// negative keys sort before positive ones under plain byte comparison.
const signBit = uint64(1) << 63

// metaCollection is a reserved namespace, outside any id the collection
// registry ever hands out, used to persist the commit-point clock.
var metaCollection = backend.CollectionID(^uint64(0))

var clockKey = encodeKey(metaCollection, 0)

func encodeKey(collection backend.CollectionID, key int64) []byte {
	buf := make([]byte, 16)
	binary.BigEndian.PutUint64(buf[0:8], uint64(collection))
	binary.BigEndian.PutUint64(buf[8:16], uint64(key)^signBit)
	return buf
}

func decodeKey(buf []byte) (backend.CollectionID, int64) {
	collection := backend.CollectionID(binary.BigEndian.Uint64(buf[0:8]))
	key := int64(binary.BigEndian.Uint64(buf[8:16]) ^ signBit)
	return collection, key
}

func encodeValue(version uint64, value []byte) []byte {
	buf := make([]byte, 8+len(value))
	binary.BigEndian.PutUint64(buf[0:8], version)
	copy(buf[8:], value)
	return buf
}

func decodeValue(buf []byte) (uint64, []byte) {
	version := binary.BigEndian.Uint64(buf[0:8])
	value := make([]byte, len(buf)-8)
	copy(value, buf[8:])
	return version, value
}

func encodeClock(v uint64) []byte {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, v)
	return buf
}

func decodeClock(buf []byte) uint64 {
	return binary.BigEndian.Uint64(buf)
}
