package serializer

import (
	"encoding/binary"
	"fmt"

	"github.com/unum-cloud/ukv-go/rpc/common"
)

// NewBinarySerializer creates a new serializer using a custom binary format
// optimized for speed and efficiency.
func NewBinarySerializer() IRPCSerializer {
	return &binarySerializerImpl{}
}

type binarySerializerImpl struct{}

// Bit flags indicating which optional/variable-length groups are present.
const (
	hasTasks       byte = 1 << 0
	hasValue       byte = 1 << 1
	hasScanResults byte = 1 << 2 // Keys + Values + Versions together
	hasNames       byte = 1 << 3
	hasSizeResult  byte = 1 << 4 // the six size-estimate bounds
	hasCommand     byte = 1 << 5
	hasName        byte = 1 << 6
	hasErr         byte = 1 << 7
)

const fixedHeaderSize = 1 + 1 + 8 + 8 + 8 + 8 + 4 + 1 + 8 + 8 // msgType+flags+Collection+Key+MinKey+MaxKey+Limit+bools+Version+CommitPoint

func (b binarySerializerImpl) Serialize(msg common.BatchMessage) ([]byte, error) {
	var flags byte
	if len(msg.Tasks) > 0 {
		flags |= hasTasks
	}
	if msg.Value != nil {
		flags |= hasValue
	}
	if msg.Keys != nil || msg.Values != nil || msg.Versions != nil {
		flags |= hasScanResults
	}
	if msg.Names != nil {
		flags |= hasNames
	}
	if msg.MinCard != 0 || msg.MaxCard != 0 || msg.MinValBytes != 0 || msg.MaxValBytes != 0 || msg.MinMemBytes != 0 || msg.MaxMemBytes != 0 {
		flags |= hasSizeResult
	}
	if msg.Command != "" || msg.Reply != "" {
		flags |= hasCommand
	}
	if msg.Name != "" {
		flags |= hasName
	}
	if msg.Err != "" {
		flags |= hasErr
	}

	buf := make([]byte, fixedHeaderSize)
	buf[0] = byte(msg.MsgType)
	buf[1] = flags
	pos := 2
	binary.BigEndian.PutUint64(buf[pos:], msg.Collection)
	pos += 8
	binary.BigEndian.PutUint64(buf[pos:], uint64(msg.Key))
	pos += 8
	binary.BigEndian.PutUint64(buf[pos:], uint64(msg.MinKey))
	pos += 8
	binary.BigEndian.PutUint64(buf[pos:], uint64(msg.MaxKey))
	pos += 8
	binary.BigEndian.PutUint32(buf[pos:], uint32(msg.Limit))
	pos += 4
	var boolBits byte
	if msg.Flush {
		boolBits |= 1
	}
	if msg.Ok {
		boolBits |= 2
	}
	buf[pos] = boolBits
	pos++
	binary.BigEndian.PutUint64(buf[pos:], msg.Version)
	pos += 8
	binary.BigEndian.PutUint64(buf[pos:], msg.CommitPoint)

	if flags&hasTasks != 0 {
		buf = appendUint32(buf, uint32(len(msg.Tasks)))
		for _, task := range msg.Tasks {
			buf = appendUint64(buf, task.Collection)
			buf = appendUint64(buf, uint64(task.Key))
			var del byte
			if task.Delete {
				del = 1
			}
			buf = append(buf, del)
			buf = appendBytes(buf, task.Value)
		}
	}
	if flags&hasValue != 0 {
		buf = appendBytes(buf, msg.Value)
	}
	if flags&hasScanResults != 0 {
		buf = appendUint32(buf, uint32(len(msg.Keys)))
		for _, k := range msg.Keys {
			buf = appendUint64(buf, uint64(k))
		}
		buf = appendUint32(buf, uint32(len(msg.Values)))
		for _, v := range msg.Values {
			buf = appendBytes(buf, v)
		}
		buf = appendUint32(buf, uint32(len(msg.Versions)))
		for _, v := range msg.Versions {
			buf = appendUint64(buf, v)
		}
	}
	if flags&hasNames != 0 {
		buf = appendUint32(buf, uint32(len(msg.Names)))
		for _, n := range msg.Names {
			buf = appendString(buf, n)
		}
	}
	if flags&hasSizeResult != 0 {
		buf = appendUint64(buf, msg.MinCard)
		buf = appendUint64(buf, msg.MaxCard)
		buf = appendUint64(buf, msg.MinValBytes)
		buf = appendUint64(buf, msg.MaxValBytes)
		buf = appendUint64(buf, msg.MinMemBytes)
		buf = appendUint64(buf, msg.MaxMemBytes)
	}
	if flags&hasCommand != 0 {
		buf = appendString(buf, msg.Command)
		buf = appendString(buf, msg.Reply)
	}
	if flags&hasName != 0 {
		buf = appendString(buf, msg.Name)
	}
	if flags&hasErr != 0 {
		buf = appendString(buf, msg.Err)
	}

	return buf, nil
}

func (b binarySerializerImpl) Deserialize(data []byte, msg *common.BatchMessage) error {
	if len(data) < fixedHeaderSize {
		return fmt.Errorf("data too short for message header")
	}

	msg.MsgType = common.MessageType(data[0])
	flags := data[1]
	pos := 2

	msg.Collection = binary.BigEndian.Uint64(data[pos:])
	pos += 8
	msg.Key = int64(binary.BigEndian.Uint64(data[pos:]))
	pos += 8
	msg.MinKey = int64(binary.BigEndian.Uint64(data[pos:]))
	pos += 8
	msg.MaxKey = int64(binary.BigEndian.Uint64(data[pos:]))
	pos += 8
	msg.Limit = int(binary.BigEndian.Uint32(data[pos:]))
	pos += 4
	boolBits := data[pos]
	msg.Flush = boolBits&1 != 0
	msg.Ok = boolBits&2 != 0
	pos++
	msg.Version = binary.BigEndian.Uint64(data[pos:])
	pos += 8
	msg.CommitPoint = binary.BigEndian.Uint64(data[pos:])
	pos += 8

	var err error
	if flags&hasTasks != 0 {
		var count uint32
		count, pos, err = readUint32(data, pos)
		if err != nil {
			return err
		}
		msg.Tasks = make([]common.WireWriteTask, count)
		for i := range msg.Tasks {
			var collection, key uint64
			collection, pos, err = readUint64(data, pos)
			if err != nil {
				return err
			}
			key, pos, err = readUint64(data, pos)
			if err != nil {
				return err
			}
			if pos+1 > len(data) {
				return fmt.Errorf("data too short for task delete flag")
			}
			del := data[pos] != 0
			pos++
			var value []byte
			value, pos, err = readBytes(data, pos)
			if err != nil {
				return err
			}
			msg.Tasks[i] = common.WireWriteTask{Collection: collection, Key: int64(key), Delete: del, Value: value}
		}
	} else {
		msg.Tasks = nil
	}

	if flags&hasValue != 0 {
		msg.Value, pos, err = readBytes(data, pos)
		if err != nil {
			return err
		}
	} else {
		msg.Value = nil
	}

	if flags&hasScanResults != 0 {
		var count uint32
		count, pos, err = readUint32(data, pos)
		if err != nil {
			return err
		}
		msg.Keys = make([]int64, count)
		for i := range msg.Keys {
			var k uint64
			k, pos, err = readUint64(data, pos)
			if err != nil {
				return err
			}
			msg.Keys[i] = int64(k)
		}
		count, pos, err = readUint32(data, pos)
		if err != nil {
			return err
		}
		msg.Values = make([][]byte, count)
		for i := range msg.Values {
			msg.Values[i], pos, err = readBytes(data, pos)
			if err != nil {
				return err
			}
		}
		count, pos, err = readUint32(data, pos)
		if err != nil {
			return err
		}
		msg.Versions = make([]uint64, count)
		for i := range msg.Versions {
			msg.Versions[i], pos, err = readUint64(data, pos)
			if err != nil {
				return err
			}
		}
	} else {
		msg.Keys, msg.Values, msg.Versions = nil, nil, nil
	}

	if flags&hasNames != 0 {
		var count uint32
		count, pos, err = readUint32(data, pos)
		if err != nil {
			return err
		}
		msg.Names = make([]string, count)
		for i := range msg.Names {
			msg.Names[i], pos, err = readString(data, pos)
			if err != nil {
				return err
			}
		}
	} else {
		msg.Names = nil
	}

	if flags&hasSizeResult != 0 {
		for _, dst := range []*uint64{&msg.MinCard, &msg.MaxCard, &msg.MinValBytes, &msg.MaxValBytes, &msg.MinMemBytes, &msg.MaxMemBytes} {
			*dst, pos, err = readUint64(data, pos)
			if err != nil {
				return err
			}
		}
	} else {
		msg.MinCard, msg.MaxCard, msg.MinValBytes, msg.MaxValBytes, msg.MinMemBytes, msg.MaxMemBytes = 0, 0, 0, 0, 0, 0
	}

	if flags&hasCommand != 0 {
		msg.Command, pos, err = readString(data, pos)
		if err != nil {
			return err
		}
		msg.Reply, pos, err = readString(data, pos)
		if err != nil {
			return err
		}
	} else {
		msg.Command, msg.Reply = "", ""
	}

	if flags&hasName != 0 {
		msg.Name, pos, err = readString(data, pos)
		if err != nil {
			return err
		}
	} else {
		msg.Name = ""
	}

	if flags&hasErr != 0 {
		msg.Err, pos, err = readString(data, pos)
		if err != nil {
			return err
		}
	} else {
		msg.Err = ""
	}

	return nil
}

// --------------------------------------------------------------------------
// Helper encode/decode primitives
// --------------------------------------------------------------------------

func appendUint32(buf []byte, v uint32) []byte {
	var tmp [4]byte
	binary.BigEndian.PutUint32(tmp[:], v)
	return append(buf, tmp[:]...)
}

func appendUint64(buf []byte, v uint64) []byte {
	var tmp [8]byte
	binary.BigEndian.PutUint64(tmp[:], v)
	return append(buf, tmp[:]...)
}

func appendBytes(buf []byte, v []byte) []byte {
	buf = appendUint32(buf, uint32(len(v)))
	return append(buf, v...)
}

func appendString(buf []byte, v string) []byte {
	return appendBytes(buf, []byte(v))
}

func readUint32(data []byte, pos int) (uint32, int, error) {
	if pos+4 > len(data) {
		return 0, pos, fmt.Errorf("data too short for uint32 at %d", pos)
	}
	return binary.BigEndian.Uint32(data[pos:]), pos + 4, nil
}

func readUint64(data []byte, pos int) (uint64, int, error) {
	if pos+8 > len(data) {
		return 0, pos, fmt.Errorf("data too short for uint64 at %d", pos)
	}
	return binary.BigEndian.Uint64(data[pos:]), pos + 8, nil
}

func readBytes(data []byte, pos int) ([]byte, int, error) {
	length, pos, err := readUint32(data, pos)
	if err != nil {
		return nil, pos, err
	}
	if pos+int(length) > len(data) {
		return nil, pos, fmt.Errorf("data too short for byte slice at %d", pos)
	}
	out := make([]byte, length)
	copy(out, data[pos:pos+int(length)])
	return out, pos + int(length), nil
}

func readString(data []byte, pos int) (string, int, error) {
	b, pos, err := readBytes(data, pos)
	if err != nil {
		return "", pos, err
	}
	return string(b), pos, nil
}
