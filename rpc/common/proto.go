package common

import (
	"encoding/json"
	"fmt"
)

// --------------------------------------------------------------------------
// Message Structure
// --------------------------------------------------------------------------

// WireWriteTask is one entry of a PutBatch request's task list.
type WireWriteTask struct {
	Collection uint64 `json:"collection"`
	Key        int64  `json:"key"`
	// Value has no omitempty: a non-nil, zero-length value (write of "")
	// must round-trip distinct from a nil value (delete), and omitempty
	// would drop the zero-length case indistinguishably from both.
	Value  []byte `json:"value"`
	Delete bool   `json:"delete,omitempty"`
}

// BatchMessage represents a single message used for both requests and
// responses. Which fields are populated depends on MsgType. Requests and
// responses share the struct the same way a single point request/response
// pair shared common.Message in the original point-op protocol; here every
// field describes a whole batch rather than one key.
type BatchMessage struct {
	MsgType MessageType `json:"msg_type"`

	// Request fields
	Collection uint64          `json:"collection,omitempty"`
	Key        int64           `json:"key,omitempty"`
	MinKey     int64           `json:"minKey,omitempty"`
	MaxKey     int64           `json:"maxKey,omitempty"`
	Limit      int             `json:"limit,omitempty"`
	Tasks      []WireWriteTask `json:"tasks,omitempty"`
	Flush      bool            `json:"flush,omitempty"`
	Command    string          `json:"command,omitempty"`
	Name       string          `json:"name,omitempty"`

	// Response fields
	Ok           bool     `json:"ok,omitempty"`
	Value        []byte   `json:"value,omitempty"`
	Version      uint64   `json:"version,omitempty"`
	CommitPoint  uint64   `json:"commitPoint,omitempty"`
	Keys         []int64  `json:"keys,omitempty"`
	Values       [][]byte `json:"values,omitempty"`
	Versions     []uint64 `json:"versions,omitempty"`
	Names        []string `json:"names,omitempty"`
	Reply        string   `json:"reply,omitempty"`
	MinCard      uint64   `json:"minCard,omitempty"`
	MaxCard      uint64   `json:"maxCard,omitempty"`
	MinValBytes  uint64   `json:"minValBytes,omitempty"`
	MaxValBytes  uint64   `json:"maxValBytes,omitempty"`
	MinMemBytes  uint64   `json:"minMemBytes,omitempty"`
	MaxMemBytes  uint64   `json:"maxMemBytes,omitempty"`

	Err string `json:"err,omitempty"` // empty if no error, otherwise the error message
}

// --------------------------------------------------------------------------
// Message Factory Functions
// --------------------------------------------------------------------------

func NewGetRequest(collection uint64, key int64) *BatchMessage {
	return &BatchMessage{MsgType: MsgTGet, Collection: collection, Key: key}
}

func NewGetResponse(value []byte, version uint64, found bool, err error) *BatchMessage {
	msg := &BatchMessage{MsgType: MsgTGet, Value: value, Version: version, Ok: found}
	setErr(msg, err)
	return msg
}

func NewPutBatchRequest(tasks []WireWriteTask, flush bool) *BatchMessage {
	return &BatchMessage{MsgType: MsgTPutBatch, Tasks: tasks, Flush: flush}
}

func NewPutBatchResponse(commitPoint uint64, err error) *BatchMessage {
	msg := &BatchMessage{MsgType: MsgTPutBatch, CommitPoint: commitPoint}
	setErr(msg, err)
	return msg
}

func NewScanRequest(collection uint64, minKey int64, limit int) *BatchMessage {
	return &BatchMessage{MsgType: MsgTScan, Collection: collection, MinKey: minKey, Limit: limit}
}

func NewScanResponse(keys []int64, values [][]byte, versions []uint64, err error) *BatchMessage {
	msg := &BatchMessage{MsgType: MsgTScan, Keys: keys, Values: values, Versions: versions}
	setErr(msg, err)
	return msg
}

func NewEstimateSizeRequest(collection uint64, minKey, maxKey int64) *BatchMessage {
	return &BatchMessage{MsgType: MsgTEstimateSize, Collection: collection, MinKey: minKey, MaxKey: maxKey}
}

func NewEstimateSizeResponse(minCard, maxCard, minVal, maxVal, minMem, maxMem uint64, err error) *BatchMessage {
	msg := &BatchMessage{
		MsgType:     MsgTEstimateSize,
		MinCard:     minCard,
		MaxCard:     maxCard,
		MinValBytes: minVal,
		MaxValBytes: maxVal,
		MinMemBytes: minMem,
		MaxMemBytes: maxMem,
	}
	setErr(msg, err)
	return msg
}

func NewControlRequest(command string) *BatchMessage {
	return &BatchMessage{MsgType: MsgTControl, Command: command}
}

func NewControlResponse(reply string, err error) *BatchMessage {
	msg := &BatchMessage{MsgType: MsgTControl, Reply: reply}
	setErr(msg, err)
	return msg
}

func NewDropCollectionRequest(collection uint64) *BatchMessage {
	return &BatchMessage{MsgType: MsgTDropCollection, Collection: collection}
}

func NewDropCollectionResponse(err error) *BatchMessage {
	msg := &BatchMessage{MsgType: MsgTDropCollection}
	setErr(msg, err)
	return msg
}

func NewErrorResponse(err string) *BatchMessage {
	return &BatchMessage{MsgType: MsgTError, Err: err}
}

func setErr(msg *BatchMessage, err error) {
	if err != nil {
		msg.Err = err.Error()
	}
}

// --------------------------------------------------------------------------
// Message Type Definition
// --------------------------------------------------------------------------

// MessageType defines the type of message used in RPC communication.
type MessageType uint8

func (t MessageType) String() string {
	switch t {
	case MsgTGet:
		return "get"
	case MsgTPutBatch:
		return "putBatch"
	case MsgTScan:
		return "scan"
	case MsgTEstimateSize:
		return "estimateSize"
	case MsgTControl:
		return "control"
	case MsgTDropCollection:
		return "dropCollection"
	case MsgTError:
		return "error"
	case MsgTSuccess:
		return "success"
	default:
		return "unknown"
	}
}

// MarshalJSON implements the json.Marshaller interface for MessageType.
func (t MessageType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON implements the json.Unmarshaler interface for MessageType.
func (t *MessageType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	switch s {
	case "get":
		*t = MsgTGet
	case "putBatch":
		*t = MsgTPutBatch
	case "scan":
		*t = MsgTScan
	case "estimateSize":
		*t = MsgTEstimateSize
	case "control":
		*t = MsgTControl
	case "dropCollection":
		*t = MsgTDropCollection
	case "error":
		*t = MsgTError
	case "success":
		*t = MsgTSuccess
	default:
		return fmt.Errorf("unknown message type: %s", s)
	}
	return nil
}

// --------------------------------------------------------------------------
// Message Type Constants
// --------------------------------------------------------------------------

const (
	MsgTUnknown MessageType = iota
	MsgTSuccess
	MsgTError

	MsgTGet
	MsgTPutBatch
	MsgTScan
	MsgTEstimateSize
	MsgTControl
	MsgTDropCollection
)
