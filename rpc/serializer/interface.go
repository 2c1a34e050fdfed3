package serializer

import "github.com/unum-cloud/ukv-go/rpc/common"

// IRPCSerializer is the interface for all message serializers.
type IRPCSerializer interface {
	// Serialize serializes a BatchMessage into a byte array.
	Serialize(msg common.BatchMessage) ([]byte, error)
	// Deserialize deserializes a byte array into a BatchMessage.
	Deserialize(b []byte, msg *common.BatchMessage) error
}
