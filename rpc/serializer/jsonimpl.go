package serializer

import (
	"encoding/json"

	"github.com/unum-cloud/ukv-go/rpc/common"
)

// NewJSONSerializer creates a new serializer using json encoding.
func NewJSONSerializer() IRPCSerializer {
	return &jsonSerializerImpl{}
}

type jsonSerializerImpl struct{}

func (j jsonSerializerImpl) Serialize(msg common.BatchMessage) ([]byte, error) {
	return json.Marshal(msg)
}

func (j jsonSerializerImpl) Deserialize(b []byte, msg *common.BatchMessage) error {
	return json.Unmarshal(b, msg)
}
