package serializer

import (
	"bytes"
	"encoding/gob"

	"github.com/unum-cloud/ukv-go/rpc/common"
)

// NewGOBSerializer creates a new serializer using Go's binary gob format.
func NewGOBSerializer() IRPCSerializer {
	return &gobSerializerImpl{}
}

type gobSerializerImpl struct{}

func (g gobSerializerImpl) Serialize(msg common.BatchMessage) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(msg); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g gobSerializerImpl) Deserialize(b []byte, msg *common.BatchMessage) error {
	return gob.NewDecoder(bytes.NewBuffer(b)).Decode(msg)
}
