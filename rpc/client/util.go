package client

import (
	"fmt"

	"github.com/unum-cloud/ukv-go/lib/log"
	"github.com/unum-cloud/ukv-go/rpc/common"
	"github.com/unum-cloud/ukv-go/rpc/serializer"
	"github.com/unum-cloud/ukv-go/rpc/transport"
)

var Logger = log.New("rpc/client")

// rpcClientAdapter stores everything needed to speak the wire protocol to
// one remote backend.
type rpcClientAdapter struct {
	config     common.ClientConfig
	transport  transport.IRPCClientTransport
	serializer serializer.IRPCSerializer
}

// invokeRPCRequest serializes req, sends it, and validates the response.
func invokeRPCRequest(req *common.BatchMessage, tr transport.IRPCClientTransport, ser serializer.IRPCSerializer) (*common.BatchMessage, error) {
	reqBytes, err := ser.Serialize(*req)
	if err != nil {
		return nil, err
	}

	respBytes, err := tr.Send(reqBytes)
	if err != nil {
		return nil, err
	}

	resp := &common.BatchMessage{}
	if err := ser.Deserialize(respBytes, resp); err != nil {
		return nil, fmt.Errorf("rpc client: %s", err)
	}

	if resp.MsgType == common.MsgTError || resp.Err != "" {
		return nil, fmt.Errorf("rpc client: %s", resp.Err)
	}
	if resp.MsgType != req.MsgType {
		return nil, fmt.Errorf("rpc client: unexpected message type %s, expected %s", resp.MsgType, req.MsgType)
	}

	return resp, nil
}
