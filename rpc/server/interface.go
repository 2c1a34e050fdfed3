package server

import (
	"github.com/unum-cloud/ukv-go/lib/backend"
	"github.com/unum-cloud/ukv-go/rpc/common"
)

// IRPCServerAdapter handles one decoded request against a backend and
// produces the response message.
type IRPCServerAdapter interface {
	Handle(req *common.BatchMessage, be backend.Backend) (resp *common.BatchMessage)
}
