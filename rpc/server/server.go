package server

import (
	"fmt"

	"github.com/unum-cloud/ukv-go/lib/backend"
	"github.com/unum-cloud/ukv-go/lib/log"
	"github.com/unum-cloud/ukv-go/rpc/common"
	"github.com/unum-cloud/ukv-go/rpc/serializer"
	"github.com/unum-cloud/ukv-go/rpc/transport"
)

var Logger = log.New("rpc/server")

// NewRPCServer creates a new RPC server fronting a single backend.
//
// Usage:
//
//	s := server.NewRPCServer(
//		config,
//		be,
//		tcp.NewTCPServerTransport(),
//		serializer.NewBinarySerializer(),
//	)
//	if err := s.Serve(); err != nil {
//		panic(err)
//	}
func NewRPCServer(
	config common.ServerConfig,
	be backend.Backend,
	tr transport.IRPCServerTransport,
	ser serializer.IRPCSerializer,
) *rpcServer {
	Logger.Infof("created RPC server")
	Logger.Infof(config.String())

	return &rpcServer{
		config:     config,
		backend:    be,
		transport:  tr,
		serializer: ser,
		adapter:    NewBackendServerAdapter(),
	}
}

type rpcServer struct {
	config     common.ServerConfig
	backend    backend.Backend
	transport  transport.IRPCServerTransport
	serializer serializer.IRPCSerializer
	adapter    IRPCServerAdapter
}

func (s *rpcServer) registerTransportHandler() {
	s.transport.RegisterHandler(func(req []byte) []byte {
		var msg common.BatchMessage
		var respMsg *common.BatchMessage

		if err := s.serializer.Deserialize(req, &msg); err != nil {
			respMsg = common.NewErrorResponse(fmt.Sprintf("failed to deserialize request: %s", err))
		} else {
			respMsg = s.adapter.Handle(&msg, s.backend)
		}

		val, err := s.serializer.Serialize(*respMsg)
		if err != nil {
			val, _ = s.serializer.Serialize(*common.NewErrorResponse(fmt.Sprintf("failed to serialize response: %s", err)))
		}
		return val
	})
}

// Serve starts the RPC server. It blocks accepting connections.
func (s *rpcServer) Serve() error {
	if s.backend == nil {
		return fmt.Errorf("rpc server: backend is nil")
	}
	s.registerTransportHandler()
	return s.transport.Listen(s.config)
}
