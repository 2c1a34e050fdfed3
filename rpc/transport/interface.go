package transport

import (
	"github.com/unum-cloud/ukv-go/rpc/common"
)

// --------------------------------------------------------------------------
// Server Transport
// --------------------------------------------------------------------------

// ServerHandleFunc handles one request frame and returns the response bytes.
type ServerHandleFunc func(req []byte) (resp []byte)

// IRPCServerTransport is the interface for the RPC transport layer.
type IRPCServerTransport interface {
	// RegisterHandler registers the function called for every request.
	RegisterHandler(handler ServerHandleFunc)
	// Listen starts the transport layer and blocks accepting connections.
	Listen(config common.ServerConfig) error
}

// --------------------------------------------------------------------------
// Client Transport
// --------------------------------------------------------------------------

// IRPCClientTransport is the interface for the RPC client transport.
type IRPCClientTransport interface {
	// Connect initializes the transport with the given configuration.
	Connect(config common.ClientConfig) error
	// Send sends a request to the server and returns the response.
	Send(req []byte) (resp []byte, err error)
	// Close closes the transport connection.
	Close() error
}
