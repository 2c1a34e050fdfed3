package unix

import (
	"fmt"
	"net"
	"os"

	"github.com/unum-cloud/ukv-go/rpc/common"
	"github.com/unum-cloud/ukv-go/rpc/transport"
	"github.com/unum-cloud/ukv-go/rpc/transport/base"
)

const defaultBufferSize = 64 * 1024

// serverConnector implements base.IServerConnector for Unix sockets.
type serverConnector struct{}

func (c *serverConnector) GetName() string { return "unix" }

func (c *serverConnector) Listen(config common.ServerConfig) (net.Listener, error) {
	socketPath := config.Transport.Endpoint

	if err := os.RemoveAll(socketPath); err != nil {
		return nil, fmt.Errorf("failed to remove existing socket: %v", err)
	}

	listener, err := net.Listen("unix", socketPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create unix socket: %v", err)
	}
	return listener, nil
}

func (c *serverConnector) UpgradeConnection(conn net.Conn, config common.ServerConfig) error {
	return nil
}

// NewUnixServerTransport creates a new Unix server transport with the
// default buffer size.
func NewUnixServerTransport() transport.IRPCServerTransport {
	return base.NewBaseServerTransport(&serverConnector{}, defaultBufferSize)
}
