package unix

import (
	"net"

	"github.com/unum-cloud/ukv-go/rpc/common"
	"github.com/unum-cloud/ukv-go/rpc/transport"
	"github.com/unum-cloud/ukv-go/rpc/transport/base"
)

// clientConnector implements base.IClientConnector for Unix sockets.
type clientConnector struct{}

func (c *clientConnector) GetName() string { return "unix" }

func (c *clientConnector) Connect(endpoint string) (net.Conn, error) {
	return net.Dial("unix", endpoint)
}

func (c *clientConnector) UpgradeConnection(conn net.Conn, config common.ClientConfig) error {
	return nil
}

// NewUnixClientTransport creates a new Unix client transport.
func NewUnixClientTransport() transport.IRPCClientTransport {
	return base.NewBaseClientTransport(&clientConnector{})
}
