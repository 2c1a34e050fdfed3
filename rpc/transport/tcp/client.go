package tcp

import (
	"net"

	"github.com/unum-cloud/ukv-go/rpc/common"
	"github.com/unum-cloud/ukv-go/rpc/transport"
	"github.com/unum-cloud/ukv-go/rpc/transport/base"
)

// clientConnector implements base.IClientConnector for TCP sockets.
type clientConnector struct{}

func (c *clientConnector) GetName() string { return "tcp" }

func (c *clientConnector) Connect(endpoint string) (net.Conn, error) {
	return net.Dial("tcp", endpoint)
}

func (c *clientConnector) UpgradeConnection(conn net.Conn, config common.ClientConfig) error {
	tcpConn, ok := conn.(*net.TCPConn)
	if !ok {
		return nil
	}
	return tcpConn.SetNoDelay(config.Transport.TCPNoDelay)
}

// NewTCPClientTransport creates a new TCP client transport.
func NewTCPClientTransport() transport.IRPCClientTransport {
	return base.NewBaseClientTransport(&clientConnector{})
}
