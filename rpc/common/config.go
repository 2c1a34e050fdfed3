package common

import (
	"fmt"
	"strconv"
	"strings"
)

// --------------------------------------------------------------------------
// Transport configuration shared by client and server
// --------------------------------------------------------------------------

// TransportConfig holds the socket-level parameters common to every
// transport (tcp, unix). A server reads Endpoint; a client reads Endpoints.
type TransportConfig struct {
	Endpoint  string   // server bind address
	Endpoints []string // client dial addresses, tried round robin

	ConnectionsPerEndpoint int
	RetryCount             int

	TCPNoDelay      bool
	WriteBufferSize int
	ReadBufferSize  int
	TCPKeepAliveSec int
	TCPLingerSec    int
}

// --------------------------------------------------------------------------
// RPC server configuration
// --------------------------------------------------------------------------

// ServerConfig holds all configuration parameters for the remote backend
// server: which engine it fronts and how it accepts connections.
type ServerConfig struct {
	Transport TransportConfig

	TimeoutSecond int64
	LogLevel      string

	// Engine is the underlying DB config JSON, passed straight through to
	// engine.Open.
	Engine string
}

func (c *ServerConfig) String() string {
	var sb strings.Builder
	addSection := func(title string) {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%s\n", strings.ToUpper(title)))
	}
	addField := func(name, value string) {
		sb.WriteString(fmt.Sprintf("  %-22s: %s\n", name, value))
	}

	addSection("RPC Server")
	addField("Endpoint", c.Transport.Endpoint)
	addField("Timeout", fmt.Sprintf("%d sec", c.TimeoutSecond))

	addSection("Logging")
	addField("Log Level", c.LogLevel)

	addSection("Engine")
	addField("Config", c.Engine)

	return sb.String()
}

// --------------------------------------------------------------------------
// RPC client configuration
// --------------------------------------------------------------------------

// ClientConfig configures a remote backend client.
type ClientConfig struct {
	Transport     TransportConfig
	TimeoutSecond int
}

func (c *ClientConfig) String() string {
	var sb strings.Builder
	addSection := func(title string) {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%s\n", strings.ToUpper(title)))
	}
	addField := func(name, value string) {
		sb.WriteString(fmt.Sprintf("  %-22s: %s\n", name, value))
	}

	addSection("Client Configuration")
	addField("Timeout", fmt.Sprintf("%d sec", c.TimeoutSecond))
	addField("Retry Count", strconv.Itoa(c.Transport.RetryCount))
	perEndpoint := c.Transport.ConnectionsPerEndpoint
	if perEndpoint < 1 {
		perEndpoint = 1
	}
	addField("Connections Per Endpoint", strconv.Itoa(perEndpoint))

	addSection("Endpoints")
	for i, endpoint := range c.Transport.Endpoints {
		addField(strconv.Itoa(i), endpoint)
	}

	return sb.String()
}
