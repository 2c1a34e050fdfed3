// Package server implements the RPC server that fronts a single
// backend.Backend, dispatching each decoded BatchMessage to the matching
// backend method and serializing the result back.
//
// Usage:
//
//	config := common.ServerConfig{
//	  Transport: common.TransportConfig{Endpoint: "0.0.0.0:8080"},
//	  TimeoutSecond: 5,
//	}
//	s := server.NewRPCServer(config, be, tcp.NewTCPServerTransport(), serializer.NewBinarySerializer())
//	if err := s.Serve(); err != nil {
//	  log.Fatalf("server error: %v", err)
//	}
//
// Thread Safety:
//
//	The server is safe for concurrent requests across multiple
//	connections. Serve blocks and should be called only once.
package server
