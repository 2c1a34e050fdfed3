// Package client implements the RPC client side of the remote backend: a
// backend.Backend that forwards every call to a remote server.
//
// Key Components:
//
//   - NewRemoteBackend: factory function returning a backend.Backend that
//     forwards Get/PutBatch/Scan/EstimateSize/Control/DropCollection over
//     the configured transport and serializer. Snapshots are not
//     supported over RPC (see rpc/client's SupportsFeature).
//
// Usage Example:
//
//	config := common.ClientConfig{
//	  Transport: common.TransportConfig{
//	    Endpoints:              []string{"localhost:8080"},
//	    ConnectionsPerEndpoint: 1,
//	    RetryCount:             3,
//	  },
//	  TimeoutSecond: 5,
//	}
//	be, _ := client.NewRemoteBackend(config, tcp.NewTCPClientTransport(), serializer.NewBinarySerializer())
//	defer be.Close()
//	value, version, found, _ := be.Get(ctx, backend.DefaultCollection, 42)
//
// Performance Considerations:
//
//   - Increasing ConnectionsPerEndpoint improves throughput for large
//     payloads by allowing parallel requests; small messages are often
//     faster with a single connection due to reduced overhead.
//
//   - The binary serializer gives the best throughput and smallest
//     payload size; JSON and gob trade that for readability or parity.
//
// Thread Safety:
//
//	The returned backend.Backend is safe for concurrent use from multiple
//	goroutines without additional synchronization.
package client
