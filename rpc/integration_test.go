package rpc_test

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/unum-cloud/ukv-go/lib/backend"
	"github.com/unum-cloud/ukv-go/lib/backend/memstore"
	"github.com/unum-cloud/ukv-go/lib/enginetest"
	"github.com/unum-cloud/ukv-go/rpc/client"
	"github.com/unum-cloud/ukv-go/rpc/common"
	"github.com/unum-cloud/ukv-go/rpc/serializer"
	"github.com/unum-cloud/ukv-go/rpc/server"
	"github.com/unum-cloud/ukv-go/rpc/transport/unix"
)

// newRemoteBackend starts an RPC server fronting a fresh memstore on its
// own Unix socket and returns a client backend.Backend talking to it, so
// enginetest.RunBackendTests can prove memstore's semantics survive the
// wire round trip unchanged. ser is shared by both ends, matching how a
// real deployment always pairs a client and server on the same codec.
func newRemoteBackend(t *testing.T, ser serializer.IRPCSerializer) backend.Backend {
	t.Helper()

	socket := filepath.Join(t.TempDir(), fmt.Sprintf("dkv-%d.sock", time.Now().UnixNano()))
	endpoint := common.TransportConfig{Endpoint: socket}

	srv := server.NewRPCServer(
		common.ServerConfig{Transport: endpoint, TimeoutSecond: 5},
		memstore.New(),
		unix.NewUnixServerTransport(),
		ser,
	)

	go func() {
		if err := srv.Serve(); err != nil {
			t.Logf("server exited: %v", err)
		}
	}()

	var be backend.Backend
	var err error
	for i := 0; i < 50; i++ {
		be, err = client.NewRemoteBackend(
			common.ClientConfig{Transport: common.TransportConfig{Endpoints: []string{socket}, RetryCount: 1}, TimeoutSecond: 5},
			unix.NewUnixClientTransport(),
			ser,
		)
		if err == nil {
			break
		}
		time.Sleep(20 * time.Millisecond)
	}
	if err != nil {
		t.Fatalf("dialing remote backend: %v", err)
	}
	t.Cleanup(func() { be.Close() })
	return be
}

func TestRemoteBackendConformance(t *testing.T) {
	remoteSerializers := map[string]func() serializer.IRPCSerializer{
		"Binary": serializer.NewBinarySerializer,
		"JSON":   serializer.NewJSONSerializer,
		"GOB":    serializer.NewGOBSerializer,
	}
	for name, newSer := range remoteSerializers {
		t.Run(name, func(t *testing.T) {
			enginetest.RunBackendTests(t, "remote-"+name, func() backend.Backend { return newRemoteBackend(t, newSer()) })
		})
	}
}
