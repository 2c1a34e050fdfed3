package client

import (
	"context"
	"fmt"

	"github.com/unum-cloud/ukv-go/lib/backend"
	"github.com/unum-cloud/ukv-go/rpc/common"
	"github.com/unum-cloud/ukv-go/rpc/serializer"
	"github.com/unum-cloud/ukv-go/rpc/transport"
)

// NewRemoteBackend creates a backend.Backend that forwards every operation
// to a remote server over the given transport. It does not support
// snapshots: BeginSnapshot always errors, so a transaction opened with
// the snapshot option against a remote backend fails at TxnBegin.
func NewRemoteBackend(
	config common.ClientConfig,
	tr transport.IRPCClientTransport,
	ser serializer.IRPCSerializer,
) (backend.Backend, error) {
	if err := tr.Connect(config); err != nil {
		return nil, err
	}

	return &remoteBackend{
		rpcClientAdapter{config: config, transport: tr, serializer: ser},
	}, nil
}

type remoteBackend struct {
	rpcClientAdapter
}

const remoteFeatures = backend.FeaturePointGet | backend.FeaturePointPutBatch |
	backend.FeatureRangeScan | backend.FeatureEstimateSize | backend.FeatureControl

// --------------------------------------------------------------------------
// Interface Methods (docu see backend.Backend)
// --------------------------------------------------------------------------

func (r *remoteBackend) SupportsFeature(f backend.Feature) bool {
	return remoteFeatures&f != 0
}

func (r *remoteBackend) Get(ctx context.Context, collection backend.CollectionID, key int64) ([]byte, uint64, bool, error) {
	req := common.NewGetRequest(uint64(collection), key)
	resp, err := invokeRPCRequest(req, r.transport, r.serializer)
	if err != nil {
		return nil, 0, false, err
	}
	return resp.Value, resp.Version, resp.Ok, nil
}

func (r *remoteBackend) PutBatch(ctx context.Context, tasks []backend.WriteTask, flush bool) (uint64, error) {
	wireTasks := make([]common.WireWriteTask, len(tasks))
	for i, t := range tasks {
		wireTasks[i] = common.WireWriteTask{
			Collection: uint64(t.Collection),
			Key:        t.Key,
			Value:      t.Value,
			Delete:     t.Value == nil,
		}
	}
	req := common.NewPutBatchRequest(wireTasks, flush)
	resp, err := invokeRPCRequest(req, r.transport, r.serializer)
	if err != nil {
		return 0, err
	}
	return resp.CommitPoint, nil
}

func (r *remoteBackend) Scan(ctx context.Context, collection backend.CollectionID, minKey int64, limit int) ([]int64, [][]byte, []uint64, error) {
	req := common.NewScanRequest(uint64(collection), minKey, limit)
	resp, err := invokeRPCRequest(req, r.transport, r.serializer)
	if err != nil {
		return nil, nil, nil, err
	}
	return resp.Keys, resp.Values, resp.Versions, nil
}

func (r *remoteBackend) EstimateSize(ctx context.Context, collection backend.CollectionID, minKey, maxKey int64) (backend.SizeEstimate, error) {
	req := common.NewEstimateSizeRequest(uint64(collection), minKey, maxKey)
	resp, err := invokeRPCRequest(req, r.transport, r.serializer)
	if err != nil {
		return backend.SizeEstimate{}, err
	}
	return backend.SizeEstimate{
		MinCardinality: resp.MinCard,
		MaxCardinality: resp.MaxCard,
		MinValueBytes:  resp.MinValBytes,
		MaxValueBytes:  resp.MaxValBytes,
		MinMemoryBytes: resp.MinMemBytes,
		MaxMemoryBytes: resp.MaxMemBytes,
	}, nil
}

func (r *remoteBackend) BeginSnapshot(ctx context.Context) (backend.Snapshot, error) {
	return nil, fmt.Errorf("remote backend: snapshots are not supported over rpc")
}

func (r *remoteBackend) Control(ctx context.Context, command string) (string, error) {
	req := common.NewControlRequest(command)
	resp, err := invokeRPCRequest(req, r.transport, r.serializer)
	if err != nil {
		return "", err
	}
	return resp.Reply, nil
}

func (r *remoteBackend) DropCollection(ctx context.Context, collection backend.CollectionID) error {
	req := common.NewDropCollectionRequest(uint64(collection))
	_, err := invokeRPCRequest(req, r.transport, r.serializer)
	return err
}

func (r *remoteBackend) Close() error {
	return r.transport.Close()
}
