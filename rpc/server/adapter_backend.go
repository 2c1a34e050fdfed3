package server

import (
	"context"
	"fmt"

	"github.com/unum-cloud/ukv-go/lib/backend"
	"github.com/unum-cloud/ukv-go/rpc/common"
)

// NewBackendServerAdapter creates the default adapter, dispatching batch
// requests straight onto a backend.Backend.
func NewBackendServerAdapter() IRPCServerAdapter {
	return &backendServerAdapterImpl{}
}

type backendServerAdapterImpl struct{}

func (adapter *backendServerAdapterImpl) Handle(req *common.BatchMessage, be backend.Backend) *common.BatchMessage {
	if be == nil {
		return common.NewErrorResponse("handler: backend is nil")
	}

	ctx := context.Background()

	switch req.MsgType {
	case common.MsgTGet:
		value, version, found, err := be.Get(ctx, backend.CollectionID(req.Collection), req.Key)
		return common.NewGetResponse(value, version, found, err)

	case common.MsgTPutBatch:
		tasks := make([]backend.WriteTask, len(req.Tasks))
		for i, t := range req.Tasks {
			value := t.Value
			switch {
			case t.Delete:
				value = nil
			case value == nil:
				// A non-deleting task with a nil Value crossed the wire as
				// an empty write ([]byte{}, Delete=false); gob can't tell a
				// nil slice from a non-nil empty one, so Delete is the only
				// trustworthy
				// signal here. PutBatch treats a nil Value as a delete, so
				// re-establish the non-nil empty value it must see.
				value = []byte{}
			}
			tasks[i] = backend.WriteTask{Collection: backend.CollectionID(t.Collection), Key: t.Key, Value: value}
		}
		point, err := be.PutBatch(ctx, tasks, req.Flush)
		return common.NewPutBatchResponse(point, err)

	case common.MsgTScan:
		keys, values, versions, err := be.Scan(ctx, backend.CollectionID(req.Collection), req.MinKey, req.Limit)
		return common.NewScanResponse(keys, values, versions, err)

	case common.MsgTEstimateSize:
		est, err := be.EstimateSize(ctx, backend.CollectionID(req.Collection), req.MinKey, req.MaxKey)
		return common.NewEstimateSizeResponse(
			uint64(est.MinCardinality), uint64(est.MaxCardinality),
			uint64(est.MinValueBytes), uint64(est.MaxValueBytes),
			uint64(est.MinMemoryBytes), uint64(est.MaxMemoryBytes),
			err,
		)

	case common.MsgTControl:
		reply, err := be.Control(ctx, req.Command)
		return common.NewControlResponse(reply, err)

	case common.MsgTDropCollection:
		err := be.DropCollection(ctx, backend.CollectionID(req.Collection))
		return common.NewDropCollectionResponse(err)

	default:
		return common.NewErrorResponse(fmt.Sprintf("rpc backend adapter: unsupported message type %s", req.MsgType))
	}
}
