package serializer

import (
	"testing"

	"github.com/unum-cloud/ukv-go/rpc/common"
)

func benchmarkMessages() map[string]common.BatchMessage {
	return map[string]common.BatchMessage{
		"Empty": {
			MsgType: common.MsgTSuccess,
		},
		"SingleGet": {
			MsgType: common.MsgTGet,
			Key:     42,
		},
		"SmallBatch": {
			MsgType: common.MsgTPutBatch,
			Tasks: []common.WireWriteTask{
				{Collection: 1, Key: 1, Value: []byte("v")},
			},
		},
		"MediumBatch": {
			MsgType: common.MsgTPutBatch,
			Tasks:   makeTasks(32, 64),
		},
		"LargeBatch": {
			MsgType: common.MsgTPutBatch,
			Tasks:   makeTasks(512, 256),
		},
		"ScanResult": {
			MsgType: common.MsgTScan,
			Keys:    makeKeys(128),
			Values:  makeValues(128, 64),
		},
		"ErrorMessage": {
			MsgType: common.MsgTError,
			Err:     "Lorem ipsum dolor sit amet, consectetur adipiscing elit.",
		},
	}
}

func makeTasks(count, valueSize int) []common.WireWriteTask {
	tasks := make([]common.WireWriteTask, count)
	for i := range tasks {
		tasks[i] = common.WireWriteTask{Collection: 0, Key: int64(i), Value: make([]byte, valueSize)}
	}
	return tasks
}

func makeKeys(count int) []int64 {
	keys := make([]int64, count)
	for i := range keys {
		keys[i] = int64(i)
	}
	return keys
}

func makeValues(count, size int) [][]byte {
	values := make([][]byte, count)
	for i := range values {
		values[i] = make([]byte, size)
	}
	return values
}

func BenchmarkSerialize(b *testing.B) {
	messages := benchmarkMessages()

	for name, factory := range testSerializers {
		for msgName, msg := range messages {
			b.Run(name+"_"+msgName, func(b *testing.B) {
				ser := factory()
				b.ResetTimer()
				for i := 0; i < b.N; i++ {
					if _, err := ser.Serialize(msg); err != nil {
						b.Fatalf("failed to serialize: %v", err)
					}
				}
			})
		}
	}
}

func BenchmarkDeserialize(b *testing.B) {
	messages := benchmarkMessages()
	serializedData := make(map[string]map[string][]byte)

	for name, factory := range testSerializers {
		ser := factory()
		serializedData[name] = make(map[string][]byte)
		for msgName, msg := range messages {
			data, err := ser.Serialize(msg)
			if err != nil {
				b.Fatalf("failed to serialize %s with %s: %v", msgName, name, err)
			}
			serializedData[name][msgName] = data
		}
	}

	for name, factory := range testSerializers {
		for msgName := range messages {
			b.Run(name+"_"+msgName, func(b *testing.B) {
				ser := factory()
				data := serializedData[name][msgName]
				b.ResetTimer()
				for i := 0; i < b.N; i++ {
					var msg common.BatchMessage
					if err := ser.Deserialize(data, &msg); err != nil {
						b.Fatalf("failed to deserialize: %v", err)
					}
				}
			})
		}
	}
}
