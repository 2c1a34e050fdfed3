package memstore

import (
	"testing"

	"github.com/unum-cloud/ukv-go/lib/backend"
	"github.com/unum-cloud/ukv-go/lib/enginetest"
)

func TestMemstoreConformance(t *testing.T) {
	enginetest.RunBackendTests(t, "memstore", func() backend.Backend {
		return New()
	})
}
