package pebblestore

import (
	"testing"

	"github.com/unum-cloud/ukv-go/lib/backend"
	"github.com/unum-cloud/ukv-go/lib/enginetest"
)

func TestPebblestoreConformance(t *testing.T) {
	enginetest.RunBackendTests(t, "pebblestore", func() backend.Backend {
		return openTestStore(t)
	})
}
