package store

import (
	"context"

	"github.com/cuemby/snapvault/pkg/key"
)

// FetchRecorder receives fetch counts and byte totals. pkg/metrics
// implements this against prometheus collectors; tests can supply a
// stub.
type FetchRecorder interface {
	RecordFetch(driver string, bytes int)
}

// instrumented wraps a Store, recording every Get against a
// FetchRecorder. ListContents passes through unmodified.
type instrumented struct {
	Store
	driver   string
	recorder FetchRecorder
}

// Instrument wraps s so every Get is reported to recorder under the
// given driver label.
func Instrument(s Store, driver string, recorder FetchRecorder) Store {
	if recorder == nil {
		return s
	}
	return &instrumented{Store: s, driver: driver, recorder: recorder}
}

func (i *instrumented) Get(ctx context.Context, k key.Key) ([]byte, error) {
	data, err := i.Store.Get(ctx, k)
	if err == nil {
		i.recorder.RecordFetch(i.driver, len(data))
	}
	return data, err
}
