package progress_test

import (
	"bytes"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/codeatlas/codeatlas/internal/adapters/outbound/progress"
)

func TestTracker_ConcurrentTicks(t *testing.T) {
	var buf bytes.Buffer
	tr := progress.NewTrackerTo(&buf, "extracting", 50)

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tr.Tick()
		}()
	}
	wg.Wait()
	tr.Finish(nil)

	assert.NotContains(t, buf.String(), "error")
}

func TestTracker_FinishWithError(t *testing.T) {
	var buf bytes.Buffer
	tr := progress.NewTrackerTo(&buf, "extracting", 3)
	tr.Tick()
	tr.Finish(errors.New("cancelled"))

	assert.Contains(t, buf.String(), "extracting error: cancelled")
}
