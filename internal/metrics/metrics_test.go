package metrics

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"quickanswer/internal/models"
)

type fakeStore struct {
	mu       sync.Mutex
	rows     []models.ResolutionOutcome
	err      error
	recorded []string
}

func (f *fakeStore) IncrementOutcome(ctx context.Context, outcome, channel string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.recorded = append(f.recorded, outcome+"/"+channel)
	return f.err
}

func (f *fakeStore) GetAllOutcomes(ctx context.Context) ([]models.ResolutionOutcome, error) {
	return f.rows, f.err
}

func TestOutcomeCollector(t *testing.T) {
	store := &fakeStore{rows: []models.ResolutionOutcome{
		{Outcome: models.OutcomeModel, Channel: models.ChannelHTTP, Count: 7},
		{Outcome: models.OutcomeSearch, Channel: models.ChannelQueue, Count: 2},
	}}
	collector := NewOutcomeCollector(store, zap.NewNop())

	expected := `
# HELP quickanswer_resolutions_total Total question resolutions by outcome and channel
# TYPE quickanswer_resolutions_total counter
quickanswer_resolutions_total{channel="http",outcome="model"} 7
quickanswer_resolutions_total{channel="queue",outcome="search"} 2
`
	require.NoError(t, testutil.CollectAndCompare(collector, strings.NewReader(expected)))
}

func TestOutcomeCollector_StoreError(t *testing.T) {
	collector := NewOutcomeCollector(&fakeStore{err: errors.New("db down")}, zap.NewNop())

	assert.Equal(t, 0, testutil.CollectAndCount(collector))
}

func TestRecorder_Record(t *testing.T) {
	store := &fakeStore{}
	r := &Recorder{store: store, logger: zap.NewNop()}

	r.record(models.ChannelHTTP, models.OutcomeModel)
	r.record(models.ChannelQueue, models.OutcomeSearchEmpty)
	r.wg.Wait()

	assert.ElementsMatch(t, []string{"model/http", "search_empty/queue"}, store.recorded)
}

func TestRecordResolution_WithoutInit(t *testing.T) {
	assert.NotPanics(t, func() {
		RecordResolution(models.ChannelCLI, models.OutcomeModel, 0)
		Flush()
	})
}
