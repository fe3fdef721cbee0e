package job

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/SireeshaRagipati24/instagen-scheduler/internal/models"
	"github.com/SireeshaRagipati24/instagen-scheduler/internal/notify"
	"github.com/SireeshaRagipati24/instagen-scheduler/internal/registry"
	"github.com/SireeshaRagipati24/instagen-scheduler/internal/remote"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingStore struct {
	remote.PostStore
	calls atomic.Int32
}

func (c *countingStore) ListPosts(ctx context.Context) ([]models.ScheduledPost, error) {
	c.calls.Add(1)
	return []models.ScheduledPost{{ID: 1, Status: models.PostStatusScheduled}}, nil
}

func TestRegistryPollJob_Run(t *testing.T) {
	store := &countingStore{}
	reg := registry.New(store, notify.NewLogNotifier())

	j := NewRegistryPollJob(reg)
	j.Run()

	assert.Equal(t, int32(1), store.calls.Load())
	assert.Len(t, reg.Posts(), 1)
	assert.False(t, reg.Loading(), "poll refresh must stay silent")
}

func TestPoller_StopPreventsFurtherRuns(t *testing.T) {
	var runs atomic.Int32
	poller, err := StartPoller("@every 1s", func() { runs.Add(1) })
	require.NoError(t, err)

	// tear down before the first tick; nothing may fire afterwards
	poller.Stop()
	time.Sleep(1500 * time.Millisecond)

	assert.Equal(t, int32(0), runs.Load())
}

func TestStartPoller_InvalidSpec(t *testing.T) {
	_, err := StartPoller("not a schedule", func() {})
	require.Error(t, err)
}
