package workers

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type fakePruner struct {
	mu      sync.Mutex
	cutoffs []time.Time
	deleted int64
	err     error
}

func (f *fakePruner) DeleteBefore(_ context.Context, cutoff time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cutoffs = append(f.cutoffs, cutoff)
	return f.deleted, f.err
}

func (f *fakePruner) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.cutoffs)
}

func TestAuditRetention_PruneCutoff(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	p := &fakePruner{deleted: 7}
	w := NewAuditRetention(p, zap.NewNop(), time.Hour, 48*time.Hour)
	w.now = func() time.Time { return now }

	assert.Equal(t, int64(7), w.Prune())
	require.Len(t, p.cutoffs, 1)
	assert.Equal(t, now.Add(-48*time.Hour), p.cutoffs[0])
}

func TestAuditRetention_PruneErrorIsLogged(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	p := &fakePruner{err: errors.New("boom")}
	w := NewAuditRetention(p, zap.New(core), time.Hour, time.Hour)

	assert.Equal(t, int64(0), w.Prune())
	assert.Equal(t, 1, logs.FilterMessage("failed to prune audit events").Len())
}

func TestAuditRetention_StartPrunesImmediatelyAndStops(t *testing.T) {
	p := &fakePruner{}
	w := NewAuditRetention(p, zap.NewNop(), time.Hour, time.Hour)

	w.Start()
	assert.Eventually(t, func() bool { return p.calls() == 1 }, time.Second, 5*time.Millisecond)
	w.Stop()
	assert.Equal(t, 1, p.calls())
}
