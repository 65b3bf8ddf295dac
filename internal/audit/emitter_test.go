package audit

import (
	"context"
	"sync"
	"testing"
	"time"

	"pixeltrack/internal/metrics"
	"pixeltrack/internal/models"

	"github.com/pkg/errors"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

type memSink struct {
	mu     sync.Mutex
	writes [][]models.AuditRecord
	err    error
}

func (s *memSink) Write(ctx context.Context, recs []models.AuditRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.writes = append(s.writes, append([]models.AuditRecord(nil), recs...))
	return nil
}

func (s *memSink) records() []models.AuditRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.AuditRecord
	for _, w := range s.writes {
		out = append(out, w...)
	}
	return out
}

func (s *memSink) writeCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.writes)
}

func TestConfigFor(t *testing.T) {
	require.Equal(t, 2*time.Second, ConfigFor("prod").FlushEvery)
	require.Equal(t, 50*time.Millisecond, ConfigFor("test").FlushEvery)
	require.Equal(t, 50, ConfigFor("").BatchSize)
}

func TestEmitterWritesFullBatch(t *testing.T) {
	sink := &memSink{}
	e := NewEmitterWithConfig(sink, Config{QueueSize: 10, BatchSize: 2, FlushEvery: time.Hour})

	e.UserLogin("u1")
	e.PixelSelected("u1", "px1")

	require.Eventually(t, func() bool { return sink.writeCount() == 1 }, time.Second, 5*time.Millisecond)
	e.Close()

	recs := sink.records()
	require.Len(t, recs, 2)
	require.Equal(t, ActionUserLogin, recs[0].Action)
	require.Equal(t, ActionPixelSelected, recs[1].Action)
	require.Equal(t, TargetPixel, recs[1].TargetType)
	require.Equal(t, "px1", recs[1].TargetID)
	require.False(t, recs[0].TimeStamp.IsZero())
}

func TestEmitterFlushesOnTicker(t *testing.T) {
	sink := &memSink{}
	e := NewEmitterWithConfig(sink, Config{QueueSize: 10, BatchSize: 50, FlushEvery: 10 * time.Millisecond})
	t.Cleanup(e.Close)

	e.LeadForwarded("u1", models.Lead{Contact: "ion@example.com", Source: "Facebook"})

	require.Eventually(t, func() bool { return len(sink.records()) == 1 }, time.Second, 5*time.Millisecond)
	require.Equal(t, ActionLeadForwarded, sink.records()[0].Action)
	require.Equal(t, "Facebook", sink.records()[0].Props["source"])
}

func TestEmitterCloseDrainsPartialBatch(t *testing.T) {
	sink := &memSink{}
	e := NewEmitterWithConfig(sink, Config{QueueSize: 10, BatchSize: 50, FlushEvery: time.Hour})

	e.EventRecorded("u1", models.Event{EventID: "evt-1", EventName: "Lead"})
	e.Close()

	recs := sink.records()
	require.Len(t, recs, 1)
	require.Equal(t, ActionEventRecorded, recs[0].Action)
	require.Equal(t, "Lead", recs[0].Props["eventName"])
}

func TestEmitterWritesInlineWhenQueueIsFull(t *testing.T) {
	sink := &memSink{}
	e := &Emitter{sink: sink, queue: make(chan models.AuditRecord)}

	e.UserLogout("u1")

	recs := sink.records()
	require.Len(t, recs, 1)
	require.Equal(t, ActionUserLogout, recs[0].Action)
}

func TestEmitterCountsDroppedRecords(t *testing.T) {
	before := promtest.ToFloat64(metrics.AuditRecords.WithLabelValues(metrics.ResultDropped))

	sink := &memSink{err: errors.New("mongo down")}
	e := NewEmitterWithConfig(sink, Config{QueueSize: 10, BatchSize: 50, FlushEvery: time.Hour})
	e.UserCreated("u1", "1001")
	e.UserLogin("u1")
	e.Close()

	after := promtest.ToFloat64(metrics.AuditRecords.WithLabelValues(metrics.ResultDropped))
	require.Equal(t, 2.0, after-before)
}
