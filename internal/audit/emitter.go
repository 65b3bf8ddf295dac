// Package audit records an operational trail of user actions (logins, pixel
// selection, tracked events, CRM hand-offs) in MongoDB without putting the
// writes on the request path.
package audit

import (
	"context"
	"sync"
	"time"

	"pixeltrack/internal/metrics"
	"pixeltrack/internal/models"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
)

var Em *Emitter

// writeTimeout bounds a single sink write.
const writeTimeout = 2 * time.Second

// Sink persists audit records. Write receives records in emission order.
type Sink interface {
	Write(ctx context.Context, recs []models.AuditRecord) error
}

// MongoSink appends records to the audit collection.
type MongoSink struct {
	coll *mongo.Collection
}

func NewMongoSink(coll *mongo.Collection) *MongoSink {
	return &MongoSink{coll: coll}
}

func (s *MongoSink) Write(ctx context.Context, recs []models.AuditRecord) error {
	if len(recs) == 1 {
		_, err := s.coll.InsertOne(ctx, recs[0])
		return err
	}

	docs := make([]any, len(recs))
	for i := range recs {
		docs[i] = recs[i]
	}
	_, err := s.coll.InsertMany(ctx, docs)
	return err
}

// Config tunes the queue in front of the sink. A batch is written when it
// reaches BatchSize records or when FlushEvery elapses, whichever is first.
type Config struct {
	QueueSize  int
	BatchSize  int
	FlushEvery time.Duration
}

// ConfigFor returns the queue settings of a deployment profile. The test
// profile flushes quickly so assertions do not wait on the ticker.
func ConfigFor(deployment string) Config {
	cfg := Config{QueueSize: 1000, BatchSize: 50, FlushEvery: 2 * time.Second}
	if deployment == "test" {
		cfg.FlushEvery = 50 * time.Millisecond
	}
	return cfg
}

type Emitter struct {
	sink  Sink
	cfg   Config
	queue chan models.AuditRecord

	done      sync.WaitGroup
	closeOnce sync.Once
}

func NewEmitter(sink Sink, deployment string) *Emitter {
	return NewEmitterWithConfig(sink, ConfigFor(deployment))
}

func NewEmitterWithConfig(sink Sink, cfg Config) *Emitter {
	if cfg.BatchSize < 1 {
		cfg.BatchSize = 1
	}

	e := &Emitter{
		sink:  sink,
		cfg:   cfg,
		queue: make(chan models.AuditRecord, cfg.QueueSize),
	}

	e.done.Add(1)
	go e.run()

	return e
}

// Close stops accepting records and waits for the last batch to be written.
func (e *Emitter) Close() {
	e.closeOnce.Do(func() {
		close(e.queue)
		e.done.Wait()
	})
}

func (e *Emitter) run() {
	defer e.done.Done()

	ticker := time.NewTicker(e.cfg.FlushEvery)
	defer ticker.Stop()

	pending := make([]models.AuditRecord, 0, e.cfg.BatchSize)

	for {
		select {
		case rec, ok := <-e.queue:
			if !ok {
				e.write(pending)
				return
			}
			pending = append(pending, rec)
			if len(pending) >= e.cfg.BatchSize {
				e.write(pending)
				pending = pending[:0]
			}
		case <-ticker.C:
			e.write(pending)
			pending = pending[:0]
		}
	}
}

// write hands recs to the sink and accounts for the outcome. A failed batch is
// logged and counted, never retried.
func (e *Emitter) write(recs []models.AuditRecord) {
	if len(recs) == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()

	if err := e.sink.Write(ctx, recs); err != nil {
		metrics.AuditRecords.WithLabelValues(metrics.ResultDropped).Add(float64(len(recs)))
		log.WithError(err).
			WithField("records", len(recs)).
			WithField("firstAction", recs[0].Action).
			Warn("audit records dropped")
		return
	}

	metrics.AuditRecords.WithLabelValues(metrics.ResultWritten).Add(float64(len(recs)))
}
