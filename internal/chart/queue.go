package chart

import (
	"context"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var remoteWritesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "chartkeep",
		Name:      "remote_writes_total",
		Help:      "Remote write operations drained from the queue",
	},
	[]string{"op", "result"},
)

// remoteOp is a deferred remote write. Ops are drained by a single worker in
// enqueue order, so writes touching the same entity id are serialized and the
// remote store cannot end up representing an earlier state than a later one.
type remoteOp struct {
	op   string // e.g. "update-account"
	key  string // entity id, for logging
	call func(ctx context.Context) error
}

// writeQueue serializes best-effort remote writes. Failures are logged and
// counted, never retried and never surfaced to the caller that enqueued the
// op.
type writeQueue struct {
	ops     chan remoteOp
	done    chan struct{}
	log     *slog.Logger
	timeout time.Duration
}

func newWriteQueue(log *slog.Logger, timeout time.Duration) *writeQueue {
	q := &writeQueue{
		ops:     make(chan remoteOp, 256),
		done:    make(chan struct{}),
		log:     log,
		timeout: timeout,
	}
	go q.run()
	return q
}

func (q *writeQueue) run() {
	defer close(q.done)
	for op := range q.ops {
		ctx, cancel := context.WithTimeout(context.Background(), q.timeout)
		err := op.call(ctx)
		cancel()
		if err != nil {
			remoteWritesTotal.WithLabelValues(op.op, "error").Inc()
			q.log.Warn("remote write failed, keeping local state", "op", op.op, "id", op.key, "err", err)
			continue
		}
		remoteWritesTotal.WithLabelValues(op.op, "ok").Inc()
	}
}

// enqueue hands the op to the worker. The channel is buffered well beyond any
// realistic burst; if it does fill, enqueue applies backpressure rather than
// dropping the write.
func (q *writeQueue) enqueue(op remoteOp) {
	q.ops <- op
}

// close stops accepting ops and blocks until the queue is drained.
func (q *writeQueue) close() {
	close(q.ops)
	<-q.done
}
