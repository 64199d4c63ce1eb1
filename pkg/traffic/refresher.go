package traffic

import (
	"context"
	"math/rand"
	"time"

	"github.com/dynaroute/dynaroute/pkg/concurrent"
	"github.com/dynaroute/dynaroute/pkg/util"
	"go.uber.org/zap"
)

// Refresher periodically re-aggregates traffic data for a bounded random
// subset of segments, keeping refresh cost constant regardless of network
// size. It only mutates the aggregator cache and never touches in-flight
// search state.
type Refresher struct {
	agg        *Aggregator
	segmentIds func() []string
	interval   time.Duration
	batchSize  int
	numWorkers int
	log        *zap.Logger
}

func NewRefresher(agg *Aggregator, segmentIds func() []string, interval time.Duration,
	batchSize, numWorkers int, log *zap.Logger) *Refresher {
	return &Refresher{
		agg:        agg,
		segmentIds: segmentIds,
		interval:   interval,
		batchSize:  batchSize,
		numWorkers: numWorkers,
		log:        log,
	}
}

// Run blocks until ctx is canceled, refreshing one batch per tick.
func (r *Refresher) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.log.Info("traffic refresher stopped")
			return
		case <-ticker.C:
			r.RefreshBatch(ctx)
		}
	}
}

// RefreshBatch refreshes up to batchSize randomly chosen segments in
// parallel.
func (r *Refresher) RefreshBatch(ctx context.Context) {
	ids := r.segmentIds()
	rand.Shuffle(len(ids), func(i, j int) {
		ids[i], ids[j] = ids[j], ids[i]
	})

	count := util.MinInt(r.batchSize, len(ids))
	if count == 0 {
		return
	}

	pool := concurrent.NewWorkerPool[string, string](r.numWorkers, count)
	pool.Start(func(segmentId string) string {
		r.agg.Refresh(ctx, segmentId)
		return segmentId
	})
	for _, segmentId := range ids[:count] {
		pool.AddJob(segmentId)
	}
	pool.Close()
	pool.Wait()

	r.log.Debug("refreshed traffic data", zap.Int("segments", count))
}
