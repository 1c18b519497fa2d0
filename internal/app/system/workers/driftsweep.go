// internal/app/system/workers/driftsweep.go
package workers

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/kvnhng/boardhub/internal/app/system/reconcile"
)

// BoardLister supplies the board ids a sweep should cover.
type BoardLister interface {
	LiveIDs(ctx context.Context) ([]primitive.ObjectID, error)
}

// DriftSweep is a background worker that periodically checks every
// live board's order lists against its card rows. Drift is logged by
// the checker; the sweep itself never mutates anything.
type DriftSweep struct {
	boards   BoardLister
	checker  *reconcile.Checker
	log      *zap.Logger
	interval time.Duration
	stopCh   chan struct{}
	wg       sync.WaitGroup
}

// NewDriftSweep creates a drift sweep worker that runs every interval.
func NewDriftSweep(boards BoardLister, checker *reconcile.Checker, logger *zap.Logger, interval time.Duration) *DriftSweep {
	return &DriftSweep{
		boards:   boards,
		checker:  checker,
		log:      logger,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the background sweep loop.
func (w *DriftSweep) Start() {
	w.wg.Add(1)
	go w.run()
	w.log.Info("drift sweep worker started", zap.Duration("interval", w.interval))
}

// Stop signals the worker to stop and waits for it to finish.
func (w *DriftSweep) Stop() {
	close(w.stopCh)
	w.wg.Wait()
	w.log.Info("drift sweep worker stopped")
}

func (w *DriftSweep) run() {
	defer w.wg.Done()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.sweep()
		}
	}
}

func (w *DriftSweep) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	ids, err := w.boards.LiveIDs(ctx)
	if err != nil {
		w.log.Error("drift sweep failed to list boards", zap.Error(err))
		return
	}

	drifted := 0
	for _, id := range ids {
		reports, err := w.checker.CheckBoard(ctx, id)
		if err != nil {
			w.log.Error("drift sweep failed to check board",
				zap.String("board_id", id.Hex()), zap.Error(err))
			continue
		}
		drifted += len(reports)
	}

	if drifted > 0 {
		w.log.Warn("drift sweep found inconsistent columns",
			zap.Int("boards", len(ids)), zap.Int("columns", drifted))
	}
}
