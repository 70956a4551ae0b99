package exchange

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// Recorder writes exchanges without ever failing the request that produced them.
type Recorder struct {
	repo    *Repo
	timeout time.Duration
}

func NewRecorder(repo *Repo) *Recorder {
	return &Recorder{repo: repo, timeout: 3 * time.Second}
}

// Record detaches from ctx cancellation: the client may already be gone when a stream ends.
func (r *Recorder) Record(ctx context.Context, e *Exchange) {
	if r == nil || r.repo == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.timeout)
	defer cancel()

	if err := r.repo.Insert(ctx, e); err != nil {
		logrus.WithFields(logrus.Fields{
			"message_id": e.MessageID,
			"endpoint":   e.Endpoint,
		}).WithError(err).Warn("record exchange failed")
	}
}

func (r *Recorder) List(ctx context.Context, limit int, beforeID uint64) ([]Exchange, error) {
	return r.repo.List(ctx, limit, beforeID)
}
