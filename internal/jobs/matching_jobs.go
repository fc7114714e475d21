package jobs

import (
	"context"
	"time"

	"members-lounge-backend/internal/logger"
)

const expireJobTimeout = 5 * time.Minute

// ExpireMatchingRequests moves stale pending matching requests to expired
// and notifies their requesters.
func (jr *JobRunner) ExpireMatchingRequests() {
	jr.runWithRecovery("ExpireMatchingRequests", func() {
		ctx, cancel := context.WithTimeout(context.Background(), expireJobTimeout)
		defer cancel()

		count, err := jr.services.Matching.ExpireStale(ctx, jr.now())
		if err != nil {
			logger.Error("Failed to expire matching requests", "error", err)
			return
		}
		logger.Info("Expired stale matching requests", "count", count)
	})
}
