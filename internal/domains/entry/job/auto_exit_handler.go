package job

import (
	"context"
	"time"

	"github.com/hibiken/asynq"

	entryservice "library-backend/internal/domains/entry/service"
	hoursservice "library-backend/internal/domains/hours/service"
	"library-backend/pkg/logger"
)

// AutoExitHandler closes every open visit once the library is past its
// closing time, so nobody stays "inside" overnight because they walked
// out without scanning.
type AutoExitHandler struct {
	hours   hoursservice.ServiceInterface
	entries entryservice.ServiceInterface
}

func NewAutoExitHandler(hours hoursservice.ServiceInterface, entries entryservice.ServiceInterface) *AutoExitHandler {
	return &AutoExitHandler{
		hours:   hours,
		entries: entries,
	}
}

func (h *AutoExitHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	now := time.Now()

	open, err := h.hours.IsOpen(ctx, now)
	if err != nil {
		return err
	}
	if open {
		return nil
	}

	closed, err := h.entries.AutoExitAll(ctx, now)
	if err != nil {
		return err
	}

	if closed > 0 {
		logger.Info("auto-exited open entries after close", map[string]interface{}{
			"count": closed,
		})
	}

	return nil
}
