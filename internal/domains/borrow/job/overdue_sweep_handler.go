package job

import (
	"context"

	"github.com/hibiken/asynq"

	"library-backend/internal/domains/borrow/service"
	"library-backend/pkg/logger"
)

// OverdueSweepHandler raises stored fines on open overdue records to
// the current accrual. Reads already derive OVERDUE from the due date;
// the sweep only keeps the persisted fine amounts in step.
type OverdueSweepHandler struct {
	borrows service.ServiceInterface
}

func NewOverdueSweepHandler(borrows service.ServiceInterface) *OverdueSweepHandler {
	return &OverdueSweepHandler{
		borrows: borrows,
	}
}

func (h *OverdueSweepHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	updated, err := h.borrows.AccrueOverdueFines(ctx)
	if err != nil {
		return err
	}

	if updated > 0 {
		logger.Info("overdue fines accrued", map[string]interface{}{
			"records": updated,
		})
	}

	return nil
}
