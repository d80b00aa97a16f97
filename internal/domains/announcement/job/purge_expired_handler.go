package job

import (
	"context"

	"github.com/hibiken/asynq"

	"library-backend/internal/domains/announcement/service"
)

// PurgeExpiredHandler removes announcements whose expiry has passed
type PurgeExpiredHandler struct {
	announcements service.ServiceInterface
}

func NewPurgeExpiredHandler(announcements service.ServiceInterface) *PurgeExpiredHandler {
	return &PurgeExpiredHandler{
		announcements: announcements,
	}
}

func (h *PurgeExpiredHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	_, err := h.announcements.PurgeExpired(ctx)
	return err
}
