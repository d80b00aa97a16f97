package main

import (
	"github.com/hibiken/asynq"

	announcementJob "library-backend/internal/domains/announcement/job"
	borrowJob "library-backend/internal/domains/borrow/job"
	entryJob "library-backend/internal/domains/entry/job"
	"library-backend/internal/shared"
	"library-backend/pkg/container"
)

// HandlerRegistry holds all job handlers
type HandlerRegistry struct {
	autoExit          *entryJob.AutoExitHandler
	overdueSweep      *borrowJob.OverdueSweepHandler
	purgeAnnouncement *announcementJob.PurgeExpiredHandler
}

// initializeHandlers creates all job handlers with their dependencies
func initializeHandlers(c *container.Container) *HandlerRegistry {
	return &HandlerRegistry{
		autoExit:          entryJob.NewAutoExitHandler(c.HoursService, c.EntryService),
		overdueSweep:      borrowJob.NewOverdueSweepHandler(c.BorrowService),
		purgeAnnouncement: announcementJob.NewPurgeExpiredHandler(c.AnnouncementService),
	}
}

// RegisterHandlers registers all handlers with the mux
func (h *HandlerRegistry) RegisterHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(shared.TypeLibraryAutoExit, h.autoExit.ProcessTask)
	mux.HandleFunc(shared.TypeOverdueSweep, h.overdueSweep.ProcessTask)
	mux.HandleFunc(shared.TypePurgeExpiredAnnouncements, h.purgeAnnouncement.ProcessTask)
}
