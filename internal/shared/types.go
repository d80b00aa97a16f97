package shared

// Asynq task types
const (
	TypeLibraryAutoExit           = "library:auto_exit"
	TypeOverdueSweep              = "borrow:overdue_sweep"
	TypePurgeExpiredAnnouncements = "announcement:purge_expired"
)

// Queue names with priority weights configured in the worker
const (
	QueueHigh    = "high"
	QueueDefault = "default"
	QueueLow     = "low"
)

// Principal roles
const (
	RoleStudent   = "STUDENT"
	RoleLibrarian = "LIBRARIAN"
	RoleAdmin     = "ADMIN"
)
