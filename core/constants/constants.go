package constants

import "time"

const (
	DefaultRequestTimeout = 10 * time.Second
	DefaultPageSize       = 20
	MaxPageSize           = 100

	ContextTokenData = "token_data"

	ScopeServiceToken = "scheduler:run"
)

// Database pool defaults, used when config leaves them at zero.
const (
	DatabaseSSLMode         = "disable"
	DatabaseMaxOpenConns    = 25
	DatabaseMaxIdleConns    = 5
	DatabaseConnMaxLifetime = 30 // minutes
)

// Scheduling defaults. The search window is business policy and can be
// overridden through the scheduling config section.
const (
	DefaultOpeningHour         = 9.0
	DefaultClosingHour         = 17.0
	DefaultStepHours           = 0.5
	DefaultMinimumParticipants = 2

	SchedulingInProgress   = "Scheduling in progress"
	SchedulingRunTaskType  = "scheduling:run"
	SchedulingRunKeyPrefix = "scheduling:run:"
	SchedulingLatestRunKey = "scheduling:run:latest"
	SchedulingRunLockKey   = "scheduling:lock"
	DefaultRunStatusTTL    = 24 * time.Hour
	DefaultRunTimeout      = 5 * time.Minute
)
