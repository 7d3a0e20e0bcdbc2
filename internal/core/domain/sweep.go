package domain

import "time"

// SweepItemOutcome is the per-file result of one sweep run
type SweepItemOutcome string

const (
	SweepOutcomeDeleted       SweepItemOutcome = "deleted"
	SweepOutcomeAlreadyAbsent SweepItemOutcome = "already_absent"
	SweepOutcomeError         SweepItemOutcome = "error"
)

// SweepSummary is the tally of one sweep run over expired files
type SweepSummary struct {
	Found         int
	Deleted       int
	AlreadyAbsent int
	Errors        int
	Duration      time.Duration
}
