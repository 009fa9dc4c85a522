package dto

import "time"

type SnapshotOutput struct {
	Climbs         int
	Sends          int
	ElapsedSeconds int
	IsActive       bool
	State          string
	Time           string
}

type LogClimbInput struct {
	Status          string
	Attempts        int
	DurationSeconds int
}

type HistoryInput struct {
	Limit int
}

type HistoryEntryOutput struct {
	ID              string
	Status          string
	Attempts        int
	DurationSeconds int
	LoggedAt        time.Time
	Climbs          int
	Sends           int
}

type ExportInput struct {
	Path  string
	Limit int
}

type ExportOutput struct {
	Path    string
	Entries int
	Sends   int
}
