package dto

import "time"

type StateOutput struct {
	Running     bool
	Elapsed     time.Duration
	ElapsedText string
	Attempt     int
	Generation  int
}

type EventOutput struct {
	Status          string
	Attempts        int
	DurationSeconds int
}
