package contract

import (
	"fmt"
	"strings"

	"github.com/goccy/go-json"
)

// TodaySessionResponse is returned by every /sessions/today endpoint.
type TodaySessionResponse struct {
	Climbs         int  `json:"climbs"`
	Sends          int  `json:"sends"`
	ElapsedSeconds int  `json:"elapsedSeconds"`
	IsActive       bool `json:"isActive"`
}

// UnmarshalJSON requires all four keys and non-negative counters.
// sends <= climbs is deliberately not checked.
func (t *TodaySessionResponse) UnmarshalJSON(data []byte) error {
	var raw struct {
		Climbs         *int  `json:"climbs"`
		Sends          *int  `json:"sends"`
		ElapsedSeconds *int  `json:"elapsedSeconds"`
		IsActive       *bool `json:"isActive"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode today session: %w", err)
	}
	var missing []string
	if raw.Climbs == nil {
		missing = append(missing, "climbs")
	}
	if raw.Sends == nil {
		missing = append(missing, "sends")
	}
	if raw.ElapsedSeconds == nil {
		missing = append(missing, "elapsedSeconds")
	}
	if raw.IsActive == nil {
		missing = append(missing, "isActive")
	}
	if len(missing) > 0 {
		return fmt.Errorf("today session: missing %s", strings.Join(missing, ", "))
	}
	if *raw.Climbs < 0 || *raw.Sends < 0 || *raw.ElapsedSeconds < 0 {
		return fmt.Errorf("today session: negative counter in climbs=%d sends=%d elapsedSeconds=%d", *raw.Climbs, *raw.Sends, *raw.ElapsedSeconds)
	}
	*t = TodaySessionResponse{
		Climbs:         *raw.Climbs,
		Sends:          *raw.Sends,
		ElapsedSeconds: *raw.ElapsedSeconds,
		IsActive:       *raw.IsActive,
	}
	return nil
}

// ClimbEventRequest is posted to /sessions/today/climbs.
type ClimbEventRequest struct {
	Status          ClimbStatus `json:"status"`
	Attempts        int         `json:"attempts"`
	DurationSeconds int         `json:"durationSeconds"`
}

// SaveClimbResponse acknowledges an uploaded climb recording.
type SaveClimbResponse struct {
	ClimbID        string         `json:"climbId"`
	Message        string         `json:"message"`
	VideoURL       *string        `json:"videoURL,omitempty"`
	AnalysisStatus AnalysisStatus `json:"analysisStatus"`
}

// SaveRouteResponse acknowledges a created or updated route.
type SaveRouteResponse struct {
	RouteID        string         `json:"routeId"`
	Message        string         `json:"message"`
	ImageURL       *string        `json:"imageURL,omitempty"`
	AnalysisStatus AnalysisStatus `json:"analysisStatus"`
}
