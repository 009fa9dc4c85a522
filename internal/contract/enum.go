// Package contract holds the wire types exchanged with the climbing backend.
//
// Every enumerated string is a closed set: decoding an unknown tag fails
// instead of silently falling back to a default, and encoding an invalid
// value fails as well.
package contract

import (
	"fmt"
	"strings"

	"github.com/goccy/go-json"
)

func decodeEnum[T ~string](data []byte, kind string, valid func(T) bool) (T, error) {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return "", fmt.Errorf("decode %s: %w", kind, err)
	}
	v := T(raw)
	if !valid(v) {
		return "", fmt.Errorf("unknown %s %q", kind, raw)
	}
	return v, nil
}

func encodeEnum[T ~string](v T, kind string, valid func(T) bool) ([]byte, error) {
	if !valid(v) {
		return nil, fmt.Errorf("invalid %s %q", kind, string(v))
	}
	return json.Marshal(string(v))
}

type RouteType string

const (
	RouteTypeBoulder RouteType = "BOULDER"
	RouteTypeSport   RouteType = "SPORT"
	RouteTypeTopRope RouteType = "TOPROPE"
	RouteTypeTrad    RouteType = "TRAD"
)

func (r RouteType) Valid() bool {
	switch r {
	case RouteTypeBoulder, RouteTypeSport, RouteTypeTopRope, RouteTypeTrad:
		return true
	}
	return false
}

func (r RouteType) DisplayName() string {
	switch r {
	case RouteTypeBoulder:
		return "Boulder"
	case RouteTypeSport:
		return "Sport"
	case RouteTypeTopRope:
		return "Top Rope"
	case RouteTypeTrad:
		return "Trad"
	}
	return string(r)
}

func (r RouteType) MarshalJSON() ([]byte, error) {
	return encodeEnum(r, "route type", RouteType.Valid)
}

func (r *RouteType) UnmarshalJSON(data []byte) error {
	v, err := decodeEnum(data, "route type", RouteType.Valid)
	if err != nil {
		return err
	}
	*r = v
	return nil
}

type ClimbStatus string

const (
	ClimbStatusAttempted ClimbStatus = "ATTEMPTED"
	ClimbStatusCompleted ClimbStatus = "COMPLETED"
	ClimbStatusProject   ClimbStatus = "PROJECT"
	ClimbStatusFlash     ClimbStatus = "FLASH"
	ClimbStatusOnsight   ClimbStatus = "ONSIGHT"
)

// ClimbStatuses lists every status in display order.
func ClimbStatuses() []ClimbStatus {
	return []ClimbStatus{
		ClimbStatusAttempted,
		ClimbStatusCompleted,
		ClimbStatusProject,
		ClimbStatusFlash,
		ClimbStatusOnsight,
	}
}

// ParseClimbStatus accepts the wire tag in any letter case.
func ParseClimbStatus(s string) (ClimbStatus, error) {
	for _, status := range ClimbStatuses() {
		if strings.EqualFold(string(status), strings.TrimSpace(s)) {
			return status, nil
		}
	}
	return "", fmt.Errorf("unknown climb status %q", s)
}

func (c ClimbStatus) Valid() bool {
	switch c {
	case ClimbStatusAttempted, ClimbStatusCompleted, ClimbStatusProject, ClimbStatusFlash, ClimbStatusOnsight:
		return true
	}
	return false
}

// IsSend reports whether the backend counts the status as a send.
func (c ClimbStatus) IsSend() bool {
	switch c {
	case ClimbStatusCompleted, ClimbStatusFlash, ClimbStatusOnsight:
		return true
	case ClimbStatusAttempted, ClimbStatusProject:
		return false
	}
	return false
}

func (c ClimbStatus) DisplayName() string {
	switch c {
	case ClimbStatusAttempted:
		return "Attempted"
	case ClimbStatusCompleted:
		return "Completed"
	case ClimbStatusProject:
		return "Project"
	case ClimbStatusFlash:
		return "Flash"
	case ClimbStatusOnsight:
		return "Onsight"
	}
	return string(c)
}

func (c ClimbStatus) Color() Color {
	switch c {
	case ClimbStatusAttempted:
		return ColorOrange
	case ClimbStatusCompleted:
		return ColorGreen
	case ClimbStatusProject:
		return ColorBlue
	case ClimbStatusFlash:
		return ColorYellow
	case ClimbStatusOnsight:
		return ColorPurple
	}
	return ColorNone
}

func (c ClimbStatus) MarshalJSON() ([]byte, error) {
	return encodeEnum(c, "climb status", ClimbStatus.Valid)
}

func (c *ClimbStatus) UnmarshalJSON(data []byte) error {
	v, err := decodeEnum(data, "climb status", ClimbStatus.Valid)
	if err != nil {
		return err
	}
	*c = v
	return nil
}

type AnalysisStatus string

const (
	AnalysisStatusPending    AnalysisStatus = "PENDING"
	AnalysisStatusProcessing AnalysisStatus = "PROCESSING"
	AnalysisStatusCompleted  AnalysisStatus = "COMPLETED"
	AnalysisStatusFailed     AnalysisStatus = "FAILED"
)

func (a AnalysisStatus) Valid() bool {
	switch a {
	case AnalysisStatusPending, AnalysisStatusProcessing, AnalysisStatusCompleted, AnalysisStatusFailed:
		return true
	}
	return false
}

// Terminal reports whether polling for the analysis can stop.
func (a AnalysisStatus) Terminal() bool {
	switch a {
	case AnalysisStatusCompleted, AnalysisStatusFailed:
		return true
	case AnalysisStatusPending, AnalysisStatusProcessing:
		return false
	}
	return false
}

func (a AnalysisStatus) MarshalJSON() ([]byte, error) {
	return encodeEnum(a, "analysis status", AnalysisStatus.Valid)
}

func (a *AnalysisStatus) UnmarshalJSON(data []byte) error {
	v, err := decodeEnum(data, "analysis status", AnalysisStatus.Valid)
	if err != nil {
		return err
	}
	*a = v
	return nil
}

type ClimbingStyle string

const (
	ClimbingStyleTechnical ClimbingStyle = "TECHNICAL"
	ClimbingStylePower     ClimbingStyle = "POWER"
	ClimbingStyleEndurance ClimbingStyle = "ENDURANCE"
	ClimbingStyleDynamic   ClimbingStyle = "DYNAMIC"
)

func (c ClimbingStyle) Valid() bool {
	switch c {
	case ClimbingStyleTechnical, ClimbingStylePower, ClimbingStyleEndurance, ClimbingStyleDynamic:
		return true
	}
	return false
}

func (c ClimbingStyle) DisplayName() string {
	switch c {
	case ClimbingStyleTechnical:
		return "Technical"
	case ClimbingStylePower:
		return "Power"
	case ClimbingStyleEndurance:
		return "Endurance"
	case ClimbingStyleDynamic:
		return "Dynamic"
	}
	return string(c)
}

func (c ClimbingStyle) MarshalJSON() ([]byte, error) {
	return encodeEnum(c, "climbing style", ClimbingStyle.Valid)
}

func (c *ClimbingStyle) UnmarshalJSON(data []byte) error {
	v, err := decodeEnum(data, "climbing style", ClimbingStyle.Valid)
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// Color is a display hint; the renderer maps it to a concrete palette.
type Color string

const (
	ColorNone   Color = ""
	ColorGreen  Color = "green"
	ColorBlue   Color = "blue"
	ColorOrange Color = "orange"
	ColorRed    Color = "red"
	ColorPurple Color = "purple"
	ColorYellow Color = "yellow"
)
