package contract

import "time"

// RouteAnalysisResponse describes holds and beta detected on a wall photo.
// Coordinates are normalized to [0,1] by the server and are not re-checked here.
type RouteAnalysisResponse struct {
	RouteID        string         `json:"routeId"`
	AnalysisStatus AnalysisStatus `json:"analysisStatus"`
	ImageURL       string         `json:"imageURL"`
	PredictedGrade *Grade         `json:"predictedGrade,omitempty"`
	Holds          []Hold         `json:"holds"`
	BetaOptions    []BetaOption   `json:"betaOptions"`
}

type Hold struct {
	ID         string  `json:"id"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
	Type       string  `json:"type"`
	Confidence float64 `json:"confidence"`
}

type BetaOption struct {
	ID          string      `json:"id"`
	Number      int         `json:"number"`
	Difficulty  string      `json:"difficulty"`
	Description string      `json:"description"`
	RoutePath   []PathPoint `json:"routePath"`
}

type PathPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// ClimbAnalysisResponse is the pose and technique breakdown of a recorded climb.
type ClimbAnalysisResponse struct {
	ClimbID         string           `json:"climbId"`
	AnalysisStatus  AnalysisStatus   `json:"analysisStatus"`
	VideoURL        string           `json:"videoURL"`
	Duration        int              `json:"duration"`
	Sections        []ClimbSection   `json:"sections"`
	TechniqueScores []TechniqueScore `json:"techniqueScores"`
	Corrections     []Correction     `json:"corrections"`
	ComparisonData  *ComparisonData  `json:"comparisonData,omitempty"`
}

type ClimbSection struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	StartTime float64     `json:"startTime"`
	EndTime   float64     `json:"endTime"`
	PoseData  []PoseFrame `json:"poseData,omitempty"`
}

type PoseFrame struct {
	Timestamp float64 `json:"timestamp"`
	Joints    []Joint `json:"joints"`
}

type Joint struct {
	Name       string  `json:"name"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Confidence float64 `json:"confidence"`
}

// TechniqueScore is keyed by category; Score is 0..100.
type TechniqueScore struct {
	Category string `json:"category"`
	Score    int    `json:"score"`
}

type Correction struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Severity    string   `json:"severity"`
	Timestamp   *float64 `json:"timestamp,omitempty"`
}

type ComparisonData struct {
	YourMoves        int           `json:"yourMoves"`
	OptimalMoves     int           `json:"optimalMoves"`
	EfficiencyScore  float64       `json:"efficiencyScore"`
	PreviousAttempts []AttemptData `json:"previousAttempts"`
}

type AttemptData struct {
	ID            string    `json:"id"`
	AttemptNumber int       `json:"attemptNumber"`
	Score         int       `json:"score"`
	Date          time.Time `json:"date"`
}
