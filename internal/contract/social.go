package contract

import "time"

// FeedResponse backs the home feed of recent posts.
type FeedResponse struct {
	Posts []FeedPost `json:"posts"`
}

type FeedPost struct {
	ID           string    `json:"id"`
	User         FeedUser  `json:"user"`
	Climb        FeedClimb `json:"climb"`
	Caption      *string   `json:"caption,omitempty"`
	VideoURL     *string   `json:"videoURL,omitempty"`
	ThumbnailURL *string   `json:"thumbnailURL,omitempty"`
	Likes        int       `json:"likes"`
	Comments     int       `json:"comments"`
	IsLiked      bool      `json:"isLiked"`
	CreatedAt    time.Time `json:"createdAt"`
}

type FeedUser struct {
	ID        string  `json:"id"`
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	PhotoURL  *string `json:"photoURL,omitempty"`
}

type FeedClimb struct {
	RouteName string      `json:"routeName"`
	Grade     Grade       `json:"grade"`
	Status    ClimbStatus `json:"status"`
	GymName   *string     `json:"gymName,omitempty"`
}

// ProfileResponse backs the profile screen.
type ProfileResponse struct {
	User             ProfileUser       `json:"user"`
	Stats            ProfileStats      `json:"stats"`
	SendPyramid      []SendPyramidStep `json:"sendPyramid"`
	StylePreferences []StylePreference `json:"stylePreferences"`
	RecentActivity   []Activity        `json:"recentActivity"`
}

type ProfileUser struct {
	ID          string    `json:"id"`
	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
	Email       string    `json:"email"`
	PhotoURL    *string   `json:"photoURL,omitempty"`
	MemberSince time.Time `json:"memberSince"`
	MaxGrade    Grade     `json:"maxGrade"`
}

type ProfileStats struct {
	TotalClimbs   int     `json:"totalClimbs"`
	SuccessRate   float64 `json:"successRate"`
	CurrentGrade  Grade   `json:"currentGrade"`
	TotalSessions int     `json:"totalSessions"`
	Followers     int     `json:"followers"`
	Following     int     `json:"following"`
}

// SendPyramidStep is keyed by its grade.
type SendPyramidStep struct {
	Grade Grade `json:"grade"`
	Count int   `json:"count"`
}

// StylePreference is keyed by its style.
type StylePreference struct {
	Style      ClimbingStyle `json:"style"`
	Percentage int           `json:"percentage"`
}

type Activity struct {
	ID        string      `json:"id"`
	RouteName string      `json:"routeName"`
	Grade     Grade       `json:"grade"`
	Status    ClimbStatus `json:"status"`
	Date      time.Time   `json:"date"`
	GymName   *string     `json:"gymName,omitempty"`
}

// ProgressResponse backs the progress dashboard.
type ProgressResponse struct {
	ProgressData        []ProgressEntry      `json:"progressData"`
	Sessions            []ProgressSession    `json:"sessions"`
	Weaknesses          []Weakness           `json:"weaknesses"`
	TrainingSuggestions []TrainingSuggestion `json:"trainingSuggestions"`
	Injuries            []Injury             `json:"injuries"`
}

type ProgressEntry struct {
	ID    string    `json:"id"`
	Date  time.Time `json:"date"`
	Grade Grade     `json:"grade"`
	Count int       `json:"count"`
}

// ProgressSession is a past session; Duration is in minutes.
type ProgressSession struct {
	ID         string    `json:"id"`
	Date       time.Time `json:"date"`
	Duration   int       `json:"duration"`
	ClimbCount int       `json:"climbCount"`
	MaxGrade   Grade     `json:"maxGrade"`
	GymName    *string   `json:"gymName,omitempty"`
}

// Weakness is keyed by its type, e.g. "Overhangs"; StrengthScore is 0..1.
type Weakness struct {
	Type          string  `json:"type"`
	StrengthScore float64 `json:"strengthScore"`
}

type TrainingSuggestion struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
}

type Injury struct {
	ID           string    `json:"id"`
	BodyPart     string    `json:"bodyPart"`
	Status       string    `json:"status"`
	ReportedDate time.Time `json:"reportedDate"`
	Notes        *string   `json:"notes,omitempty"`
}
