package jobs

import "time"

// Source identifies where a posting was detected.
type Source string

const (
	SourceGmail    Source = "gmail"
	SourceJobBoard Source = "jobboard"
	SourceImported Source = "imported"
)

// Status tracks where a posting sits in the application lifecycle.
// Transitions are driven by the user (or the auto-apply flow); the
// gateway does not enforce transition legality.
type Status string

const (
	StatusDetected    Status = "detected"
	StatusReviewing   Status = "reviewing"
	StatusSaved       Status = "saved"
	StatusAutoApplied Status = "auto_applied"
	StatusApplied     Status = "applied"
	StatusInterview   Status = "interview"
	StatusRejected    Status = "rejected"
	StatusOffer       Status = "offer"
)

// Job represents a stored job posting owned by a user.
type Job struct {
	ID           string
	UserID       string
	Title        string
	Company      string
	Location     string
	SalaryRange  string
	Description  string
	Source       Source
	DetectedAt   time.Time
	Status       Status
	MatchScore   int
	Requirements []string
	CoverLetter  string
	ResumeText   string
	Notes        string
	LogoURL      string
	ApplyURL     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
