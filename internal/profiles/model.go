package profiles

import "time"

// Plan is the subscription tier.
type Plan string

const (
	PlanFree Plan = "free"
	PlanPro  Plan = "pro"
)

// EmailAccount is a connected inbox. It has no lifecycle of its own and
// lives inside the profile document.
type EmailAccount struct {
	Provider    string     `json:"provider"`
	Email       string     `json:"email"`
	Connected   bool       `json:"connected"`
	LastSyncAt  *time.Time `json:"lastSyncAt,omitempty"`
	AccessToken string     `json:"accessToken,omitempty"`
}

// Preferences holds the candidate's search preferences.
type Preferences struct {
	Roles      []string `json:"roles"`
	Locations  []string `json:"locations"`
	MinSalary  int      `json:"minSalary"`
	RemoteOnly bool     `json:"remoteOnly"`
	Language   string   `json:"language"`
}

// Profile is the candidate profile, keyed by the auth subject.
type Profile struct {
	ID                string
	FullName          string
	Email             string
	Phone             string
	ResumeText        string
	ResumeFileName    string
	Preferences       Preferences
	ConnectedAccounts []EmailAccount
	Plan              Plan
	PlanExpiresAt     *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
