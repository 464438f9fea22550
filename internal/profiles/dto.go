package profiles

import "time"

// ProfileRequest is the inbound upsert document. All fields are optional;
// the id always comes from the verified token, never the body.
type ProfileRequest struct {
	FullName          string         `json:"fullName"`
	Email             string         `json:"email"`
	Phone             string         `json:"phone"`
	ResumeText        string         `json:"resumeText"`
	ResumeFileName    string         `json:"resumeFileName"`
	Preferences       Preferences    `json:"preferences"`
	ConnectedAccounts []EmailAccount `json:"connectedAccounts"`
	Plan              string         `json:"plan"`
	PlanExpiresAt     *time.Time     `json:"planExpiresAt"`
}

// ProfileResponse is the outward-facing representation of a profile.
// Optional fields are always present with empty values.
type ProfileResponse struct {
	ID                string         `json:"id"`
	FullName          string         `json:"fullName"`
	Email             string         `json:"email"`
	Phone             string         `json:"phone"`
	ResumeText        string         `json:"resumeText"`
	ResumeFileName    string         `json:"resumeFileName"`
	Preferences       Preferences    `json:"preferences"`
	ConnectedAccounts []EmailAccount `json:"connectedAccounts"`
	Plan              string         `json:"plan"`
	PlanExpiresAt     *time.Time     `json:"planExpiresAt"`
	CreatedAt         time.Time      `json:"createdAt"`
	UpdatedAt         time.Time      `json:"updatedAt"`
}

func toModel(userID string, req ProfileRequest) Profile {
	profile := Profile{
		ID:                userID,
		FullName:          req.FullName,
		Email:             req.Email,
		Phone:             req.Phone,
		ResumeText:        req.ResumeText,
		ResumeFileName:    req.ResumeFileName,
		Preferences:       req.Preferences,
		ConnectedAccounts: req.ConnectedAccounts,
		Plan:              Plan(req.Plan),
		PlanExpiresAt:     req.PlanExpiresAt,
	}
	if profile.Plan == "" {
		profile.Plan = PlanFree
	}
	return profile
}

func toResponse(profile Profile) ProfileResponse {
	prefs := profile.Preferences
	if prefs.Roles == nil {
		prefs.Roles = []string{}
	}
	if prefs.Locations == nil {
		prefs.Locations = []string{}
	}
	accounts := profile.ConnectedAccounts
	if accounts == nil {
		accounts = []EmailAccount{}
	}
	return ProfileResponse{
		ID:                profile.ID,
		FullName:          profile.FullName,
		Email:             profile.Email,
		Phone:             profile.Phone,
		ResumeText:        profile.ResumeText,
		ResumeFileName:    profile.ResumeFileName,
		Preferences:       prefs,
		ConnectedAccounts: accounts,
		Plan:              string(profile.Plan),
		PlanExpiresAt:     profile.PlanExpiresAt,
		CreatedAt:         profile.CreatedAt,
		UpdatedAt:         profile.UpdatedAt,
	}
}
