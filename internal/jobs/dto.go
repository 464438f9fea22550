package jobs

import "time"

// JobRequest is the inbound upsert document. Every field but ID is optional.
type JobRequest struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Company      string     `json:"company"`
	Location     string     `json:"location"`
	SalaryRange  string     `json:"salaryRange"`
	Description  string     `json:"description"`
	Source       string     `json:"source"`
	DetectedAt   *time.Time `json:"detectedAt"`
	Status       string     `json:"status"`
	MatchScore   int        `json:"matchScore"`
	Requirements []string   `json:"requirements"`
	CoverLetter  string     `json:"coverLetter"`
	ResumeText   string     `json:"resumeText"`
	Notes        string     `json:"notes"`
	LogoURL      string     `json:"logoUrl"`
	ApplyURL     string     `json:"applyUrl"`
}

// JobResponse is the outward-facing representation of a job. Optional
// fields are always present with empty values, never absent.
type JobResponse struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Company      string    `json:"company"`
	Location     string    `json:"location"`
	SalaryRange  string    `json:"salaryRange"`
	Description  string    `json:"description"`
	Source       string    `json:"source"`
	DetectedAt   time.Time `json:"detectedAt"`
	Status       string    `json:"status"`
	MatchScore   int       `json:"matchScore"`
	Requirements []string  `json:"requirements"`
	CoverLetter  string    `json:"coverLetter"`
	ResumeText   string    `json:"resumeText"`
	Notes        string    `json:"notes"`
	LogoURL      string    `json:"logoUrl"`
	ApplyURL     string    `json:"applyUrl"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// ToResponses converts stored jobs into their outward-facing documents.
func ToResponses(list []Job) []JobResponse {
	out := make([]JobResponse, 0, len(list))
	for _, job := range list {
		out = append(out, toResponse(job))
	}
	return out
}

func toModel(userID string, req JobRequest) Job {
	job := Job{
		ID:           req.ID,
		UserID:       userID,
		Title:        req.Title,
		Company:      req.Company,
		Location:     req.Location,
		SalaryRange:  req.SalaryRange,
		Description:  req.Description,
		Source:       Source(req.Source),
		Status:       Status(req.Status),
		MatchScore:   req.MatchScore,
		Requirements: req.Requirements,
		CoverLetter:  req.CoverLetter,
		ResumeText:   req.ResumeText,
		Notes:        req.Notes,
		LogoURL:      req.LogoURL,
		ApplyURL:     req.ApplyURL,
	}
	if req.DetectedAt != nil {
		job.DetectedAt = *req.DetectedAt
	}
	if job.Source == "" {
		job.Source = SourceImported
	}
	if job.Status == "" {
		job.Status = StatusDetected
	}
	return job
}

func toResponse(job Job) JobResponse {
	reqs := job.Requirements
	if reqs == nil {
		reqs = []string{}
	}
	return JobResponse{
		ID:           job.ID,
		Title:        job.Title,
		Company:      job.Company,
		Location:     job.Location,
		SalaryRange:  job.SalaryRange,
		Description:  job.Description,
		Source:       string(job.Source),
		DetectedAt:   job.DetectedAt,
		Status:       string(job.Status),
		MatchScore:   job.MatchScore,
		Requirements: reqs,
		CoverLetter:  job.CoverLetter,
		ResumeText:   job.ResumeText,
		Notes:        job.Notes,
		LogoURL:      job.LogoURL,
		ApplyURL:     job.ApplyURL,
		CreatedAt:    job.CreatedAt,
		UpdatedAt:    job.UpdatedAt,
	}
}
