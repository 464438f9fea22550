package ai

import (
	"context"
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
	"time"

	"jobpilot-backend/internal/shared/metrics"
	"jobpilot-backend/internal/shared/telemetry"
)

// DefaultMatchScore is substituted when the model response carries no
// usable score.
const DefaultMatchScore = 50

// GenerationUnavailable is returned as letter/resume content when the
// model cannot be reached. It is user-facing, never an error.
const GenerationUnavailable = "Content generation is unavailable right now. Please try again in a few minutes."

// JobInput carries the job fields interpolated into prompts.
type JobInput struct {
	Title        string   `json:"title"`
	Company      string   `json:"company"`
	Location     string   `json:"location"`
	Description  string   `json:"description"`
	Requirements []string `json:"requirements"`
}

// ProfileInput carries the candidate fields interpolated into prompts.
type ProfileInput struct {
	FullName   string   `json:"fullName"`
	ResumeText string   `json:"resumeText"`
	Language   string   `json:"language"`
	Roles      []string `json:"roles"`
}

// ExtractedJob is a posting pulled out of pasted email text or a URL.
type ExtractedJob struct {
	Title        string   `json:"title"`
	Company      string   `json:"company"`
	Location     string   `json:"location"`
	SalaryRange  string   `json:"salaryRange"`
	Description  string   `json:"description"`
	ApplyURL     string   `json:"applyUrl"`
	Requirements []string `json:"requirements"`
}

// NearbyJob is a loosely-structured posting derived from a geographic
// grounding query. Every field is optional and untrusted.
type NearbyJob struct {
	Title       string `json:"title,omitempty"`
	Company     string `json:"company,omitempty"`
	Location    string `json:"location,omitempty"`
	Description string `json:"description,omitempty"`
	ApplyURL    string `json:"applyUrl,omitempty"`
}

// Service runs the generation operations. Failures never propagate: each
// operation substitutes its safe default and logs.
type Service struct {
	Gen Generator
}

// NewService constructs a Service.
func NewService(gen Generator) *Service {
	return &Service{Gen: gen}
}

// Close releases the underlying generator.
func (s *Service) Close() {
	if s != nil && s.Gen != nil {
		_ = s.Gen.Close()
	}
}

// CoverLetter writes a cover letter for the job. On any failure the
// returned content is a user-facing notice, never an error.
func (s *Service) CoverLetter(ctx context.Context, job JobInput, profile ProfileInput) string {
	prompt, err := renderPrompt(coverLetterTmpl, coverLetterData(job, profile))
	if err != nil {
		s.logDefault("cover_letter", err)
		return GenerationUnavailable
	}
	text, err := s.generate(ctx, prompt, GenOptions{Temperature: 0.7, MaxOutputTokens: 1024})
	if err != nil {
		s.logDefault("cover_letter", err)
		return GenerationUnavailable
	}
	return strings.TrimSpace(text)
}

// TailorResume rewrites the resume for the job.
func (s *Service) TailorResume(ctx context.Context, job JobInput, resumeText string) string {
	data := coverLetterData(job, ProfileInput{ResumeText: resumeText})
	prompt, err := renderPrompt(tailorResumeTmpl, data)
	if err != nil {
		s.logDefault("tailor_resume", err)
		return GenerationUnavailable
	}
	text, err := s.generate(ctx, prompt, GenOptions{Temperature: 0.4, MaxOutputTokens: 2048})
	if err != nil {
		s.logDefault("tailor_resume", err)
		return GenerationUnavailable
	}
	return strings.TrimSpace(text)
}

// MatchScore rates the candidate against the job on [0,100]. Malformed
// output scores DefaultMatchScore; out-of-range output is clamped.
func (s *Service) MatchScore(ctx context.Context, job JobInput, profile ProfileInput) int {
	data := map[string]any{
		"Title":        job.Title,
		"Company":      job.Company,
		"Description":  job.Description,
		"Requirements": job.Requirements,
		"ResumeText":   profile.ResumeText,
		"Roles":        profile.Roles,
	}
	prompt, err := renderPrompt(matchScoreTmpl, data)
	if err != nil {
		s.logDefault("match_score", err)
		return DefaultMatchScore
	}
	text, err := s.generate(ctx, prompt, GenOptions{Temperature: 0, MaxOutputTokens: 16})
	if err != nil {
		s.logDefault("match_score", err)
		return DefaultMatchScore
	}
	return ParseScore(text)
}

// ExtractJobs pulls job postings out of pasted email text. Failure of any
// kind yields an empty list.
func (s *Service) ExtractJobs(ctx context.Context, text string) []ExtractedJob {
	prompt, err := renderPrompt(extractJobsTmpl, map[string]any{"Text": text})
	if err != nil {
		s.logDefault("extract_jobs", err)
		return []ExtractedJob{}
	}
	raw, err := s.generate(ctx, prompt, GenOptions{Temperature: 0.1, MaxOutputTokens: 4096, JSONResponse: true})
	if err != nil {
		s.logDefault("extract_jobs", err)
		return []ExtractedJob{}
	}

	result := ParseArray(raw)
	if !result.OK {
		s.logUnparsed("extract_jobs", result.Raw)
		return []ExtractedJob{}
	}
	var out []ExtractedJob
	if err := json.Unmarshal(result.Value, &out); err != nil {
		s.logUnparsed("extract_jobs", result.Raw)
		return []ExtractedJob{}
	}
	if out == nil {
		out = []ExtractedJob{}
	}
	return out
}

// ExtractJobFromURL describes the posting behind a pasted link. ok is
// false when nothing usable came back.
func (s *Service) ExtractJobFromURL(ctx context.Context, rawURL string) (ExtractedJob, bool) {
	prompt, err := renderPrompt(extractURLTmpl, map[string]any{"URL": rawURL})
	if err != nil {
		s.logDefault("extract_url", err)
		return ExtractedJob{}, false
	}
	raw, err := s.generate(ctx, prompt, GenOptions{Temperature: 0.1, MaxOutputTokens: 2048, JSONResponse: true})
	if err != nil {
		s.logDefault("extract_url", err)
		return ExtractedJob{}, false
	}

	result := ParseObject(raw)
	if !result.OK {
		s.logUnparsed("extract_url", result.Raw)
		return ExtractedJob{}, false
	}
	var out ExtractedJob
	if err := json.Unmarshal(result.Value, &out); err != nil {
		s.logUnparsed("extract_url", result.Raw)
		return ExtractedJob{}, false
	}
	if out.ApplyURL == "" {
		out.ApplyURL = rawURL
	}
	return out, true
}

// NearbyJobs lists openings near the coordinates. The upstream grounding
// response has no schema guarantee, so every field of every chunk is
// treated as optional; failure yields an empty list.
func (s *Service) NearbyJobs(ctx context.Context, lat, lng float64, role string) []NearbyJob {
	prompt, err := renderPrompt(nearbyJobsTmpl, map[string]any{"Lat": lat, "Lng": lng, "Role": role})
	if err != nil {
		s.logDefault("nearby_jobs", err)
		return []NearbyJob{}
	}
	raw, err := s.generate(ctx, prompt, GenOptions{Temperature: 0.3, MaxOutputTokens: 4096, JSONResponse: true})
	if err != nil {
		s.logDefault("nearby_jobs", err)
		return []NearbyJob{}
	}

	result := ParseArray(raw)
	if !result.OK {
		s.logUnparsed("nearby_jobs", result.Raw)
		return []NearbyJob{}
	}
	var out []NearbyJob
	if err := json.Unmarshal(result.Value, &out); err != nil {
		s.logUnparsed("nearby_jobs", result.Raw)
		return []NearbyJob{}
	}
	if out == nil {
		out = []NearbyJob{}
	}
	return out
}

func (s *Service) generate(ctx context.Context, prompt string, opts GenOptions) (string, error) {
	metrics.IncGenerationStarted()
	start := time.Now()
	text, err := s.Gen.Generate(ctx, prompt, opts)
	metrics.ObserveGenerationDurationMs(float64(time.Since(start).Microseconds()) / 1000.0)
	if err != nil {
		return "", err
	}
	metrics.IncGenerationCompleted()
	return text, nil
}

func (s *Service) logDefault(op string, err error) {
	metrics.IncGenerationDefaulted()
	telemetry.Warn("ai.default_substituted", map[string]any{
		"op":  op,
		"err": err.Error(),
	})
}

func (s *Service) logUnparsed(op, raw string) {
	metrics.IncGenerationDefaulted()
	if len(raw) > 500 {
		raw = raw[:500]
	}
	telemetry.Warn("ai.unparsable_response", map[string]any{
		"op":  op,
		"raw": raw,
	})
}

func coverLetterData(job JobInput, profile ProfileInput) map[string]any {
	return map[string]any{
		"Title":        job.Title,
		"Company":      job.Company,
		"CompanyKnown": companyKnown(job.Company),
		"Description":  job.Description,
		"Requirements": job.Requirements,
		"FullName":     profile.FullName,
		"ResumeText":   profile.ResumeText,
		"Language":     profile.Language,
	}
}

var scorePattern = regexp.MustCompile(`-?\d+`)

// ParseScore extracts an integer score from model output, clamping to
// [0,100]. Non-numeric output scores DefaultMatchScore.
func ParseScore(raw string) int {
	match := scorePattern.FindString(raw)
	if match == "" {
		return DefaultMatchScore
	}
	score, err := strconv.Atoi(match)
	if err != nil {
		return DefaultMatchScore
	}
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
