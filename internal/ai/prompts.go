package ai

import (
	_ "embed"
	"strings"
	"text/template"
)

var (
	//go:embed prompts/cover_letter.txt
	coverLetterRaw string
	//go:embed prompts/tailor_resume.txt
	tailorResumeRaw string
	//go:embed prompts/match_score.txt
	matchScoreRaw string
	//go:embed prompts/extract_jobs.txt
	extractJobsRaw string
	//go:embed prompts/extract_url.txt
	extractURLRaw string
	//go:embed prompts/nearby_jobs.txt
	nearbyJobsRaw string
)

// Parsed once at package init; reused on every call.
var (
	coverLetterTmpl  = template.Must(template.New("cover_letter").Parse(coverLetterRaw))
	tailorResumeTmpl = template.Must(template.New("tailor_resume").Parse(tailorResumeRaw))
	matchScoreTmpl   = template.Must(template.New("match_score").Parse(matchScoreRaw))
	extractJobsTmpl  = template.Must(template.New("extract_jobs").Parse(extractJobsRaw))
	extractURLTmpl   = template.Must(template.New("extract_url").Parse(extractURLRaw))
	nearbyJobsTmpl   = template.Must(template.New("nearby_jobs").Parse(nearbyJobsRaw))
)

// placeholderCompanies are generic substrings that mark a company field
// as a scraper artifact rather than a real name.
var placeholderCompanies = []string{"review", "unknown", "site", "description"}

// companyKnown reports whether the company field looks like a real
// company name rather than a placeholder.
func companyKnown(company string) bool {
	trimmed := strings.TrimSpace(company)
	if trimmed == "" {
		return false
	}
	lower := strings.ToLower(trimmed)
	for _, marker := range placeholderCompanies {
		if strings.Contains(lower, marker) {
			return false
		}
	}
	return true
}

func renderPrompt(tmpl *template.Template, data any) (string, error) {
	var buf strings.Builder
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
