package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompanyKnown(t *testing.T) {
	known := []string{"Acme", "Stripe", "Deutsche Bahn"}
	for _, company := range known {
		assert.True(t, companyKnown(company), company)
	}

	placeholders := []string{"", "  ", "Unknown", "Company Review", "Job Site", "See description", "unknown employer"}
	for _, company := range placeholders {
		assert.False(t, companyKnown(company), company)
	}
}

func TestPromptsRender(t *testing.T) {
	job := JobInput{Title: "Backend Engineer", Company: "Acme", Description: "Build APIs", Requirements: []string{"Go"}}
	profile := ProfileInput{FullName: "Ada", ResumeText: "10 years of Go", Language: "en"}

	prompt, err := renderPrompt(coverLetterTmpl, coverLetterData(job, profile))
	assert.NoError(t, err)
	assert.Contains(t, prompt, "Backend Engineer")
	assert.Contains(t, prompt, "Ada")

	prompt, err = renderPrompt(extractJobsTmpl, map[string]any{"Text": "hiring devs"})
	assert.NoError(t, err)
	assert.Contains(t, prompt, "hiring devs")

	prompt, err = renderPrompt(nearbyJobsTmpl, map[string]any{"Lat": 52.52, "Lng": 13.4, "Role": "backend"})
	assert.NoError(t, err)
	assert.Contains(t, prompt, "backend")
}
