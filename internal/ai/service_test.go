package ai

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeGenerator struct {
	text    string
	err     error
	prompts []string
	opts    []GenOptions
}

func (g *fakeGenerator) Generate(ctx context.Context, prompt string, opts GenOptions) (string, error) {
	g.prompts = append(g.prompts, prompt)
	g.opts = append(g.opts, opts)
	if g.err != nil {
		return "", g.err
	}
	return g.text, nil
}

func (g *fakeGenerator) Close() error { return nil }

func TestCoverLetterTrimsOutput(t *testing.T) {
	gen := &fakeGenerator{text: "\n\nDear Hiring Manager,\nI am excited to apply.\n"}
	svc := NewService(gen)

	got := svc.CoverLetter(context.Background(), JobInput{Title: "Backend Engineer", Company: "Acme"}, ProfileInput{FullName: "Ada"})

	assert.Equal(t, "Dear Hiring Manager,\nI am excited to apply.", got)
	assert.Len(t, gen.opts, 1)
	assert.InDelta(t, 0.7, gen.opts[0].Temperature, 0.001)
	assert.Contains(t, gen.prompts[0], "Backend Engineer")
}

func TestCoverLetterSubstitutesNoticeOnFailure(t *testing.T) {
	svc := NewService(&fakeGenerator{err: errors.New("quota exceeded")})

	got := svc.CoverLetter(context.Background(), JobInput{}, ProfileInput{})

	assert.Equal(t, GenerationUnavailable, got)
}

func TestCoverLetterSubstitutesNoticeWhenDisabled(t *testing.T) {
	svc := NewService(DisabledGenerator{})

	got := svc.CoverLetter(context.Background(), JobInput{Title: "Dev"}, ProfileInput{})

	assert.Equal(t, GenerationUnavailable, got)
}

func TestTailorResumeSubstitutesNoticeOnFailure(t *testing.T) {
	svc := NewService(&fakeGenerator{err: errors.New("boom")})

	got := svc.TailorResume(context.Background(), JobInput{}, "my resume")

	assert.Equal(t, GenerationUnavailable, got)
}

func TestMatchScoreParsesModelOutput(t *testing.T) {
	cases := map[string]struct {
		raw  string
		want int
	}{
		"plain number":      {"87", 87},
		"with prose":        {"The score is 64 out of 100.", 64},
		"clamped high":      {"137", 100},
		"clamped negative":  {"-5", 0},
		"garbage":           {"excellent match!", DefaultMatchScore},
		"empty":             {"", DefaultMatchScore},
		"zero stays zero":   {"0", 0},
		"hundred stays put": {"100", 100},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			svc := NewService(&fakeGenerator{text: tc.raw})
			got := svc.MatchScore(context.Background(), JobInput{}, ProfileInput{})
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestMatchScoreDefaultsOnGeneratorFailure(t *testing.T) {
	svc := NewService(&fakeGenerator{err: errors.New("timeout")})

	got := svc.MatchScore(context.Background(), JobInput{}, ProfileInput{})

	assert.Equal(t, DefaultMatchScore, got)
}

func TestExtractJobsParsesFencedJSON(t *testing.T) {
	gen := &fakeGenerator{text: "```json\n[{\"title\":\"Dev\",\"company\":\"Acme\",\"requirements\":[\"Go\"]}]\n```"}
	svc := NewService(gen)

	got := svc.ExtractJobs(context.Background(), "We are hiring a Dev at Acme")

	assert.Len(t, got, 1)
	assert.Equal(t, "Dev", got[0].Title)
	assert.Equal(t, "Acme", got[0].Company)
	assert.True(t, gen.opts[0].JSONResponse)
}

func TestExtractJobsEmptyOnGarbage(t *testing.T) {
	svc := NewService(&fakeGenerator{text: "I could not find any jobs, sorry!"})

	got := svc.ExtractJobs(context.Background(), "random text")

	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestExtractJobsEmptyOnFailure(t *testing.T) {
	svc := NewService(&fakeGenerator{err: errors.New("unreachable")})

	got := svc.ExtractJobs(context.Background(), "text")

	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestExtractJobFromURLDefaultsApplyURL(t *testing.T) {
	svc := NewService(&fakeGenerator{text: `{"title":"SRE","company":"Beta"}`})

	job, ok := svc.ExtractJobFromURL(context.Background(), "https://jobs.example.com/sre")

	assert.True(t, ok)
	assert.Equal(t, "SRE", job.Title)
	assert.Equal(t, "https://jobs.example.com/sre", job.ApplyURL)
}

func TestExtractJobFromURLKeepsModelApplyURL(t *testing.T) {
	svc := NewService(&fakeGenerator{text: `{"title":"SRE","applyUrl":"https://careers.beta.com/1"}`})

	job, ok := svc.ExtractJobFromURL(context.Background(), "https://jobs.example.com/sre")

	assert.True(t, ok)
	assert.Equal(t, "https://careers.beta.com/1", job.ApplyURL)
}

func TestExtractJobFromURLNotFoundOnGarbage(t *testing.T) {
	svc := NewService(&fakeGenerator{text: "not json"})

	_, ok := svc.ExtractJobFromURL(context.Background(), "https://jobs.example.com/sre")

	assert.False(t, ok)
}

func TestNearbyJobsToleratesPartialChunks(t *testing.T) {
	svc := NewService(&fakeGenerator{text: `[{"title":"Dev"},{"company":"Acme","location":"Berlin"}]`})

	got := svc.NearbyJobs(context.Background(), 52.52, 13.40, "backend")

	assert.Len(t, got, 2)
	assert.Equal(t, "Dev", got[0].Title)
	assert.Equal(t, "Berlin", got[1].Location)
}

func TestNearbyJobsEmptyOnFailure(t *testing.T) {
	svc := NewService(&fakeGenerator{err: errors.New("grounding unavailable")})

	got := svc.NearbyJobs(context.Background(), 0, 0, "")

	assert.NotNil(t, got)
	assert.Empty(t, got)
}
