package jobs

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// jobAttrs is the embedded JSON document holding the non-relational
// attributes of a job row.
type jobAttrs struct {
	Location     string   `json:"location,omitempty"`
	SalaryRange  string   `json:"salaryRange,omitempty"`
	Requirements []string `json:"requirements,omitempty"`
	Notes        string   `json:"notes,omitempty"`
	LogoURL      string   `json:"logoUrl,omitempty"`
	ApplyURL     string   `json:"applyUrl,omitempty"`
}

const jobColumns = `id, user_id, title, company, description, source, status, match_score, cover_letter, resume_text, attrs, detected_at, created_at, updated_at`

// ListByUser returns all jobs for a user, newest detection first.
func (r *PGRepo) ListByUser(ctx context.Context, userID string) ([]Job, error) {
	const query = `
SELECT ` + jobColumns + `
FROM jobs
WHERE user_id = $1
ORDER BY detected_at DESC`

	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Job, 0)
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, job)
	}
	return out, rows.Err()
}

// GetByID fetches a job by id for a user.
func (r *PGRepo) GetByID(ctx context.Context, userID, id string) (Job, error) {
	const query = `
SELECT ` + jobColumns + `
FROM jobs
WHERE user_id = $1 AND id = $2`

	job, err := scanJob(r.DB.QueryRowContext(ctx, query, userID, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Job{}, ErrNotFound
		}
		return Job{}, err
	}
	return job, nil
}

// Upsert inserts the job or updates the existing row with the same id.
// The conflict branch only fires for the owning user; a clash with a
// row owned by someone else yields ErrNotOwned.
func (r *PGRepo) Upsert(ctx context.Context, job Job) (Job, error) {
	const query = `
INSERT INTO jobs (` + jobColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
ON CONFLICT (id) DO UPDATE SET
    title        = EXCLUDED.title,
    company      = EXCLUDED.company,
    description  = EXCLUDED.description,
    source       = EXCLUDED.source,
    status       = EXCLUDED.status,
    match_score  = EXCLUDED.match_score,
    cover_letter = EXCLUDED.cover_letter,
    resume_text  = EXCLUDED.resume_text,
    attrs        = EXCLUDED.attrs,
    detected_at  = EXCLUDED.detected_at,
    updated_at   = EXCLUDED.updated_at
WHERE jobs.user_id = EXCLUDED.user_id
RETURNING ` + jobColumns

	now := time.Now().UTC()
	if job.DetectedAt.IsZero() {
		job.DetectedAt = now
	}
	if job.CreatedAt.IsZero() {
		job.CreatedAt = now
	}
	job.UpdatedAt = now

	attrs, err := json.Marshal(jobAttrs{
		Location:     job.Location,
		SalaryRange:  job.SalaryRange,
		Requirements: job.Requirements,
		Notes:        job.Notes,
		LogoURL:      job.LogoURL,
		ApplyURL:     job.ApplyURL,
	})
	if err != nil {
		return Job{}, fmt.Errorf("marshal attrs: %w", err)
	}

	stored, err := scanJob(r.DB.QueryRowContext(
		ctx,
		query,
		job.ID,
		job.UserID,
		job.Title,
		job.Company,
		job.Description,
		string(job.Source),
		string(job.Status),
		job.MatchScore,
		job.CoverLetter,
		job.ResumeText,
		attrs,
		job.DetectedAt,
		job.CreatedAt,
		job.UpdatedAt,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Job{}, ErrNotOwned
		}
		return Job{}, err
	}
	return stored, nil
}

// Delete removes a job by id, scoped to the owner.
func (r *PGRepo) Delete(ctx context.Context, userID, id string) error {
	const query = `DELETE FROM jobs WHERE user_id = $1 AND id = $2`
	res, err := r.DB.ExecContext(ctx, query, userID, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanJob(row rowScanner) (Job, error) {
	var job Job
	var source, status string
	var attrsRaw []byte
	if err := row.Scan(
		&job.ID,
		&job.UserID,
		&job.Title,
		&job.Company,
		&job.Description,
		&source,
		&status,
		&job.MatchScore,
		&job.CoverLetter,
		&job.ResumeText,
		&attrsRaw,
		&job.DetectedAt,
		&job.CreatedAt,
		&job.UpdatedAt,
	); err != nil {
		return Job{}, err
	}
	job.Source = Source(source)
	job.Status = Status(status)

	if len(attrsRaw) > 0 {
		var attrs jobAttrs
		if err := json.Unmarshal(attrsRaw, &attrs); err != nil {
			return Job{}, fmt.Errorf("unmarshal attrs: %w", err)
		}
		job.Location = attrs.Location
		job.SalaryRange = attrs.SalaryRange
		job.Requirements = attrs.Requirements
		job.Notes = attrs.Notes
		job.LogoURL = attrs.LogoURL
		job.ApplyURL = attrs.ApplyURL
	}
	return job, nil
}
