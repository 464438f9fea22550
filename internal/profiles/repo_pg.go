package profiles

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

const profileColumns = `id, full_name, email, phone, resume_text, resume_file_name, preferences, connected_accounts, plan, plan_expires_at, created_at, updated_at`

// Get fetches the profile for a user.
func (r *PGRepo) Get(ctx context.Context, userID string) (Profile, error) {
	const query = `
SELECT ` + profileColumns + `
FROM profiles
WHERE id = $1`

	profile, err := scanProfile(r.DB.QueryRowContext(ctx, query, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Profile{}, ErrNotFound
		}
		return Profile{}, err
	}
	return profile, nil
}

// Upsert inserts the profile on first save and updates it thereafter.
func (r *PGRepo) Upsert(ctx context.Context, profile Profile) (Profile, error) {
	const query = `
INSERT INTO profiles (` + profileColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
ON CONFLICT (id) DO UPDATE SET
    full_name          = EXCLUDED.full_name,
    email              = EXCLUDED.email,
    phone              = EXCLUDED.phone,
    resume_text        = EXCLUDED.resume_text,
    resume_file_name   = EXCLUDED.resume_file_name,
    preferences        = EXCLUDED.preferences,
    connected_accounts = EXCLUDED.connected_accounts,
    plan               = EXCLUDED.plan,
    plan_expires_at    = EXCLUDED.plan_expires_at,
    updated_at         = EXCLUDED.updated_at
RETURNING ` + profileColumns

	now := time.Now().UTC()
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = now
	}
	profile.UpdatedAt = now
	if profile.Plan == "" {
		profile.Plan = PlanFree
	}

	prefs, err := json.Marshal(profile.Preferences)
	if err != nil {
		return Profile{}, fmt.Errorf("marshal preferences: %w", err)
	}
	accounts := profile.ConnectedAccounts
	if accounts == nil {
		accounts = []EmailAccount{}
	}
	accountsRaw, err := json.Marshal(accounts)
	if err != nil {
		return Profile{}, fmt.Errorf("marshal connected accounts: %w", err)
	}

	var expires sql.NullTime
	if profile.PlanExpiresAt != nil {
		expires = sql.NullTime{Time: *profile.PlanExpiresAt, Valid: true}
	}

	stored, err := scanProfile(r.DB.QueryRowContext(
		ctx,
		query,
		profile.ID,
		profile.FullName,
		profile.Email,
		profile.Phone,
		profile.ResumeText,
		profile.ResumeFileName,
		prefs,
		accountsRaw,
		string(profile.Plan),
		expires,
		profile.CreatedAt,
		profile.UpdatedAt,
	))
	if err != nil {
		return Profile{}, err
	}
	return stored, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProfile(row rowScanner) (Profile, error) {
	var profile Profile
	var plan string
	var prefsRaw, accountsRaw []byte
	var expires sql.NullTime
	if err := row.Scan(
		&profile.ID,
		&profile.FullName,
		&profile.Email,
		&profile.Phone,
		&profile.ResumeText,
		&profile.ResumeFileName,
		&prefsRaw,
		&accountsRaw,
		&plan,
		&expires,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	); err != nil {
		return Profile{}, err
	}
	profile.Plan = Plan(plan)
	if expires.Valid {
		profile.PlanExpiresAt = &expires.Time
	}
	if len(prefsRaw) > 0 {
		if err := json.Unmarshal(prefsRaw, &profile.Preferences); err != nil {
			return Profile{}, fmt.Errorf("unmarshal preferences: %w", err)
		}
	}
	if len(accountsRaw) > 0 {
		if err := json.Unmarshal(accountsRaw, &profile.ConnectedAccounts); err != nil {
			return Profile{}, fmt.Errorf("unmarshal connected accounts: %w", err)
		}
	}
	return profile, nil
}
