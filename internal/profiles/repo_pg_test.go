package profiles

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

var profileColumnList = []string{
	"id", "full_name", "email", "phone", "resume_text", "resume_file_name",
	"preferences", "connected_accounts", "plan", "plan_expires_at",
	"created_at", "updated_at",
}

func TestPGRepoGetMissingProfile(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	mock.ExpectQuery("SELECT (.+) FROM profiles").
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows(profileColumnList))

	if _, err := repo.Get(context.Background(), "user-1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGRepoUpsertDefaultsPlan(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	now := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows(profileColumnList).AddRow(
		"user-1", "Ada Lovelace", "ada@example.com", "", "", "",
		[]byte(`{"roles":["backend"]}`), []byte(`[]`), "free", nil, now, now,
	)
	mock.ExpectQuery("INSERT INTO profiles").
		WithArgs(
			"user-1",
			"Ada Lovelace",
			"ada@example.com",
			"",
			"",
			"",
			sqlmock.AnyArg(), // preferences
			sqlmock.AnyArg(), // connected_accounts
			"free",
			sqlmock.AnyArg(), // plan_expires_at
			sqlmock.AnyArg(), // created_at
			sqlmock.AnyArg(), // updated_at
		).
		WillReturnRows(rows)

	stored, err := repo.Upsert(context.Background(), Profile{
		ID:       "user-1",
		FullName: "Ada Lovelace",
		Email:    "ada@example.com",
	})
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if stored.Plan != PlanFree {
		t.Fatalf("expected free plan, got %q", stored.Plan)
	}
	if len(stored.Preferences.Roles) != 1 {
		t.Fatalf("expected preferences round-trip, got %+v", stored.Preferences)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}
