package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/gluislopez/carwash-v2-sub000/internal/models"
)

// settingsKey is the fixed name of the singleton settings row.
const settingsKey = "location"

// GetSettings returns the singleton settings record. A zero-valued record is
// returned when settings were never written.
func (s *SQLiteStore) GetSettings(ctx context.Context) (*models.Settings, error) {
	settings := &models.Settings{}
	err := s.db.QueryRowContext(ctx,
		`SELECT daily_target, review_link, stripe_link FROM settings WHERE name = ?`,
		settingsKey,
	).Scan(&settings.DailyTarget, &settings.ReviewLink, &settings.PaymentLink)

	if errors.Is(err, sql.ErrNoRows) {
		return settings, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}
	return settings, nil
}

// UpsertSettings replaces the singleton settings record. Writes are rare and
// idempotent, so no locking beyond the row upsert is needed.
func (s *SQLiteStore) UpsertSettings(ctx context.Context, settings *models.Settings) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO settings (name, daily_target, review_link, stripe_link)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET
		   daily_target = excluded.daily_target,
		   review_link = excluded.review_link,
		   stripe_link = excluded.stripe_link`,
		settingsKey, settings.DailyTarget, settings.ReviewLink, settings.PaymentLink,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert settings: %w", err)
	}

	s.notify("settings")
	return nil
}
