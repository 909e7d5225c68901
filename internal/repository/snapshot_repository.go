package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/maroof-insights/storefront-dashboard/internal/database"
	"github.com/maroof-insights/storefront-dashboard/internal/dataset"
	"github.com/maroof-insights/storefront-dashboard/internal/models"
)

// ErrNoSnapshot is returned when no snapshot has been saved yet
var ErrNoSnapshot = errors.New("no dataset snapshot")

// SnapshotRepository persists copies of the source table so a restart does
// not need to download it again
type SnapshotRepository struct {
	db *sql.DB
}

// NewSnapshotRepository creates a new snapshot repository
func NewSnapshotRepository(db *sql.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// Save stores the table as the newest snapshot and drops older ones
func (r *SnapshotRepository) Save(ctx context.Context, t *dataset.Table) (*models.Snapshot, error) {
	snap := &models.Snapshot{
		ID:          uuid.NewString(),
		Source:      t.Source(),
		RecordCount: t.Len(),
	}

	err := database.Transaction(r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO snapshots (id, source, record_count) VALUES (?, ?, ?)",
			snap.ID, snap.Source, snap.RecordCount); err != nil {
			return fmt.Errorf("failed to insert snapshot: %w", err)
		}

		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO stores (snapshot_id, position, business_type_ar, other_type_name,
				name_ar, description, rating, total_reviews)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`)
		if err != nil {
			return fmt.Errorf("failed to prepare store insert: %w", err)
		}
		defer stmt.Close()

		for i := 0; i < t.Len(); i++ {
			rec := t.At(i)
			if _, err := stmt.ExecContext(ctx, snap.ID, i,
				rec.BusinessType, rec.OtherType, rec.Name, rec.Description,
				rec.Rating, rec.TotalReviews); err != nil {
				return fmt.Errorf("failed to insert store %d: %w", i, err)
			}
		}

		// Only the newest snapshot is kept
		if _, err := tx.ExecContext(ctx, "DELETE FROM stores WHERE snapshot_id <> ?", snap.ID); err != nil {
			return fmt.Errorf("failed to prune stores: %w", err)
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM snapshots WHERE id <> ?", snap.ID); err != nil {
			return fmt.Errorf("failed to prune snapshots: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := r.db.QueryRowContext(ctx, "SELECT created_at FROM snapshots WHERE id = ?", snap.ID).Scan(&snap.CreatedAt); err != nil {
		return nil, fmt.Errorf("failed to read snapshot timestamp: %w", err)
	}
	return snap, nil
}

// Latest returns the newest snapshot header
func (r *SnapshotRepository) Latest(ctx context.Context) (*models.Snapshot, error) {
	snap := &models.Snapshot{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, source, record_count, created_at
		FROM snapshots
		ORDER BY created_at DESC, rowid DESC
		LIMIT 1
	`).Scan(&snap.ID, &snap.Source, &snap.RecordCount, &snap.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoSnapshot
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query latest snapshot: %w", err)
	}
	return snap, nil
}

// LoadTable rebuilds the table of a snapshot in its original row order
func (r *SnapshotRepository) LoadTable(ctx context.Context, snap *models.Snapshot) (*dataset.Table, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT business_type_ar, other_type_name, name_ar, description, rating, total_reviews
		FROM stores
		WHERE snapshot_id = ?
		ORDER BY position
	`, snap.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to query stores: %w", err)
	}
	defer rows.Close()

	records := make([]models.StoreRecord, 0, snap.RecordCount)
	for rows.Next() {
		var (
			rec          models.StoreRecord
			businessType sql.NullString
			otherType    sql.NullString
			description  sql.NullString
			rating       sql.NullFloat64
			totalReviews sql.NullInt64
		)
		if err := rows.Scan(&businessType, &otherType, &rec.Name, &description, &rating, &totalReviews); err != nil {
			return nil, fmt.Errorf("failed to scan store: %w", err)
		}

		if businessType.Valid {
			rec.BusinessType = &businessType.String
		}
		if otherType.Valid {
			rec.OtherType = &otherType.String
		}
		if description.Valid {
			rec.Description = &description.String
		}
		if rating.Valid {
			rec.Rating = &rating.Float64
		}
		if totalReviews.Valid {
			rec.TotalReviews = &totalReviews.Int64
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate stores: %w", err)
	}

	return dataset.NewTable(snap.Source, records), nil
}

// LoadLatest returns the table of the newest snapshot
func (r *SnapshotRepository) LoadLatest(ctx context.Context) (*dataset.Table, *models.Snapshot, error) {
	snap, err := r.Latest(ctx)
	if err != nil {
		return nil, nil, err
	}
	t, err := r.LoadTable(ctx, snap)
	if err != nil {
		return nil, nil, err
	}
	return t, snap, nil
}
