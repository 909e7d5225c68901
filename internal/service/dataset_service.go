package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/maroof-insights/storefront-dashboard/internal/dataset"
	"github.com/maroof-insights/storefront-dashboard/internal/models"
	"github.com/maroof-insights/storefront-dashboard/internal/repository"
)

// TableFetcher produces a fresh copy of the source table
type TableFetcher interface {
	FetchTable(ctx context.Context) (*dataset.Table, error)
}

// SnapshotStore persists the loaded table between restarts
type SnapshotStore interface {
	Save(ctx context.Context, t *dataset.Table) (*models.Snapshot, error)
	LoadLatest(ctx context.Context) (*dataset.Table, *models.Snapshot, error)
}

// DatasetService holds the single memoized copy of the source table
type DatasetService struct {
	fetcher TableFetcher
	store   SnapshotStore

	mu       sync.Mutex
	table    *dataset.Table
	snapshot *models.Snapshot
}

// NewDatasetService creates a dataset service. store may be nil, in which
// case every process start downloads the table.
func NewDatasetService(fetcher TableFetcher, store SnapshotStore) *DatasetService {
	return &DatasetService{
		fetcher: fetcher,
		store:   store,
	}
}

// Load returns the memoized table. The first call reads the latest snapshot
// or, when there is none, fetches the source and saves a snapshot.
func (s *DatasetService) Load(ctx context.Context) (*dataset.Table, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.table != nil {
		return s.table, nil
	}

	if s.store != nil {
		t, snap, err := s.store.LoadLatest(ctx)
		switch {
		case err == nil:
			log.Printf("[DatasetService] loaded %d records from snapshot %s", t.Len(), snap.ID)
			s.table, s.snapshot = t, snap
			return t, nil
		case !errors.Is(err, repository.ErrNoSnapshot):
			log.Printf("[DatasetService] snapshot unavailable, fetching source: %v", err)
		}
	}

	if err := s.fetchLocked(ctx); err != nil {
		return nil, err
	}
	return s.table, nil
}

// Refresh fetches the source again and replaces the memoized table
func (s *DatasetService) Refresh(ctx context.Context) (*models.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.fetchLocked(ctx); err != nil {
		return nil, err
	}
	return s.snapshot, nil
}

// Snapshot describes the table currently served, or nil before the first load
func (s *DatasetService) Snapshot() *models.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot
}

func (s *DatasetService) fetchLocked(ctx context.Context) error {
	start := time.Now()
	t, err := s.fetcher.FetchTable(ctx)
	if err != nil {
		return fmt.Errorf("failed to load dataset: %w", err)
	}
	log.Printf("[DatasetService] fetched %d records from %s in %v", t.Len(), t.Source(), time.Since(start))

	snap := &models.Snapshot{Source: t.Source(), RecordCount: t.Len()}
	if s.store != nil {
		saved, err := s.store.Save(ctx, t)
		if err != nil {
			// the fetched table is still served
			log.Printf("[DatasetService] failed to save snapshot: %v", err)
		} else {
			snap = saved
		}
	}

	s.table, s.snapshot = t, snap
	return nil
}
