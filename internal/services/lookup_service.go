package services

import (
	"context"
	"fmt"
	"log"

	"registru-backend/internal/metrics"
	"registru-backend/internal/models"
)

// ContainerTypeStore is the persistence surface the lookup service needs for
// container types.
type ContainerTypeStore interface {
	GetOrCreate(ctx context.Context, model, typeCode string) (*models.ContainerType, bool, error)
	List(ctx context.Context) ([]*models.ContainerType, error)
}

type FlagStore interface {
	GetOrCreate(ctx context.Context, name string) (*models.Flag, bool, error)
	List(ctx context.Context) ([]*models.Flag, error)
}

type ShipStore interface {
	GetOrCreate(ctx context.Context, name, shippingLine string, flagID *int) (*models.Ship, bool, error)
	List(ctx context.Context) ([]*models.Ship, error)
}

// EntryLookupStore is the slice of the entry repository the reconciliation
// sweep reads and writes.
type EntryLookupStore interface {
	ListUnlinked(ctx context.Context) ([]*models.ManifestEntry, error)
	SetContainerType(ctx context.Context, entryID, containerTypeID int) error
	SetShip(ctx context.Context, entryID, shipID int) error
	DistinctContainerModels(ctx context.Context) ([]models.ContainerModelAggregate, error)
	DistinctFlagNames(ctx context.Context) ([]string, error)
	DistinctShips(ctx context.Context) ([]models.ShipAggregate, error)
}

// SyncResult summarizes one reconciliation sweep.
type SyncResult struct {
	ContainerTypesCreated int `json:"container_types_created"`
	FlagsCreated          int `json:"flags_created"`
	ShipsCreated          int `json:"ships_created"`
	EntriesLinked         int `json:"entries_linked"`
}

type LookupService struct {
	ContainerTypes ContainerTypeStore
	Flags          FlagStore
	Ships          ShipStore
	Entries        EntryLookupStore
}

func NewLookupService(containerTypes ContainerTypeStore, flags FlagStore, ships ShipStore, entries EntryLookupStore) *LookupService {
	return &LookupService{
		ContainerTypes: containerTypes,
		Flags:          flags,
		Ships:          ships,
		Entries:        entries,
	}
}

// ReconcileEntry resolves an entry's container model, flag and ship against
// the lookup tables, creating missing rows and linking the entry. It is
// idempotent: an already-linked relation is left alone, so re-running it on
// the same entry changes nothing.
func (s *LookupService) ReconcileEntry(ctx context.Context, e *models.ManifestEntry) error {
	if e.ContainerModel != "" && e.ContainerTypeID == nil {
		ct, created, err := s.ContainerTypes.GetOrCreate(ctx, e.ContainerModel, e.ContainerTypeCode)
		if err != nil {
			return fmt.Errorf("failed to resolve container type %s: %w", e.ContainerModel, err)
		}
		if created {
			metrics.LookupRowsCreatedTotal.WithLabelValues("container_type").Inc()
		}
		if err := s.Entries.SetContainerType(ctx, e.ID, ct.ID); err != nil {
			return fmt.Errorf("failed to link entry %d to container type %d: %w", e.ID, ct.ID, err)
		}
		e.ContainerTypeID = &ct.ID
	}

	var flagID *int
	if e.FlagName != "" {
		flag, created, err := s.Flags.GetOrCreate(ctx, e.FlagName)
		if err != nil {
			return fmt.Errorf("failed to resolve flag %s: %w", e.FlagName, err)
		}
		if created {
			metrics.LookupRowsCreatedTotal.WithLabelValues("flag").Inc()
		}
		flagID = &flag.ID
	}

	if e.ShipName != "" && e.ShipID == nil {
		ship, created, err := s.Ships.GetOrCreate(ctx, e.ShipName, e.ShippingLine, flagID)
		if err != nil {
			return fmt.Errorf("failed to resolve ship %s: %w", e.ShipName, err)
		}
		if created {
			metrics.LookupRowsCreatedTotal.WithLabelValues("ship").Inc()
		}
		if err := s.Entries.SetShip(ctx, e.ID, ship.ID); err != nil {
			return fmt.Errorf("failed to link entry %d to ship %d: %w", e.ID, ship.ID, err)
		}
		e.ShipID = &ship.ID
	}

	return nil
}

// SyncAll sweeps the whole registry: every distinct container model, flag
// and ship seen in entries gets a lookup row, then every unlinked entry is
// reconciled. Safe to re-run; a second sweep over an already-consistent
// registry creates nothing and links nothing.
func (s *LookupService) SyncAll(ctx context.Context) (*SyncResult, error) {
	result := &SyncResult{}

	aggregates, err := s.Entries.DistinctContainerModels(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to collect container models: %w", err)
	}
	for _, a := range aggregates {
		_, created, err := s.ContainerTypes.GetOrCreate(ctx, a.Model, a.TypeCode)
		if err != nil {
			return nil, fmt.Errorf("failed to upsert container type %s: %w", a.Model, err)
		}
		if created {
			metrics.LookupRowsCreatedTotal.WithLabelValues("container_type").Inc()
			result.ContainerTypesCreated++
		}
	}

	flagNames, err := s.Entries.DistinctFlagNames(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to collect flag names: %w", err)
	}
	flagIDs := make(map[string]int, len(flagNames))
	for _, name := range flagNames {
		flag, created, err := s.Flags.GetOrCreate(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("failed to upsert flag %s: %w", name, err)
		}
		if created {
			metrics.LookupRowsCreatedTotal.WithLabelValues("flag").Inc()
			result.FlagsCreated++
		}
		flagIDs[name] = flag.ID
	}

	ships, err := s.Entries.DistinctShips(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to collect ships: %w", err)
	}
	for _, agg := range ships {
		var flagID *int
		if id, ok := flagIDs[agg.FlagName]; ok {
			flagID = &id
		}
		_, created, err := s.Ships.GetOrCreate(ctx, agg.Name, agg.ShippingLine, flagID)
		if err != nil {
			return nil, fmt.Errorf("failed to upsert ship %s: %w", agg.Name, err)
		}
		if created {
			metrics.LookupRowsCreatedTotal.WithLabelValues("ship").Inc()
			result.ShipsCreated++
		}
	}

	unlinked, err := s.Entries.ListUnlinked(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list unlinked entries: %w", err)
	}
	for _, entry := range unlinked {
		if err := s.ReconcileEntry(ctx, entry); err != nil {
			// One bad entry should not stop the sweep.
			log.Printf("[Lookup] sync: entry %d not reconciled: %v", entry.ID, err)
			continue
		}
		result.EntriesLinked++
	}

	log.Printf("[Lookup] sync complete: %d container types, %d flags, %d ships created, %d entries linked",
		result.ContainerTypesCreated, result.FlagsCreated, result.ShipsCreated, result.EntriesLinked)
	return result, nil
}

func (s *LookupService) ListContainerTypes(ctx context.Context) ([]*models.ContainerType, error) {
	return s.ContainerTypes.List(ctx)
}

func (s *LookupService) ListFlags(ctx context.Context) ([]*models.Flag, error) {
	return s.Flags.List(ctx)
}

func (s *LookupService) ListShips(ctx context.Context) ([]*models.Ship, error) {
	return s.Ships.List(ctx)
}
