package services

import (
	"context"
	"strings"
	"testing"

	"registru-backend/internal/models"
)

type stubContainerTypes struct {
	byModel map[string]*models.ContainerType
	nextID  int
}

func newStubContainerTypes() *stubContainerTypes {
	return &stubContainerTypes{byModel: make(map[string]*models.ContainerType), nextID: 1}
}

func (s *stubContainerTypes) GetOrCreate(ctx context.Context, model, typeCode string) (*models.ContainerType, bool, error) {
	if ct, ok := s.byModel[model]; ok {
		return ct, false, nil
	}
	ct := &models.ContainerType{ID: s.nextID, Model: model, TypeCode: typeCode}
	s.nextID++
	s.byModel[model] = ct
	return ct, true, nil
}

func (s *stubContainerTypes) List(ctx context.Context) ([]*models.ContainerType, error) {
	var out []*models.ContainerType
	for _, ct := range s.byModel {
		out = append(out, ct)
	}
	return out, nil
}

type stubFlags struct {
	byName map[string]*models.Flag
	nextID int
}

func newStubFlags() *stubFlags {
	return &stubFlags{byName: make(map[string]*models.Flag), nextID: 1}
}

func (s *stubFlags) GetOrCreate(ctx context.Context, name string) (*models.Flag, bool, error) {
	if f, ok := s.byName[name]; ok {
		return f, false, nil
	}
	f := &models.Flag{ID: s.nextID, Name: name}
	s.nextID++
	s.byName[name] = f
	return f, true, nil
}

func (s *stubFlags) List(ctx context.Context) ([]*models.Flag, error) {
	var out []*models.Flag
	for _, f := range s.byName {
		out = append(out, f)
	}
	return out, nil
}

type stubShips struct {
	byLower map[string]*models.Ship
	nextID  int
}

func newStubShips() *stubShips {
	return &stubShips{byLower: make(map[string]*models.Ship), nextID: 1}
}

func (s *stubShips) GetOrCreate(ctx context.Context, name, shippingLine string, flagID *int) (*models.Ship, bool, error) {
	key := strings.ToLower(name)
	if ship, ok := s.byLower[key]; ok {
		return ship, false, nil
	}
	ship := &models.Ship{ID: s.nextID, Name: name, ShippingLine: shippingLine, FlagID: flagID}
	s.nextID++
	s.byLower[key] = ship
	return ship, true, nil
}

func (s *stubShips) List(ctx context.Context) ([]*models.Ship, error) {
	var out []*models.Ship
	for _, ship := range s.byLower {
		out = append(out, ship)
	}
	return out, nil
}

type stubEntries struct {
	entries    []*models.ManifestEntry
	nextID     int
	perYearSeq map[int]int
}

func newStubEntries() *stubEntries {
	return &stubEntries{nextID: 1, perYearSeq: make(map[int]int)}
}

func (s *stubEntries) Create(ctx context.Context, e *models.ManifestEntry) error {
	s.perYearSeq[e.YearID]++
	e.ID = s.nextID
	s.nextID++
	e.EntryNumber = s.perYearSeq[e.YearID]
	s.entries = append(s.entries, e)
	return nil
}

func (s *stubEntries) ListByYear(ctx context.Context, yearID int) ([]*models.ManifestEntry, error) {
	var out []*models.ManifestEntry
	for _, e := range s.entries {
		if e.YearID == yearID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *stubEntries) ListUnlinked(ctx context.Context) ([]*models.ManifestEntry, error) {
	var out []*models.ManifestEntry
	for _, e := range s.entries {
		if (e.ContainerModel != "" && e.ContainerTypeID == nil) || (e.ShipName != "" && e.ShipID == nil) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *stubEntries) SetContainerType(ctx context.Context, entryID, containerTypeID int) error {
	for _, e := range s.entries {
		if e.ID == entryID {
			id := containerTypeID
			e.ContainerTypeID = &id
		}
	}
	return nil
}

func (s *stubEntries) SetShip(ctx context.Context, entryID, shipID int) error {
	for _, e := range s.entries {
		if e.ID == entryID {
			id := shipID
			e.ShipID = &id
		}
	}
	return nil
}

func (s *stubEntries) DistinctContainerModels(ctx context.Context) ([]models.ContainerModelAggregate, error) {
	seen := make(map[string]bool)
	var out []models.ContainerModelAggregate
	for _, e := range s.entries {
		if e.ContainerModel == "" || seen[e.ContainerModel] {
			continue
		}
		seen[e.ContainerModel] = true
		out = append(out, models.ContainerModelAggregate{Model: e.ContainerModel, TypeCode: e.ContainerTypeCode})
	}
	return out, nil
}

func (s *stubEntries) DistinctFlagNames(ctx context.Context) ([]string, error) {
	seen := make(map[string]bool)
	var out []string
	for _, e := range s.entries {
		if e.FlagName == "" || seen[e.FlagName] {
			continue
		}
		seen[e.FlagName] = true
		out = append(out, e.FlagName)
	}
	return out, nil
}

func (s *stubEntries) DistinctShips(ctx context.Context) ([]models.ShipAggregate, error) {
	seen := make(map[string]bool)
	var out []models.ShipAggregate
	for _, e := range s.entries {
		key := strings.ToLower(e.ShipName)
		if e.ShipName == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, models.ShipAggregate{Name: e.ShipName, ShippingLine: e.ShippingLine, FlagName: e.FlagName})
	}
	return out, nil
}

func newTestLookupService(entries *stubEntries) (*LookupService, *stubContainerTypes, *stubFlags, *stubShips) {
	containerTypes := newStubContainerTypes()
	flags := newStubFlags()
	ships := newStubShips()
	return NewLookupService(containerTypes, flags, ships, entries), containerTypes, flags, ships
}

func TestReconcileEntryCreatesAndLinks(t *testing.T) {
	entries := newStubEntries()
	svc, containerTypes, flags, ships := newTestLookupService(entries)
	ctx := context.Background()

	entry := &models.ManifestEntry{
		YearID:            1,
		ContainerCode:     "MSKU1234567",
		ContainerTypeCode: "20GP",
		ShipName:          "MSC ANNA",
		ShippingLine:      "MSC",
		FlagName:          "Panama",
	}
	entry.ContainerModel = models.DeriveContainerModel(entry.ContainerCode, entry.ContainerTypeCode)
	entries.Create(ctx, entry)

	if err := svc.ReconcileEntry(ctx, entry); err != nil {
		t.Fatalf("ReconcileEntry returned error: %v", err)
	}

	ct, ok := containerTypes.byModel["MSKU20GP"]
	if !ok {
		t.Fatal("container type MSKU20GP not created")
	}
	if entry.ContainerTypeID == nil || *entry.ContainerTypeID != ct.ID {
		t.Errorf("entry not linked to container type: %v", entry.ContainerTypeID)
	}
	if _, ok := flags.byName["Panama"]; !ok {
		t.Error("flag Panama not created")
	}
	ship, ok := ships.byLower["msc anna"]
	if !ok {
		t.Fatal("ship MSC ANNA not created")
	}
	if ship.FlagID == nil {
		t.Error("ship created without flag link")
	}
	if entry.ShipID == nil || *entry.ShipID != ship.ID {
		t.Errorf("entry not linked to ship: %v", entry.ShipID)
	}
}

func TestReconcileEntryShortContainerCode(t *testing.T) {
	entries := newStubEntries()
	svc, containerTypes, _, _ := newTestLookupService(entries)
	ctx := context.Background()

	entry := &models.ManifestEntry{
		YearID:            1,
		ContainerCode:     "AB",
		ContainerTypeCode: "40HC",
	}
	entry.ContainerModel = models.DeriveContainerModel(entry.ContainerCode, entry.ContainerTypeCode)
	entries.Create(ctx, entry)

	if err := svc.ReconcileEntry(ctx, entry); err != nil {
		t.Fatalf("ReconcileEntry returned error: %v", err)
	}
	if _, ok := containerTypes.byModel["AB40HC"]; !ok {
		t.Error("short container code did not derive model AB40HC")
	}
}

func TestReconcileEntryIdempotent(t *testing.T) {
	entries := newStubEntries()
	svc, containerTypes, _, ships := newTestLookupService(entries)
	ctx := context.Background()

	entry := &models.ManifestEntry{
		YearID:            1,
		ContainerCode:     "MSKU1234567",
		ContainerTypeCode: "20GP",
		ShipName:          "MSC ANNA",
		FlagName:          "Panama",
	}
	entry.ContainerModel = models.DeriveContainerModel(entry.ContainerCode, entry.ContainerTypeCode)
	entries.Create(ctx, entry)

	for i := 0; i < 3; i++ {
		if err := svc.ReconcileEntry(ctx, entry); err != nil {
			t.Fatalf("run %d: %v", i, err)
		}
	}
	if len(containerTypes.byModel) != 1 {
		t.Errorf("container types = %d, want 1", len(containerTypes.byModel))
	}
	if len(ships.byLower) != 1 {
		t.Errorf("ships = %d, want 1", len(ships.byLower))
	}
}

func TestReconcileShipCaseInsensitive(t *testing.T) {
	entries := newStubEntries()
	svc, _, _, ships := newTestLookupService(entries)
	ctx := context.Background()

	for _, name := range []string{"MSC Anna", "MSC ANNA", "msc anna"} {
		entry := &models.ManifestEntry{YearID: 1, ShipName: name}
		entries.Create(ctx, entry)
		if err := svc.ReconcileEntry(ctx, entry); err != nil {
			t.Fatalf("ReconcileEntry(%q) returned error: %v", name, err)
		}
	}
	if len(ships.byLower) != 1 {
		t.Fatalf("ships = %d, want 1 (name match is case-insensitive)", len(ships.byLower))
	}
}

func TestSyncAllIdempotent(t *testing.T) {
	entries := newStubEntries()
	svc, _, _, _ := newTestLookupService(entries)
	ctx := context.Background()

	rows := []*models.ManifestEntry{
		{YearID: 1, ContainerCode: "MSKU1234567", ContainerTypeCode: "20GP", ShipName: "MSC ANNA", FlagName: "Panama"},
		{YearID: 1, ContainerCode: "MSKU7654321", ContainerTypeCode: "20GP", ShipName: "msc anna", FlagName: "Panama"},
		{YearID: 1, ContainerCode: "TCLU1111111", ContainerTypeCode: "40HC", ShipName: "EVER GIVEN", FlagName: "Liberia"},
	}
	for _, e := range rows {
		e.ContainerModel = models.DeriveContainerModel(e.ContainerCode, e.ContainerTypeCode)
		entries.Create(ctx, e)
	}

	result, err := svc.SyncAll(ctx)
	if err != nil {
		t.Fatalf("SyncAll returned error: %v", err)
	}
	if result.ContainerTypesCreated != 2 {
		t.Errorf("container types created = %d, want 2", result.ContainerTypesCreated)
	}
	if result.FlagsCreated != 2 {
		t.Errorf("flags created = %d, want 2", result.FlagsCreated)
	}
	if result.ShipsCreated != 2 {
		t.Errorf("ships created = %d, want 2", result.ShipsCreated)
	}
	if result.EntriesLinked != 3 {
		t.Errorf("entries linked = %d, want 3", result.EntriesLinked)
	}

	// Second sweep over a consistent registry does nothing.
	again, err := svc.SyncAll(ctx)
	if err != nil {
		t.Fatalf("second SyncAll returned error: %v", err)
	}
	if again.ContainerTypesCreated != 0 || again.FlagsCreated != 0 || again.ShipsCreated != 0 || again.EntriesLinked != 0 {
		t.Errorf("second sweep was not a no-op: %+v", again)
	}
}
