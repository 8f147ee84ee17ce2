package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/tiUlisses/securityvision-presence-backend/internal/models"
	"github.com/tiUlisses/securityvision-presence-backend/internal/scope"
)

// DirectoryRepository loads the location and group hierarchies.
type DirectoryRepository struct {
	db *sql.DB
}

// NewDirectoryRepository creates a new directory repository.
func NewDirectoryRepository(db *sql.DB) *DirectoryRepository {
	return &DirectoryRepository{db: db}
}

// LoadDirectory reads all hierarchy tables into flat lookup maps. The
// directory is loaded once per request and consulted in memory during
// accumulation.
func (r *DirectoryRepository) LoadDirectory(ctx context.Context) (*scope.Directory, error) {
	dir := &scope.Directory{
		Devices:      make(map[string]models.Device),
		Floors:       make(map[string]models.Floor),
		Buildings:    make(map[string]models.Building),
		People:       make(map[string]models.Person),
		Groups:       make(map[string]models.PersonGroup),
		TagOwner:     make(map[string]string),
		PersonTags:   make(map[string][]string),
		GroupMembers: make(map[string][]string),
	}

	buildings, err := r.ListBuildings(ctx)
	if err != nil {
		return nil, err
	}
	for _, b := range buildings {
		dir.Buildings[b.ID] = b
	}

	if err := r.loadFloors(ctx, dir); err != nil {
		return nil, err
	}

	devices, err := r.ListDevices(ctx)
	if err != nil {
		return nil, err
	}
	for _, d := range devices {
		dir.Devices[d.ID] = d
	}

	people, err := r.ListPeople(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range people {
		dir.People[p.ID] = p
	}

	groups, err := r.ListGroups(ctx)
	if err != nil {
		return nil, err
	}
	for _, g := range groups {
		dir.Groups[g.ID] = g
	}

	if err := r.loadTags(ctx, dir); err != nil {
		return nil, err
	}
	if err := r.loadGroupMembers(ctx, dir); err != nil {
		return nil, err
	}

	return dir, nil
}

// ListBuildings retrieves all buildings ordered by name.
func (r *DirectoryRepository) ListBuildings(ctx context.Context) ([]models.Building, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id, name FROM buildings ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to query buildings: %w", err)
	}
	defer rows.Close()

	var buildings []models.Building
	for rows.Next() {
		var b models.Building
		if err := rows.Scan(&b.ID, &b.Name); err != nil {
			return nil, fmt.Errorf("failed to scan building: %w", err)
		}
		buildings = append(buildings, b)
	}
	return buildings, rows.Err()
}

// ListDevices retrieves all devices ordered by name.
func (r *DirectoryRepository) ListDevices(ctx context.Context) ([]models.Device, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, name, mac_address, floor_id, floor_plan_id FROM devices ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to query devices: %w", err)
	}
	defer rows.Close()

	var devices []models.Device
	for rows.Next() {
		var d models.Device
		if err := rows.Scan(&d.ID, &d.Name, &d.MacAddress, &d.FloorID, &d.FloorPlanID); err != nil {
			return nil, fmt.Errorf("failed to scan device: %w", err)
		}
		devices = append(devices, d)
	}
	return devices, rows.Err()
}

// ListPeople retrieves all people ordered by name.
func (r *DirectoryRepository) ListPeople(ctx context.Context) ([]models.Person, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id, name FROM people ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to query people: %w", err)
	}
	defer rows.Close()

	var people []models.Person
	for rows.Next() {
		var p models.Person
		if err := rows.Scan(&p.ID, &p.Name); err != nil {
			return nil, fmt.Errorf("failed to scan person: %w", err)
		}
		people = append(people, p)
	}
	return people, rows.Err()
}

// ListGroups retrieves all person groups ordered by name.
func (r *DirectoryRepository) ListGroups(ctx context.Context) ([]models.PersonGroup, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id, name FROM person_groups ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to query person groups: %w", err)
	}
	defer rows.Close()

	var groups []models.PersonGroup
	for rows.Next() {
		var g models.PersonGroup
		if err := rows.Scan(&g.ID, &g.Name); err != nil {
			return nil, fmt.Errorf("failed to scan person group: %w", err)
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}

func (r *DirectoryRepository) loadFloors(ctx context.Context, dir *scope.Directory) error {
	rows, err := r.db.QueryContext(ctx, "SELECT id, name, building_id FROM floors")
	if err != nil {
		return fmt.Errorf("failed to query floors: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var f models.Floor
		if err := rows.Scan(&f.ID, &f.Name, &f.BuildingID); err != nil {
			return fmt.Errorf("failed to scan floor: %w", err)
		}
		dir.Floors[f.ID] = f
	}
	return rows.Err()
}

func (r *DirectoryRepository) loadTags(ctx context.Context, dir *scope.Directory) error {
	rows, err := r.db.QueryContext(ctx, "SELECT id, person_id FROM tags")
	if err != nil {
		return fmt.Errorf("failed to query tags: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var t models.Tag
		if err := rows.Scan(&t.ID, &t.PersonID); err != nil {
			return fmt.Errorf("failed to scan tag: %w", err)
		}
		dir.TagOwner[t.ID] = t.PersonID
		dir.PersonTags[t.PersonID] = append(dir.PersonTags[t.PersonID], t.ID)
	}
	return rows.Err()
}

func (r *DirectoryRepository) loadGroupMembers(ctx context.Context, dir *scope.Directory) error {
	rows, err := r.db.QueryContext(ctx, "SELECT group_id, person_id FROM group_members")
	if err != nil {
		return fmt.Errorf("failed to query group members: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var groupID, personID string
		if err := rows.Scan(&groupID, &personID); err != nil {
			return fmt.Errorf("failed to scan group member: %w", err)
		}
		dir.GroupMembers[groupID] = append(dir.GroupMembers[groupID], personID)
	}
	return rows.Err()
}
