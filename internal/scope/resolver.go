package scope

import (
	"fmt"
	"sort"

	"github.com/tiUlisses/securityvision-presence-backend/internal/models"
)

// Directory holds the location and group hierarchies as flat lookup
// tables, loaded once per request. Resolution walks maps, never the
// database, so accumulation stays free of recursive lookups.
type Directory struct {
	Devices      map[string]models.Device
	Floors       map[string]models.Floor
	Buildings    map[string]models.Building
	People       map[string]models.Person
	Groups       map[string]models.PersonGroup
	TagOwner     map[string]string   // tag id -> person id
	PersonTags   map[string][]string // person id -> tag ids
	GroupMembers map[string][]string // group id -> person ids
}

// Resolver expands a requested scope into the id sets the engine
// operates on.
type Resolver struct {
	dir *Directory
}

// NewResolver creates a resolver over a loaded directory.
func NewResolver(dir *Directory) *Resolver {
	return &Resolver{dir: dir}
}

// Person returns the person for an id.
func (r *Resolver) Person(id string) (models.Person, error) {
	p, ok := r.dir.People[id]
	if !ok {
		return models.Person{}, fmt.Errorf("%w: person %s", models.ErrNotFound, id)
	}
	return p, nil
}

// Group returns the group for an id.
func (r *Resolver) Group(id string) (models.PersonGroup, error) {
	g, ok := r.dir.Groups[id]
	if !ok {
		return models.PersonGroup{}, fmt.Errorf("%w: group %s", models.ErrNotFound, id)
	}
	return g, nil
}

// Device returns the device for an id.
func (r *Resolver) Device(id string) (models.Device, error) {
	d, ok := r.dir.Devices[id]
	if !ok {
		return models.Device{}, fmt.Errorf("%w: device %s", models.ErrNotFound, id)
	}
	return d, nil
}

// Building returns the building for an id.
func (r *Resolver) Building(id string) (models.Building, error) {
	b, ok := r.dir.Buildings[id]
	if !ok {
		return models.Building{}, fmt.Errorf("%w: building %s", models.ErrNotFound, id)
	}
	return b, nil
}

// PersonTags returns the tag ids owned by a person.
func (r *Resolver) PersonTags(personID string) ([]string, error) {
	if _, err := r.Person(personID); err != nil {
		return nil, err
	}
	tags := append([]string(nil), r.dir.PersonTags[personID]...)
	sort.Strings(tags)
	return tags, nil
}

// GroupTags returns the tag ids of every member of a group.
func (r *Resolver) GroupTags(groupID string) ([]string, error) {
	if _, err := r.Group(groupID); err != nil {
		return nil, err
	}
	var tags []string
	for _, personID := range r.dir.GroupMembers[groupID] {
		tags = append(tags, r.dir.PersonTags[personID]...)
	}
	sort.Strings(tags)
	return tags, nil
}

// BuildingDevices returns the device ids of every device whose floor
// belongs to the building.
func (r *Resolver) BuildingDevices(buildingID string) ([]string, error) {
	if _, err := r.Building(buildingID); err != nil {
		return nil, err
	}
	var devices []string
	for id, d := range r.dir.Devices {
		floor, ok := r.dir.Floors[d.FloorID]
		if ok && floor.BuildingID == buildingID {
			devices = append(devices, id)
		}
	}
	sort.Strings(devices)
	return devices, nil
}

// OwnerOf returns the owning person id of a tag, or "" when the tag is
// unknown.
func (r *Resolver) OwnerOf(tagID string) string {
	return r.dir.TagOwner[tagID]
}

// DeviceName returns the display name of a device, or "" when unknown.
func (r *Resolver) DeviceName(id string) string {
	return r.dir.Devices[id].Name
}

// PersonName returns the display name of a person, or "" when unknown.
func (r *Resolver) PersonName(id string) string {
	return r.dir.People[id].Name
}
