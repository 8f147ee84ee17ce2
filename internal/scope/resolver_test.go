package scope

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tiUlisses/securityvision-presence-backend/internal/models"
)

func testDirectory() *Directory {
	return &Directory{
		Devices: map[string]models.Device{
			"D1": {ID: "D1", Name: "Lobby Gate", FloorID: "F1"},
			"D2": {ID: "D2", Name: "Lab Gate", FloorID: "F2"},
			"D3": {ID: "D3", Name: "Annex Gate", FloorID: "F3"},
		},
		Floors: map[string]models.Floor{
			"F1": {ID: "F1", BuildingID: "B1"},
			"F2": {ID: "F2", BuildingID: "B1"},
			"F3": {ID: "F3", BuildingID: "B2"},
		},
		Buildings: map[string]models.Building{
			"B1": {ID: "B1", Name: "HQ"},
			"B2": {ID: "B2", Name: "Annex"},
		},
		People: map[string]models.Person{
			"P1": {ID: "P1", Name: "Alice"},
			"P2": {ID: "P2", Name: "Bob"},
			"P3": {ID: "P3", Name: "Carol"},
		},
		Groups: map[string]models.PersonGroup{
			"G1": {ID: "G1", Name: "Night Shift"},
		},
		TagOwner: map[string]string{
			"T1": "P1",
			"T2": "P1",
			"T3": "P2",
		},
		PersonTags: map[string][]string{
			"P1": {"T2", "T1"},
			"P2": {"T3"},
		},
		GroupMembers: map[string][]string{
			"G1": {"P1", "P2"},
		},
	}
}

func TestResolverPersonTags(t *testing.T) {
	r := NewResolver(testDirectory())

	tags, err := r.PersonTags("P1")
	require.NoError(t, err)
	require.Equal(t, []string{"T1", "T2"}, tags)

	// Person with no tags resolves to an empty set, not an error.
	tags, err = r.PersonTags("P3")
	require.NoError(t, err)
	require.Empty(t, tags)

	_, err = r.PersonTags("P9")
	require.ErrorIs(t, err, models.ErrNotFound)
}

func TestResolverGroupTags(t *testing.T) {
	r := NewResolver(testDirectory())

	tags, err := r.GroupTags("G1")
	require.NoError(t, err)
	require.Equal(t, []string{"T1", "T2", "T3"}, tags)

	_, err = r.GroupTags("G9")
	require.ErrorIs(t, err, models.ErrNotFound)
}

func TestResolverBuildingDevices(t *testing.T) {
	r := NewResolver(testDirectory())

	devices, err := r.BuildingDevices("B1")
	require.NoError(t, err)
	require.Equal(t, []string{"D1", "D2"}, devices)

	devices, err = r.BuildingDevices("B2")
	require.NoError(t, err)
	require.Equal(t, []string{"D3"}, devices)

	_, err = r.BuildingDevices("B9")
	require.ErrorIs(t, err, models.ErrNotFound)
}

func TestResolverLookups(t *testing.T) {
	r := NewResolver(testDirectory())

	d, err := r.Device("D1")
	require.NoError(t, err)
	require.Equal(t, "Lobby Gate", d.Name)

	_, err = r.Device("D9")
	require.True(t, errors.Is(err, models.ErrNotFound))

	require.Equal(t, "P1", r.OwnerOf("T1"))
	require.Equal(t, "", r.OwnerOf("T9"))
	require.Equal(t, "Alice", r.PersonName("P1"))
	require.Equal(t, "Lab Gate", r.DeviceName("D2"))
	require.Equal(t, "", r.DeviceName("D9"))
}
