package models

// Device represents a fixed physical gateway. Devices belong to exactly
// one floor; floors belong to exactly one building.
type Device struct {
	ID          string `json:"id" db:"id"`
	Name        string `json:"name" db:"name"`
	MacAddress  string `json:"macAddress" db:"mac_address"`
	FloorID     string `json:"floorId" db:"floor_id"`
	FloorPlanID string `json:"floorPlanId,omitempty" db:"floor_plan_id"`
}

// Floor represents one floor of a building.
type Floor struct {
	ID         string `json:"id" db:"id"`
	Name       string `json:"name" db:"name"`
	BuildingID string `json:"buildingId" db:"building_id"`
}

// Building is the root of the location hierarchy.
type Building struct {
	ID   string `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

// Person represents a tracked person. Each person may carry several
// tags; every dwell session is attributed to exactly one person via its
// tag.
type Person struct {
	ID   string `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

// Tag represents a physical tag carried by a person. The tag id is the
// entity id recorded on dwell sessions and alert events.
type Tag struct {
	ID       string `json:"id" db:"id"`
	PersonID string `json:"personId" db:"person_id"`
}

// PersonGroup represents a named grouping of people.
type PersonGroup struct {
	ID   string `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}
