package normalize

import "github.com/tidwall/gjson"

// Building is the canonical building record. Occupancy is deliberately not
// modeled: the service exposes no relationship between buildings and rooms,
// and the figures the old console showed were placeholders.
type Building struct {
	BuildingID     int64  `json:"buildingId"`
	Name           string `json:"name"`
	Type           string `json:"type"`
	NumberOfFloors int64  `json:"numberOfFloors"`
	Status         string `json:"status"`
}

// BuildingRecord normalizes one raw building. Flat structure, no nested
// blocks; an absent identifier becomes the sentinel 0 so list rendering
// stays total.
func BuildingRecord(doc gjson.Result) Building {
	return Building{
		BuildingID:     Int(doc, 0, "buildingId", "buildingID", "id"),
		Name:           Str(doc, "", "name", "buildingName"),
		Type:           Str(doc, "", "type", "buildingType"),
		NumberOfFloors: Int(doc, 0, "numberOfFloors", "floors"),
		Status:         Str(doc, "active", "status"),
	}
}
