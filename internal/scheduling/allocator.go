package scheduling

import (
	"sort"

	"tablebook/internal/domain/models"
)

// SuitableTables filters the inventory to tables seating at least partySize,
// ordered ascending by capacity with name as the deterministic tie-break.
// The input slice is not modified.
func SuitableTables(partySize int, inventory []models.Table) []models.Table {
	suitable := make([]models.Table, 0, len(inventory))
	for _, t := range inventory {
		if t.Capacity >= partySize {
			suitable = append(suitable, t)
		}
	}
	sort.SliceStable(suitable, func(i, j int) bool {
		if suitable[i].Capacity != suitable[j].Capacity {
			return suitable[i].Capacity < suitable[j].Capacity
		}
		return suitable[i].Name < suitable[j].Name
	})
	return suitable
}

// SelectTable picks the best-fit table for a party: the smallest capacity
// that still seats everyone. ok is false when no table in the inventory is
// large enough, which means "this party can never be seated here", not "no
// table is free right now". Time-based exclusion is the caller's job.
func SelectTable(partySize int, inventory []models.Table) (models.Table, bool) {
	suitable := SuitableTables(partySize, inventory)
	if len(suitable) == 0 {
		return models.Table{}, false
	}
	return suitable[0], true
}
