package allocation

import (
	"Pantry-Planner/entities"
	"sort"
)

// sortLotsFEFO orders lots first-expiring-first: expiry ascending with
// undated lots last, ties broken by the smaller remaining quantity.
func sortLotsFEFO(lots []entities.InventoryLot) []entities.InventoryLot {
	sorted := make([]entities.InventoryLot, len(lots))
	copy(sorted, lots)

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		switch {
		case a.ExpiryDate == nil && b.ExpiryDate == nil:
			return a.QuantityAvailable < b.QuantityAvailable
		case a.ExpiryDate == nil:
			return false
		case b.ExpiryDate == nil:
			return true
		case a.ExpiryDate.Equal(*b.ExpiryDate):
			return a.QuantityAvailable < b.QuantityAvailable
		default:
			return a.ExpiryDate.Before(*b.ExpiryDate)
		}
	})

	return sorted
}

// Allocate proposes a lot selection covering required using a greedy
// first-expiring-first walk. Lots the walk never reaches come back
// unselected with zero quantity. A positive Shortfall means the candidate
// lots cannot fully satisfy the requirement; the caller decides whether to
// proceed with partial coverage.
func Allocate(required float64, lots []entities.InventoryLot) Selection {
	selection := Selection{Required: required, Lots: make([]LotPick, 0, len(lots))}

	remaining := required
	for _, lot := range sortLotsFEFO(lots) {
		pick := LotPick{
			LotID:             lot.ID,
			QuantityAvailable: lot.QuantityAvailable,
			Unit:              lot.Unit,
			ExpiryDate:        lot.ExpiryDate,
		}

		if remaining > 0 && lot.QuantityAvailable > 0 {
			pick.Preselected = true
			if lot.QuantityAvailable >= remaining {
				pick.SelectedQuantity = remaining
				remaining = 0
			} else {
				pick.SelectedQuantity = lot.QuantityAvailable
				remaining -= lot.QuantityAvailable
			}
		}

		selection.Lots = append(selection.Lots, pick)
	}

	selection.Shortfall = remaining
	return selection
}

// PreselectFromRecords rebuilds a selection from already persisted
// allocation records. Persisted state always wins over a fresh proposal:
// exactly the recorded lots are preselected with their recorded quantities.
func PreselectFromRecords(required float64, records []entities.AllocationRecord, lots []entities.InventoryLot) Selection {
	used := make(map[string]float64, len(records))
	for _, record := range records {
		used[record.InventoryLotID.String()] = record.UsedQuantity
	}

	selection := Selection{Required: required, Lots: make([]LotPick, 0, len(lots))}

	total := 0.0
	for _, lot := range sortLotsFEFO(lots) {
		pick := LotPick{
			LotID:             lot.ID,
			QuantityAvailable: lot.QuantityAvailable,
			Unit:              lot.Unit,
			ExpiryDate:        lot.ExpiryDate,
		}

		if quantity, ok := used[lot.ID.String()]; ok {
			pick.Preselected = true
			pick.SelectedQuantity = quantity
			total += quantity
		}

		selection.Lots = append(selection.Lots, pick)
	}

	if total < required {
		selection.Shortfall = required - total
	}

	return selection
}
