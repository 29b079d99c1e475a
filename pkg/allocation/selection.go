package allocation

import (
	"Pantry-Planner/domain"
	"time"

	"github.com/google/uuid"
)

type (
	// LotPick is one candidate lot inside a selection: how much of it the
	// session currently takes and whether it is part of the selection at all.
	LotPick struct {
		LotID             uuid.UUID
		QuantityAvailable float64
		Unit              string
		ExpiryDate        *time.Time
		SelectedQuantity  float64
		Preselected       bool
	}

	// Selection is the in-memory, per-session state over candidate lots for
	// one ingredient requirement. All transitions return a new snapshot; a
	// failed transition leaves the receiver untouched.
	Selection struct {
		Required  float64
		Lots      []LotPick
		Shortfall float64
	}
)

func (s Selection) clone() Selection {
	next := s
	next.Lots = make([]LotPick, len(s.Lots))
	copy(next.Lots, s.Lots)
	return next
}

func (s Selection) indexOf(lotID uuid.UUID) int {
	for i := range s.Lots {
		if s.Lots[i].LotID == lotID {
			return i
		}
	}
	return -1
}

// SelectedTotal is the raw sum over preselected lots; it may exceed Required
// while the session is in the transient exceed state.
func (s Selection) SelectedTotal() float64 {
	total := 0.0
	for _, pick := range s.Lots {
		if pick.Preselected {
			total += pick.SelectedQuantity
		}
	}
	return total
}

// CappedTotal is the selected sum clamped to the requirement.
func (s Selection) CappedTotal() float64 {
	if total := s.SelectedTotal(); total < s.Required {
		return total
	}
	return s.Required
}

// CapacityTotal sums the full availability of preselected lots, the
// coarse-grained measure the confirm step checks against.
func (s Selection) CapacityTotal() float64 {
	total := 0.0
	for _, pick := range s.Lots {
		if pick.Preselected {
			total += pick.QuantityAvailable
		}
	}
	return total
}

// ExceedAmount is how far whole-lot selection overshoots the requirement.
func (s Selection) ExceedAmount() float64 {
	if exceed := s.SelectedTotal() - s.Required; exceed > 0 {
		return exceed
	}
	return 0
}

// Toggle flips a lot in or out of the selection. A newly selected lot starts
// at its previous quantity, floored at one unit and capped by availability.
func (s Selection) Toggle(lotID uuid.UUID) (Selection, error) {
	i := s.indexOf(lotID)
	if i < 0 {
		return s, domain.ErrLotNotSelected
	}

	next := s.clone()
	pick := &next.Lots[i]
	if pick.Preselected {
		pick.Preselected = false
		pick.SelectedQuantity = 0
	} else {
		pick.Preselected = true
		pick.SelectedQuantity = clampQuantity(pick.SelectedQuantity, pick.QuantityAvailable)
	}
	return next, nil
}

// Adjust moves a selected lot's quantity by delta, clamped to
// [1, availability]. Overshooting the requirement triggers redistribution
// away from the other selected lots.
func (s Selection) Adjust(lotID uuid.UUID, delta float64) (Selection, error) {
	i := s.indexOf(lotID)
	if i < 0 || !s.Lots[i].Preselected {
		return s, domain.ErrLotNotSelected
	}

	next := s.clone()
	pick := &next.Lots[i]
	pick.SelectedQuantity = clampQuantity(pick.SelectedQuantity+delta, pick.QuantityAvailable)
	next.redistributeExcess(lotID)
	return next, nil
}

// SetQuantity replaces a selected lot's quantity. Values above availability
// are rejected without touching the selection; values below one unit default
// to one, mirroring the loose numeric input the adjustment UI allows.
func (s Selection) SetQuantity(lotID uuid.UUID, value float64) (Selection, error) {
	i := s.indexOf(lotID)
	if i < 0 || !s.Lots[i].Preselected {
		return s, domain.ErrLotNotSelected
	}
	if value > s.Lots[i].QuantityAvailable {
		return s, domain.ErrQuantityExceedsLot
	}

	next := s.clone()
	pick := &next.Lots[i]
	pick.SelectedQuantity = clampQuantity(value, pick.QuantityAvailable)
	next.redistributeExcess(lotID)
	return next, nil
}

// redistributeExcess deducts the overflow beyond Required from the other
// preselected lots in slice order, never pushing any below one unit. The lot
// that caused the overflow keeps its value.
func (s *Selection) redistributeExcess(keep uuid.UUID) {
	overflow := s.SelectedTotal() - s.Required
	if overflow <= 0 {
		return
	}

	for i := range s.Lots {
		pick := &s.Lots[i]
		if !pick.Preselected || pick.LotID == keep {
			continue
		}

		reducible := pick.SelectedQuantity - 1
		if reducible <= 0 {
			continue
		}
		if reducible > overflow {
			reducible = overflow
		}

		pick.SelectedQuantity -= reducible
		overflow -= reducible
		if overflow <= 0 {
			return
		}
	}
}

// ConfirmSelection gates progression from picking lots to adjusting
// quantities. The check is deliberately coarse: the combined full capacity of
// the chosen lots must cover the requirement, regardless of the per-lot
// quantities picked so far.
func (s Selection) ConfirmSelection() error {
	selected := 0
	for _, pick := range s.Lots {
		if pick.Preselected {
			selected++
		}
	}
	if selected == 0 {
		return domain.ErrEmptySelection
	}

	if capacity := s.CapacityTotal(); capacity < s.Required {
		return &domain.InsufficientSelectionError{Selected: capacity, Required: s.Required}
	}
	return nil
}

// AutoAdjust reruns the greedy expiry-ordered pass strictly over the lots the
// user already picked, reallocating quantities up to the requirement and
// zeroing picks past the point of satisfaction. Shortfall reports when the
// chosen lots cannot cover the requirement on their own.
func (s Selection) AutoAdjust() Selection {
	next := s.clone()

	order := make([]int, 0, len(next.Lots))
	for i, pick := range next.Lots {
		if pick.Preselected {
			order = append(order, i)
		}
	}
	sortPicksFEFO(next.Lots, order)

	remaining := next.Required
	for _, i := range order {
		pick := &next.Lots[i]
		switch {
		case remaining <= 0:
			pick.SelectedQuantity = 0
		case pick.QuantityAvailable >= remaining:
			pick.SelectedQuantity = remaining
			remaining = 0
		default:
			pick.SelectedQuantity = pick.QuantityAvailable
			remaining -= pick.QuantityAvailable
		}
	}

	next.Shortfall = remaining
	return next
}

func clampQuantity(value, available float64) float64 {
	if value < 1 {
		value = 1
	}
	if value > available {
		value = available
	}
	return value
}

// sortPicksFEFO orders the given indexes with the same comparator the
// allocator uses over whole lots.
func sortPicksFEFO(lots []LotPick, order []int) {
	less := func(a, b LotPick) bool {
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
	}

	for i := 1; i < len(order); i++ {
		for j := i; j > 0 && less(lots[order[j]], lots[order[j-1]]); j-- {
			order[j], order[j-1] = order[j-1], order[j]
		}
	}
}
