package allocation

import (
	"Pantry-Planner/domain"
	"math"

	"github.com/google/uuid"
)

type (
	// RecipeShare is the slice of the exceed amount one consuming recipe
	// (via its meal plan) takes.
	RecipeShare struct {
		MealPlanID uuid.UUID
		RecipeID   uuid.UUID
		Amount     float64
	}

	// ExceedSet distributes whole-lot overshoot across the recipes sharing
	// an ingredient. The sum of all shares always equals Total.
	ExceedSet struct {
		Total  float64
		Shares []RecipeShare
	}
)

// NewExceedSet builds an empty distribution of the selection's overshoot
// across the consuming recipes, in their given order.
func NewExceedSet(selection Selection, consumers []RecipeShare) ExceedSet {
	set := ExceedSet{Total: selection.ExceedAmount(), Shares: make([]RecipeShare, len(consumers))}
	for i, consumer := range consumers {
		set.Shares[i] = RecipeShare{MealPlanID: consumer.MealPlanID, RecipeID: consumer.RecipeID}
	}
	return set
}

func (e ExceedSet) clone() ExceedSet {
	next := e
	next.Shares = make([]RecipeShare, len(e.Shares))
	copy(next.Shares, e.Shares)
	return next
}

func (e ExceedSet) indexOf(mealPlanID uuid.UUID) int {
	for i := range e.Shares {
		if e.Shares[i].MealPlanID == mealPlanID {
			return i
		}
	}
	return -1
}

// Sum is the distributed amount across all shares. It equals Total after
// AutoAllocate and stays constant under Adjust.
func (e ExceedSet) Sum() float64 {
	total := 0.0
	for _, share := range e.Shares {
		total += share.Amount
	}
	return total
}

// AutoAllocate splits the exceed amount evenly: floor(total/n) each, with the
// remainder handed out one unit at a time to the first shares in order.
func (e ExceedSet) AutoAllocate() (ExceedSet, error) {
	if len(e.Shares) == 0 || e.Total <= 0 {
		return e, domain.ErrNoExceedToDistribute
	}

	next := e.clone()
	base := math.Floor(next.Total / float64(len(next.Shares)))
	remainder := next.Total - base*float64(len(next.Shares))

	for i := range next.Shares {
		next.Shares[i].Amount = base
	}
	for i := 0; remainder >= 1; i++ {
		next.Shares[i].Amount++
		remainder--
	}
	if remainder > 0 {
		next.Shares[0].Amount += remainder
	}

	return next, nil
}

// Adjust moves allocation into or out of one recipe a unit at a time,
// compensating against the first sibling share so the distributed sum never
// changes. Units that cannot be compensated are not moved.
func (e ExceedSet) Adjust(mealPlanID uuid.UUID, delta float64) (ExceedSet, error) {
	i := e.indexOf(mealPlanID)
	if i < 0 {
		return e, domain.ErrRequirementNotFound
	}

	next := e.clone()
	units := int(math.Abs(delta))
	for ; units > 0; units-- {
		if delta > 0 {
			if next.Shares[i].Amount >= next.Total {
				break
			}
			j := next.firstOther(i, func(share RecipeShare) bool { return share.Amount > 0 })
			if j < 0 {
				break
			}
			next.Shares[i].Amount++
			next.Shares[j].Amount--
		} else {
			if next.Shares[i].Amount <= 0 {
				break
			}
			j := next.firstOther(i, func(share RecipeShare) bool { return share.Amount < next.Total })
			if j < 0 {
				break
			}
			next.Shares[i].Amount--
			next.Shares[j].Amount++
		}
	}

	return next, nil
}

// Set clamps one recipe's share to [0, Total] without rebalancing siblings;
// the caller owns overall consistency on this path.
func (e ExceedSet) Set(mealPlanID uuid.UUID, value float64) (ExceedSet, error) {
	i := e.indexOf(mealPlanID)
	if i < 0 {
		return e, domain.ErrRequirementNotFound
	}

	if value < 0 {
		value = 0
	}
	if value > e.Total {
		value = e.Total
	}

	next := e.clone()
	next.Shares[i].Amount = value
	return next, nil
}

func (e ExceedSet) firstOther(skip int, match func(RecipeShare) bool) int {
	for j := range e.Shares {
		if j != skip && match(e.Shares[j]) {
			return j
		}
	}
	return -1
}
