package allocation

import (
	"Pantry-Planner/domain"
	"errors"
	"testing"

	"github.com/google/uuid"
)

func makeExceedSet(total float64, count int) ExceedSet {
	shares := make([]RecipeShare, count)
	for i := range shares {
		shares[i] = RecipeShare{MealPlanID: uuid.New(), RecipeID: uuid.New()}
	}
	return ExceedSet{Total: total, Shares: shares}
}

func TestNewExceedSetTakesSelectionOvershoot(t *testing.T) {
	s := makeSelection(5, pick(10, 8, true))
	consumers := []RecipeShare{{MealPlanID: uuid.New()}, {MealPlanID: uuid.New()}}

	set := NewExceedSet(s, consumers)
	if set.Total != 3 {
		t.Errorf("Total = %v, want overshoot 3", set.Total)
	}
	if len(set.Shares) != 2 || set.Shares[0].Amount != 0 {
		t.Errorf("shares should start empty")
	}
}

func TestAutoAllocateEvenSplitWithRemainder(t *testing.T) {
	set := makeExceedSet(10, 3)

	next, err := set.AutoAllocate()
	if err != nil {
		t.Fatalf("AutoAllocate: %v", err)
	}

	want := []float64{4, 3, 3}
	for i, share := range next.Shares {
		if share.Amount != want[i] {
			t.Errorf("share %d = %v, want %v", i, share.Amount, want[i])
		}
	}
	if next.Sum() != next.Total {
		t.Errorf("Sum = %v, want Total %v", next.Sum(), next.Total)
	}
}

func TestAutoAllocateFractionalResidue(t *testing.T) {
	set := makeExceedSet(7.5, 2)

	next, err := set.AutoAllocate()
	if err != nil {
		t.Fatalf("AutoAllocate: %v", err)
	}
	if next.Sum() != 7.5 {
		t.Errorf("Sum = %v, want 7.5", next.Sum())
	}
}

func TestAutoAllocateNothingToDistribute(t *testing.T) {
	set := makeExceedSet(0, 2)
	if _, err := set.AutoAllocate(); !errors.Is(err, domain.ErrNoExceedToDistribute) {
		t.Errorf("error = %v, want ErrNoExceedToDistribute", err)
	}

	empty := makeExceedSet(5, 0)
	if _, err := empty.AutoAllocate(); !errors.Is(err, domain.ErrNoExceedToDistribute) {
		t.Errorf("error = %v, want ErrNoExceedToDistribute", err)
	}
}

func TestAdjustMovesUnitsKeepingSum(t *testing.T) {
	set := makeExceedSet(10, 3)
	set, _ = set.AutoAllocate() // 4, 3, 3

	next, err := set.Adjust(set.Shares[2].MealPlanID, 2)
	if err != nil {
		t.Fatalf("Adjust: %v", err)
	}

	if next.Shares[2].Amount != 5 {
		t.Errorf("adjusted share = %v, want 5", next.Shares[2].Amount)
	}
	if next.Sum() != 10 {
		t.Errorf("Sum = %v, want conserved at 10", next.Sum())
	}
}

func TestAdjustStopsWhenNoSiblingCanCompensate(t *testing.T) {
	set := makeExceedSet(6, 2)
	set, _ = set.AutoAllocate() // 3, 3

	// Taking 5 units only finds 3 to move before the sibling is drained.
	next, err := set.Adjust(set.Shares[0].MealPlanID, 5)
	if err != nil {
		t.Fatalf("Adjust: %v", err)
	}
	if next.Shares[0].Amount != 6 || next.Shares[1].Amount != 0 {
		t.Errorf("shares = %v, %v, want 6, 0", next.Shares[0].Amount, next.Shares[1].Amount)
	}
	if next.Sum() != 6 {
		t.Errorf("Sum = %v, want 6", next.Sum())
	}
}

func TestAdjustUnknownMealPlan(t *testing.T) {
	set := makeExceedSet(6, 2)
	if _, err := set.Adjust(uuid.New(), 1); !errors.Is(err, domain.ErrRequirementNotFound) {
		t.Errorf("error = %v, want ErrRequirementNotFound", err)
	}
}

func TestSetClampsWithoutRebalancing(t *testing.T) {
	set := makeExceedSet(10, 2)
	set, _ = set.AutoAllocate() // 5, 5

	next, err := set.Set(set.Shares[0].MealPlanID, 42)
	if err != nil {
		t.Fatalf("Set: %v", err)
	}
	if next.Shares[0].Amount != 10 {
		t.Errorf("share = %v, want clamp at Total 10", next.Shares[0].Amount)
	}
	if next.Shares[1].Amount != 5 {
		t.Errorf("sibling = %v, Set must not rebalance", next.Shares[1].Amount)
	}

	next, err = next.Set(next.Shares[0].MealPlanID, -3)
	if err != nil {
		t.Fatalf("Set: %v", err)
	}
	if next.Shares[0].Amount != 0 {
		t.Errorf("share = %v, want clamp at 0", next.Shares[0].Amount)
	}
}
