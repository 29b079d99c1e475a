package allocation

import (
	"Pantry-Planner/domain"
	"errors"
	"testing"

	"github.com/google/uuid"
)

func makeSelection(required float64, picks ...LotPick) Selection {
	return Selection{Required: required, Lots: picks}
}

func pick(available, selected float64, preselected bool) LotPick {
	return LotPick{
		LotID:             uuid.New(),
		QuantityAvailable: available,
		Unit:              "g",
		SelectedQuantity:  selected,
		Preselected:       preselected,
	}
}

func TestToggleDeselectZeroesQuantity(t *testing.T) {
	s := makeSelection(5, pick(10, 5, true))

	next, err := s.Toggle(s.Lots[0].LotID)
	if err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if next.Lots[0].Preselected || next.Lots[0].SelectedQuantity != 0 {
		t.Errorf("deselected lot should drop to zero, got %v", next.Lots[0].SelectedQuantity)
	}
	// Original snapshot untouched.
	if !s.Lots[0].Preselected {
		t.Errorf("transition mutated the receiver")
	}
}

func TestToggleSelectDefaultsToOneUnit(t *testing.T) {
	s := makeSelection(5, pick(10, 0, false))

	next, err := s.Toggle(s.Lots[0].LotID)
	if err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if !next.Lots[0].Preselected || next.Lots[0].SelectedQuantity != 1 {
		t.Errorf("newly selected lot should start at one unit, got %v", next.Lots[0].SelectedQuantity)
	}
}

func TestToggleUnknownLot(t *testing.T) {
	s := makeSelection(5, pick(10, 5, true))

	if _, err := s.Toggle(uuid.New()); !errors.Is(err, domain.ErrLotNotSelected) {
		t.Errorf("error = %v, want ErrLotNotSelected", err)
	}
}

func TestAdjustClampsToAvailability(t *testing.T) {
	s := makeSelection(20, pick(10, 8, true))

	next, err := s.Adjust(s.Lots[0].LotID, 5)
	if err != nil {
		t.Fatalf("Adjust: %v", err)
	}
	if next.Lots[0].SelectedQuantity != 10 {
		t.Errorf("quantity = %v, want clamp at availability 10", next.Lots[0].SelectedQuantity)
	}
}

func TestAdjustFloorsAtOneUnit(t *testing.T) {
	s := makeSelection(20, pick(10, 2, true))

	next, err := s.Adjust(s.Lots[0].LotID, -5)
	if err != nil {
		t.Fatalf("Adjust: %v", err)
	}
	if next.Lots[0].SelectedQuantity != 1 {
		t.Errorf("quantity = %v, want floor at 1", next.Lots[0].SelectedQuantity)
	}
}

func TestAdjustRedistributesOverflow(t *testing.T) {
	a := pick(10, 6, true)
	b := pick(10, 4, true)
	s := makeSelection(10, a, b)

	next, err := s.Adjust(a.LotID, 3)
	if err != nil {
		t.Fatalf("Adjust: %v", err)
	}

	if next.Lots[0].SelectedQuantity != 9 {
		t.Errorf("adjusted lot = %v, want 9", next.Lots[0].SelectedQuantity)
	}
	if next.Lots[1].SelectedQuantity != 1 {
		t.Errorf("sibling = %v, want deducted to 1", next.Lots[1].SelectedQuantity)
	}
	if total := next.SelectedTotal(); total != 10 {
		t.Errorf("total = %v, want conserved at 10", total)
	}
}

func TestRedistributeNeverPushesBelowOne(t *testing.T) {
	a := pick(20, 18, true)
	b := pick(5, 1, true)
	c := pick(5, 1, true)
	s := makeSelection(10, a, b, c)

	next, err := s.Adjust(a.LotID, 2)
	if err != nil {
		t.Fatalf("Adjust: %v", err)
	}
	if next.Lots[1].SelectedQuantity != 1 || next.Lots[2].SelectedQuantity != 1 {
		t.Errorf("siblings at one unit must not be reduced further")
	}
}

func TestSetQuantityRejectsAboveAvailability(t *testing.T) {
	s := makeSelection(20, pick(10, 5, true))

	if _, err := s.SetQuantity(s.Lots[0].LotID, 12); !errors.Is(err, domain.ErrQuantityExceedsLot) {
		t.Fatalf("error = %v, want ErrQuantityExceedsLot", err)
	}
	if s.Lots[0].SelectedQuantity != 5 {
		t.Errorf("failed transition must leave the selection untouched")
	}
}

func TestSetQuantityDefaultsLowValuesToOne(t *testing.T) {
	s := makeSelection(20, pick(10, 5, true))

	next, err := s.SetQuantity(s.Lots[0].LotID, 0)
	if err != nil {
		t.Fatalf("SetQuantity: %v", err)
	}
	if next.Lots[0].SelectedQuantity != 1 {
		t.Errorf("quantity = %v, want 1", next.Lots[0].SelectedQuantity)
	}
}

func TestConfirmSelectionEmpty(t *testing.T) {
	s := makeSelection(5, pick(10, 0, false))

	if err := s.ConfirmSelection(); !errors.Is(err, domain.ErrEmptySelection) {
		t.Errorf("error = %v, want ErrEmptySelection", err)
	}
}

func TestConfirmSelectionChecksCapacityNotQuantities(t *testing.T) {
	// Selected quantities cover only 2 of 8, but the lots' full capacity does.
	s := makeSelection(8, pick(6, 1, true), pick(4, 1, true))

	if err := s.ConfirmSelection(); err != nil {
		t.Errorf("confirm should pass on capacity, got %v", err)
	}
}

func TestConfirmSelectionInsufficientCapacity(t *testing.T) {
	s := makeSelection(10, pick(4, 4, true))

	err := s.ConfirmSelection()
	var insufficient *domain.InsufficientSelectionError
	if !errors.As(err, &insufficient) {
		t.Fatalf("error = %v, want InsufficientSelectionError", err)
	}
	if insufficient.Selected != 4 || insufficient.Required != 10 {
		t.Errorf("error carries %v/%v, want 4/10", insufficient.Selected, insufficient.Required)
	}
}

func TestAutoAdjustReallocatesWithinChosenLots(t *testing.T) {
	later := pick(10, 1, true)
	later.ExpiryDate = datePtr("2024-02-01")
	earlier := pick(4, 1, true)
	earlier.ExpiryDate = datePtr("2024-01-01")
	unchosen := pick(50, 0, false)
	unchosen.ExpiryDate = datePtr("2023-12-01")

	s := makeSelection(6, later, earlier, unchosen)
	next := s.AutoAdjust()

	if next.Lots[1].SelectedQuantity != 4 {
		t.Errorf("earlier chosen lot = %v, want drained to 4", next.Lots[1].SelectedQuantity)
	}
	if next.Lots[0].SelectedQuantity != 2 {
		t.Errorf("later chosen lot = %v, want remainder 2", next.Lots[0].SelectedQuantity)
	}
	if next.Lots[2].SelectedQuantity != 0 || next.Lots[2].Preselected {
		t.Errorf("auto adjust must not recruit lots the user did not pick")
	}
	if next.Shortfall != 0 {
		t.Errorf("Shortfall = %v, want 0", next.Shortfall)
	}
}

func TestAutoAdjustZeroesSurplusPicks(t *testing.T) {
	a := pick(10, 3, true)
	a.ExpiryDate = datePtr("2024-01-01")
	b := pick(10, 3, true)
	b.ExpiryDate = datePtr("2024-02-01")

	s := makeSelection(5, a, b)
	next := s.AutoAdjust()

	if next.Lots[0].SelectedQuantity != 5 || next.Lots[1].SelectedQuantity != 0 {
		t.Errorf("picks = %v, %v, want 5, 0", next.Lots[0].SelectedQuantity, next.Lots[1].SelectedQuantity)
	}
}

func TestAutoAdjustReportsShortfall(t *testing.T) {
	s := makeSelection(10, pick(4, 4, true))

	next := s.AutoAdjust()
	if next.Shortfall != 6 {
		t.Errorf("Shortfall = %v, want 6", next.Shortfall)
	}
}
