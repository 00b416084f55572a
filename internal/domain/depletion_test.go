package domain

import (
	"errors"
	"testing"
	"time"
)

func batch(id int64, qty int, createdAt time.Time) StockBatch {
	return StockBatch{
		ID:          id,
		ProductType: ProductWaterBottle,
		BottleSize:  Size500ml,
		Quantity:    qty,
		CreatedAt:   createdAt,
	}
}

func TestPlanDepletionOldestFirst(t *testing.T) {
	base := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	// Deliberately out of order: the plan must sort by creation time.
	batches := []StockBatch{
		batch(3, 10, base.Add(48*time.Hour)),
		batch(1, 5, base),
		batch(2, 7, base.Add(24*time.Hour)),
	}

	plan, err := PlanDepletion(batches, 9)
	if err != nil {
		t.Fatalf("PlanDepletion: %v", err)
	}

	want := []BatchDecrement{
		{BatchID: 1, NewQuantity: 0},
		{BatchID: 2, NewQuantity: 3},
	}
	if len(plan) != len(want) {
		t.Fatalf("plan = %v, want %v", plan, want)
	}
	for i := range want {
		if plan[i] != want[i] {
			t.Errorf("plan[%d] = %v, want %v", i, plan[i], want[i])
		}
	}
}

func TestPlanDepletionIDTiebreak(t *testing.T) {
	at := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	batches := []StockBatch{
		batch(9, 4, at),
		batch(2, 4, at),
	}

	plan, err := PlanDepletion(batches, 5)
	if err != nil {
		t.Fatalf("PlanDepletion: %v", err)
	}
	if plan[0].BatchID != 2 {
		t.Errorf("first depleted batch = %d, want lower id 2", plan[0].BatchID)
	}
}

func TestPlanDepletionConservesUnits(t *testing.T) {
	base := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	batches := []StockBatch{
		batch(1, 6, base),
		batch(2, 6, base.Add(time.Hour)),
		batch(3, 6, base.Add(2*time.Hour)),
	}

	const qty = 11
	plan, err := PlanDepletion(batches, qty)
	if err != nil {
		t.Fatalf("PlanDepletion: %v", err)
	}

	before := map[int64]int{}
	for _, b := range batches {
		before[b.ID] = b.Quantity
	}
	consumed := 0
	for _, step := range plan {
		if step.NewQuantity < 0 {
			t.Errorf("batch %d left with negative quantity %d", step.BatchID, step.NewQuantity)
		}
		consumed += before[step.BatchID] - step.NewQuantity
	}
	if consumed != qty {
		t.Errorf("consumed %d units, want %d", consumed, qty)
	}
}

func TestPlanDepletionInsufficientStock(t *testing.T) {
	base := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	batches := []StockBatch{
		batch(1, 2, base),
		batch(2, 3, base.Add(time.Hour)),
	}

	plan, err := PlanDepletion(batches, 6)
	if !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("err = %v, want ErrInsufficientStock", err)
	}
	if plan != nil {
		t.Errorf("partial plan produced on insufficient stock: %v", plan)
	}
}

func TestPlanDepletionExactDrain(t *testing.T) {
	base := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	batches := []StockBatch{
		batch(1, 2, base),
		batch(2, 3, base.Add(time.Hour)),
	}

	plan, err := PlanDepletion(batches, 5)
	if err != nil {
		t.Fatalf("PlanDepletion: %v", err)
	}
	for _, step := range plan {
		if step.NewQuantity != 0 {
			t.Errorf("batch %d = %d remaining, want 0", step.BatchID, step.NewQuantity)
		}
	}
}

func TestPlanDepletionRejectsNonPositiveQty(t *testing.T) {
	batches := []StockBatch{batch(1, 5, time.Now())}
	for _, qty := range []int{0, -3} {
		if _, err := PlanDepletion(batches, qty); err == nil {
			t.Errorf("PlanDepletion(qty=%d) should have been rejected", qty)
		}
	}
}
