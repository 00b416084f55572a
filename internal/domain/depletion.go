package domain

import "sort"

// BatchDecrement is one step of a depletion plan: the new remaining
// quantity for a batch after a sale consumes stock.
type BatchDecrement struct {
	BatchID     int64
	NewQuantity int
}

// PlanDepletion computes first-created-first-depleted decrements across the
// given batches for a sale of qty units. Batches are ordered by creation
// time ascending (id as tiebreaker) regardless of input order, so the plan
// is deterministic. Returns ErrInsufficientStock when the batches cannot
// cover qty; no partial plan is produced in that case.
func PlanDepletion(batches []StockBatch, qty int) ([]BatchDecrement, error) {
	if qty <= 0 {
		return nil, Validationf("quantity must be greater than 0")
	}

	ordered := make([]StockBatch, len(batches))
	copy(ordered, batches)
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].CreatedAt.Equal(ordered[j].CreatedAt) {
			return ordered[i].ID < ordered[j].ID
		}
		return ordered[i].CreatedAt.Before(ordered[j].CreatedAt)
	})

	available := 0
	for _, b := range ordered {
		available += b.Quantity
	}
	if available < qty {
		return nil, ErrInsufficientStock
	}

	var plan []BatchDecrement
	remaining := qty
	for _, b := range ordered {
		if remaining <= 0 {
			break
		}
		if b.Quantity <= 0 {
			continue
		}
		if b.Quantity >= remaining {
			plan = append(plan, BatchDecrement{BatchID: b.ID, NewQuantity: b.Quantity - remaining})
			remaining = 0
		} else {
			plan = append(plan, BatchDecrement{BatchID: b.ID, NewQuantity: 0})
			remaining -= b.Quantity
		}
	}
	return plan, nil
}
