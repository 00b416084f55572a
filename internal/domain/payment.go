package domain

// ApplyPayment records a partial or full payment against a pending or
// lending sale. The status family is preserved until the pending balance
// reaches zero, at which point the sale collapses to paid. The invariant
// amountPaid + amountPending == totalAmount holds across every call.
func (s *Sale) ApplyPayment(amount float64) error {
	if s.PaymentStatus == PaymentPaid {
		return Validationf("sale is already fully paid")
	}
	if amount <= 0 {
		return Validationf("payment amount must be greater than 0")
	}
	if amount > s.AmountPending {
		return Validationf("payment amount %.2f exceeds pending balance %.2f", amount, s.AmountPending)
	}

	s.AmountPaid = Round2(s.AmountPaid + amount)
	s.AmountPending = Round2(s.AmountPending - amount)
	if s.AmountPending <= 0 {
		s.AmountPending = 0
		s.AmountPaid = s.TotalAmount
		s.PaymentStatus = PaymentPaid
	}
	return nil
}

// MarkPending reclassifies a lending sale as plain pending. The transition
// is one-directional; nothing moves a pending sale back to lending.
func (s *Sale) MarkPending() error {
	if s.PaymentStatus != PaymentLending {
		return Validationf("only lending sales can be marked pending")
	}
	s.PaymentStatus = PaymentPending
	return nil
}
