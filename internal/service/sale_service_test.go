package service

import (
	"context"
	"testing"
	"time"

	"github.com/aquatrack/backend-go/internal/domain"
)

type fakeSaleRepo struct {
	created []domain.Sale
	byID    map[int64]*domain.Sale
	nextID  int64
}

func newFakeSaleRepo() *fakeSaleRepo {
	return &fakeSaleRepo{byID: map[int64]*domain.Sale{}, nextID: 1}
}

func (r *fakeSaleRepo) CreateWithDepletion(_ context.Context, sale *domain.Sale) error {
	sale.ID = r.nextID
	r.nextID++
	r.created = append(r.created, *sale)
	copied := *sale
	r.byID[sale.ID] = &copied
	return nil
}

func (r *fakeSaleRepo) List(_ context.Context) ([]domain.Sale, error) { return r.created, nil }

func (r *fakeSaleRepo) ListByStatus(_ context.Context, status domain.PaymentStatus) ([]domain.Sale, error) {
	var out []domain.Sale
	for _, s := range r.created {
		if s.PaymentStatus == status {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeSaleRepo) ListWithCustomer(_ context.Context) ([]domain.Sale, error) {
	var out []domain.Sale
	for _, s := range r.created {
		if s.CustomerName != "" {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeSaleRepo) Get(_ context.Context, id int64) (*domain.Sale, error) {
	sale, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return sale, nil
}

func (r *fakeSaleRepo) RecordPayment(_ context.Context, id int64, mutate func(*domain.Sale) error) (*domain.Sale, error) {
	sale, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if err := mutate(sale); err != nil {
		return nil, err
	}
	return sale, nil
}

func (r *fakeSaleRepo) TotalBetween(_ context.Context, start, end time.Time) (float64, error) {
	var total float64
	for _, s := range r.created {
		if !s.CreatedAt.Before(start) && s.CreatedAt.Before(end) {
			total += s.TotalAmount
		}
	}
	return total, nil
}

func TestCreateSaleFullyPaid(t *testing.T) {
	repo := newFakeSaleRepo()
	svc := NewSaleService(repo, nil)

	sale, err := svc.CreateSale(context.Background(), CreateSaleInput{
		ProductType:  domain.ProductWaterBottle,
		BottleSize:   domain.Size500ml,
		Quantity:     3,
		PricePerUnit: 10,
		AmountPaid:   30,
	})
	if err != nil {
		t.Fatalf("CreateSale: %v", err)
	}
	if sale.PaymentStatus != domain.PaymentPaid {
		t.Errorf("status = %q, want paid", sale.PaymentStatus)
	}
	if sale.TotalAmount != 30 || sale.AmountPending != 0 {
		t.Errorf("total=%.2f pending=%.2f, want 30 and 0", sale.TotalAmount, sale.AmountPending)
	}
	if sale.PaymentMode != domain.PaymentModeCash {
		t.Errorf("mode = %q, want default cash", sale.PaymentMode)
	}
}

func TestCreateSaleRequiresStatusWhenOutstanding(t *testing.T) {
	repo := newFakeSaleRepo()
	svc := NewSaleService(repo, nil)

	input := CreateSaleInput{
		ProductType:  domain.ProductWaterBottle,
		BottleSize:   domain.Size1l,
		Quantity:     2,
		PricePerUnit: 25,
		AmountPaid:   10,
	}
	if _, err := svc.CreateSale(context.Background(), input); err == nil {
		t.Fatal("expected rejection with an outstanding balance and no status")
	}

	input.PaymentStatus = domain.PaymentLending
	sale, err := svc.CreateSale(context.Background(), input)
	if err != nil {
		t.Fatalf("CreateSale: %v", err)
	}
	if sale.PaymentStatus != domain.PaymentLending {
		t.Errorf("status = %q, want lending", sale.PaymentStatus)
	}
	if sale.AmountPending != 40 {
		t.Errorf("pending = %.2f, want 40", sale.AmountPending)
	}
}

func TestCreateSaleRejectsOverpaymentAndBadSKU(t *testing.T) {
	repo := newFakeSaleRepo()
	svc := NewSaleService(repo, nil)

	if _, err := svc.CreateSale(context.Background(), CreateSaleInput{
		ProductType:  domain.ProductWaterBottle,
		BottleSize:   domain.Size500ml,
		Quantity:     1,
		PricePerUnit: 10,
		AmountPaid:   15,
	}); err == nil {
		t.Error("expected rejection when paid exceeds total")
	}

	if _, err := svc.CreateSale(context.Background(), CreateSaleInput{
		ProductType:  domain.ProductWaterBottle,
		BottleSize:   "3l",
		Quantity:     1,
		PricePerUnit: 10,
	}); err == nil {
		t.Error("expected rejection for unknown bottle size")
	}

	if _, err := svc.CreateSale(context.Background(), CreateSaleInput{
		ProductType: domain.ProductColdDrink,
		BottleSize:  domain.Size500ml,
		Quantity:    1,
	}); err == nil {
		t.Error("expected rejection for cold drink with a bottle size")
	}

	if len(repo.created) != 0 {
		t.Errorf("rejected inputs were persisted: %v", repo.created)
	}
}

func TestRecordPaymentSettlesThroughService(t *testing.T) {
	repo := newFakeSaleRepo()
	svc := NewSaleService(repo, nil)

	sale, err := svc.CreateSale(context.Background(), CreateSaleInput{
		ProductType:   domain.ProductColdDrink,
		Quantity:      4,
		PricePerUnit:  5,
		AmountPaid:    0,
		PaymentStatus: domain.PaymentLending,
		CustomerName:  "Ravi",
	})
	if err != nil {
		t.Fatalf("CreateSale: %v", err)
	}

	updated, err := svc.RecordPayment(context.Background(), sale.ID, 20)
	if err != nil {
		t.Fatalf("RecordPayment: %v", err)
	}
	if updated.PaymentStatus != domain.PaymentPaid {
		t.Errorf("status = %q, want paid", updated.PaymentStatus)
	}

	if _, err := svc.RecordPayment(context.Background(), sale.ID, 1); err == nil {
		t.Error("expected rejection on an already-settled sale")
	}
}

func TestCustomerLedgerOrdering(t *testing.T) {
	repo := newFakeSaleRepo()
	svc := NewSaleService(repo, nil)

	mustCreate := func(name string, qty int, price float64, status domain.PaymentStatus, paid float64) {
		t.Helper()
		input := CreateSaleInput{
			ProductType:   domain.ProductColdDrink,
			Quantity:      qty,
			PricePerUnit:  price,
			AmountPaid:    paid,
			PaymentStatus: status,
			CustomerName:  name,
		}
		if _, err := svc.CreateSale(context.Background(), input); err != nil {
			t.Fatalf("CreateSale(%s): %v", name, err)
		}
	}

	mustCreate("Asha", 2, 10, domain.PaymentLending, 0)
	mustCreate("Binod", 10, 10, domain.PaymentLending, 0)
	mustCreate("Asha", 3, 10, "", 30)

	customers, err := svc.CustomerLedger(context.Background())
	if err != nil {
		t.Fatalf("CustomerLedger: %v", err)
	}
	if len(customers) != 2 {
		t.Fatalf("customers = %d, want 2", len(customers))
	}
	if customers[0].Name != "Binod" {
		t.Errorf("first customer = %q, want Binod with the larger total", customers[0].Name)
	}
	asha := customers[1]
	if asha.TotalSales != 2 || asha.TotalAmount != 50 || asha.TotalPending != 20 {
		t.Errorf("asha summary = %+v, want 2 sales total 50 pending 20", asha)
	}
}
