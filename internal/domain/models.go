package domain

import (
	"fmt"
	"math"
	"time"
)

type ProductType string

const (
	ProductWaterBottle ProductType = "waterbottle"
	ProductColdDrink   ProductType = "coldrink"
)

type BottleSize string

const (
	Size200ml BottleSize = "200ml"
	Size250ml BottleSize = "250ml"
	Size500ml BottleSize = "500ml"
	Size1l    BottleSize = "1l"
	Size2l    BottleSize = "2l"
)

// BottleSizes is the canonical ordering used everywhere sizes are listed.
var BottleSizes = []BottleSize{Size200ml, Size250ml, Size500ml, Size1l, Size2l}

type PaymentStatus string

const (
	PaymentPaid    PaymentStatus = "paid"
	PaymentPending PaymentStatus = "pending"
	PaymentLending PaymentStatus = "lending"
)

type PaymentMode string

const (
	PaymentModeCash   PaymentMode = "cash"
	PaymentModeOnline PaymentMode = "online"
)

type ExpenseCategory string

const (
	ExpenseLabour        ExpenseCategory = "labour"
	ExpenseMiscellaneous ExpenseCategory = "miscellaneous"
)

// SKU identifies the unit of inventory: product type plus, for water
// bottles, a specific size. Cold drinks carry an empty size.
type SKU struct {
	ProductType ProductType `json:"product_type"`
	BottleSize  BottleSize  `json:"bottle_size,omitempty"`
}

func (s SKU) String() string {
	if s.BottleSize == "" {
		return string(s.ProductType)
	}
	return fmt.Sprintf("%s/%s", s.ProductType, s.BottleSize)
}

// Validate checks that the type is known and that the size is present
// exactly when the product is a water bottle.
func (s SKU) Validate() error {
	switch s.ProductType {
	case ProductWaterBottle:
		for _, size := range BottleSizes {
			if s.BottleSize == size {
				return nil
			}
		}
		return Validationf("unknown bottle size %q", s.BottleSize)
	case ProductColdDrink:
		if s.BottleSize != "" {
			return Validationf("cold drinks do not carry a bottle size")
		}
		return nil
	default:
		return Validationf("unknown product type %q", s.ProductType)
	}
}

// Sale is one completed transaction. createdAt is immutable; only the
// payment fields change after creation.
type Sale struct {
	ID            int64         `json:"id" db:"id"`
	ProductType   ProductType   `json:"product_type" db:"product_type"`
	BottleSize    BottleSize    `json:"bottle_size,omitempty" db:"bottle_size"`
	Quantity      int           `json:"quantity" db:"quantity"`
	PricePerUnit  float64       `json:"price_per_unit" db:"price_per_unit"`
	TotalAmount   float64       `json:"total_amount" db:"total_amount"`
	AmountPaid    float64       `json:"amount_paid" db:"amount_paid"`
	AmountPending float64       `json:"amount_pending" db:"amount_pending"`
	PaymentMode   PaymentMode   `json:"payment_mode" db:"payment_mode"`
	PaymentStatus PaymentStatus `json:"payment_status" db:"payment_status"`
	CustomerName  string        `json:"customer_name,omitempty" db:"customer_name"`
	Notes         string        `json:"notes" db:"notes"`
	CreatedAt     time.Time     `json:"created_at" db:"created_at"`
}

func (s *Sale) SKU() SKU {
	return SKU{ProductType: s.ProductType, BottleSize: s.BottleSize}
}

// StockBatch is one restocking event. Quantity is decremented as sales
// consume stock; the row itself is never deleted.
type StockBatch struct {
	ID          int64       `json:"id" db:"id"`
	ProductType ProductType `json:"product_type" db:"product_type"`
	BottleSize  BottleSize  `json:"bottle_size,omitempty" db:"bottle_size"`
	Quantity    int         `json:"quantity" db:"quantity"`
	AmountPaid  float64     `json:"amount_paid" db:"amount_paid"`
	UnitCost    *float64    `json:"unit_cost,omitempty" db:"unit_cost"`
	Notes       string      `json:"notes" db:"notes"`
	CreatedAt   time.Time   `json:"created_at" db:"created_at"`
}

func (b *StockBatch) SKU() SKU {
	return SKU{ProductType: b.ProductType, BottleSize: b.BottleSize}
}

// EffectiveUnitCost returns the stored per-unit cost, deriving it from
// amountPaid/quantity for rows written before unit_cost existed.
func (b *StockBatch) EffectiveUnitCost() float64 {
	if b.UnitCost != nil {
		return *b.UnitCost
	}
	if b.Quantity <= 0 {
		return 0
	}
	return Round2(b.AmountPaid / float64(b.Quantity))
}

type Expense struct {
	ID          int64           `json:"id" db:"id"`
	Category    ExpenseCategory `json:"category" db:"category"`
	Amount      float64         `json:"amount" db:"amount"`
	Reason      string          `json:"reason" db:"reason"`
	Description string          `json:"description,omitempty" db:"description"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
}

// DeliveryRecord is an uploaded photo with a fixed 48h time to live.
// ExpireAt is a unix-epoch-millisecond deadline.
type DeliveryRecord struct {
	ID        int64     `json:"id" db:"id"`
	ImageURL  string    `json:"image_url" db:"image_url"`
	ImageKey  string    `json:"image_key" db:"image_key"`
	Notes     string    `json:"notes" db:"notes"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	ExpireAt  int64     `json:"expire_at" db:"expire_at"`
}

// DeliveryTTL is how long a delivery photo is retained.
const DeliveryTTL = 48 * time.Hour

type User struct {
	ID           int64     `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	DisplayName  string    `json:"display_name" db:"display_name"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// CustomerSummary aggregates a named customer's sales for the ledger view.
type CustomerSummary struct {
	Name         string  `json:"name"`
	TotalSales   int     `json:"total_sales"`
	TotalAmount  float64 `json:"total_amount"`
	TotalPaid    float64 `json:"total_paid"`
	TotalPending float64 `json:"total_pending"`
	Sales        []Sale  `json:"sales"`
}

// ExpenseMonthlySummary is one month's expense totals.
type ExpenseMonthlySummary struct {
	Month         string  `json:"month" db:"month"`
	Labour        float64 `json:"labour" db:"labour"`
	Miscellaneous float64 `json:"miscellaneous" db:"miscellaneous"`
	Total         float64 `json:"total" db:"total"`
}

// Round2 rounds a monetary value to two decimal places.
func Round2(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return math.Round(v*100) / 100
}
