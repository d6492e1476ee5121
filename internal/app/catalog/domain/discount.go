package domain

import (
	"fmt"
	"math/big"
	"time"
)

// Discount is a percentage reduction valid within [start, end).
type Discount struct {
	percentage *Rate
	startDate  time.Time
	endDate    time.Time
}

// NewDiscount validates the percentage (0-100) and the date range.
func NewDiscount(percentage *Rate, startDate, endDate time.Time) (*Discount, error) {
	if percentage == nil {
		return nil, RequiredError("discount.percentage")
	}
	if percentage.IsNegative() || percentage.Percent().Cmp(big.NewRat(100, 1)) > 0 {
		return nil, ErrInvalidDiscountPercentage
	}
	if startDate.IsZero() {
		return nil, RequiredError("discount.start_date")
	}
	if endDate.IsZero() {
		return nil, RequiredError("discount.end_date")
	}
	if !endDate.After(startDate) {
		return nil, ErrInvalidDiscountPeriod
	}
	return &Discount{
		percentage: percentage,
		startDate:  startDate.UTC(),
		endDate:    endDate.UTC(),
	}, nil
}

// IsValidAt reports whether now falls within [startDate, endDate).
func (d *Discount) IsValidAt(now time.Time) bool {
	return !now.Before(d.startDate) && now.Before(d.endDate)
}

func (d *Discount) Percentage() *Rate {
	return d.percentage
}

func (d *Discount) StartDate() time.Time {
	return d.startDate
}

func (d *Discount) EndDate() time.Time {
	return d.endDate
}

// ApplyTo returns the discounted amount.
func (d *Discount) ApplyTo(price *Money) *Money {
	return price.Subtract(d.percentage.Of(price))
}

// ApplyToRate returns the discounted rate.
func (d *Discount) ApplyToRate(r *Rate) *Rate {
	reduced := new(big.Rat).Mul(r.Percent(), d.percentage.Fraction())
	return NewRateFromRat(new(big.Rat).Sub(r.Percent(), reduced))
}

func (d *Discount) String() string {
	return fmt.Sprintf("%s%% off (valid from %s to %s)",
		d.percentage.String(),
		d.startDate.Format("2006-01-02"),
		d.endDate.Format("2006-01-02"))
}
