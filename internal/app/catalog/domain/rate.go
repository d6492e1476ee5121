package domain

import (
	"fmt"
	"math/big"
	"strings"
)

// Rate is a percentage such as an interest rate or a fee rate.
// ParseRate("2.5") is 2.5 percent. Rate is immutable.
type Rate struct {
	percent *big.Rat
}

// ParseRate parses a decimal percentage.
func ParseRate(s string) (*Rate, error) {
	v := strings.TrimSpace(s)
	if v == "" {
		return nil, InvalidError("rate", "is empty")
	}
	r, ok := new(big.Rat).SetString(v)
	if !ok {
		return nil, InvalidError("rate", fmt.Sprintf("%q is not a decimal", s))
	}
	return &Rate{percent: r}, nil
}

// NewRateFromRat copies a percentage value (not a fraction).
func NewRateFromRat(percent *big.Rat) *Rate {
	if percent == nil {
		return &Rate{percent: new(big.Rat)}
	}
	return &Rate{percent: new(big.Rat).Set(percent)}
}

// Percent returns a copy of the percentage value (2.5 for 2.5%).
func (r *Rate) Percent() *big.Rat {
	return new(big.Rat).Set(r.percent)
}

// Fraction returns percent / 100 (0.025 for 2.5%).
func (r *Rate) Fraction() *big.Rat {
	return new(big.Rat).Quo(r.percent, big.NewRat(100, 1))
}

// Of returns the rate applied to an amount.
func (r *Rate) Of(m *Money) *Money {
	return m.MultiplyRat(r.Fraction())
}

func (r *Rate) IsNegative() bool {
	return r.percent.Sign() < 0
}

func (r *Rate) Equals(other *Rate) bool {
	if other == nil {
		return false
	}
	return r.percent.Cmp(other.percent) == 0
}

// String formats the percentage with up to nine decimals, the NUMERIC scale.
func (r *Rate) String() string {
	s := r.percent.FloatString(9)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

func validateRate(field string, r *Rate) error {
	if r == nil {
		return RequiredError(field)
	}
	if r.IsNegative() {
		return fmt.Errorf("%s: %w", field, ErrNegativeRate)
	}
	return nil
}

func validatePercentage(field string, r *Rate) error {
	if r == nil {
		return RequiredError(field)
	}
	if r.IsNegative() || r.percent.Cmp(big.NewRat(100, 1)) > 0 {
		return InvalidError(field, "must be between 0 and 100")
	}
	return nil
}
