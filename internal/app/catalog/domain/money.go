package domain

import (
	"fmt"
	"math/big"
	"strings"
)

// Money is an exact monetary amount backed by big.Rat.
// Money is immutable; every operation returns a new value.
type Money struct {
	amount *big.Rat
}

// NewMoney creates Money from a numerator and denominator, as stored in the
// *_numerator / *_denominator column pairs. NewMoney(1999, 100) is 19.99.
func NewMoney(numerator, denominator int64) (*Money, error) {
	if denominator == 0 {
		return nil, InvalidError("amount", "denominator cannot be zero")
	}
	return &Money{amount: big.NewRat(numerator, denominator)}, nil
}

// MustMoney is NewMoney for literals known to be valid.
func MustMoney(numerator, denominator int64) *Money {
	m, err := NewMoney(numerator, denominator)
	if err != nil {
		panic(err)
	}
	return m
}

// ParseMoney creates Money from a decimal string such as "19.99".
func ParseMoney(decimal string) (*Money, error) {
	s := strings.TrimSpace(decimal)
	if s == "" {
		return nil, InvalidError("amount", "is empty")
	}
	rat, ok := new(big.Rat).SetString(s)
	if !ok {
		return nil, InvalidError("amount", fmt.Sprintf("%q is not a decimal", decimal))
	}
	return &Money{amount: rat}, nil
}

// NewMoneyFromRat copies rat into a new Money.
func NewMoneyFromRat(rat *big.Rat) *Money {
	if rat == nil {
		return Zero()
	}
	return &Money{amount: new(big.Rat).Set(rat)}
}

// Zero returns a zero amount.
func Zero() *Money {
	return &Money{amount: new(big.Rat)}
}

func (m *Money) Add(other *Money) *Money {
	return &Money{amount: new(big.Rat).Add(m.amount, other.amount)}
}

func (m *Money) Subtract(other *Money) *Money {
	return &Money{amount: new(big.Rat).Sub(m.amount, other.amount)}
}

// MultiplyRat returns m × r.
func (m *Money) MultiplyRat(r *big.Rat) *Money {
	return &Money{amount: new(big.Rat).Mul(m.amount, r)}
}

func (m *Money) IsZero() bool {
	return m.amount.Sign() == 0
}

func (m *Money) IsNegative() bool {
	return m.amount.Sign() < 0
}

// Cmp compares m and other like big.Rat.Cmp.
func (m *Money) Cmp(other *Money) int {
	return m.amount.Cmp(other.amount)
}

// Equals reports whether both amounts are equal. A nil other is never equal.
func (m *Money) Equals(other *Money) bool {
	if other == nil {
		return false
	}
	return m.amount.Cmp(other.amount) == 0
}

// Numerator returns the numerator of the reduced fraction, for persistence.
func (m *Money) Numerator() int64 {
	return m.amount.Num().Int64()
}

// Denominator returns the denominator of the reduced fraction, for persistence.
func (m *Money) Denominator() int64 {
	return m.amount.Denom().Int64()
}

// Fits reports whether the amount can be persisted as an int64 fraction.
func (m *Money) Fits() bool {
	return m.amount.Num().IsInt64() && m.amount.Denom().IsInt64()
}

// Rat returns a copy of the underlying amount.
func (m *Money) Rat() *big.Rat {
	return new(big.Rat).Set(m.amount)
}

// String formats the amount with two decimals.
func (m *Money) String() string {
	return m.amount.FloatString(2)
}

// FloatString formats the amount with the given number of decimals.
func (m *Money) FloatString(precision int) string {
	return m.amount.FloatString(precision)
}

func validatePositiveAmount(field string, m *Money) error {
	if m == nil {
		return RequiredError(field)
	}
	if !m.Fits() {
		return InvalidError(field, "is out of range")
	}
	if m.IsNegative() {
		return fmt.Errorf("%s: %w", field, ErrNegativeAmount)
	}
	if m.IsZero() {
		return fmt.Errorf("%s: %w", field, ErrZeroAmount)
	}
	return nil
}

func validateNonNegativeAmount(field string, m *Money) error {
	if m == nil {
		return nil
	}
	if !m.Fits() {
		return InvalidError(field, "is out of range")
	}
	if m.IsNegative() {
		return fmt.Errorf("%s: %w", field, ErrNegativeAmount)
	}
	return nil
}
