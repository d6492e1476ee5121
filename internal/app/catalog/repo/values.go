package repo

import (
	"math/big"
	"time"

	"cloud.google.com/go/spanner"

	"github.com/murkotick/financial-catalog-service/internal/app/catalog/domain"
)

// nullableString stores empty optional text as NULL.
func nullableString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func nullableTime(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return t.UTC()
}

func nullableInt64(v *int64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

// moneyColumns splits an optional amount into its numerator and denominator
// column values.
func moneyColumns(m *domain.Money) (interface{}, interface{}) {
	if m == nil {
		return nil, nil
	}
	return m.Numerator(), m.Denominator()
}

// numericScale is 10^9, the scale of Spanner NUMERIC.
var numericScale = big.NewInt(1_000_000_000)

// numeric rounds to the NUMERIC scale of nine decimals. Only a nil value is
// stored as NULL.
func numeric(r *big.Rat) spanner.NullNumeric {
	if r == nil {
		return spanner.NullNumeric{}
	}
	return spanner.NullNumeric{Numeric: *roundNumeric(r), Valid: true}
}

// roundNumeric rounds half away from zero, like big.Rat.FloatString.
func roundNumeric(r *big.Rat) *big.Rat {
	scaled := new(big.Rat).Mul(r, new(big.Rat).SetInt(numericScale))
	q, rem := new(big.Int).QuoRem(scaled.Num(), scaled.Denom(), new(big.Int))
	rem.Abs(rem).Lsh(rem, 1)
	if rem.Cmp(scaled.Denom()) >= 0 {
		if scaled.Sign() < 0 {
			q.Sub(q, big.NewInt(1))
		} else {
			q.Add(q, big.NewInt(1))
		}
	}
	return new(big.Rat).SetFrac(q, numericScale)
}

func rateNumeric(r *domain.Rate) spanner.NullNumeric {
	if r == nil {
		return spanner.NullNumeric{}
	}
	return numeric(r.Percent())
}
