package domain

import (
	"strings"
	"time"
)

const (
	FieldLimitType = "limit_type"
	FieldPeriod    = "period"
	FieldMinAmount = "min_amount"
	FieldMaxAmount = "max_amount"
	FieldMaxCount  = "max_count"
)

type LimitType string

const (
	LimitTypeTransactionAmount LimitType = "transaction_amount"
	LimitTypeBalance           LimitType = "balance"
	LimitTypeWithdrawal        LimitType = "withdrawal"
	LimitTypeDeposit           LimitType = "deposit"
	LimitTypeCreditLine        LimitType = "credit_line"
)

func ParseLimitType(s string) (LimitType, error) {
	switch t := LimitType(strings.ToLower(strings.TrimSpace(s))); t {
	case LimitTypeTransactionAmount, LimitTypeBalance, LimitTypeWithdrawal, LimitTypeDeposit, LimitTypeCreditLine:
		return t, nil
	case "":
		return "", RequiredError("limit_type")
	}
	return "", InvalidError("limit_type", "is unknown")
}

// LimitPeriod is the window a limit is measured over.
type LimitPeriod string

const (
	LimitPeriodPerTransaction LimitPeriod = "per_transaction"
	LimitPeriodDaily          LimitPeriod = "daily"
	LimitPeriodWeekly         LimitPeriod = "weekly"
	LimitPeriodMonthly        LimitPeriod = "monthly"
	LimitPeriodYearly         LimitPeriod = "yearly"
	LimitPeriodLifetime       LimitPeriod = "lifetime"
)

func ParseLimitPeriod(s string) (LimitPeriod, error) {
	switch p := LimitPeriod(strings.ToLower(strings.TrimSpace(s))); p {
	case LimitPeriodPerTransaction, LimitPeriodDaily, LimitPeriodWeekly,
		LimitPeriodMonthly, LimitPeriodYearly, LimitPeriodLifetime:
		return p, nil
	case "":
		return "", RequiredError("period")
	}
	return "", InvalidError("period", "is unknown")
}

// LimitInput carries the fields of a new limit.
type LimitInput struct {
	LimitType string
	Period    string
	MinAmount *Money
	MaxAmount *Money
	MaxCount  *int64
}

// LimitPatch is a partial update; the Clear* flags remove a bound.
type LimitPatch struct {
	Period         *string
	MinAmount      *Money
	MaxAmount      *Money
	MaxCount       *int64
	ClearMinAmount bool
	ClearMaxAmount bool
	ClearMaxCount  bool
}

// Limit bounds how a product can be used, e.g. a daily withdrawal cap.
type Limit struct {
	id        string
	productID string
	limitType LimitType
	period    LimitPeriod
	minAmount *Money
	maxAmount *Money
	maxCount  *int64
	createdAt time.Time
	updatedAt time.Time
	eventLog
}

func NewLimit(id, productID string, in LimitInput, now time.Time) (*Limit, error) {
	lt, err := ParseLimitType(in.LimitType)
	if err != nil {
		return nil, err
	}
	lp, err := ParseLimitPeriod(in.Period)
	if err != nil {
		return nil, err
	}
	if err := validateLimitBounds(in.MinAmount, in.MaxAmount, in.MaxCount); err != nil {
		return nil, err
	}

	l := &Limit{
		id:        id,
		productID: productID,
		limitType: lt,
		period:    lp,
		minAmount: in.MinAmount,
		maxAmount: in.MaxAmount,
		maxCount:  in.MaxCount,
		createdAt: now,
		updatedAt: now,
		eventLog:  newEventLog(),
	}
	l.record(newEntityEvent(EntityLimit, ActionCreated, productID, id, map[string]any{
		"limit_type": string(lt),
		"period":     string(lp),
	}, now))
	return l, nil
}

func ReconstructLimit(id, productID string, limitType LimitType, period LimitPeriod, minAmount, maxAmount *Money, maxCount *int64, createdAt, updatedAt time.Time) *Limit {
	return &Limit{
		id:        id,
		productID: productID,
		limitType: limitType,
		period:    period,
		minAmount: minAmount,
		maxAmount: maxAmount,
		maxCount:  maxCount,
		createdAt: createdAt,
		updatedAt: updatedAt,
		eventLog:  newEventLog(),
	}
}

func (l *Limit) ID() string           { return l.id }
func (l *Limit) ProductID() string    { return l.productID }
func (l *Limit) LimitType() LimitType { return l.limitType }
func (l *Limit) Period() LimitPeriod  { return l.period }
func (l *Limit) MinAmount() *Money    { return l.minAmount }
func (l *Limit) MaxAmount() *Money    { return l.maxAmount }
func (l *Limit) MaxCount() *int64     { return l.maxCount }
func (l *Limit) CreatedAt() time.Time { return l.createdAt }
func (l *Limit) UpdatedAt() time.Time { return l.updatedAt }

func (l *Limit) Update(patch LimitPatch, now time.Time) error {
	changes := make(map[string]any)

	if patch.Period != nil {
		lp, err := ParseLimitPeriod(*patch.Period)
		if err != nil {
			return err
		}
		if lp != l.period {
			l.period = lp
			l.changes.MarkDirty(FieldPeriod)
			changes[FieldPeriod] = string(lp)
		}
	}

	minAmount, maxAmount, maxCount := l.minAmount, l.maxAmount, l.maxCount
	if patch.ClearMinAmount {
		minAmount = nil
	}
	if patch.MinAmount != nil {
		minAmount = patch.MinAmount
	}
	if patch.ClearMaxAmount {
		maxAmount = nil
	}
	if patch.MaxAmount != nil {
		maxAmount = patch.MaxAmount
	}
	if patch.ClearMaxCount {
		maxCount = nil
	}
	if patch.MaxCount != nil {
		maxCount = patch.MaxCount
	}
	if err := validateLimitBounds(minAmount, maxAmount, maxCount); err != nil {
		return err
	}

	if !moneyPtrEqual(minAmount, l.minAmount) {
		l.minAmount = minAmount
		l.changes.MarkDirty(FieldMinAmount)
		changes[FieldMinAmount] = moneyString(minAmount)
	}
	if !moneyPtrEqual(maxAmount, l.maxAmount) {
		l.maxAmount = maxAmount
		l.changes.MarkDirty(FieldMaxAmount)
		changes[FieldMaxAmount] = moneyString(maxAmount)
	}
	if !int64PtrEqual(maxCount, l.maxCount) {
		l.maxCount = maxCount
		l.changes.MarkDirty(FieldMaxCount)
		changes[FieldMaxCount] = maxCount
	}

	if len(changes) > 0 {
		l.updatedAt = now
		l.record(newEntityEvent(EntityLimit, ActionUpdated, l.productID, l.id, changes, now))
	}
	return nil
}

func validateLimitBounds(minAmount, maxAmount *Money, maxCount *int64) error {
	if minAmount == nil && maxAmount == nil && maxCount == nil {
		return ErrLimitBoundsMissing
	}
	if err := validateNonNegativeAmount("min_amount", minAmount); err != nil {
		return err
	}
	if err := validateNonNegativeAmount("max_amount", maxAmount); err != nil {
		return err
	}
	if minAmount != nil && maxAmount != nil && minAmount.Cmp(maxAmount) > 0 {
		return ErrLimitBoundsInverted
	}
	if maxCount != nil && *maxCount <= 0 {
		return ErrInvalidMaxCount
	}
	return nil
}

func moneyPtrEqual(a, b *Money) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equals(b)
}

func int64PtrEqual(a, b *int64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func moneyString(m *Money) any {
	if m == nil {
		return nil
	}
	return m.String()
}
