package domain

import (
	"fmt"
	"math/big"
	"strings"
	"time"
)

const (
	FieldFeeType     = "fee_type"
	FieldFrequency   = "frequency"
	FieldAttribute   = "attribute"
	FieldOperator    = "operator"
	FieldValue       = "value"
	FieldAction      = "action"
	FieldActionValue = "action_value"
	FieldPriority    = "priority"
)

// FeeStructure groups the fee components charged for a product over a window.
type FeeStructure struct {
	id          string
	productID   string
	name        string
	description string
	period      Period
	createdAt   time.Time
	updatedAt   time.Time
	eventLog
}

type FeeStructureInput struct {
	Name          string
	Description   string
	EffectiveFrom time.Time
	EffectiveTo   *time.Time
}

type FeeStructurePatch struct {
	Name             *string
	Description      *string
	EffectiveFrom    *time.Time
	EffectiveTo      *time.Time
	ClearEffectiveTo bool
}

func NewFeeStructure(id, productID string, in FeeStructureInput, now time.Time) (*FeeStructure, error) {
	name, err := requiredText("name", in.Name, 255)
	if err != nil {
		return nil, err
	}
	desc, err := optionalText("description", in.Description, 4000)
	if err != nil {
		return nil, err
	}
	period, err := NewPeriod(in.EffectiveFrom, in.EffectiveTo)
	if err != nil {
		return nil, err
	}

	fs := &FeeStructure{
		id:          id,
		productID:   productID,
		name:        name,
		description: desc,
		period:      period,
		createdAt:   now,
		updatedAt:   now,
		eventLog:    newEventLog(),
	}
	fs.record(newEntityEvent(EntityFeeStructure, ActionCreated, productID, id, map[string]any{
		"name": name,
	}, now))
	return fs, nil
}

func ReconstructFeeStructure(id, productID, name, description string, period Period, createdAt, updatedAt time.Time) *FeeStructure {
	return &FeeStructure{
		id:          id,
		productID:   productID,
		name:        name,
		description: description,
		period:      period,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
		eventLog:    newEventLog(),
	}
}

func (fs *FeeStructure) ID() string           { return fs.id }
func (fs *FeeStructure) ProductID() string    { return fs.productID }
func (fs *FeeStructure) Name() string         { return fs.name }
func (fs *FeeStructure) Description() string  { return fs.description }
func (fs *FeeStructure) Period() Period       { return fs.period }
func (fs *FeeStructure) CreatedAt() time.Time { return fs.createdAt }
func (fs *FeeStructure) UpdatedAt() time.Time { return fs.updatedAt }

func (fs *FeeStructure) Update(patch FeeStructurePatch, now time.Time) error {
	changes := make(map[string]any)

	if patch.Name != nil {
		v, err := requiredText("name", *patch.Name, 255)
		if err != nil {
			return err
		}
		if v != fs.name {
			fs.name = v
			fs.changes.MarkDirty(FieldName)
			changes[FieldName] = v
		}
	}
	if patch.Description != nil {
		v, err := optionalText("description", *patch.Description, 4000)
		if err != nil {
			return err
		}
		if v != fs.description {
			fs.description = v
			fs.changes.MarkDirty(FieldDescription)
			changes[FieldDescription] = v
		}
	}
	if period, changed, err := patchPeriod(fs.period, patch.EffectiveFrom, patch.EffectiveTo, patch.ClearEffectiveTo); err != nil {
		return err
	} else if changed {
		fs.period = period
		fs.changes.MarkDirty(FieldEffectiveFrom, FieldEffectiveTo)
		changes[FieldEffectiveFrom] = period.From
		changes[FieldEffectiveTo] = period.To
	}

	if len(changes) > 0 {
		fs.updatedAt = now
		fs.record(newEntityEvent(EntityFeeStructure, ActionUpdated, fs.productID, fs.id, changes, now))
	}
	return nil
}

// FeeType tells how a component amount is computed.
type FeeType string

const (
	FeeTypeFlat       FeeType = "flat"
	FeeTypePercentage FeeType = "percentage"
)

func ParseFeeType(s string) (FeeType, error) {
	switch t := FeeType(strings.ToLower(strings.TrimSpace(s))); t {
	case FeeTypeFlat, FeeTypePercentage:
		return t, nil
	case "":
		return "", RequiredError("fee_type")
	}
	return "", InvalidError("fee_type", "must be flat or percentage")
}

type FeeFrequency string

const (
	FeeFrequencyOneTime        FeeFrequency = "one_time"
	FeeFrequencyPerTransaction FeeFrequency = "per_transaction"
	FeeFrequencyMonthly        FeeFrequency = "monthly"
	FeeFrequencyQuarterly      FeeFrequency = "quarterly"
	FeeFrequencyYearly         FeeFrequency = "yearly"
)

func ParseFeeFrequency(s string) (FeeFrequency, error) {
	switch f := FeeFrequency(strings.ToLower(strings.TrimSpace(s))); f {
	case FeeFrequencyOneTime, FeeFrequencyPerTransaction, FeeFrequencyMonthly,
		FeeFrequencyQuarterly, FeeFrequencyYearly:
		return f, nil
	case "":
		return "", RequiredError("frequency")
	}
	return "", InvalidError("frequency", "is unknown")
}

// FeeComponent is a single charge inside a fee structure.
type FeeComponent struct {
	id             string
	productID      string
	feeStructureID string
	name           string
	feeType        FeeType
	amount         *Money
	rate           *Rate
	frequency      FeeFrequency
	createdAt      time.Time
	updatedAt      time.Time
	eventLog
}

type FeeComponentInput struct {
	Name      string
	FeeType   string
	Amount    *Money
	Rate      *Rate
	Frequency string
}

type FeeComponentPatch struct {
	Name      *string
	Amount    *Money
	Rate      *Rate
	Frequency *string
}

func NewFeeComponent(id, productID, feeStructureID string, in FeeComponentInput, now time.Time) (*FeeComponent, error) {
	name, err := requiredText("name", in.Name, 255)
	if err != nil {
		return nil, err
	}
	ft, err := ParseFeeType(in.FeeType)
	if err != nil {
		return nil, err
	}
	if err := validateFeeValue(ft, in.Amount, in.Rate); err != nil {
		return nil, err
	}
	freq, err := ParseFeeFrequency(in.Frequency)
	if err != nil {
		return nil, err
	}

	c := &FeeComponent{
		id:             id,
		productID:      productID,
		feeStructureID: feeStructureID,
		name:           name,
		feeType:        ft,
		amount:         in.Amount,
		rate:           in.Rate,
		frequency:      freq,
		createdAt:      now,
		updatedAt:      now,
		eventLog:       newEventLog(),
	}
	c.record(newEntityEvent(EntityFeeComponent, ActionCreated, productID, id, map[string]any{
		"fee_structure_id": feeStructureID,
		"name":             name,
		"fee_type":         string(ft),
		"frequency":        string(freq),
	}, now))
	return c, nil
}

func ReconstructFeeComponent(id, productID, feeStructureID, name string, feeType FeeType, amount *Money, rate *Rate, frequency FeeFrequency, createdAt, updatedAt time.Time) *FeeComponent {
	return &FeeComponent{
		id:             id,
		productID:      productID,
		feeStructureID: feeStructureID,
		name:           name,
		feeType:        feeType,
		amount:         amount,
		rate:           rate,
		frequency:      frequency,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
		eventLog:       newEventLog(),
	}
}

func (c *FeeComponent) ID() string              { return c.id }
func (c *FeeComponent) ProductID() string       { return c.productID }
func (c *FeeComponent) FeeStructureID() string  { return c.feeStructureID }
func (c *FeeComponent) Name() string            { return c.name }
func (c *FeeComponent) FeeType() FeeType        { return c.feeType }
func (c *FeeComponent) Amount() *Money          { return c.amount }
func (c *FeeComponent) Rate() *Rate             { return c.rate }
func (c *FeeComponent) Frequency() FeeFrequency { return c.frequency }
func (c *FeeComponent) CreatedAt() time.Time    { return c.createdAt }
func (c *FeeComponent) UpdatedAt() time.Time    { return c.updatedAt }

// Update applies a partial update. The fee type never changes.
func (c *FeeComponent) Update(patch FeeComponentPatch, now time.Time) error {
	changes := make(map[string]any)

	if patch.Name != nil {
		v, err := requiredText("name", *patch.Name, 255)
		if err != nil {
			return err
		}
		if v != c.name {
			c.name = v
			c.changes.MarkDirty(FieldName)
			changes[FieldName] = v
		}
	}

	amount, rate := c.amount, c.rate
	if patch.Amount != nil {
		amount = patch.Amount
	}
	if patch.Rate != nil {
		rate = patch.Rate
	}
	if patch.Amount != nil || patch.Rate != nil {
		if err := validateFeeValue(c.feeType, amount, rate); err != nil {
			return err
		}
	}
	if patch.Amount != nil && !moneyPtrEqual(patch.Amount, c.amount) {
		c.amount = patch.Amount
		c.changes.MarkDirty(FieldAmount)
		changes[FieldAmount] = patch.Amount.String()
	}
	if patch.Rate != nil && (c.rate == nil || !patch.Rate.Equals(c.rate)) {
		c.rate = patch.Rate
		c.changes.MarkDirty(FieldRate)
		changes[FieldRate] = patch.Rate.String()
	}

	if patch.Frequency != nil {
		f, err := ParseFeeFrequency(*patch.Frequency)
		if err != nil {
			return err
		}
		if f != c.frequency {
			c.frequency = f
			c.changes.MarkDirty(FieldFrequency)
			changes[FieldFrequency] = string(f)
		}
	}

	if len(changes) > 0 {
		c.updatedAt = now
		c.record(newEntityEvent(EntityFeeComponent, ActionUpdated, c.productID, c.id, changes, now))
	}
	return nil
}

// BaseAmount is the fee before rules: the flat amount, or the rate applied
// to the transaction amount for percentage fees. A percentage fee without a
// transaction amount is zero.
func (c *FeeComponent) BaseAmount(transactionAmount *Money) *Money {
	switch c.feeType {
	case FeeTypeFlat:
		if c.amount != nil {
			return c.amount
		}
	case FeeTypePercentage:
		if c.rate != nil && transactionAmount != nil {
			return c.rate.Of(transactionAmount)
		}
	}
	return Zero()
}

func validateFeeValue(ft FeeType, amount *Money, rate *Rate) error {
	switch ft {
	case FeeTypeFlat:
		if rate != nil {
			return InvalidError("rate", "is not allowed for flat fees")
		}
		if amount == nil {
			return RequiredError("amount")
		}
		return validateNonNegativeAmount("amount", amount)
	case FeeTypePercentage:
		if amount != nil {
			return InvalidError("amount", "is not allowed for percentage fees")
		}
		return validatePercentage("rate", rate)
	}
	return InvalidError("fee_type", "is unknown")
}

// RuleOperator compares a request attribute with a rule value.
type RuleOperator string

const (
	OperatorEq  RuleOperator = "eq"
	OperatorNe  RuleOperator = "ne"
	OperatorGt  RuleOperator = "gt"
	OperatorGte RuleOperator = "gte"
	OperatorLt  RuleOperator = "lt"
	OperatorLte RuleOperator = "lte"
)

func ParseRuleOperator(s string) (RuleOperator, error) {
	switch op := RuleOperator(strings.ToLower(strings.TrimSpace(s))); op {
	case OperatorEq, OperatorNe, OperatorGt, OperatorGte, OperatorLt, OperatorLte:
		return op, nil
	case "":
		return "", RequiredError("operator")
	}
	return "", InvalidError("operator", "must be one of eq, ne, gt, gte, lt, lte")
}

// RuleAction is what a matching rule does to the component amount.
type RuleAction string

const (
	RuleActionWaive    RuleAction = "waive"
	RuleActionDiscount RuleAction = "discount"
	RuleActionOverride RuleAction = "override"
)

func ParseRuleAction(s string) (RuleAction, error) {
	switch a := RuleAction(strings.ToLower(strings.TrimSpace(s))); a {
	case RuleActionWaive, RuleActionDiscount, RuleActionOverride:
		return a, nil
	case "":
		return "", RequiredError("action")
	}
	return "", InvalidError("action", "must be waive, discount or override")
}

// FeeRule conditionally changes a fee component, e.g. "waive the monthly
// fee when balance gte 5000".
type FeeRule struct {
	id             string
	productID      string
	feeStructureID string
	feeComponentID string
	name           string
	attribute      string
	operator       RuleOperator
	value          string
	action         RuleAction
	actionValue    *big.Rat
	priority       int64
	createdAt      time.Time
	updatedAt      time.Time
	eventLog
}

type FeeRuleInput struct {
	Name        string
	Attribute   string
	Operator    string
	Value       string
	Action      string
	ActionValue *big.Rat
	Priority    int64
}

type FeeRulePatch struct {
	Name        *string
	Attribute   *string
	Operator    *string
	Value       *string
	Action      *string
	ActionValue *big.Rat
	Priority    *int64
}

func NewFeeRule(id, productID, feeStructureID, feeComponentID string, in FeeRuleInput, now time.Time) (*FeeRule, error) {
	name, err := requiredText("name", in.Name, 255)
	if err != nil {
		return nil, err
	}
	attr, err := requiredText("attribute", in.Attribute, 100)
	if err != nil {
		return nil, err
	}
	op, err := ParseRuleOperator(in.Operator)
	if err != nil {
		return nil, err
	}
	value, err := requiredText("value", in.Value, 255)
	if err != nil {
		return nil, err
	}
	if err := validateRuleCondition(op, value); err != nil {
		return nil, err
	}
	action, err := ParseRuleAction(in.Action)
	if err != nil {
		return nil, err
	}
	if err := validateRuleAction(action, in.ActionValue); err != nil {
		return nil, err
	}
	if in.Priority < 0 {
		return nil, InvalidError("priority", "cannot be negative")
	}

	r := &FeeRule{
		id:             id,
		productID:      productID,
		feeStructureID: feeStructureID,
		feeComponentID: feeComponentID,
		name:           name,
		attribute:      attr,
		operator:       op,
		value:          value,
		action:         action,
		actionValue:    actionValueFor(action, in.ActionValue),
		priority:       in.Priority,
		createdAt:      now,
		updatedAt:      now,
		eventLog:       newEventLog(),
	}
	r.record(newEntityEvent(EntityFeeRule, ActionCreated, productID, id, map[string]any{
		"fee_component_id": feeComponentID,
		"condition":        attr + " " + string(op) + " " + value,
		"action":           string(action),
	}, now))
	return r, nil
}

func ReconstructFeeRule(id, productID, feeStructureID, feeComponentID string, in FeeRuleInput, createdAt, updatedAt time.Time) *FeeRule {
	return &FeeRule{
		id:             id,
		productID:      productID,
		feeStructureID: feeStructureID,
		feeComponentID: feeComponentID,
		name:           in.Name,
		attribute:      in.Attribute,
		operator:       RuleOperator(in.Operator),
		value:          in.Value,
		action:         RuleAction(in.Action),
		actionValue:    in.ActionValue,
		priority:       in.Priority,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
		eventLog:       newEventLog(),
	}
}

func (r *FeeRule) ID() string             { return r.id }
func (r *FeeRule) ProductID() string      { return r.productID }
func (r *FeeRule) FeeStructureID() string { return r.feeStructureID }
func (r *FeeRule) FeeComponentID() string { return r.feeComponentID }
func (r *FeeRule) Name() string           { return r.name }
func (r *FeeRule) Attribute() string      { return r.attribute }
func (r *FeeRule) Operator() RuleOperator { return r.operator }
func (r *FeeRule) Value() string          { return r.value }
func (r *FeeRule) Action() RuleAction     { return r.action }
func (r *FeeRule) Priority() int64        { return r.priority }
func (r *FeeRule) CreatedAt() time.Time   { return r.createdAt }
func (r *FeeRule) UpdatedAt() time.Time   { return r.updatedAt }

// ActionValue returns a copy of the discount percent or override amount.
// It is nil for waive rules.
func (r *FeeRule) ActionValue() *big.Rat {
	if r.actionValue == nil {
		return nil
	}
	return new(big.Rat).Set(r.actionValue)
}

func (r *FeeRule) Update(patch FeeRulePatch, now time.Time) error {
	next := *r
	changes := make(map[string]any)

	if patch.Name != nil {
		v, err := requiredText("name", *patch.Name, 255)
		if err != nil {
			return err
		}
		if v != r.name {
			next.name = v
			changes[FieldName] = v
		}
	}
	if patch.Attribute != nil {
		v, err := requiredText("attribute", *patch.Attribute, 100)
		if err != nil {
			return err
		}
		if v != r.attribute {
			next.attribute = v
			changes[FieldAttribute] = v
		}
	}
	if patch.Operator != nil {
		op, err := ParseRuleOperator(*patch.Operator)
		if err != nil {
			return err
		}
		if op != r.operator {
			next.operator = op
			changes[FieldOperator] = string(op)
		}
	}
	if patch.Value != nil {
		v, err := requiredText("value", *patch.Value, 255)
		if err != nil {
			return err
		}
		if v != r.value {
			next.value = v
			changes[FieldValue] = v
		}
	}
	if err := validateRuleCondition(next.operator, next.value); err != nil {
		return err
	}

	if patch.Action != nil {
		a, err := ParseRuleAction(*patch.Action)
		if err != nil {
			return err
		}
		if a != r.action {
			next.action = a
			changes[FieldAction] = string(a)
		}
	}
	if patch.ActionValue != nil {
		next.actionValue = patch.ActionValue
	}
	if err := validateRuleAction(next.action, next.actionValue); err != nil {
		return err
	}
	next.actionValue = actionValueFor(next.action, next.actionValue)
	if !ratPtrEqual(next.actionValue, r.actionValue) {
		changes[FieldActionValue] = ratString(next.actionValue)
	}

	if patch.Priority != nil {
		if *patch.Priority < 0 {
			return InvalidError("priority", "cannot be negative")
		}
		if *patch.Priority != r.priority {
			next.priority = *patch.Priority
			changes[FieldPriority] = next.priority
		}
	}

	if len(changes) == 0 {
		return nil
	}
	r.name, r.attribute, r.operator, r.value = next.name, next.attribute, next.operator, next.value
	r.action, r.actionValue, r.priority = next.action, next.actionValue, next.priority
	for field := range changes {
		r.changes.MarkDirty(field)
	}
	r.updatedAt = now
	r.record(newEntityEvent(EntityFeeRule, ActionUpdated, r.productID, r.id, changes, now))
	return nil
}

// Matches evaluates the condition against request attributes. A missing
// attribute never matches. Both sides are compared as decimals when they
// parse, otherwise as strings, where only eq and ne are meaningful.
func (r *FeeRule) Matches(attrs map[string]string) bool {
	got, ok := attrs[r.attribute]
	if !ok {
		return false
	}
	got = strings.TrimSpace(got)

	lhs, lok := new(big.Rat).SetString(got)
	rhs, rok := new(big.Rat).SetString(r.value)
	if lok && rok {
		c := lhs.Cmp(rhs)
		switch r.operator {
		case OperatorEq:
			return c == 0
		case OperatorNe:
			return c != 0
		case OperatorGt:
			return c > 0
		case OperatorGte:
			return c >= 0
		case OperatorLt:
			return c < 0
		case OperatorLte:
			return c <= 0
		}
		return false
	}

	switch r.operator {
	case OperatorEq:
		return strings.EqualFold(got, r.value)
	case OperatorNe:
		return !strings.EqualFold(got, r.value)
	}
	return false
}

// Apply runs the rule action against a component amount.
func (r *FeeRule) Apply(amount *Money) *Money {
	switch r.action {
	case RuleActionWaive:
		return Zero()
	case RuleActionDiscount:
		return amount.Subtract(NewRateFromRat(r.actionValue).Of(amount))
	case RuleActionOverride:
		return NewMoneyFromRat(r.actionValue)
	}
	return amount
}

// ordering comparisons need a number on the rule side.
func validateRuleCondition(op RuleOperator, value string) error {
	switch op {
	case OperatorGt, OperatorGte, OperatorLt, OperatorLte:
		if _, ok := new(big.Rat).SetString(strings.TrimSpace(value)); !ok {
			return ErrInvalidRuleCondition
		}
	}
	return nil
}

func validateRuleAction(a RuleAction, v *big.Rat) error {
	switch a {
	case RuleActionWaive:
		return nil
	case RuleActionDiscount:
		if v == nil {
			return RequiredError("action_value")
		}
		if v.Sign() < 0 || v.Cmp(big.NewRat(100, 1)) > 0 {
			return InvalidError("action_value", "must be between 0 and 100 for discount rules")
		}
	case RuleActionOverride:
		if v == nil {
			return RequiredError("action_value")
		}
		if v.Sign() < 0 {
			return fmt.Errorf("action_value: %w", ErrNegativeAmount)
		}
	}
	return nil
}

// waive rules carry no value.
func actionValueFor(a RuleAction, v *big.Rat) *big.Rat {
	if a == RuleActionWaive || v == nil {
		return nil
	}
	return new(big.Rat).Set(v)
}

func ratPtrEqual(a, b *big.Rat) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Cmp(b) == 0
}

func ratString(v *big.Rat) any {
	if v == nil {
		return nil
	}
	return NewRateFromRat(v).String()
}
