package domain

import (
	"strings"
	"time"

	"golang.org/x/text/language"
)

const FieldLocale = "locale"

type LocalizationInput struct {
	Locale      string
	Name        string
	Description string
}

type LocalizationPatch struct {
	Name        *string
	Description *string
}

// Localization holds the translated name and description of a product.
type Localization struct {
	id          string
	productID   string
	locale      string
	name        string
	description string
	createdAt   time.Time
	updatedAt   time.Time
	eventLog
}

func NewLocalization(id, productID string, in LocalizationInput, now time.Time) (*Localization, error) {
	locale, err := NormalizeLocale(in.Locale)
	if err != nil {
		return nil, err
	}
	if err := validateProductName(in.Name); err != nil {
		return nil, err
	}
	if err := validateDescription(in.Description); err != nil {
		return nil, err
	}

	l := &Localization{
		id:          id,
		productID:   productID,
		locale:      locale,
		name:        strings.TrimSpace(in.Name),
		description: strings.TrimSpace(in.Description),
		createdAt:   now,
		updatedAt:   now,
		eventLog:    newEventLog(),
	}
	l.record(newEntityEvent(EntityLocalization, ActionCreated, productID, id, map[string]any{
		"locale": locale,
	}, now))
	return l, nil
}

func ReconstructLocalization(id, productID, locale, name, description string, createdAt, updatedAt time.Time) *Localization {
	return &Localization{
		id:          id,
		productID:   productID,
		locale:      locale,
		name:        name,
		description: description,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
		eventLog:    newEventLog(),
	}
}

func (l *Localization) ID() string           { return l.id }
func (l *Localization) ProductID() string    { return l.productID }
func (l *Localization) Locale() string       { return l.locale }
func (l *Localization) Name() string         { return l.name }
func (l *Localization) Description() string  { return l.description }
func (l *Localization) CreatedAt() time.Time { return l.createdAt }
func (l *Localization) UpdatedAt() time.Time { return l.updatedAt }

// Update changes name and description. The locale is part of the identity
// of a localization and cannot change.
func (l *Localization) Update(patch LocalizationPatch, now time.Time) error {
	changes := make(map[string]any)

	if patch.Name != nil {
		if err := validateProductName(*patch.Name); err != nil {
			return err
		}
		if v := strings.TrimSpace(*patch.Name); v != l.name {
			l.name = v
			l.changes.MarkDirty(FieldName)
			changes[FieldName] = v
		}
	}
	if patch.Description != nil {
		if err := validateDescription(*patch.Description); err != nil {
			return err
		}
		if v := strings.TrimSpace(*patch.Description); v != l.description {
			l.description = v
			l.changes.MarkDirty(FieldDescription)
			changes[FieldDescription] = v
		}
	}

	if len(changes) > 0 {
		l.updatedAt = now
		l.record(newEntityEvent(EntityLocalization, ActionUpdated, l.productID, l.id, changes, now))
	}
	return nil
}

// NormalizeLocale parses a BCP 47 tag and returns its canonical form,
// so "en_us" and "EN-US" both become "en-US".
func NormalizeLocale(s string) (string, error) {
	v := strings.TrimSpace(s)
	if v == "" {
		return "", RequiredError("locale")
	}
	tag, err := language.Parse(strings.ReplaceAll(v, "_", "-"))
	if err != nil {
		return "", ErrInvalidLocale
	}
	return tag.String(), nil
}
