package domain

import "time"

const (
	FieldDocumentType = "document_type"
	FieldMandatory    = "mandatory"
	FieldValidityDays = "validity_days"
)

type DocumentInput struct {
	DocumentType string
	Description  string
	Mandatory    bool
	ValidityDays *int64
}

type DocumentPatch struct {
	DocumentType      *string
	Description       *string
	Mandatory         *bool
	ValidityDays      *int64
	ClearValidityDays bool
}

// DocumentRequirement is a document a customer must provide for a product.
type DocumentRequirement struct {
	id           string
	productID    string
	documentType string
	description  string
	mandatory    bool
	validityDays *int64
	createdAt    time.Time
	updatedAt    time.Time
	eventLog
}

func NewDocumentRequirement(id, productID string, in DocumentInput, now time.Time) (*DocumentRequirement, error) {
	docType, err := requiredText("document_type", in.DocumentType, 64)
	if err != nil {
		return nil, err
	}
	desc, err := optionalText("description", in.Description, 1000)
	if err != nil {
		return nil, err
	}
	if in.ValidityDays != nil && *in.ValidityDays <= 0 {
		return nil, ErrInvalidValidityDays
	}

	d := &DocumentRequirement{
		id:           id,
		productID:    productID,
		documentType: docType,
		description:  desc,
		mandatory:    in.Mandatory,
		validityDays: in.ValidityDays,
		createdAt:    now,
		updatedAt:    now,
		eventLog:     newEventLog(),
	}
	d.record(newEntityEvent(EntityDocument, ActionCreated, productID, id, map[string]any{
		"document_type": docType,
		"mandatory":     in.Mandatory,
	}, now))
	return d, nil
}

func ReconstructDocumentRequirement(id, productID, documentType, description string, mandatory bool, validityDays *int64, createdAt, updatedAt time.Time) *DocumentRequirement {
	return &DocumentRequirement{
		id:           id,
		productID:    productID,
		documentType: documentType,
		description:  description,
		mandatory:    mandatory,
		validityDays: validityDays,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
		eventLog:     newEventLog(),
	}
}

func (d *DocumentRequirement) ID() string           { return d.id }
func (d *DocumentRequirement) ProductID() string    { return d.productID }
func (d *DocumentRequirement) DocumentType() string { return d.documentType }
func (d *DocumentRequirement) Description() string  { return d.description }
func (d *DocumentRequirement) Mandatory() bool      { return d.mandatory }
func (d *DocumentRequirement) ValidityDays() *int64 { return d.validityDays }
func (d *DocumentRequirement) CreatedAt() time.Time { return d.createdAt }
func (d *DocumentRequirement) UpdatedAt() time.Time { return d.updatedAt }

func (d *DocumentRequirement) Update(patch DocumentPatch, now time.Time) error {
	changes := make(map[string]any)

	if patch.DocumentType != nil {
		v, err := requiredText("document_type", *patch.DocumentType, 64)
		if err != nil {
			return err
		}
		if v != d.documentType {
			d.documentType = v
			d.changes.MarkDirty(FieldDocumentType)
			changes[FieldDocumentType] = v
		}
	}
	if patch.Description != nil {
		v, err := optionalText("description", *patch.Description, 1000)
		if err != nil {
			return err
		}
		if v != d.description {
			d.description = v
			d.changes.MarkDirty(FieldDescription)
			changes[FieldDescription] = v
		}
	}
	if patch.Mandatory != nil && *patch.Mandatory != d.mandatory {
		d.mandatory = *patch.Mandatory
		d.changes.MarkDirty(FieldMandatory)
		changes[FieldMandatory] = d.mandatory
	}

	validity := d.validityDays
	if patch.ClearValidityDays {
		validity = nil
	}
	if patch.ValidityDays != nil {
		if *patch.ValidityDays <= 0 {
			return ErrInvalidValidityDays
		}
		validity = patch.ValidityDays
	}
	if !int64PtrEqual(validity, d.validityDays) {
		d.validityDays = validity
		d.changes.MarkDirty(FieldValidityDays)
		changes[FieldValidityDays] = validity
	}

	if len(changes) > 0 {
		d.updatedAt = now
		d.record(newEntityEvent(EntityDocument, ActionUpdated, d.productID, d.id, changes, now))
	}
	return nil
}
