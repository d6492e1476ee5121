package manage_documents

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/murkotick/financial-catalog-service/internal/app/catalog/domain"
	"github.com/murkotick/financial-catalog-service/internal/app/catalog/fakes"
	"github.com/murkotick/financial-catalog-service/internal/app/catalog/repo"
)

func TestCRUD(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	h := fakes.NewHarness(now)
	p, err := domain.NewProduct("prod-1", domain.ProductDetails{
		Code: "mortgage", Name: "Mortgage", ProductType: "loan", Category: "retail", Currency: "USD",
	}, now)
	require.NoError(t, err)
	h.ReadModel.Products[p.ID()] = p
	it := NewInteractor(repo.NewDocumentRepo(), h.ReadModel, h.Writer)
	ctx := context.Background()

	d, err := it.Create(ctx, "prod-1", domain.DocumentInput{DocumentType: "proof_of_income", Mandatory: true})
	require.NoError(t, err)
	h.ReadModel.Documents[d.ID()] = d

	optional := false
	got, err := it.Update(ctx, "prod-1", d.ID(), domain.DocumentPatch{Mandatory: &optional})
	require.NoError(t, err)
	assert.False(t, got.Mandatory())

	require.NoError(t, it.Delete(ctx, "prod-1", d.ID()))
	assert.Equal(t, []string{
		"document_requirement.created", "document_requirement.updated", "document_requirement.deleted",
	}, h.Outbox.EventTypes())

	_, err = it.Create(ctx, "missing", domain.DocumentInput{DocumentType: "id"})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}
