package queries

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"

	"github.com/murkotick/financial-catalog-service/internal/app/catalog/contracts"
	"github.com/murkotick/financial-catalog-service/internal/app/catalog/domain"
	"github.com/murkotick/financial-catalog-service/internal/models/m_bundle"
	"github.com/murkotick/financial-catalog-service/internal/models/m_bundle_item"
	"github.com/murkotick/financial-catalog-service/internal/models/m_document"
	"github.com/murkotick/financial-catalog-service/internal/models/m_fee_component"
	"github.com/murkotick/financial-catalog-service/internal/models/m_fee_rule"
	"github.com/murkotick/financial-catalog-service/internal/models/m_fee_structure"
	"github.com/murkotick/financial-catalog-service/internal/models/m_lifecycle"
	"github.com/murkotick/financial-catalog-service/internal/models/m_limit"
	"github.com/murkotick/financial-catalog-service/internal/models/m_localization"
	"github.com/murkotick/financial-catalog-service/internal/models/m_outbox"
	"github.com/murkotick/financial-catalog-service/internal/models/m_pricing"
	"github.com/murkotick/financial-catalog-service/internal/models/m_product"
)

// SpannerReadModel is the infrastructure adapter that satisfies contracts.ReadModel.
// Every read runs in a single-use read-only transaction.
type SpannerReadModel struct {
	client *spanner.Client
}

var _ contracts.ReadModel = (*SpannerReadModel)(nil)

func NewSpannerReadModel(client *spanner.Client) *SpannerReadModel {
	return &SpannerReadModel{client: client}
}

// queryRows runs stmt and decodes every row into T with ToStruct.
func queryRows[T any](ctx context.Context, client *spanner.Client, stmt spanner.Statement) ([]T, error) {
	iter := client.Single().Query(ctx, stmt)
	defer iter.Stop()

	var out []T
	for {
		row, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		var v T
		if err := row.ToStruct(&v); err != nil {
			return nil, fmt.Errorf("decode row: %w", err)
		}
		out = append(out, v)
	}
}

// queryOne returns the first row or notFound when there is none.
func queryOne[T any](ctx context.Context, client *spanner.Client, stmt spanner.Statement, notFound error) (T, error) {
	var zero T
	rows, err := queryRows[T](ctx, client, stmt)
	if err != nil {
		return zero, err
	}
	if len(rows) == 0 {
		return zero, notFound
	}
	return rows[0], nil
}

// Products

func (rm *SpannerReadModel) GetProduct(ctx context.Context, productID string) (*domain.Product, error) {
	stmt := spanner.Statement{
		SQL:    `SELECT ` + m_product.Columns + ` FROM ` + m_product.TableName + ` WHERE product_id = @id`,
		Params: map[string]interface{}{"id": productID},
	}
	row, err := queryOne[m_product.Row](ctx, rm.client, stmt, domain.ErrProductNotFound)
	if err != nil {
		return nil, err
	}
	return productFromRow(row), nil
}

func (rm *SpannerReadModel) ListProducts(ctx context.Context, f contracts.ProductFilter, limit, offset int) ([]*domain.Product, error) {
	sql := `SELECT ` + m_product.Columns + ` FROM ` + m_product.TableName + ` WHERE TRUE`
	params := map[string]interface{}{}
	if f.Status != "" {
		sql += " AND status = @status"
		params["status"] = f.Status
	}
	if f.Category != "" {
		sql += " AND category = @category"
		params["category"] = f.Category
	}
	if f.ProductType != "" {
		sql += " AND product_type = @product_type"
		params["product_type"] = f.ProductType
	}
	sql += " ORDER BY name ASC, product_id ASC LIMIT @limit OFFSET @offset"
	params["limit"] = int64(limit)
	params["offset"] = int64(offset)

	rows, err := queryRows[m_product.Row](ctx, rm.client, spanner.Statement{SQL: sql, Params: params})
	if err != nil {
		return nil, err
	}
	out := make([]*domain.Product, 0, len(rows))
	for _, r := range rows {
		out = append(out, productFromRow(r))
	}
	return out, nil
}

// Pricing

func (rm *SpannerReadModel) GetPricing(ctx context.Context, productID, pricingID string) (*domain.Pricing, error) {
	stmt := spanner.Statement{
		SQL:    `SELECT ` + m_pricing.Columns + ` FROM ` + m_pricing.TableName + ` WHERE product_id = @pid AND pricing_id = @id`,
		Params: map[string]interface{}{"pid": productID, "id": pricingID},
	}
	row, err := queryOne[m_pricing.Row](ctx, rm.client, stmt, domain.ErrPricingNotFound)
	if err != nil {
		return nil, err
	}
	return pricingFromRow(row)
}

func (rm *SpannerReadModel) ListPricing(ctx context.Context, productID string) ([]*domain.Pricing, error) {
	rows, err := queryRows[m_pricing.Row](ctx, rm.client, spanner.Statement{
		SQL:    `SELECT ` + m_pricing.Columns + ` FROM ` + m_pricing.TableName + ` WHERE product_id = @pid ORDER BY effective_from, pricing_id`,
		Params: map[string]interface{}{"pid": productID},
	})
	if err != nil {
		return nil, err
	}
	out := make([]*domain.Pricing, 0, len(rows))
	for _, r := range rows {
		p, err := pricingFromRow(r)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// Lifecycle

func (rm *SpannerReadModel) GetLifecycleEntry(ctx context.Context, productID, lifecycleID string) (*domain.LifecycleEntry, error) {
	stmt := spanner.Statement{
		SQL:    `SELECT ` + m_lifecycle.Columns + ` FROM ` + m_lifecycle.TableName + ` WHERE product_id = @pid AND lifecycle_id = @id`,
		Params: map[string]interface{}{"pid": productID, "id": lifecycleID},
	}
	row, err := queryOne[m_lifecycle.Row](ctx, rm.client, stmt, domain.ErrLifecycleNotFound)
	if err != nil {
		return nil, err
	}
	return lifecycleFromRow(row), nil
}

func (rm *SpannerReadModel) ListLifecycleEntries(ctx context.Context, productID string) ([]*domain.LifecycleEntry, error) {
	rows, err := queryRows[m_lifecycle.Row](ctx, rm.client, spanner.Statement{
		SQL:    `SELECT ` + m_lifecycle.Columns + ` FROM ` + m_lifecycle.TableName + ` WHERE product_id = @pid ORDER BY effective_from, lifecycle_id`,
		Params: map[string]interface{}{"pid": productID},
	})
	if err != nil {
		return nil, err
	}
	out := make([]*domain.LifecycleEntry, 0, len(rows))
	for _, r := range rows {
		out = append(out, lifecycleFromRow(r))
	}
	return out, nil
}

// Limits

func (rm *SpannerReadModel) GetLimit(ctx context.Context, productID, limitID string) (*domain.Limit, error) {
	stmt := spanner.Statement{
		SQL:    `SELECT ` + m_limit.Columns + ` FROM ` + m_limit.TableName + ` WHERE product_id = @pid AND limit_id = @id`,
		Params: map[string]interface{}{"pid": productID, "id": limitID},
	}
	row, err := queryOne[m_limit.Row](ctx, rm.client, stmt, domain.ErrLimitNotFound)
	if err != nil {
		return nil, err
	}
	return limitFromRow(row)
}

func (rm *SpannerReadModel) ListLimits(ctx context.Context, productID string) ([]*domain.Limit, error) {
	rows, err := queryRows[m_limit.Row](ctx, rm.client, spanner.Statement{
		SQL:    `SELECT ` + m_limit.Columns + ` FROM ` + m_limit.TableName + ` WHERE product_id = @pid ORDER BY limit_type, period, limit_id`,
		Params: map[string]interface{}{"pid": productID},
	})
	if err != nil {
		return nil, err
	}
	out := make([]*domain.Limit, 0, len(rows))
	for _, r := range rows {
		l, err := limitFromRow(r)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, nil
}

// Documents

func (rm *SpannerReadModel) GetDocumentRequirement(ctx context.Context, productID, documentID string) (*domain.DocumentRequirement, error) {
	stmt := spanner.Statement{
		SQL:    `SELECT ` + m_document.Columns + ` FROM ` + m_document.TableName + ` WHERE product_id = @pid AND document_id = @id`,
		Params: map[string]interface{}{"pid": productID, "id": documentID},
	}
	row, err := queryOne[m_document.Row](ctx, rm.client, stmt, domain.ErrDocumentNotFound)
	if err != nil {
		return nil, err
	}
	return documentFromRow(row), nil
}

func (rm *SpannerReadModel) ListDocumentRequirements(ctx context.Context, productID string) ([]*domain.DocumentRequirement, error) {
	rows, err := queryRows[m_document.Row](ctx, rm.client, spanner.Statement{
		SQL:    `SELECT ` + m_document.Columns + ` FROM ` + m_document.TableName + ` WHERE product_id = @pid ORDER BY document_type`,
		Params: map[string]interface{}{"pid": productID},
	})
	if err != nil {
		return nil, err
	}
	out := make([]*domain.DocumentRequirement, 0, len(rows))
	for _, r := range rows {
		out = append(out, documentFromRow(r))
	}
	return out, nil
}

// Localizations

func (rm *SpannerReadModel) GetLocalization(ctx context.Context, productID, localizationID string) (*domain.Localization, error) {
	stmt := spanner.Statement{
		SQL:    `SELECT ` + m_localization.Columns + ` FROM ` + m_localization.TableName + ` WHERE product_id = @pid AND localization_id = @id`,
		Params: map[string]interface{}{"pid": productID, "id": localizationID},
	}
	row, err := queryOne[m_localization.Row](ctx, rm.client, stmt, domain.ErrLocalizationNotFound)
	if err != nil {
		return nil, err
	}
	return localizationFromRow(row), nil
}

func (rm *SpannerReadModel) ListLocalizations(ctx context.Context, productID string) ([]*domain.Localization, error) {
	rows, err := queryRows[m_localization.Row](ctx, rm.client, spanner.Statement{
		SQL:    `SELECT ` + m_localization.Columns + ` FROM ` + m_localization.TableName + ` WHERE product_id = @pid ORDER BY locale`,
		Params: map[string]interface{}{"pid": productID},
	})
	if err != nil {
		return nil, err
	}
	out := make([]*domain.Localization, 0, len(rows))
	for _, r := range rows {
		out = append(out, localizationFromRow(r))
	}
	return out, nil
}

func (rm *SpannerReadModel) FindLocalization(ctx context.Context, productID, locale string) (*domain.Localization, error) {
	stmt := spanner.Statement{
		SQL: `SELECT ` + m_localization.Columns + ` FROM ` + m_localization.TableName +
			`@{FORCE_INDEX=` + m_localization.LocaleIndex + `} WHERE product_id = @pid AND locale = @locale`,
		Params: map[string]interface{}{"pid": productID, "locale": locale},
	}
	rows, err := queryRows[m_localization.Row](ctx, rm.client, stmt)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return localizationFromRow(rows[0]), nil
}

// Fees

func (rm *SpannerReadModel) GetFeeStructure(ctx context.Context, productID, feeStructureID string) (*domain.FeeStructure, error) {
	stmt := spanner.Statement{
		SQL:    `SELECT ` + m_fee_structure.Columns + ` FROM ` + m_fee_structure.TableName + ` WHERE product_id = @pid AND fee_structure_id = @id`,
		Params: map[string]interface{}{"pid": productID, "id": feeStructureID},
	}
	row, err := queryOne[m_fee_structure.Row](ctx, rm.client, stmt, domain.ErrFeeStructureNotFound)
	if err != nil {
		return nil, err
	}
	return feeStructureFromRow(row), nil
}

func (rm *SpannerReadModel) ListFeeStructures(ctx context.Context, productID string) ([]*domain.FeeStructure, error) {
	rows, err := queryRows[m_fee_structure.Row](ctx, rm.client, spanner.Statement{
		SQL:    `SELECT ` + m_fee_structure.Columns + ` FROM ` + m_fee_structure.TableName + ` WHERE product_id = @pid ORDER BY effective_from, fee_structure_id`,
		Params: map[string]interface{}{"pid": productID},
	})
	if err != nil {
		return nil, err
	}
	out := make([]*domain.FeeStructure, 0, len(rows))
	for _, r := range rows {
		out = append(out, feeStructureFromRow(r))
	}
	return out, nil
}

func (rm *SpannerReadModel) GetFeeComponent(ctx context.Context, productID, feeStructureID, feeComponentID string) (*domain.FeeComponent, error) {
	stmt := spanner.Statement{
		SQL: `SELECT ` + m_fee_component.Columns + ` FROM ` + m_fee_component.TableName +
			` WHERE product_id = @pid AND fee_structure_id = @fsid AND fee_component_id = @id`,
		Params: map[string]interface{}{"pid": productID, "fsid": feeStructureID, "id": feeComponentID},
	}
	row, err := queryOne[m_fee_component.Row](ctx, rm.client, stmt, domain.ErrFeeComponentNotFound)
	if err != nil {
		return nil, err
	}
	return feeComponentFromRow(row)
}

func (rm *SpannerReadModel) ListFeeComponents(ctx context.Context, productID, feeStructureID string) ([]*domain.FeeComponent, error) {
	return rm.listFeeComponents(ctx, spanner.Statement{
		SQL: `SELECT ` + m_fee_component.Columns + ` FROM ` + m_fee_component.TableName +
			` WHERE product_id = @pid AND fee_structure_id = @fsid ORDER BY name, fee_component_id`,
		Params: map[string]interface{}{"pid": productID, "fsid": feeStructureID},
	})
}

func (rm *SpannerReadModel) ListProductFeeComponents(ctx context.Context, productID string) ([]*domain.FeeComponent, error) {
	return rm.listFeeComponents(ctx, spanner.Statement{
		SQL: `SELECT ` + m_fee_component.Columns + ` FROM ` + m_fee_component.TableName +
			` WHERE product_id = @pid ORDER BY fee_structure_id, name, fee_component_id`,
		Params: map[string]interface{}{"pid": productID},
	})
}

func (rm *SpannerReadModel) listFeeComponents(ctx context.Context, stmt spanner.Statement) ([]*domain.FeeComponent, error) {
	rows, err := queryRows[m_fee_component.Row](ctx, rm.client, stmt)
	if err != nil {
		return nil, err
	}
	out := make([]*domain.FeeComponent, 0, len(rows))
	for _, r := range rows {
		c, err := feeComponentFromRow(r)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func (rm *SpannerReadModel) GetFeeRule(ctx context.Context, productID, feeStructureID, feeComponentID, feeRuleID string) (*domain.FeeRule, error) {
	stmt := spanner.Statement{
		SQL: `SELECT ` + m_fee_rule.Columns + ` FROM ` + m_fee_rule.TableName +
			` WHERE product_id = @pid AND fee_structure_id = @fsid AND fee_component_id = @fcid AND fee_rule_id = @id`,
		Params: map[string]interface{}{"pid": productID, "fsid": feeStructureID, "fcid": feeComponentID, "id": feeRuleID},
	}
	row, err := queryOne[m_fee_rule.Row](ctx, rm.client, stmt, domain.ErrFeeRuleNotFound)
	if err != nil {
		return nil, err
	}
	return feeRuleFromRow(row), nil
}

func (rm *SpannerReadModel) ListFeeRules(ctx context.Context, productID, feeStructureID, feeComponentID string) ([]*domain.FeeRule, error) {
	return rm.listFeeRules(ctx, spanner.Statement{
		SQL: `SELECT ` + m_fee_rule.Columns + ` FROM ` + m_fee_rule.TableName +
			` WHERE product_id = @pid AND fee_structure_id = @fsid AND fee_component_id = @fcid ORDER BY priority, fee_rule_id`,
		Params: map[string]interface{}{"pid": productID, "fsid": feeStructureID, "fcid": feeComponentID},
	})
}

func (rm *SpannerReadModel) ListProductFeeRules(ctx context.Context, productID string) ([]*domain.FeeRule, error) {
	return rm.listFeeRules(ctx, spanner.Statement{
		SQL: `SELECT ` + m_fee_rule.Columns + ` FROM ` + m_fee_rule.TableName +
			` WHERE product_id = @pid ORDER BY fee_component_id, priority, fee_rule_id`,
		Params: map[string]interface{}{"pid": productID},
	})
}

func (rm *SpannerReadModel) listFeeRules(ctx context.Context, stmt spanner.Statement) ([]*domain.FeeRule, error) {
	rows, err := queryRows[m_fee_rule.Row](ctx, rm.client, stmt)
	if err != nil {
		return nil, err
	}
	out := make([]*domain.FeeRule, 0, len(rows))
	for _, r := range rows {
		out = append(out, feeRuleFromRow(r))
	}
	return out, nil
}

// Bundles

func (rm *SpannerReadModel) GetBundle(ctx context.Context, bundleID string) (*domain.Bundle, error) {
	stmt := spanner.Statement{
		SQL:    `SELECT ` + m_bundle.Columns + ` FROM ` + m_bundle.TableName + ` WHERE bundle_id = @id`,
		Params: map[string]interface{}{"id": bundleID},
	}
	row, err := queryOne[m_bundle.Row](ctx, rm.client, stmt, domain.ErrBundleNotFound)
	if err != nil {
		return nil, err
	}
	items, err := rm.bundleItems(ctx, []string{bundleID})
	if err != nil {
		return nil, err
	}
	return bundleFromRows(row, items[bundleID]), nil
}

func (rm *SpannerReadModel) ListBundles(ctx context.Context, status string, limit, offset int) ([]*domain.Bundle, error) {
	sql := `SELECT ` + m_bundle.Columns + ` FROM ` + m_bundle.TableName
	params := map[string]interface{}{"limit": int64(limit), "offset": int64(offset)}
	if status != "" {
		sql += " WHERE status = @status"
		params["status"] = status
	}
	sql += " ORDER BY name ASC, bundle_id ASC LIMIT @limit OFFSET @offset"

	rows, err := queryRows[m_bundle.Row](ctx, rm.client, spanner.Statement{SQL: sql, Params: params})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return []*domain.Bundle{}, nil
	}

	ids := make([]string, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.BundleID)
	}
	items, err := rm.bundleItems(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]*domain.Bundle, 0, len(rows))
	for _, r := range rows {
		out = append(out, bundleFromRows(r, items[r.BundleID]))
	}
	return out, nil
}

// bundleItems loads the items of several bundles in one query, grouped by bundle id.
func (rm *SpannerReadModel) bundleItems(ctx context.Context, bundleIDs []string) (map[string][]m_bundle_item.Row, error) {
	rows, err := queryRows[m_bundle_item.Row](ctx, rm.client, spanner.Statement{
		SQL: `SELECT ` + m_bundle_item.Columns + ` FROM ` + m_bundle_item.TableName +
			` WHERE bundle_id IN UNNEST(@ids) ORDER BY bundle_id, position`,
		Params: map[string]interface{}{"ids": bundleIDs},
	})
	if err != nil {
		return nil, err
	}
	out := make(map[string][]m_bundle_item.Row, len(bundleIDs))
	for _, r := range rows {
		out[r.BundleID] = append(out[r.BundleID], r)
	}
	return out, nil
}

// Outbox

func (rm *SpannerReadModel) ListPendingEvents(ctx context.Context, limit int) ([]*contracts.OutboxEvent, error) {
	rows, err := queryRows[m_outbox.Row](ctx, rm.client, spanner.Statement{
		SQL: `SELECT ` + m_outbox.Columns + ` FROM ` + m_outbox.TableName +
			`@{FORCE_INDEX=` + m_outbox.PendingIndex + `} WHERE status = @status ORDER BY created_at LIMIT @limit`,
		Params: map[string]interface{}{"status": m_outbox.StatusPending, "limit": int64(limit)},
	})
	if err != nil {
		return nil, err
	}
	out := make([]*contracts.OutboxEvent, 0, len(rows))
	for _, r := range rows {
		out = append(out, &contracts.OutboxEvent{
			EventID:      r.EventID,
			EventType:    r.EventType,
			AggregateID:  r.AggregateID,
			PayloadJSON:  r.Payload,
			Status:       r.Status,
			CreatedAtUTC: r.CreatedAt.UTC(),
		})
	}
	return out, nil
}
