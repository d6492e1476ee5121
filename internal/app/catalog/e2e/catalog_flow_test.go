package e2e

import (
	"context"
	"math/big"
	"testing"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"

	"github.com/murkotick/financial-catalog-service/internal/app/catalog/domain"
	"github.com/murkotick/financial-catalog-service/internal/app/catalog/outbox"
	"github.com/murkotick/financial-catalog-service/internal/app/catalog/queries/get_product"
	"github.com/murkotick/financial-catalog-service/internal/app/catalog/usecases/create_product"
	"github.com/murkotick/financial-catalog-service/internal/app/catalog/usecases/update_product"
)

func newProduct(ctx context.Context, t *testing.T, prefix string) *domain.Product {
	t.Helper()
	p, err := createUC.Execute(ctx, create_product.Request{
		Code:        uniqueCode(prefix),
		Name:        "Everyday Checking",
		ProductType: "account",
		Category:    "retail",
		Currency:    "EUR",
	})
	require.NoError(t, err)
	return p
}

func TestProductCreationFlow(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	p := newProduct(ctx, t, "CHK")

	got, err := getProduct.Execute(ctx, get_product.Query{ProductID: p.ID()})
	require.NoError(t, err)
	assert.Equal(t, p.Code(), got.Code)
	assert.Equal(t, "draft", got.Status)
	assert.Equal(t, "EUR", got.Currency)

	rows := outboxFor(ctx, t, p.ID())
	require.Len(t, rows, 1)
	assert.Equal(t, "product.created", rows[0].EventType)
	assert.Equal(t, "pending", rows[0].Status)
}

func TestDuplicateCodeIsRejectedByIndex(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	p := newProduct(ctx, t, "DUP")
	_, err := createUC.Execute(ctx, create_product.Request{
		Code:        p.Code(),
		Name:        "Copy",
		ProductType: "account",
		Category:    "retail",
		Currency:    "EUR",
	})
	require.Error(t, err)
	assert.Equal(t, codes.AlreadyExists, spanner.ErrCode(err))
}

func TestUpdateAndStatusFlow(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	p := newProduct(ctx, t, "UPD")
	name := "Premium Checking"
	clk.Advance(time.Second)
	_, err := updateUC.Execute(ctx, update_product.Request{ProductID: p.ID(), Name: &name})
	require.NoError(t, err)
	clk.Advance(time.Second)
	_, err = statusUC.Activate(ctx, p.ID())
	require.NoError(t, err)

	_, err = statusUC.Archive(ctx, p.ID())
	assert.ErrorIs(t, err, domain.ErrCannotArchiveActiveProduct)

	got, err := getProduct.Execute(ctx, get_product.Query{ProductID: p.ID()})
	require.NoError(t, err)
	assert.Equal(t, "Premium Checking", got.Name)
	assert.Equal(t, "active", got.Status)

	assert.Equal(t, []string{"product.created", "product.updated", "product.activated"}, eventTypes(outboxFor(ctx, t, p.ID())))
}

func TestPricingRoundTrip(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	p := newProduct(ctx, t, "PRC")
	amount, err := domain.ParseMoney("12.345")
	require.NoError(t, err)
	pr, err := pricingUC.Create(ctx, p.ID(), domain.PricingInput{
		Name:          "Monthly fee",
		PricingType:   "fixed",
		Amount:        amount,
		EffectiveFrom: clk.Now(),
	})
	require.NoError(t, err)

	got, err := views.GetPricing(ctx, p.ID(), pr.ID())
	require.NoError(t, err)
	require.NotNil(t, got.Amount)
	// exact value survives the numerator/denominator columns
	assert.Equal(t, int64(2469), got.Amount.Numerator)
	assert.Equal(t, int64(200), got.Amount.Denominator)
}

func TestFeeHierarchyCascades(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	p := newProduct(ctx, t, "FEE")
	fs, err := feesUC.CreateStructure(ctx, p.ID(), domain.FeeStructureInput{Name: "Standard", EffectiveFrom: clk.Now()})
	require.NoError(t, err)
	fee, err := domain.ParseMoney("2.50")
	require.NoError(t, err)
	fc, err := feesUC.CreateComponent(ctx, p.ID(), fs.ID(), domain.FeeComponentInput{
		Name: "ATM", FeeType: "flat", Amount: fee, Frequency: "per_transaction",
	})
	require.NoError(t, err)
	_, err = feesUC.CreateRule(ctx, p.ID(), fs.ID(), fc.ID(), domain.FeeRuleInput{
		Name: "Premium waiver", Attribute: "tier", Operator: "eq", Value: "premium", Action: "waive",
	})
	require.NoError(t, err)

	tree, err := views.ListFeeStructures(ctx, p.ID())
	require.NoError(t, err)
	require.Len(t, tree, 1)
	require.Len(t, tree[0].Components, 1)
	assert.Len(t, tree[0].Components[0].Rules, 1)

	require.NoError(t, feesUC.DeleteStructure(ctx, p.ID(), fs.ID()))
	rules, err := readModel.ListProductFeeRules(ctx, p.ID())
	require.NoError(t, err)
	assert.Empty(t, rules)
}

func TestWizardCommit(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	sess, err := wizardSvc.Start(domain.ProductDetails{
		Code: uniqueCode("WIZ"), Name: "Wizard Loan", ProductType: "loan", Category: "consumer", Currency: "USD",
	})
	require.NoError(t, err)
	rate, err := domain.ParseRate("4.25")
	require.NoError(t, err)
	_, err = wizardSvc.StagePricing(sess.ID, []domain.PricingInput{{
		Name: "Base rate", PricingType: "rate", Rate: rate, EffectiveFrom: clk.Now(),
	}})
	require.NoError(t, err)

	res, err := wizardSvc.Commit(ctx, sess.ID)
	require.NoError(t, err)

	pricing, err := views.ListPricing(ctx, res.Product.ID(), nil)
	require.NoError(t, err)
	require.Len(t, pricing, 1)
	require.NotNil(t, pricing[0].Rate)
	assert.Equal(t, 0, big.NewRat(425, 100).Cmp(ratOf(t, *pricing[0].Rate)))
}

func ratOf(t *testing.T, s string) *big.Rat {
	t.Helper()
	r, ok := new(big.Rat).SetString(s)
	require.True(t, ok, s)
	return r
}

func TestOutboxRelayDrainsPending(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	p := newProduct(ctx, t, "OBX")

	mr := miniredis.RunT(t)
	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	defer rdb.Close()
	relay := outbox.NewRelay(readModel, outboxRep, cm, outbox.NewStreamPublisher(rdb, "catalog-events", 0), clk, 50)

	for {
		n, err := relay.RunOnce(ctx)
		require.NoError(t, err)
		if n == 0 {
			break
		}
	}

	rows := outboxFor(ctx, t, p.ID())
	require.Len(t, rows, 1)
	assert.Equal(t, "processed", rows[0].Status)

	entries, err := rdb.XRange(ctx, "catalog-events", "-", "+").Result()
	require.NoError(t, err)
	found := false
	for _, e := range entries {
		if e.Values["aggregate_id"] == p.ID() {
			found = true
			assert.Equal(t, "product.created", e.Values["event_type"])
		}
	}
	assert.True(t, found)
}
