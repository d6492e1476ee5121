package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/murkotick/financial-catalog-service/internal/app/catalog/domain"
	"github.com/murkotick/financial-catalog-service/internal/app/catalog/fakes"
	"github.com/murkotick/financial-catalog-service/internal/app/catalog/queries/bundle_views"
	"github.com/murkotick/financial-catalog-service/internal/app/catalog/queries/get_product"
	"github.com/murkotick/financial-catalog-service/internal/app/catalog/queries/get_quote"
	"github.com/murkotick/financial-catalog-service/internal/app/catalog/queries/list_products"
	"github.com/murkotick/financial-catalog-service/internal/app/catalog/queries/product_views"
	"github.com/murkotick/financial-catalog-service/internal/app/catalog/repo"
	"github.com/murkotick/financial-catalog-service/internal/app/catalog/usecases/change_status"
	"github.com/murkotick/financial-catalog-service/internal/app/catalog/usecases/create_product"
	"github.com/murkotick/financial-catalog-service/internal/app/catalog/usecases/manage_bundles"
	"github.com/murkotick/financial-catalog-service/internal/app/catalog/usecases/manage_documents"
	"github.com/murkotick/financial-catalog-service/internal/app/catalog/usecases/manage_fees"
	"github.com/murkotick/financial-catalog-service/internal/app/catalog/usecases/manage_lifecycle"
	"github.com/murkotick/financial-catalog-service/internal/app/catalog/usecases/manage_limits"
	"github.com/murkotick/financial-catalog-service/internal/app/catalog/usecases/manage_localizations"
	"github.com/murkotick/financial-catalog-service/internal/app/catalog/usecases/manage_pricing"
	"github.com/murkotick/financial-catalog-service/internal/app/catalog/usecases/update_product"
	"github.com/murkotick/financial-catalog-service/internal/app/catalog/wizard"
)

var now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type testServer struct {
	h      *fakes.Harness
	router *gin.Engine
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	return newTestServerWith(t, RouterOptions{})
}

func newTestServerWith(t *testing.T, opts RouterOptions) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	h := fakes.NewHarness(now)
	rm := h.ReadModel
	products := repo.NewProductRepo()
	pricing := repo.NewPricingRepo()
	fees := repo.NewFeeRepo()
	limits := repo.NewLimitRepo()
	documents := repo.NewDocumentRepo()
	localizations := repo.NewLocalizationRepo()

	cmd := Commands{
		CreateProduct: create_product.NewInteractor(products, h.Writer),
		UpdateProduct: update_product.NewInteractor(products, rm, h.Writer),
		Status:        change_status.NewInteractor(products, rm, h.Writer),
		Pricing:       manage_pricing.NewInteractor(pricing, rm, h.Writer),
		Lifecycle:     manage_lifecycle.NewInteractor(repo.NewLifecycleRepo(), rm, h.Writer),
		Limits:        manage_limits.NewInteractor(limits, rm, h.Writer),
		Documents:     manage_documents.NewInteractor(documents, rm, h.Writer),
		Localizations: manage_localizations.NewInteractor(localizations, rm, h.Writer),
		Fees:          manage_fees.NewInteractor(fees, rm, h.Writer),
		Bundles:       manage_bundles.NewInteractor(repo.NewBundleRepo(), rm, h.Writer),
	}
	qry := Queries{
		GetProduct:   get_product.NewHandler(rm, nil),
		ListProducts: list_products.NewHandler(rm),
		Views:        product_views.NewHandler(rm),
		Quote:        get_quote.NewHandler(rm, h.Clock),
		Bundles:      bundle_views.NewHandler(rm),
	}
	wz := wizard.NewService(wizard.Repos{
		Products:      products,
		Pricing:       pricing,
		Fees:          fees,
		Limits:        limits,
		Documents:     documents,
		Localizations: localizations,
	}, h.Writer, 30*time.Minute)

	return &testServer{h: h, router: NewRouter(NewHandler(cmd, qry, wz), opts)}
}

func (s *testServer) do(method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		if raw, ok := body.(string); ok {
			buf.WriteString(raw)
		} else {
			_ = json.NewEncoder(&buf).Encode(body)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) seedProduct(t *testing.T, id, code string) *domain.Product {
	t.Helper()
	p, err := domain.NewProduct(id, domain.ProductDetails{
		Code: code, Name: "Checking " + code, ProductType: "account", Category: "retail", Currency: "USD",
	}, now)
	require.NoError(t, err)
	p.ClearEvents()
	s.h.ReadModel.Products[id] = p
	return p
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func errorOf(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	e, ok := decode(t, w)["error"].(map[string]any)
	require.True(t, ok, w.Body.String())
	return e
}

var validProduct = map[string]any{
	"code":         "chk-01",
	"name":         "Everyday Checking",
	"product_type": "account",
	"category":     "retail",
	"currency":     "usd",
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	w := s.do(http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestUnknownRoute(t *testing.T) {
	s := newTestServer(t)
	w := s.do(http.MethodGet, "/v1/nope", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.EqualValues(t, 404, errorOf(t, w)["code"])
}

func TestCreateProduct(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodPost, "/v1/products", validProduct)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	body := decode(t, w)
	assert.Equal(t, "CHK-01", body["code"])
	assert.Equal(t, "USD", body["currency"])
	assert.Equal(t, "draft", body["status"])
	assert.NotEmpty(t, body["id"])

	assert.Equal(t, 1, s.h.Committer.Calls())
	assert.Equal(t, []string{"product.created"}, s.h.Outbox.EventTypes())
}

func TestCreateProduct_TagValidation(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodPost, "/v1/products", map[string]any{
		"code":         "chk",
		"product_type": "crypto",
		"category":     "retail",
		"currency":     "USD",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	e := errorOf(t, w)
	assert.Equal(t, "invalid request", e["message"])
	details, ok := e["details"].([]any)
	require.True(t, ok)
	fields := map[string]string{}
	for _, d := range details {
		m := d.(map[string]any)
		fields[m["field"].(string)] = m["tag"].(string)
	}
	assert.Equal(t, map[string]string{"name": "required", "product_type": "oneof"}, fields)
	assert.Zero(t, s.h.Committer.Calls())
}

func TestCreateProduct_DomainValidation(t *testing.T) {
	s := newTestServer(t)

	req := map[string]any{}
	for k, v := range validProduct {
		req[k] = v
	}
	req["currency"] = "XYZ"
	w := s.do(http.MethodPost, "/v1/products", req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.EqualValues(t, 400, errorOf(t, w)["code"])
}

func TestCreateProduct_MalformedBody(t *testing.T) {
	s := newTestServer(t)
	w := s.do(http.MethodPost, "/v1/products", `{"code":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, errorOf(t, w)["message"], "invalid request body")
}

func TestCreateProduct_CommitFailureIsHidden(t *testing.T) {
	s := newTestServer(t)
	s.h.Committer.Err = errors.New("spanner: session pool exhausted")

	w := s.do(http.MethodPost, "/v1/products", validProduct)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Internal Server Error", errorOf(t, w)["message"])
}

func TestGetProduct(t *testing.T) {
	s := newTestServer(t)
	s.seedProduct(t, "prod-1", "CHK")

	w := s.do(http.MethodGet, "/v1/products/prod-1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "CHK", decode(t, w)["code"])

	w = s.do(http.MethodGet, "/v1/products/missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.EqualValues(t, 404, errorOf(t, w)["code"])
}

func TestStatusTransitions(t *testing.T) {
	s := newTestServer(t)
	s.seedProduct(t, "prod-1", "CHK")

	w := s.do(http.MethodPost, "/v1/products/prod-1/activate", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "active", decode(t, w)["status"])

	w = s.do(http.MethodPost, "/v1/products/prod-1/activate", nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = s.do(http.MethodPost, "/v1/products/prod-1/archive", nil)
	assert.Equal(t, http.StatusConflict, w.Code, "active products cannot be archived")

	assert.Equal(t, []string{"prod-1"}, s.h.Cache.Invalidated)
}

func TestUpdateProduct_Archived(t *testing.T) {
	s := newTestServer(t)
	p := s.seedProduct(t, "prod-1", "CHK")
	require.NoError(t, p.Archive(now))

	w := s.do(http.MethodPatch, "/v1/products/prod-1", map[string]any{"name": "Renamed"})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestListProducts_Pagination(t *testing.T) {
	s := newTestServer(t)
	s.seedProduct(t, "prod-1", "A")
	s.seedProduct(t, "prod-2", "B")
	s.seedProduct(t, "prod-3", "C")

	w := s.do(http.MethodGet, "/v1/products?page_size=2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Len(t, body["items"], 2)
	token, _ := body["next_page_token"].(string)
	require.NotEmpty(t, token)

	w = s.do(http.MethodGet, "/v1/products?page_size=2&page_token="+token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body = decode(t, w)
	assert.Len(t, body["items"], 1)
	assert.NotContains(t, body, "next_page_token")

	assert.Equal(t, http.StatusBadRequest, s.do(http.MethodGet, "/v1/products?page_token=%21%21", nil).Code)
	assert.Equal(t, http.StatusBadRequest, s.do(http.MethodGet, "/v1/products?page_size=-1", nil).Code)
}

func TestListProducts_EmptyIsArray(t *testing.T) {
	s := newTestServer(t)
	w := s.do(http.MethodGet, "/v1/products", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"items":[]}`, w.Body.String())
}

func TestCreatePricing(t *testing.T) {
	s := newTestServer(t)
	s.seedProduct(t, "prod-1", "CHK")

	w := s.do(http.MethodPost, "/v1/products/prod-1/pricing", map[string]any{
		"name":           "Monthly fee",
		"pricing_type":   "fixed",
		"amount":         "4.50",
		"effective_from": now.Format(time.RFC3339),
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "prod-1", decode(t, w)["product_id"])

	w = s.do(http.MethodPost, "/v1/products/missing/pricing", map[string]any{
		"name":           "Monthly fee",
		"pricing_type":   "fixed",
		"amount":         "4.50",
		"effective_from": now.Format(time.RFC3339),
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(http.MethodPost, "/v1/products/prod-1/pricing", map[string]any{
		"name":           "Monthly fee",
		"pricing_type":   "fixed",
		"amount":         "four",
		"effective_from": now.Format(time.RFC3339),
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBundles_NotFound(t *testing.T) {
	s := newTestServer(t)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, "/v1/bundles/nope", nil).Code)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodDelete, "/v1/bundles/nope", nil).Code)
}

func TestWizardFlow(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodPost, "/v1/wizard", validProduct)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	body := decode(t, w)
	assert.EqualValues(t, 1, body["id"])
	assert.Equal(t, "product", body["step_name"])

	// limits come after fees
	w = s.do(http.MethodPut, "/v1/wizard/1/limits", map[string]any{"items": []any{}})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = s.do(http.MethodPut, "/v1/wizard/1/pricing", map[string]any{"items": []any{
		map[string]any{
			"name":           "Monthly fee",
			"pricing_type":   "fixed",
			"amount":         "4.50",
			"effective_from": now.Format(time.RFC3339),
		},
	}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body = decode(t, w)
	assert.Equal(t, "pricing", body["step_name"])
	assert.EqualValues(t, 1, body["staged"].(map[string]any)["pricing"])

	w = s.do(http.MethodGet, "/v1/wizard/1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 2, decode(t, w)["step"])

	w = s.do(http.MethodPost, "/v1/wizard/1/commit", nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	body = decode(t, w)
	assert.Equal(t, "CHK-01", body["product"].(map[string]any)["code"])
	assert.Len(t, body["pricing"], 1)
	assert.Equal(t, []string{"product.created", "pricing.created"}, s.h.Outbox.EventTypes())

	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, "/v1/wizard/1", nil).Code)
}

func TestWizard_BadSession(t *testing.T) {
	s := newTestServer(t)
	assert.Equal(t, http.StatusBadRequest, s.do(http.MethodGet, "/v1/wizard/abc", nil).Code)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, "/v1/wizard/7", nil).Code)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodDelete, "/v1/wizard/7", nil).Code)
}

func TestWizard_Expired(t *testing.T) {
	s := newTestServer(t)
	require.Equal(t, http.StatusCreated, s.do(http.MethodPost, "/v1/wizard", validProduct).Code)

	s.h.Clock.Advance(31 * time.Minute)
	w := s.do(http.MethodPost, "/v1/wizard/1/commit", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Zero(t, s.h.Committer.Calls())
}
