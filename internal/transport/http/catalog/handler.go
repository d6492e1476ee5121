// Package catalog is the HTTP/JSON transport of the catalog. Handlers are
// thin: they bind and validate the request, call one use case or query and
// render the result.
package catalog

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/murkotick/financial-catalog-service/internal/app/catalog/queries/bundle_views"
	"github.com/murkotick/financial-catalog-service/internal/app/catalog/queries/get_product"
	"github.com/murkotick/financial-catalog-service/internal/app/catalog/queries/get_quote"
	"github.com/murkotick/financial-catalog-service/internal/app/catalog/queries/list_products"
	"github.com/murkotick/financial-catalog-service/internal/app/catalog/queries/product_views"
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
	"github.com/murkotick/financial-catalog-service/internal/pkg/pagination"
)

// Commands groups write interactors.
type Commands struct {
	CreateProduct *create_product.Interactor
	UpdateProduct *update_product.Interactor
	Status        *change_status.Interactor
	Pricing       *manage_pricing.Interactor
	Lifecycle     *manage_lifecycle.Interactor
	Limits        *manage_limits.Interactor
	Documents     *manage_documents.Interactor
	Localizations *manage_localizations.Interactor
	Fees          *manage_fees.Interactor
	Bundles       *manage_bundles.Interactor
}

// Queries groups read handlers.
type Queries struct {
	GetProduct   *get_product.Handler
	ListProducts *list_products.Handler
	Views        *product_views.Handler
	Quote        *get_quote.Handler
	Bundles      *bundle_views.Handler
}

type Handler struct {
	commands Commands
	queries  Queries
	wizard   *wizard.Service
}

func NewHandler(cmd Commands, qry Queries, wz *wizard.Service) *Handler {
	return &Handler{commands: cmd, queries: qry, wizard: wz}
}

// Register mounts every catalog route on r, normally the /v1 group.
func (h *Handler) Register(r gin.IRouter) {
	products := r.Group("/products")
	products.GET("", h.listProducts)
	products.POST("", h.createProduct)
	products.GET("/:id", h.getProduct)
	products.PATCH("/:id", h.updateProduct)
	products.POST("/:id/activate", h.activateProduct)
	products.POST("/:id/deactivate", h.deactivateProduct)
	products.POST("/:id/archive", h.archiveProduct)
	products.POST("/:id/quote", h.quote)

	products.GET("/:id/pricing", h.listPricing)
	products.POST("/:id/pricing", h.createPricing)
	products.GET("/:id/pricing/:pricingID", h.getPricing)
	products.PATCH("/:id/pricing/:pricingID", h.updatePricing)
	products.DELETE("/:id/pricing/:pricingID", h.deletePricing)
	products.POST("/:id/pricing/:pricingID/discount", h.applyDiscount)
	products.DELETE("/:id/pricing/:pricingID/discount", h.removeDiscount)

	products.GET("/:id/lifecycle", h.listLifecycle)
	products.POST("/:id/lifecycle", h.createLifecycle)
	products.GET("/:id/lifecycle/:entryID", h.getLifecycle)
	products.PATCH("/:id/lifecycle/:entryID", h.updateLifecycle)
	products.DELETE("/:id/lifecycle/:entryID", h.deleteLifecycle)

	products.GET("/:id/limits", h.listLimits)
	products.POST("/:id/limits", h.createLimit)
	products.GET("/:id/limits/:limitID", h.getLimit)
	products.PATCH("/:id/limits/:limitID", h.updateLimit)
	products.DELETE("/:id/limits/:limitID", h.deleteLimit)

	products.GET("/:id/documents", h.listDocuments)
	products.POST("/:id/documents", h.createDocument)
	products.GET("/:id/documents/:documentID", h.getDocument)
	products.PATCH("/:id/documents/:documentID", h.updateDocument)
	products.DELETE("/:id/documents/:documentID", h.deleteDocument)

	products.GET("/:id/localizations", h.listLocalizations)
	products.POST("/:id/localizations", h.createLocalization)
	products.GET("/:id/localizations/:localizationID", h.getLocalization)
	products.PATCH("/:id/localizations/:localizationID", h.updateLocalization)
	products.DELETE("/:id/localizations/:localizationID", h.deleteLocalization)

	fs := products.Group("/:id/fee-structures")
	fs.GET("", h.listFeeStructures)
	fs.POST("", h.createFeeStructure)
	fs.GET("/:structureID", h.getFeeStructure)
	fs.PATCH("/:structureID", h.updateFeeStructure)
	fs.DELETE("/:structureID", h.deleteFeeStructure)
	fs.GET("/:structureID/components", h.listFeeComponents)
	fs.POST("/:structureID/components", h.createFeeComponent)
	fs.GET("/:structureID/components/:componentID", h.getFeeComponent)
	fs.PATCH("/:structureID/components/:componentID", h.updateFeeComponent)
	fs.DELETE("/:structureID/components/:componentID", h.deleteFeeComponent)
	fs.GET("/:structureID/components/:componentID/rules", h.listFeeRules)
	fs.POST("/:structureID/components/:componentID/rules", h.createFeeRule)
	fs.GET("/:structureID/components/:componentID/rules/:ruleID", h.getFeeRule)
	fs.PATCH("/:structureID/components/:componentID/rules/:ruleID", h.updateFeeRule)
	fs.DELETE("/:structureID/components/:componentID/rules/:ruleID", h.deleteFeeRule)

	bundles := r.Group("/bundles")
	bundles.GET("", h.listBundles)
	bundles.POST("", h.createBundle)
	bundles.GET("/:bundleID", h.getBundle)
	bundles.PATCH("/:bundleID", h.updateBundle)
	bundles.DELETE("/:bundleID", h.deleteBundle)
	bundles.POST("/:bundleID/items", h.addBundleItem)
	bundles.DELETE("/:bundleID/items/:productID", h.removeBundleItem)

	wz := r.Group("/wizard")
	wz.POST("", h.startWizard)
	wz.GET("/:sessionID", h.getWizard)
	wz.DELETE("/:sessionID", h.cancelWizard)
	wz.PUT("/:sessionID/product", h.stageWizardProduct)
	wz.PUT("/:sessionID/pricing", h.stageWizardPricing)
	wz.PUT("/:sessionID/fees", h.stageWizardFees)
	wz.PUT("/:sessionID/limits", h.stageWizardLimits)
	wz.PUT("/:sessionID/documents", h.stageWizardDocuments)
	wz.PUT("/:sessionID/localizations", h.stageWizardLocalizations)
	wz.POST("/:sessionID/commit", h.commitWizard)
}

type listResponse[T any] struct {
	Items         []T    `json:"items"`
	NextPageToken string `json:"next_page_token,omitempty"`
}

func list[T any](items []T) listResponse[T] {
	if items == nil {
		items = []T{}
	}
	return listResponse[T]{Items: items}
}

// page reads page_size and page_token. It writes the 400 itself.
func page(c *gin.Context) (pagination.Page, bool) {
	size := 0
	if s := c.Query("page_size"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			writeStatus(c, http.StatusBadRequest, "page_size must be a non-negative integer")
			return pagination.Page{}, false
		}
		size = n
	}
	p, err := pagination.Parse(size, c.Query("page_token"))
	if err != nil {
		writeStatus(c, http.StatusBadRequest, err.Error())
		return pagination.Page{}, false
	}
	return p, true
}

// at reads the optional RFC 3339 "at" query parameter.
func at(c *gin.Context) (*time.Time, bool) {
	s := c.Query("at")
	if s == "" {
		return nil, true
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		writeStatus(c, http.StatusBadRequest, "at must be an RFC 3339 timestamp")
		return nil, false
	}
	return &t, true
}
