package catalog

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/murkotick/financial-catalog-service/internal/app/catalog/domain"
	"github.com/murkotick/financial-catalog-service/internal/app/catalog/dto"
	"github.com/murkotick/financial-catalog-service/internal/app/catalog/queries/get_product"
	"github.com/murkotick/financial-catalog-service/internal/app/catalog/queries/get_quote"
	"github.com/murkotick/financial-catalog-service/internal/app/catalog/queries/list_products"
	"github.com/murkotick/financial-catalog-service/internal/app/catalog/usecases/create_product"
	"github.com/murkotick/financial-catalog-service/internal/app/catalog/usecases/update_product"
)

func (h *Handler) listProducts(c *gin.Context) {
	p, ok := page(c)
	if !ok {
		return
	}
	items, err := h.queries.ListProducts.Execute(c.Request.Context(), list_products.Query{
		Status:      c.Query("status"),
		Category:    c.Query("category"),
		ProductType: c.Query("product_type"),
		Limit:       p.Limit,
		Offset:      p.Offset,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	resp := list(items)
	resp.NextPageToken = p.NextToken(len(items))
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) createProduct(c *gin.Context) {
	var req createProductRequest
	if !bindJSON(c, &req) {
		return
	}
	p, err := h.commands.CreateProduct.Execute(c.Request.Context(), create_product.Request{
		Code:        req.Code,
		Name:        req.Name,
		Description: req.Description,
		ProductType: req.ProductType,
		Category:    req.Category,
		Currency:    req.Currency,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.FromProduct(p))
}

func (h *Handler) getProduct(c *gin.Context) {
	out, err := h.queries.GetProduct.Execute(c.Request.Context(), get_product.Query{
		ProductID: c.Param("id"),
		Locale:    c.Query("locale"),
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) updateProduct(c *gin.Context) {
	var req updateProductRequest
	if !bindJSON(c, &req) {
		return
	}
	p, err := h.commands.UpdateProduct.Execute(c.Request.Context(), update_product.Request{
		ProductID:   c.Param("id"),
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Currency:    req.Currency,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromProduct(p))
}

func (h *Handler) activateProduct(c *gin.Context) {
	h.transition(c, h.commands.Status.Activate)
}

func (h *Handler) deactivateProduct(c *gin.Context) {
	h.transition(c, h.commands.Status.Deactivate)
}

func (h *Handler) archiveProduct(c *gin.Context) {
	h.transition(c, h.commands.Status.Archive)
}

func (h *Handler) transition(c *gin.Context, fn func(ctx context.Context, productID string) (*domain.Product, error)) {
	p, err := fn(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromProduct(p))
}

func (h *Handler) quote(c *gin.Context) {
	var req quoteRequest
	if c.Request.ContentLength != 0 && !bindJSON(c, &req) {
		return
	}
	out, err := h.queries.Quote.Execute(c.Request.Context(), get_quote.Query{
		ProductID:  c.Param("id"),
		Attributes: req.Attributes,
		At:         req.At,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
