package catalog

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/murkotick/financial-catalog-service/internal/app/catalog/domain"
	"github.com/murkotick/financial-catalog-service/internal/app/catalog/dto"
	"github.com/murkotick/financial-catalog-service/internal/app/catalog/usecases/manage_pricing"
)

func (h *Handler) listPricing(c *gin.Context) {
	t, ok := at(c)
	if !ok {
		return
	}
	items, err := h.queries.Views.ListPricing(c.Request.Context(), c.Param("id"), t)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list(items))
}

func (h *Handler) getPricing(c *gin.Context) {
	out, err := h.queries.Views.GetPricing(c.Request.Context(), c.Param("id"), c.Param("pricingID"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) createPricing(c *gin.Context) {
	var req pricingRequest
	if !bindJSON(c, &req) {
		return
	}
	in, err := req.input()
	if err != nil {
		writeError(c, err)
		return
	}
	p, err := h.commands.Pricing.Create(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.FromPricing(p))
}

func (h *Handler) updatePricing(c *gin.Context) {
	var req pricingPatchRequest
	if !bindJSON(c, &req) {
		return
	}
	patch, err := req.patch()
	if err != nil {
		writeError(c, err)
		return
	}
	p, err := h.commands.Pricing.Update(c.Request.Context(), c.Param("id"), c.Param("pricingID"), patch)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromPricing(p))
}

func (h *Handler) deletePricing(c *gin.Context) {
	if err := h.commands.Pricing.Delete(c.Request.Context(), c.Param("id"), c.Param("pricingID")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) applyDiscount(c *gin.Context) {
	var req discountRequest
	if !bindJSON(c, &req) {
		return
	}
	pct, err := domain.ParseRate(req.Percentage)
	if err != nil {
		writeError(c, err)
		return
	}
	p, err := h.commands.Pricing.ApplyDiscount(c.Request.Context(), manage_pricing.DiscountRequest{
		ProductID:  c.Param("id"),
		PricingID:  c.Param("pricingID"),
		Percentage: pct,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromPricing(p))
}

func (h *Handler) removeDiscount(c *gin.Context) {
	p, err := h.commands.Pricing.RemoveDiscount(c.Request.Context(), c.Param("id"), c.Param("pricingID"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromPricing(p))
}
