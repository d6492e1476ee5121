package catalog

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/murkotick/financial-catalog-service/internal/app/catalog/domain"
	"github.com/murkotick/financial-catalog-service/internal/app/catalog/dto"
	"github.com/murkotick/financial-catalog-service/internal/app/catalog/usecases/manage_bundles"
)

func (h *Handler) listBundles(c *gin.Context) {
	p, ok := page(c)
	if !ok {
		return
	}
	items, err := h.queries.Bundles.List(c.Request.Context(), c.Query("status"), p.Limit, p.Offset)
	if err != nil {
		writeError(c, err)
		return
	}
	resp := list(items)
	resp.NextPageToken = p.NextToken(len(items))
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) getBundle(c *gin.Context) {
	out, err := h.queries.Bundles.Get(c.Request.Context(), c.Param("bundleID"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) createBundle(c *gin.Context) {
	var req bundleRequest
	if !bindJSON(c, &req) {
		return
	}
	items := make([]manage_bundles.ItemRequest, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, manage_bundles.ItemRequest{ProductID: it.ProductID, Mandatory: it.Mandatory, Position: it.Position})
	}
	b, err := h.commands.Bundles.Create(c.Request.Context(), manage_bundles.CreateRequest{
		BundleInput: domain.BundleInput{Code: req.Code, Name: req.Name, Description: req.Description},
		Items:       items,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.FromBundle(b))
}

func (h *Handler) updateBundle(c *gin.Context) {
	var req bundlePatchRequest
	if !bindJSON(c, &req) {
		return
	}
	b, err := h.commands.Bundles.Update(c.Request.Context(), c.Param("bundleID"), domain.BundlePatch{
		Name:        req.Name,
		Description: req.Description,
		Status:      req.Status,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromBundle(b))
}

func (h *Handler) deleteBundle(c *gin.Context) {
	if err := h.commands.Bundles.Delete(c.Request.Context(), c.Param("bundleID")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) addBundleItem(c *gin.Context) {
	var req bundleItemRequest
	if !bindJSON(c, &req) {
		return
	}
	b, err := h.commands.Bundles.AddItem(c.Request.Context(), c.Param("bundleID"), manage_bundles.ItemRequest{
		ProductID: req.ProductID,
		Mandatory: req.Mandatory,
		Position:  req.Position,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromBundle(b))
}

func (h *Handler) removeBundleItem(c *gin.Context) {
	b, err := h.commands.Bundles.RemoveItem(c.Request.Context(), c.Param("bundleID"), c.Param("productID"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromBundle(b))
}
