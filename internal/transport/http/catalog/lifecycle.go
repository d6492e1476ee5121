package catalog

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/murkotick/financial-catalog-service/internal/app/catalog/domain"
	"github.com/murkotick/financial-catalog-service/internal/app/catalog/dto"
)

func (h *Handler) listLifecycle(c *gin.Context) {
	t, ok := at(c)
	if !ok {
		return
	}
	items, err := h.queries.Views.ListLifecycleEntries(c.Request.Context(), c.Param("id"), t)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list(items))
}

func (h *Handler) getLifecycle(c *gin.Context) {
	out, err := h.queries.Views.GetLifecycleEntry(c.Request.Context(), c.Param("id"), c.Param("entryID"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) createLifecycle(c *gin.Context) {
	var req lifecycleRequest
	if !bindJSON(c, &req) {
		return
	}
	e, err := h.commands.Lifecycle.Create(c.Request.Context(), c.Param("id"), req.input())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.FromLifecycle(e))
}

func (h *Handler) updateLifecycle(c *gin.Context) {
	var req lifecyclePatchRequest
	if !bindJSON(c, &req) {
		return
	}
	e, err := h.commands.Lifecycle.Update(c.Request.Context(), c.Param("id"), c.Param("entryID"), domain.LifecyclePatch{
		Status:           req.Status,
		EffectiveFrom:    req.EffectiveFrom,
		EffectiveTo:      req.EffectiveTo,
		ClearEffectiveTo: req.ClearEffectiveTo,
		Reason:           req.Reason,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromLifecycle(e))
}

func (h *Handler) deleteLifecycle(c *gin.Context) {
	if err := h.commands.Lifecycle.Delete(c.Request.Context(), c.Param("id"), c.Param("entryID")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
