package catalog

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/murkotick/financial-catalog-service/internal/app/catalog/dto"
)

func (h *Handler) listLimits(c *gin.Context) {
	items, err := h.queries.Views.ListLimits(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list(items))
}

func (h *Handler) getLimit(c *gin.Context) {
	out, err := h.queries.Views.GetLimit(c.Request.Context(), c.Param("id"), c.Param("limitID"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) createLimit(c *gin.Context) {
	var req limitRequest
	if !bindJSON(c, &req) {
		return
	}
	in, err := req.input()
	if err != nil {
		writeError(c, err)
		return
	}
	l, err := h.commands.Limits.Create(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.FromLimit(l))
}

func (h *Handler) updateLimit(c *gin.Context) {
	var req limitPatchRequest
	if !bindJSON(c, &req) {
		return
	}
	patch, err := req.patch()
	if err != nil {
		writeError(c, err)
		return
	}
	l, err := h.commands.Limits.Update(c.Request.Context(), c.Param("id"), c.Param("limitID"), patch)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromLimit(l))
}

func (h *Handler) deleteLimit(c *gin.Context) {
	if err := h.commands.Limits.Delete(c.Request.Context(), c.Param("id"), c.Param("limitID")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
