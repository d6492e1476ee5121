package catalog

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/murkotick/financial-catalog-service/internal/app/catalog/domain"
	"github.com/murkotick/financial-catalog-service/internal/app/catalog/dto"
)

func (h *Handler) listLocalizations(c *gin.Context) {
	items, err := h.queries.Views.ListLocalizations(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list(items))
}

func (h *Handler) getLocalization(c *gin.Context) {
	out, err := h.queries.Views.GetLocalization(c.Request.Context(), c.Param("id"), c.Param("localizationID"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) createLocalization(c *gin.Context) {
	var req localizationRequest
	if !bindJSON(c, &req) {
		return
	}
	l, err := h.commands.Localizations.Create(c.Request.Context(), c.Param("id"), req.input())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.FromLocalization(l))
}

func (h *Handler) updateLocalization(c *gin.Context) {
	var req localizationPatchRequest
	if !bindJSON(c, &req) {
		return
	}
	l, err := h.commands.Localizations.Update(c.Request.Context(), c.Param("id"), c.Param("localizationID"), domain.LocalizationPatch{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromLocalization(l))
}

func (h *Handler) deleteLocalization(c *gin.Context) {
	if err := h.commands.Localizations.Delete(c.Request.Context(), c.Param("id"), c.Param("localizationID")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
