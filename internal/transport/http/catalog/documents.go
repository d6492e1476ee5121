package catalog

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/murkotick/financial-catalog-service/internal/app/catalog/domain"
	"github.com/murkotick/financial-catalog-service/internal/app/catalog/dto"
)

func (h *Handler) listDocuments(c *gin.Context) {
	items, err := h.queries.Views.ListDocumentRequirements(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list(items))
}

func (h *Handler) getDocument(c *gin.Context) {
	out, err := h.queries.Views.GetDocumentRequirement(c.Request.Context(), c.Param("id"), c.Param("documentID"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) createDocument(c *gin.Context) {
	var req documentRequest
	if !bindJSON(c, &req) {
		return
	}
	d, err := h.commands.Documents.Create(c.Request.Context(), c.Param("id"), req.input())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.FromDocument(d))
}

func (h *Handler) updateDocument(c *gin.Context) {
	var req documentPatchRequest
	if !bindJSON(c, &req) {
		return
	}
	d, err := h.commands.Documents.Update(c.Request.Context(), c.Param("id"), c.Param("documentID"), domain.DocumentPatch{
		DocumentType:      req.DocumentType,
		Description:       req.Description,
		Mandatory:         req.Mandatory,
		ValidityDays:      req.ValidityDays,
		ClearValidityDays: req.ClearValidityDays,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromDocument(d))
}

func (h *Handler) deleteDocument(c *gin.Context) {
	if err := h.commands.Documents.Delete(c.Request.Context(), c.Param("id"), c.Param("documentID")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
