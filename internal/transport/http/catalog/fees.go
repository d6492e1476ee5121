package catalog

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/murkotick/financial-catalog-service/internal/app/catalog/domain"
	"github.com/murkotick/financial-catalog-service/internal/app/catalog/dto"
)

func (h *Handler) listFeeStructures(c *gin.Context) {
	items, err := h.queries.Views.ListFeeStructures(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list(items))
}

func (h *Handler) getFeeStructure(c *gin.Context) {
	out, err := h.queries.Views.GetFeeStructure(c.Request.Context(), c.Param("id"), c.Param("structureID"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) createFeeStructure(c *gin.Context) {
	var req feeStructureRequest
	if !bindJSON(c, &req) {
		return
	}
	fs, err := h.commands.Fees.CreateStructure(c.Request.Context(), c.Param("id"), req.input())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.FromFeeStructure(fs))
}

func (h *Handler) updateFeeStructure(c *gin.Context) {
	var req feeStructurePatchRequest
	if !bindJSON(c, &req) {
		return
	}
	fs, err := h.commands.Fees.UpdateStructure(c.Request.Context(), c.Param("id"), c.Param("structureID"), domain.FeeStructurePatch{
		Name:             req.Name,
		Description:      req.Description,
		EffectiveFrom:    req.EffectiveFrom,
		EffectiveTo:      req.EffectiveTo,
		ClearEffectiveTo: req.ClearEffectiveTo,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromFeeStructure(fs))
}

func (h *Handler) deleteFeeStructure(c *gin.Context) {
	if err := h.commands.Fees.DeleteStructure(c.Request.Context(), c.Param("id"), c.Param("structureID")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) listFeeComponents(c *gin.Context) {
	items, err := h.queries.Views.ListFeeComponents(c.Request.Context(), c.Param("id"), c.Param("structureID"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list(items))
}

func (h *Handler) getFeeComponent(c *gin.Context) {
	out, err := h.queries.Views.GetFeeComponent(c.Request.Context(), c.Param("id"), c.Param("structureID"), c.Param("componentID"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) createFeeComponent(c *gin.Context) {
	var req feeComponentRequest
	if !bindJSON(c, &req) {
		return
	}
	in, err := req.input()
	if err != nil {
		writeError(c, err)
		return
	}
	fc, err := h.commands.Fees.CreateComponent(c.Request.Context(), c.Param("id"), c.Param("structureID"), in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.FromFeeComponent(fc))
}

func (h *Handler) updateFeeComponent(c *gin.Context) {
	var req feeComponentPatchRequest
	if !bindJSON(c, &req) {
		return
	}
	patch, err := req.patch()
	if err != nil {
		writeError(c, err)
		return
	}
	fc, err := h.commands.Fees.UpdateComponent(c.Request.Context(), c.Param("id"), c.Param("structureID"), c.Param("componentID"), patch)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromFeeComponent(fc))
}

func (h *Handler) deleteFeeComponent(c *gin.Context) {
	err := h.commands.Fees.DeleteComponent(c.Request.Context(), c.Param("id"), c.Param("structureID"), c.Param("componentID"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) listFeeRules(c *gin.Context) {
	items, err := h.queries.Views.ListFeeRules(c.Request.Context(), c.Param("id"), c.Param("structureID"), c.Param("componentID"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list(items))
}

func (h *Handler) getFeeRule(c *gin.Context) {
	out, err := h.queries.Views.GetFeeRule(c.Request.Context(),
		c.Param("id"), c.Param("structureID"), c.Param("componentID"), c.Param("ruleID"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) createFeeRule(c *gin.Context) {
	var req feeRuleRequest
	if !bindJSON(c, &req) {
		return
	}
	in, err := req.input()
	if err != nil {
		writeError(c, err)
		return
	}
	fr, err := h.commands.Fees.CreateRule(c.Request.Context(), c.Param("id"), c.Param("structureID"), c.Param("componentID"), in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.FromFeeRule(fr))
}

func (h *Handler) updateFeeRule(c *gin.Context) {
	var req feeRulePatchRequest
	if !bindJSON(c, &req) {
		return
	}
	patch, err := req.patch()
	if err != nil {
		writeError(c, err)
		return
	}
	fr, err := h.commands.Fees.UpdateRule(c.Request.Context(),
		c.Param("id"), c.Param("structureID"), c.Param("componentID"), c.Param("ruleID"), patch)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromFeeRule(fr))
}

func (h *Handler) deleteFeeRule(c *gin.Context) {
	err := h.commands.Fees.DeleteRule(c.Request.Context(),
		c.Param("id"), c.Param("structureID"), c.Param("componentID"), c.Param("ruleID"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
