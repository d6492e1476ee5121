package catalog

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/murkotick/financial-catalog-service/internal/app/catalog/domain"
	"github.com/murkotick/financial-catalog-service/internal/app/catalog/dto"
	"github.com/murkotick/financial-catalog-service/internal/app/catalog/wizard"
)

type wizardPricingRequest struct {
	Items []pricingRequest `json:"items" validate:"dive"`
}

type wizardFeeComponent struct {
	feeComponentRequest
	Rules []feeRuleRequest `json:"rules" validate:"dive"`
}

type wizardFeeStructure struct {
	feeStructureRequest
	Components []wizardFeeComponent `json:"components" validate:"dive"`
}

type wizardFeesRequest struct {
	Items []wizardFeeStructure `json:"items" validate:"dive"`
}

type wizardLimitsRequest struct {
	Items []limitRequest `json:"items" validate:"dive"`
}

type wizardDocumentsRequest struct {
	Items []documentRequest `json:"items" validate:"dive"`
}

type wizardLocalizationsRequest struct {
	Items []localizationRequest `json:"items" validate:"dive"`
}

type wizardSessionResponse struct {
	ID        int64                `json:"id"`
	Step      int                  `json:"step"`
	StepName  string               `json:"step_name"`
	CreatedAt time.Time            `json:"created_at"`
	ExpiresAt time.Time            `json:"expires_at"`
	Product   createProductRequest `json:"product"`
	Staged    map[string]int       `json:"staged"`
}

func sessionResponse(s *wizard.Session) wizardSessionResponse {
	return wizardSessionResponse{
		ID:        s.ID,
		Step:      int(s.Step),
		StepName:  s.Step.String(),
		CreatedAt: s.CreatedAt,
		ExpiresAt: s.ExpiresAt,
		Product: createProductRequest{
			Code:        s.Product.Code,
			Name:        s.Product.Name,
			Description: s.Product.Description,
			ProductType: s.Product.ProductType,
			Category:    s.Product.Category,
			Currency:    s.Product.Currency,
		},
		Staged: map[string]int{
			wizard.StepPricing.String():       len(s.Pricing),
			wizard.StepFees.String():          len(s.Fees),
			wizard.StepLimits.String():        len(s.Limits),
			wizard.StepDocuments.String():     len(s.Documents),
			wizard.StepLocalizations.String(): len(s.Localizations),
		},
	}
}

type wizardCommitResponse struct {
	Product       *dto.ProductDTO               `json:"product"`
	Pricing       []*dto.PricingDTO             `json:"pricing"`
	FeeStructures []*dto.FeeStructureDTO        `json:"fee_structures"`
	Limits        []*dto.LimitDTO               `json:"limits"`
	Documents     []*dto.DocumentRequirementDTO `json:"documents"`
	Localizations []*dto.LocalizationDTO        `json:"localizations"`
}

func commitResponse(r *wizard.Result) wizardCommitResponse {
	out := wizardCommitResponse{
		Product:       dto.FromProduct(r.Product),
		Pricing:       []*dto.PricingDTO{},
		FeeStructures: []*dto.FeeStructureDTO{},
		Limits:        []*dto.LimitDTO{},
		Documents:     []*dto.DocumentRequirementDTO{},
		Localizations: []*dto.LocalizationDTO{},
	}
	for _, p := range r.Pricing {
		out.Pricing = append(out.Pricing, dto.FromPricing(p))
	}
	for _, fs := range r.FeeStructures {
		sd := dto.FromFeeStructure(fs)
		for _, fc := range r.FeeComponents {
			if fc.FeeStructureID() != fs.ID() {
				continue
			}
			cd := dto.FromFeeComponent(fc)
			for _, fr := range r.FeeRules {
				if fr.FeeComponentID() == fc.ID() {
					cd.Rules = append(cd.Rules, *dto.FromFeeRule(fr))
				}
			}
			sd.Components = append(sd.Components, *cd)
		}
		out.FeeStructures = append(out.FeeStructures, sd)
	}
	for _, l := range r.Limits {
		out.Limits = append(out.Limits, dto.FromLimit(l))
	}
	for _, d := range r.Documents {
		out.Documents = append(out.Documents, dto.FromDocument(d))
	}
	for _, l := range r.Localizations {
		out.Localizations = append(out.Localizations, dto.FromLocalization(l))
	}
	return out
}

func sessionID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("sessionID"), 10, 64)
	if err != nil || id <= 0 {
		writeStatus(c, http.StatusBadRequest, "session id must be a positive integer")
		return 0, false
	}
	return id, true
}

func (h *Handler) startWizard(c *gin.Context) {
	var req createProductRequest
	if !bindJSON(c, &req) {
		return
	}
	s, err := h.wizard.Start(req.details())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sessionResponse(s))
}

func (h *Handler) getWizard(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	s, err := h.wizard.Get(id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, sessionResponse(s))
}

func (h *Handler) cancelWizard(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	if err := h.wizard.Cancel(id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) stageWizardProduct(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	var req createProductRequest
	if !bindJSON(c, &req) {
		return
	}
	h.renderSession(c)(h.wizard.StageProduct(id, req.details()))
}

func (h *Handler) stageWizardPricing(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	var req wizardPricingRequest
	if !bindJSON(c, &req) {
		return
	}
	items := make([]domain.PricingInput, 0, len(req.Items))
	for _, r := range req.Items {
		in, err := r.input()
		if err != nil {
			writeError(c, err)
			return
		}
		items = append(items, in)
	}
	h.renderSession(c)(h.wizard.StagePricing(id, items))
}

func (h *Handler) stageWizardFees(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	var req wizardFeesRequest
	if !bindJSON(c, &req) {
		return
	}
	drafts := make([]wizard.FeeStructureDraft, 0, len(req.Items))
	for _, s := range req.Items {
		draft := wizard.FeeStructureDraft{Structure: s.input()}
		for _, cr := range s.Components {
			comp, err := cr.feeComponentRequest.input()
			if err != nil {
				writeError(c, err)
				return
			}
			cd := wizard.FeeComponentDraft{Component: comp}
			for _, rr := range cr.Rules {
				rule, err := rr.input()
				if err != nil {
					writeError(c, err)
					return
				}
				cd.Rules = append(cd.Rules, rule)
			}
			draft.Components = append(draft.Components, cd)
		}
		drafts = append(drafts, draft)
	}
	h.renderSession(c)(h.wizard.StageFees(id, drafts))
}

func (h *Handler) stageWizardLimits(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	var req wizardLimitsRequest
	if !bindJSON(c, &req) {
		return
	}
	items := make([]domain.LimitInput, 0, len(req.Items))
	for _, r := range req.Items {
		in, err := r.input()
		if err != nil {
			writeError(c, err)
			return
		}
		items = append(items, in)
	}
	h.renderSession(c)(h.wizard.StageLimits(id, items))
}

func (h *Handler) stageWizardDocuments(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	var req wizardDocumentsRequest
	if !bindJSON(c, &req) {
		return
	}
	items := make([]domain.DocumentInput, 0, len(req.Items))
	for _, r := range req.Items {
		items = append(items, r.input())
	}
	h.renderSession(c)(h.wizard.StageDocuments(id, items))
}

func (h *Handler) stageWizardLocalizations(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	var req wizardLocalizationsRequest
	if !bindJSON(c, &req) {
		return
	}
	items := make([]domain.LocalizationInput, 0, len(req.Items))
	for _, r := range req.Items {
		items = append(items, r.input())
	}
	h.renderSession(c)(h.wizard.StageLocalizations(id, items))
}

func (h *Handler) commitWizard(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	res, err := h.wizard.Commit(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, commitResponse(res))
}

func (h *Handler) renderSession(c *gin.Context) func(*wizard.Session, error) {
	return func(s *wizard.Session, err error) {
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, sessionResponse(s))
	}
}
