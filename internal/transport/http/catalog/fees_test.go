package catalog

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/murkotick/financial-catalog-service/internal/app/catalog/domain"
)

// seedFees stores fs-1 with a flat fc-1 of 10.00, waived for online
// channels, and a 1.5% fc-2.
func (s *testServer) seedFees(t *testing.T) {
	t.Helper()
	rm := s.h.ReadModel

	fs, err := domain.NewFeeStructure("fs-1", "prod-1", domain.FeeStructureInput{Name: "Standard", EffectiveFrom: jan}, now)
	require.NoError(t, err)
	fs.ClearEvents()
	rm.Structures["fs-1"] = fs

	flat, err := domain.NewFeeComponent("fc-1", "prod-1", "fs-1", domain.FeeComponentInput{
		Name: "Wire", FeeType: "flat", Amount: domain.MustMoney(10, 1), Frequency: "per_transaction",
	}, now)
	require.NoError(t, err)
	flat.ClearEvents()
	rm.Components["fc-1"] = flat

	rate, err := domain.ParseRate("1.5")
	require.NoError(t, err)
	pct, err := domain.NewFeeComponent("fc-2", "prod-1", "fs-1", domain.FeeComponentInput{
		Name: "FX", FeeType: "percentage", Rate: rate, Frequency: "per_transaction",
	}, now)
	require.NoError(t, err)
	pct.ClearEvents()
	rm.Components["fc-2"] = pct

	waive, err := domain.NewFeeRule("fr-1", "prod-1", "fs-1", "fc-1", domain.FeeRuleInput{
		Name: "Online", Attribute: "channel", Operator: "eq", Value: "online", Action: "waive", Priority: 1,
	}, now)
	require.NoError(t, err)
	waive.ClearEvents()
	rm.Rules["fr-1"] = waive
}

func TestFeeRoutes(t *testing.T) {
	s := newTestServer(t)
	s.seedProduct(t, "prod-1", "CHK")
	base := "/v1/products/prod-1/fee-structures"
	components := base + "/fs-1/components"
	rules := components + "/fc-1/rules"

	w := s.do(http.MethodPost, base, map[string]any{"name": "Standard", "effective_from": rfc(jan)})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "Standard", decode(t, w)["name"])

	s.seedFees(t)

	w = s.do(http.MethodPost, components, map[string]any{
		"name": "Wire", "fee_type": "flat", "amount": "10", "frequency": "per_transaction",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	body := decode(t, w)
	assert.Equal(t, "fs-1", body["fee_structure_id"])
	assert.Equal(t, "10.00", body["amount"].(map[string]any)["amount"])

	w = s.do(http.MethodPost, rules, map[string]any{
		"name": "Gold tier", "attribute": "tier", "operator": "eq", "value": "gold",
		"action": "discount", "action_value": "12.5", "priority": 2,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	body = decode(t, w)
	assert.Equal(t, "12.5", body["action_value"])
	assert.Equal(t, "fc-1", body["fee_component_id"])

	rule := func(overrides map[string]any) map[string]any {
		r := map[string]any{"name": "r", "attribute": "tier", "operator": "eq", "value": "gold", "action": "waive"}
		for k, v := range overrides {
			r[k] = v
		}
		return r
	}

	s.run(t, []routeCase{
		{"structure without from", http.MethodPost, base, map[string]any{"name": "Standard"}, http.StatusBadRequest},
		{"component under missing structure", http.MethodPost, base + "/nope/components", map[string]any{
			"name": "Wire", "fee_type": "flat", "amount": "10", "frequency": "per_transaction",
		}, http.StatusNotFound},
		{"percentage without rate", http.MethodPost, components, map[string]any{
			"name": "FX", "fee_type": "percentage", "frequency": "monthly",
		}, http.StatusBadRequest},
		{"unknown fee type", http.MethodPost, components, map[string]any{
			"name": "FX", "fee_type": "tiered", "frequency": "monthly",
		}, http.StatusBadRequest},
		{"non numeric action value", http.MethodPost, rules, rule(map[string]any{"action": "discount", "action_value": "abc"}), http.StatusBadRequest},
		{"discount above 100", http.MethodPost, rules, rule(map[string]any{"action": "discount", "action_value": "150"}), http.StatusBadRequest},
		{"ordering on text", http.MethodPost, rules, rule(map[string]any{"operator": "gt"}), http.StatusBadRequest},
		{"unknown operator", http.MethodPost, rules, rule(map[string]any{"operator": "like"}), http.StatusBadRequest},
		{"rule under missing component", http.MethodPost, components + "/nope/rules", rule(nil), http.StatusNotFound},
		{"components of missing structure", http.MethodGet, base + "/nope/components", nil, http.StatusNotFound},
		{"rules of missing component", http.MethodGet, components + "/nope/rules", nil, http.StatusNotFound},
		{"get structure", http.MethodGet, base + "/fs-1", nil, http.StatusOK},
		{"get missing rule", http.MethodGet, rules + "/nope", nil, http.StatusNotFound},
	})

	assert.Len(t, itemsOf(t, s.do(http.MethodGet, base, nil)), 1)

	listed := itemsOf(t, s.do(http.MethodGet, components, nil))
	require.Len(t, listed, 2)
	first := listed[0].(map[string]any)
	assert.Equal(t, "fc-1", first["id"])
	assert.Len(t, first["rules"], 1)
	assert.Equal(t, "1.5", listed[1].(map[string]any)["rate"])

	listedRules := itemsOf(t, s.do(http.MethodGet, rules, nil))
	require.Len(t, listedRules, 1)
	assert.Equal(t, "waive", listedRules[0].(map[string]any)["action"])
	assert.Empty(t, itemsOf(t, s.do(http.MethodGet, components+"/fc-2/rules", nil)))

	w = s.do(http.MethodGet, components+"/fc-1", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Len(t, decode(t, w)["rules"], 1)

	w = s.do(http.MethodPatch, rules+"/fr-1", map[string]any{"priority": 5})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.EqualValues(t, 5, decode(t, w)["priority"])

	w = s.do(http.MethodPatch, components+"/fc-1", map[string]any{"amount": "12"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "12.00", decode(t, w)["amount"].(map[string]any)["amount"])

	w = s.do(http.MethodPatch, base+"/fs-1", map[string]any{"name": "Premium"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Premium", decode(t, w)["name"])

	assert.Equal(t, http.StatusNoContent, s.do(http.MethodDelete, rules+"/fr-1", nil).Code)
	assert.Equal(t, http.StatusNoContent, s.do(http.MethodDelete, components+"/fc-2", nil).Code)
	assert.Equal(t, http.StatusNoContent, s.do(http.MethodDelete, base+"/fs-1", nil).Code)

	events := s.h.Outbox.EventTypes()
	for _, want := range []string{
		"fee_structure.created", "fee_component.created", "fee_rule.created",
		"fee_rule.updated", "fee_component.updated", "fee_structure.updated",
		"fee_rule.deleted", "fee_component.deleted", "fee_structure.deleted",
	} {
		assert.Contains(t, events, want)
	}
}

func TestQuote(t *testing.T) {
	s := newTestServer(t)
	s.seedProduct(t, "prod-1", "CHK")
	s.seedFees(t)
	pr, err := domain.NewPricing("pr-1", "prod-1", domain.PricingInput{
		Name: "Monthly", PricingType: "fixed", Amount: domain.MustMoney(450, 100), EffectiveFrom: jan,
	}, now)
	require.NoError(t, err)
	pr.ClearEvents()
	s.h.ReadModel.Pricing["pr-1"] = pr
	path := "/v1/products/prod-1/quote"

	tests := []struct {
		name  string
		body  any
		total string
	}{
		{"online transfer waives the flat fee", map[string]any{"attributes": map[string]any{"amount": "200", "channel": "online"}}, "3.00"},
		{"branch transfer pays both", map[string]any{"attributes": map[string]any{"amount": "200", "channel": "branch"}}, "13.00"},
		{"no body charges the flat fee", nil, "10.00"},
		{"before the schedule starts", map[string]any{"at": rfc(jan.AddDate(0, 0, -1))}, "0.00"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := s.do(http.MethodPost, path, tc.body)
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())
			body := decode(t, w)
			assert.Equal(t, tc.total, body["total_fee"].(map[string]any)["amount"])
			assert.Equal(t, "USD", body["currency"])
		})
	}

	w := s.do(http.MethodPost, path, map[string]any{"attributes": map[string]any{"amount": "200", "channel": "online"}})
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	require.Len(t, body["prices"], 1)
	assert.Equal(t, "4.50", body["prices"].([]any)[0].(map[string]any)["amount"].(map[string]any)["amount"])
	fees := body["fees"].([]any)
	require.Len(t, fees, 2)
	assert.Equal(t, "fr-1", fees[0].(map[string]any)["applied_rule_id"])

	s.run(t, []routeCase{
		{"bad amount", http.MethodPost, path, map[string]any{"attributes": map[string]any{"amount": "lots"}}, http.StatusBadRequest},
		{"negative amount", http.MethodPost, path, map[string]any{"attributes": map[string]any{"amount": "-5"}}, http.StatusBadRequest},
		{"unknown product", http.MethodPost, "/v1/products/missing/quote", nil, http.StatusNotFound},
	})
}

func TestQuote_OpenUnderAuth(t *testing.T) {
	s := newTestServerWith(t, RouterOptions{JWTSecret: "s3cret"})
	s.seedProduct(t, "prod-1", "CHK")

	s.run(t, []routeCase{
		{"quote without token", http.MethodPost, "/v1/products/prod-1/quote", nil, http.StatusOK},
		{"read without token", http.MethodGet, "/v1/products/prod-1", nil, http.StatusOK},
		{"create without token", http.MethodPost, "/v1/products", validProduct, http.StatusUnauthorized},
		{"activate without token", http.MethodPost, "/v1/products/prod-1/activate", nil, http.StatusUnauthorized},
	})
}

func TestWizard_NestedFees(t *testing.T) {
	s := newTestServer(t)
	require.Equal(t, http.StatusCreated, s.do(http.MethodPost, "/v1/wizard", validProduct).Code)
	require.Equal(t, http.StatusOK, s.do(http.MethodPut, "/v1/wizard/1/pricing", map[string]any{"items": []any{}}).Code)

	fees := func(actionValue string) map[string]any {
		return map[string]any{"items": []any{
			map[string]any{
				"name": "Standard", "effective_from": rfc(jan),
				"components": []any{
					map[string]any{
						"name": "Wire", "fee_type": "flat", "amount": "10", "frequency": "per_transaction",
						"rules": []any{
							map[string]any{
								"name": "Online", "attribute": "channel", "operator": "eq", "value": "online",
								"action": "discount", "action_value": actionValue, "priority": 1,
							},
						},
					},
				},
			},
		}}
	}

	w := s.do(http.MethodPut, "/v1/wizard/1/fees", fees("half"))
	assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())

	w = s.do(http.MethodPut, "/v1/wizard/1/fees", fees("50"))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decode(t, w)
	assert.Equal(t, "fees", body["step_name"])
	assert.EqualValues(t, 1, body["staged"].(map[string]any)["fees"])

	w = s.do(http.MethodPost, "/v1/wizard/1/commit", nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	body = decode(t, w)
	structures := body["fee_structures"].([]any)
	require.Len(t, structures, 1)
	comps := structures[0].(map[string]any)["components"].([]any)
	require.Len(t, comps, 1)
	comp := comps[0].(map[string]any)
	assert.Equal(t, "10.00", comp["amount"].(map[string]any)["amount"])
	rules := comp["rules"].([]any)
	require.Len(t, rules, 1)
	assert.Equal(t, "50", rules[0].(map[string]any)["action_value"])

	assert.Equal(t, []string{
		"product.created", "fee_structure.created", "fee_component.created", "fee_rule.created",
	}, s.h.Outbox.EventTypes())
}
