package conversation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func catalogueByName(t *testing.T) map[string]ToolDefinition {
	t.Helper()
	out := make(map[string]ToolDefinition)
	for _, tool := range Catalogue() {
		out[tool.Name] = tool
	}
	return out
}

func params(tool ToolDefinition) (all, required []string) {
	for _, p := range tool.Params {
		all = append(all, p.Name)
		if p.Required {
			required = append(required, p.Name)
		}
	}
	return all, required
}

func TestCatalogueToolNames(t *testing.T) {
	tools := catalogueByName(t)
	for _, name := range []string{
		"check_calendar_availability",
		"create_calendar_event",
		"estimate_fee",
		"list_upfh_services",
		"upfh_location_lookup",
		"upfh_site_search",
		"upfh_site_summary",
		"submit_appointment_request",
	} {
		assert.Contains(t, tools, name)
	}
	assert.Len(t, tools, 8)
}

func TestEstimateFeeArguments(t *testing.T) {
	all, required := params(catalogueByName(t)[ToolEstimateFee])
	assert.ElementsMatch(t, []string{"income", "family_size", "procedure"}, all)
	assert.ElementsMatch(t, []string{"income", "family_size", "procedure"}, required)
}

func TestSiteToolsTakeQueryAndTopK(t *testing.T) {
	tools := catalogueByName(t)
	for _, name := range []string{ToolSiteSearch, ToolSiteSummary} {
		all, required := params(tools[name])
		assert.ElementsMatch(t, []string{"query", "top_k"}, all, name)
		assert.ElementsMatch(t, []string{"query"}, required, name)
	}
}

func TestSubmitAppointmentRequestArguments(t *testing.T) {
	tool, ok := catalogueByName(t)[ToolSubmitApptRequest]
	require.True(t, ok)
	all, required := params(tool)
	assert.ElementsMatch(t, []string{
		"email", "patient_name", "phone", "preferred_date",
		"preferred_time", "reason", "has_insurance",
	}, all)
	assert.ElementsMatch(t, []string{"email"}, required)
}
