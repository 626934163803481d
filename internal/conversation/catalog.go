package conversation

// ToolParam describes one parameter of a tool.
type ToolParam struct {
	Name        string
	Type        string // "string", "number", "integer"
	Description string
	Required    bool
}

// ToolDefinition is one entry in the tool catalogue offered to the model.
type ToolDefinition struct {
	Name        string
	Description string
	Params      []ToolParam
}

// Tool names are part of the model-facing contract; renaming one silently
// breaks prompts and transcripts.
const (
	ToolCheckAvailability = "check_calendar_availability"
	ToolCreateEvent       = "create_calendar_event"
	ToolEstimateFee       = "estimate_fee"
	ToolListServices      = "list_upfh_services"
	ToolLocationLookup    = "upfh_location_lookup"
	ToolSiteSearch        = "upfh_site_search"
	ToolSiteSummary       = "upfh_site_summary"
	ToolSubmitApptRequest = "submit_appointment_request"
)

// Catalogue returns the fixed set of tools the assistant may call.
func Catalogue() []ToolDefinition {
	return []ToolDefinition{
		{
			Name:        ToolCheckAvailability,
			Description: "Look up free appointment slots. Pass either date, or both start_date and end_date (max 30 days), never both forms. Dates are YYYY-MM-DD in clinic time.",
			Params: []ToolParam{
				{Name: "date", Type: "string", Description: "Single day to check, YYYY-MM-DD"},
				{Name: "start_date", Type: "string", Description: "First day of a range, YYYY-MM-DD"},
				{Name: "end_date", Type: "string", Description: "Last day of a range (inclusive), YYYY-MM-DD"},
				{Name: "duration_minutes", Type: "integer", Description: "Visit length in minutes, default 30"},
			},
		},
		{
			Name:        ToolCreateEvent,
			Description: "Book an appointment at a slot previously returned by check_calendar_availability. Times are RFC 3339 with UTC offset.",
			Params: []ToolParam{
				{Name: "patient_name", Type: "string", Description: "Patient's full name", Required: true},
				{Name: "start", Type: "string", Description: "Slot start, RFC 3339", Required: true},
				{Name: "end", Type: "string", Description: "Slot end, RFC 3339", Required: true},
				{Name: "email", Type: "string", Description: "Patient email for the calendar invite"},
				{Name: "phone", Type: "string", Description: "Patient phone number"},
				{Name: "reason", Type: "string", Description: "Reason for the visit"},
			},
		},
		{
			Name:        ToolEstimateFee,
			Description: "Estimate the sliding-fee price of a procedure from annual household income and family size.",
			Params: []ToolParam{
				{Name: "income", Type: "number", Description: "Annual household income in dollars", Required: true},
				{Name: "family_size", Type: "integer", Description: "Number of people in the household", Required: true},
				{Name: "procedure", Type: "string", Description: "Procedure or service name", Required: true},
			},
		},
		{
			Name:        ToolListServices,
			Description: "List every service on the sliding-fee schedule.",
		},
		{
			Name:        ToolLocationLookup,
			Description: "Find a UPFH location (address, phone, hours) by keyword, e.g. 'pharmacy' or 'dental'.",
			Params: []ToolParam{
				{Name: "keyword", Type: "string", Description: "Location name or keyword", Required: true},
			},
		},
		{
			Name:        ToolSiteSearch,
			Description: "Keyword search across the UPFH website.",
			Params: []ToolParam{
				{Name: "query", Type: "string", Description: "Free-text search query", Required: true},
				{Name: "top_k", Type: "integer", Description: "Max results, default 30"},
			},
		},
		{
			Name:        ToolSiteSummary,
			Description: "Search the UPFH website and return concise summaries of the best-matching pages.",
			Params: []ToolParam{
				{Name: "query", Type: "string", Description: "Topic to summarize from the site", Required: true},
				{Name: "top_k", Type: "integer", Description: "How many pages to summarize, default 3"},
			},
		},
		{
			Name:        ToolSubmitApptRequest,
			Description: "Email a confirmation of the appointment request to the patient and alert the front desk.",
			Params: []ToolParam{
				{Name: "email", Type: "string", Description: "Patient email for the confirmation", Required: true},
				{Name: "patient_name", Type: "string", Description: "Patient's full name"},
				{Name: "phone", Type: "string", Description: "Patient phone number"},
				{Name: "preferred_date", Type: "string", Description: "Requested date, YYYY-MM-DD"},
				{Name: "preferred_time", Type: "string", Description: "Requested time of day"},
				{Name: "reason", Type: "string", Description: "Reason for the visit"},
				{Name: "has_insurance", Type: "boolean", Description: "Whether the patient has insurance"},
			},
		},
	}
}
