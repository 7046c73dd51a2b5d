package domain

// Option is a selectable value with its display label.
type Option struct {
	Value string
	Label string
}

// Values returns the raw values of a catalogue in display order.
func Values(opts []Option) []string {
	out := make([]string, len(opts))
	for i, o := range opts {
		out[i] = o.Value
	}
	return out
}

// Catalogues offered by the render layer. Validation checks membership against these.
var (
	ProductOptions = []Option{
		{"Bonny Light Crude", "Bonny Light Crude"},
		{"Brent Crude Oil", "Brent Crude Oil"},
		{"Jet Fuel A-1", "Jet Fuel A-1"},
		{"EN590 Diesel", "EN590 Diesel"},
		{"D6 Fuel Oil", "D6 Fuel Oil"},
	}

	DeliveryTermOptions = []Option{
		{"fob", "FOB — Free on Board"},
		{"cif", "CIF — Cost, Insurance, Freight"},
		{"either", "Either — Open to Negotiation"},
	}

	ContractDurationOptions = []Option{
		{"spot", "Single Lifting (Spot)"},
		{"3m", "3 Months"},
		{"6m", "6 Months"},
		{"12m", "12 Months"},
		{"24m", "24 Months+"},
	}

	FinancialInstrumentOptions = []Option{
		{"lc", "LC — Irrevocable Letter of Credit"},
		{"sblc", "SBLC — Standby Letter of Credit"},
		{"bcl", "BCL — Bank Comfort Letter"},
		{"pof", "Proof of Funds (POF)"},
		{"tt", "TT — Telegraphic Transfer"},
		{"undisclosed", "Undisclosed — Available on Request"},
	}

	EndUseOptions = []Option{
		{"refinery", "Refinery Feedstock"},
		{"power", "Power Generation"},
		{"aviation", "Aviation Fuel Supply"},
		{"industrial", "Industrial Operations"},
		{"marine", "Marine Bunkering"},
		{"distribution", "Downstream Distribution"},
		{"government", "Government Procurement"},
	}

	SourceOptions = []Option{
		{"referral", "Referral / Network"},
		{"search", "Online Search"},
		{"event", "Industry Event"},
		{"linkedin", "LinkedIn"},
		{"other", "Other"},
	}

	ContactMethodOptions = []Option{
		{"phone", "Phone Call"},
		{"whatsapp", "WhatsApp"},
	}

	TopicOptions = []Option{
		{"Crude Oil Purchase", "Crude Oil Purchase"},
		{"Seller Mandate", "Seller Mandate"},
		{"Refined Products", "Refined Products"},
		{"Compliance / KYC", "Compliance / KYC"},
		{"SPA Review", "SPA Review"},
		{"General Enquiry", "General Enquiry"},
	}

	TimeSlotOptions = []Option{
		{"08:00 – 10:00", "08:00 – 10:00"},
		{"10:00 – 12:00", "10:00 – 12:00"},
		{"12:00 – 14:00", "12:00 – 14:00"},
		{"14:00 – 16:00", "14:00 – 16:00"},
		{"16:00 – 18:00", "16:00 – 18:00"},
		{"Flexible / Any", "Flexible / Any"},
	}

	TimezoneOptions = []Option{
		{"est", "UTC−5 (EST — Eastern Time)"},
		{"cst-us", "UTC−6 (CST — Central Time)"},
		{"mst", "UTC−7 (MST — Mountain Time)"},
		{"pst", "UTC−8 (PST — Pacific Time)"},
		{"gmt", "UTC+0 (GMT — London)"},
		{"wat", "UTC+1 (WAT — Lagos)"},
		{"cat", "UTC+2 (CAT — Johannesburg)"},
		{"eat", "UTC+3 (EAT — Nairobi)"},
		{"gst", "UTC+4 (Gulf Standard Time)"},
		{"ist", "UTC+5:30 (IST — Mumbai)"},
		{"cst", "UTC+8 (CST — Singapore)"},
		{"jst", "UTC+9 (JST — Tokyo)"},
	}

	UrgencyOptions = []Option{
		{"urgent", "Urgent — Within 24 Hours"},
		{"high", "High — Within 48 Hours"},
		{"standard", "Standard — Within 1 Week"},
		{"exploratory", "Exploratory — No Rush"},
	}
)

// OptionsFor returns the catalogue backing a select or set field, or nil for free-text fields.
func OptionsFor(field string) []Option {
	switch field {
	case FieldProducts:
		return ProductOptions
	case FieldDeliveryTerms:
		return DeliveryTermOptions
	case FieldContractDuration:
		return ContractDurationOptions
	case FieldFinancialInstrument:
		return FinancialInstrumentOptions
	case FieldEndUse:
		return EndUseOptions
	case FieldSource:
		return SourceOptions
	case FieldContactMethod:
		return ContactMethodOptions
	case FieldTopics:
		return TopicOptions
	case FieldTimeSlot:
		return TimeSlotOptions
	case FieldTimezone:
		return TimezoneOptions
	case FieldUrgency:
		return UrgencyOptions
	}
	return nil
}
