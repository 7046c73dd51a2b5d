package tui

import "github.com/aretw0/intake/pkg/domain"

// Success is the confirmation copy of a kind.
type Success struct {
	Title     string
	Body      string
	NextTitle string
	Next      []string
}

var success = map[domain.Kind]Success{
	domain.KindMandate: {
		Title:     "Mandate Received",
		Body:      "Your buyer mandate has been submitted successfully. Our brokerage team will review your submission and respond to qualified mandates within 48 business hours.",
		NextTitle: "What Happens Next",
		Next: []string{
			"Compliance team initiates KYC review of your entity",
			"Financial capacity and mandate authenticity verified",
			"Qualified buyers receive formal SCO from seller mandate",
			"ICPO exchange and SPA process commences",
		},
	},
	domain.KindSpeak: {
		Title:     "Request Confirmed",
		Body:      "Your consultation request has been received. A member of our brokerage team will contact you at your specified time to confirm the appointment.",
		NextTitle: "Consultation Protocol",
		Next: []string{
			"Confirmation email sent within 2 business hours",
			"NDA executed prior to discussion commencement",
			"Senior specialist assigned to your enquiry",
			"Follow-up documentation provided post-call",
		},
	},
}

// SuccessCopy returns the confirmation copy of kind.
func SuccessCopy(kind domain.Kind) Success {
	return success[kind]
}

var labels = map[string]string{
	domain.FieldFullName:            "Full Legal Name",
	domain.FieldTitle:               "Designation / Title",
	domain.FieldCompany:             "Company Name",
	domain.FieldCountry:             "Country of Incorporation",
	domain.FieldEmail:               "Corporate Email",
	domain.FieldPhone:               "Phone / WhatsApp",
	domain.FieldRegistrationNumber:  "Company Registration Number",
	domain.FieldProducts:            "Product of Interest (select all that apply)",
	domain.FieldVolume:              "Monthly Volume Requirement (BBL)",
	domain.FieldDeliveryTerms:       "Preferred Delivery Terms",
	domain.FieldDestinationPort:     "Destination Port / Country",
	domain.FieldContractDuration:    "Preferred Contract Duration",
	domain.FieldFinancialInstrument: "Financial Instrument Available",
	domain.FieldEndUse:              "End-Use / Industry",
	domain.FieldSource:              "How Did You Hear About Us",
	domain.FieldNotes:               "Additional Information / Notes",
	domain.FieldContactMethod:       "Preferred Contact Method",
	domain.FieldTopics:              "Discussion Topic (select all relevant)",
	domain.FieldTimeSlot:            "Preferred Time (Eastern Time, UTC−5)",
	domain.FieldTimezone:            "Your Timezone",
	domain.FieldUrgency:             "Urgency Level",
	domain.FieldAgenda:              "Agenda / Preparation Notes",
}

var speakLabels = map[string]string{
	domain.FieldFullName: "Full Name",
	domain.FieldEmail:    "Email Address",
}

// FieldLabel returns the caption shown for field in the given flow.
func FieldLabel(kind domain.Kind, field string) string {
	if kind == domain.KindSpeak {
		if l, ok := speakLabels[field]; ok {
			return l
		}
	}
	if l, ok := labels[field]; ok {
		return l
	}
	return field
}
