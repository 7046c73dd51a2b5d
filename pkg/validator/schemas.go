package validator

import (
	"github.com/aretw0/intake/pkg/domain"
	"github.com/aretw0/intake/pkg/schema"
)

// Volume bounds in barrels.
const (
	MinVolume = 500000
	MaxVolume = 5000000
)

// Set size caps.
const (
	MaxProducts = 5
	MaxTopics   = 6
)

// MaxFreeText bounds the optional notes and agenda fields.
const MaxFreeText = 1000

func email() schema.Field {
	return schema.Text(domain.FieldEmail,
		schema.NonEmpty("Email is required"),
		schema.Email("Please enter a valid email"),
	)
}

func phone() schema.Field {
	return schema.Text(domain.FieldPhone,
		schema.MinLength(10, "Phone number must be at least 10 characters"),
		schema.MaxLength(20, "Phone number must be less than 20 characters"),
	)
}

func choice(key string, opts []domain.Option, required, invalid string) schema.Field {
	return schema.Choice(key,
		schema.NonEmpty(required),
		schema.OneOf(domain.Values(opts), invalid),
	)
}

var mandateStep1 = schema.Schema{
	schema.Text(domain.FieldFullName,
		schema.MinLength(2, "Full name must be at least 2 characters"),
		schema.MaxLength(100, "Full name must be less than 100 characters"),
	),
	schema.Text(domain.FieldTitle,
		schema.MinLength(2, "Title must be at least 2 characters"),
		schema.MaxLength(100, "Title must be less than 100 characters"),
	),
	schema.Text(domain.FieldCompany,
		schema.MinLength(2, "Company name must be at least 2 characters"),
		schema.MaxLength(200, "Company name must be less than 200 characters"),
	),
	schema.Text(domain.FieldCountry,
		schema.MinLength(2, "Country must be at least 2 characters"),
		schema.MaxLength(100, "Country must be less than 100 characters"),
	),
	email(),
	phone(),
	schema.Text(domain.FieldRegistrationNumber,
		schema.MinLength(3, "Registration number must be at least 3 characters"),
		schema.MaxLength(50, "Registration number must be less than 50 characters"),
	),
}

var mandateStep2 = schema.Schema{
	schema.Set(domain.FieldProducts,
		schema.MinItems(1, "Please select at least one product"),
		schema.MaxItems(MaxProducts, "Maximum 5 products can be selected"),
		schema.EachOneOf(domain.Values(domain.ProductOptions), "Please select products from the list"),
	),
	schema.Number(domain.FieldVolume,
		schema.MinValue(MinVolume, "Minimum volume is 500,000 BBL"),
		schema.MaxValue(MaxVolume, "Maximum volume is 5,000,000 BBL"),
	),
	choice(domain.FieldDeliveryTerms, domain.DeliveryTermOptions,
		"Please select delivery terms", "Please select valid delivery terms"),
	schema.Text(domain.FieldDestinationPort,
		schema.MinLength(2, "Destination port must be at least 2 characters"),
		schema.MaxLength(200, "Destination port must be less than 200 characters"),
	),
	choice(domain.FieldContractDuration, domain.ContractDurationOptions,
		"Please select contract duration", "Please select a valid contract duration"),
}

var mandateStep3 = schema.Schema{
	choice(domain.FieldFinancialInstrument, domain.FinancialInstrumentOptions,
		"Please select a financial instrument", "Please select a valid financial instrument"),
	choice(domain.FieldEndUse, domain.EndUseOptions,
		"Please select end-use", "Please select a valid end-use"),
	choice(domain.FieldSource, domain.SourceOptions,
		"Please select how you heard about us", "Please select a valid source"),
	schema.Text(domain.FieldNotes,
		schema.MaxLength(MaxFreeText, "Notes must be less than 1000 characters"),
	),
}

var speakStep1 = schema.Schema{
	schema.Text(domain.FieldFullName,
		schema.MinLength(2, "Full name must be at least 2 characters"),
		schema.MaxLength(50, "Full name must be less than 50 characters"),
	),
	schema.Text(domain.FieldCompany,
		schema.MinLength(2, "Company name must be at least 2 characters"),
		schema.MaxLength(50, "Company name must be less than 50 characters"),
	),
	email(),
	phone(),
	choice(domain.FieldContactMethod, domain.ContactMethodOptions,
		"Please select a contact method", "Please select a valid contact method"),
	schema.Set(domain.FieldTopics,
		schema.MinItems(1, "Please select at least one discussion topic"),
		schema.MaxItems(MaxTopics, "Maximum 6 topics can be selected"),
		schema.EachOneOf(domain.Values(domain.TopicOptions), "Please select topics from the list"),
	),
}

var speakStep2 = schema.Schema{
	choice(domain.FieldTimeSlot, domain.TimeSlotOptions,
		"Please select a preferred time slot", "Please select a valid time slot"),
	choice(domain.FieldTimezone, domain.TimezoneOptions,
		"Please select your timezone", "Please select a valid timezone"),
	choice(domain.FieldUrgency, domain.UrgencyOptions,
		"Please select urgency level", "Please select a valid urgency level"),
	schema.Text(domain.FieldAgenda,
		schema.MaxLength(MaxFreeText, "Agenda must be less than 1000 characters"),
	),
}

var steps = map[domain.Kind][]schema.Schema{
	domain.KindMandate: {mandateStep1, mandateStep2, mandateStep3},
	domain.KindSpeak:   {speakStep1, speakStep2},
}
