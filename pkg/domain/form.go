package domain

import (
	"fmt"
	"slices"

	"github.com/mitchellh/mapstructure"
)

// Field names, identical to the JSON keys of FormState and to the keys of field errors.
const (
	FieldFullName            = "fullName"
	FieldTitle               = "title"
	FieldCompany             = "company"
	FieldCountry             = "country"
	FieldEmail               = "email"
	FieldPhone               = "phone"
	FieldRegistrationNumber  = "registrationNumber"
	FieldProducts            = "products"
	FieldVolume              = "volume"
	FieldDeliveryTerms       = "deliveryTerms"
	FieldDestinationPort     = "destinationPort"
	FieldContractDuration    = "contractDuration"
	FieldFinancialInstrument = "financialInstrument"
	FieldEndUse              = "endUse"
	FieldSource              = "source"
	FieldNotes               = "notes"
	FieldContactMethod       = "contactMethod"
	FieldTopics              = "topics"
	FieldTimeSlot            = "timeSlot"
	FieldTimezone            = "timezone"
	FieldUrgency             = "urgency"
	FieldAgenda              = "agenda"
)

// Defaults applied to a fresh form.
const (
	DefaultVolume        = 1000000
	DefaultContactMethod = "phone"
)

// FieldNames lists every FormState field in declaration order.
var FieldNames = []string{
	FieldFullName, FieldTitle, FieldCompany, FieldCountry, FieldEmail, FieldPhone,
	FieldRegistrationNumber, FieldProducts, FieldVolume, FieldDeliveryTerms,
	FieldDestinationPort, FieldContractDuration, FieldFinancialInstrument, FieldEndUse,
	FieldSource, FieldNotes, FieldContactMethod, FieldTopics, FieldTimeSlot, FieldTimezone,
	FieldUrgency, FieldAgenda,
}

// FormState holds every value the Mandate and Speak flows collect.
// Each kind validates only its own subset; the rest is ignored.
type FormState struct {
	// Identity
	FullName           string `json:"fullName" mapstructure:"fullName" yaml:"fullName"`
	Title              string `json:"title" mapstructure:"title" yaml:"title"`
	Company            string `json:"company" mapstructure:"company" yaml:"company"`
	Country            string `json:"country" mapstructure:"country" yaml:"country"`
	Email              string `json:"email" mapstructure:"email" yaml:"email"`
	Phone              string `json:"phone" mapstructure:"phone" yaml:"phone"`
	RegistrationNumber string `json:"registrationNumber" mapstructure:"registrationNumber" yaml:"registrationNumber"`

	// Commercial terms
	Products         []string `json:"products" mapstructure:"products" yaml:"products"`
	Volume           int      `json:"volume" mapstructure:"volume" yaml:"volume"`
	DeliveryTerms    string   `json:"deliveryTerms" mapstructure:"deliveryTerms" yaml:"deliveryTerms"`
	DestinationPort  string   `json:"destinationPort" mapstructure:"destinationPort" yaml:"destinationPort"`
	ContractDuration string   `json:"contractDuration" mapstructure:"contractDuration" yaml:"contractDuration"`

	// Transaction context
	FinancialInstrument string `json:"financialInstrument" mapstructure:"financialInstrument" yaml:"financialInstrument"`
	EndUse              string `json:"endUse" mapstructure:"endUse" yaml:"endUse"`
	Source              string `json:"source" mapstructure:"source" yaml:"source"`
	Notes               string `json:"notes" mapstructure:"notes" yaml:"notes"`

	// Consultation
	ContactMethod string   `json:"contactMethod" mapstructure:"contactMethod" yaml:"contactMethod"`
	Topics        []string `json:"topics" mapstructure:"topics" yaml:"topics"`
	TimeSlot      string   `json:"timeSlot" mapstructure:"timeSlot" yaml:"timeSlot"`
	Timezone      string   `json:"timezone" mapstructure:"timezone" yaml:"timezone"`
	Urgency       string   `json:"urgency" mapstructure:"urgency" yaml:"urgency"`
	Agenda        string   `json:"agenda" mapstructure:"agenda" yaml:"agenda"`
}

// DefaultForm returns the state of a freshly opened wizard.
func DefaultForm() FormState {
	return FormState{
		Products:      []string{},
		Volume:        DefaultVolume,
		ContactMethod: DefaultContactMethod,
		Topics:        []string{},
	}
}

// IsField reports whether name is a FormState field.
func IsField(name string) bool {
	return slices.Contains(FieldNames, name)
}

// IsSetField reports whether name holds a set of labels (products, topics).
func IsSetField(name string) bool {
	return name == FieldProducts || name == FieldTopics
}

// Clone returns a copy that shares no slices with f.
func (f FormState) Clone() FormState {
	out := f
	out.Products = slices.Clone(f.Products)
	out.Topics = slices.Clone(f.Topics)
	if out.Products == nil {
		out.Products = []string{}
	}
	if out.Topics == nil {
		out.Topics = []string{}
	}
	return out
}

// Get returns the value of a field, or false if the name is unknown.
func (f *FormState) Get(name string) (any, bool) {
	switch {
	case name == FieldVolume:
		return f.Volume, true
	case IsSetField(name):
		return slices.Clone(*f.set(name)), true
	case IsField(name):
		return *f.text(name), true
	}
	return nil, false
}

// Values returns a field-name keyed view of the form, as consumed by schema validation.
func (f *FormState) Values() map[string]any {
	out := make(map[string]any, len(FieldNames))
	for _, name := range FieldNames {
		v, _ := f.Get(name)
		out[name] = v
	}
	return out
}

// Set patches a single field. Values are coerced to the field type with weak typing, so
// "1200000" is accepted for volume and a lone string for a set field. Set fields drop repeated
// labels, keeping the first occurrence. A nil value clears the field.
func (f *FormState) Set(name string, value any) error {
	if !IsField(name) {
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}

	switch {
	case name == FieldVolume:
		var v int
		if err := weakDecode(value, &v); err != nil {
			return fmt.Errorf("%w %q: %v", ErrFieldType, name, err)
		}
		f.Volume = v
	case IsSetField(name):
		v := []string{}
		if err := weakDecode(value, &v); err != nil {
			return fmt.Errorf("%w %q: %v", ErrFieldType, name, err)
		}
		*f.set(name) = dedupe(v)
	default:
		var v string
		if err := weakDecode(value, &v); err != nil {
			return fmt.Errorf("%w %q: %v", ErrFieldType, name, err)
		}
		*f.text(name) = v
	}
	return nil
}

// Toggle adds value to a set field when absent and removes it when present.
func (f *FormState) Toggle(name, value string) error {
	if !IsField(name) {
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	if !IsSetField(name) {
		return fmt.Errorf("%w: %q", ErrNotSetField, name)
	}

	ptr := f.set(name)
	if i := slices.Index(*ptr, value); i >= 0 {
		*ptr = slices.Delete(slices.Clone(*ptr), i, i+1)
		return nil
	}
	*ptr = append(slices.Clone(*ptr), value)
	return nil
}

// Merge applies every known key of values over f. Unknown keys are skipped and returned so
// callers can log them; a value of the wrong type aborts with ErrFieldType.
func (f *FormState) Merge(values map[string]any) ([]string, error) {
	var ignored []string
	for _, name := range sortedKeys(values) {
		if !IsField(name) {
			ignored = append(ignored, name)
			continue
		}
		if err := f.Set(name, values[name]); err != nil {
			return ignored, err
		}
	}
	return ignored, nil
}

func (f *FormState) set(name string) *[]string {
	if name == FieldProducts {
		return &f.Products
	}
	return &f.Topics
}

func (f *FormState) text(name string) *string {
	switch name {
	case FieldFullName:
		return &f.FullName
	case FieldTitle:
		return &f.Title
	case FieldCompany:
		return &f.Company
	case FieldCountry:
		return &f.Country
	case FieldEmail:
		return &f.Email
	case FieldPhone:
		return &f.Phone
	case FieldRegistrationNumber:
		return &f.RegistrationNumber
	case FieldDeliveryTerms:
		return &f.DeliveryTerms
	case FieldDestinationPort:
		return &f.DestinationPort
	case FieldContractDuration:
		return &f.ContractDuration
	case FieldFinancialInstrument:
		return &f.FinancialInstrument
	case FieldEndUse:
		return &f.EndUse
	case FieldSource:
		return &f.Source
	case FieldNotes:
		return &f.Notes
	case FieldContactMethod:
		return &f.ContactMethod
	case FieldTimeSlot:
		return &f.TimeSlot
	case FieldTimezone:
		return &f.Timezone
	case FieldUrgency:
		return &f.Urgency
	case FieldAgenda:
		return &f.Agenda
	}
	panic("domain: no text field " + name)
}

func weakDecode(input, out any) error {
	if input == nil {
		return nil
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	return dec.Decode(input)
}

func dedupe(labels []string) []string {
	out := make([]string, 0, len(labels))
	for _, l := range labels {
		if !slices.Contains(out, l) {
			out = append(out, l)
		}
	}
	return out
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
