package schema

import "testing"

func TestStringType(t *testing.T) {
	typ := String()

	if typ.Name() != "string" {
		t.Errorf("Name() = %q, want %q", typ.Name(), "string")
	}

	tests := []struct {
		value   any
		wantErr bool
	}{
		{"hello", false},
		{"", false},
		{42, true},
		{true, true},
		{nil, true},
	}

	for _, tt := range tests {
		err := typ.Validate(tt.value)
		if (err != nil) != tt.wantErr {
			t.Errorf("Validate(%v) error = %v, wantErr %v", tt.value, err, tt.wantErr)
		}
	}
}

func TestIntType(t *testing.T) {
	typ := Int()

	tests := []struct {
		value   any
		wantErr bool
	}{
		{42, false},
		{int64(42), false},
		{float64(1000000), false}, // whole number
		{float64(42.5), true},     // not whole
		{"42", true},
		{nil, true},
	}

	for _, tt := range tests {
		err := typ.Validate(tt.value)
		if (err != nil) != tt.wantErr {
			t.Errorf("Validate(%v) error = %v, wantErr %v", tt.value, err, tt.wantErr)
		}
	}
}

func TestStringSetType(t *testing.T) {
	typ := StringSet()

	if typ.Name() != "[string]" {
		t.Errorf("Name() = %q, want %q", typ.Name(), "[string]")
	}

	tests := []struct {
		value   any
		wantErr bool
	}{
		{[]string{"a", "b"}, false},
		{[]string{}, false},
		{[]any{"a", "b"}, false},
		{[]any{"a", 1}, true},
		{"a", true},
	}

	for _, tt := range tests {
		err := typ.Validate(tt.value)
		if (err != nil) != tt.wantErr {
			t.Errorf("Validate(%v) error = %v, wantErr %v", tt.value, err, tt.wantErr)
		}
	}
}

func TestRules(t *testing.T) {
	tests := []struct {
		name  string
		rule  Rule
		value any
		want  bool
	}{
		{"min length ok", MinLength(2, ""), "Al", true},
		{"min length short", MinLength(2, ""), "A", false},
		{"min length counts runes", MinLength(2, ""), "Zé", true},
		{"max length ok", MaxLength(3, ""), "abc", true},
		{"max length long", MaxLength(3, ""), "abcd", false},
		{"non empty", NonEmpty(""), "", false},
		{"email ok", Email(""), "ada.obi@refinery.ng", true},
		{"email plus", Email(""), "trader+desk@brent-oil.co.uk", true},
		{"email no tld", Email(""), "ada@localhost", false},
		{"email no at", Email(""), "ada.refinery.ng", false},
		{"email empty", Email(""), "", false},
		{"email no domain", Email(""), "ada@", false},
		{"email inner space", Email(""), "ada obi@refinery.ng", false},
		{"min value edge", MinValue(500000, ""), 500000, true},
		{"min value below", MinValue(500000, ""), 499999, false},
		{"max value float", MaxValue(5000000, ""), float64(5000001), false},
		{"min items", MinItems(1, ""), []string{}, false},
		{"max items", MaxItems(2, ""), []string{"a", "b", "c"}, false},
		{"one of empty passes", OneOf([]string{"fob"}, ""), "", true},
		{"one of unknown", OneOf([]string{"fob"}, ""), "dap", false},
		{"each one of", EachOneOf([]string{"a", "b"}, ""), []string{"a", "b"}, true},
		{"each one of unknown", EachOneOf([]string{"a", "b"}, ""), []string{"a", "z"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rule.Check(tt.value); got != tt.want {
				t.Errorf("%s.Check(%v) = %v, want %v", tt.rule.Name(), tt.value, got, tt.want)
			}
		})
	}
}
