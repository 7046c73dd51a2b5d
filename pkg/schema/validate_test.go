package schema

import (
	"encoding/json"
	"reflect"
	"testing"
)

func testSchema() Schema {
	return Schema{
		Text("fullName",
			MinLength(2, "Full name must be at least 2 characters"),
			MaxLength(5, "Full name must be less than 5 characters"),
		),
		Text("email",
			NonEmpty("Email is required"),
			Email("Please enter a valid email"),
		),
		Number("volume",
			MinValue(10, "too small"),
		),
	}
}

func TestValidate_Success(t *testing.T) {
	data := map[string]any{
		"fullName": "  Ada ",
		"email":    "ada@example.com",
		"volume":   10,
	}

	if err := Validate(testSchema(), data); err != nil {
		t.Errorf("Validate() error = %v, want nil", err)
	}
}

func TestValidate_TrimBeforeRules(t *testing.T) {
	data := map[string]any{"fullName": "   A   ", "email": "a@b.io", "volume": 10}

	issues := Issues(Validate(testSchema(), data))
	want := []Issue{{Field: "fullName", Message: "Full name must be at least 2 characters"}}
	if !reflect.DeepEqual(issues, want) {
		t.Errorf("Issues() = %v, want %v", issues, want)
	}
}

func TestValidate_OrderAndAllRules(t *testing.T) {
	data := map[string]any{"fullName": "A", "email": "", "volume": 1}

	issues := Issues(Validate(testSchema(), data))
	want := []Issue{
		{Field: "fullName", Message: "Full name must be at least 2 characters"},
		{Field: "email", Message: "Email is required"},
		{Field: "email", Message: "Please enter a valid email"},
		{Field: "volume", Message: "too small"},
	}
	if !reflect.DeepEqual(issues, want) {
		t.Errorf("Issues() = %v, want %v", issues, want)
	}
}

func TestValidate_MissingField(t *testing.T) {
	data := map[string]any{"fullName": "Ada", "email": "ada@example.com"}

	err := Validate(testSchema(), data)
	if err == nil {
		t.Fatal("Validate() should return error for missing field")
	}

	aggr, ok := err.(*AggregateError)
	if !ok {
		t.Fatalf("error should be *AggregateError, got %T", err)
	}
	if len(aggr.Errors) != 1 {
		t.Fatalf("Validate() = %d errors, want 1", len(aggr.Errors))
	}

	validErr, ok := aggr.Errors[0].(*ValidationError)
	if !ok {
		t.Fatalf("error should be *ValidationError, got %T", aggr.Errors[0])
	}
	if validErr.Key != "volume" || validErr.Reason != "required" {
		t.Errorf("error = %+v, want volume/required", validErr)
	}
}

func TestValidate_TypeMismatchStopsPipeline(t *testing.T) {
	data := map[string]any{"fullName": 7, "email": "ada@example.com", "volume": 10}

	issues := Issues(Validate(testSchema(), data))
	if len(issues) != 1 {
		t.Fatalf("Issues() = %v, want a single type issue", issues)
	}
	if issues[0].Field != "fullName" || issues[0].Message != "expected string, got int" {
		t.Errorf("issue = %+v", issues[0])
	}
}

func TestValidate_EmptySchema(t *testing.T) {
	if err := Validate(nil, map[string]any{"x": 1}); err != nil {
		t.Errorf("Validate(nil) error = %v, want nil", err)
	}
}

func TestValidateFields(t *testing.T) {
	data := map[string]any{"fullName": "A", "email": "bad", "volume": 10}

	issues := Issues(ValidateFields(testSchema(), data, "email", "ghost"))
	want := []Issue{
		{Field: "email", Message: "Please enter a valid email"},
		{Field: "ghost", Message: "not defined in schema"},
	}
	if !reflect.DeepEqual(issues, want) {
		t.Errorf("Issues() = %v, want %v", issues, want)
	}
}

func TestMerge(t *testing.T) {
	a := Schema{Text("a"), Text("b")}
	b := Schema{Number("b"), Text("c")}

	merged := Merge(a, b)
	if got := merged.Keys(); !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Errorf("Keys() = %v", got)
	}
	f, _ := merged.Field("b")
	if f.Type.Name() != "int" {
		t.Errorf("later declaration should win, got type %s", f.Type.Name())
	}
}

func TestSchema_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(Schema{Text("fullName", MinLength(2, "x"))})
	if err != nil {
		t.Fatal(err)
	}
	want := `[{"key":"fullName","type":"string","trim":true,"rules":["min_length(2)"]}]`
	if string(data) != want {
		t.Errorf("MarshalJSON() = %s, want %s", data, want)
	}
}

func TestIssues_NonValidationError(t *testing.T) {
	if got := Issues(nil); got != nil {
		t.Errorf("Issues(nil) = %v", got)
	}
	single := &ValidationError{Key: "k", Reason: "r"}
	if got := Issues(single); !reflect.DeepEqual(got, []Issue{{Field: "k", Message: "r"}}) {
		t.Errorf("Issues(single) = %v", got)
	}
}
