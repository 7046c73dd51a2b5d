// Package schema provides ordered, rule-based validation of field maps.
//
// A Schema is an ordered list of fields. Each field names a key, the type its value must have,
// whether string values are trimmed first, and a pipeline of rules. Every rule that fails
// yields one issue, so a field can report several problems at once; a failed type check stops
// the pipeline for that field.
//
// Basic usage:
//
//	s := schema.Schema{
//	    schema.Text("fullName",
//	        schema.MinLength(2, "Full name must be at least 2 characters"),
//	        schema.MaxLength(100, "Full name must be less than 100 characters"),
//	    ),
//	    schema.Number("volume",
//	        schema.MinValue(500000, "Minimum volume is 500,000 BBL"),
//	    ),
//	}
//
//	if err := schema.Validate(s, data); err != nil {
//	    for _, issue := range schema.Issues(err) {
//	        fmt.Println(issue.Field, issue.Message)
//	    }
//	}
//
// Issues come out in schema order, then rule order. Schemas for several steps combine with
// Merge.
//
// This package has no dependencies beyond the Go standard library.
package schema
