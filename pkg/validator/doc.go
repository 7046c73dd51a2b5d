// Package validator maps each wizard step to the schema that guards it.
//
// Every (kind, step) pair has a schema restricted to the fields shown on that step, and every
// kind has a complete schema, the union of its step schemas, which is run once more when the
// form is submitted. Validation never fails with an error: problems come back as ordered
// schema.Issue values keyed by FormState field name.
package validator
