// Package submission builds the payload handed over when a wizard is submitted, and provides
// the logging stub that stands in for a real lead pipeline.
package submission
