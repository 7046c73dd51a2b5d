// Package wizard drives a multi-step lead form.
//
// A Controller holds the step position, the field values, the per-field errors and the
// submitted flag of one wizard kind. The render layer feeds it intents (UpdateField,
// ToggleSetField, GoNext, GoBack, Submit) and modal lifecycle events (Open, Close, Unmount),
// and reads back a View, either by polling or through Subscribe.
//
//	c := wizard.NewController(domain.KindMandate, adapter)
//	c.Open(ctx)
//	_ = c.UpdateField(domain.FieldFullName, "Ada Obi")
//	if !c.GoNext(ctx) {
//	    fmt.Println(c.View().FieldErrors)
//	}
//
// Each GoNext validates only the fields of the current step. Submit validates the last step,
// then the whole form, and hands the payload to the configured Submitter.
package wizard
