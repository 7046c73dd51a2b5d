/*
Package intake is the core of a multi-step lead-capture form shown in a modal dialog.

Two flows are supported: the three-step buyer Mandate (company information, product and
volume, transaction details) and the two-step Speak consultation request (contact details,
scheduling). Each flow is a wizard state machine with step-scoped validation, a whole-object
check at submission, and debounced persistence of partially filled forms that survives reloads.

# Architecture

The render layer is a collaborator: it feeds user intents to a wizard.Controller and reads
back a wizard.View. Everything behind the controller is a port:

  - ports.SnapshotStore keeps drafts under "modal-form-<kind>" (memory, file, SQLite, Redis),
    optionally wrapped in AES-GCM encryption.
  - ports.Submitter receives the validated payload. The default only logs it, with contact
    details masked.

# Usage

	store := file.New(".intake/snapshots")
	in := intake.New(store)
	defer in.Close()

	c, err := in.Wizard(domain.KindMandate)
	if err != nil {
		log.Fatal(err)
	}
	defer in.Release(domain.KindMandate)

	ctx := context.Background()
	c.Open(ctx) // restores a fresh draft, if any
	_ = c.UpdateField(domain.FieldFullName, "Ada Obi")
	if !c.GoNext(ctx) {
		fmt.Println(c.View().FieldErrors)
	}

When the user reaches the last step, Submit returns the confirmation reference, e.g.
"EST-482910", and the draft is cleared.
*/
package intake
