package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/intake/internal/logging"
	"github.com/aretw0/intake/internal/presentation/tui"
	"github.com/aretw0/intake/pkg/domain"
	"github.com/aretw0/intake/pkg/session"
	"github.com/aretw0/intake/pkg/wizard"
	"github.com/google/go-cmp/cmp"
)

// RunOptions configures an interactive wizard session.
type RunOptions struct {
	Kind   domain.Kind
	In     io.Reader
	Out    io.Writer
	Render tui.RenderFunc
	Logger *slog.Logger
	// Fresh discards any saved draft before the first step is shown.
	Fresh bool
}

// Outcome tells how a session ended.
type Outcome string

const (
	OutcomeSubmitted Outcome = "submitted"
	OutcomeClosed    Outcome = "closed"
	OutcomeQuit      Outcome = "quit"
	OutcomeEOF       Outcome = "eof"
)

// Result summarises a finished session.
type Result struct {
	Outcome   Outcome
	Reference string
}

// prompt drives one controller from line input.
type prompt struct {
	ctx    context.Context
	c      *wizard.Controller
	opts   RunOptions
	result Result
}

// RunWizard opens the wizard of opts.Kind and feeds it commands read line by line from opts.In
// until the form is closed, the user quits, or input ends.
func RunWizard(ctx context.Context, mgr *session.Manager, opts RunOptions) (Result, error) {
	if opts.Render == nil {
		opts.Render = tui.Plain
	}
	if opts.Logger == nil {
		opts.Logger = logging.NewNop()
	}

	c, err := mgr.Acquire(opts.Kind)
	if err != nil {
		return Result{}, err
	}
	defer mgr.Release(opts.Kind)

	p := &prompt{ctx: ctx, c: c, opts: opts}
	c.Open(ctx)
	if opts.Fresh {
		c.Close(ctx)
		if err := c.WaitClosed(ctx); err != nil {
			return Result{}, err
		}
		c.Open(ctx)
	}
	if v := c.View(); !cmp.Equal(v.Form, domain.DefaultForm()) {
		printSystemMessage(opts.Out, "Restored your saved draft.")
	}
	opts.Logger.Info("wizard opened", "kind", opts.Kind)
	p.show()

	scanner := bufio.NewScanner(opts.In)
	for {
		fmt.Fprint(opts.Out, "> ")
		if !scanner.Scan() {
			break
		}
		done, err := p.handle(scanner.Text())
		if err != nil {
			return p.result, err
		}
		if done {
			return p.result, nil
		}
		if ctx.Err() != nil {
			return p.result, ctx.Err()
		}
	}
	if err := scanner.Err(); err != nil {
		return p.result, fmt.Errorf("reading input: %w", err)
	}
	if p.result.Outcome == "" {
		p.result.Outcome = OutcomeEOF
	}
	return p.result, nil
}

// handle runs one line. It returns true when the session is over.
func (p *prompt) handle(line string) (bool, error) {
	cmd, err := ParseCommand(line)
	if err != nil {
		printSystemMessage(p.opts.Out, "%v (type 'help')", err)
		return false, nil
	}

	switch cmd.Verb {
	case VerbHelp:
		fmt.Fprint(p.opts.Out, helpText)
	case VerbShow:
		p.show()
	case VerbSet:
		p.mutate(p.c.UpdateField(cmd.Field, cmd.SetValue()))
	case VerbToggle:
		p.mutate(p.c.ToggleSetField(cmd.Field, cmd.Value))
	case VerbOptions:
		if md := tui.OptionsMarkdown(cmd.Field); md != "" {
			p.print(md)
		} else {
			printSystemMessage(p.opts.Out, "%s is free text", cmd.Field)
		}
	case VerbNext:
		before := p.c.View().Step
		ok := p.c.GoNext(p.ctx)
		v := p.c.View()
		if ok && v.Step == before {
			printSystemMessage(p.opts.Out, "All steps complete. Type 'submit' to send.")
			return false, nil
		}
		p.show()
	case VerbBack:
		p.c.GoBack()
		p.show()
	case VerbSubmit:
		return p.submit(), nil
	case VerbReset:
		p.c.Reset()
		p.show()
	case VerbClose:
		p.c.Close(p.ctx)
		if err := p.c.WaitClosed(p.ctx); err != nil {
			return true, err
		}
		if p.result.Outcome == "" {
			p.result.Outcome = OutcomeClosed
		}
		printSystemMessage(p.opts.Out, "Form closed.")
		return true, nil
	case VerbQuit:
		p.c.Flush(p.ctx)
		p.result.Outcome = OutcomeQuit
		printSystemMessage(p.opts.Out, "Draft kept. Bye.")
		return true, nil
	}
	return false, nil
}

func (p *prompt) submit() bool {
	v := p.c.View()
	if v.Submitted {
		printSystemMessage(p.opts.Out, "Already submitted (REF: %s). Type 'close' to finish.", v.Reference)
		return false
	}
	if v.Step != v.TotalSteps {
		printSystemMessage(p.opts.Out, "Submit is available on the last step (%d of %d).", v.Step, v.TotalSteps)
		return false
	}

	ref, ok := p.c.Submit(p.ctx)
	if !ok {
		if p.c.View().HasErrors() {
			p.show()
		} else {
			printSystemMessage(p.opts.Out, "Submission failed. Please try again.")
		}
		return false
	}
	p.result = Result{Outcome: OutcomeSubmitted, Reference: ref}
	p.opts.Logger.Info("wizard submitted", "kind", p.opts.Kind, "reference", ref)
	p.print(tui.SuccessMarkdown(p.opts.Kind, ref))
	printSystemMessage(p.opts.Out, "Type 'close' to finish.")
	return false
}

func (p *prompt) mutate(err error) {
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrSubmitted):
		printSystemMessage(p.opts.Out, "The form was already submitted. Type 'close' to finish.")
	default:
		printSystemMessage(p.opts.Out, "%v", err)
	}
}

func (p *prompt) show() {
	v := p.c.View()
	if v.Submitted {
		p.print(tui.SuccessMarkdown(v.Kind, v.Reference))
		return
	}
	p.print(tui.StepMarkdown(v))
}

func (p *prompt) print(md string) {
	out, err := p.opts.Render(md)
	if err != nil {
		out = md
	}
	fmt.Fprint(p.opts.Out, out)
}
