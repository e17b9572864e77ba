// Package reconcile drives each declared file set from detection through
// prompting to the final write.
package reconcile

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/unkn0wn-root/envconf/internal/config"
	"github.com/unkn0wn-root/envconf/internal/drift"
	"github.com/unkn0wn-root/envconf/internal/envtext"
	"github.com/unkn0wn-root/envconf/internal/errdef"
	"github.com/unkn0wn-root/envconf/internal/filesvc"
	"github.com/unkn0wn-root/envconf/internal/logging"
	"github.com/unkn0wn-root/envconf/internal/policy"
	"github.com/unkn0wn-root/envconf/internal/prompt"
)

// Reporter receives the human-readable status of each file set.
type Reporter interface {
	Synced(output string) error
	Missing(output string, n int) error
	Configuring(template string) error
	Updated(output string) error
	Created(output string) error
	WouldCreate(output string, n int) error
	Diff(output, before, after string) error
}

type Reconciler struct {
	fs       filesvc.FS
	prompter prompt.Prompter
	report   Reporter
	log      *logging.Logger
	tracer   trace.Tracer
	dryRun   bool
	check    bool
}

type Option func(*Reconciler)

func WithLogger(l *logging.Logger) Option {
	return func(r *Reconciler) {
		if l != nil {
			r.log = l
		}
	}
}

func WithTracer(t trace.Tracer) Option {
	return func(r *Reconciler) {
		if t != nil {
			r.tracer = t
		}
	}
}

// WithDryRun prompts as usual but reports a diff instead of writing.
func WithDryRun(on bool) Option {
	return func(r *Reconciler) { r.dryRun = on }
}

// WithCheck only detects drift. Nothing is prompted or written.
func WithCheck(on bool) Option {
	return func(r *Reconciler) { r.check = on }
}

func New(fsys filesvc.FS, p prompt.Prompter, rep Reporter, opts ...Option) *Reconciler {
	r := &Reconciler{
		fs:       fsys,
		prompter: p,
		report:   rep,
		log:      logging.Nop(),
		tracer:   noop.NewTracerProvider().Tracer("envconf"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run processes sets one after another in the given order. The first error
// stops the run; sets finished before it keep their writes.
func (r *Reconciler) Run(ctx context.Context, sets []config.FileSet) ([]Result, error) {
	ctx, span := r.tracer.Start(ctx, "envconf.run", trace.WithAttributes(
		attribute.Int("envconf.sets", len(sets)),
		attribute.Bool("envconf.check", r.check),
		attribute.Bool("envconf.dry_run", r.dryRun),
	))
	defer span.End()

	results := make([]Result, 0, len(sets))
	drifted := 0
	for _, set := range sets {
		res, err := r.Reconcile(ctx, set)
		results = append(results, res)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return results, err
		}
		if res.Drifted() {
			drifted++
		}
	}
	if r.check && drifted > 0 {
		err := errdef.New(errdef.CodeDrift, "%d of %d file sets out of sync", drifted, len(sets))
		span.SetStatus(codes.Error, err.Error())
		return results, err
	}
	return results, nil
}

// Reconcile runs a single file set through Init, the detected state and Done.
func (r *Reconciler) Reconcile(ctx context.Context, set config.FileSet) (res Result, err error) {
	ctx, span := r.tracer.Start(ctx, "envconf.fileset", trace.WithAttributes(
		attribute.String("envconf.set", set.Name),
	))
	defer func() {
		span.SetAttributes(
			attribute.String("envconf.state", res.State.String()),
			attribute.Int("envconf.pending", len(res.Pending)),
		)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	log := r.log.With("set", set.Name)
	res = Result{Name: set.Name, State: StateInit, Output: set.Output}

	exists, err := r.fs.Exists(set.Output)
	if err != nil {
		return res, errdef.Wrap(errdef.CodeFilesystem, err, "stat %s", set.Output)
	}
	tplText, err := r.fs.ReadFile(set.Template)
	if err != nil {
		return res, errdef.Wrap(errdef.CodeTemplate, err, "files.%s: read template %s", set.Name, set.Template)
	}

	var (
		template = envtext.Parse(tplText)
		rules    = drift.NewRules(set.AllowEmpty, set.ForcePrompt)
		current  *envtext.Map
		outText  string
	)
	if exists {
		outText, err = r.fs.ReadFile(set.Output)
		if err != nil {
			return res, errdef.Wrap(errdef.CodeFilesystem, err, "read %s", set.Output)
		}
		current = envtext.Parse(outText)
	}

	res.Mode, res.Pending = drift.Detect(template, current, rules)
	log.Debug("drift detected", "mode", res.Mode.String(), "template_keys", template.Len(), "pending", res.Pending)

	switch {
	case res.Mode == drift.ModeSync && len(res.Pending) == 0:
		res.State = StateSynced
		return res, r.report.Synced(set.Output)
	case res.Mode == drift.ModeSync:
		res.State = StateNeedsUpdate
	default:
		res.State = StateNeedsCreate
	}

	if r.check {
		if res.State == StateNeedsUpdate {
			return res, r.report.Missing(set.Output, len(res.Pending))
		}
		return res, r.report.WouldCreate(set.Output, len(res.Pending))
	}

	if res.State == StateNeedsUpdate {
		err = r.report.Missing(set.Output, len(res.Pending))
	} else {
		err = r.report.Configuring(set.Template)
	}
	if err != nil {
		return res, err
	}

	keys := policy.Classify(res.Mode, res.Pending, template, rules)
	answers, err := r.resolve(ctx, policy.Questions(keys))
	if err != nil {
		return res, errdef.Wrap(errdef.CodePrompt, err, "files.%s", set.Name)
	}
	log.Debug("answers collected", "count", len(answers))

	var merged string
	if res.State == StateNeedsUpdate {
		merged = envtext.SerializeAppend(outText, answers)
	} else if merged, err = envtext.SerializeCreate(tplText, answers); err != nil {
		return res, err
	}

	if r.dryRun {
		res.State = StateDone
		return res, r.report.Diff(set.Output, outText, merged)
	}
	if err := r.fs.WriteFile(set.Output, merged); err != nil {
		return res, errdef.Wrap(errdef.CodeWrite, err, "write %s", set.Output)
	}
	res.State = StateDone
	res.Written = true
	log.Debug("output written", "path", set.Output)

	if res.Mode == drift.ModeSync {
		return res, r.report.Updated(set.Output)
	}
	return res, r.report.Created(set.Output)
}

// resolve asks the prompter once for the whole batch and checks the reply
// against the request.
func (r *Reconciler) resolve(ctx context.Context, qs []prompt.Question) (prompt.Answers, error) {
	if len(qs) == 0 {
		return nil, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(errdef.ErrAborted, err)
	}
	answers, err := r.prompter.Resolve(ctx, qs)
	if err != nil {
		return nil, err
	}
	if err := prompt.Validate(qs, answers); err != nil {
		return nil, err
	}
	return answers, nil
}
