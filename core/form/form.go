package form

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/ishanya/ishanya/core"
)

const tracerName = "github.com/ishanya/ishanya/core/form"

var (
	ErrInvalidForm          = errors.New("invalid form")
	ErrSubmissionInProgress = errors.New("a submission is already in progress")
)

// NotificationKind is either success or error.
type NotificationKind string

const (
	NotifySuccess NotificationKind = "success"
	NotifyError   NotificationKind = "error"
)

// Notification is the transient toast surfaced after a submission.
type Notification struct {
	Kind        NotificationKind `json:"kind"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
}

// SubmitFunc performs the side effect of a valid submission.
// It receives a cleaned snapshot of the state.
type SubmitFunc func(ctx context.Context, state State) error

// Form drives one schema through idle -> submitting -> succeeded | failed.
// It is safe for concurrent use.
type Form struct {
	schema *Schema

	mu     sync.Mutex
	state  State
	errs   ErrorMap
	status Status
}

func New(schema *Schema) *Form {
	return &Form{
		schema: schema,
		state:  schema.Defaults(),
		errs:   make(ErrorMap),
		status: StatusIdle,
	}
}

func (f *Form) Schema() *Schema { return f.schema }

func (f *Form) Status() Status {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.status
}

func (f *Form) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state.Clone()
}

func (f *Form) Errors() ErrorMap {
	f.mu.Lock()
	defer f.mu.Unlock()
	errs := make(ErrorMap, len(f.errs))
	for k, v := range f.errs {
		errs[k] = v
	}
	return errs
}

// Set updates one field and clears that field's error only.
func (f *Form) Set(name, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state[name] = value
	delete(f.errs, name)
}

// SetAll sets every value of state.
func (f *Form) SetAll(state State) {
	for name, value := range state {
		f.Set(name, value)
	}
}

// Reset returns to idle with the schema defaults and no errors.
func (f *Form) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state = f.schema.Defaults()
	f.errs = make(ErrorMap)
	f.status = StatusIdle
}

// Submit validates the form then runs submit.
// It returns a *core.ValidationError (status stays idle) when a field is invalid,
// ErrSubmissionInProgress when a previous submit has not returned yet,
// and the failure notification along with submit's error when submit fails.
func (f *Form) Submit(ctx context.Context, submit SubmitFunc) (Notification, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "form.Submit",
		trace.WithAttributes(attribute.String("form.name", f.schema.Name)))
	defer span.End()

	snapshot, err := f.begin()
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return Notification{}, err
	}

	if err := submit(ctx, snapshot); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "submission failed")
		f.finish(EventFail)
		return f.notification(NotifyError), errors.Wrapf(err, "submitting %s", f.schema.Name)
	}

	f.finish(EventSucceed)
	return f.notification(NotifySuccess), nil
}

// begin validates and moves to submitting.
func (f *Form) begin() (State, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch f.status {
	case StatusSubmitting:
		return nil, ErrSubmissionInProgress
	case StatusSucceeded, StatusFailed:
		f.status, _ = Transition(f.status, EventReset)
	}

	f.state = f.schema.Clean(f.state)
	f.errs = f.schema.Validate(f.state)
	if !f.errs.Empty() {
		return nil, core.NewValidationError(ErrInvalidForm, f.errs.FieldErrors(f.schema)...)
	}

	status, err := Transition(f.status, EventSubmit)
	if err != nil {
		return nil, err
	}
	f.status = status
	return f.state.Clone(), nil
}

func (f *Form) finish(event Event) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.status, _ = Transition(f.status, event)
	if f.status == StatusSucceeded && f.schema.ResetOnSuccess {
		f.state = f.schema.Defaults()
	}
}

func (f *Form) notification(kind NotificationKind) Notification {
	outcome := f.schema.Success
	if kind == NotifyError {
		outcome = f.schema.Failure
	}
	return Notification{Kind: kind, Title: outcome.Title, Description: outcome.Description}
}
