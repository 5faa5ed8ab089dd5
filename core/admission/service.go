// Package admission turns validated site submissions into emails to the admissions team
// and records for the admin dashboard.
package admission

import (
	"context"
	"fmt"
	"net/mail"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/ishanya/ishanya/core"
	"github.com/ishanya/ishanya/core/dashboard"
	"github.com/ishanya/ishanya/core/form"
	"github.com/ishanya/ishanya/core/user"
)

// Forms
const (
	FormContact           = "contact"
	FormJobApplication    = "job_application"
	FormChildRegistration = "child_registration"
	FormRegister          = "register"
)

var (
	ErrNoSubmitter     = errors.New("form cannot be submitted")
	ErrResumeRequired  = errors.New("resume required")
	submissionTemplate = "form_submission"
	receiptTemplate    = "submission_receipt"
	welcomeTemplate    = "welcome"
)

type (
	// Recorder keeps the submissions shown on the admin dashboard.
	Recorder interface {
		CreateJobApplication(ctx context.Context, app dashboard.JobApplication) (dashboard.JobApplication, error)
		CreateChildRegistration(ctx context.Context, reg dashboard.ChildRegistration) (dashboard.ChildRegistration, error)
	}

	Line struct {
		Label string
		Value string
	}

	submissionData struct {
		Title      string
		Reference  string
		Fields     []Line
		Attachment string
	}

	receiptData struct {
		Name        string
		Title       string
		Description string
		Reference   string
	}

	Service struct {
		conf    *core.Config
		mailSvc core.EmailService
		rec     Recorder
		logger  core.Logger
		now     func() time.Time
	}
)

func NewService(conf *core.Config, mailSvc core.EmailService, rec Recorder, logger core.Logger) *Service {
	return &Service{
		conf:    conf,
		mailSvc: mailSvc,
		rec:     rec,
		logger:  logger,
		now:     time.Now,
	}
}

// Submitter returns the side effect of a valid submission of schema.
// resume is only used by job applications.
func (svc *Service) Submitter(schema *form.Schema, resume *Resume) (form.SubmitFunc, error) {
	switch schema.Name {
	case FormContact:
		return func(ctx context.Context, st form.State) error {
			return svc.submitContact(ctx, schema, st)
		}, nil
	case FormJobApplication:
		if resume == nil {
			return nil, core.NewValidationError(ErrResumeRequired, core.FieldError{Field: ResumeField, Error: "Please upload your resume"})
		}
		return func(ctx context.Context, st form.State) error {
			return svc.submitJobApplication(ctx, schema, st, resume)
		}, nil
	case FormChildRegistration:
		return func(ctx context.Context, st form.State) error {
			return svc.submitChildRegistration(ctx, schema, st)
		}, nil
	case FormRegister:
		return func(ctx context.Context, st form.State) error {
			return svc.submitRegister(ctx, st)
		}, nil
	default:
		return nil, errors.Wrapf(ErrNoSubmitter, "%q", schema.Name)
	}
}

func (svc *Service) submitContact(ctx context.Context, schema *form.Schema, st form.State) error {
	ref := uuid.NewString()
	msg := svc.newSubmissionMessage(schema, st, ref, "New message from "+st["name"], st["name"])
	if err := svc.mailSvc.Send(ctx, msg); err != nil {
		return errors.Wrap(err, "sending contact message")
	}
	svc.sendReceipt(schema, st["name"], st["email"], ref)
	return nil
}

func (svc *Service) submitJobApplication(ctx context.Context, schema *form.Schema, st form.State, resume *Resume) error {
	ref := uuid.NewString()
	name := st["firstName"] + " " + st["lastName"]

	hash, err := user.HashPassword(st["password"])
	if err != nil {
		return errors.Wrap(err, "hashing password")
	}

	subject := fmt.Sprintf("New job application: %s (%s)", name, st["position"])
	msg := svc.newSubmissionMessage(schema, st, ref, subject, name)
	if err := resume.attachTo(msg); err != nil {
		return errors.Wrap(err, "attaching resume")
	}
	msg.TemplateData = submissionData{
		Title:      schema.Title,
		Reference:  ref,
		Fields:     lines(schema, st),
		Attachment: resume.Filename,
	}
	if err := svc.mailSvc.Send(ctx, msg); err != nil {
		return errors.Wrap(err, "sending job application")
	}

	app, err := svc.rec.CreateJobApplication(ctx, dashboard.JobApplication{
		Name:         name,
		Position:     st["position"],
		Status:       schema.SuccessStatus,
		Date:         svc.now().Format(core.DateLayout),
		Email:        st["email"],
		Reference:    ref,
		PasswordHash: hash,
	})
	if err != nil {
		return errors.Wrap(err, "recording job application")
	}
	svc.logger.Info(fmt.Sprintf("job application %d recorded", app.ID), map[string]interface{}{"reference": ref})

	svc.sendReceipt(schema, name, st["email"], ref)
	return nil
}

func (svc *Service) submitChildRegistration(ctx context.Context, schema *form.Schema, st form.State) error {
	ref := uuid.NewString()
	msg := svc.newSubmissionMessage(schema, st, ref, "New child registration: "+st["childName"], st["parentName"])
	if err := svc.mailSvc.Send(ctx, msg); err != nil {
		return errors.Wrap(err, "sending child registration")
	}

	reg, err := svc.rec.CreateChildRegistration(ctx, dashboard.ChildRegistration{
		Name:      st["childName"],
		Parent:    st["parentName"],
		Diagnosis: st["primaryDiagnosis"],
		Status:    dashboard.StatusPending,
		Email:     st["email"],
		Reference: ref,
		Submitted: true,
	})
	if err != nil {
		return errors.Wrap(err, "recording child registration")
	}
	svc.logger.Info(fmt.Sprintf("child registration %d recorded", reg.ID), map[string]interface{}{"reference": ref})

	svc.sendReceipt(schema, st["parentName"], st["email"], ref)
	return nil
}

func (svc *Service) submitRegister(ctx context.Context, st form.State) error {
	msg := &core.EmailMessage{
		To:           []mail.Address{{Name: st["name"], Address: st["email"]}},
		Subject:      "Welcome to " + svc.conf.AppName,
		TemplateName: welcomeTemplate,
		TemplateData: map[string]string{"Name": st["name"]},
	}
	return errors.Wrap(svc.mailSvc.Send(ctx, msg), "sending welcome email")
}

func (svc *Service) newSubmissionMessage(schema *form.Schema, st form.State, ref, subject, replyName string) *core.EmailMessage {
	return &core.EmailMessage{
		To:           []mail.Address{svc.conf.AdmissionsAddress()},
		ReplyTo:      &mail.Address{Name: replyName, Address: st["email"]},
		Subject:      subject,
		TemplateName: submissionTemplate,
		TemplateData: submissionData{
			Title:     schema.Title,
			Reference: ref,
			Fields:    lines(schema, st),
		},
	}
}

// sendReceipt confirms the submission to the visitor. Failures are only logged by the email service.
func (svc *Service) sendReceipt(schema *form.Schema, name, email, ref string) {
	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:           []mail.Address{{Name: name, Address: email}},
		Subject:      schema.Success.Title,
		TemplateName: receiptTemplate,
		TemplateData: receiptData{
			Name:        name,
			Title:       schema.Success.Title,
			Description: schema.Success.Description,
			Reference:   ref,
		},
	})
}

// lines lists the submitted values in schema order, secrets and files excepted.
func lines(schema *form.Schema, st form.State) []Line {
	ls := make([]Line, 0, len(schema.Fields))
	for _, fd := range schema.Fields {
		if fd.Type == form.FieldPassword || fd.Type == form.FieldFile {
			continue
		}
		ls = append(ls, Line{Label: fd.Label, Value: st[fd.Name]})
	}
	return ls
}
