package echoapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/ishanya/ishanya/core"
	"github.com/ishanya/ishanya/core/admission"
	"github.com/ishanya/ishanya/core/form"
)

type (
	formAPI struct {
		conf         *core.Config
		logger       core.Logger
		forms        *form.Registry
		admissionSvc *admission.Service
		inflight     *form.InFlight
		metrics      *metrics
	}

	schemaResponse struct {
		Schema   *form.Schema `json:"schema"`
		Defaults form.State   `json:"defaults"`
	}

	validateResponse struct {
		Valid  bool          `json:"valid"`
		Errors form.ErrorMap `json:"errors"`
	}

	submitResponse struct {
		Status            form.Status       `json:"status"`
		Notification      form.Notification `json:"notification"`
		State             form.State        `json:"state,omitempty"`
		ApplicationStatus string            `json:"applicationStatus,omitempty"`
		Next              []string          `json:"next,omitempty"`
		Close             bool              `json:"close,omitempty"`
	}
)

func registerFormAPI(g *echo.Group, deps ServerDeps, inflight *form.InFlight, m *metrics) *formAPI {
	api := &formAPI{
		conf:         deps.Conf,
		logger:       deps.Logger,
		forms:        deps.Forms,
		admissionSvc: deps.AdmissionSvc,
		inflight:     inflight,
		metrics:      m,
	}

	forms := g.Group("/forms")
	forms.GET("", api.list)
	forms.GET("/:name", api.schema)
	forms.POST("/:name/validate", api.validate)
	forms.POST("/:name/submit", api.submit)
	return api
}

func (api *formAPI) list(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, api.forms.Names())
}

func (api *formAPI) schema(ctx echo.Context) error {
	schema, err := api.forms.Get(ctx.Param("name"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, schemaResponse{Schema: schema, Defaults: schema.Defaults()})
}

// validate checks a state without submitting it.
// With `?field=<name>` only that field's error is reported.
func (api *formAPI) validate(ctx echo.Context) error {
	schema, err := api.forms.Get(ctx.Param("name"))
	if err != nil {
		return err
	}
	st, _, err := api.bindState(ctx, schema, true)
	if err != nil {
		return err
	}

	errs := schema.Validate(schema.Clean(st))
	if field := ctx.QueryParam("field"); field != "" {
		if _, ok := schema.Field(field); !ok {
			return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("unknown field %q", field))
		}
		only := make(form.ErrorMap, 1)
		if msg, ok := errs[field]; ok {
			only[field] = msg
		}
		errs = only
	}
	return ctx.JSON(http.StatusOK, validateResponse{Valid: errs.Empty(), Errors: errs})
}

func (api *formAPI) submit(ctx echo.Context) error {
	return api.submitForm(ctx, ctx.Param("name"))
}

func (api *formAPI) submitForm(ctx echo.Context, name string) error {
	schema, err := api.forms.Get(name)
	if err != nil {
		return err
	}

	start := time.Now()
	result := resultError
	defer func() { api.metrics.observeSubmission(name, result, time.Since(start)) }()

	st, resume, err := api.bindState(ctx, schema, false)
	if err != nil {
		return err
	}

	release, err := api.inflight.Acquire(schema.Name, schema.Clean(st))
	if err != nil {
		result = resultRejected
		return err
	}
	defer release()

	submit, err := api.admissionSvc.Submitter(schema, resume)
	if err != nil {
		// field errors of the whole form come first
		if errs := schema.Validate(schema.Clean(st)); !errs.Empty() {
			err = core.NewValidationError(form.ErrInvalidForm, errs.FieldErrors(schema)...)
		}
		if verr, ok := errors.Cause(err).(*core.ValidationError); ok {
			result = resultInvalid
			api.metrics.observeValidation(name, verr.Fields)
		}
		return err
	}

	f := form.New(schema)
	f.SetAll(st)

	subCtx, cancel := context.WithTimeout(ctx.Request().Context(), api.conf.SubmitTimeout)
	defer cancel()

	notification, err := f.Submit(subCtx, submit)
	if err != nil {
		if verr, ok := errors.Cause(err).(*core.ValidationError); ok {
			result = resultInvalid
			api.metrics.observeValidation(name, verr.Fields)
			return err
		}
		if f.Status() != form.StatusFailed {
			return err
		}
		result = resultFailed
		api.logger.Error(fmt.Sprintf("%s submission failed", name), err)
		return ctx.JSON(http.StatusBadGateway, submitResponse{Status: f.Status(), Notification: notification})
	}

	result = resultSucceeded
	return ctx.JSON(http.StatusOK, submitResponse{
		Status:            f.Status(),
		Notification:      notification,
		State:             publicState(schema, f.State()),
		ApplicationStatus: schema.SuccessStatus,
		Next:              schema.Next,
		Close:             schema.CloseOnSuccess,
	})
}

// bindState reads the submitted values on top of the schema defaults.
// Files are only accepted from multipart bodies and a file field holds the uploaded filename.
// Other bodies may only name the file when fileNames is set (validation without upload).
func (api *formAPI) bindState(ctx echo.Context, schema *form.Schema, fileNames bool) (form.State, *admission.Resume, error) {
	st := schema.Defaults()
	req := ctx.Request()
	ctype := req.Header.Get(echo.HeaderContentType)

	switch {
	case strings.HasPrefix(ctype, echo.MIMEMultipartForm):
		mf, err := ctx.MultipartForm()
		if err != nil {
			return nil, nil, badRequest("malformed multipart body", err)
		}
		var resume *admission.Resume
		for _, fd := range schema.Fields {
			if fd.Type == form.FieldFile {
				st[fd.Name] = ""
				fhs := mf.File[fd.Name]
				if len(fhs) == 0 {
					continue
				}
				file, err := fhs[0].Open()
				if err != nil {
					return nil, nil, errors.Wrapf(err, "opening %s", fd.Name)
				}
				resume, err = admission.ReadResume(file, fhs[0].Filename, fhs[0].Header.Get(echo.HeaderContentType), api.conf.MaxResumeBytes)
				_ = file.Close()
				if err != nil {
					return nil, nil, err
				}
				st[fd.Name] = resume.Filename
				continue
			}
			if vals, ok := mf.Value[fd.Name]; ok && len(vals) > 0 {
				st[fd.Name] = vals[0]
			}
		}
		return st, resume, nil

	case strings.HasPrefix(ctype, echo.MIMEApplicationForm):
		params, err := ctx.FormParams()
		if err != nil {
			return nil, nil, badRequest("malformed form body", err)
		}
		for name := range params {
			st[name] = params.Get(name)
		}

	default:
		var raw map[string]interface{}
		if err := json.NewDecoder(req.Body).Decode(&raw); err != nil && err != io.EOF {
			return nil, nil, badRequest("malformed JSON body", err)
		}
		for name, v := range raw {
			switch val := v.(type) {
			case nil:
				st[name] = ""
			case string:
				st[name] = val
			default:
				st[name] = fmt.Sprint(val)
			}
		}
	}

	if !fileNames {
		for _, fd := range schema.Fields {
			if fd.Type == form.FieldFile {
				st[fd.Name] = ""
			}
		}
	}
	return st, nil, nil
}

// publicState blanks secrets and uploads.
func publicState(schema *form.Schema, st form.State) form.State {
	for _, fd := range schema.Fields {
		if fd.Type == form.FieldPassword || fd.Type == form.FieldFile {
			st[fd.Name] = ""
		}
	}
	return st
}

func badRequest(msg string, err error) *echo.HTTPError {
	return &echo.HTTPError{Code: http.StatusBadRequest, Message: msg, Internal: err}
}
