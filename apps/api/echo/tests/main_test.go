package tests

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/ishanya/ishanya/apps/api/echo"
	"github.com/ishanya/ishanya/assets"
	"github.com/ishanya/ishanya/core"
	"github.com/ishanya/ishanya/core/admission"
	"github.com/ishanya/ishanya/core/dashboard"
	"github.com/ishanya/ishanya/core/form"
	"github.com/ishanya/ishanya/core/identity"
	"github.com/ishanya/ishanya/core/user"
	emailsvc "github.com/ishanya/ishanya/services/email"
	logsvc "github.com/ishanya/ishanya/services/logger"
	"github.com/ishanya/ishanya/storage/memdb"
)

var (
	conf = &core.Config{
		Env:              "TEST",
		TestMode:         true,
		AppName:          "Ishanya",
		SecretKey:        "test-secret",
		FromEmail:        "noreply@ishanya.test",
		AdmissionsEmail:  "Admissions <admissions@ishanya.test>",
		FrontendBaseURL:  "http://localhost:3000",
		SubmitTimeout:    5 * time.Second,
		MaxResumeBytes:   1 << 20,
		TestimonialDelay: 5 * time.Second,
		Server: core.ServerConfig{
			JWTExpirationDelta: time.Hour,
		},
	}

	errMissingToken = httpErr{Error: "missing or malformed jwt"}
	errForbidden    = httpErr{Error: "permission denied"}
	errNotFound     = httpErr{Error: "not found"}
)

type failingEmailService struct{}

func (failingEmailService) SendMessages(...*core.EmailMessage) {}
func (failingEmailService) Send(context.Context, *core.EmailMessage) error {
	return io.ErrUnexpectedEOF
}

type fakeProvider struct {
	ident identity.Identity
	err   error
}

func (p fakeProvider) AuthCodeURL(state string) string {
	return "https://accounts.example.com/auth?state=" + state
}

func (p fakeProvider) Exchange(_ context.Context, code string) (identity.Identity, error) {
	if code == "" {
		return identity.Identity{}, identity.ErrAuthFailed
	}
	return p.ident, p.err
}

// blockingEmailService holds every Send until release is closed.
type blockingEmailService struct {
	started chan struct{}
	release chan struct{}
}

func newBlockingEmailService() *blockingEmailService {
	return &blockingEmailService{started: make(chan struct{}, 1), release: make(chan struct{})}
}

func (*blockingEmailService) SendMessages(...*core.EmailMessage) {}
func (s *blockingEmailService) Send(ctx context.Context, _ *core.EmailMessage) error {
	select {
	case s.started <- struct{}{}:
	default:
	}
	select {
	case <-s.release:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

type setupConfig struct {
	mailSvc  core.EmailService
	provider identity.Provider
}

type setupOption func(*setupConfig)

func withMailService(svc core.EmailService) setupOption {
	return func(c *setupConfig) { c.mailSvc = svc }
}

func withIdentity(p identity.Provider) setupOption {
	return func(c *setupConfig) { c.provider = p }
}

// setup builds a server over a freshly seeded store.
func setup(t *testing.T, opts ...setupOption) *Server {
	t.Helper()
	sc := setupConfig{mailSvc: emailsvc.NewConsoleServiceMock(conf)}
	for _, opt := range opts {
		opt(&sc)
	}

	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	validate := validator.New()
	core.InitValidators(validate, translator)

	forms, err := form.LoadSchemas(assets.FS, form.NewValidator(validate))
	require.NoError(t, err)

	db, err := memdb.Open()
	require.NoError(t, err)
	repo := memdb.NewDashboardRepository(db)

	logger := logsvc.NewRollbarLogger(log.New(io.Discard, "", 0), conf)

	return NewServer(ServerDeps{
		Conf:           conf,
		Logger:         logger,
		Validate:       validate,
		Translator:     translator,
		Forms:          forms,
		AdmissionSvc:   admission.NewService(conf, sc.mailSvc, repo, logger),
		UserSvc:        user.NewService(validate),
		DashboardSvc:   dashboard.NewService(repo, validate),
		Identity:       sc.provider,
		DisableReqLogs: true,
	})
}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
	extra    interface{}
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

// newMultipartRequest posts fields along with one uploaded file.
func newMultipartRequest(t *testing.T, path string, fields map[string]string, fileField, filename string, content []byte) (*http.Request, *httptest.ResponseRecorder) {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if fileField != "" {
		fw, err := w.CreateFormFile(fileField, filename)
		require.NoError(t, err)
		_, err = fw.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req, httptest.NewRecorder()
}

func getToken(t *testing.T, usr user.User) string {
	token, err := GenerateToken(conf, GetUserClaims(conf, usr))
	if err != nil {
		t.Fatalf("getToken() failed: %v", err)
	}
	return token
}

func marshalObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marshalObj() failed: %v", err)
	}
	return data
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}

func jsonBytesEqual(t *testing.T, b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	if reflect.DeepEqual(j1, j2) {
		return true, nil
	}
	if j1 == nil || j2 == nil {
		return false, nil
	}
	if _, ok := j1.([]interface{}); !ok {
		return false, nil
	}
	return assert.ElementsMatch(t, j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	ok, err := jsonBytesEqual(t, rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), strings.TrimSpace(string(tt.wantData)))
	}
}

func TestHome(t *testing.T) {
	app := setup(t)
	req, rec := newRequest(http.MethodGet, "/")
	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Welcome to Ishanya API!", rec.Body.String())
}
