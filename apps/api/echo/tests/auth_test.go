package tests

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/ishanya/ishanya/apps/api/echo"
	"github.com/ishanya/ishanya/core/identity"
	"github.com/ishanya/ishanya/core/user"
)

type sessionResp struct {
	Redirect string    `json:"redirect"`
	Token    string    `json:"token"`
	User     user.User `json:"user"`
}

func TestRoles(t *testing.T) {
	app := setup(t)
	tt := httpTest{
		method:   http.MethodGet,
		path:     "/v1/auth/roles",
		wantCode: http.StatusOK,
		wantData: marshalObj(t, user.Roles),
	}
	req, rec := newRequest(tt.method, tt.path)
	app.ServeHTTP(rec, req)
	checkCodeAndData(t, tt, rec)
}

func TestLogin(t *testing.T) {
	app := setup(t)
	path := "/v1/auth/login"

	tests := []httpTest{
		{
			name:     "missing fields",
			body:     []byte(`{}`),
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"email":"this field is required","password":"this field is required","role":"this field is required"}`),
		},
		{
			name:     "invalid email",
			body:     []byte(`{"email":"jane","password":"secret","role":"parent"}`),
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"email":"email must be a valid email address"}`),
		},
		{
			name:     "unknown role",
			body:     []byte(`{"email":"jane@example.com","password":"secret","role":"teacher"}`),
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"role":"role must be one of [admin employee parent]"}`),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodPost, path, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}

	redirects := map[string]string{
		user.RoleAdmin:    "/admin-dashboard",
		user.RoleEmployee: "/employee-dashboard",
		user.RoleParent:   "/parent-dashboard",
	}
	for role, want := range redirects {
		t.Run("login as "+role, func(t *testing.T) {
			body := []byte(`{"email":" Jane@Example.com ","password":"secret","role":"` + strings.ToUpper(role) + `"}`)
			req, rec := newRequest(http.MethodPost, path, body)
			app.ServeHTTP(rec, req)

			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
			var resp sessionResp
			decode(t, rec, &resp)
			assert.Equal(t, want, resp.Redirect)
			assert.Equal(t, user.User{Email: "jane@example.com", Role: role}, resp.User)

			token, err := jwt.ParseWithClaims(resp.Token, new(Claims), func(*jwt.Token) (interface{}, error) {
				return []byte(conf.SecretKey), nil
			})
			require.NoError(t, err)
			assert.Equal(t, role, token.Claims.(*Claims).Role)
		})
	}
}

func TestGoogleSignIn(t *testing.T) {
	provider := fakeProvider{ident: identity.Identity{
		Subject:  "42",
		Email:    "Pat@Example.com",
		Verified: true,
		Name:     "Pat Doe",
	}}
	app := setup(t, withIdentity(provider))

	// redirect
	req, rec := newRequest(http.MethodGet, "/v1/auth/google?role=employee")
	app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusFound, rec.Code)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	state := cookies[0].Value
	assert.True(t, strings.HasSuffix(state, ".employee"))
	assert.Equal(t, "https://accounts.example.com/auth?state="+state, rec.Header().Get("Location"))

	callback := func(state, cookie, code string) *httptest.ResponseRecorder {
		req, rec := newRequest(http.MethodGet, "/v1/auth/google/callback?state="+state+"&code="+code)
		if cookie != "" {
			req.AddCookie(&http.Cookie{Name: cookies[0].Name, Value: cookie})
		}
		app.ServeHTTP(rec, req)
		return rec
	}

	t.Run("success", func(t *testing.T) {
		rec := callback(state, state, "abc")
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var resp sessionResp
		decode(t, rec, &resp)
		assert.Equal(t, "/employee-dashboard", resp.Redirect)
		assert.Equal(t, user.User{Name: "Pat Doe", Email: "pat@example.com", Role: user.RoleEmployee}, resp.User)
		assert.NotEmpty(t, resp.Token)
	})

	failures := []struct {
		name                string
		state, cookie, code string
	}{
		{"missing cookie", state, "", "abc"},
		{"state mismatch", "forged.admin", state, "abc"},
		{"exchange failure", state, state, ""},
	}
	for _, tc := range failures {
		t.Run(tc.name, func(t *testing.T) {
			rec := callback(tc.state, tc.cookie, tc.code)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			var resp struct {
				Error        string `json:"error"`
				Notification struct {
					Kind  string `json:"kind"`
					Title string `json:"title"`
				} `json:"notification"`
			}
			decode(t, rec, &resp)
			assert.Equal(t, identity.ErrAuthFailed.Error(), resp.Error)
			assert.Equal(t, "error", resp.Notification.Kind)
			assert.Equal(t, "Sign-in failed", resp.Notification.Title)
		})
	}
}

func TestGoogleSignInUnverifiedEmail(t *testing.T) {
	app := setup(t, withIdentity(fakeProvider{ident: identity.Identity{Email: "pat@example.com"}}))

	req, rec := newRequest(http.MethodGet, "/v1/auth/google/callback?state=s.parent&code=abc")
	req.AddCookie(&http.Cookie{Name: "oauth_state", Value: "s.parent"})
	app.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGoogleSignInDisabled(t *testing.T) {
	app := setup(t)
	tt := httpTest{wantCode: http.StatusNotFound, wantData: marshalObj(t, errNotFound)}

	req, rec := newRequest(http.MethodGet, "/v1/auth/google")
	app.ServeHTTP(rec, req)
	checkCodeAndData(t, tt, rec)
}

func TestGoogleSignInUnknownRole(t *testing.T) {
	app := setup(t, withIdentity(fakeProvider{}))
	tt := httpTest{wantCode: http.StatusBadRequest, wantData: []byte(`{"role":"unknown role"}`)}

	req, rec := newRequest(http.MethodGet, "/v1/auth/google?role=teacher")
	app.ServeHTTP(rec, req)
	checkCodeAndData(t, tt, rec)
}
