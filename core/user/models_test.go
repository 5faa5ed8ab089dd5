package user

import (
	"testing"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ishanya/ishanya/core"
)

func newValidate() *validator.Validate {
	validate := validator.New()
	translator, _ := ut.New(en.New()).GetTranslator("en")
	core.InitValidators(validate, translator)
	return validate
}

func TestRedirectPath(t *testing.T) {
	tests := []struct {
		role    string
		want    string
		wantErr bool
	}{
		{role: RoleAdmin, want: "/admin-dashboard"},
		{role: RoleEmployee, want: "/employee-dashboard"},
		{role: RoleParent, want: "/parent-dashboard"},
		{role: "teacher", wantErr: true},
		{role: "", wantErr: true},
		{role: "Admin", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			got, err := RedirectPath(tt.role)
			if tt.wantErr {
				assert.Equal(t, ErrUnknownRole, errors.Cause(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRedirectPathIsDistinct(t *testing.T) {
	seen := make(map[string]string)
	for _, role := range AllRoles {
		path, err := RedirectPath(role)
		require.NoError(t, err)
		if other, dup := seen[path]; dup {
			t.Errorf("%s and %s both redirect to %s", role, other, path)
		}
		seen[path] = role
		again, _ := RedirectPath(role)
		assert.Equal(t, path, again)
	}
	assert.Len(t, seen, 3)
}

func TestLogin(t *testing.T) {
	svc := NewService(newValidate())

	sess, err := svc.Login(LoginRequest{Email: " Pat@Example.com ", Password: "secret", Role: "Parent"})
	require.NoError(t, err)
	assert.Equal(t, Session{User: User{Email: "pat@example.com", Role: RoleParent}, Redirect: "/parent-dashboard"}, sess)

	_, err = svc.Login(LoginRequest{Email: "pat", Password: "", Role: "guest"})
	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Len(t, verrs, 3)
}

func TestSignIn(t *testing.T) {
	svc := NewService(newValidate())

	sess, err := svc.SignIn("Pat", "pat@example.com", RoleEmployee)
	require.NoError(t, err)
	assert.Equal(t, "/employee-dashboard", sess.Redirect)

	_, err = svc.SignIn("Pat", "pat@example.com", "root")
	assert.Equal(t, ErrUnknownRole, errors.Cause(err))
}

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("Tr0ub4dor&3")
	require.NoError(t, err)
	assert.NotContains(t, string(hash), "Tr0ub4dor&3")
	assert.NoError(t, CheckPassword(hash, "Tr0ub4dor&3"))
	assert.Error(t, CheckPassword(hash, "tr0ub4dor&3"))
}
