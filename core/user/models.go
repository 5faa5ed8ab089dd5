package user

import (
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"

	"github.com/ishanya/ishanya/core"
)

// Roles
const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
	RoleParent   = "parent"
)

var (
	ErrUnknownRole = errors.New("unknown role")

	AllRoles = []string{RoleAdmin, RoleEmployee, RoleParent}

	Roles = []Role{
		{Name: "Admin", Value: RoleAdmin, Dashboard: "/admin-dashboard"},
		{Name: "Employee", Value: RoleEmployee, Dashboard: "/employee-dashboard"},
		{Name: "Parent", Value: RoleParent, Dashboard: "/parent-dashboard"},
	}
)

type Role struct {
	Name      string `json:"name"`
	Value     string `json:"value"`
	Dashboard string `json:"dashboard"`
}

// RedirectPath returns the dashboard path of role.
func RedirectPath(role string) (string, error) {
	for _, r := range Roles {
		if r.Value == role {
			return r.Dashboard, nil
		}
	}
	return "", errors.Wrapf(ErrUnknownRole, "%q", role)
}

func IsValidRole(role string) bool {
	_, err := RedirectPath(role)
	return err == nil
}

// User is the signed in visitor. Nothing about it is stored.
type User struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// HashPassword returns the bcrypt hash of pwd.
func HashPassword(pwd string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
}

func CheckPassword(hash []byte, pwd string) error {
	return bcrypt.CompareHashAndPassword(hash, []byte(pwd))
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"required,oneof=admin employee parent"`
}

func (lr *LoginRequest) Validate(validate *validator.Validate) error {
	lr.Email = core.CleanString(lr.Email, true /* lower */)
	lr.Role = core.CleanString(lr.Role, true /* lower */)
	return validate.Struct(lr)
}
