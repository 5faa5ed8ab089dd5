package user

import (
	"github.com/go-playground/validator/v10"
)

// Session is the outcome of a successful login.
type Session struct {
	User     User   `json:"user"`
	Redirect string `json:"redirect"`
}

type Service struct {
	validate *validator.Validate
}

func NewService(validate *validator.Validate) *Service {
	return &Service{validate: validate}
}

// Login validates the request and resolves the dashboard of the selected role.
// The site keeps no accounts: any well-formed credentials open the role's dashboard.
func (svc *Service) Login(req LoginRequest) (Session, error) {
	if err := req.Validate(svc.validate); err != nil {
		return Session{}, err
	}
	path, err := RedirectPath(req.Role)
	if err != nil {
		return Session{}, err
	}
	return Session{
		User:     User{Email: req.Email, Role: req.Role},
		Redirect: path,
	}, nil
}

// SignIn resolves the dashboard of a visitor identified by a third-party provider.
func (svc *Service) SignIn(name, email, role string) (Session, error) {
	path, err := RedirectPath(role)
	if err != nil {
		return Session{}, err
	}
	return Session{
		User:     User{Name: name, Email: email, Role: role},
		Redirect: path,
	}, nil
}
