package echoapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/ishanya/ishanya/core"
	"github.com/ishanya/ishanya/core/admission"
	"github.com/ishanya/ishanya/core/identity"
	"github.com/ishanya/ishanya/core/user"
)

const (
	tokenContextKey = "userToken"
	stateCookie     = "oauth_state"
	stateCookieTTL  = 10 * time.Minute
)

// Claims represents the authorization claims transmitted via a JWT.
type Claims struct {
	jwt.StandardClaims
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
	Role  string `json:"role,omitempty"`
}

func (c Claims) User() user.User {
	return user.User{Name: c.Name, Email: c.Email, Role: c.Role}
}

func GetUserClaims(conf *core.Config, usr user.User) *Claims {
	now := time.Now()
	return &Claims{
		StandardClaims: jwt.StandardClaims{
			Issuer:    conf.AppName,
			Subject:   usr.Email,
			Audience:  usr.Role,
			ExpiresAt: now.Add(conf.Server.JWTExpirationDelta).Unix(),
			IssuedAt:  now.Unix(),
		},
		Email: usr.Email,
		Name:  usr.Name,
		Role:  usr.Role,
	}
}

func newJWTConfig(conf *core.Config) middleware.JWTConfig {
	return middleware.JWTConfig{
		SigningKey:    []byte(conf.SecretKey),
		SigningMethod: middleware.AlgorithmHS256,
		ContextKey:    tokenContextKey,
		Claims:        new(Claims),
	}
}

// GenerateToken generates a signed JWT token string representing the user Claims.
func GenerateToken(conf *core.Config, claims *Claims) (string, error) {
	jwtConf := newJWTConfig(conf)
	token := jwt.NewWithClaims(jwt.GetSigningMethod(jwtConf.SigningMethod), claims)

	ss, err := token.SignedString(jwtConf.SigningKey)
	if err != nil {
		return "", errors.Wrap(err, "signing token")
	}
	return ss, nil
}

func getContextClaims(ctx echo.Context) (Claims, error) {
	if token, ok := ctx.Get(tokenContextKey).(*jwt.Token); ok {
		if claims, ok := token.Claims.(*Claims); ok {
			return *claims, nil
		}
	}
	return Claims{}, errUnauthorized
}

type (
	authAPI struct {
		conf     *core.Config
		usrSvc   *user.Service
		provider identity.Provider
		forms    *formAPI
	}

	sessionResponse struct {
		Redirect string    `json:"redirect"`
		Token    string    `json:"token"`
		User     user.User `json:"user"`
	}
)

func registerAuthAPI(g *echo.Group, deps ServerDeps, forms *formAPI) {
	api := &authAPI{conf: deps.Conf, usrSvc: deps.UserSvc, provider: deps.Identity, forms: forms}

	auth := g.Group("/auth")
	auth.GET("/roles", api.roles)
	auth.POST("/login", api.login)
	auth.POST("/register", api.register)
	auth.GET("/google", api.googleRedirect)
	auth.GET("/google/callback", api.googleCallback)
}

func (api *authAPI) roles(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, user.Roles)
}

func (api *authAPI) login(ctx echo.Context) error {
	var req user.LoginRequest
	if err := ctx.Bind(&req); err != nil {
		return err
	}
	sess, err := api.usrSvc.Login(req)
	if err != nil {
		return err
	}
	return api.respondSession(ctx, sess)
}

// register submits the sign-up form.
func (api *authAPI) register(ctx echo.Context) error {
	return api.forms.submitForm(ctx, admission.FormRegister)
}

// googleRedirect sends the visitor to the provider's consent page.
// The selected role travels in the state cookie.
func (api *authAPI) googleRedirect(ctx echo.Context) error {
	if api.provider == nil {
		return errHttpNotFound
	}
	role := core.CleanString(ctx.QueryParam("role"), true)
	if role == "" {
		role = user.RoleParent
	}
	if !user.IsValidRole(role) {
		return user.ErrUnknownRole
	}

	state := uuid.NewString() + "." + role
	ctx.SetCookie(&http.Cookie{
		Name:     stateCookie,
		Value:    state,
		Path:     "/",
		Expires:  time.Now().Add(stateCookieTTL),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return ctx.Redirect(http.StatusFound, api.provider.AuthCodeURL(state))
}

func (api *authAPI) googleCallback(ctx echo.Context) error {
	if api.provider == nil {
		return errHttpNotFound
	}
	cookie, err := ctx.Cookie(stateCookie)
	if err != nil || cookie.Value == "" || cookie.Value != ctx.QueryParam("state") {
		return errors.Wrap(identity.ErrAuthFailed, "state mismatch")
	}
	ctx.SetCookie(&http.Cookie{Name: stateCookie, Path: "/", MaxAge: -1})

	role := cookie.Value[strings.LastIndex(cookie.Value, ".")+1:]
	ident, err := api.provider.Exchange(ctx.Request().Context(), ctx.QueryParam("code"))
	if err != nil {
		return err
	}
	if !ident.Verified {
		return errors.Wrap(identity.ErrAuthFailed, "email not verified")
	}

	sess, err := api.usrSvc.SignIn(ident.Name, core.CleanString(ident.Email, true), role)
	if err != nil {
		return err
	}
	return api.respondSession(ctx, sess)
}

func (api *authAPI) respondSession(ctx echo.Context, sess user.Session) error {
	token, err := GenerateToken(api.conf, GetUserClaims(api.conf, sess.User))
	if err != nil {
		return errors.Wrap(err, "generating token")
	}
	return ctx.JSON(http.StatusOK, sessionResponse{Redirect: sess.Redirect, Token: token, User: sess.User})
}
