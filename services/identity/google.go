package identitysvc

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/pkg/errors"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/ishanya/ishanya/core"
	"github.com/ishanya/ishanya/core/identity"
)

var (
	googleUserInfoURL = "https://openidconnect.googleapis.com/v1/userinfo"
	googleScopes      = []string{"openid", "email", "profile"}
)

type googleProvider struct {
	conf        *oauth2.Config
	userInfoURL string
}

var _ identity.Provider = (*googleProvider)(nil)

func NewGoogleProvider(conf *core.Config) identity.Provider {
	return newGoogleProvider(conf, google.Endpoint, googleUserInfoURL)
}

func newGoogleProvider(conf *core.Config, endpoint oauth2.Endpoint, userInfoURL string) *googleProvider {
	return &googleProvider{
		conf: &oauth2.Config{
			ClientID:     conf.Google.ClientID,
			ClientSecret: conf.Google.ClientSecret,
			RedirectURL:  conf.Google.RedirectURL,
			Endpoint:     endpoint,
			Scopes:       googleScopes,
		},
		userInfoURL: userInfoURL,
	}
}

func (p *googleProvider) AuthCodeURL(state string) string {
	return p.conf.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

func (p *googleProvider) Exchange(ctx context.Context, code string) (identity.Identity, error) {
	var ident identity.Identity
	if code == "" {
		return ident, errors.Wrap(identity.ErrAuthFailed, "missing code")
	}

	tok, err := p.conf.Exchange(ctx, code)
	if err != nil {
		return ident, errors.Wrap(identity.ErrAuthFailed, err.Error())
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.userInfoURL, nil)
	if err != nil {
		return ident, err
	}
	res, err := p.conf.Client(ctx, tok).Do(req)
	if err != nil {
		return ident, errors.Wrap(identity.ErrAuthFailed, err.Error())
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return ident, errors.Wrap(identity.ErrAuthFailed, fmt.Sprintf("userinfo: status %d", res.StatusCode))
	}
	if err := json.NewDecoder(res.Body).Decode(&ident); err != nil {
		return ident, errors.Wrap(identity.ErrAuthFailed, "decoding userinfo: "+err.Error())
	}
	if ident.Email == "" {
		return ident, errors.Wrap(identity.ErrAuthFailed, "userinfo: no email")
	}
	return ident, nil
}
