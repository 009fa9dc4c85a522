package out

import (
	"context"
	"net/http"

	"crux/internal/contract"
	"crux/internal/modules/identity/domain"
	identityout "crux/internal/modules/identity/port/out"
	"crux/internal/platform/httpapi"
)

const googleAuthPath = "/api/auth/google"

type HTTPAuthenticator struct {
	client *httpapi.Client
}

func NewHTTPAuthenticator(client *httpapi.Client) identityout.Authenticator {
	return &HTTPAuthenticator{client: client}
}

func (a *HTTPAuthenticator) ExchangeGoogleToken(ctx context.Context, idToken string) (domain.Account, error) {
	resp, err := httpapi.Do[contract.AuthResponse](ctx, a.client, http.MethodPost, googleAuthPath, contract.GoogleAuthRequest{IDToken: idToken})
	if err != nil {
		return domain.Account{}, err
	}
	account := domain.Account{
		Context: domain.Context{
			UserID:    resp.User.ID,
			FirstName: resp.User.FirstName,
			LastName:  resp.User.LastName,
			Token:     resp.Token,
		},
		Email:     resp.User.Email,
		IsNewUser: resp.IsNewUser,
	}
	if resp.User.PhotoURL != nil {
		account.PhotoURL = *resp.User.PhotoURL
	}
	return account, nil
}
