package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"crux/internal/modules/identity/domain"
	"crux/internal/modules/identity/dto"
	identityin "crux/internal/modules/identity/port/in"
	identityout "crux/internal/modules/identity/port/out"
	"crux/internal/modules/identity/service"
	apperrors "crux/internal/platform/errors"
)

// Values used by the offline sign-in, matching the stubbed login of the app.
const (
	DevToken     = "test-token-123"
	DevUserID    = "test-user-id"
	DevFirstName = "Test"
	DevLastName  = "User"
)

type Interactor struct {
	svc  *service.IdentityService
	auth identityout.Authenticator
}

func NewInteractor(svc *service.IdentityService, auth identityout.Authenticator) identityin.Usecase {
	return &Interactor{svc: svc, auth: auth}
}

func (i *Interactor) Login(ctx context.Context, input dto.LoginInput) (dto.ContextOutput, error) {
	idToken := strings.TrimSpace(input.IDToken)
	if idToken == "" {
		return dto.ContextOutput{}, fmt.Errorf("%w: id token is required", apperrors.ErrInvalidInput)
	}
	if i.auth == nil {
		return dto.ContextOutput{}, fmt.Errorf("authenticator is not configured")
	}
	account, err := i.auth.ExchangeGoogleToken(ctx, idToken)
	if err != nil {
		return dto.ContextOutput{}, fmt.Errorf("sign in: %w", err)
	}
	if !account.LoggedIn() || account.Token == "" {
		return dto.ContextOutput{}, fmt.Errorf("sign in: server returned no user or token")
	}
	if err := i.svc.Replace(ctx, account.Context); err != nil {
		return dto.ContextOutput{}, err
	}
	log.Info().Str("user_id", account.UserID).Bool("new_user", account.IsNewUser).Msg("signed in")
	out := toOutput(account.Context)
	out.Email = account.Email
	out.IsNewUser = account.IsNewUser
	return out, nil
}

func (i *Interactor) DevLogin(ctx context.Context, input dto.DevLoginInput) (dto.ContextOutput, error) {
	next := domain.Context{
		UserID:    firstNonEmpty(input.UserID, DevUserID),
		FirstName: firstNonEmpty(input.FirstName, DevFirstName),
		LastName:  firstNonEmpty(input.LastName, DevLastName),
		Token:     DevToken,
	}
	if err := i.svc.Replace(ctx, next); err != nil {
		return dto.ContextOutput{}, err
	}
	log.Info().Str("user_id", next.UserID).Msg("signed in offline")
	return toOutput(next), nil
}

func (i *Interactor) Logout(ctx context.Context) error {
	if err := i.svc.Clear(ctx); err != nil {
		return err
	}
	log.Info().Msg("signed out")
	return nil
}

func (i *Interactor) Current(ctx context.Context) (dto.ContextOutput, error) {
	current, err := i.svc.Load(ctx)
	if err != nil {
		return dto.ContextOutput{}, err
	}
	if !current.LoggedIn() {
		return dto.ContextOutput{}, apperrors.ErrNotLoggedIn
	}
	return toOutput(current), nil
}

func toOutput(c domain.Context) dto.ContextOutput {
	return dto.ContextOutput{
		UserID:      c.UserID,
		FirstName:   c.FirstName,
		LastName:    c.LastName,
		DisplayName: c.DisplayName(),
		PhotoURL:    c.PhotoURL,
	}
}

func firstNonEmpty(v, fallback string) string {
	if s := strings.TrimSpace(v); s != "" {
		return s
	}
	return fallback
}
