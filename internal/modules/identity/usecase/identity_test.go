package usecase_test

import (
	"context"
	"errors"
	"testing"

	identityout "crux/internal/modules/identity/adapter/out"
	"crux/internal/modules/identity/domain"
	"crux/internal/modules/identity/dto"
	"crux/internal/modules/identity/service"
	"crux/internal/modules/identity/usecase"
	apperrors "crux/internal/platform/errors"
)

type fakeAuth struct {
	account domain.Account
	err     error
	calls   int
	token   string
}

func (f *fakeAuth) ExchangeGoogleToken(_ context.Context, idToken string) (domain.Account, error) {
	f.calls++
	f.token = idToken
	return f.account, f.err
}

func TestLoginPersistsEveryKey(t *testing.T) {
	t.Parallel()
	store := identityout.NewMemoryKeyValueStore()
	svc := service.NewIdentityService(store)
	auth := &fakeAuth{account: domain.Account{
		Context:   domain.Context{UserID: "u-42", FirstName: "Janja", LastName: "Garnbret", Token: "jwt-1", PhotoURL: "http://p"},
		Email:     "janja@example.com",
		IsNewUser: true,
	}}
	uc := usecase.NewInteractor(svc, auth)

	out, err := uc.Login(context.Background(), dto.LoginInput{IDToken: " google-id "})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if auth.token != "google-id" {
		t.Fatalf("id token must be trimmed, got %q", auth.token)
	}
	if out.UserID != "u-42" || !out.IsNewUser || out.Email != "janja@example.com" || out.DisplayName != "Janja Garnbret" {
		t.Fatalf("unexpected output: %+v", out)
	}
	values, _ := store.Load(context.Background(), domain.Keys())
	if len(values) != 5 || values[domain.KeyAuthToken] != "jwt-1" || values[domain.KeyCurrentUserID] != "u-42" {
		t.Fatalf("unexpected persisted values: %+v", values)
	}
	if svc.Token() != "jwt-1" {
		t.Fatalf("token source must expose the new token")
	}
}

func TestLoginFailureLeavesIdentityUntouched(t *testing.T) {
	t.Parallel()
	svc := service.NewIdentityService(identityout.NewMemoryKeyValueStore())
	uc := usecase.NewInteractor(svc, &fakeAuth{err: errors.New("401")})

	if _, err := uc.Login(context.Background(), dto.LoginInput{IDToken: "x"}); err == nil {
		t.Fatalf("expected login error")
	}
	if _, err := uc.Current(context.Background()); !errors.Is(err, apperrors.ErrNotLoggedIn) {
		t.Fatalf("expected ErrNotLoggedIn, got %v", err)
	}
}

func TestLoginRequiresToken(t *testing.T) {
	t.Parallel()
	auth := &fakeAuth{}
	uc := usecase.NewInteractor(service.NewIdentityService(identityout.NewMemoryKeyValueStore()), auth)
	if _, err := uc.Login(context.Background(), dto.LoginInput{IDToken: "  "}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if auth.calls != 0 {
		t.Fatalf("no exchange expected for blank token")
	}
}

func TestDevLoginThenLogout(t *testing.T) {
	t.Parallel()
	store := identityout.NewMemoryKeyValueStore()
	svc := service.NewIdentityService(store)
	uc := usecase.NewInteractor(svc, nil)

	out, err := uc.DevLogin(context.Background(), dto.DevLoginInput{})
	if err != nil {
		t.Fatalf("dev login: %v", err)
	}
	if out.UserID != usecase.DevUserID || out.DisplayName != "Test User" {
		t.Fatalf("unexpected dev identity: %+v", out)
	}
	if svc.Token() != usecase.DevToken {
		t.Fatalf("expected dev token, got %q", svc.Token())
	}

	if err := uc.Logout(context.Background()); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if svc.Token() != "" {
		t.Fatalf("token must be cleared")
	}
	values, _ := store.Load(context.Background(), domain.Keys())
	if len(values) != 0 {
		t.Fatalf("expected all keys removed, got %+v", values)
	}
	if _, err := uc.Current(context.Background()); !errors.Is(err, apperrors.ErrNotLoggedIn) {
		t.Fatalf("expected ErrNotLoggedIn, got %v", err)
	}
}

func TestCurrentReadsPersistedIdentity(t *testing.T) {
	t.Parallel()
	store := identityout.NewMemoryKeyValueStore()
	_ = store.Save(context.Background(), domain.Context{UserID: "u-7", FirstName: "Alex", Token: "t"}.Values())

	svc := service.NewIdentityService(store)
	out, err := usecase.NewInteractor(svc, nil).Current(context.Background())
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if out.UserID != "u-7" || svc.Token() != "t" {
		t.Fatalf("unexpected identity %+v token %q", out, svc.Token())
	}
}
