package in

import (
	"context"

	identitydto "crux/internal/modules/identity/dto"
	identityin "crux/internal/modules/identity/port/in"
)

type CLIHandler struct {
	usecase identityin.Usecase
}

func NewCLIHandler(usecase identityin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Login(ctx context.Context, idToken string) (identitydto.ContextOutput, error) {
	return h.usecase.Login(ctx, identitydto.LoginInput{IDToken: idToken})
}

func (h CLIHandler) DevLogin(ctx context.Context, userID, firstName, lastName string) (identitydto.ContextOutput, error) {
	return h.usecase.DevLogin(ctx, identitydto.DevLoginInput{UserID: userID, FirstName: firstName, LastName: lastName})
}

func (h CLIHandler) Logout(ctx context.Context) error {
	return h.usecase.Logout(ctx)
}

func (h CLIHandler) WhoAmI(ctx context.Context) (identitydto.ContextOutput, error) {
	return h.usecase.Current(ctx)
}
