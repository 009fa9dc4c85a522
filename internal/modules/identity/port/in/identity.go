package in

import (
	"context"

	"crux/internal/modules/identity/dto"
)

type Usecase interface {
	Login(ctx context.Context, input dto.LoginInput) (dto.ContextOutput, error)
	DevLogin(ctx context.Context, input dto.DevLoginInput) (dto.ContextOutput, error)
	Logout(ctx context.Context) error
	Current(ctx context.Context) (dto.ContextOutput, error)
}
