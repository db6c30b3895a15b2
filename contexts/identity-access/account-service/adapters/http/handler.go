package httpadapter

import (
	"context"
	"log/slog"

	"campus/contexts/identity-access/account-service/application"
	"campus/contexts/identity-access/account-service/domain/entities"
	httptransport "campus/contexts/identity-access/account-service/transport/http"
	authzentities "campus/contexts/identity-access/authorization-service/domain/entities"
)

// Handler maps HTTP DTOs to account application calls.
type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) RegisterHandler(ctx context.Context, request httptransport.RegisterRequest) (httptransport.UserDTO, error) {
	user, err := h.Service.Register(ctx, application.RegisterInput{
		Email:    request.Email,
		FullName: request.FullName,
		Password: request.Password,
		Role:     authzentities.Role(request.Role),
	})
	if err != nil {
		return httptransport.UserDTO{}, err
	}
	return toUserDTO(user), nil
}

func (h Handler) SetupHandler(ctx context.Context, request httptransport.SetupRequest) (httptransport.UserDTO, error) {
	user, err := h.Service.Setup(ctx, application.RegisterInput{
		Email:    request.Email,
		FullName: request.FullName,
		Password: request.Password,
	})
	if err != nil {
		return httptransport.UserDTO{}, err
	}
	return toUserDTO(user), nil
}

func (h Handler) LoginHandler(ctx context.Context, request httptransport.LoginRequest) (httptransport.LoginResponse, error) {
	result, err := h.Service.Login(ctx, request.Email, request.Password)
	if err != nil {
		return httptransport.LoginResponse{}, err
	}
	return httptransport.LoginResponse{
		Token: result.Token,
		User:  toUserDTO(result.User),
	}, nil
}

func (h Handler) GetUserHandler(ctx context.Context, userID string) (httptransport.UserDTO, error) {
	user, err := h.Service.Get(ctx, userID)
	if err != nil {
		return httptransport.UserDTO{}, err
	}
	return toUserDTO(user), nil
}

func (h Handler) ListUsersHandler(ctx context.Context) (httptransport.ListUsersResponse, error) {
	users, err := h.Service.List(ctx)
	if err != nil {
		return httptransport.ListUsersResponse{}, err
	}
	out := httptransport.ListUsersResponse{Users: make([]httptransport.UserDTO, 0, len(users))}
	for _, user := range users {
		out.Users = append(out.Users, toUserDTO(user))
	}
	return out, nil
}

func (h Handler) DeleteUserHandler(ctx context.Context, userID string) error {
	return h.Service.Delete(ctx, userID)
}

func toUserDTO(user entities.User) httptransport.UserDTO {
	return httptransport.UserDTO{
		UserID:    user.ID,
		Email:     user.Email,
		FullName:  user.FullName,
		Role:      string(user.Role),
		CreatedAt: user.CreatedAt,
	}
}
