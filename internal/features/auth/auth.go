package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	types "github.com/yungbote/cleanarch-backend/internal/domain"
	domainagg "github.com/yungbote/cleanarch-backend/internal/domain/aggregates"
	"github.com/yungbote/cleanarch-backend/internal/domain/user"
	"github.com/yungbote/cleanarch-backend/internal/features"
	"github.com/yungbote/cleanarch-backend/internal/mediator"
	"github.com/yungbote/cleanarch-backend/internal/platform/dbctx"
)

type UserDTO struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	FullName string    `json:"fullName"`
	Roles    []string  `json:"roles"`
	IsActive bool      `json:"isActive"`
}

type LoginResponse struct {
	Token        string    `json:"token"`
	RefreshToken string    `json:"refreshToken"`
	ExpiresAt    time.Time `json:"expiresAt"`
	User         UserDTO   `json:"user"`
}

func toDTO(u *types.User) UserDTO {
	return UserDTO{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		FullName: u.FullName,
		Roles:    u.RoleNames(),
		IsActive: u.IsActive,
	}
}

type RegisterCommand struct {
	Username string `json:"username" validate:"notblank,min=3,max=50"`
	Email    string `json:"email" validate:"required,email,max=200"`
	Password string `json:"password" validate:"notblank,min=6,max=100"`
	FullName string `json:"fullName" validate:"max=200"`
}

type LoginCommand struct {
	Username string `json:"username" validate:"notblank"`
	Password string `json:"password" validate:"notblank"`
}

type MeQuery struct{}

type handlers struct {
	d features.Deps
}

func (h handlers) register(ctx context.Context, cmd RegisterCommand) (UserDTO, error) {
	const op = "auth.register"
	hash, err := h.d.Passwords.Hash(cmd.Password)
	if err != nil {
		return UserDTO{}, domainagg.Wrap(domainagg.CodeInternal, op, err)
	}
	u, err := user.New(cmd.Username, cmd.Email, hash, cmd.FullName)
	if err != nil {
		return UserDTO{}, err
	}
	if err := u.AddRole(types.RoleUser); err != nil {
		return UserDTO{}, err
	}

	err = h.d.UoW.Execute(ctx, op, func(dbc dbctx.Context) error {
		taken, err := h.d.Repos.Users.UsernameExists(dbc, u.Username)
		if err != nil {
			return err
		}
		if taken {
			return domainagg.Conflict(op, "Username already exists")
		}
		if taken, err = h.d.Repos.Users.EmailExists(dbc, u.Email); err != nil {
			return err
		}
		if taken {
			return domainagg.Conflict(op, "Email already exists")
		}
		return h.d.Repos.Users.Add(dbc, u)
	})
	if err != nil {
		return UserDTO{}, err
	}
	h.d.Log.Info("user registered", "user_id", u.ID, "username", u.Username)
	return toDTO(u), nil
}

func (h handlers) login(ctx context.Context, cmd LoginCommand) (LoginResponse, error) {
	const op = "auth.login"
	invalid := domainagg.Unauthorized(op, "Invalid username or password")

	var u *types.User
	err := h.d.UoW.Execute(ctx, op, func(dbc dbctx.Context) error {
		found, err := h.d.Repos.Users.GetByUsername(dbc, strings.TrimSpace(cmd.Username))
		if err != nil {
			return err
		}
		if found == nil || !h.d.Passwords.Verify(found.PasswordHash, cmd.Password) {
			return invalid
		}
		if !found.IsActive {
			return domainagg.Unauthorized(op, "User account is inactive")
		}
		found.RecordLogin(h.d.Now())
		u = found
		return h.d.Repos.Users.Update(dbc, found)
	})
	if err != nil {
		return LoginResponse{}, err
	}

	issued, err := h.d.Tokens.Issue(u)
	if err != nil {
		return LoginResponse{}, domainagg.Wrap(domainagg.CodeInternal, op, err)
	}
	h.d.Log.Info("user logged in", "user_id", u.ID)
	return LoginResponse{
		Token:        issued.AccessToken,
		RefreshToken: issued.RefreshToken,
		ExpiresAt:    issued.ExpiresAt,
		User:         toDTO(u),
	}, nil
}

// me answers from the token claims without touching the database.
func (h handlers) me(ctx context.Context, _ MeQuery) (UserDTO, error) {
	rd, err := features.CurrentUser(ctx, "auth.me")
	if err != nil {
		return UserDTO{}, err
	}
	return UserDTO{
		ID:       rd.UserID,
		Username: rd.Username,
		Email:    rd.Email,
		FullName: rd.FullName,
		Roles:    append([]string(nil), rd.Roles...),
		IsActive: true,
	}, nil
}

func Register(m *mediator.Mediator, d features.Deps) {
	h := handlers{d: d}
	mediator.Register[RegisterCommand, UserDTO](m, h.register)
	mediator.Register[LoginCommand, LoginResponse](m, h.login)
	mediator.Register[MeQuery, UserDTO](m, h.me)
}
