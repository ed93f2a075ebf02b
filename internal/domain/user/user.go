package user

import (
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	domainagg "github.com/yungbote/cleanarch-backend/internal/domain/aggregates"
)

const (
	RoleAdmin = "Admin"
	RoleUser  = "User"

	MinUsernameLength = 3
	MaxUsernameLength = 50
	MaxEmailLength    = 200
	MaxFullNameLength = 200
)

const EventUserRegistered = "UserRegistered"

type User struct {
	ID           uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"id"`
	Username     string                      `gorm:"size:50;uniqueIndex;not null" json:"username"`
	Email        string                      `gorm:"size:200;uniqueIndex;not null" json:"email"`
	PasswordHash string                      `gorm:"not null" json:"-"`
	FullName     string                      `gorm:"size:200" json:"fullName"`
	IsActive     bool                        `gorm:"not null" json:"isActive"`
	Roles        datatypes.JSONSlice[string] `json:"roles"`
	LastLoginAt  *time.Time                  `json:"lastLoginAt,omitempty"`

	domainagg.Audit         `gorm:"embedded"`
	domainagg.EventRecorder `gorm:"-" json:"-"`
}

func (User) TableName() string { return "users" }

type Registered struct {
	domainagg.EventMeta
	UserID   uuid.UUID `json:"userId"`
	Username string    `json:"username"`
}

func (Registered) EventName() string        { return EventUserRegistered }
func (e Registered) AggregateID() uuid.UUID { return e.UserID }

func New(username, email, passwordHash, fullName string) (*User, error) {
	const op = "user.create"
	username, err := domainagg.RequireText(op, "Username", username, MaxUsernameLength)
	if err != nil {
		return nil, err
	}
	if len(username) < MinUsernameLength {
		return nil, domainagg.Validationf(op, "Username must have at least %d characters", MinUsernameLength)
	}
	email, err = domainagg.RequireText(op, "Email", strings.ToLower(email), MaxEmailLength)
	if err != nil {
		return nil, err
	}
	if !strings.Contains(email, "@") {
		return nil, domainagg.Validation(op, "Email format is invalid")
	}
	if strings.TrimSpace(passwordHash) == "" {
		return nil, domainagg.Validation(op, "Password hash cannot be empty")
	}
	fullName, err = domainagg.OptionalText(op, "Full name", fullName, MaxFullNameLength)
	if err != nil {
		return nil, err
	}

	u := &User{
		ID:           uuid.New(),
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		FullName:     fullName,
		IsActive:     true,
		Roles:        datatypes.JSONSlice[string]{},
	}
	u.Raise(Registered{EventMeta: domainagg.NewEventMeta(), UserID: u.ID, Username: username})
	return u, nil
}

func (u *User) HasRole(role string) bool {
	return slices.ContainsFunc(u.Roles, func(r string) bool { return strings.EqualFold(r, role) })
}

func (u *User) AddRole(role string) error {
	role = strings.TrimSpace(role)
	if role == "" {
		return domainagg.Validation("user.add_role", "Role cannot be empty")
	}
	if u.HasRole(role) {
		return domainagg.Validationf("user.add_role", "User already has role %s", role)
	}
	u.Roles = append(u.Roles, role)
	return nil
}

func (u *User) RemoveRole(role string) error {
	idx := slices.IndexFunc(u.Roles, func(r string) bool { return strings.EqualFold(r, strings.TrimSpace(role)) })
	if idx < 0 {
		return domainagg.NotFound("user.remove_role", "Role not found")
	}
	u.Roles = slices.Delete(u.Roles, idx, idx+1)
	return nil
}

func (u *User) Activate()   { u.IsActive = true }
func (u *User) Deactivate() { u.IsActive = false }

func (u *User) RecordLogin(at time.Time) {
	at = at.UTC()
	u.LastLoginAt = &at
}

func (u *User) UpdateProfile(fullName, email string) error {
	const op = "user.update_profile"
	fullName, err := domainagg.OptionalText(op, "Full name", fullName, MaxFullNameLength)
	if err != nil {
		return err
	}
	email, err = domainagg.RequireText(op, "Email", strings.ToLower(email), MaxEmailLength)
	if err != nil {
		return err
	}
	if !strings.Contains(email, "@") {
		return domainagg.Validation(op, "Email format is invalid")
	}
	u.FullName = fullName
	u.Email = email
	return nil
}

// RoleNames returns a copy of the user's roles.
func (u *User) RoleNames() []string {
	return slices.Clone([]string(u.Roles))
}
