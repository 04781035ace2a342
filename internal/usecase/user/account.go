package user

import (
	"context"
	"strconv"
	"strings"

	"github.com/BruksfildServices01/food-storefront/internal/access"
	"github.com/BruksfildServices01/food-storefront/internal/audit"
	"github.com/BruksfildServices01/food-storefront/internal/db"
	domain "github.com/BruksfildServices01/food-storefront/internal/domain/user"
	"github.com/BruksfildServices01/food-storefront/internal/httperr"
	"github.com/BruksfildServices01/food-storefront/internal/models"
	"github.com/BruksfildServices01/food-storefront/internal/validators"
)

const (
	MsgRegistered      = "Registration successful!"
	MsgProfileUpdated  = "Profile updated successfully!"
	MsgAddressUpdated  = "Address updated successfully!"
	MsgUsernameUpdated = "Username updated successfully!"
)

var ErrInvalidEmail = httperr.NewBusiness("invalid_email", "Invalid email address!")

// TokenIssuer signs a session token for an authenticated account.
type TokenIssuer interface {
	Issue(u *models.User) (string, error)
}

// ======================================================
// REGISTER / LOGIN
// ======================================================

type RegisterInput struct {
	Name      string `json:"name"`
	Fname     string `json:"fname"`
	Mname     string `json:"mname"`
	Lname     string `json:"lname"`
	Email     string `json:"email"`
	Number    string `json:"number"`
	Address   string `json:"address"`
	Password  string `json:"password"`
	CPassword string `json:"cpassword"`
}

func (in RegisterInput) normalized() RegisterInput {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Number = strings.TrimSpace(in.Number)
	return in
}

func (in RegisterInput) validate() error {
	if in.Name == "" || in.Email == "" || in.Password == "" {
		return domain.ErrMissingFields
	}
	if !validators.IsEmail(in.Email) {
		return ErrInvalidEmail
	}
	return nil
}

func (in RegisterInput) model(hash, userType string) *models.User {
	return &models.User{
		Name:     in.Name,
		Fname:    strings.TrimSpace(in.Fname),
		Mname:    strings.TrimSpace(in.Mname),
		Lname:    strings.TrimSpace(in.Lname),
		Email:    in.Email,
		Number:   in.Number,
		Address:  strings.TrimSpace(in.Address),
		Password: hash,
		UserType: userType,
	}
}

type Register struct {
	users domain.Repository
	audit *audit.Dispatcher
}

func NewRegister(users domain.Repository, audit *audit.Dispatcher) *Register {
	return &Register{users: users, audit: audit}
}

// Execute creates a client account.
func (uc *Register) Execute(ctx context.Context, in RegisterInput) (*models.User, error) {
	in = in.normalized()
	if err := in.validate(); err != nil {
		return nil, err
	}

	u, err := createAccount(ctx, uc.users, in, string(access.RoleClient))
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &u.ID,
		Action:   "user_registered",
		Entity:   "user",
		EntityID: strconv.FormatUint(uint64(u.ID), 10),
	})
	return u, nil
}

// createAccount checks uniqueness, password confirmation and stores the
// account. A unique index violation that slips past the check reports
// as the matching business error.
func createAccount(ctx context.Context, users domain.Repository, in RegisterInput, userType string) (*models.User, error) {
	existing, err := users.FindClashing(ctx, in.Name, in.Email, in.Number, 0)
	if err != nil {
		return nil, err
	}
	if err := domain.Conflict(existing, in.Name, in.Email, in.Number); err != nil {
		return nil, err
	}

	if in.Password != in.CPassword {
		return nil, domain.ErrPasswordMismatch
	}

	hash, err := domain.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	u := in.model(hash, userType)
	if err := users.Create(ctx, u); err != nil {
		if db.IsConflict(err) {
			return nil, domain.ErrUsernameExists
		}
		return nil, err
	}
	return u, nil
}

type LoginResult struct {
	User  *models.User
	Token string
}

type Login struct {
	users  domain.Repository
	tokens TokenIssuer
}

func NewLogin(users domain.Repository, tokens TokenIssuer) *Login {
	return &Login{users: users, tokens: tokens}
}

func (uc *Login) Execute(ctx context.Context, username, password string) (*LoginResult, error) {
	u, err := uc.users.FindByName(ctx, strings.TrimSpace(username))
	if err != nil {
		if db.IsNotFound(err) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !domain.CheckPassword(u.Password, password) {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := uc.tokens.Issue(u)
	if err != nil {
		return nil, err
	}
	return &LoginResult{User: u, Token: token}, nil
}

// ======================================================
// PROFILE
// ======================================================

type GetUser struct {
	users domain.Repository
}

func NewGetUser(users domain.Repository) *GetUser {
	return &GetUser{users: users}
}

// Execute lets an account read itself. Admins may read any account.
func (uc *GetUser) Execute(ctx context.Context, actor access.Actor, id uint) (*models.User, error) {
	if err := actor.RequireOwner(access.OwnProfile, id); err != nil {
		return nil, err
	}
	return getUser(ctx, uc.users, id)
}

func getUser(ctx context.Context, users domain.Repository, id uint) (*models.User, error) {
	u, err := users.Get(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

type ProfileInput struct {
	Fname  string `json:"fname"`
	Mname  string `json:"mname"`
	Lname  string `json:"lname"`
	Email  string `json:"email"`
	Number string `json:"number"`
}

type UpdateProfile struct {
	users domain.Repository
}

func NewUpdateProfile(users domain.Repository) *UpdateProfile {
	return &UpdateProfile{users: users}
}

func (uc *UpdateProfile) Execute(ctx context.Context, actor access.Actor, id uint, in ProfileInput) error {
	if err := actor.RequireOwner(access.OwnProfile, id); err != nil {
		return err
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))
	number := strings.TrimSpace(in.Number)
	if !validators.IsEmail(email) {
		return ErrInvalidEmail
	}

	existing, err := uc.users.FindClashing(ctx, "", email, number, id)
	if err != nil {
		return err
	}
	if err := domain.Conflict(existing, "", email, number); err != nil {
		return err
	}

	return update(ctx, uc.users, id, map[string]any{
		"fname":  strings.TrimSpace(in.Fname),
		"mname":  strings.TrimSpace(in.Mname),
		"lname":  strings.TrimSpace(in.Lname),
		"email":  email,
		"number": number,
	})
}

type UpdateAddress struct {
	users domain.Repository
}

func NewUpdateAddress(users domain.Repository) *UpdateAddress {
	return &UpdateAddress{users: users}
}

func (uc *UpdateAddress) Execute(ctx context.Context, actor access.Actor, id uint, address string) error {
	if err := actor.RequireOwner(access.OwnProfile, id); err != nil {
		return err
	}
	return update(ctx, uc.users, id, map[string]any{"address": strings.TrimSpace(address)})
}

type UpdateUsername struct {
	users domain.Repository
}

func NewUpdateUsername(users domain.Repository) *UpdateUsername {
	return &UpdateUsername{users: users}
}

func (uc *UpdateUsername) Execute(ctx context.Context, actor access.Actor, id uint, username string) error {
	if err := actor.RequireOwner(access.OwnProfile, id); err != nil {
		return err
	}

	username = strings.TrimSpace(username)
	if username == "" {
		return domain.ErrMissingFields
	}
	if err := usernameFree(ctx, uc.users, username, id); err != nil {
		return err
	}

	return update(ctx, uc.users, id, map[string]any{"name": username})
}

func usernameFree(ctx context.Context, users domain.Repository, name string, id uint) error {
	u, err := users.FindByName(ctx, name)
	if err != nil {
		if db.IsNotFound(err) {
			return nil
		}
		return err
	}
	if u.ID != id {
		return domain.ErrUsernameTaken
	}
	return nil
}

// update applies fields and maps a missing row or a unique violation
// to business errors.
func update(ctx context.Context, users domain.Repository, id uint, fields map[string]any) error {
	ok, err := users.Update(ctx, id, fields)
	if err != nil {
		if db.IsConflict(err) {
			return domain.ErrUsernameTaken
		}
		return err
	}
	if !ok {
		return domain.ErrUserNotFound
	}
	return nil
}
