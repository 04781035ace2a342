package user

import (
	"context"
	"strconv"
	"strings"

	"github.com/BruksfildServices01/food-storefront/internal/access"
	"github.com/BruksfildServices01/food-storefront/internal/audit"
	domain "github.com/BruksfildServices01/food-storefront/internal/domain/user"
	"github.com/BruksfildServices01/food-storefront/internal/models"
	"github.com/BruksfildServices01/food-storefront/internal/usecase"
)

const (
	MsgUserUpdated = "User information updated successfully!"
	MsgUserDeleted = "User deleted successfully!"
)

// RegisteredMessage is the confirmation for an account created by an
// admin, e.g. "Staff registered successfully!".
func RegisteredMessage(userType string) string {
	if userType == "" {
		return MsgRegistered
	}
	return strings.ToUpper(userType[:1]) + userType[1:] + " registered successfully!"
}

// ======================================================
// REGISTER
// ======================================================

type AdminRegisterUser struct {
	users domain.Repository
	audit *audit.Dispatcher
}

func NewAdminRegisterUser(users domain.Repository, audit *audit.Dispatcher) *AdminRegisterUser {
	return &AdminRegisterUser{users: users, audit: audit}
}

// Execute creates an account of any role. No confirmation password is
// asked for.
func (uc *AdminRegisterUser) Execute(
	ctx context.Context,
	actor access.Actor,
	in RegisterInput,
	userType string,
) (*models.User, error) {

	if err := actor.Require(access.ManageUsers); err != nil {
		return nil, err
	}

	if userType == "" {
		userType = string(access.RoleClient)
	}
	if _, ok := access.ParseRole(userType); !ok {
		return nil, domain.ErrInvalidUserType
	}

	in = in.normalized()
	in.CPassword = in.Password
	if err := in.validate(); err != nil {
		return nil, err
	}

	u, err := createAccount(ctx, uc.users, in, userType)
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &actor.UserID,
		Action:   "user_created",
		Entity:   "user",
		EntityID: strconv.FormatUint(uint64(u.ID), 10),
		Metadata: map[string]any{"user_type": userType},
	})
	return u, nil
}

// ======================================================
// UPDATE
// ======================================================

// UserPatch carries the fields an admin wants to change. Nil fields are
// left untouched.
type UserPatch struct {
	Name       *string `json:"name"`
	Fname      *string `json:"fname"`
	Mname      *string `json:"mname"`
	Lname      *string `json:"lname"`
	Email      *string `json:"email"`
	Number     *string `json:"number"`
	Address    *string `json:"address"`
	ProfilePic *string `json:"profile_pic"`
	Password   *string `json:"password"`
	UserType   *string `json:"user_type"`
}

func (p UserPatch) fields() (map[string]any, error) {
	out := map[string]any{}

	put := func(col string, v *string) {
		if v != nil {
			out[col] = strings.TrimSpace(*v)
		}
	}
	put("name", p.Name)
	put("fname", p.Fname)
	put("mname", p.Mname)
	put("lname", p.Lname)
	put("number", p.Number)
	put("address", p.Address)
	put("profile_pic", p.ProfilePic)

	if p.Email != nil {
		out["email"] = strings.ToLower(strings.TrimSpace(*p.Email))
	}
	if p.UserType != nil {
		if _, ok := access.ParseRole(*p.UserType); !ok {
			return nil, domain.ErrInvalidUserType
		}
		out["user_type"] = *p.UserType
	}
	if p.Password != nil {
		hash, err := domain.HashPassword(*p.Password)
		if err != nil {
			return nil, err
		}
		out["password"] = hash
	}
	return out, nil
}

type AdminUpdateUser struct {
	users domain.Repository
	audit *audit.Dispatcher
}

func NewAdminUpdateUser(users domain.Repository, audit *audit.Dispatcher) *AdminUpdateUser {
	return &AdminUpdateUser{users: users, audit: audit}
}

func (uc *AdminUpdateUser) Execute(ctx context.Context, actor access.Actor, id uint, patch UserPatch) error {
	if err := actor.Require(access.ManageUsers); err != nil {
		return err
	}

	fields, err := patch.fields()
	if err != nil {
		return err
	}
	if len(fields) == 0 {
		return domain.ErrNoFields
	}

	if name, ok := fields["name"].(string); ok {
		if err := usernameFree(ctx, uc.users, name, id); err != nil {
			return err
		}
	}

	if err := update(ctx, uc.users, id, fields); err != nil {
		return err
	}

	changed := make([]string, 0, len(fields))
	for col := range fields {
		changed = append(changed, col)
	}
	uc.audit.Dispatch(audit.Event{
		UserID:   &actor.UserID,
		Action:   "user_updated",
		Entity:   "user",
		EntityID: strconv.FormatUint(uint64(id), 10),
		Metadata: map[string]any{"fields": changed},
	})
	return nil
}

// ======================================================
// LIST / DELETE
// ======================================================

type ListUsers struct {
	users domain.Repository
}

func NewListUsers(users domain.Repository) *ListUsers {
	return &ListUsers{users: users}
}

func (uc *ListUsers) Execute(ctx context.Context, actor access.Actor, userType, sort string) ([]models.User, error) {
	if err := actor.Require(access.ManageUsers); err != nil {
		return nil, err
	}

	out, err := uc.users.List(ctx, userType, sort)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []models.User{}
	}
	return out, nil
}

type DeleteUser struct {
	tx    usecase.Transactor
	users domain.Repository
	audit *audit.Dispatcher
}

func NewDeleteUser(tx usecase.Transactor, users domain.Repository, audit *audit.Dispatcher) *DeleteUser {
	return &DeleteUser{tx: tx, users: users, audit: audit}
}

// Execute removes the account with its cart, orders and order lines.
func (uc *DeleteUser) Execute(ctx context.Context, actor access.Actor, id uint) error {
	if err := actor.Require(access.ManageUsers); err != nil {
		return err
	}

	var deleted bool
	err := uc.tx.Transaction(ctx, func(ctx context.Context) error {
		ok, err := uc.users.Delete(ctx, id)
		deleted = ok
		return err
	})
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrUserNotFound
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &actor.UserID,
		Action:   "user_deleted",
		Entity:   "user",
		EntityID: strconv.FormatUint(uint64(id), 10),
	})
	return nil
}
