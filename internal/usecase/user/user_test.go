package user_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/food-storefront/internal/access"
	"github.com/BruksfildServices01/food-storefront/internal/auth"
	"github.com/BruksfildServices01/food-storefront/internal/db"
	"github.com/BruksfildServices01/food-storefront/internal/db/dbtest"
	domain "github.com/BruksfildServices01/food-storefront/internal/domain/user"
	"github.com/BruksfildServices01/food-storefront/internal/infra/repository"
	"github.com/BruksfildServices01/food-storefront/internal/models"
	ucUser "github.com/BruksfildServices01/food-storefront/internal/usecase/user"
)

var admin = access.Actor{UserID: 1000, Role: access.RoleAdmin}

type fixture struct {
	gw    *db.Gateway
	users *repository.UserGormRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gw := dbtest.Open(t)
	return &fixture{gw: gw, users: repository.NewUserGormRepository(gw)}
}

func validInput() ucUser.RegisterInput {
	return ucUser.RegisterInput{
		Name:      "ana",
		Fname:     "Ana",
		Lname:     "Reyes",
		Email:     "Ana@Example.com",
		Number:    "0917",
		Address:   "12 Main St",
		Password:  "secret",
		CPassword: "secret",
	}
}

func (f *fixture) register(t *testing.T) *models.User {
	t.Helper()
	u, err := ucUser.NewRegister(f.users, nil).Execute(context.Background(), validInput())
	require.NoError(t, err)
	return u
}

func self(u *models.User) access.Actor {
	return access.Actor{UserID: u.ID, Role: access.Role(u.UserType)}
}

// ======================================================
// REGISTER / LOGIN
// ======================================================

func TestRegisterAndLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	u := f.register(t)
	assert.Equal(t, "client", u.UserType)
	assert.Equal(t, "ana@example.com", u.Email)
	assert.NotEqual(t, "secret", u.Password)

	issuer := auth.NewIssuer("test-secret", time.Hour)
	login := ucUser.NewLogin(f.users, issuer)

	res, err := login.Execute(ctx, "ana", "secret")
	require.NoError(t, err)
	assert.Equal(t, u.ID, res.User.ID)

	claims, err := issuer.Parse(res.Token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)
	assert.Equal(t, access.RoleClient, claims.Role)

	_, err = login.Execute(ctx, "ana", "wrong")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = login.Execute(ctx, "nobody", "secret")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestRegisterRejects(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	register := ucUser.NewRegister(f.users, nil)
	f.register(t)

	cases := []struct {
		name   string
		mutate func(in *ucUser.RegisterInput)
		want   error
	}{
		{"duplicate name", func(in *ucUser.RegisterInput) { in.Email = "other@example.com"; in.Number = "1" }, domain.ErrUsernameExists},
		{"duplicate email", func(in *ucUser.RegisterInput) { in.Name = "bob"; in.Number = "1" }, domain.ErrEmailExists},
		{"duplicate number", func(in *ucUser.RegisterInput) { in.Name = "bob"; in.Email = "bob@example.com" }, domain.ErrNumberExists},
		{"password mismatch", func(in *ucUser.RegisterInput) {
			in.Name, in.Email, in.Number = "bob", "bob@example.com", "2"
			in.CPassword = "other"
		}, domain.ErrPasswordMismatch},
		{"bad email", func(in *ucUser.RegisterInput) { in.Name = "bob"; in.Email = "bob@localhost" }, ucUser.ErrInvalidEmail},
		{"missing name", func(in *ucUser.RegisterInput) { in.Name = " " }, domain.ErrMissingFields},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validInput()
			tc.mutate(&in)
			_, err := register.Execute(ctx, in)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

// ======================================================
// PROFILE
// ======================================================

func TestProfileUpdates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.register(t)
	me := self(u)

	require.NoError(t, ucUser.NewUpdateProfile(f.users).Execute(ctx, me, u.ID, ucUser.ProfileInput{
		Fname:  "Anabel",
		Email:  "anabel@example.com",
		Number: "0999",
	}))
	require.NoError(t, ucUser.NewUpdateAddress(f.users).Execute(ctx, me, u.ID, "9 Side St"))
	require.NoError(t, ucUser.NewUpdateUsername(f.users).Execute(ctx, me, u.ID, "anabel"))

	got, err := ucUser.NewGetUser(f.users).Execute(ctx, me, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Anabel", got.Fname)
	assert.Equal(t, "anabel@example.com", got.Email)
	assert.Equal(t, "9 Side St", got.Address)
	assert.Equal(t, "anabel", got.Name)
}

func TestUsernameTakenAndOwnership(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.register(t)

	other := &models.User{Name: "bob", Email: "bob@example.com", Password: "x", UserType: "client"}
	require.NoError(t, f.gw.Create(ctx, other))

	err := ucUser.NewUpdateUsername(f.users).Execute(ctx, self(u), u.ID, "bob")
	assert.ErrorIs(t, err, domain.ErrUsernameTaken)

	_, err = ucUser.NewGetUser(f.users).Execute(ctx, self(other), u.ID)
	assert.ErrorIs(t, err, access.ErrForbidden)

	_, err = ucUser.NewGetUser(f.users).Execute(ctx, admin, 424242)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

// ======================================================
// ADMIN
// ======================================================

func TestAdminRegisterAndUpdate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	in := validInput()
	in.Name = "sam"
	in.Email = "sam@example.com"
	in.Number = ""
	in.CPassword = ""

	u, err := ucUser.NewAdminRegisterUser(f.users, nil).Execute(ctx, admin, in, "staff")
	require.NoError(t, err)
	assert.Equal(t, "staff", u.UserType)
	assert.Equal(t, "Staff registered successfully!", ucUser.RegisteredMessage(u.UserType))

	_, err = ucUser.NewAdminRegisterUser(f.users, nil).Execute(ctx, admin, in, "owner")
	assert.ErrorIs(t, err, domain.ErrInvalidUserType)

	_, err = ucUser.NewAdminRegisterUser(f.users, nil).Execute(ctx, self(u), in, "client")
	assert.ErrorIs(t, err, access.ErrForbidden)

	update := ucUser.NewAdminUpdateUser(f.users, nil)

	err = update.Execute(ctx, admin, u.ID, ucUser.UserPatch{})
	assert.ErrorIs(t, err, domain.ErrNoFields)

	addr := "HQ"
	pw := "rotated"
	require.NoError(t, update.Execute(ctx, admin, u.ID, ucUser.UserPatch{Address: &addr, Password: &pw}))

	got, err := f.users.Get(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "HQ", got.Address)
	assert.True(t, domain.CheckPassword(got.Password, "rotated"))

	err = update.Execute(ctx, admin, 424242, ucUser.UserPatch{Address: &addr})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestListAndDeleteUsers(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.register(t)

	list, err := ucUser.NewListUsers(f.users).Execute(ctx, admin, "client", "newest")
	require.NoError(t, err)
	require.Len(t, list, 1)

	del := ucUser.NewDeleteUser(f.gw, f.users, nil)
	require.NoError(t, del.Execute(ctx, admin, u.ID))
	assert.ErrorIs(t, del.Execute(ctx, admin, u.ID), domain.ErrUserNotFound)

	list, err = ucUser.NewListUsers(f.users).Execute(ctx, admin, "all", "")
	require.NoError(t, err)
	assert.Empty(t, list)
}
