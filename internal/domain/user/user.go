package user

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/food-storefront/internal/httperr"
	"github.com/BruksfildServices01/food-storefront/internal/models"
)

const (
	SortNewest   = "newest"
	SortOldest   = "oldest"
	SortNameAsc  = "name_asc"
	SortNameDesc = "name_desc"
)

// OrderClause maps an account list sort key. Unknown keys list newest first.
func OrderClause(sort string) string {
	switch sort {
	case SortOldest:
		return "id ASC"
	case SortNameAsc:
		return "name ASC"
	case SortNameDesc:
		return "name DESC"
	}
	return "id DESC"
}

var (
	ErrUserNotFound       = httperr.NewBusiness("user_not_found", "User not found")
	ErrInvalidCredentials = httperr.NewBusiness("invalid_credentials", "Invalid credentials")
	ErrPasswordMismatch   = httperr.NewBusiness("password_mismatch", "Passwords do not match!")
	ErrUsernameExists     = httperr.NewBusiness("username_exists", "Username already exists!")
	ErrUsernameTaken      = httperr.NewBusiness("username_taken", "Username already taken!")
	ErrEmailExists        = httperr.NewBusiness("email_exists", "Email already exists!")
	ErrNumberExists       = httperr.NewBusiness("number_exists", "Phone number already exists!")
	ErrNoFields           = httperr.NewBusiness("no_fields", "No fields to update!")
	ErrMissingFields      = httperr.NewBusiness("missing_fields", "Username, email and password are required!")
	ErrInvalidUserType    = httperr.NewBusiness("invalid_user_type", "Invalid user type!")
)

func HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func CheckPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// Conflict reports which unique field of candidate collides with an
// existing account. Number is only compared when non-empty.
func Conflict(existing []models.User, name, email, number string) error {
	for _, u := range existing {
		switch {
		case u.Name == name:
			return ErrUsernameExists
		case u.Email == email:
			return ErrEmailExists
		case number != "" && u.Number == number:
			return ErrNumberExists
		}
	}
	return nil
}

type Repository interface {
	Get(ctx context.Context, id uint) (*models.User, error)
	FindByName(ctx context.Context, name string) (*models.User, error)

	// FindClashing returns accounts other than excludeID sharing the
	// name, email or non-empty number.
	FindClashing(
		ctx context.Context,
		name, email, number string,
		excludeID uint,
	) ([]models.User, error)

	Create(ctx context.Context, u *models.User) error
	Update(ctx context.Context, id uint, fields map[string]any) (bool, error)

	List(ctx context.Context, userType, sort string) ([]models.User, error)

	// Delete removes order lines, cart rows, orders and then the
	// account. Callers run it inside a transaction.
	Delete(ctx context.Context, id uint) (bool, error)
}
