// Package usecase holds the application operations. Each sub-package
// exposes one struct per operation with an Execute method.
package usecase

import "context"

// Transactor runs fn so that every store call made with the derived
// context commits or rolls back together.
type Transactor interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}
