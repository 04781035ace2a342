package order

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/food-storefront/internal/access"
	domain "github.com/BruksfildServices01/food-storefront/internal/domain/order"
)

// ListOrders returns one customer's orders by placement time, oldest
// first unless sort is DESC.
type ListOrders struct {
	repo domain.Repository
}

func NewListOrders(repo domain.Repository) *ListOrders {
	return &ListOrders{repo: repo}
}

func (uc *ListOrders) Execute(
	ctx context.Context,
	actor access.Actor,
	userID uint,
	status string,
	sort string,
) ([]domain.Summary, error) {

	if err := actor.RequireOwner(access.OwnOrders, userID); err != nil {
		return nil, err
	}

	return uc.repo.List(ctx, domain.ListFilter{
		UserID:   userID,
		Statuses: domain.FilterStatuses(status),
		Desc:     strings.EqualFold(sort, "DESC"),
	})
}

// ListAllOrders is the back-office view: every order, newest first,
// with an exact status filter and a free-text search.
type ListAllOrders struct {
	repo domain.Repository
}

func NewListAllOrders(repo domain.Repository) *ListAllOrders {
	return &ListAllOrders{repo: repo}
}

func (uc *ListAllOrders) Execute(
	ctx context.Context,
	actor access.Actor,
	status string,
	search string,
) ([]domain.Summary, error) {

	if err := actor.Require(access.ListOrders); err != nil {
		return nil, err
	}

	var statuses []domain.Status
	if status != "" && status != "all" {
		statuses = []domain.Status{domain.Status(status)}
	}

	return uc.repo.List(ctx, domain.ListFilter{
		Statuses: statuses,
		Search:   strings.TrimSpace(search),
		Desc:     true,
	})
}
