package queries

import (
	"errors"
	"fmt"

	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

var ErrListUserOrdersQueryIsNotConstructed = errors.New(
	"ListUserOrdersQuery must be created via NewListUserOrdersQuery constructor",
)

// ListUserOrdersQuery retrieves a user's order history, newest first.
type ListUserOrdersQuery struct {
	userID int64

	guard guard.ConstructorGuard
}

func NewListUserOrdersQuery(userID int64) (ListUserOrdersQuery, error) {
	if userID <= 0 {
		return ListUserOrdersQuery{}, errs.NewValueIsInvalidErrorWithCause(
			"user id", fmt.Errorf("%d is not positive", userID))
	}
	return ListUserOrdersQuery{userID: userID, guard: guard.NewConstructorGuard()}, nil
}

func (q ListUserOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListUserOrdersQueryIsNotConstructed)
}

func (q ListUserOrdersQuery) UserID() int64 {
	return q.userID
}
