package users

import (
	"context"

	"github.com/dmitrijs2005/useraccounts/internal/server/models"
)

// Repository is the persistence contract for user accounts. Uniqueness of
// email and user_id is enforced by the store itself: Create fails with
// common.ErrorAlreadyExists on a duplicate, there is no check-then-insert.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByUserID(ctx context.Context, userID string) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
}
