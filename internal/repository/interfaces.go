package repository

import (
	"context"

	"github.com/avaldez/ecommerce-api/internal/domain"
	"github.com/google/uuid"
)

type UserRepository interface {
	// Create persists a new user. The unique index on the normalized username
	// is the authority on uniqueness; a conflicting insert fails with
	// gorm.ErrDuplicatedKey regardless of any earlier IsUsernameTaken answer.
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	// GetByUsername looks up by normalized username, so any casing or
	// surrounding-whitespace variant finds the same record.
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	// IsUsernameTaken is advisory only; it lets registration fail fast before
	// paying for a hash, but the storage constraint has the final word.
	IsUsernameTaken(ctx context.Context, username string) (bool, error)
	List(ctx context.Context) ([]*domain.User, error)
}

type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Category, error)
	GetAll(ctx context.Context) ([]*domain.Category, error)
	Update(ctx context.Context, category *domain.Category) error
	Delete(ctx context.Context, id uuid.UUID) error
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
}

type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	// List returns one page ordered by name plus the total record count.
	List(ctx context.Context, limit, offset int) ([]*domain.Product, int64, error)
	GetByCategory(ctx context.Context, categoryID uuid.UUID) ([]*domain.Product, error)
	SearchByName(ctx context.Context, name string) ([]*domain.Product, error)
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	ExistsByName(ctx context.Context, name string) (bool, error)
	// DecrementStock atomically takes quantity units off the named product's
	// stock. It fails with domain-level sentinels when the product is unknown
	// or the stock is insufficient; it never goes negative.
	DecrementStock(ctx context.Context, name string, quantity int) error
}

type Repositories struct {
	User     UserRepository
	Category CategoryRepository
	Product  ProductRepository
}
