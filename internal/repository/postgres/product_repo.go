package postgres

import (
	"context"
	"strings"

	"github.com/avaldez/ecommerce-api/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *productRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(ctx context.Context, product *domain.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *productRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	var product domain.Product
	err := r.db.WithContext(ctx).Preload("Category").First(&product, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) List(ctx context.Context, limit, offset int) ([]*domain.Product, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&domain.Product{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var products []*domain.Product
	err := r.db.WithContext(ctx).Preload("Category").
		Order("name ASC").Limit(limit).Offset(offset).
		Find(&products).Error
	if err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func (r *productRepository) GetByCategory(ctx context.Context, categoryID uuid.UUID) ([]*domain.Product, error) {
	var products []*domain.Product
	err := r.db.WithContext(ctx).
		Where("category_id = ?", categoryID).
		Order("name ASC").
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

func (r *productRepository) SearchByName(ctx context.Context, name string) ([]*domain.Product, error) {
	var products []*domain.Product
	query := r.db.WithContext(ctx).Preload("Category").Order("name ASC")
	if trimmed := strings.TrimSpace(name); trimmed != "" {
		query = query.Where("name ILIKE ?", "%"+trimmed+"%")
	}
	err := query.Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

func (r *productRepository) Update(ctx context.Context, product *domain.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

func (r *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.Product{}, "id = ?", id).Error
}

func (r *productRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Product{}).
		Where("LOWER(TRIM(name)) = ?", strings.ToLower(strings.TrimSpace(name))).
		Count(&count).Error
	return count > 0, err
}

// DecrementStock runs a single conditional UPDATE so concurrent purchases
// serialize at the row and stock never goes negative.
func (r *productRepository) DecrementStock(ctx context.Context, name string, quantity int) error {
	if quantity <= 0 {
		return domain.ErrInvalidQuantity
	}

	normalized := strings.ToLower(strings.TrimSpace(name))
	result := r.db.WithContext(ctx).Model(&domain.Product{}).
		Where("LOWER(TRIM(name)) = ? AND stock >= ?", normalized, quantity).
		UpdateColumn("stock", gorm.Expr("stock - ?", quantity))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}

	// Nothing updated: distinguish a missing product from thin stock.
	exists, err := r.ExistsByName(ctx, name)
	if err != nil {
		return err
	}
	if !exists {
		return gorm.ErrRecordNotFound
	}
	return domain.ErrInsufficientStock
}
