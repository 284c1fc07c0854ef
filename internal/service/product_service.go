package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/avaldez/ecommerce-api/internal/cache"
	"github.com/avaldez/ecommerce-api/internal/domain"
	"github.com/avaldez/ecommerce-api/internal/repository"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrProductExists       = errors.New("product already exists")
	ErrProductNotFound     = errors.New("product not found")
	ErrProductNameRequired = errors.New("product name is required")
	ErrInvalidPrice        = errors.New("price must be non-negative")
	ErrInvalidStock        = errors.New("stock must be non-negative")
)

const (
	productCacheKeyPrefix  = "cache:product:"
	productsCacheKeyPrefix = "cache:products:"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

type ProductService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	cache        *cache.Cache
}

func NewProductService(productRepo repository.ProductRepository, categoryRepo repository.CategoryRepository, c *cache.Cache) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		cache:        c,
	}
}

type ProductInput struct {
	Name        string
	Description string
	Price       float64
	SKU         string
	Stock       int
	ImageURL    string
	Attributes  map[string]interface{}
	CategoryID  uuid.UUID
}

// ProductPage is one page of the catalog plus the paging envelope the list
// endpoint returns.
type ProductPage struct {
	PageNumber int               `json:"pageNumber"`
	PageSize   int               `json:"pageSize"`
	TotalPages int               `json:"totalPages"`
	Items      []*domain.Product `json:"items"`
}

func (s *ProductService) List(ctx context.Context, pageNumber, pageSize int) (*ProductPage, error) {
	if pageNumber < 1 {
		pageNumber = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	key := fmt.Sprintf("%s%d:%d", productsCacheKeyPrefix, pageNumber, pageSize)
	var cached ProductPage
	if s.cache.Get(ctx, key, &cached) {
		return &cached, nil
	}

	products, total, err := s.productRepo.List(ctx, pageSize, (pageNumber-1)*pageSize)
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	page := &ProductPage{
		PageNumber: pageNumber,
		PageSize:   pageSize,
		TotalPages: totalPages,
		Items:      products,
	}

	s.cache.Set(ctx, key, page)
	return page, nil
}

func (s *ProductService) Get(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	var cached domain.Product
	if s.cache.Get(ctx, productCacheKeyPrefix+id.String(), &cached) {
		return &cached, nil
	}

	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	s.cache.Set(ctx, productCacheKeyPrefix+id.String(), product)
	return product, nil
}

func (s *ProductService) GetByCategory(ctx context.Context, categoryID uuid.UUID) ([]*domain.Product, error) {
	exists, err := s.categoryRepo.ExistsByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrCategoryNotFound
	}

	return s.productRepo.GetByCategory(ctx, categoryID)
}

func (s *ProductService) Search(ctx context.Context, name string) ([]*domain.Product, error) {
	return s.productRepo.SearchByName(ctx, name)
}

func (s *ProductService) Create(ctx context.Context, input ProductInput) (*domain.Product, error) {
	if err := s.validate(input); err != nil {
		return nil, err
	}

	exists, err := s.productRepo.ExistsByName(ctx, input.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrProductExists
	}

	categoryExists, err := s.categoryRepo.ExistsByID(ctx, input.CategoryID)
	if err != nil {
		return nil, err
	}
	if !categoryExists {
		return nil, ErrCategoryNotFound
	}

	name := strings.TrimSpace(input.Name)
	product := &domain.Product{
		ID:          uuid.New(),
		Name:        name,
		Slug:        slug.Make(name),
		Description: input.Description,
		Price:       input.Price,
		SKU:         input.SKU,
		Stock:       input.Stock,
		ImageURL:    input.ImageURL,
		Attributes:  datatypes.JSONMap(input.Attributes),
		CategoryID:  input.CategoryID,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrProductExists
		}
		return nil, err
	}

	s.invalidate(ctx, product.ID)
	return product, nil
}

func (s *ProductService) Update(ctx context.Context, id uuid.UUID, input ProductInput) (*domain.Product, error) {
	if err := s.validate(input); err != nil {
		return nil, err
	}

	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	if !strings.EqualFold(strings.TrimSpace(product.Name), name) {
		exists, err := s.productRepo.ExistsByName(ctx, name)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, ErrProductExists
		}
	}

	categoryExists, err := s.categoryRepo.ExistsByID(ctx, input.CategoryID)
	if err != nil {
		return nil, err
	}
	if !categoryExists {
		return nil, ErrCategoryNotFound
	}

	product.Name = name
	product.Slug = slug.Make(name)
	product.Description = input.Description
	product.Price = input.Price
	product.SKU = input.SKU
	product.Stock = input.Stock
	product.ImageURL = input.ImageURL
	product.Attributes = datatypes.JSONMap(input.Attributes)
	product.CategoryID = input.CategoryID
	product.Category = nil
	product.UpdatedAt = time.Now()

	if err := s.productRepo.Update(ctx, product); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrProductExists
		}
		return nil, err
	}

	s.invalidate(ctx, product.ID)
	return product, nil
}

func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	if err := s.productRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidate(ctx, id)
	return nil
}

// Buy decrements stock for the named product. The decrement happens in one
// conditional UPDATE at the store, so concurrent purchases cannot oversell.
func (s *ProductService) Buy(ctx context.Context, name string, quantity int) error {
	if strings.TrimSpace(name) == "" {
		return ErrProductNameRequired
	}
	if quantity <= 0 {
		return domain.ErrInvalidQuantity
	}

	err := s.productRepo.DecrementStock(ctx, name, quantity)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}

	s.cache.DeletePrefix(ctx, productsCacheKeyPrefix)
	s.cache.DeletePrefix(ctx, productCacheKeyPrefix)
	return nil
}

func (s *ProductService) validate(input ProductInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return ErrProductNameRequired
	}
	if input.Price < 0 {
		return ErrInvalidPrice
	}
	if input.Stock < 0 {
		return ErrInvalidStock
	}
	return nil
}

func (s *ProductService) invalidate(ctx context.Context, id uuid.UUID) {
	s.cache.Delete(ctx, productCacheKeyPrefix+id.String())
	s.cache.DeletePrefix(ctx, productsCacheKeyPrefix)
}
