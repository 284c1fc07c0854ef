package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/avaldez/ecommerce-api/internal/cache"
	"github.com/avaldez/ecommerce-api/internal/domain"
	"github.com/avaldez/ecommerce-api/internal/repository"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

var (
	ErrCategoryExists       = errors.New("category already exists")
	ErrCategoryNotFound     = errors.New("category not found")
	ErrCategoryNameRequired = errors.New("category name is required")
)

const (
	categoriesCacheKey     = "cache:categories"
	categoryCacheKeyPrefix = "cache:category:"
)

type CategoryService struct {
	categoryRepo repository.CategoryRepository
	cache        *cache.Cache
}

func NewCategoryService(categoryRepo repository.CategoryRepository, c *cache.Cache) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo, cache: c}
}

func (s *CategoryService) GetAll(ctx context.Context) ([]*domain.Category, error) {
	var categories []*domain.Category
	if s.cache.Get(ctx, categoriesCacheKey, &categories) {
		return categories, nil
	}

	categories, err := s.categoryRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	s.cache.Set(ctx, categoriesCacheKey, categories)
	return categories, nil
}

func (s *CategoryService) Get(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	var cached domain.Category
	if s.cache.Get(ctx, categoryCacheKeyPrefix+id.String(), &cached) {
		return &cached, nil
	}

	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	s.cache.Set(ctx, categoryCacheKeyPrefix+id.String(), category)
	return category, nil
}

func (s *CategoryService) Create(ctx context.Context, name string) (*domain.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrCategoryNameRequired
	}

	exists, err := s.categoryRepo.ExistsByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrCategoryExists
	}

	category := &domain.Category{
		ID:        uuid.New(),
		Name:      name,
		Slug:      slug.Make(name),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrCategoryExists
		}
		return nil, err
	}

	s.invalidate(ctx, category.ID)
	return category, nil
}

func (s *CategoryService) Update(ctx context.Context, id uuid.UUID, name string) (*domain.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrCategoryNameRequired
	}

	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	if !strings.EqualFold(strings.TrimSpace(category.Name), name) {
		exists, err := s.categoryRepo.ExistsByName(ctx, name)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, ErrCategoryExists
		}
	}

	category.Name = name
	category.Slug = slug.Make(name)
	category.UpdatedAt = time.Now()

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrCategoryExists
		}
		return nil, err
	}

	s.invalidate(ctx, category.ID)
	return category, nil
}

func (s *CategoryService) Delete(ctx context.Context, id uuid.UUID) error {
	exists, err := s.categoryRepo.ExistsByID(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return ErrCategoryNotFound
	}

	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidate(ctx, id)
	return nil
}

func (s *CategoryService) invalidate(ctx context.Context, id uuid.UUID) {
	s.cache.Delete(ctx, categoriesCacheKey, categoryCacheKeyPrefix+id.String())
}
