package service

import (
	"time"

	"github.com/avaldez/ecommerce-api/internal/auth"
	"github.com/avaldez/ecommerce-api/internal/cache"
	"github.com/avaldez/ecommerce-api/internal/config"
	"github.com/avaldez/ecommerce-api/internal/repository"
)

type Services struct {
	Auth     *AuthService
	Category *CategoryService
	Product  *ProductService
}

func NewServices(repos *repository.Repositories, cfg *config.Config, c *cache.Cache) (*Services, error) {
	issuer, err := auth.NewTokenIssuer(cfg.JWTSecret, time.Duration(cfg.JWTExpirationHours)*time.Hour)
	if err != nil {
		return nil, err
	}

	return &Services{
		Auth:     NewAuthService(repos.User, auth.NewBcryptHasher(), issuer),
		Category: NewCategoryService(repos.Category, c),
		Product:  NewProductService(repos.Product, repos.Category, c),
	}, nil
}
