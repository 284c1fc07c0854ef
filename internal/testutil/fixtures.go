package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/avaldez/ecommerce-api/internal/domain"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserBuilder creates test users with a builder pattern
type UserBuilder struct {
	username string
	name     string
	password string
	role     string
}

// NewUserBuilder creates a new UserBuilder with default values
func NewUserBuilder() *UserBuilder {
	return &UserBuilder{
		username: fmt.Sprintf("testuser_%s", uuid.New().String()[:8]),
		name:     "Test User",
		password: "testpassword123",
		role:     domain.RoleUser,
	}
}

// WithUsername sets the username
func (b *UserBuilder) WithUsername(username string) *UserBuilder {
	b.username = username
	return b
}

// WithPassword sets the password
func (b *UserBuilder) WithPassword(password string) *UserBuilder {
	b.password = password
	return b
}

// WithRole sets the role
func (b *UserBuilder) WithRole(role string) *UserBuilder {
	b.role = role
	return b
}

// Build creates the user in the database and returns the user with the raw password
func (b *UserBuilder) Build(t *testing.T, db *gorm.DB) (*domain.User, string) {
	t.Helper()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(b.password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &domain.User{
		ID:                 uuid.New(),
		Username:           b.username,
		NormalizedUsername: domain.NormalizeUsername(b.username),
		Name:               b.name,
		PasswordHash:       string(hashedPassword),
		Role:               b.role,
		CreatedAt:          time.Now(),
		UpdatedAt:          time.Now(),
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user, b.password
}

// UserPayload matches the API user response
type UserPayload struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

// LoginPayload matches the API login response
type LoginPayload struct {
	Token string      `json:"token"`
	User  UserPayload `json:"user"`
}

// Login authenticates an existing user through the API and returns the token
func Login(t *testing.T, ts *TestServer, username, password string) string {
	t.Helper()

	body, _ := json.Marshal(map[string]string{
		"username": username,
		"password": password,
	})

	resp, err := http.Post(ts.APIURL("/auth/login"), "application/json", bytes.NewBuffer(body))
	if err != nil {
		t.Fatalf("failed to login: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected login status code: %d", resp.StatusCode)
	}

	var payload LoginPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("failed to decode login response: %v", err)
	}
	return payload.Token
}

// CategoryBuilder creates test categories
type CategoryBuilder struct {
	name string
}

func NewCategoryBuilder() *CategoryBuilder {
	return &CategoryBuilder{
		name: fmt.Sprintf("Category %s", uuid.New().String()[:8]),
	}
}

func (b *CategoryBuilder) WithName(name string) *CategoryBuilder {
	b.name = name
	return b
}

func (b *CategoryBuilder) Build(t *testing.T, db *gorm.DB) *domain.Category {
	t.Helper()

	category := &domain.Category{
		ID:        uuid.New(),
		Name:      b.name,
		Slug:      slug.Make(b.name),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create category: %v", err)
	}
	return category
}

// ProductBuilder creates test products
type ProductBuilder struct {
	name       string
	price      float64
	stock      int
	categoryID uuid.UUID
}

func NewProductBuilder() *ProductBuilder {
	return &ProductBuilder{
		name:  fmt.Sprintf("Product %s", uuid.New().String()[:8]),
		price: 9.99,
		stock: 10,
	}
}

func (b *ProductBuilder) WithName(name string) *ProductBuilder {
	b.name = name
	return b
}

func (b *ProductBuilder) WithPrice(price float64) *ProductBuilder {
	b.price = price
	return b
}

func (b *ProductBuilder) WithStock(stock int) *ProductBuilder {
	b.stock = stock
	return b
}

func (b *ProductBuilder) WithCategory(categoryID uuid.UUID) *ProductBuilder {
	b.categoryID = categoryID
	return b
}

func (b *ProductBuilder) Build(t *testing.T, db *gorm.DB) *domain.Product {
	t.Helper()

	categoryID := b.categoryID
	if categoryID == uuid.Nil {
		categoryID = NewCategoryBuilder().Build(t, db).ID
	}

	product := &domain.Product{
		ID:         uuid.New(),
		Name:       b.name,
		Slug:       slug.Make(b.name),
		Price:      b.price,
		SKU:        fmt.Sprintf("SKU-%s", uuid.New().String()[:8]),
		Stock:      b.stock,
		CategoryID: categoryID,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}

	if err := db.Create(product).Error; err != nil {
		t.Fatalf("failed to create product: %v", err)
	}
	return product
}
