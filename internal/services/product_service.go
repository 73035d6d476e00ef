package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/Obiagu00/CampusConnectNG/internal/models"
	"github.com/Obiagu00/CampusConnectNG/internal/store"
)

// ErrProductNotFound is returned when a product id matches no listing.
var ErrProductNotFound = errors.New("product not found")

// FilterAll is the sentinel option meaning "criterion not active".
const FilterAll = "All"

// FilterCriteria holds the marketplace filter inputs. An empty string or
// FilterAll deactivates a criterion; active criteria combine with AND.
type FilterCriteria struct {
	SearchTerm     string
	UniversityName string
	Category       string
	Condition      string
}

// NewProductInput carries the fields collected by the sell-item form.
type NewProductInput struct {
	Name           string
	Description    string
	Price          float64
	ImageURL       string
	UniversityName string
	Category       string
	Condition      models.Condition
}

// IProductService defines the interface for listing and browsing products.
type IProductService interface {
	ListProduct(ctx context.Context, input NewProductInput) (*models.Product, error)
	Products(ctx context.Context) []models.Product
	FindProductByID(ctx context.Context, id int64) (*models.Product, error)
	Filter(ctx context.Context, criteria FilterCriteria) []models.Product
	Categories(ctx context.Context) []string
	Conditions(ctx context.Context) []string
	ProductsBySeller(ctx context.Context, sellerID int64) []models.Product
}

// productService implements IProductService.
type productService struct {
	store *store.Store
}

// NewProductService creates a new ProductService.
func NewProductService(st *store.Store) IProductService {
	return &productService{store: st}
}

// ListProduct creates a listing owned by the session user. The seller field
// is a snapshot of the user's id and name taken now; the new listing goes to
// the head of the collection so the marketplace shows newest first.
func (s *productService) ListProduct(ctx context.Context, input NewProductInput) (*models.Product, error) {
	seller, ok := s.store.CurrentUser()
	if !ok {
		return nil, ErrNotLoggedIn
	}
	if strings.TrimSpace(input.Name) == "" || strings.TrimSpace(input.Category) == "" {
		return nil, fmt.Errorf("%w: name and category are required", ErrInvalidInput)
	}
	if input.Price <= 0 {
		return nil, fmt.Errorf("%w: price must be positive", ErrInvalidInput)
	}
	if !input.Condition.IsValid() {
		return nil, fmt.Errorf("%w: condition must be %q or %q", ErrInvalidInput, models.ConditionNew, models.ConditionUsed)
	}

	product := models.Product{
		ID:             s.store.NextID(),
		Name:           input.Name,
		Description:    input.Description,
		Price:          input.Price,
		ImageURL:       input.ImageURL,
		UniversityName: input.UniversityName,
		Category:       input.Category,
		Condition:      input.Condition,
		Seller:         seller.AsSeller(),
	}
	s.store.PrependProduct(product)
	log.Printf("Product %d (%s) listed by user %d", product.ID, product.Name, seller.ID)
	return &product, nil
}

// Products returns all products, newest first.
func (s *productService) Products(ctx context.Context) []models.Product {
	return s.store.Products()
}

// FindProductByID returns the product with the given id.
func (s *productService) FindProductByID(ctx context.Context, id int64) (*models.Product, error) {
	product, ok := s.store.FindProductByID(id)
	if !ok {
		return nil, ErrProductNotFound
	}
	return &product, nil
}

// Filter derives the visible product list from the full collection. All
// active criteria must match (AND); with no active criteria the full
// collection comes back unchanged. Order is always preserved.
func (s *productService) Filter(ctx context.Context, criteria FilterCriteria) []models.Product {
	products := s.store.Products()

	term := strings.ToLower(strings.TrimSpace(criteria.SearchTerm))
	university := normalizeCriterion(criteria.UniversityName)
	category := normalizeCriterion(criteria.Category)
	condition := normalizeCriterion(criteria.Condition)

	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if term != "" &&
			!strings.Contains(strings.ToLower(p.Name), term) &&
			!strings.Contains(strings.ToLower(p.Description), term) {
			continue
		}
		if university != "" && p.UniversityName != university {
			continue
		}
		if category != "" && p.Category != category {
			continue
		}
		if condition != "" && string(p.Condition) != condition {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Categories returns the distinct categories present across all products,
// sorted, prefixed with the "All" sentinel.
func (s *productService) Categories(ctx context.Context) []string {
	seen := make(map[string]struct{})
	for _, p := range s.store.Products() {
		seen[p.Category] = struct{}{}
	}
	categories := make([]string, 0, len(seen))
	for c := range seen {
		categories = append(categories, c)
	}
	sort.Strings(categories)
	return append([]string{FilterAll}, categories...)
}

// Conditions returns the fixed condition option set.
func (s *productService) Conditions(ctx context.Context) []string {
	return []string{FilterAll, string(models.ConditionNew), string(models.ConditionUsed)}
}

// ProductsBySeller returns the listings owned by the given seller in
// collection order. Backs both "my listings" and the public seller profile.
func (s *productService) ProductsBySeller(ctx context.Context, sellerID int64) []models.Product {
	return s.store.ProductsBySeller(sellerID)
}

func normalizeCriterion(v string) string {
	v = strings.TrimSpace(v)
	if v == FilterAll {
		return ""
	}
	return v
}
