// Package memory provides in-memory implementations of the storage ports,
// used by tests.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/example/marketplace/internal/domain/product"
)

// ProductRepository is a thread-safe in-memory product.Repository.
type ProductRepository struct {
	mu       sync.RWMutex
	products map[string]*product.Product

	// FailDecrementAfter makes DecrementStock report a lost race once this
	// many decrements have succeeded, for exercising the order engine's
	// compensation path. Zero disables the hook.
	FailDecrementAfter int
	decrements         int
}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{products: make(map[string]*product.Product)}
}

func (r *ProductRepository) Create(ctx context.Context, p *product.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products[p.ID] = cloneProduct(p)
	return nil
}

func (r *ProductRepository) Update(ctx context.Context, p *product.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[p.ID]; !ok {
		return product.ErrProductNotFound
	}
	r.products[p.ID] = cloneProduct(p)
	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[id]; !ok {
		return product.ErrProductNotFound
	}
	delete(r.products, id)
	return nil
}

func (r *ProductRepository) Get(ctx context.Context, id string) (*product.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.products[id]
	if !ok {
		return nil, product.ErrProductNotFound
	}
	return cloneProduct(p), nil
}

func (r *ProductRepository) List(ctx context.Context, f product.Filter) ([]*product.Product, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []*product.Product
	for _, p := range r.products {
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		if f.Search != "" {
			needle := strings.ToLower(f.Search)
			if !strings.Contains(strings.ToLower(p.Name), needle) &&
				!strings.Contains(strings.ToLower(p.Description), needle) {
				continue
			}
		}
		matched = append(matched, cloneProduct(p))
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := len(matched)
	start := (f.Page - 1) * f.Limit
	if start >= total {
		return []*product.Product{}, total, nil
	}
	end := start + f.Limit
	if end > total {
		end = total
	}
	return matched[start:end], total, nil
}

func (r *ProductRepository) Categories(ctx context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]bool)
	var categories []string
	for _, p := range r.products {
		if !seen[p.Category] {
			seen[p.Category] = true
			categories = append(categories, p.Category)
		}
	}
	sort.Strings(categories)
	return categories, nil
}

func (r *ProductRepository) DecrementStock(ctx context.Context, id string, qty int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailDecrementAfter > 0 && r.decrements >= r.FailDecrementAfter {
		return false, nil
	}
	p, ok := r.products[id]
	if !ok || p.Stock < qty {
		return false, nil
	}
	p.Stock -= qty
	r.decrements++
	return true, nil
}

func (r *ProductRepository) RestoreStock(ctx context.Context, id string, qty int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return product.ErrProductNotFound
	}
	p.Stock += qty
	return nil
}

// cloneProduct keeps callers from aliasing the stored record.
func cloneProduct(p *product.Product) *product.Product {
	cp := *p
	cp.Images = append([]string(nil), p.Images...)
	if p.Specifications != nil {
		cp.Specifications = make(map[string]string, len(p.Specifications))
		for k, v := range p.Specifications {
			cp.Specifications[k] = v
		}
	}
	return &cp
}
