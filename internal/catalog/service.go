package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/kyluxehaven/storefront/internal/auth"
)

// Service wraps the repository with seeding and the admin-only mutation
// checks. Authorization lives here, at the store boundary, so the HTTP
// layer is not the only line of defense.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns the catalog sorted by name. An empty catalog is populated
// from SeedProducts first and then re-read. Seeding is at-least-once:
// concurrent first calls can each observe an empty store and both seed,
// leaving duplicate rows. That is accepted — duplicates are cosmetic, not
// corrupting, and only possible on a brand-new deployment.
func (s *Service) List(ctx context.Context) ([]Product, error) {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("catalog: count: %w", err)
	}

	if n == 0 {
		slog.InfoContext(ctx, "catalog empty, seeding initial products", "count", len(SeedProducts))
		for _, p := range SeedProducts {
			if _, err := s.repo.Create(ctx, p); err != nil {
				return nil, fmt.Errorf("catalog: seed %q: %w", p.Name, err)
			}
		}
	}

	return s.repo.List(ctx)
}

// Get returns one product by id.
func (s *Service) Get(ctx context.Context, id string) (Product, error) {
	return s.repo.Get(ctx, id)
}

// Create adds a product. Admin only.
func (s *Service) Create(ctx context.Context, actor auth.User, p Product) (Product, error) {
	if err := auth.RequireAdmin(actor); err != nil {
		return Product{}, err
	}
	if strings.TrimSpace(p.Name) == "" {
		return Product{}, fmt.Errorf("catalog: product name is required")
	}
	if p.Price < 0 {
		return Product{}, fmt.Errorf("catalog: price must be non-negative")
	}

	created, err := s.repo.Create(ctx, p)
	if err != nil {
		return Product{}, err
	}
	slog.InfoContext(ctx, "product created", "product_id", created.ID, "name", created.Name, "admin_id", actor.ID)
	return created, nil
}

// Update applies a partial patch. Admin only.
func (s *Service) Update(ctx context.Context, actor auth.User, id string, patch Patch) error {
	if err := auth.RequireAdmin(actor); err != nil {
		return err
	}
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return fmt.Errorf("catalog: product name cannot be empty")
	}
	if patch.Price != nil && *patch.Price < 0 {
		return fmt.Errorf("catalog: price must be non-negative")
	}
	return s.repo.Update(ctx, id, patch)
}

// Delete removes a product. Admin only. Existing orders are unaffected
// because they carry their own item snapshots.
func (s *Service) Delete(ctx context.Context, actor auth.User, id string) error {
	if err := auth.RequireAdmin(actor); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	slog.InfoContext(ctx, "product deleted", "product_id", id, "admin_id", actor.ID)
	return nil
}
