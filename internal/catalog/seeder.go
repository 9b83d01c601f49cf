package catalog

import (
	"context"
	"fmt"

	"storefront/internal/repository"

	"github.com/rs/zerolog"
)

// Seeder populates the product table from a seed file when it is empty.
type Seeder struct {
	loader      Loader
	productRepo repository.ProductRepository
	logger      zerolog.Logger
}

// NewSeeder creates a new catalogue seeder.
func NewSeeder(loader Loader, productRepo repository.ProductRepository, logger zerolog.Logger) *Seeder {
	return &Seeder{
		loader:      loader,
		productRepo: productRepo,
		logger:      logger.With().Str("component", "catalog-seeder").Logger(),
	}
}

// Seed loads the seed file and inserts its products. A non-empty product
// table makes Seed a no-op so restarts never duplicate the catalogue.
func (s *Seeder) Seed(ctx context.Context, path string) error {
	count, err := s.productRepo.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to check product count: %w", err)
	}
	if count > 0 {
		s.logger.Info().Int64("existing_products", count).Msg("catalogue already populated, skipping seed")
		return nil
	}

	seeds, err := s.loader.Load(ctx, path)
	if err != nil {
		return fmt.Errorf("failed to load seed file: %w", err)
	}

	inserted := 0
	for _, seed := range seeds {
		product, err := seed.ToProduct()
		if err != nil {
			s.logger.Warn().Err(err).Str("name", seed.Name).Msg("skipping invalid seed record")
			continue
		}
		if _, err := s.productRepo.Create(ctx, product); err != nil {
			return fmt.Errorf("failed to insert seed product %q: %w", product.Name, err)
		}
		inserted++
	}

	s.logger.Info().
		Int("inserted", inserted).
		Int("skipped", len(seeds)-inserted).
		Msg("catalogue seeded")

	return nil
}
