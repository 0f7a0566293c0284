package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/growthfolio/next-comic-store/internal/domain/product"
	"github.com/growthfolio/next-comic-store/internal/domain/user"
)

// Seed inserts the demo accounts and sample catalog. IDs are fixed so
// running it again is a no-op.
func Seed(ctx context.Context, pool *pgxpool.Pool) error {
	now := time.Now().UTC()
	users := NewUserRepository(pool)
	products := NewProductRepository(pool)

	seedUsers := []*user.User{
		{ID: "user-admin", Name: "Admin User", Email: "admin@comichub.com", Password: "password", IsAdmin: true, CreatedAt: now},
		{ID: "user-test", Name: "Test User", Email: "test@example.com", Password: "password", CreatedAt: now},
	}
	for _, u := range seedUsers {
		if err := users.Create(ctx, u); err != nil && !errors.Is(err, user.ErrEmailTaken) {
			return err
		}
	}

	seedProducts := []*product.Product{
		{ID: "comic-cosmic-crusaders", Title: "Cosmic Crusaders #1", ImageURL: "https://picsum.photos/seed/cosmic1/400/600", Price: 4.99, Description: "The start of a new galactic saga! Join the Crusaders as they defend the galaxy from the Void Lord.", Type: product.TypeSample, CreatedAt: now},
		{ID: "comic-midnight-detective", Title: "Midnight Detective: Case Files", ImageURL: "https://picsum.photos/seed/detective2/400/600", Price: 5.50, Description: "A gritty noir tale set in the rain-soaked streets of Neo-Veridia.", Type: product.TypeSample, CreatedAt: now},
		{ID: "comic-atheria", Title: "Chronicles of Atheria: The Lost Kingdom", ImageURL: "https://picsum.photos/seed/atheria3/400/600", Price: 6.99, Description: "An epic fantasy adventure to uncover the secrets of a long-lost civilization.", Type: product.TypeSample, CreatedAt: now},
		{ID: "comic-quantum-leapfrog", Title: "Quantum Leapfrog", ImageURL: "https://picsum.photos/seed/quantum4/400/600", Price: 3.99, Description: "A quirky, mind-bending journey through time and space with an unlikely hero.", Type: product.TypeSample, CreatedAt: now},
		{ID: "comic-guardians", Title: "Guardians of the Metropolis", ImageURL: "https://picsum.photos/seed/guardians5/400/600", Price: 4.50, Description: "Classic superhero action protecting the bustling city from supervillains.", Type: product.TypeSample, CreatedAt: now},
	}
	for _, p := range seedProducts {
		if err := products.Create(ctx, p); err != nil {
			return err
		}
	}
	return nil
}
