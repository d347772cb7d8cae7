package repositories

import (
	"io"
	"path/filepath"

	"aquamarket/internal/adapters/persistence/csvstore"
	"aquamarket/internal/core/domain"
)

// FavoritesSchema is the fixed column layout of the favorites collection.
var FavoritesSchema = []string{"BuyerEmail", "OfferId"}

// favoriteRepository implements FavoriteRepository over a CSV store.
type favoriteRepository struct {
	store *csvstore.Store[domain.Favorite]
}

// NewFavoriteRepository creates a favorite repository backed by
// favorites.csv in dataDir.
func NewFavoriteRepository(dataDir string) FavoriteRepository {
	return &favoriteRepository{
		store: csvstore.New(
			filepath.Join(dataDir, "favorites.csv"),
			FavoritesSchema,
			encodeFavorite,
			decodeFavorite,
		),
	}
}

func encodeFavorite(f domain.Favorite) []string {
	return []string{f.BuyerEmail, f.OfferID}
}

func decodeFavorite(row []string) (domain.Favorite, error) {
	return domain.Favorite{BuyerEmail: row[0], OfferID: row[1]}, nil
}

// Add is idempotent: an existing (buyer, offer) pair is left untouched. The
// existence check and append run under one write lock.
func (r *favoriteRepository) Add(f domain.Favorite) error {
	f.BuyerEmail = domain.NormalizeEmail(f.BuyerEmail)
	return r.store.Update(func(favs []domain.Favorite) ([]domain.Favorite, bool, error) {
		for _, have := range favs {
			if domain.NormalizeEmail(have.BuyerEmail) == f.BuyerEmail && have.OfferID == f.OfferID {
				return nil, false, nil
			}
		}
		return append(favs, f), true, nil
	})
}

func (r *favoriteRepository) Remove(buyerEmail, offerID string) error {
	buyerEmail = domain.NormalizeEmail(buyerEmail)
	return r.store.Update(func(favs []domain.Favorite) ([]domain.Favorite, bool, error) {
		kept := favs[:0]
		removed := false
		for _, f := range favs {
			if domain.NormalizeEmail(f.BuyerEmail) == buyerEmail && f.OfferID == offerID {
				removed = true
				continue
			}
			kept = append(kept, f)
		}
		return kept, removed, nil
	})
}

func (r *favoriteRepository) ByBuyer(buyerEmail string) ([]domain.Favorite, error) {
	buyerEmail = domain.NormalizeEmail(buyerEmail)
	favs, err := r.store.Scan(func(f domain.Favorite) bool {
		return domain.NormalizeEmail(f.BuyerEmail) == buyerEmail
	})
	if recoverableSocialError(err) {
		return nil, nil
	}
	return favs, err
}

func (r *favoriteRepository) Name() string { return r.store.Name() }

func (r *favoriteRepository) Export(w io.Writer) error { return r.store.Export(w) }
