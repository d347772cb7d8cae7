package repositories

import (
	"errors"
	"io"
	"path/filepath"

	"aquamarket/internal/adapters/persistence/csvstore"
	"aquamarket/internal/core/domain"
)

// RatingsSchema is the fixed column layout of the ratings collection.
var RatingsSchema = []string{"OfferId", "RaterEmail", "Score"}

// ratingRepository implements RatingRepository over a CSV store. Ratings are
// a non-critical social collection: a damaged store must not block
// marketplace browsing, so reads degrade to an empty view.
type ratingRepository struct {
	store *csvstore.Store[domain.Rating]
}

// NewRatingRepository creates a rating repository backed by ratings.csv in
// dataDir.
func NewRatingRepository(dataDir string) RatingRepository {
	return &ratingRepository{
		store: csvstore.New(
			filepath.Join(dataDir, "ratings.csv"),
			RatingsSchema,
			encodeRating,
			decodeRating,
		),
	}
}

func encodeRating(r domain.Rating) []string {
	return []string{r.OfferID, r.RaterEmail, r.Score}
}

func decodeRating(row []string) (domain.Rating, error) {
	return domain.Rating{OfferID: row[0], RaterEmail: row[1], Score: row[2]}, nil
}

func (r *ratingRepository) Append(rating domain.Rating) error {
	return r.store.Append(rating)
}

func (r *ratingRepository) ByOffer(offerID string) ([]domain.Rating, error) {
	ratings, err := r.store.Scan(func(rec domain.Rating) bool {
		return rec.OfferID == offerID
	})
	if recoverableSocialError(err) {
		return nil, nil
	}
	return ratings, err
}

// recoverableSocialError reports whether a social-store read failure should
// be absorbed as an empty collection instead of failing the caller.
func recoverableSocialError(err error) bool {
	return errors.Is(err, domain.ErrStorageUnavailable) || errors.Is(err, domain.ErrLegacySchema)
}

func (r *ratingRepository) Name() string { return r.store.Name() }

func (r *ratingRepository) Export(w io.Writer) error { return r.store.Export(w) }
