package repositories

import (
	"io"

	"aquamarket/internal/core/domain"
)

// Collection exposes the raw backing collection of a repository for
// consumers that copy it wholesale, such as the backup scheduler.
type Collection interface {
	Name() string
	Export(w io.Writer) error
}

// UserRepository defines identity directory data access
type UserRepository interface {
	Collection
	All() ([]domain.User, error)
	FindByEmail(email string) (*domain.User, error)
	Create(user domain.User) error
	UpdateStatus(email string, status domain.Status) error
	Pending() ([]domain.User, error)
	EnsureAdmin(email, credentialHash string) error
}

// MeasurementRepository defines telemetry ledger data access
type MeasurementRepository interface {
	Collection
	Append(m domain.Measurement) error
	ByOperator(email string) ([]domain.Measurement, error)
	LastN(email string, n int) ([]domain.Measurement, error)
}

// OfferRepository defines catalog data access
type OfferRepository interface {
	Collection
	Append(o domain.Offer) error
	All() ([]domain.Offer, error)
	FindByID(id string) (*domain.Offer, error)
	Exists(id string) (bool, error)
}

// RatingRepository defines rating store data access
type RatingRepository interface {
	Collection
	Append(r domain.Rating) error
	ByOffer(offerID string) ([]domain.Rating, error)
}

// CommentRepository defines comment store data access
type CommentRepository interface {
	Collection
	Append(c domain.Comment) error
	ByOffer(offerID string) ([]domain.Comment, error)
}

// FavoriteRepository defines favorite store data access
type FavoriteRepository interface {
	Collection
	Add(f domain.Favorite) error
	Remove(buyerEmail, offerID string) error
	ByBuyer(buyerEmail string) ([]domain.Favorite, error)
}
