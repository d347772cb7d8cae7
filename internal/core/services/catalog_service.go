package services

import (
	"github.com/google/uuid"

	"aquamarket/internal/adapters/persistence/repositories"
	"aquamarket/internal/core/domain"
)

// CatalogService owns marketplace offers
type CatalogService struct {
	offerRepo repositories.OfferRepository
	userRepo  repositories.UserRepository
}

// NewCatalogService creates a new catalog service
func NewCatalogService(offerRepo repositories.OfferRepository, userRepo repositories.UserRepository) *CatalogService {
	return &CatalogService{offerRepo: offerRepo, userRepo: userRepo}
}

// OfferInput represents the seller-provided fields of a listing
type OfferInput struct {
	AvailabilityDate string  `json:"availability_date" validate:"required"`
	Location         string  `json:"location" validate:"required"`
	Species          string  `json:"species" validate:"required"`
	SizeGrade        string  `json:"size_grade"`
	QuantityKg       float64 `json:"quantity_kg" validate:"gt=0"`
	PricePerKg       float64 `json:"price_per_kg" validate:"gt=0"`
	Delivery         bool    `json:"delivery"`
	Contact          string  `json:"contact" validate:"required"`
}

// Publish generates a fresh opaque identifier, verifies the seller exists in
// the identity directory, and appends the offer. The id is generated once
// and never reused.
func (s *CatalogService) Publish(sellerEmail string, input *OfferInput) (*domain.Offer, error) {
	seller := domain.NormalizeEmail(sellerEmail)
	if _, err := s.userRepo.FindByEmail(seller); err != nil {
		return nil, err
	}

	offer := domain.Offer{
		ID:               uuid.NewString(),
		AvailabilityDate: input.AvailabilityDate,
		Location:         input.Location,
		Species:          input.Species,
		SizeGrade:        input.SizeGrade,
		QuantityKg:       input.QuantityKg,
		PricePerKg:       input.PricePerKg,
		Delivery:         input.Delivery,
		Contact:          input.Contact,
		SellerEmail:      seller,
	}
	if err := s.offerRepo.Append(offer); err != nil {
		return nil, err
	}
	return &offer, nil
}

// List returns all published offers in insertion order. A stored collection
// predating the identifier scheme surfaces ErrLegacySchema rather than
// offers with absent ids.
func (s *CatalogService) List() ([]domain.Offer, error) {
	return s.offerRepo.All()
}

// Get returns one offer by id, or ErrUnknownOffer.
func (s *CatalogService) Get(id string) (*domain.Offer, error) {
	return s.offerRepo.FindByID(id)
}
