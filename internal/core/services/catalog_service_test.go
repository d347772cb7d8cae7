package services

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aquamarket/internal/adapters/persistence/repositories"
	"aquamarket/internal/core/domain"
)

func newCatalogFixture(t *testing.T) (*CatalogService, string) {
	t.Helper()
	dir := t.TempDir()
	userRepo := repositories.NewUserRepository(dir)
	identity := NewIdentityService(userRepo)
	_, err := identity.Register(&RegisterInput{Email: "seller@example.com", Password: "secret123", Role: "OPERATOR"})
	require.NoError(t, err)
	return NewCatalogService(repositories.NewOfferRepository(dir), userRepo), dir
}

func sampleOffer() *OfferInput {
	return &OfferInput{
		AvailabilityDate: "2026-09-01",
		Location:         "Douala",
		Species:          "Tilapia",
		SizeGrade:        "500g",
		QuantityKg:       100,
		PricePerKg:       2500,
		Delivery:         true,
		Contact:          "699000000",
	}
}

func TestPublishCreatesCollectionAndListReflectsIt(t *testing.T) {
	svc, dir := newCatalogFixture(t)

	offer, err := svc.Publish("seller@example.com", sampleOffer())
	require.NoError(t, err)
	assert.NotEmpty(t, offer.ID)

	_, err = os.Stat(filepath.Join(dir, "offers.csv"))
	require.NoError(t, err)

	offers, err := svc.List()
	require.NoError(t, err)
	require.Len(t, offers, 1)
	assert.Equal(t, offer.ID, offers[0].ID)
	assert.Equal(t, "seller@example.com", offers[0].SellerEmail)
}

func TestPublishGeneratesDistinctIDs(t *testing.T) {
	svc, _ := newCatalogFixture(t)

	first, err := svc.Publish("seller@example.com", sampleOffer())
	require.NoError(t, err)
	second, err := svc.Publish("seller@example.com", sampleOffer())
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestPublishUnknownSeller(t *testing.T) {
	svc, _ := newCatalogFixture(t)

	_, err := svc.Publish("ghost@example.com", sampleOffer())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListDetectsLegacySchema(t *testing.T) {
	svc, dir := newCatalogFixture(t)

	// An offers collection written before the Id column existed.
	legacy := "AvailabilityDate,Location,Species,SizeGrade,QuantityKg,PricePerKg,DeliveryFlag,Contact,SellerEmail\n" +
		"2026-09-01,Douala,Tilapia,500g,100,2500,true,699000000,seller@example.com\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "offers.csv"), []byte(legacy), 0o644))

	_, err := svc.List()
	assert.ErrorIs(t, err, domain.ErrLegacySchema)
}

func TestGetUnknownOffer(t *testing.T) {
	svc, _ := newCatalogFixture(t)
	_, err := svc.Get("missing-id")
	assert.ErrorIs(t, err, domain.ErrUnknownOffer)
}
