package services

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aquamarket/internal/adapters/persistence/repositories"
	"aquamarket/internal/core/domain"
)

type socialFixture struct {
	catalog     *CatalogService
	social      *SocialService
	aggregation *AggregationService
	offerID     string
	dir         string
}

func newSocialFixture(t *testing.T) *socialFixture {
	t.Helper()
	dir := t.TempDir()
	userRepo := repositories.NewUserRepository(dir)
	offerRepo := repositories.NewOfferRepository(dir)
	ratingRepo := repositories.NewRatingRepository(dir)
	commentRepo := repositories.NewCommentRepository(dir)
	favoriteRepo := repositories.NewFavoriteRepository(dir)

	identity := NewIdentityService(userRepo)
	_, err := identity.Register(&RegisterInput{Email: "seller@example.com", Password: "secret123", Role: "OPERATOR"})
	require.NoError(t, err)

	catalog := NewCatalogService(offerRepo, userRepo)
	offer, err := catalog.Publish("seller@example.com", sampleOffer())
	require.NoError(t, err)

	return &socialFixture{
		catalog:     catalog,
		social:      NewSocialService(offerRepo, ratingRepo, commentRepo, favoriteRepo),
		aggregation: NewAggregationService(ratingRepo, commentRepo),
		offerID:     offer.ID,
		dir:         dir,
	}
}

func TestAddFavoriteIsIdempotent(t *testing.T) {
	f := newSocialFixture(t)

	require.NoError(t, f.social.AddFavorite("buyer@example.com", f.offerID))
	require.NoError(t, f.social.AddFavorite("buyer@example.com", f.offerID))

	offers, unavailable, err := f.social.FavoriteOffers("buyer@example.com")
	require.NoError(t, err)
	assert.Len(t, offers, 1)
	assert.Zero(t, unavailable)
}

func TestAddFavoriteUnknownOffer(t *testing.T) {
	f := newSocialFixture(t)
	assert.ErrorIs(t, f.social.AddFavorite("buyer@example.com", "no-such-offer"), domain.ErrUnknownOffer)
}

func TestRemoveFavorite(t *testing.T) {
	f := newSocialFixture(t)
	require.NoError(t, f.social.AddFavorite("buyer@example.com", f.offerID))

	require.NoError(t, f.social.RemoveFavorite("buyer@example.com", f.offerID))

	offers, _, err := f.social.FavoriteOffers("buyer@example.com")
	require.NoError(t, err)
	assert.Empty(t, offers)

	// Removing again is a no-op.
	require.NoError(t, f.social.RemoveFavorite("buyer@example.com", f.offerID))
}

func TestRateScoreBounds(t *testing.T) {
	f := newSocialFixture(t)

	assert.ErrorIs(t, f.social.Rate(f.offerID, "buyer@example.com", 0), domain.ErrInvalidScore)
	assert.ErrorIs(t, f.social.Rate(f.offerID, "buyer@example.com", 6), domain.ErrInvalidScore)
	assert.NoError(t, f.social.Rate(f.offerID, "buyer@example.com", 1))
	assert.NoError(t, f.social.Rate(f.offerID, "buyer@example.com", 5))
}

func TestRateUnknownOffer(t *testing.T) {
	f := newSocialFixture(t)
	assert.ErrorIs(t, f.social.Rate("no-such-offer", "buyer@example.com", 3), domain.ErrUnknownOffer)
}

func TestRateAppendsHistory(t *testing.T) {
	f := newSocialFixture(t)

	// The same rater submitting twice appends two history entries.
	require.NoError(t, f.social.Rate(f.offerID, "buyer@example.com", 2))
	require.NoError(t, f.social.Rate(f.offerID, "buyer@example.com", 4))

	mean, count, err := f.aggregation.RatingSummary(f.offerID)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Equal(t, 3.0, mean)
}

func TestCommentEmptyTextIsNoOp(t *testing.T) {
	f := newSocialFixture(t)

	require.NoError(t, f.social.Comment(f.offerID, "buyer@example.com", "   "))

	comments, err := f.aggregation.RecentComments(f.offerID, 2)
	require.NoError(t, err)
	assert.Empty(t, comments)
}

func TestCommentEmptyTextSkipsOfferValidation(t *testing.T) {
	f := newSocialFixture(t)
	// Nothing to persist, so the unknown reference never surfaces.
	assert.NoError(t, f.social.Comment("no-such-offer", "buyer@example.com", ""))
}

func TestCommentUnknownOffer(t *testing.T) {
	f := newSocialFixture(t)
	assert.ErrorIs(t, f.social.Comment("no-such-offer", "buyer@example.com", "hello"), domain.ErrUnknownOffer)
}

func TestSubmitReviewRatingWithoutComment(t *testing.T) {
	f := newSocialFixture(t)

	require.NoError(t, f.social.SubmitReview(f.offerID, "buyer@example.com", 4, ""))

	_, count, err := f.aggregation.RatingSummary(f.offerID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	comments, err := f.aggregation.RecentComments(f.offerID, 2)
	require.NoError(t, err)
	assert.Empty(t, comments)
}

func TestSubmitReviewStoresBoth(t *testing.T) {
	f := newSocialFixture(t)

	require.NoError(t, f.social.SubmitReview(f.offerID, "buyer@example.com", 5, "excellent fish"))

	mean, count, err := f.aggregation.RatingSummary(f.offerID)
	require.NoError(t, err)
	assert.Equal(t, 5.0, mean)
	assert.Equal(t, 1, count)

	comments, err := f.aggregation.RecentComments(f.offerID, 2)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "excellent fish", comments[0].Text)
}

func TestSubmitReviewInvalidScoreWritesNothing(t *testing.T) {
	f := newSocialFixture(t)

	assert.ErrorIs(t, f.social.SubmitReview(f.offerID, "buyer@example.com", 9, "still commenting"), domain.ErrInvalidScore)

	comments, err := f.aggregation.RecentComments(f.offerID, 2)
	require.NoError(t, err)
	assert.Empty(t, comments, "a comment must never land without a valid rating submission")
}

// failingCommentRepo simulates an unavailable comment store.
type failingCommentRepo struct{}

func (failingCommentRepo) Append(domain.Comment) error { return domain.ErrStorageUnavailable }

func (failingCommentRepo) ByOffer(string) ([]domain.Comment, error) { return nil, nil }

func (failingCommentRepo) Name() string { return "comments.csv" }

func (failingCommentRepo) Export(io.Writer) error { return domain.ErrStorageUnavailable }

func TestSubmitReviewSurfacesPartialFailure(t *testing.T) {
	dir := t.TempDir()
	userRepo := repositories.NewUserRepository(dir)
	offerRepo := repositories.NewOfferRepository(dir)
	ratingRepo := repositories.NewRatingRepository(dir)

	identity := NewIdentityService(userRepo)
	_, err := identity.Register(&RegisterInput{Email: "seller@example.com", Password: "secret123", Role: "OPERATOR"})
	require.NoError(t, err)
	offer, err := NewCatalogService(offerRepo, userRepo).Publish("seller@example.com", sampleOffer())
	require.NoError(t, err)

	social := NewSocialService(offerRepo, ratingRepo, failingCommentRepo{}, repositories.NewFavoriteRepository(dir))

	err = social.SubmitReview(offer.ID, "buyer@example.com", 4, "this will fail")
	assert.ErrorIs(t, err, domain.ErrPartialWrite, "partial failure must not look like full success")

	// The rating half of the compound write landed.
	ratings, err := ratingRepo.ByOffer(offer.ID)
	require.NoError(t, err)
	assert.Len(t, ratings, 1)
}

func TestFavoriteOffersReportsUnavailable(t *testing.T) {
	f := newSocialFixture(t)
	require.NoError(t, f.social.AddFavorite("buyer@example.com", f.offerID))

	// A favorite whose offer never existed in the catalog.
	favRepo := repositories.NewFavoriteRepository(f.dir)
	require.NoError(t, favRepo.Add(domain.Favorite{BuyerEmail: "buyer@example.com", OfferID: "gone-offer"}))

	offers, unavailable, err := f.social.FavoriteOffers("buyer@example.com")
	require.NoError(t, err)
	assert.Len(t, offers, 1)
	assert.Equal(t, 1, unavailable)
}
