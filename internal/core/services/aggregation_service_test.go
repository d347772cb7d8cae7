package services

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aquamarket/internal/adapters/persistence/repositories"
	"aquamarket/internal/core/domain"
)

func TestRatingSummaryMean(t *testing.T) {
	f := newSocialFixture(t)
	for i, score := range []int{3, 4, 5} {
		require.NoError(t, f.social.Rate(f.offerID, fmt.Sprintf("buyer%d@example.com", i), score))
	}

	mean, count, err := f.aggregation.RatingSummary(f.offerID)
	require.NoError(t, err)
	assert.Equal(t, 4.0, mean)
	assert.Equal(t, 3, count)
}

func TestRatingSummaryRounding(t *testing.T) {
	f := newSocialFixture(t)
	// 4 + 5 + 5 = 14/3 = 4.666... rounds to 4.7.
	for i, score := range []int{4, 5, 5} {
		require.NoError(t, f.social.Rate(f.offerID, fmt.Sprintf("buyer%d@example.com", i), score))
	}

	mean, count, err := f.aggregation.RatingSummary(f.offerID)
	require.NoError(t, err)
	assert.Equal(t, 4.7, mean)
	assert.Equal(t, 3, count)
}

func TestRatingSummaryEmpty(t *testing.T) {
	f := newSocialFixture(t)

	mean, count, err := f.aggregation.RatingSummary(f.offerID)
	require.NoError(t, err)
	assert.Zero(t, mean)
	assert.Zero(t, count)
}

func TestRatingSummarySkipsMalformedScores(t *testing.T) {
	f := newSocialFixture(t)
	ratingRepo := repositories.NewRatingRepository(f.dir)

	require.NoError(t, f.social.Rate(f.offerID, "a@example.com", 2))
	// A non-numeric score written by an external editor.
	require.NoError(t, ratingRepo.Append(domain.Rating{OfferID: f.offerID, RaterEmail: "b@example.com", Score: "great"}))
	require.NoError(t, f.social.Rate(f.offerID, "c@example.com", 4))

	mean, count, err := f.aggregation.RatingSummary(f.offerID)
	require.NoError(t, err)
	assert.Equal(t, 3.0, mean, "malformed scores stay out of the numerator")
	assert.Equal(t, 2, count, "malformed scores stay out of the denominator")
}

func TestRatingSummaryScopedToOffer(t *testing.T) {
	f := newSocialFixture(t)
	other, err := f.catalog.Publish("seller@example.com", sampleOffer())
	require.NoError(t, err)

	require.NoError(t, f.social.Rate(f.offerID, "a@example.com", 5))
	require.NoError(t, f.social.Rate(other.ID, "a@example.com", 1))

	mean, count, err := f.aggregation.RatingSummary(f.offerID)
	require.NoError(t, err)
	assert.Equal(t, 5.0, mean)
	assert.Equal(t, 1, count)
}

func TestRatingSummaryDegradesOnCorruptCollection(t *testing.T) {
	f := newSocialFixture(t)
	require.NoError(t, os.WriteFile(filepath.Join(f.dir, "ratings.csv"), []byte("\"broken"), 0o644))

	mean, count, err := f.aggregation.RatingSummary(f.offerID)
	require.NoError(t, err, "an unreadable social collection reads as empty")
	assert.Zero(t, mean)
	assert.Zero(t, count)
}

func TestRatingSummaryDegradesOnLegacySchema(t *testing.T) {
	f := newSocialFixture(t)
	require.NoError(t, os.WriteFile(filepath.Join(f.dir, "ratings.csv"), []byte("Offer,Stars\no1,4\n"), 0o644))

	mean, count, err := f.aggregation.RatingSummary(f.offerID)
	require.NoError(t, err)
	assert.Zero(t, mean)
	assert.Zero(t, count)
}

func TestRecentCommentsLimitAndOrder(t *testing.T) {
	f := newSocialFixture(t)
	for i := 1; i <= 4; i++ {
		require.NoError(t, f.social.Comment(f.offerID, "buyer@example.com", fmt.Sprintf("note %d", i)))
	}

	comments, err := f.aggregation.RecentComments(f.offerID, 2)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "note 3", comments[0].Text)
	assert.Equal(t, "note 4", comments[1].Text)
}

func TestRecentCommentsNoLimit(t *testing.T) {
	f := newSocialFixture(t)
	for i := 1; i <= 3; i++ {
		require.NoError(t, f.social.Comment(f.offerID, "buyer@example.com", fmt.Sprintf("note %d", i)))
	}

	comments, err := f.aggregation.RecentComments(f.offerID, 0)
	require.NoError(t, err)
	assert.Len(t, comments, 3)
}
