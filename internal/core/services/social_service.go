package services

import (
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"aquamarket/internal/adapters/persistence/repositories"
	"aquamarket/internal/core/domain"
)

// SocialService owns the three social collections referencing catalog
// offers. Every write validates its offer reference before being accepted.
type SocialService struct {
	offerRepo    repositories.OfferRepository
	ratingRepo   repositories.RatingRepository
	commentRepo  repositories.CommentRepository
	favoriteRepo repositories.FavoriteRepository
	now          func() time.Time
}

// NewSocialService creates a new social service
func NewSocialService(
	offerRepo repositories.OfferRepository,
	ratingRepo repositories.RatingRepository,
	commentRepo repositories.CommentRepository,
	favoriteRepo repositories.FavoriteRepository,
) *SocialService {
	return &SocialService{
		offerRepo:    offerRepo,
		ratingRepo:   ratingRepo,
		commentRepo:  commentRepo,
		favoriteRepo: favoriteRepo,
		now:          time.Now,
	}
}

// AddFavorite saves an offer for a buyer. Adding an existing favorite is a
// no-op, not a duplicate row.
func (s *SocialService) AddFavorite(buyerEmail, offerID string) error {
	if err := s.requireOffer(offerID); err != nil {
		return err
	}
	return s.favoriteRepo.Add(domain.Favorite{BuyerEmail: buyerEmail, OfferID: offerID})
}

// RemoveFavorite drops a saved offer. Removing an absent favorite is a no-op.
func (s *SocialService) RemoveFavorite(buyerEmail, offerID string) error {
	return s.favoriteRepo.Remove(buyerEmail, offerID)
}

// FavoriteOffers returns the buyer's saved offers joined against the
// catalog. Favorites whose offer no longer resolves are counted as
// unavailable instead of failing the listing.
func (s *SocialService) FavoriteOffers(buyerEmail string) ([]domain.Offer, int, error) {
	favs, err := s.favoriteRepo.ByBuyer(buyerEmail)
	if err != nil {
		return nil, 0, err
	}
	var offers []domain.Offer
	unavailable := 0
	for _, f := range favs {
		offer, err := s.offerRepo.FindByID(f.OfferID)
		if errors.Is(err, domain.ErrUnknownOffer) {
			unavailable++
			continue
		}
		if err != nil {
			return nil, 0, err
		}
		offers = append(offers, *offer)
	}
	return offers, unavailable, nil
}

// Rate records one score for an offer. Each submission appends a new history
// entry; the summary averages the full history.
func (s *SocialService) Rate(offerID, raterEmail string, score int) error {
	if score < 1 || score > 5 {
		return domain.ErrInvalidScore
	}
	if err := s.requireOffer(offerID); err != nil {
		return err
	}
	return s.ratingRepo.Append(domain.Rating{
		OfferID:    offerID,
		RaterEmail: domain.NormalizeEmail(raterEmail),
		Score:      strconv.Itoa(score),
	})
}

// Comment records a remark on an offer with the current timestamp. Text that
// is empty after trimming is a no-op and nothing is persisted.
func (s *SocialService) Comment(offerID, authorEmail, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if err := s.requireOffer(offerID); err != nil {
		return err
	}
	return s.commentRepo.Append(domain.Comment{
		OfferID:     offerID,
		AuthorEmail: domain.NormalizeEmail(authorEmail),
		Text:        text,
		Timestamp:   s.now().Format(time.RFC3339),
	})
}

// SubmitReview is the compound rating+comment submission from one user
// action. A rating may be recorded without a comment, never a comment
// without a validated offer. If the comment write fails after the rating
// succeeded, the partial failure is surfaced as ErrPartialWrite rather than
// swallowed as full success.
func (s *SocialService) SubmitReview(offerID, userEmail string, score int, text string) error {
	if err := s.Rate(offerID, userEmail, score); err != nil {
		return err
	}
	if err := s.Comment(offerID, userEmail, text); err != nil {
		return errors.Wrap(domain.ErrPartialWrite, err.Error())
	}
	return nil
}

func (s *SocialService) requireOffer(offerID string) error {
	ok, err := s.offerRepo.Exists(offerID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrUnknownOffer
	}
	return nil
}
