package handlers

import (
	"errors"
	"log"

	"aquamarket/internal/adapters/http/middleware"
	"aquamarket/internal/core/domain"
	"aquamarket/internal/core/services"
	"aquamarket/internal/pkg/pagination"
	"aquamarket/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// MarketHandler handles marketplace endpoints
type MarketHandler struct {
	catalogService       *services.CatalogService
	socialService        *services.SocialService
	aggregationService   *services.AggregationService
	certificationService *services.CertificationService
}

// NewMarketHandler creates a new market handler
func NewMarketHandler(
	catalogService *services.CatalogService,
	socialService *services.SocialService,
	aggregationService *services.AggregationService,
	certificationService *services.CertificationService,
) *MarketHandler {
	return &MarketHandler{
		catalogService:       catalogService,
		socialService:        socialService,
		aggregationService:   aggregationService,
		certificationService: certificationService,
	}
}

// ReviewRequest represents a compound rating+comment submission
type ReviewRequest struct {
	Score   int    `json:"score"`
	Comment string `json:"comment"`
}

// OfferView is an offer joined with its derived read-side data.
type OfferView struct {
	domain.Offer
	SellerCertified bool             `json:"seller_certified"`
	RatingMean      float64          `json:"rating_mean"`
	RatingCount     int              `json:"rating_count"`
	RecentComments  []domain.Comment `json:"recent_comments"`
}

const recentCommentLimit = 2

// Publish creates a new offer
// @Summary Publish an offer
// @Tags Market
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.OfferInput true "Offer fields"
// @Success 201 {object} response.Response
// @Router /market [post]
func (h *MarketHandler) Publish(c *fiber.Ctx) error {
	var req services.OfferInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return response.UnprocessableEntity(c, err.Error())
	}

	offer, err := h.catalogService.Publish(middleware.CallerEmail(c), &req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return response.NotFound(c, "Seller account not found")
		case errors.Is(err, domain.ErrLegacySchema):
			return response.Conflict(c, "Offers collection uses a legacy format")
		case errors.Is(err, domain.ErrStorageUnavailable):
			return response.ServiceUnavailable(c, "Offer store unavailable")
		default:
			return response.InternalServerError(c, "Failed to publish offer")
		}
	}
	return response.Created(c, "Offer published", fiber.Map{"id": offer.ID, "offer": offer})
}

// List returns the marketplace with derived per-offer data
// @Summary Browse offers
// @Description Offers joined with the seller's certification badge, rating summary and recent comments
// @Tags Market
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Response
// @Router /market [get]
func (h *MarketHandler) List(c *fiber.Ctx) error {
	offers, err := h.catalogService.List()
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrLegacySchema):
			return response.Conflict(c, "Offers collection uses a legacy format and must be migrated")
		case errors.Is(err, domain.ErrStorageUnavailable):
			return response.ServiceUnavailable(c, "Offer store unavailable")
		default:
			return response.InternalServerError(c, "Failed to list offers")
		}
	}

	params := pagination.GetParams(c)
	page := pagination.Page(offers, params)

	views := make([]OfferView, 0, len(page))
	for _, offer := range page {
		views = append(views, h.offerView(offer))
	}
	return c.JSON(pagination.NewResponse(views, params, len(offers)))
}

// offerView joins an offer with its read-side derivations. Certification is
// evaluated per request against current telemetry.
func (h *MarketHandler) offerView(offer domain.Offer) OfferView {
	view := OfferView{Offer: offer, RecentComments: []domain.Comment{}}

	certified, err := h.certificationService.IsCertified(offer.SellerEmail)
	if err != nil {
		log.Printf("certification lookup failed for %s: %v", offer.SellerEmail, err)
	}
	view.SellerCertified = certified

	mean, count, err := h.aggregationService.RatingSummary(offer.ID)
	if err == nil {
		view.RatingMean, view.RatingCount = mean, count
	}
	if comments, err := h.aggregationService.RecentComments(offer.ID, recentCommentLimit); err == nil && comments != nil {
		view.RecentComments = comments
	}
	return view
}

// Review submits a rating with an optional comment
// @Summary Rate and comment an offer
// @Description One compound submission; the comment is optional and skipped when blank
// @Tags Market
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Offer id"
// @Param body body ReviewRequest true "Review"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /market/{id}/review [post]
func (h *MarketHandler) Review(c *fiber.Ctx) error {
	var req ReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	err := h.socialService.SubmitReview(c.Params("id"), middleware.CallerEmail(c), req.Score, req.Comment)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidScore):
			return response.UnprocessableEntity(c, "Score must be an integer between 1 and 5")
		case errors.Is(err, domain.ErrUnknownOffer):
			return response.NotFound(c, "Unknown offer")
		case errors.Is(err, domain.ErrPartialWrite):
			// The rating was stored but the comment was not.
			return response.Error(c, fiber.StatusMultiStatus, "Rating stored but comment failed")
		case errors.Is(err, domain.ErrStorageUnavailable):
			return response.ServiceUnavailable(c, "Review store unavailable")
		default:
			return response.InternalServerError(c, "Failed to submit review")
		}
	}
	return response.Success(c, "Review submitted", nil)
}

// Favorite saves an offer for the caller
// @Summary Add favorite
// @Tags Market
// @Produce json
// @Security BearerAuth
// @Param id path string true "Offer id"
// @Success 200 {object} response.Response
// @Router /market/{id}/favorite [post]
func (h *MarketHandler) Favorite(c *fiber.Ctx) error {
	err := h.socialService.AddFavorite(middleware.CallerEmail(c), c.Params("id"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUnknownOffer):
			return response.NotFound(c, "Unknown offer")
		case errors.Is(err, domain.ErrStorageUnavailable):
			return response.ServiceUnavailable(c, "Favorite store unavailable")
		default:
			return response.InternalServerError(c, "Failed to add favorite")
		}
	}
	return response.Success(c, "Favorite saved", nil)
}

// Unfavorite removes a saved offer
// @Summary Remove favorite
// @Tags Market
// @Produce json
// @Security BearerAuth
// @Param id path string true "Offer id"
// @Success 200 {object} response.Response
// @Router /market/{id}/favorite [delete]
func (h *MarketHandler) Unfavorite(c *fiber.Ctx) error {
	if err := h.socialService.RemoveFavorite(middleware.CallerEmail(c), c.Params("id")); err != nil {
		if errors.Is(err, domain.ErrStorageUnavailable) {
			return response.ServiceUnavailable(c, "Favorite store unavailable")
		}
		return response.InternalServerError(c, "Failed to remove favorite")
	}
	return response.Success(c, "Favorite removed", nil)
}

// Favorites lists the caller's saved offers
// @Summary List favorites
// @Tags Market
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /favorites [get]
func (h *MarketHandler) Favorites(c *fiber.Ctx) error {
	offers, unavailable, err := h.socialService.FavoriteOffers(middleware.CallerEmail(c))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrLegacySchema):
			return response.Conflict(c, "Offers collection uses a legacy format")
		case errors.Is(err, domain.ErrStorageUnavailable):
			return response.ServiceUnavailable(c, "Offer store unavailable")
		default:
			return response.InternalServerError(c, "Failed to list favorites")
		}
	}

	views := make([]OfferView, 0, len(offers))
	for _, offer := range offers {
		views = append(views, h.offerView(offer))
	}
	return response.Success(c, "", fiber.Map{
		"favorites":   views,
		"unavailable": unavailable,
	})
}
