package repositories

import (
	"io"
	"path/filepath"
	"strconv"

	"aquamarket/internal/adapters/persistence/csvstore"
	"aquamarket/internal/core/domain"
)

// OffersSchema is the fixed column layout of the offers collection. A stored
// collection whose header lacks the Id column predates the identifier scheme
// and is reported as a legacy format by the store.
var OffersSchema = []string{
	"Id", "AvailabilityDate", "Location", "Species", "SizeGrade",
	"QuantityKg", "PricePerKg", "DeliveryFlag", "Contact", "SellerEmail",
}

// offerRepository implements OfferRepository over a CSV store. Corruption of
// the offers collection is fatal to the requesting operation.
type offerRepository struct {
	store *csvstore.Store[domain.Offer]
}

// NewOfferRepository creates a catalog repository backed by offers.csv in
// dataDir.
func NewOfferRepository(dataDir string) OfferRepository {
	return &offerRepository{
		store: csvstore.New(
			filepath.Join(dataDir, "offers.csv"),
			OffersSchema,
			encodeOffer,
			decodeOffer,
		),
	}
}

func encodeOffer(o domain.Offer) []string {
	return []string{
		o.ID,
		o.AvailabilityDate,
		o.Location,
		o.Species,
		o.SizeGrade,
		strconv.FormatFloat(o.QuantityKg, 'f', -1, 64),
		strconv.FormatFloat(o.PricePerKg, 'f', -1, 64),
		strconv.FormatBool(o.Delivery),
		o.Contact,
		o.SellerEmail,
	}
}

func decodeOffer(row []string) (domain.Offer, error) {
	var o domain.Offer
	var err error
	o.ID = row[0]
	o.AvailabilityDate, o.Location, o.Species, o.SizeGrade = row[1], row[2], row[3], row[4]
	if o.QuantityKg, err = strconv.ParseFloat(row[5], 64); err != nil {
		return o, err
	}
	if o.PricePerKg, err = strconv.ParseFloat(row[6], 64); err != nil {
		return o, err
	}
	if o.Delivery, err = strconv.ParseBool(row[7]); err != nil {
		return o, err
	}
	o.Contact, o.SellerEmail = row[8], row[9]
	return o, nil
}

func (r *offerRepository) Append(o domain.Offer) error {
	return r.store.Append(o)
}

func (r *offerRepository) All() ([]domain.Offer, error) {
	return r.store.Load()
}

func (r *offerRepository) FindByID(id string) (*domain.Offer, error) {
	offers, err := r.store.Load()
	if err != nil {
		return nil, err
	}
	for i := range offers {
		if offers[i].ID == id {
			return &offers[i], nil
		}
	}
	return nil, domain.ErrUnknownOffer
}

func (r *offerRepository) Exists(id string) (bool, error) {
	_, err := r.FindByID(id)
	if err == domain.ErrUnknownOffer {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *offerRepository) Name() string { return r.store.Name() }

func (r *offerRepository) Export(w io.Writer) error { return r.store.Export(w) }
