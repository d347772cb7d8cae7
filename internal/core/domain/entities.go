package domain

import "strings"

// Role represents a user role in the system
type Role string

const (
	RoleOperator Role = "OPERATOR"
	RoleBuyer    Role = "BUYER"
	RoleAdmin    Role = "ADMIN"
)

// Valid reports whether the role is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleOperator, RoleBuyer, RoleAdmin:
		return true
	}
	return false
}

// Status represents the approval state of a user account
type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
)

// User represents an account in the identity directory.
// Email is the identity key and is stored normalized.
type User struct {
	Email      string `json:"email"`
	Credential string `json:"-"` // bcrypt hash
	Role       Role   `json:"role"`
	Status     Status `json:"status"`
}

// NormalizeEmail canonicalizes an email for identity comparison.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Measurement is one water-quality journal entry for an operator.
// It is append-only: the classification is computed once at write time
// and never recomputed.
type Measurement struct {
	Date           string  `json:"date"` // 2006-01-02
	Time           string  `json:"time"` // 15:04:05
	OperatorEmail  string  `json:"operator_email"`
	PH             float64 `json:"ph"`
	Temperature    float64 `json:"temperature"`
	Ammonia        float64 `json:"ammonia"`
	Oxygen         float64 `json:"oxygen"`
	FeedKg         float64 `json:"feed_kg"`
	MortalityCount int     `json:"mortality_count"`
	Classification string  `json:"classification"`
}

// Offer is a marketplace listing published by an operator.
type Offer struct {
	ID               string  `json:"id"`
	AvailabilityDate string  `json:"availability_date"`
	Location         string  `json:"location"`
	Species          string  `json:"species"`
	SizeGrade        string  `json:"size_grade"`
	QuantityKg       float64 `json:"quantity_kg"`
	PricePerKg       float64 `json:"price_per_kg"`
	Delivery         bool    `json:"delivery"`
	Contact          string  `json:"contact"`
	SellerEmail      string  `json:"seller_email"`
}

// Rating is one score submitted for an offer. Score is kept as raw text
// so that a damaged row never blocks reading the rest of the collection;
// the aggregation layer parses and skips malformed values.
type Rating struct {
	OfferID    string `json:"offer_id"`
	RaterEmail string `json:"rater_email"`
	Score      string `json:"score"`
}

// Comment is one remark left on an offer, in insertion order.
type Comment struct {
	OfferID     string `json:"offer_id"`
	AuthorEmail string `json:"author_email"`
	Text        string `json:"text"`
	Timestamp   string `json:"timestamp"`
}

// Favorite marks an offer saved by a buyer. The (buyer, offer) pair is unique.
type Favorite struct {
	BuyerEmail string `json:"buyer_email"`
	OfferID    string `json:"offer_id"`
}
