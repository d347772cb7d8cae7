package domain

import "errors"

// Common domain errors
var (
	ErrNotFound       = errors.New("resource not found")
	ErrInvalidInput   = errors.New("invalid input")
	ErrForbidden      = errors.New("forbidden")
	ErrDuplicateEntry = errors.New("duplicate entry")
)

// Identity errors
var (
	ErrDuplicateIdentity = errors.New("identity already registered")
	ErrPendingApproval   = errors.New("account pending approval")
)

// Marketplace errors
var (
	ErrUnknownOffer = errors.New("unknown offer")
	ErrInvalidScore = errors.New("score must be an integer between 1 and 5")
	ErrPartialWrite = errors.New("compound write partially failed")
)

// Storage errors
var (
	ErrLegacySchema       = errors.New("collection header does not match expected schema")
	ErrStorageUnavailable = errors.New("backing collection unreadable")
)
