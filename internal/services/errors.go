// internal/services/errors.go
package services

import "errors"

// Service-level sentinels, mapped onto HTTP statuses by the handlers.
var (
	// ErrUnauthorized: the request carries no actor identity.
	ErrUnauthorized = errors.New("authentication required")
	// ErrForbidden: the actor lacks entitlement to the resource.
	ErrForbidden = errors.New("access denied")

	ErrUserNotFound      = errors.New("user not found")
	ErrDesignNotFound    = errors.New("design not found")
	ErrJobNotFound       = errors.New("job post not found")
	ErrNoAsset           = errors.New("design has no downloadable asset")
	ErrMissingReference  = errors.New("transaction reference is required")
	ErrDuplicatePurchase = errors.New("purchase with this transaction reference already recorded")
	ErrSelfTarget        = errors.New("cannot follow yourself")
	ErrNotOwner          = errors.New("not the owner of this resource")
	ErrSigningFailed     = errors.New("failed to sign download URL")
)
