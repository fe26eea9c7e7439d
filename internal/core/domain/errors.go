package domain

import "errors"

var (
	// ErrNetworkUnavailable marks a transport-level failure talking to the
	// remote shop API.
	ErrNetworkUnavailable = errors.New("network unavailable")

	// ErrServerRejected marks a non-success HTTP status or an explicit
	// error payload from the remote shop API.
	ErrServerRejected = errors.New("server rejected request")

	// ErrValidation marks a client-side input check failure.
	ErrValidation = errors.New("validation failed")

	ErrStockExceeded      = errors.New("requested quantity exceeds stock")
	ErrProductNotFound    = errors.New("product not found")
	ErrCheckoutInProgress = errors.New("checkout already in progress")
)
