package mpesa

import "errors"

var (
	// ErrAuthFailed is returned when the Daraja OAuth token request fails
	ErrAuthFailed = errors.New("mpesa client: authentication failed")

	// ErrInternal is returned on internal client errors
	ErrInternal = errors.New("mpesa client: internal error")

	// ErrInvalidResponse is returned when Daraja responds with an
	// unexpected status or body
	ErrInvalidResponse = errors.New("mpesa client: invalid response")

	// ErrStkPushRejected is returned when Daraja rejects the STK push request
	ErrStkPushRejected = errors.New("mpesa client: stk push rejected")
)
