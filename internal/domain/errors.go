package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Specific failures wrap one of these so the transport layer can
// map them to a status code with errors.Is.
var (
	ErrValidation    = errors.New("validation error")
	ErrConfiguration = errors.New("configuration error")
	ErrUpstream      = errors.New("upstream error")
	ErrPersistence   = errors.New("persistence error")
)

var (
	ErrEmptyCart           = fmt.Errorf("%w: cart is empty", ErrValidation)
	ErrNegativeProfit      = fmt.Errorf("%w: supplier cost exceeds cart total", ErrValidation)
	ErrOrderNotFound       = errors.New("order not found")
	ErrPaymentNotConfirmed = errors.New("payment not confirmed")
	ErrInvalidSignature    = errors.New("invalid webhook signature")
)
