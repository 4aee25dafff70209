package domain

import "errors"

var (
	// ErrInvalidAddress is returned when an address is not a valid hex Ethereum address
	ErrInvalidAddress = errors.New("invalid address")

	// ErrUnknownKind is returned when a stream key carries an unrecognized record kind
	ErrUnknownKind = errors.New("unknown record kind")
)
