package model

import "errors"

// ===================================
// DOMAIN ERRORS
// ===================================

var (
	// ErrInvalidQRCode is returned when the scanned payload is neither
	// the entry nor the exit code
	ErrInvalidQRCode = errors.New("unrecognized QR code")

	// ErrLibraryClosed is returned when an entry scan arrives outside
	// the configured opening hours
	ErrLibraryClosed = errors.New("library is currently closed")
)
