package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	entrymodel "library-backend/internal/domains/entry/model"
)

// Fixed QR payloads printed at the library doors. The gate scanner
// posts whichever one the student scanned.
const (
	QRLibraryEntry = "LIBRARY_ENTRY"
	QRLibraryExit  = "LIBRARY_EXIT"
)

// Actions reported back to the scanner UI
const (
	ActionEntry = "ENTRY"
	ActionExit  = "EXIT"
)

// ScanRequest is one gate scan from an authenticated student
type ScanRequest struct {
	QRData     string  `json:"qr_data"`
	CaptureRef *string `json:"capture_ref"`
}

// Validate validates ScanRequest
func (r ScanRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.QRData,
			validation.Required.Error("qr_data is required"),
		),
	)
}

// ScanResponse reports the resolved action and the affected visit
type ScanResponse struct {
	Action  string                    `json:"action"`
	Message string                    `json:"message"`
	Entry   *entrymodel.EntryResponse `json:"entry"`
}
