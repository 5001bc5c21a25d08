package models

import "github.com/shopspring/decimal"

// BillRecord is written to the record index each time a bill document is generated.
type BillRecord struct {
	// ID is the unique identifier for the record (UUID format).
	ID string

	Phone string

	// FileName is the base name of the generated document.
	FileName string

	// TotalDue is the outstanding due at generation time.
	TotalDue decimal.Decimal

	// Lines is the number of transaction lines on the bill.
	Lines int

	// CreatedAt is the Unix timestamp when the bill was generated.
	CreatedAt int64
}

// Consultation is written to the record index each time an image is accepted
// for expert consultation.
type Consultation struct {
	// ID is the unique identifier for the record (UUID format).
	ID string

	Phone string

	// FileName is the base name of the stored image.
	FileName string

	SizeBytes int64

	// CreatedAt is the Unix timestamp when the image was stored.
	CreatedAt int64
}
