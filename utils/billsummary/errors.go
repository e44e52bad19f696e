package billsummary

import "errors"

// Structural failures abort an analysis; the rest are reported as warnings.
var (
	ErrInsufficientPages  = errors.New("document has fewer pages than the bill summary page")
	ErrSectionNotFound    = errors.New("couldn't locate 'THIS BILL SUMMARY' section")
	ErrHeaderNotFound     = errors.New("could not detect header columns")
	ErrRowNotFound        = errors.New("row not found")
	ErrSchemaMismatch     = errors.New("amount count does not match column schema")
	ErrGrandTotalMismatch = errors.New("bill total does not match")
	ErrEncodingOverflow   = errors.New("summary payload exceeds image encoding capacity")
)
