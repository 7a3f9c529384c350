package sanitize

import "errors"

// Sentinel errors returned by ValidateEntryList and ValidateNRSSR, one per
// ValidationResult case of the original sanitizer (spec.md §4.10).
var (
	ErrEntrySizeMismatch = errors.New("sanitize: entry list size mismatch")

	ErrNRSSRSignatureMismatch        = errors.New("sanitize: nrssr signature or version mismatch")
	ErrNRSSRPropertyMetaInsufficient = errors.New("sanitize: nrssr property metadata insufficient data")
	ErrNRSSRPropertyInvalidType      = errors.New("sanitize: nrssr property has invalid type")
	ErrNRSSRProperty4ByteInsuffient  = errors.New("sanitize: nrssr 4-byte property insufficient data")
	ErrNRSSRProperty8ByteInsuffient  = errors.New("sanitize: nrssr 8-byte property insufficient data")
	ErrNRSSRPropertyStringOverflow   = errors.New("sanitize: nrssr property string overflow")
	ErrNRSSRNameStringOverflow       = errors.New("sanitize: nrssr host name string overflow")
	ErrNRSSRRemainingSizeMismatch    = errors.New("sanitize: nrssr trailing data size mismatch")
	ErrNRSSRSessionSizeAbnormal      = errors.New("sanitize: nrssr session size field abnormal")
)
