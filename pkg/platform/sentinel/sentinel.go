package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores and infrastructure layers return
// these (optionally wrapped) so services can translate them into domain errors.
//
// These represent factual states about resources, not validation failures:
// - ErrUnavailable: backing store could not be reached or refused the operation
// - ErrPartialRead: a listing could not return every record it should have
//
// For validation errors (bad input, missing fields), use pkg/domain-errors directly.
var (
	ErrUnavailable = errors.New("unavailable")
	ErrPartialRead = errors.New("partial read")
)
