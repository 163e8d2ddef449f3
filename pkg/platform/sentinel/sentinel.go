package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Upstream clients return these
// (optionally wrapped) so services can translate them into domain errors.
//
// These represent factual states about remote resources, not validation
// failures:
// - ErrNotFound: the upstream has no record for the requested key
// - ErrTimeout: a single upstream call exceeded its deadline
// - ErrBadUpstream: the upstream body could not be parsed (e.g. XML where
//   JSON was expected)
// - ErrUpstreamStatus: the upstream answered with an embedded non-success
//   result code
// - ErrMissingCredential: the call was skipped because no API key is
//   configured
// - ErrUnavailable: transport-level failure reaching the upstream
//
// For validation errors (bad input, malformed identifiers), use
// pkg/domain-errors directly.
var (
	ErrNotFound          = errors.New("not found")
	ErrTimeout           = errors.New("upstream timeout")
	ErrBadUpstream       = errors.New("unparseable upstream response")
	ErrUpstreamStatus    = errors.New("upstream result status not ok")
	ErrMissingCredential = errors.New("missing credential")
	ErrUnavailable       = errors.New("unavailable")
)
