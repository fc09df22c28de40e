package service

import "errors"

// ErrPersistence marks entity-store failures surfaced by the engine. The
// engine never retries; callers re-fetch and let the user try again.
var ErrPersistence = errors.New("entity store failure")
