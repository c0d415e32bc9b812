// Package model defines the domain records shared by the repository,
// service and handler layers, together with the closed set of domain
// errors. Every entity service reports failures through these sentinel
// values so that handlers can translate them to HTTP statuses without
// depending on repository internals.
package model

import "errors"

// ErrValidation is returned when caller-supplied input is malformed:
// an empty part name, a non-positive part number, a username outside
// the allowed length, a weak password. Locally correctable by the
// caller.
var ErrValidation = errors.New("validation failed")

// ErrNotFound is returned when an operation references an entity that
// does not exist (update of an unknown part, role lookup for an
// unknown username).
var ErrNotFound = errors.New("not found")

// ErrDuplicateUser is returned by registration when the requested
// username is already taken.
var ErrDuplicateUser = errors.New("username already exists")

// ErrIntegrity is returned when a referential precondition is
// violated: associating a part with a project when either side is
// missing, or resolving an association whose part has vanished.
var ErrIntegrity = errors.New("integrity violation")

// ErrOwnerRequired is returned by project creation when the owning
// user cannot be resolved. Ownership is a hard precondition, not
// best effort.
var ErrOwnerRequired = errors.New("project owner required")

// ErrStoreUnavailable wraps storage-layer failures (lost connection,
// failed query). It is the only 5xx-class member of the taxonomy;
// callers cannot correct it.
var ErrStoreUnavailable = errors.New("store unavailable")
