// Package domain provides shared domain-level sentinel errors.
package domain

import "errors"

// ErrNotFound indicates the requested task does not exist.
var ErrNotFound = errors.New("not found")

// ErrNoDocument indicates no part of an inbound envelope decoded to a
// purchase order. Terminal: retrying the same envelope cannot succeed.
var ErrNoDocument = errors.New("no valid document found in message")
