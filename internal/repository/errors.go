// Package repository implements data access against MySQL. This file defines
// sentinel errors shared across repositories so handlers can translate
// failure modes into HTTP statuses without string matching.
package repository

import "errors"

// ErrEmailExists is returned when an insert violates the unique email
// constraint. Handlers translate it into HTTP 409.
var ErrEmailExists = errors.New("email already exists")

// ErrNotFound is returned when a record addressed by id or email does not
// exist. Handlers translate it into HTTP 404.
var ErrNotFound = errors.New("not found")
