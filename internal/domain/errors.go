package domain

import "errors"

// ErrNotFound is returned by repositories when a write targets a record that
// does not exist or is not owned by the caller.
var ErrNotFound = errors.New("not found")

// ErrDuplicateSKU is returned when product creation violates SKU uniqueness
var ErrDuplicateSKU = errors.New("sku already exists")
