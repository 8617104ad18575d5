package domain

import "errors"

// ErrStoreNotFound covers both unknown names and soft-deleted stores; the
// two are indistinguishable to callers on purpose.
var ErrStoreNotFound = errors.New("store not found")
