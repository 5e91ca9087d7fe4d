package db

import (
	"strings"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrNotFound is returned by single-document reads and updates when no
// document matches the query.
var ErrNotFound = errors.New("document not found")

// ResultsNotFound reports whether the error indicates an absent
// document rather than a store fault.
func ResultsNotFound(err error) bool {
	if err == nil {
		return false
	}
	cause := errors.Cause(err)
	return cause == ErrNotFound || cause == mongo.ErrNoDocuments
}

// IsDuplicateKey reports whether the error is a unique-index violation.
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}

	if mongo.IsDuplicateKeyError(errors.Cause(err)) {
		return true
	}

	return strings.Contains(errors.Cause(err).Error(), "duplicate key")
}
