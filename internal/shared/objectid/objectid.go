// Package objectid validates bucket names and object keys before any storage call.
package objectid

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidArgument is returned when a bucket name or object key is missing.
var ErrInvalidArgument = errors.New("invalid argument")

// ValidateBucket fails when bucket is empty.
func ValidateBucket(bucket string) error {
	return required("bucketName", bucket)
}

// ValidateKey fails when key is empty.
func ValidateKey(key string) error {
	return required("objectKey", key)
}

// Validate checks a bucket/object pair. The bucket is reported first.
func Validate(bucket, key string) error {
	if err := ValidateBucket(bucket); err != nil {
		return err
	}
	return ValidateKey(key)
}

func required(param, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%w: parameter [%s] must not be empty", ErrInvalidArgument, param)
	}
	return nil
}
