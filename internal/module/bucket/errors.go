package bucket

import "errors"

var (
	ErrBucketNotFound          = errors.New("bucket not found")
	ErrInvalidVersioningStatus = errors.New("versioning status must be Enabled or Suspended")
)
