package bucket

import "time"

// CreateBucketResult describes a newly created bucket.
type CreateBucketResult struct {
	BucketName string `json:"bucketName"`
	RequestID  string `json:"requestId,omitempty"`
	Location   string `json:"location,omitempty"`
}

// BucketSummary is a bucket as listed by the storage service.
type BucketSummary struct {
	BucketName   string    `json:"bucketName"`
	CreationDate time.Time `json:"creationDate"`
}

// BucketInfo is the metadata returned by a head request.
type BucketInfo struct {
	BucketName         string `json:"bucketName"`
	BucketRegion       string `json:"bucketRegion,omitempty"`
	BucketLocationName string `json:"bucketLocationName,omitempty"`
	LocationType       string `json:"locationType,omitempty"`
}

// CreateBucketRequest is the body of a create request.
type CreateBucketRequest struct {
	BucketName string `json:"bucketName"`
}
