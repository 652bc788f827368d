package object

import "time"

// Tag is an object tag.
type Tag struct {
	Key   string `json:"key" binding:"required"`
	Value string `json:"value"`
}

// AddTagsRequest adds tags to an object.
type AddTagsRequest struct {
	BucketName string `json:"bucketName"`
	ObjectKey  string `json:"objectKey"`
	Tags       []Tag  `json:"tags" binding:"dive"`
}

// Object is an object's content and content headers.
type Object struct {
	Body          []byte
	ContentType   string
	ContentLength int64
	ETag          string
	LastModified  *time.Time
}

// ObjectInfo is the metadata returned by a head request.
type ObjectInfo struct {
	ObjectKey     string     `json:"objectKey"`
	ContentType   string     `json:"contentType,omitempty"`
	ContentLength int64      `json:"contentLength"`
	ETag          string     `json:"eTag,omitempty"`
	Expiration    string     `json:"expiration,omitempty"`
	Expires       string     `json:"expires,omitempty"`
	LastModified  *time.Time `json:"lastModified,omitempty"`
}

// TagsResponse lists an object's tags.
type TagsResponse struct {
	BucketName string `json:"bucketName"`
	ObjectKey  string `json:"objectKey"`
	Tags       []Tag  `json:"tags"`
}
