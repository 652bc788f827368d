package presign

import "time"

// GenerateURLRequest asks for a signed read or delete URL.
type GenerateURLRequest struct {
	BucketName string `json:"bucketName" binding:"required"`
	ObjectKey  string `json:"objectKey" binding:"required"`
	Operation  string `json:"operation" binding:"required,oneof=read delete"`
}

// SignedURLResponse is a signed URL as returned to API clients.
type SignedURLResponse struct {
	URL       string            `json:"url"`
	Method    string            `json:"method"`
	Headers   map[string]string `json:"headers,omitempty"`
	Operation string            `json:"operation"`
	SignedAt  time.Time         `json:"signedAt"`
	ExpiresAt time.Time         `json:"expiresAt"`
}

// ToResponse converts a SignedURL to its API form. Host is omitted.
func (u *SignedURL) ToResponse() *SignedURLResponse {
	resp := &SignedURLResponse{
		URL:       u.URL,
		Method:    u.Method,
		Operation: u.Operation.String(),
		SignedAt:  u.SignedAt,
		ExpiresAt: u.ExpiresAt,
	}
	for name := range u.Header {
		if name == "Host" {
			continue
		}
		if resp.Headers == nil {
			resp.Headers = make(map[string]string)
		}
		resp.Headers[name] = u.Header.Get(name)
	}
	return resp
}

// UploadResponse reports a completed presigned upload.
type UploadResponse struct {
	BucketName string `json:"bucketName"`
	ObjectKey  string `json:"objectKey"`
	Size       int64  `json:"size"`
	StatusCode int    `json:"statusCode"`
	Success    bool   `json:"success"`
}
