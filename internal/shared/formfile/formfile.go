// Package formfile reads uploaded multipart files into memory.
package formfile

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/objgate/server/internal/shared/errors"
)

var (
	// ErrMissing is returned when the form field holds no file.
	ErrMissing = errors.New("multipart file is required")
	// ErrTooLarge is returned when the file exceeds the upload limit.
	ErrTooLarge = errors.New("multipart file exceeds the upload limit")
)

// File is an uploaded file held in memory.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// Read loads the file in field. maxSize <= 0 disables the limit.
func Read(c *gin.Context, field string, maxSize int64) (*File, error) {
	if maxSize > 0 {
		// Multipart framing adds a little over the file itself.
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxSize+1<<20)
	}

	header, err := c.FormFile(field)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, ErrTooLarge
		}
		return nil, fmt.Errorf("%w: %v", ErrMissing, err)
	}
	if maxSize > 0 && header.Size > maxSize {
		return nil, ErrTooLarge
	}

	f, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("open multipart file: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read multipart file: %w", err)
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	return &File{Name: header.Filename, ContentType: contentType, Data: data}, nil
}

// ErrorMapping maps read failures to API errors.
func ErrorMapping(err error) *apperrors.AppError {
	switch {
	case errors.Is(err, ErrTooLarge):
		return &apperrors.AppError{
			Code:       "PAYLOAD_TOO_LARGE",
			Message:    ErrTooLarge.Error(),
			StatusCode: http.StatusRequestEntityTooLarge,
			Err:        err,
		}
	case errors.Is(err, ErrMissing):
		return apperrors.BadRequest(ErrMissing.Error())
	default:
		return nil
	}
}
