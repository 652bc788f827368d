package bucket

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/objgate/server/internal/infra/storage"
	apperrors "github.com/objgate/server/internal/shared/errors"
	"github.com/objgate/server/internal/shared/objectid"
	"github.com/objgate/server/internal/shared/response"
)

// Handler handles HTTP requests for buckets.
type Handler struct {
	service ServiceInterface
}

// NewHandler creates a new bucket handler.
func NewHandler(service ServiceInterface) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers bucket routes.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	buckets := r.Group("/buckets")
	{
		buckets.POST("", h.CreateBucket)
		buckets.GET("", h.GetBucket)
		buckets.PUT("", h.UpdateVersioning)
		buckets.DELETE("", h.DeleteBucket)
		buckets.GET("/info", h.GetBucketInfo)
	}
}

// CreateBucket creates a bucket.
//
//	@Summary		Create bucket
//	@Tags			Buckets
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateBucketRequest	true	"Bucket to create"
//	@Success		200		{object}	CreateBucketResult
//	@Failure		400		{object}	apperrors.ErrorResponse
//	@Failure		409		{object}	apperrors.ErrorResponse
//	@Router			/buckets [post]
func (h *Handler) CreateBucket(c *gin.Context) {
	var req CreateBucketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.CreateBucket(c.Request.Context(), req.BucketName)
	if err != nil {
		handleBucketError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetBucket returns a bucket by name.
//
//	@Summary		Get bucket
//	@Tags			Buckets
//	@Produce		json
//	@Param			bucketName	query		string	true	"Bucket name"
//	@Success		200			{object}	BucketSummary
//	@Failure		404			{object}	apperrors.ErrorResponse
//	@Router			/buckets [get]
func (h *Handler) GetBucket(c *gin.Context) {
	summary, err := h.service.GetBucket(c.Request.Context(), c.Query("bucketName"))
	if err != nil {
		handleBucketError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// UpdateVersioning enables or suspends versioning.
//
//	@Summary		Update bucket versioning
//	@Tags			Buckets
//	@Param			bucketName	query	string	true	"Bucket name"
//	@Param			status		query	string	true	"Enabled or Suspended"
//	@Success		200
//	@Failure		400	{object}	apperrors.ErrorResponse
//	@Router			/buckets [put]
func (h *Handler) UpdateVersioning(c *gin.Context) {
	if err := h.service.UpdateVersioning(c.Request.Context(), c.Query("bucketName"), c.Query("status")); err != nil {
		handleBucketError(c, err)
		return
	}

	c.Status(http.StatusOK)
}

// DeleteBucket deletes a bucket.
//
//	@Summary		Delete bucket
//	@Tags			Buckets
//	@Param			bucketName	query	string	true	"Bucket name"
//	@Success		204
//	@Failure		404	{object}	apperrors.ErrorResponse
//	@Failure		409	{object}	apperrors.ErrorResponse
//	@Router			/buckets [delete]
func (h *Handler) DeleteBucket(c *gin.Context) {
	if err := h.service.DeleteBucket(c.Request.Context(), c.Query("bucketName")); err != nil {
		handleBucketError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// GetBucketInfo returns head-bucket metadata.
//
//	@Summary		Get bucket info
//	@Tags			Buckets
//	@Produce		json
//	@Param			bucketName	query		string	true	"Bucket name"
//	@Success		200			{object}	BucketInfo
//	@Failure		404			{object}	apperrors.ErrorResponse
//	@Router			/buckets/info [get]
func (h *Handler) GetBucketInfo(c *gin.Context) {
	info, err := h.service.GetBucketInfo(c.Request.Context(), c.Query("bucketName"))
	if err != nil {
		handleBucketError(c, err)
		return
	}

	c.JSON(http.StatusOK, info)
}

func handleBucketError(c *gin.Context, err error) {
	response.HandleError(c, err, bucketErrors, storage.ErrorMapping)
}

func bucketErrors(err error) *apperrors.AppError {
	switch {
	case errors.Is(err, objectid.ErrInvalidArgument), errors.Is(err, ErrInvalidVersioningStatus):
		return apperrors.BadRequest(err.Error())
	case errors.Is(err, ErrBucketNotFound), errors.Is(err, storage.ErrNotFound):
		appErr := apperrors.NotFound("bucket")
		appErr.Err = err
		return appErr
	default:
		return nil
	}
}
