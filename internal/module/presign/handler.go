package presign

import (
	"errors"
	"fmt"
	"net/http"
	"path"

	"github.com/gin-gonic/gin"

	apperrors "github.com/objgate/server/internal/shared/errors"
	"github.com/objgate/server/internal/shared/formfile"
	"github.com/objgate/server/internal/shared/response"
)

// Handler handles HTTP requests for presigned transfers.
type Handler struct {
	service       ServiceInterface
	maxUploadSize int64
}

// NewHandler creates a new presign handler.
func NewHandler(service ServiceInterface, maxUploadSize int64) *Handler {
	return &Handler{
		service:       service,
		maxUploadSize: maxUploadSize,
	}
}

// RegisterRoutes registers presign routes.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	secured := r.Group("/objects/secured")
	{
		secured.GET("", h.Download)
		secured.POST("", h.Upload)
		secured.DELETE("", h.Delete)
	}

	r.POST("/presigned-urls", h.GenerateURL)
}

// Download streams an object fetched through a presigned URL.
//
//	@Summary		Download via presigned URL
//	@Description	Sign a read URL and download the object through it
//	@Tags			Presigned
//	@Produce		octet-stream
//	@Param			bucketName	query		string	true	"Bucket name"
//	@Param			objectKey	query		string	true	"Object key"
//	@Success		200			{file}		binary
//	@Failure		400			{object}	apperrors.ErrorResponse
//	@Failure		502			{object}	apperrors.ErrorResponse
//	@Router			/objects/secured [get]
func (h *Handler) Download(c *gin.Context) {
	bucket, key := c.Query("bucketName"), c.Query("objectKey")

	data, err := h.service.DownloadViaPresignedURL(c.Request.Context(), bucket, key)
	if err != nil {
		response.HandleError(c, err, ErrorMapping)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", path.Base(key)))
	c.Data(http.StatusOK, "application/octet-stream", data)
}

// Upload stores a multipart file through a presigned URL.
//
//	@Summary		Upload via presigned URL
//	@Description	Sign a write URL bound to the file's Content-MD5 and upload through it
//	@Tags			Presigned
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			bucketName	query		string	true	"Bucket name"
//	@Param			objectKey	query		string	true	"Object key"
//	@Param			file		formData	file	true	"File to upload"
//	@Success		201			{object}	UploadResponse
//	@Failure		400			{object}	apperrors.ErrorResponse
//	@Failure		413			{object}	apperrors.ErrorResponse
//	@Failure		502			{object}	apperrors.ErrorResponse
//	@Router			/objects/secured [post]
func (h *Handler) Upload(c *gin.Context) {
	bucket, key := c.Query("bucketName"), c.Query("objectKey")

	file, err := formfile.Read(c, "file", h.maxUploadSize)
	if err != nil {
		response.HandleError(c, err, formfile.ErrorMapping)
		return
	}

	outcome, err := h.service.UploadViaPresignedURL(c.Request.Context(), bucket, key, file.Data)
	if err != nil {
		response.HandleError(c, err, ErrorMapping)
		return
	}

	c.JSON(http.StatusCreated, UploadResponse{
		BucketName: bucket,
		ObjectKey:  key,
		Size:       int64(len(file.Data)),
		StatusCode: outcome.StatusCode,
		Success:    outcome.Success,
	})
}

// Delete removes an object through a presigned URL.
//
//	@Summary		Delete via presigned URL
//	@Description	Sign a delete URL and execute it
//	@Tags			Presigned
//	@Param			bucketName	query	string	true	"Bucket name"
//	@Param			objectKey	query	string	true	"Object key"
//	@Success		204
//	@Failure		400	{object}	apperrors.ErrorResponse
//	@Failure		502	{object}	apperrors.ErrorResponse
//	@Router			/objects/secured [delete]
func (h *Handler) Delete(c *gin.Context) {
	_, err := h.service.DeleteViaPresignedURL(c.Request.Context(), c.Query("bucketName"), c.Query("objectKey"))
	if err != nil {
		response.HandleError(c, err, ErrorMapping)
		return
	}

	c.Status(http.StatusNoContent)
}

// GenerateURL issues a signed read or delete URL.
//
//	@Summary		Generate presigned URL
//	@Description	Issue a time-limited URL for reading or deleting one object
//	@Tags			Presigned
//	@Accept			json
//	@Produce		json
//	@Param			request	body		GenerateURLRequest	true	"Presigned URL request"
//	@Success		200		{object}	SignedURLResponse
//	@Failure		400		{object}	apperrors.ErrorResponse
//	@Failure		500		{object}	apperrors.ErrorResponse
//	@Router			/presigned-urls [post]
func (h *Handler) GenerateURL(c *gin.Context) {
	var req GenerateURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	op, err := ParseOperationKind(req.Operation)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	signed, err := h.service.GenerateURL(c.Request.Context(), SignRequest{
		BucketName: req.BucketName,
		ObjectKey:  req.ObjectKey,
		Operation:  op,
	})
	if err != nil {
		response.HandleError(c, err, ErrorMapping)
		return
	}

	c.JSON(http.StatusOK, signed.ToResponse())
}

// ErrorMapping maps presign errors to API errors.
func ErrorMapping(err error) *apperrors.AppError {
	var transferErr *TransferError
	switch {
	case errors.Is(err, ErrInvalidArgument):
		return apperrors.BadRequest(err.Error())
	case errors.Is(err, ErrSigningFailure):
		return &apperrors.AppError{
			Code:       "SIGNING_FAILED",
			Message:    "failed to sign storage request",
			StatusCode: http.StatusInternalServerError,
			Err:        err,
		}
	case errors.As(err, &transferErr):
		appErr := apperrors.BadGateway("presigned transfer failed", err)
		if transferErr.StatusCode != 0 {
			appErr.WithDetails(map[string]any{"upstream_status": transferErr.StatusCode})
		}
		return appErr
	default:
		return nil
	}
}
