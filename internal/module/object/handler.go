package object

import (
	"errors"
	"fmt"
	"net/http"
	"path"

	"github.com/gin-gonic/gin"

	"github.com/objgate/server/internal/infra/storage"
	apperrors "github.com/objgate/server/internal/shared/errors"
	"github.com/objgate/server/internal/shared/formfile"
	"github.com/objgate/server/internal/shared/objectid"
	"github.com/objgate/server/internal/shared/response"
)

// Handler handles HTTP requests for objects.
type Handler struct {
	service       ServiceInterface
	maxUploadSize int64
}

// NewHandler creates a new object handler.
func NewHandler(service ServiceInterface, maxUploadSize int64) *Handler {
	return &Handler{
		service:       service,
		maxUploadSize: maxUploadSize,
	}
}

// RegisterRoutes registers object routes.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	objects := r.Group("/objects")
	{
		objects.GET("", h.GetObject)
		objects.POST("", h.PutObject)
		objects.DELETE("", h.DeleteObject)
		objects.GET("/info", h.GetObjectInfo)
		objects.POST("/tags", h.AddTags)
		objects.GET("/tags", h.GetTags)
	}
}

// tagsBody is the JSON body of an add-tags request.
type tagsBody struct {
	Tags []Tag `json:"tags" binding:"dive"`
}

// GetObject downloads an object.
//
//	@Summary		Download object
//	@Tags			Objects
//	@Produce		octet-stream
//	@Param			bucketName	query		string	true	"Bucket name"
//	@Param			objectKey	query		string	true	"Object key"
//	@Success		200			{file}		binary
//	@Failure		404			{object}	apperrors.ErrorResponse
//	@Router			/objects [get]
func (h *Handler) GetObject(c *gin.Context) {
	key := c.Query("objectKey")

	obj, err := h.service.GetObject(c.Request.Context(), c.Query("bucketName"), key)
	if err != nil {
		handleObjectError(c, err)
		return
	}

	contentType := obj.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	if obj.ETag != "" {
		c.Header("ETag", obj.ETag)
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", path.Base(key)))
	c.Data(http.StatusOK, contentType, obj.Body)
}

// PutObject uploads a multipart file.
//
//	@Summary		Upload object
//	@Tags			Objects
//	@Accept			multipart/form-data
//	@Param			bucketName	query		string	true	"Bucket name"
//	@Param			objectKey	query		string	true	"Object key"
//	@Param			file		formData	file	true	"File to upload"
//	@Success		201
//	@Failure		400	{object}	apperrors.ErrorResponse
//	@Failure		413	{object}	apperrors.ErrorResponse
//	@Router			/objects [post]
func (h *Handler) PutObject(c *gin.Context) {
	file, err := formfile.Read(c, "file", h.maxUploadSize)
	if err != nil {
		response.HandleError(c, err, formfile.ErrorMapping)
		return
	}

	err = h.service.PutObject(c.Request.Context(), c.Query("bucketName"), c.Query("objectKey"), file.Data, file.ContentType)
	if err != nil {
		handleObjectError(c, err)
		return
	}

	c.Status(http.StatusCreated)
}

// DeleteObject deletes an object.
//
//	@Summary		Delete object
//	@Tags			Objects
//	@Param			bucketName	query	string	true	"Bucket name"
//	@Param			objectKey	query	string	true	"Object key"
//	@Success		204
//	@Failure		400	{object}	apperrors.ErrorResponse
//	@Router			/objects [delete]
func (h *Handler) DeleteObject(c *gin.Context) {
	if err := h.service.DeleteObject(c.Request.Context(), c.Query("bucketName"), c.Query("objectKey")); err != nil {
		handleObjectError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// GetObjectInfo returns object metadata.
//
//	@Summary		Get object info
//	@Tags			Objects
//	@Produce		json
//	@Param			bucketName	query		string	true	"Bucket name"
//	@Param			objectKey	query		string	true	"Object key"
//	@Success		200			{object}	ObjectInfo
//	@Failure		404			{object}	apperrors.ErrorResponse
//	@Router			/objects/info [get]
func (h *Handler) GetObjectInfo(c *gin.Context) {
	info, err := h.service.GetObjectInfo(c.Request.Context(), c.Query("bucketName"), c.Query("objectKey"))
	if err != nil {
		handleObjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, info)
}

// AddTags sets tags on an object.
//
//	@Summary		Add object tags
//	@Tags			Objects
//	@Accept			json
//	@Param			bucketName	query	string		true	"Bucket name"
//	@Param			objectKey	query	string		true	"Object key"
//	@Param			request		body	tagsBody	true	"Tags"
//	@Success		201
//	@Failure		400	{object}	apperrors.ErrorResponse
//	@Router			/objects/tags [post]
func (h *Handler) AddTags(c *gin.Context) {
	var body tagsBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	err := h.service.AddTags(c.Request.Context(), &AddTagsRequest{
		BucketName: c.Query("bucketName"),
		ObjectKey:  c.Query("objectKey"),
		Tags:       body.Tags,
	})
	if err != nil {
		handleObjectError(c, err)
		return
	}

	c.Status(http.StatusCreated)
}

// GetTags lists an object's tags.
//
//	@Summary		Get object tags
//	@Tags			Objects
//	@Produce		json
//	@Param			bucketName	query		string	true	"Bucket name"
//	@Param			objectKey	query		string	true	"Object key"
//	@Success		200			{object}	TagsResponse
//	@Failure		404			{object}	apperrors.ErrorResponse
//	@Router			/objects/tags [get]
func (h *Handler) GetTags(c *gin.Context) {
	bucket, key := c.Query("bucketName"), c.Query("objectKey")

	tags, err := h.service.GetTags(c.Request.Context(), bucket, key)
	if err != nil {
		handleObjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, TagsResponse{BucketName: bucket, ObjectKey: key, Tags: tags})
}

func handleObjectError(c *gin.Context, err error) {
	response.HandleError(c, err, objectErrors, storage.ErrorMapping)
}

func objectErrors(err error) *apperrors.AppError {
	if errors.Is(err, objectid.ErrInvalidArgument) {
		return apperrors.BadRequest(err.Error())
	}
	return nil
}
