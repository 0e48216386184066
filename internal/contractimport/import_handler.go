package contractimport

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Vietanh2703/BASMS-BE-sub001/internal/shared/apperror"
	"github.com/Vietanh2703/BASMS-BE-sub001/internal/shared/contextutil"
	"github.com/Vietanh2703/BASMS-BE-sub001/internal/shared/response"
)

// maxUploadBytes bounds the multipart document size.
const maxUploadBytes = 20 << 20

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("contractimport.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("contractimport.handler")
	}
	return &Handler{service: service, logger: l}
}

// writeServiceError logs through the request-scoped logger so the entry
// carries the request id and caller identity.
func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	contextutil.GetLogger(c.Request.Context()).Warn("contract import request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

// Import accepts a multipart upload under the "file" field and runs the full
// import pipeline. Pipeline failures come back as 422 with the structured
// result attached so the caller can fall back to manual entry.
func (h *Handler) Import(c *gin.Context) {
	userID := c.GetString("user_id")
	h.logger.Debug("http import contract", zap.String("user_id", userID))

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBytes)

	var meta ImportMetadata
	if err := c.ShouldBind(&meta); err != nil {
		h.logger.Warn("http import contract validation failed", zap.Error(err))
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.logger.Warn("http import contract missing file", zap.Error(err))
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput,
			"A document must be uploaded under the \"file\" field", err.Error())
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput,
			"The uploaded document could not be read", err.Error())
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput,
			"The uploaded document could not be read", err.Error())
		return
	}

	result, err := h.service.Import(c.Request.Context(), ImportRequest{
		FileName:       fileHeader.Filename,
		Data:           data,
		ContentType:    fileHeader.Header.Get("Content-Type"),
		InitiatedBy:    userID,
		ContractNumber: meta.ContractNumber,
		CustomerEmail:  meta.CustomerEmail,
	})
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	if !result.Success {
		response.Error(c, http.StatusUnprocessableEntity, apperror.CodeExtractionFailed,
			result.ErrorMessage, result)
		return
	}

	response.Success(c, http.StatusCreated, result)
}
