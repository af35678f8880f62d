package handlers

import (
	stderrors "errors"
	"net/http"

	"github.com/iwtcode/haasAdapter/pkg/errors"

	"github.com/gin-gonic/gin"
)

// ErrorResponse возвращает стандартизированный ответ с ошибкой
func (h *Handler) ErrorResponse(c *gin.Context, err error, statusCode int, message string, showError bool) {
	errorMessage := message
	if showError && err != nil {
		errorMessage = message + ": " + err.Error()
	}

	h.logger.Error(message, "error", err, "statusCode", statusCode)
	c.AbortWithStatusJSON(statusCode, gin.H{
		"status": "error",
		"error": gin.H{
			"code":    statusCode,
			"message": errorMessage,
		},
	})
}

// AppErrorResponse возвращает ответ по AppError
func (h *Handler) AppErrorResponse(c *gin.Context, appErr *errors.AppError) {
	h.ErrorResponse(c, appErr.Err, appErr.Code, appErr.Message, appErr.IsUserFacing)
}

// BadRequest возвращает ошибку 400
func (h *Handler) BadRequest(c *gin.Context, err error, message string) {
	if message == "" {
		message = errors.BadRequest
	}
	h.ErrorResponse(c, err, http.StatusBadRequest, message, true)
}

// InternalError возвращает ошибку 500
func (h *Handler) InternalError(c *gin.Context, err error) {
	h.ErrorResponse(c, err, http.StatusInternalServerError, errors.InternalServerError, false)
}

// NotFound возвращает ошибку 404
func (h *Handler) NotFound(c *gin.Context, err error) {
	h.ErrorResponse(c, err, http.StatusNotFound, errors.NotFound, true)
}

// toAppError сопоставляет ошибки библиотеки и сервиса с HTTP-кодами
func toAppError(err error) *errors.AppError {
	switch {
	case stderrors.Is(err, errors.ErrInvalidVariable), stderrors.Is(err, errors.ErrInvalidInterval):
		return errors.NewAppError(errors.InvalidDataCode, errors.BadRequest, err, true)
	case stderrors.Is(err, errors.ErrCollectorRunning), stderrors.Is(err, errors.ErrCollectorNotRunning):
		return errors.NewAppError(errors.ConflictErrorCode, errors.Conflict, err, true)
	case stderrors.Is(err, errors.ErrConnection),
		stderrors.Is(err, errors.ErrTransport),
		stderrors.Is(err, errors.ErrTimeout),
		stderrors.Is(err, errors.ErrAssembly):
		return errors.NewAppError(errors.ServiceUnavailableCode, errors.ServiceUnavailable, err, true)
	default:
		return errors.NewAppError(errors.InternalServerErrorCode, errors.InternalServerError, err, false)
	}
}
