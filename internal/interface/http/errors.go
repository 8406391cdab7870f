package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/juicyplanet/internal/application"
	"github.com/oksasatya/juicyplanet/pkg/response"
	"github.com/oksasatya/juicyplanet/pkg/validation"
)

// StatusOf maps an application error kind to its HTTP status
func StatusOf(err error) int {
	switch application.KindOf(err) {
	case application.KindValidation, application.KindInvalidCode, application.KindExpired:
		return http.StatusBadRequest
	case application.KindConflict:
		return http.StatusConflict
	case application.KindNotFound:
		return http.StatusNotFound
	case application.KindUnauthorized:
		return http.StatusUnauthorized
	case application.KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

func writeError(c *gin.Context, err error) {
	response.Error[any](c, StatusOf(err), application.MessageOf(err), nil)
}

func writeBindError(c *gin.Context, err error) {
	response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
}
