// Package controller holds the response helpers shared by the admin and user
// HTTP handlers.
package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/lshigami/coursequiz/internal/apperror"
	"github.com/lshigami/coursequiz/internal/dto"
	"github.com/rs/zerolog/log"
)

// RespondError maps a service error onto its HTTP status. Unclassified errors
// are logged and reported as a generic 500 so internals do not leak.
func RespondError(ctx *gin.Context, op string, err error) {
	status := apperror.HTTPStatus(err)
	var ae *apperror.Error
	if !errors.As(err, &ae) {
		log.Error().Err(err).Str("op", op).Msg("Unhandled service error")
		ctx.JSON(status, dto.ErrorResponse{Message: "Internal server error"})
		return
	}
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Str("op", op).Msg("Service error")
	} else {
		log.Warn().Err(err).Str("op", op).Msg("Request rejected")
	}
	resp := dto.ErrorResponse{Message: ae.Message, Code: ae.Code}
	if ae.Err != nil && status < http.StatusInternalServerError {
		resp.Details = []string{ae.Err.Error()}
	}
	ctx.JSON(status, resp)
}

// RespondBindError reports a request body that failed binding or validation.
func RespondBindError(ctx *gin.Context, op string, err error) {
	log.Warn().Err(err).Str("op", op).Msg("Failed to bind request")
	details := []string{err.Error()}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		details = details[:0]
		for _, fe := range verrs {
			details = append(details, fe.Field()+" failed on '"+fe.Tag()+"'")
		}
	}
	ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Message: "Invalid request body",
		Code:    apperror.ErrInvalidInput.Code,
		Details: details,
	})
}

// ParseIDParam reads a positive numeric path parameter, writing a 400 and
// returning false when it is malformed.
func ParseIDParam(ctx *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil || id == 0 {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Message: "Invalid " + name + " format",
			Code:    apperror.ErrInvalidInput.Code,
		})
		return 0, false
	}
	return uint(id), true
}
