package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	authdomain "github.com/smallbiznis/teamhub/internal/auth/domain"
	invitationdomain "github.com/smallbiznis/teamhub/internal/invitation/domain"
	teamdomain "github.com/smallbiznis/teamhub/internal/team/domain"
	usersearchdomain "github.com/smallbiznis/teamhub/internal/usersearch/domain"
	"github.com/smallbiznis/teamhub/internal/validation"
	"gorm.io/gorm"
)

type errorPayload struct {
	Type    string                  `json:"type"`
	Message string                  `json:"message"`
	Errors  []validation.FieldError `json:"errors,omitempty"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var (
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrConflict       = errors.New("conflict")
	ErrInternal       = errors.New("internal_error")
	ErrNotFound       = errors.New("not_found")
	ErrInvalidRequest = errors.New("invalid_request")
)

func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func invalidRequestError() error {
	return validation.New("request", "invalid_request", "invalid request")
}

func mapError(err error) (int, errorPayload) {
	if err == nil {
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}

	if vErr := validation.As(err); vErr != nil {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors:  vErr.Fields,
		}
	}

	switch {
	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, teamdomain.ErrInvalidTeam):
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "invalid request",
		}
	case errors.Is(err, ErrUnauthorized),
		errors.Is(err, authdomain.ErrInvalidCredentials),
		errors.Is(err, authdomain.ErrInvalidSession),
		errors.Is(err, authdomain.ErrSessionExpired),
		errors.Is(err, authdomain.ErrSessionRevoked),
		errors.Is(err, authdomain.ErrSessionNotFound):
		return http.StatusUnauthorized, errorPayload{
			Type:    "unauthorized",
			Message: "unauthorized",
		}
	case errors.Is(err, ErrForbidden),
		errors.Is(err, teamdomain.ErrForbidden),
		errors.Is(err, invitationdomain.ErrForbidden),
		errors.Is(err, usersearchdomain.ErrForbidden):
		return http.StatusForbidden, errorPayload{
			Type:    "forbidden",
			Message: "forbidden",
		}
	case errors.Is(err, invitationdomain.ErrExpired):
		return http.StatusGone, errorPayload{
			Type:    "invitation_expired",
			Message: "invitation has expired",
		}
	case errors.Is(err, ErrConflict),
		errors.Is(err, authdomain.ErrUserExists),
		errors.Is(err, teamdomain.ErrAlreadyMember),
		errors.Is(err, invitationdomain.ErrPendingInvitation),
		errors.Is(err, invitationdomain.ErrNotActionable):
		return http.StatusConflict, errorPayload{
			Type:    "conflict",
			Message: conflictMessage(err),
		}
	case isNotFoundError(err):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: "not found",
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}
}

func conflictMessage(err error) string {
	switch {
	case errors.Is(err, teamdomain.ErrAlreadyMember):
		return teamdomain.ConflictAlreadyMember
	case errors.Is(err, invitationdomain.ErrPendingInvitation):
		return "a pending invitation already exists for this email"
	case errors.Is(err, invitationdomain.ErrNotActionable):
		return "invitation has already been responded to"
	default:
		return "conflict"
	}
}

func isNotFoundError(err error) bool {
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, teamdomain.ErrTeamNotFound),
		errors.Is(err, invitationdomain.ErrNotFound),
		errors.Is(err, authdomain.ErrUserNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return true
	default:
		return false
	}
}

func classifyErrorForLog(err error) (string, string) {
	status, payload := mapError(err)
	switch {
	case status >= http.StatusInternalServerError:
		return "server_error", payload.Type
	case status >= http.StatusBadRequest:
		return "client_error", payload.Type
	default:
		return "", ""
	}
}
