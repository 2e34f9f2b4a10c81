// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domainerror "github.com/property-ledger/backend/internal/domain/error"
	"github.com/property-ledger/backend/internal/integration/entrypoint/dto"
)

// handleLedgerError writes the HTTP response for a use case error.
// Validation codes map to 400, lookups to 404, anything else to 500.
func handleLedgerError(ctx *gin.Context, err error, fallback string) {
	var ledgerErr *domainerror.LedgerError
	if errors.As(err, &ledgerErr) {
		status := http.StatusInternalServerError
		switch {
		case domainerror.IsNotFound(ledgerErr):
			status = http.StatusNotFound
		case strings.HasPrefix(string(ledgerErr.Code), "LDG-01"):
			status = http.StatusBadRequest
		}
		ctx.JSON(status, dto.ErrorResponse{
			Error: ledgerErr.Message,
			Code:  string(ledgerErr.Code),
		})
		return
	}

	slog.Error(fallback, "path", ctx.FullPath(), "error", err)
	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: fallback,
		Code:  string(domainerror.ErrCodeRepositoryFailure),
	})
}

func badRequest(ctx *gin.Context, code domainerror.LedgerErrorCode, message string) {
	ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error: message,
		Code:  string(code),
	})
}

// parseIDParam reads a UUID path parameter. It writes the 400 response and
// returns false when the value is malformed.
func parseIDParam(ctx *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param(name))
	if err != nil {
		badRequest(ctx, domainerror.ErrCodeMissingParameters, "Invalid "+name+" format")
		return uuid.Nil, false
	}
	return id, true
}

// parseIDQuery reads a required UUID query parameter.
func parseIDQuery(ctx *gin.Context, name string) (uuid.UUID, bool) {
	value := ctx.Query(name)
	if value == "" {
		badRequest(ctx, domainerror.ErrCodeMissingParameters, name+" is required")
		return uuid.Nil, false
	}
	id, err := uuid.Parse(value)
	if err != nil {
		badRequest(ctx, domainerror.ErrCodeMissingParameters, "Invalid "+name+" format")
		return uuid.Nil, false
	}
	return id, true
}

// parseIntQuery reads a required integer query parameter.
func parseIntQuery(ctx *gin.Context, name string, code domainerror.LedgerErrorCode) (int, bool) {
	value := ctx.Query(name)
	if value == "" {
		badRequest(ctx, domainerror.ErrCodeMissingParameters, name+" is required")
		return 0, false
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		badRequest(ctx, code, "Invalid "+name+" value")
		return 0, false
	}
	return n, true
}

// parseDateQuery reads a YYYY-MM-DD query parameter. Optional parameters
// that are absent yield nil.
func parseDateQuery(ctx *gin.Context, name string, required bool) (*time.Time, bool) {
	value := ctx.Query(name)
	if value == "" {
		if required {
			badRequest(ctx, domainerror.ErrCodeMissingParameters, name+" is required")
			return nil, false
		}
		return nil, true
	}
	date, err := time.Parse(time.DateOnly, value)
	if err != nil {
		badRequest(ctx, domainerror.ErrCodeInvalidDateFormat, "Invalid "+name+" format, expected YYYY-MM-DD")
		return nil, false
	}
	return &date, true
}
