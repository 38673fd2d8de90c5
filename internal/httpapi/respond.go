package httpapi

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/giftcircle/giftcircle/internal/auth"
	"github.com/giftcircle/giftcircle/internal/ledger"
	"github.com/giftcircle/giftcircle/internal/models"
	"github.com/giftcircle/giftcircle/internal/service"
	"github.com/giftcircle/giftcircle/internal/storage"
)

// respondError maps service errors to HTTP statuses. Unknown errors become
// an opaque 500; the detail stays in the server log.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "not allowed"})
	case errors.Is(err, auth.ErrInvalidCredentials), errors.Is(err, auth.ErrInvalidToken):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, auth.ErrEmailExists):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrValidation),
		errors.Is(err, service.ErrNothingToSettle),
		errors.Is(err, auth.ErrWeakPassword),
		errors.Is(err, auth.ErrMissingUsername),
		errors.Is(err, models.ErrInvalidTransition),
		errors.Is(err, ledger.ErrNoBuyer),
		errors.Is(err, ledger.ErrManyBuyers),
		errors.Is(err, ledger.ErrUnknownBuyer):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		slog.Error("Unhandled request error", "path", c.Request.URL.Path, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
