package handlers

import (
	"net/http"

	"github.com/campusride/carpool-backend/internal/apperrors"
	"github.com/gin-gonic/gin"
)

// statusForKind maps an error kind to its HTTP status. Capacity shares 409
// with conflict but keeps its own code field so clients can tell them
// apart.
func statusForKind(kind apperrors.Kind) int {
	switch kind {
	case apperrors.KindValidation:
		return http.StatusBadRequest
	case apperrors.KindNotFound:
		return http.StatusNotFound
	case apperrors.KindAuthorization:
		return http.StatusForbidden
	case apperrors.KindConflict, apperrors.KindCapacity:
		return http.StatusConflict
	case apperrors.KindTransient:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the error taxonomy response for err. Unclassified
// errors become a 500 without leaking internals.
func respondError(c *gin.Context, err error) {
	kind := apperrors.KindOf(err)
	if kind == 0 {
		c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "internal error",
			"code":  "INTERNAL_ERROR",
		})
		return
	}

	message := err.Error()
	if kind == apperrors.KindTransient {
		// Transient errors wrap the driver fault; clients get the
		// classification, logs get the cause.
		c.Error(err)
		message = "service temporarily unavailable, please retry"
	}

	c.JSON(statusForKind(kind), gin.H{
		"error": message,
		"code":  kind.String(),
	})
}
