package api

import (
	"errors"
	"net/http"

	"alcyxob/coaching-app/internal/service"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// respondWithServiceError maps a service error to its HTTP status. Errors outside the service
// vocabulary are logged and answered with a generic message.
func respondWithServiceError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrUnauthorized):
		abortWithError(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrBadRequest):
		abortWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrConflict):
		abortWithError(c, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrMediaDisabled):
		abortWithError(c, http.StatusServiceUnavailable, err.Error())
	default:
		log.WithFields(log.Fields{
			"method": c.Request.Method,
			"route":  c.FullPath(),
		}).Errorf("%s: %s", fallback, err)
		abortWithError(c, http.StatusInternalServerError, fallback)
	}
}
