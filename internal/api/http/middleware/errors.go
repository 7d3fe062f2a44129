package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/dtroode/autocompany-server/internal/apierrors"
)

func abortWithError(c *gin.Context, err *apierrors.APIError) {
	c.AbortWithStatusJSON(err.HTTPCode, gin.H{"detail": err.Message})
}
