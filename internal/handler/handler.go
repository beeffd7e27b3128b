package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"m42hub/internal/middleware"
)

// pathID parses the :id path parameter, answering 400 when it is not a positive integer.
func pathID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid id"})
		return 0, false
	}
	return id, true
}

func currentUser(c *gin.Context) (uint64, bool) {
	id, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": "unauthorized"})
		return 0, false
	}
	return id, true
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
}

func internalError(c *gin.Context, log *zap.Logger, err error) {
	_ = c.Error(err)
	log.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"msg": "internal server error"})
}

func notFound(c *gin.Context) {
	c.Status(http.StatusNotFound)
}
