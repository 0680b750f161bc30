package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrArchiveDisabled is reported when the archive endpoints are hit without
// a configured database
var ErrArchiveDisabled = errors.New("debate archive is not configured")

// bindJSON binds the request body and writes a 400 (or 413 for an
// oversized body) on failure. It reports whether the handler may continue.
func bindJSON(c *gin.Context, req any) bool {
	err := c.ShouldBindJSON(req)
	if err == nil {
		return true
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Request body too large"})
		return false
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload: " + err.Error()})
	return false
}
