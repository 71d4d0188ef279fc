package api

import (
	"net/http" // HTTP status codes
	"strconv"  // Path parameter parsing
	"strings"  // Blank field detection

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/pkg/errors"      // Error inspection
	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/gorm"               // GORM ORM library
)

// internalError logs err with fields and answers 500 with msg
func internalError(c *gin.Context, msg string, err error, fields logrus.Fields) {
	_ = c.Error(err)
	logrus.WithFields(fields).WithError(err).Error(msg)
	c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
}

// idParam parses a numeric path parameter, answering 400 when it is not one
func idParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return 0, false
	}
	return uint(id), true
}

// blankField answers 400 when one of the named form fields was sent empty.
// gin binds an empty numeric field as zero, which would hide the mistake.
func blankField(c *gin.Context, names ...string) bool {
	for _, name := range names {
		if v, ok := c.GetPostForm(name); ok && strings.TrimSpace(v) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return true
		}
	}
	return false
}

// findByID loads dest by primary key and reports whether the row exists.
// A miss is not an error, so gorm does not log it as one.
func findByID(tx *gorm.DB, dest any, id uint) (bool, error) {
	res := tx.Limit(1).Find(dest, id)
	if res.Error != nil {
		return false, errors.Wrap(res.Error, "find by id")
	}
	return res.RowsAffected > 0, nil
}
