package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// identityID resolves the acting member: the token identity when the request
// carried one, otherwise the plain user_id parameter. 0 means no identity.
func identityID(c *gin.Context, bodyID uint) uint {
	if v, ok := c.Get("user_id"); ok {
		if uid, ok := v.(uint); ok && uid != 0 {
			return uid
		}
	}
	if bodyID != 0 {
		return bodyID
	}
	if q := c.Query("user_id"); q != "" {
		if n, err := strconv.ParseUint(q, 10, 32); err == nil {
			return uint(n)
		}
	}
	return 0
}

func pathUint(c *gin.Context, name string) (uint, bool) {
	n, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(n), true
}
