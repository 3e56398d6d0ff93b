package http

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const etagKey = "catalog_etag"

// ETagMiddleware makes the catalog fingerprint the entity tag of the group.
// The catalog never changes after load, so equal fingerprints mean equal
// bodies for a given URL. Only successful responses written by respondJSON
// carry the tag or honour If-None-Match.
func ETagMiddleware(fingerprint string) gin.HandlerFunc {
	etag := `"` + fingerprint + `"`
	return func(c *gin.Context) {
		c.Set(etagKey, etag)
		c.Next()
	}
}

func matchesETag(header, etag string) bool {
	if header == "" {
		return false
	}
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" || strings.TrimPrefix(candidate, "W/") == etag {
			return true
		}
	}
	return false
}
