package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mrlokans/openbible/internal/catalog"
)

// --- Response Types ---

// ErrorResponse is the standard error response format for all API errors.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`    // machine-readable error code
	Details any    `json:"details,omitempty"` // additional context
}

// CountResponse carries chapter and verse counts.
type CountResponse struct {
	Count int `json:"count"`
}

// respondJSON sends a 200 with v. Inside ETagMiddleware the response is
// tagged, and a matching If-None-Match gets 304 without a body. Lookup
// failures never reach here, so errors are never answered with 304.
func respondJSON(c *gin.Context, v any) {
	if etag := c.GetString(etagKey); etag != "" {
		c.Header("ETag", etag)
		c.Header("Cache-Control", "no-cache")
		if matchesETag(c.GetHeader("If-None-Match"), etag) {
			c.AbortWithStatus(http.StatusNotModified)
			return
		}
	}
	c.JSON(http.StatusOK, v)
}

// --- Error Response Helpers ---

// respondBadRequest sends a 400 Bad Request response.
func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: message, Code: "bad_request"})
}

// respondNotFound sends a 404 with the "<Kind> <key> not found." message.
func respondNotFound(c *gin.Context, kind catalog.Kind, key string) {
	err := &catalog.NotFoundError{Kind: kind, Key: key}
	c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
}

// respondInternalError logs the error and sends a 500 Internal Server Error response.
// The actual error is logged but not exposed to the client.
func respondInternalError(c *gin.Context, logger *zap.Logger, err error, context string) {
	logger.Error("Internal error", zap.String("context", context), zap.Error(err))
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
}

// respondLookupError maps a catalog lookup failure to a response.
func respondLookupError(c *gin.Context, logger *zap.Logger, err error) {
	var notFound *catalog.NotFoundError
	if errors.As(err, &notFound) {
		respondNotFound(c, notFound.Kind, notFound.Key)
		return
	}
	respondInternalError(c, logger, err, c.FullPath())
}

// --- Parameter Parsing ---

// parseNumberParam reads a chapter or verse number from the path. A segment
// that is not an integer names nothing in the catalog, so it is answered
// with the same 404 as a missing entry.
func parseNumberParam(c *gin.Context, paramName string, kind catalog.Kind) (int, bool) {
	raw := c.Param(paramName)
	n, err := strconv.Atoi(raw)
	if err != nil {
		respondNotFound(c, kind, raw)
		return 0, false
	}
	return n, true
}

// verseRef is a parsed :verse segment: either a single number or start-end.
type verseRef struct {
	start, end int
	isRange    bool
}

var errMalformedRange = errors.New("malformed verse range")

// parseVerseRef splits "N" or "A-B". A leading minus belongs to a single
// (negative) number, which then resolves to not-found.
func parseVerseRef(raw string) (verseRef, error) {
	idx := strings.Index(raw, "-")
	if idx <= 0 {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return verseRef{}, &catalog.NotFoundError{Kind: catalog.KindVerse, Key: raw}
		}
		return verseRef{start: n, end: n}, nil
	}

	start, err := strconv.Atoi(raw[:idx])
	if err != nil {
		return verseRef{}, errMalformedRange
	}
	end, err := strconv.Atoi(raw[idx+1:])
	if err != nil {
		return verseRef{}, errMalformedRange
	}
	return verseRef{start: start, end: end, isRange: true}, nil
}
