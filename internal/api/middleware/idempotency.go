package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jafarshop/sellingplans/internal/domain"
	"github.com/jafarshop/sellingplans/internal/repository"
)

const IdempotencyKeyHeader = "Idempotency-Key"

// responseRecorder keeps a copy of the body written by the handler
type responseRecorder struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *responseRecorder) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *responseRecorder) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// IdempotencyMiddleware replays the stored response of a request repeated with the same
// Idempotency-Key and body, and rejects a reused key with a different body.
func IdempotencyMiddleware(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Only apply to POST/PUT/PATCH requests
		if c.Request.Method != http.MethodPost && c.Request.Method != http.MethodPut && c.Request.Method != http.MethodPatch {
			c.Next()
			return
		}

		idempotencyKey := c.GetHeader(IdempotencyKeyHeader)
		if idempotencyKey == "" {
			c.Next()
			return
		}
		shop, _ := GetShopFromContext(c)

		// Read request body
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			logger.Error("Failed to read request body for idempotency", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process request"})
			c.Abort()
			return
		}

		// Restore body for handler
		c.Request.Body = io.NopCloser(bytes.NewBuffer(body))

		// Calculate request hash
		hash := sha256.Sum256(body)
		requestHash := hex.EncodeToString(hash[:])

		existing, err := repos.IdempotencyKey.GetByKey(c.Request.Context(), shop, idempotencyKey)
		if err != nil {
			logger.Error("Failed to check idempotency key", zap.Error(err))
			c.Next()
			return
		}

		if existing != nil {
			if existing.RequestHash != requestHash {
				// Same key, different payload - conflict
				c.JSON(http.StatusConflict, gin.H{
					"error": "idempotency key conflict: same key used with different payload",
				})
				c.Abort()
				return
			}

			logger.Info("Replaying idempotent response", zap.String("key", idempotencyKey), zap.String("path", c.Request.URL.Path))
			c.Header("Idempotent-Replayed", "true")
			c.Data(existing.StatusCode, "application/json; charset=utf-8", existing.Response)
			c.Abort()
			return
		}

		recorder := &responseRecorder{ResponseWriter: c.Writer, body: &bytes.Buffer{}}
		c.Writer = recorder
		c.Next()

		// Server-side failures may succeed on retry, so they are not pinned
		status := recorder.Status()
		if status >= http.StatusInternalServerError {
			return
		}
		record := &domain.IdempotencyRecord{
			Key:         idempotencyKey,
			Shop:        shop,
			RequestHash: requestHash,
			StatusCode:  status,
			Response:    recorder.body.Bytes(),
		}
		if err := repos.IdempotencyKey.Create(c.Request.Context(), record); err != nil {
			logger.Warn("Failed to store idempotency key", zap.String("key", idempotencyKey), zap.Error(err))
		}
	}
}
