package requestauth

import (
	"bytes"
	"io"
	"log/slog"
	"strconv"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	apperrors "github.com/allisson/signvault/internal/errors"
	"github.com/allisson/signvault/internal/httputil"
)

const (
	apiKeyHeader    = "x-api-key"
	signatureHeader = "x-signature"
	timestampHeader = "x-timestamp"
)

// Middleware validates the x-api-key/x-signature/x-timestamp headers of
// every wallet-plane request against the canonical message HMAC and stores
// the authenticated API key in request context.
//
// Returns:
//   - 401 Unauthorized: missing/malformed headers, unknown api key, or bad signature
//   - 500 Internal Server Error: storage or decryption failure
func Middleware(authenticator *Authenticator, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		apiKeyHeaderValue := c.GetHeader(apiKeyHeader)
		signature := c.GetHeader(signatureHeader)
		timestamp := c.GetHeader(timestampHeader)

		if apiKeyHeaderValue == "" || signature == "" || timestamp == "" {
			logger.Debug("authentication failed: missing required header")
			authenticator.metrics.RecordAuthenticationFailure(c.Request.Context(), "missing_header")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		apiKey, err := uuid.Parse(apiKeyHeaderValue)
		if err != nil {
			logger.Debug("authentication failed: malformed api key header")
			authenticator.metrics.RecordAuthenticationFailure(c.Request.Context(), "malformed_header")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		if _, err := strconv.ParseUint(timestamp, 10, 64); err != nil {
			logger.Debug("authentication failed: malformed timestamp header")
			authenticator.metrics.RecordAuthenticationFailure(c.Request.Context(), "malformed_header")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		bodyBytes, err := io.ReadAll(c.Request.Body)
		if err != nil {
			httputil.HandleErrorGin(c, apperrors.Wrap(err, "read request body"), logger)
			c.Abort()
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(bodyBytes))

		body := string(bodyBytes)
		if !utf8.Valid(bodyBytes) {
			body = ""
		}

		message := CanonicalMessage(timestamp, c.Request.Method, c.Request.URL.Path, c.Request.URL.RawQuery, body)

		if err := authenticator.Authenticate(c.Request.Context(), apiKey, message, signature); err != nil {
			logger.Debug("authentication failed", slog.Any("error", err))
			httputil.HandleErrorGin(c, err, logger)
			c.Abort()
			return
		}

		ctx := WithApiKey(c.Request.Context(), apiKey)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
