// Package logging builds the zap logger used across folio and the gin
// middleware that writes one line per request.
package logging

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a production logger, or a development one in gin debug mode.
func New(mode string, verbose bool) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	if mode == gin.DebugMode {
		config = zap.NewDevelopmentConfig()
	}
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

// HashIP truncates a salted sha256 of ip so logs never carry raw addresses.
func HashIP(ip, salt string) string {
	sum := sha256.Sum256([]byte(ip + salt))
	return hex.EncodeToString(sum[:])[:16]
}

func GinLogger(logger *zap.Logger, salt string) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client", HashIP(c.ClientIP(), salt)),
		}
		if id := c.GetString(RequestIDKey); id != "" {
			fields = append(fields, zap.String("request_id", id))
		}
		if len(c.Errors) > 0 {
			logger.Warn("request completed with errors", append(fields, zap.String("errors", c.Errors.String()))...)
			return
		}
		logger.Debug("request", fields...)
	}
}

// GinRecovery turns panics into 500s and logs them.
func GinRecovery(logger *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Error("panic recovered",
			zap.String("path", c.Request.URL.Path),
			zap.Any("panic", recovered))
		c.AbortWithStatusJSON(500, gin.H{"error": "internal server error"})
	})
}
