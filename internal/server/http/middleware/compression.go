package middleware

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type gzipBody struct {
	*gzip.Reader
	underlying io.Closer
}

func (b gzipBody) Close() error {
	if err := b.Reader.Close(); err != nil {
		_ = b.underlying.Close()
		return err
	}
	return b.underlying.Close()
}

// DecompressRequest transparently unwraps gzip encoded request bodies so
// handlers always see plain payloads.
func DecompressRequest() gin.HandlerFunc {
	return func(c *gin.Context) {
		encoding := c.GetHeader("Content-Encoding")
		if !strings.Contains(encoding, "gzip") {
			c.Next()
			return
		}

		reader, err := gzip.NewReader(c.Request.Body)
		if err != nil {
			c.AbortWithStatus(http.StatusBadRequest)
			return
		}

		c.Request.Body = gzipBody{Reader: reader, underlying: c.Request.Body}
		c.Request.Header.Del("Content-Encoding")
		c.Next()
	}
}
