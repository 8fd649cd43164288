package middleware

import "github.com/gin-gonic/gin"

// apiSecurityHeaders are sent with every response. The store only serves JSON, so nothing
// may be framed, sniffed, cached or loaded as a sub-resource.
var apiSecurityHeaders = [...][2]string{
	{"Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'"},
	{"X-Frame-Options", "DENY"},
	{"X-Content-Type-Options", "nosniff"},
	{"Referrer-Policy", "no-referrer"},
	{"Cache-Control", "no-store"},
}

// SecurityHeaders sets the hardening headers before the handler runs so that error
// envelopes carry them too.
func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range apiSecurityHeaders {
			c.Header(h[0], h[1])
		}
		c.Next()
	}
}
