package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	obscontext "github.com/kolahope/kolahope/internal/observability/context"
)

const (
	// HeaderUserID carries the caller identity asserted by the fronting
	// auth layer. The backend trusts it only for role lookups; requests
	// without it are anonymous.
	HeaderUserID = "X-User-ID"

	contextUserIDKey = "user_id"
)

func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Headers", "authorization, content-type, x-request-id, x-user-id")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// RequireRole gates admin routes on a role held by the caller.
func (s *Server) RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := strings.TrimSpace(c.GetHeader(HeaderUserID))
		if userID == "" {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		ok, err := s.roleSvc.HasRole(c.Request.Context(), userID, role)
		if err != nil {
			AbortWithError(c, err)
			return
		}
		if !ok {
			AbortWithError(c, ErrForbidden)
			return
		}

		c.Set(contextUserIDKey, userID)
		ctx := obscontext.WithActor(c.Request.Context(), "user", userID)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// CheckoutRateLimit throttles checkout initialize/verify per client IP.
func (s *Server) CheckoutRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, err := s.limiter.AllowCheckout(c.Request.Context(), c.ClientIP())
		if err != nil {
			// Limiter trouble must not block payments.
			s.log.Warn("checkout rate limiter unavailable")
			c.Next()
			return
		}
		if !allowed {
			AbortWithError(c, ErrRateLimited)
			return
		}
		c.Next()
	}
}

// LeadRateLimit throttles the public form submissions per client IP.
func (s *Server) LeadRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, err := s.limiter.AllowLead(c.Request.Context(), c.ClientIP())
		if err != nil {
			s.log.Warn("lead rate limiter unavailable")
			c.Next()
			return
		}
		if !allowed {
			AbortWithError(c, ErrRateLimited)
			return
		}
		c.Next()
	}
}
