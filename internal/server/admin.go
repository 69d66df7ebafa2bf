package server

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/folio/internal/analytics"
)

const (
	adminCookie    = "admin_token"
	adminCookieAge = 24 * time.Hour
	trackTimeout   = 5 * time.Second
)

// untrackedPrefixes are paths visitor tracking ignores.
var untrackedPrefixes = []string{
	"/static/", "/components/", "/admin/", "/favicon", "/privacy", "/healthz",
}

func newToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// trackVisitors records page views with hashed IPs in the background.
// Visitors sending DNT are not tracked, and neither are HTMX partials.
func (s *Server) trackVisitors() gin.HandlerFunc {
	return func(c *gin.Context) {
		p := c.Request.URL.Path
		if c.Request.Method != http.MethodGet || c.GetHeader("DNT") == "1" || isHTMX(c) {
			c.Next()
			return
		}
		for _, prefix := range untrackedPrefixes {
			if strings.HasPrefix(p, prefix) {
				c.Next()
				return
			}
		}

		visit := analytics.Visit{IP: c.ClientIP(), UserAgent: c.GetHeader("User-Agent"), Path: p}
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			ctx, cancel := context.WithTimeout(context.Background(), trackTimeout)
			defer cancel()
			if err := s.analytics.Track(ctx, visit); err != nil {
				s.logger.Error("recording visitor", "error", err)
			}
		}()
		c.Next()
	}
}

func (s *Server) adminAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(adminCookie)
		if err != nil || subtle.ConstantTimeCompare([]byte(token), []byte(s.adminToken)) != 1 {
			c.Redirect(http.StatusFound, "/admin/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

func (s *Server) checkCredentials(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.adminCfg.Username))
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.adminCfg.Password))
	return userOK&passOK == 1
}

func (s *Server) setupAdminRoutes(r *gin.Engine) {
	if s.assets.Templates == nil {
		return
	}
	r.GET("/privacy", func(c *gin.Context) {
		c.HTML(http.StatusOK, "privacy.html", gin.H{
			"title":         "Privacy Policy",
			"tracking":      s.analytics != nil,
			"retentionDays": int(s.retention().Hours() / 24),
		})
	})

	if !s.adminEnabled() {
		return
	}

	r.GET("/admin/login", func(c *gin.Context) {
		c.HTML(http.StatusOK, "admin-login.html", gin.H{"title": "Admin Login"})
	})

	r.POST("/admin/login", func(c *gin.Context) {
		visitor := s.analytics.HashIP(c.ClientIP())
		if !s.checkCredentials(c.PostForm("username"), c.PostForm("password")) {
			s.logger.Warn("failed admin login", "visitor", visitor)
			c.HTML(http.StatusUnauthorized, "admin-login.html", gin.H{
				"title": "Admin Login",
				"error": "Invalid credentials",
			})
			return
		}
		c.SetSameSite(http.SameSiteStrictMode)
		c.SetCookie(adminCookie, s.adminToken, int(adminCookieAge.Seconds()), "/admin", "", false, true)
		s.logger.Info("admin login", "visitor", visitor)
		c.Redirect(http.StatusFound, "/admin/dashboard")
	})

	r.GET("/admin/logout", func(c *gin.Context) {
		c.SetCookie(adminCookie, "", -1, "/admin", "", false, true)
		c.Redirect(http.StatusFound, "/admin/login")
	})

	admin := r.Group("/admin")
	admin.Use(s.adminAuth())

	admin.GET("/dashboard", func(c *gin.Context) {
		stats, err := s.analytics.Stats(c.Request.Context())
		if err != nil {
			s.adminError(c, "Failed to load statistics", err)
			return
		}
		c.HTML(http.StatusOK, "admin-dashboard.html", gin.H{"title": "Dashboard", "stats": stats})
	})

	admin.GET("/api/stats", func(c *gin.Context) {
		stats, err := s.analytics.Stats(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, stats)
	})

	admin.GET("/visitors", func(c *gin.Context) {
		visitors, err := s.analytics.Visitors(c.Request.Context(), 200)
		if err != nil {
			s.adminError(c, "Failed to load visitors", err)
			return
		}
		c.HTML(http.StatusOK, "admin-visitors.html", gin.H{"title": "Visitors", "visitors": visitors})
	})

	admin.GET("/messages", func(c *gin.Context) {
		msgs, err := s.analytics.Messages(c.Request.Context(), 200)
		if err != nil {
			s.adminError(c, "Failed to load messages", err)
			return
		}
		c.HTML(http.StatusOK, "admin-messages.html", gin.H{"title": "Messages", "messages": msgs})
	})

	admin.DELETE("/messages/:id", func(c *gin.Context) {
		id := c.Param("id")
		err := s.analytics.DeleteMessage(c.Request.Context(), id)
		switch {
		case errors.Is(err, analytics.ErrMessageNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Message not found"})
		case err != nil:
			s.logger.Error("deleting message", "id", id, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete message"})
		default:
			c.JSON(http.StatusOK, gin.H{"message": "Message deleted"})
		}
	})

	admin.POST("/privacy/cleanup", func(c *gin.Context) {
		s.cleanupVisitors(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{"message": "Privacy cleanup complete"})
	})

	admin.GET("/export/stats", func(c *gin.Context) {
		stats, err := s.analytics.Stats(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Header("Content-Disposition", "attachment; filename=admin-stats.json")
		c.JSON(http.StatusOK, stats)
	})
}

func (s *Server) adminError(c *gin.Context, msg string, err error) {
	s.logger.Error(strings.ToLower(msg), "error", err)
	c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{"title": "Error", "error": msg})
}
