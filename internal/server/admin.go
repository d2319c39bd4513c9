package server

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Zachkp/folio/internal/logging"
	"github.com/Zachkp/folio/internal/tracking"
)

const adminCookie = "admin_token"

func (s *Server) adminEnabled() bool {
	return s.Config.Admin.Password != ""
}

func (s *Server) adminAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(adminCookie)
		if err != nil || subtle.ConstantTimeCompare([]byte(token), []byte(s.AdminToken)) != 1 {
			c.Redirect(http.StatusFound, "/admin/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

func (s *Server) setupAdminRoutes(r *gin.Engine) {
	r.GET("/admin/login", func(c *gin.Context) {
		if !s.adminEnabled() {
			c.JSON(http.StatusNotFound, gin.H{"error": "admin area disabled"})
			return
		}
		c.HTML(http.StatusOK, "admin-login.html", gin.H{})
	})

	r.POST("/admin/login", func(c *gin.Context) {
		if !s.adminEnabled() {
			c.JSON(http.StatusNotFound, gin.H{"error": "admin area disabled"})
			return
		}
		client := logging.HashIP(c.ClientIP(), s.Salt)
		user := []byte(c.PostForm("username"))
		pass := []byte(c.PostForm("password"))
		userOK := subtle.ConstantTimeCompare(user, []byte(s.Config.Admin.Username)) == 1
		passOK := subtle.ConstantTimeCompare(pass, []byte(s.Config.Admin.Password)) == 1
		if !userOK || !passOK {
			s.Logger.Warn("failed admin login attempt", zap.String("client", client))
			c.HTML(http.StatusUnauthorized, "admin-login.html", gin.H{"error": "Invalid credentials"})
			return
		}

		c.SetCookie(adminCookie, s.AdminToken, 3600*24, "/admin", "", false, true)
		s.Logger.Info("admin login successful", zap.String("client", client))
		c.Redirect(http.StatusFound, "/admin/dashboard")
	})

	r.GET("/admin/logout", func(c *gin.Context) {
		c.SetCookie(adminCookie, "", -1, "/admin", "", false, true)
		c.Redirect(http.StatusFound, "/admin/login")
	})

	admin := r.Group("/admin")
	admin.Use(s.adminAuthMiddleware())

	admin.GET("/dashboard", func(c *gin.Context) {
		if s.Tracker == nil {
			c.HTML(http.StatusServiceUnavailable, "admin-error.html", gin.H{"error": "Visitor tracking is disabled"})
			return
		}
		stats, err := s.Tracker.Stats(c.Request.Context())
		if err != nil {
			s.Logger.Error("error loading admin stats", zap.Error(err))
			c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{"error": "Failed to load statistics"})
			return
		}
		c.HTML(http.StatusOK, "admin-dashboard.html", gin.H{"stats": stats})
	})

	admin.GET("/visitors", func(c *gin.Context) {
		if s.Tracker == nil {
			c.HTML(http.StatusServiceUnavailable, "admin-error.html", gin.H{"error": "Visitor tracking is disabled"})
			return
		}
		visitors, err := s.Tracker.Recent(c.Request.Context(), tracking.VisitorPageLimit)
		if err != nil {
			s.Logger.Error("error loading visitors", zap.Error(err))
			c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{"error": "Failed to load visitors"})
			return
		}
		c.HTML(http.StatusOK, "admin-visitors.html", gin.H{"visitors": visitors})
	})

	admin.GET("/export/stats", func(c *gin.Context) {
		if s.Tracker == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "visitor tracking disabled"})
			return
		}
		stats, err := s.Tracker.Stats(c.Request.Context())
		if err != nil {
			s.Logger.Error("error exporting admin stats", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load statistics"})
			return
		}
		c.Header("Content-Disposition", "attachment; filename=admin-stats.json")
		s.Logger.Info("admin stats exported", zap.String("client", logging.HashIP(c.ClientIP(), s.Salt)))
		c.IndentedJSON(http.StatusOK, stats)
	})

	admin.GET("/api/stats", func(c *gin.Context) {
		if s.Tracker == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "visitor tracking disabled"})
			return
		}
		stats, err := s.Tracker.Stats(c.Request.Context())
		if err != nil {
			s.Logger.Error("error loading admin stats", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load statistics"})
			return
		}
		c.JSON(http.StatusOK, stats)
	})

	admin.POST("/api/cleanup", func(c *gin.Context) {
		if s.Tracker == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "visitor tracking disabled"})
			return
		}
		removed, err := s.Tracker.Cleanup(c.Request.Context())
		if err != nil {
			s.Logger.Error("privacy cleanup failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "cleanup failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"removed": removed})
	})
}
