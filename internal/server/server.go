// Package server exposes the portfolio over HTTP: the HTML page, the JSON
// API, the contact form and a small admin area for visitor statistics.
package server

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Zachkp/folio/internal/config"
	"github.com/Zachkp/folio/internal/contact"
	"github.com/Zachkp/folio/internal/content"
	"github.com/Zachkp/folio/internal/contrib"
	"github.com/Zachkp/folio/internal/logging"
	"github.com/Zachkp/folio/internal/sources"
	"github.com/Zachkp/folio/internal/staticapi"
	"github.com/Zachkp/folio/internal/tracking"
)

//go:embed templates/*.html
var templateFS embed.FS

// LiveSource is satisfied by *sources.Aggregator.
type LiveSource interface {
	Snapshot(ctx context.Context) sources.Snapshot
}

type Deps struct {
	Config  config.Config
	Data    *content.Dataset
	Live    LiveSource
	Tracker *tracking.Store
	Mailer  *contact.Mailer
	Logger  *zap.Logger
	// Salt hashes client IPs in request logs.
	Salt string
	// AdminToken authenticates the admin cookie.
	AdminToken string
}

type Server struct {
	Deps
	graph contrib.Graph
}

func New(deps Deps) (*Server, error) {
	if deps.Data == nil {
		return nil, errors.New("server: dataset is required")
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.AdminToken == "" {
		token, err := tracking.NewSalt()
		if err != nil {
			return nil, err
		}
		deps.AdminToken = token
	}
	return &Server{
		Deps:  deps,
		graph: contrib.BuildGraph(deps.Data.GitHubActivity()),
	}, nil
}

func (s *Server) templates() *template.Template {
	funcs := template.FuncMap{"levelLabel": contrib.LevelLabel}
	return template.Must(template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html"))
}

func (s *Server) Engine() *gin.Engine {
	r := gin.New()
	r.Use(logging.RequestID(), logging.GinLogger(s.Logger, s.Salt), logging.GinRecovery(s.Logger))
	if s.Tracker != nil {
		r.Use(s.Tracker.Middleware())
	}
	r.SetHTMLTemplate(s.templates())

	r.GET("/", s.index)
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.POST("/contact", s.contactForm)
	r.GET("/live", s.liveFragment)
	r.GET("/privacy", s.privacy)

	api := r.Group("/api")
	for _, ep := range staticapi.Endpoints(s.Data) {
		if ep.Name == "skills" || ep.Name == "contributions" {
			continue
		}
		api.GET("/"+ep.Name, func(c *gin.Context) {
			c.JSON(http.StatusOK, ep.Value())
		})
	}
	api.GET("/skills", s.skills)
	api.GET("/contributions", func(c *gin.Context) {
		c.JSON(http.StatusOK, s.graph)
	})
	api.GET("/live", s.live)
	api.POST("/contact", s.contactJSON)

	s.setupAdminRoutes(r)
	return r
}

func (s *Server) index(c *gin.Context) {
	d := s.Data
	c.HTML(http.StatusOK, "index.html", gin.H{
		"profile":  d.Profile(),
		"bio":      d.BioHTML(),
		"stats":    d.Stats(),
		"projects": d.Projects(),
		"tags":     d.SkillsByCategory("tags"),
		"theses":   d.SkillsByCategory("thesis"),
		"values":   d.SkillsByCategory("value"),
		"tech":     d.SkillsByCategory("tech"),
		"videos":   d.Videos(),
		"posts":    d.Posts(),
		"articles": d.Articles(),
		"graph":    s.graph,
	})
}

func (s *Server) skills(c *gin.Context) {
	if category := c.Query("category"); category != "" {
		c.JSON(http.StatusOK, s.Data.SkillsByCategory(category))
		return
	}
	c.JSON(http.StatusOK, s.Data.Skills())
}

func (s *Server) snapshot(c *gin.Context) sources.Snapshot {
	if s.Live == nil {
		return sources.Snapshot{
			Repos:   []sources.Repo{},
			Events:  []sources.Event{},
			Channel: sources.Channel{Posts: []sources.ChannelPost{}},
		}
	}
	return s.Live.Snapshot(c.Request.Context())
}

func (s *Server) live(c *gin.Context) {
	c.JSON(http.StatusOK, s.snapshot(c))
}

// liveFragment is loaded by htmx once the page is up, so slow upstreams never
// delay the first render.
func (s *Server) liveFragment(c *gin.Context) {
	c.HTML(http.StatusOK, "live.html", gin.H{"snap": s.snapshot(c)})
}

func (s *Server) privacy(c *gin.Context) {
	c.HTML(http.StatusOK, "privacy.html", gin.H{
		"title":           "Privacy Policy",
		"tracking":        s.Tracker != nil,
		"retentionMonths": tracking.RetentionMonths,
	})
}
