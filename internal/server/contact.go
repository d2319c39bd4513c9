package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Zachkp/folio/internal/contact"
)

func (s *Server) deliver(msg contact.Message) (int, string) {
	if s.Mailer == nil {
		return http.StatusServiceUnavailable, "Contact form is not available right now."
	}
	err := s.Mailer.Send(msg)
	switch {
	case err == nil:
		return http.StatusOK, "Thank you for your message! I'll get back to you soon."
	case errors.Is(err, contact.ErrInvalid):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, contact.ErrNotConfigured):
		s.Logger.Warn("contact form used without SMTP credentials")
		return http.StatusServiceUnavailable, "Contact form is not available right now."
	default:
		s.Logger.Error("contact delivery failed", zap.Error(err))
		return http.StatusBadGateway, "Sorry, there was an error sending your message. Please try again later."
	}
}

// contactForm answers the htmx form with an HTML fragment. htmx only swaps
// 2xx responses, so failures are reported with 200 as well.
func (s *Server) contactForm(c *gin.Context) {
	var msg contact.Message
	if err := c.ShouldBind(&msg); err != nil {
		c.HTML(http.StatusOK, "contact-error.html", gin.H{"error": "Please fill in every field."})
		return
	}
	status, text := s.deliver(msg)
	if status != http.StatusOK {
		c.HTML(http.StatusOK, "contact-error.html", gin.H{"error": text})
		return
	}
	c.HTML(http.StatusOK, "contact-success.html", gin.H{"success": text})
}

func (s *Server) contactJSON(c *gin.Context) {
	var msg contact.Message
	if err := c.ShouldBindJSON(&msg); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	status, text := s.deliver(msg)
	if status != http.StatusOK {
		c.JSON(status, gin.H{"error": text})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": text})
}
