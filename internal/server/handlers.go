package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"cosmic-portfolio/internal/history"
	"cosmic-portfolio/internal/knowledge"
	"cosmic-portfolio/internal/relay"
	"cosmic-portfolio/internal/widget"
)

// backendError is the only error text /api/chat ever returns on failure.
const backendError = "AI backend error"

type assistantResponse struct {
	Reply     string `json:"reply"`
	HTML      string `json:"html"`
	Directive string `json:"directive"`
}

type createWidgetRequest struct {
	Page string `json:"page"`
	Path string `json:"path"`
	Mode string `json:"mode"`
}

type messageRequest struct {
	Text string `json:"text"`
}

type widgetView struct {
	ID      string         `json:"id"`
	Page    widget.Page    `json:"page"`
	Mode    widget.Mode    `json:"mode"`
	State   string         `json:"state"`
	Pending int            `json:"pending"`
	Turns   []history.Turn `json:"turns"`
}

func viewOf(c *widget.Controller) widgetView {
	return widgetView{
		ID:      c.ID(),
		Page:    c.Page(),
		Mode:    c.Mode(),
		State:   c.State().String(),
		Pending: c.Pending(),
		Turns:   c.Turns(),
	}
}

func errorJSON(c *gin.Context, code int, msg string) {
	c.AbortWithStatusJSON(code, gin.H{"error": msg})
}

func (s *Server) handleHealth(c *gin.Context) {
	sessions := 0
	if s.widgets != nil {
		sessions = s.widgets.Len()
	}
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"relay":    s.relay != nil,
		"sessions": sessions,
	})
}

// handleChat is the relay contract: {message} -> {reply} or 500 {error}.
func (s *Server) handleChat(c *gin.Context) {
	var req relay.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorJSON(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if s.relay == nil {
		s.logger.Warn("chat requested but no relay is configured")
		errorJSON(c, http.StatusInternalServerError, backendError)
		return
	}
	reply, err := s.relay.Reply(c.Request.Context(), req.Message)
	if err != nil {
		s.logger.Error("relay failed", zap.Error(err))
		errorJSON(c, http.StatusInternalServerError, backendError)
		return
	}
	c.JSON(http.StatusOK, relay.ChatResponse{Reply: reply})
}

func (s *Server) handleAssistant(c *gin.Context) {
	var req relay.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorJSON(c, http.StatusBadRequest, "invalid request body")
		return
	}
	r := s.engine.Reply(req.Message)
	c.JSON(http.StatusOK, assistantResponse{Reply: r.Text, HTML: r.HTML, Directive: r.Directive.ID()})
}

func (s *Server) handleProjects(c *gin.Context) {
	kb := s.engine.Knowledge()
	raw := c.Query("category")
	if raw == "" {
		c.JSON(http.StatusOK, gin.H{"projects": kb.Projects()})
		return
	}
	cat, err := knowledge.ParseCategory(raw)
	if err != nil {
		errorJSON(c, http.StatusBadRequest, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"category": cat, "projects": kb.ProjectsByCategory(cat)})
}

func (s *Server) handleProjectSearch(c *gin.Context) {
	p, ok := s.engine.Knowledge().FindProjectByName(c.Query("q"))
	if !ok {
		errorJSON(c, http.StatusNotFound, "project not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"project": p})
}

func (s *Server) handleWidgetCreate(c *gin.Context) {
	var req createWidgetRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			errorJSON(c, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	page := widget.PageFromPath(req.Path)
	if req.Page != "" {
		p, ok := widget.ParsePage(req.Page)
		if !ok {
			errorJSON(c, http.StatusBadRequest, "unknown page "+req.Page)
			return
		}
		page = p
	}
	mode, ok := widget.ParseMode(req.Mode)
	if !ok {
		errorJSON(c, http.StatusBadRequest, "unknown mode "+req.Mode)
		return
	}

	w := s.widgets.Create(page, mode)
	c.JSON(http.StatusCreated, viewOf(w))
}

func (s *Server) withWidget(h func(*gin.Context, *widget.Controller)) gin.HandlerFunc {
	return func(c *gin.Context) {
		w, err := s.widgets.Get(c.Param("id"))
		if err != nil {
			errorJSON(c, http.StatusNotFound, err.Error())
			return
		}
		h(c, w)
	}
}

func (s *Server) handleWidgetGet(c *gin.Context, w *widget.Controller) {
	c.JSON(http.StatusOK, viewOf(w))
}

func (s *Server) handleWidgetOpen(c *gin.Context, w *widget.Controller) {
	if err := w.Open(); err != nil {
		widgetError(c, err)
		return
	}
	c.JSON(http.StatusOK, viewOf(w))
}

func (s *Server) handleWidgetClose(c *gin.Context, w *widget.Controller) {
	if err := w.Close(); err != nil {
		widgetError(c, err)
		return
	}
	c.JSON(http.StatusOK, viewOf(w))
}

func (s *Server) handleWidgetMessage(c *gin.Context, w *widget.Controller) {
	var req messageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorJSON(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := w.Submit(req.Text); err != nil {
		widgetError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, viewOf(w))
}

func (s *Server) handleWidgetQuick(c *gin.Context, w *widget.Controller) {
	if err := w.QuickAction(widget.Action(c.Param("action"))); err != nil {
		widgetError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, viewOf(w))
}

func (s *Server) handleWidgetDelete(c *gin.Context) {
	if err := s.widgets.Remove(c.Param("id")); err != nil {
		errorJSON(c, http.StatusNotFound, err.Error())
		return
	}
	c.Status(http.StatusNoContent)
}

func widgetError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, widget.ErrEmptyMessage), errors.Is(err, widget.ErrUnknownAction):
		errorJSON(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, widget.ErrWidgetClosed):
		errorJSON(c, http.StatusConflict, err.Error())
	case errors.Is(err, widget.ErrSessionClosed):
		errorJSON(c, http.StatusGone, err.Error())
	default:
		errorJSON(c, http.StatusInternalServerError, err.Error())
	}
}
