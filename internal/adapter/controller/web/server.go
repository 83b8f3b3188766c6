// Package web exposes decoding over HTTP.
package web

import (
	"bufio"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/YoshitsuguKoike/fixinspect/internal/adapter/presenter"
	"github.com/YoshitsuguKoike/fixinspect/internal/application/dto"
	"github.com/YoshitsuguKoike/fixinspect/internal/application/port/input"
	"github.com/YoshitsuguKoike/fixinspect/internal/application/usecase/inspect"
	"github.com/YoshitsuguKoike/fixinspect/internal/buildinfo"
	"github.com/YoshitsuguKoike/fixinspect/internal/domain/model/fix"
	"github.com/YoshitsuguKoike/fixinspect/internal/validator/message"
)

const (
	// MaxMessages caps the batch size of a single request
	MaxMessages = 10000
	// DefaultMaxBodyBytes caps the request body when Config.MaxBodyBytes is unset
	DefaultMaxBodyBytes int64 = 8 << 20
)

// Metrics is what the server needs from the metrics recorder
type Metrics interface {
	HTTPMetrics
	Handler() http.Handler
}

// Config wires the server's collaborators
type Config struct {
	Inspect     input.InspectUseCase
	Dictionary  fix.Dictionary
	Metrics     Metrics
	Logger      zerolog.Logger
	CORSOrigins []string
	Archive     bool // archive decoded messages by default
	// MaxBodyBytes limits request bodies; zero means DefaultMaxBodyBytes
	MaxBodyBytes int64
}

// Server serves the decode API
type Server struct {
	cfg      Config
	router   *gin.Engine
	appeared time.Time
}

// DecodeRequest is the JSON body of POST /v1/decode and /v1/verify
type DecodeRequest struct {
	Messages []string `json:"messages"`
	Archive  *bool    `json:"archive,omitempty"`
}

// NewServer builds the gin engine and registers all routes
func NewServer(cfg Config) *Server {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger(cfg.Logger))
	if cfg.Metrics != nil {
		r.Use(RequestMetrics(cfg.Metrics))
	}
	if len(cfg.CORSOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins: cfg.CORSOrigins,
			AllowMethods: []string{http.MethodGet, http.MethodPost},
			AllowHeaders: []string{"Origin", "Content-Type"},
			MaxAge:       12 * time.Hour,
		}))
	}
	_ = r.SetTrustedProxies([]string{"127.0.0.1", "::1"})

	s := &Server{cfg: cfg, router: r, appeared: time.Now()}
	s.registerRoutes()
	return s
}

// Handler returns the HTTP handler
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) registerRoutes() {
	s.router.GET("/healthz", s.health)
	if s.cfg.Metrics != nil {
		s.router.GET("/metrics", gin.WrapH(s.cfg.Metrics.Handler()))
	}

	v1 := s.router.Group("/v1")
	v1.POST("/decode", s.decode)
	v1.POST("/verify", s.verify)
	v1.GET("/fields/:key", s.field)
}

func (s *Server) health(c *gin.Context) {
	body := gin.H{
		"status":  "ok",
		"uptime":  time.Since(s.appeared).String(),
		"version": buildinfo.GetVersion(),
	}
	if info, ok := s.cfg.Dictionary.(interface {
		Version() string
		Len() int
	}); ok {
		body["dictionary"] = info.Version()
		body["fields"] = info.Len()
	}
	c.JSON(http.StatusOK, body)
}

func (s *Server) decode(c *gin.Context) {
	out, ok := s.run(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, presenter.NewInspectReport(out))
}

func (s *Server) verify(c *gin.Context) {
	out, ok := s.run(c)
	if !ok {
		return
	}
	v := message.NewValidator("http", s.cfg.Inspect.Delimiter())
	c.JSON(http.StatusOK, v.ValidateItems(out.Items))
}

func (s *Server) field(c *gin.Context) {
	key := c.Param("key")
	def, ok := fix.Lookup(s.cfg.Dictionary, key)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown field " + key})
		return
	}
	c.JSON(http.StatusOK, dto.ToFieldDefinitionDTO(def, s.cfg.Dictionary))
}

// run parses the request body and executes the inspect use case.
// It writes the error response itself and reports false on failure.
func (s *Server) run(c *gin.Context) (*dto.InspectOutput, bool) {
	limit := s.cfg.MaxBodyBytes
	if limit <= 0 {
		limit = DefaultMaxBodyBytes
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)

	req, err := parseRequest(c)
	if err != nil {
		status := http.StatusBadRequest
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return nil, false
	}
	archive := s.cfg.Archive
	if req.Archive != nil {
		archive = *req.Archive
	}

	input := &dto.InspectInput{Source: "http", Archive: archive}
	for i, m := range req.Messages {
		input.Messages = append(input.Messages, dto.MessageInput{Line: i + 1, Text: m})
	}

	out, err := s.cfg.Inspect.Execute(c.Request.Context(), input)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, inspect.ErrArchiveUnavailable) {
			status = http.StatusConflict
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return nil, false
	}
	return out, true
}

// parseRequest accepts either a JSON DecodeRequest or a text body with one message per line
func parseRequest(c *gin.Context) (*DecodeRequest, error) {
	req := &DecodeRequest{}
	if strings.HasPrefix(c.ContentType(), "application/json") {
		if err := c.ShouldBindJSON(req); err != nil {
			return nil, err
		}
	} else {
		sc := bufio.NewScanner(c.Request.Body)
		sc.Buffer(make([]byte, 64*1024), 1024*1024)
		for sc.Scan() {
			if line := strings.TrimSpace(sc.Text()); line != "" {
				req.Messages = append(req.Messages, line)
			}
		}
		if err := sc.Err(); err != nil {
			return nil, err
		}
	}

	var kept []string
	for _, m := range req.Messages {
		if strings.TrimSpace(m) != "" {
			kept = append(kept, m)
		}
	}
	req.Messages = kept

	switch {
	case len(req.Messages) == 0:
		return nil, errors.New("no messages in request")
	case len(req.Messages) > MaxMessages:
		return nil, errors.New("too many messages in request")
	}
	return req, nil
}
