package twin

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/s0up4200/petstore/petstore"
)

const (
	serviceName     = "petstore-twin"
	shutdownTimeout = 10 * time.Second
	requestLogSize  = 200
)

// Server is an in-memory replica of the pet-store API
type Server struct {
	store  *Store
	apiKey string
	logger zerolog.Logger
	router *gin.Engine

	logMu    sync.Mutex
	requests []RequestEntry
}

// RequestEntry records one request served under /v2
type RequestEntry struct {
	Time     time.Time     `json:"time"`
	Method   string        `json:"method"`
	Path     string        `json:"path"`
	Status   int           `json:"status"`
	Duration time.Duration `json:"duration"`
}

// Option configures a Server
type Option func(*Server)

// WithAPIKey makes every /v2 request require a matching api_key header
func WithAPIKey(key string) Option {
	return func(s *Server) {
		s.apiKey = key
	}
}

// WithLogger sets the logger used for request logging
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithStore replaces the default empty store
func WithStore(store *Store) Option {
	return func(s *Server) {
		if store != nil {
			s.store = store
		}
	}
}

// New creates a twin server
func New(opts ...Option) *Server {
	s := &Server{
		store:  NewStore(nil),
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	router := gin.New()
	router.Use(gin.Recovery(), otelgin.Middleware(serviceName))

	api := router.Group("/v2", s.recordRequests(), s.requireAPIKey())
	api.POST("/pet", s.addPet)
	api.PUT("/pet", s.updatePet)
	api.GET("/pet/:petId", s.getPet)
	api.DELETE("/pet/:petId", s.deletePet)
	api.POST("/store/order", s.placeOrder)
	api.GET("/store/order/:orderId", s.getOrder)
	api.DELETE("/store/order/:orderId", s.deleteOrder)

	admin := router.Group("/admin")
	admin.GET("/health", s.health)
	admin.POST("/reset", s.reset)
	admin.GET("/state", s.getState)
	admin.POST("/state", s.loadState)
	admin.GET("/requests", s.listRequests)

	s.router = router
	return s
}

// Handler returns the HTTP handler serving the twin
func (s *Server) Handler() http.Handler {
	return s.router
}

// Store returns the backing store
func (s *Server) Store() *Store {
	return s.store
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", ln.Addr().String()).Msg("Petstore twin listening")
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info().Msg("Shutting down petstore twin")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down twin: %w", err)
	}
	return nil
}

func (s *Server) requireAPIKey() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.apiKey != "" && c.GetHeader("api_key") != s.apiKey {
			respond(c, http.StatusUnauthorized, "error", "Unauthorized")
			c.Abort()
			return
		}
		c.Next()
	}
}

func (s *Server) recordRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		entry := RequestEntry{
			Time:     start,
			Method:   c.Request.Method,
			Path:     c.Request.URL.Path,
			Status:   c.Writer.Status(),
			Duration: time.Since(start),
		}
		s.logger.Debug().
			Str("method", entry.Method).
			Str("path", entry.Path).
			Int("status", entry.Status).
			Dur("elapsed", entry.Duration).
			Msg("Served twin request")

		s.logMu.Lock()
		s.requests = append(s.requests, entry)
		if len(s.requests) > requestLogSize {
			s.requests = s.requests[len(s.requests)-requestLogSize:]
		}
		s.logMu.Unlock()
	}
}

// Post /v2/pet
func (s *Server) addPet(c *gin.Context) {
	var pet petstore.Pet
	if err := c.ShouldBindJSON(&pet); err != nil {
		respond(c, http.StatusMethodNotAllowed, "unknown", "Invalid input")
		return
	}
	if err := petstore.ValidatePet(&pet); err != nil {
		respond(c, http.StatusMethodNotAllowed, "unknown", "Invalid input")
		return
	}
	saved, err := s.store.SavePet(&pet)
	if err != nil {
		respond(c, http.StatusInternalServerError, "unknown", err.Error())
		return
	}
	c.JSON(http.StatusOK, saved)
}

// Put /v2/pet
func (s *Server) updatePet(c *gin.Context) {
	var pet petstore.Pet
	if err := c.ShouldBindJSON(&pet); err != nil {
		respond(c, http.StatusMethodNotAllowed, "unknown", "Validation exception")
		return
	}
	if pet.ID == nil || *pet.ID <= 0 {
		respond(c, http.StatusBadRequest, "error", "Invalid ID supplied")
		return
	}
	if err := petstore.ValidatePet(&pet); err != nil {
		respond(c, http.StatusMethodNotAllowed, "unknown", "Validation exception")
		return
	}
	updated, ok := s.store.ReplacePet(&pet)
	if !ok {
		respond(c, http.StatusNotFound, "error", "Pet not found")
		return
	}
	c.JSON(http.StatusOK, updated)
}

// Get /v2/pet/:petId
func (s *Server) getPet(c *gin.Context) {
	id, ok := parseIDParam(c, "petId")
	if !ok {
		return
	}
	pet, found := s.store.Pet(id)
	if !found {
		respond(c, http.StatusNotFound, "error", "Pet not found")
		return
	}
	c.JSON(http.StatusOK, pet)
}

// Delete /v2/pet/:petId
func (s *Server) deletePet(c *gin.Context) {
	id, ok := parseIDParam(c, "petId")
	if !ok {
		return
	}
	if !s.store.DeletePet(id) {
		respond(c, http.StatusNotFound, "error", "Pet not found")
		return
	}
	respond(c, http.StatusOK, "unknown", strconv.FormatInt(id, 10))
}

// Post /v2/store/order
func (s *Server) placeOrder(c *gin.Context) {
	var order petstore.Order
	if err := c.ShouldBindJSON(&order); err != nil {
		respond(c, http.StatusBadRequest, "unknown", "Invalid Order")
		return
	}
	saved, err := s.store.SaveOrder(&order)
	if err != nil {
		respond(c, http.StatusInternalServerError, "unknown", err.Error())
		return
	}
	c.JSON(http.StatusOK, saved)
}

// Get /v2/store/order/:orderId
func (s *Server) getOrder(c *gin.Context) {
	id, ok := parseIDParam(c, "orderId")
	if !ok {
		return
	}
	order, found := s.store.Order(id)
	if !found {
		respond(c, http.StatusNotFound, "error", "Order not found")
		return
	}
	c.JSON(http.StatusOK, order)
}

// Delete /v2/store/order/:orderId
func (s *Server) deleteOrder(c *gin.Context) {
	id, ok := parseIDParam(c, "orderId")
	if !ok {
		return
	}
	if !s.store.DeleteOrder(id) {
		respond(c, http.StatusNotFound, "error", "Order not found")
		return
	}
	respond(c, http.StatusOK, "unknown", strconv.FormatInt(id, 10))
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) reset(c *gin.Context) {
	s.store.Reset()
	s.logMu.Lock()
	s.requests = nil
	s.logMu.Unlock()
	c.JSON(http.StatusOK, gin.H{"status": "reset"})
}

func (s *Server) getState(c *gin.Context) {
	c.JSON(http.StatusOK, s.store.Snapshot())
}

func (s *Server) loadState(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read body: " + err.Error()})
		return
	}
	if err := s.store.LoadState(body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to load state: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "loaded"})
}

func (s *Server) listRequests(c *gin.Context) {
	s.logMu.Lock()
	entries := append([]RequestEntry{}, s.requests...)
	s.logMu.Unlock()
	c.JSON(http.StatusOK, entries)
}

func parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(c.Param(name)), 10, 64)
	if err != nil || id <= 0 {
		respond(c, http.StatusBadRequest, "error", "Invalid ID supplied")
		return 0, false
	}
	return id, true
}

func respond(c *gin.Context, status int, kind, message string) {
	code := int32(status)
	c.JSON(status, petstore.APIResponse{Code: &code, Type: kind, Message: message})
}
