package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/spf13/afero"

	"github.com/tmpstash/tmpstash/pkg"
	"github.com/tmpstash/tmpstash/pkg/logging"
	"github.com/tmpstash/tmpstash/pkg/messages"
	"github.com/tmpstash/tmpstash/pkg/storage"
	"github.com/tmpstash/tmpstash/pkg/ttl"
	"github.com/tmpstash/tmpstash/pkg/upload"
)

// HTTP server timeouts. There is no ReadTimeout: it would cover the
// entire request body, and an upload near the size cap can take minutes
// on a slow link. Only the header phase gets a deadline.
const (
	DefaultReadHeaderTimeout = 30 * time.Second
	DefaultWriteTimeout      = 300 * time.Second
	DefaultIdleTimeout       = 60 * time.Second
	DefaultShutdownTimeout   = 10 * time.Second
)

const contentTypeHTML = "text/html; charset=utf-8"

// Options configures the upload server.
type Options struct {
	HostIP         string
	Port           uint16
	Secret         string
	ScratchRoot    string
	MaxUploadSize  uint64
	TrustedProxies []string
}

// Server serves the upload form and the multipart ingestion endpoint.
type Server struct {
	fs         afero.Fs
	publisher  *upload.Publisher
	options    Options
	logger     *logging.Logger
	engine     *gin.Engine
	httpServer *http.Server
}

// New wires the gin engine, the routes, and the underlying HTTP server. The
// listener does not start until Run or Start is called.
func New(fs afero.Fs, store storage.ObjectStore, options Options, logger *logging.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type"}
	corsConfig.MaxAge = pkg.DefaultMaxAge
	engine.Use(cors.New(corsConfig))

	if len(options.TrustedProxies) > 0 {
		engine.ForwardedByClientIP = true
		if err := engine.SetTrustedProxies(options.TrustedProxies); err != nil {
			logger.Error("unable to set trusted proxies", "error", err)
		}
	}

	s := &Server{
		fs:        fs,
		publisher: upload.NewPublisher(store, fs, options.MaxUploadSize, logger),
		options:   options,
		logger:    logger,
		engine:    engine,
	}
	s.setupRoutes()

	s.httpServer = &http.Server{
		Addr:              options.HostIP + ":" + strconv.FormatUint(uint64(options.Port), 10),
		Handler:           engine,
		ReadHeaderTimeout: DefaultReadHeaderTimeout,
		WriteTimeout:      DefaultWriteTimeout,
		IdleTimeout:       DefaultIdleTimeout,
	}
	return s
}

func (s *Server) setupRoutes() {
	s.engine.GET("/", s.handleIndex)
	s.engine.POST("/upload", s.handleUpload)
}

// Addr returns the address the server listens on.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Start begins serving and blocks until the listener stops.
func (s *Server) Start() error {
	s.logger.Info("starting upload server", "address", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

// Run serves until ctx is cancelled, then shuts down gracefully. A clean
// shutdown returns nil.
func (s *Server) Run(ctx context.Context) error {
	errC := make(chan error, 1)
	go func() {
		if err := s.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errC <- err
		}
	}()

	select {
	case err := <-errC:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), DefaultShutdownTimeout)
	defer cancel()
	if err := s.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	s.logger.Info("upload server stopped")
	return nil
}

func (s *Server) handleIndex(c *gin.Context) {
	c.Data(http.StatusOK, contentTypeHTML, []byte(uploadFormHTML))
}

// handleUpload ingests one multipart submission: stage every part into
// scratch space, check the shared secret, apply the identifier, publish, and
// render the per-file results. Staged files are cleaned up whatever the
// outcome.
func (s *Server) handleUpload(c *gin.Context) {
	logger := s.logger.With("request_id", uuid.New().String())

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, pkg.DefaultMaxRequestBody)

	mr, err := c.Request.MultipartReader()
	if err != nil {
		logger.Error("rejecting non-multipart request", "error", err)
		c.Data(http.StatusBadRequest, contentTypeHTML, []byte(fmt.Sprintf(messages.RespMalformedUpload, err)))
		return
	}

	sub, err := upload.ParseSubmission(s.fs, mr, s.options.ScratchRoot, logger)
	if err != nil {
		logger.Error("failed to read submission", "error", err)
		c.Data(http.StatusBadRequest, contentTypeHTML, []byte(fmt.Sprintf(messages.RespMalformedUpload, err)))
		return
	}
	defer sub.Discard(s.fs, logger)

	if s.options.Secret == "" {
		logger.Error("upload secret is not configured")
		c.Data(http.StatusInternalServerError, contentTypeHTML, []byte(messages.RespServerMisconfigured))
		return
	}

	if err := upload.Validate(s.fs, sub, s.options.Secret); err != nil {
		s.rejectSubmission(c, logger, err)
		return
	}

	ttlSeconds := ttl.Resolve(sub.TTLValue, sub.TTLUnit)
	logger.Debug("accepted submission", "files", len(sub.Files), "ttl_seconds", ttlSeconds)

	results := s.publisher.PublishAll(c.Request.Context(), sub, ttlSeconds)
	c.Data(http.StatusOK, contentTypeHTML, []byte(renderResults(results)))
}

// rejectSubmission maps a validation failure onto its response.
func (s *Server) rejectSubmission(c *gin.Context, logger *logging.Logger, err error) {
	switch {
	case errors.Is(err, upload.ErrUnauthorized):
		logger.Warn("rejected submission with bad secret")
		c.Data(http.StatusUnauthorized, contentTypeHTML, []byte(messages.RespUnauthorized))
	case errors.Is(err, upload.ErrNoFile):
		logger.Warn("rejected submission with no files")
		c.Data(http.StatusBadRequest, contentTypeHTML, []byte(messages.RespNoFileUploaded))
	default:
		logger.Error("failed to apply identifier", "error", err)
		c.Data(http.StatusInternalServerError, contentTypeHTML, []byte(fmt.Sprintf(messages.RespRenameFailed, err)))
	}
}
