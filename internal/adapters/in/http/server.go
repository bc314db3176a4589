package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const apiPrefix = "/api/v1"

// Server hosts the REST API of the services enabled in this process.
// Each service registers its routes with the matching Register…Routes method.
type Server struct {
	echo   *echo.Echo
	api    *echo.Group
	logger *slog.Logger

	streamInterval time.Duration
}

// NewServer creates the server with /health and /metrics already registered.
func NewServer(gatherer prometheus.Gatherer, logger *slog.Logger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s := &Server{
		echo:           e,
		logger:         logger.With("component", "http_server"),
		streamInterval: DefaultStreamInterval,
	}

	e.HTTPErrorHandler = s.handleError
	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			s.logger.DebugContext(c.Request().Context(), "Request served",
				"method", v.Method, "uri", v.URI, "status", v.Status, "latency", v.Latency)
			return nil
		},
	}))

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	s.api = e.Group(apiPrefix)
	return s
}

// ServeHTTP lets the server be driven by httptest.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.echo.ServeHTTP(w, r)
}

// Start blocks until the server stops. A graceful Shutdown is not reported as an error.
func (s *Server) Start(addr string) error {
	s.logger.Info("HTTP server listening", "addr", addr)
	if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// SetStreamInterval changes how often the tracking stream polls the location cache.
func (s *Server) SetStreamInterval(interval time.Duration) {
	if interval > 0 {
		s.streamInterval = interval
	}
}
