// launching the server, MinerU client, metrics
package appServer

import (
	"context"
	"crypto/tls"
	"errors"
	"log"

	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ds124wfegd/mineru-extract/config"
	"github.com/ds124wfegd/mineru-extract/internal/action"
	"github.com/ds124wfegd/mineru-extract/internal/pkg/logger"
	"github.com/ds124wfegd/mineru-extract/internal/pkg/metrics"
	"github.com/ds124wfegd/mineru-extract/internal/pkg/mineru"
	"github.com/ds124wfegd/mineru-extract/internal/service"
	"github.com/ds124wfegd/mineru-extract/internal/transport"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/sirupsen/logrus"
)

const shutdownTimeout = 30 * time.Second

type Server struct {
	httpServer *http.Server
}

func (s *Server) Run(cfg *config.Config, handler http.Handler) error {
	s.httpServer = &http.Server{
		Addr:              cfg.GetServerAddress(),
		Handler:           handler,
		MaxHeaderBytes:    1 << 20,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       cfg.Server.Idle_timeout,
		ReadHeaderTimeout: 3 * time.Second,
		TLSConfig:         &tls.Config{MinVersion: tls.VersionTLS12},
		ErrorLog:          log.New(os.Stderr, "SERVER ERROR: ", log.LstdFlags),
	}
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// NewHandler wires the MinerU client, the extract service and the action
// catalog into the HTTP router. Collectors are registered on reg.
func NewHandler(cfg *config.Config, reg *prometheus.Registry) http.Handler {
	metrics.Register(reg)

	client := mineru.NewClient(cfg.MinerU.Timeout)
	extractService := service.NewExtractService(client, nil)
	catalog := action.NewCatalog(action.ExtractContent(cfg.MinerU.DefaultAPIServerURL))
	actionHandler := transport.NewActionHandler(extractService, catalog, cfg.Server.MaxUploadBytes)

	return transport.InitRoutes(actionHandler, reg, cfg.Server.RequestTimeout)
}

func NewServer(cfg *config.Config) {

	logger.Setup(cfg.Log, os.Stdout)

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	handler := NewHandler(cfg, reg)

	srv := new(Server)
	go func() {
		if err := srv.Run(cfg, handler); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatalf("error occured while running http server: %s", err.Error())
		}
	}()

	logrus.WithFields(logrus.Fields{
		"addr":    cfg.GetServerAddress(),
		"version": cfg.Server.AppVersion,
	}).Info("App Started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	logrus.Print("App Shutting Down")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logrus.Errorf("error occured on server shutting down: %s", err.Error())
	}
}
