package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/pali/mideair/internal/logging"
	"github.com/pali/mideair/internal/remote"
)

// Config holds the control server configuration.
type Config struct {
	Listen   string // listen address, e.g. ":8137"
	MDNS     bool   // advertise _mideair._tcp while running
	LogLevel string
}

// Server accepts WebSocket control connections and forwards commands to
// the shared remote.
type Server struct {
	config   *Config
	remote   *remote.Remote
	upgrader websocket.Upgrader

	// mu serializes command-model access across connection handlers; the
	// player below it enforces the single-transmission rule itself.
	mu sync.Mutex
}

// New creates a new Server instance.
func New(config *Config, r *remote.Remote) (*Server, error) {
	if err := logging.Initialize(config.LogLevel); err != nil {
		return nil, fmt.Errorf("failed to initialize logging: %w", err)
	}

	return &Server{
		config: config,
		remote: r,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// LAN control surface; no browser origin policy to enforce
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}, nil
}

// Run starts the server and blocks until SIGINT/SIGTERM, then shuts down
// gracefully.
func (s *Server) Run() error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)

	httpSrv := &http.Server{
		Addr:              s.config.Listen,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	listener, err := net.Listen("tcp", s.config.Listen)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.config.Listen, err)
	}

	logging.Info("Control server listening",
		zap.String("addr", listener.Addr().String()),
		zap.Bool("mdns", s.config.MDNS),
	)

	var mdns *advertiser
	if s.config.MDNS {
		port := listener.Addr().(*net.TCPAddr).Port
		mdns, err = advertise(port)
		if err != nil {
			// Advertising is best effort; the server still works by address.
			logging.Warn("mDNS advertisement failed", zap.Error(err))
		}
	}

	errCh := make(chan error, 1)
	go func() {
		if serveErr := httpSrv.Serve(listener); !errors.Is(serveErr, http.ErrServerClosed) {
			errCh <- serveErr
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err = <-errCh:
		logging.Error("Server error", zap.Error(err))
	case sig := <-sigCh:
		logging.Info("Shutting down", zap.String("signal", sig.String()))
		err = nil
	}

	if mdns != nil {
		mdns.shutdown()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if shutdownErr := httpSrv.Shutdown(ctx); shutdownErr != nil && err == nil {
		err = shutdownErr
	}

	logging.Sync()
	return err
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	remoteAddr := r.RemoteAddr

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Warn("WebSocket upgrade failed",
			zap.String("remote_addr", remoteAddr),
			zap.Error(err),
		)
		return
	}
	logging.LogConnection(remoteAddr, "websocket_connected")

	defer func() {
		_ = conn.Close()
		logging.LogConnection(remoteAddr, "websocket_closed")
	}()

	for {
		var req request
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logging.Warn("Connection error",
					zap.String("remote_addr", remoteAddr),
					zap.Error(err),
				)
			}
			return
		}

		resp := s.dispatch(remoteAddr, req)
		if err := conn.WriteJSON(resp); err != nil {
			logging.Warn("Failed to write response",
				zap.String("remote_addr", remoteAddr),
				zap.Error(err),
			)
			return
		}
	}
}
