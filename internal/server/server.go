// Package server exposes the colony to operators: a websocket feed that
// broadcasts room status and accepts commands, plus a plain /status endpoint.
package server

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/zeusync/colony/internal/core/observability/log"
	"github.com/zeusync/colony/internal/core/rooms"
)

// Config holds feed configuration
type Config struct {
	Addr string
	// Token, when set, must be passed as ?token= to open a websocket.
	Token          string
	CommandBuffer  int
	WriteTimeout   time.Duration
	MaxMessageSize int64
}

func DefaultConfig() Config {
	return Config{
		Addr:           "127.0.0.1:8080",
		CommandBuffer:  64,
		WriteTimeout:   5 * time.Second,
		MaxMessageSize: 64 * 1024,
	}
}

// StatusFunc returns the current status snapshot. It is called from HTTP
// handlers and must be safe for concurrent use.
type StatusFunc func() any

// Feed is the operator surface of a running colony.
type Feed struct {
	config   Config
	status   StatusFunc
	auth     Authenticator
	upgrader websocket.Upgrader
	logger   log.Log

	mu      sync.Mutex
	clients map[*websocket.Conn]*client

	commands chan rooms.Command
	closed   int32 // atomic bool
}

type client struct {
	conn    *websocket.Conn
	writeMu sync.Mutex
}

func NewFeed(config Config, status StatusFunc, logger log.Log) *Feed {
	if config.CommandBuffer <= 0 {
		config.CommandBuffer = DefaultConfig().CommandBuffer
	}
	if config.WriteTimeout <= 0 {
		config.WriteTimeout = DefaultConfig().WriteTimeout
	}
	if config.MaxMessageSize <= 0 {
		config.MaxMessageSize = DefaultConfig().MaxMessageSize
	}
	if logger == nil {
		logger = log.NewNop()
	}
	return &Feed{
		config:   config,
		status:   status,
		auth:     TokenAuth{Token: config.Token},
		upgrader: websocket.Upgrader{ReadBufferSize: 1024, WriteBufferSize: 1024},
		logger:   logger.With(log.String("component", "feed")),
		clients:  make(map[*websocket.Conn]*client),
		commands: make(chan rooms.Command, config.CommandBuffer),
	}
}

// Commands delivers operator commands in arrival order. The tick loop drains
// it between ticks.
func (f *Feed) Commands() <-chan rooms.Command { return f.commands }

func (f *Feed) Clients() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.clients)
}

func (f *Feed) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", f.handleWebSocket)
	mux.HandleFunc("/status", f.handleStatus)
	return mux
}

// Serve listens on the configured address until ctx is done.
func (f *Feed) Serve(ctx context.Context) error {
	if atomic.LoadInt32(&f.closed) == 1 {
		return ErrFeedClosed
	}
	srv := &http.Server{Addr: f.config.Addr, Handler: f.Handler(), ReadHeaderTimeout: 5 * time.Second}

	errCh := make(chan error, 1)
	go func() {
		f.logger.Info("feed listening", log.String("addr", f.config.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		f.Close()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		err := srv.Shutdown(shutdownCtx)
		f.Close()
		return err
	}
}

// Broadcast sends v to every connected client. Clients that fail to receive
// are dropped.
func (f *Feed) Broadcast(kind string, v any) {
	f.mu.Lock()
	targets := make([]*client, 0, len(f.clients))
	for _, c := range f.clients {
		targets = append(targets, c)
	}
	f.mu.Unlock()

	msg := Message{Type: kind, Data: v}
	for _, c := range targets {
		if err := f.write(c, msg); err != nil {
			f.logger.Debug("dropping feed client", log.String("remote", c.conn.RemoteAddr().String()), log.Error(err))
			f.drop(c.conn)
		}
	}
}

// Close disconnects every client. Pending commands stay readable.
func (f *Feed) Close() {
	if !atomic.CompareAndSwapInt32(&f.closed, 0, 1) {
		return
	}
	f.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(f.clients))
	for conn := range f.clients {
		conns = append(conns, conn)
	}
	f.mu.Unlock()
	for _, conn := range conns {
		f.drop(conn)
	}
}

func (f *Feed) write(c *client, msg Message) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(f.config.WriteTimeout))
	return c.conn.WriteJSON(msg)
}

func (f *Feed) drop(conn *websocket.Conn) {
	f.mu.Lock()
	_, ok := f.clients[conn]
	delete(f.clients, conn)
	f.mu.Unlock()
	if ok {
		_ = conn.Close()
	}
}
