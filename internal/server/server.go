// Package server hosts a desktop session behind a Unix socket. Requests
// are newline-delimited JSON envelopes; a connection may carry any number
// of requests, answered in order.
package server

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"sync"
	"time"

	"github.com/etherdesk/etherwm/internal/dock"
	"github.com/etherdesk/etherwm/internal/logging"
	"github.com/etherdesk/etherwm/internal/models"
	"github.com/etherdesk/etherwm/internal/state"
	"github.com/etherdesk/etherwm/internal/window"
)

// Version is reported by getServerInfo
const Version = "0.1.0"

// Options configures a Server
type Options struct {
	SocketPath string
	Dock       dock.Config
	Autosave   bool // Save the session after every mutating request
}

// Server owns a session and serves it over a Unix socket
type Server struct {
	opts       Options
	session    *state.Session
	controller *window.Controller
	handlers   map[string]handler
	startTime  time.Time

	listener     net.Listener
	conns        sync.WaitGroup
	shuttingDown bool
	shutdownMu   sync.Mutex

	unsubscribe func()
}

// New creates a server for an already opened session
func New(session *state.Session, opts Options) *Server {
	s := &Server{
		opts:       opts,
		session:    session,
		controller: window.NewController(session),
		startTime:  time.Now(),
	}
	s.handlers = s.routes()
	s.unsubscribe = session.Subscribe(func(ev state.Event) {
		logging.Debug().Str("event", string(ev.Type)).Str("window", ev.WindowID).Msg("session event")
	})
	return s
}

// Session returns the hosted session
func (s *Server) Session() *state.Session {
	return s.session
}

// Start begins listening for connections
func (s *Server) Start() error {
	// Remove a stale socket left by a crashed daemon
	os.Remove(s.opts.SocketPath)

	listener, err := net.Listen("unix", s.opts.SocketPath)
	if err != nil {
		return fmt.Errorf("failed to create socket: %w", err)
	}
	s.listener = listener

	if err := os.Chmod(s.opts.SocketPath, 0600); err != nil {
		listener.Close()
		return fmt.Errorf("failed to set socket permissions: %w", err)
	}

	logging.Info().Str("socket", s.opts.SocketPath).Str("session", s.session.Summary()).Msg("Server listening")

	go s.acceptLoop()
	return nil
}

// Serve starts the server and blocks until ctx is cancelled, then shuts
// down and saves the session.
func (s *Server) Serve(ctx context.Context) error {
	if err := s.Start(); err != nil {
		return err
	}
	<-ctx.Done()
	return s.Stop()
}

// Stop closes the listener, waits for open connections to drain, ends
// any gesture in progress, and saves the session.
func (s *Server) Stop() error {
	s.shutdownMu.Lock()
	if s.shuttingDown {
		s.shutdownMu.Unlock()
		return nil
	}
	s.shuttingDown = true
	s.shutdownMu.Unlock()

	if s.listener != nil {
		s.listener.Close()
	}
	s.conns.Wait()
	os.Remove(s.opts.SocketPath)

	s.controller.End()
	if s.unsubscribe != nil {
		s.unsubscribe()
	}

	if err := s.session.Shutdown(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func (s *Server) isShuttingDown() bool {
	s.shutdownMu.Lock()
	defer s.shutdownMu.Unlock()
	return s.shuttingDown
}

func (s *Server) acceptLoop() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if s.isShuttingDown() {
				return
			}
			logging.Warn().Err(err).Msg("accept failed")
			continue
		}

		s.conns.Add(1)
		go s.handleConnection(conn)
	}
}

func (s *Server) handleConnection(conn net.Conn) {
	defer s.conns.Done()
	defer conn.Close()

	reader := bufio.NewReader(conn)
	var pending []byte
	for {
		if s.isShuttingDown() {
			return
		}
		// Idle connections are re-checked for shutdown once per second
		conn.SetReadDeadline(time.Now().Add(time.Second))

		line, readErr := reader.ReadBytes('\n')
		pending = append(pending, line...)
		if readErr != nil {
			var netErr net.Error
			if errors.As(readErr, &netErr) && netErr.Timeout() {
				continue
			}
			if readErr != io.EOF {
				logging.Debug().Err(readErr).Msg("connection read failed")
				return
			}
		}

		msg := bytes.TrimSpace(pending)
		pending = nil
		if len(msg) > 0 {
			if err := s.respond(conn, msg); err != nil {
				logging.Debug().Err(err).Msg("failed to write response")
				return
			}
		}
		if readErr != nil {
			return
		}
	}
}

func (s *Server) respond(w io.Writer, msg []byte) error {
	data, err := json.Marshal(s.HandleMessage(msg))
	if err != nil {
		return fmt.Errorf("failed to marshal response: %w", err)
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

// HandleMessage decodes one raw envelope and returns the response envelope
func (s *Server) HandleMessage(line []byte) *models.MessageEnvelope {
	var env models.MessageEnvelope
	if err := json.Unmarshal(line, &env); err != nil {
		return models.NewErrorResponse("", models.CodeParseError, fmt.Sprintf("invalid JSON: %v", err))
	}
	if env.Type != models.TypeRequest || env.Request == nil {
		return models.NewErrorResponse("", models.CodeInvalidRequest, "expected a request envelope")
	}
	return s.Dispatch(env.Request)
}

// Dispatch runs one request against the session
func (s *Server) Dispatch(req *models.Request) *models.MessageEnvelope {
	h, ok := s.handlers[req.Method]
	if !ok {
		return models.NewErrorResponse(req.ID, models.CodeMethodNotFound, fmt.Sprintf("unknown method: %s", req.Method))
	}

	params := req.Params
	if params == nil {
		params = map[string]interface{}{}
	}

	result, err := h.fn(params)
	if err != nil {
		code := models.CodeInternalError
		var perr *models.ParamError
		if errors.As(err, &perr) {
			code = models.CodeInvalidParams
		}
		logging.Debug().Err(err).Str("method", req.Method).Int("code", code).Msg("request failed")
		return models.NewErrorResponse(req.ID, code, err.Error())
	}

	if h.mutates && s.opts.Autosave {
		if err := s.session.Save(); err != nil {
			logging.Error().Err(err).Str("method", req.Method).Msg("autosave failed")
		}
	}

	return models.NewResponse(req.ID, result)
}
