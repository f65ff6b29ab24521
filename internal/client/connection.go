package client

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/etherdesk/etherwm/internal/logging"
	"github.com/etherdesk/etherwm/internal/models"
)

// Connection is one newline-delimited JSON stream to the session daemon.
// Requests are serialized. A request abandoned by its context takes the
// stream down with it, so a late reply can never answer the next request.
type Connection struct {
	socketPath string
	timeout    time.Duration

	mu     sync.Mutex
	conn   net.Conn
	reader *bufio.Reader
}

// NewConnection creates an unconnected stream to socketPath
func NewConnection(socketPath string, timeout time.Duration) *Connection {
	return &Connection{
		socketPath: socketPath,
		timeout:    timeout,
	}
}

// Connect dials the daemon, replacing any existing stream
func (c *Connection) Connect() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dropLocked()
	return c.dialLocked()
}

func (c *Connection) dialLocked() error {
	conn, err := net.Dial("unix", c.socketPath)
	if err != nil {
		return fmt.Errorf("failed to connect to socket %s: %w", c.socketPath, err)
	}
	c.conn = conn
	c.reader = bufio.NewReader(conn)
	return nil
}

func (c *Connection) dropLocked() error {
	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn = nil
	c.reader = nil
	return err
}

// Close shuts the stream. The next request dials again.
func (c *Connection) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dropLocked()
}

// IsConnected reports whether a stream is open
func (c *Connection) IsConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn != nil
}

type readResult struct {
	resp *models.Response
	err  error
}

// SendRequest writes req and waits for the response carrying the same id.
// Events and responses to other ids are skipped. Any failure, including
// ctx ending first, closes the stream.
func (c *Connection) SendRequest(ctx context.Context, req *models.MessageEnvelope) (*models.Response, error) {
	if req.Request == nil {
		return nil, fmt.Errorf("envelope has no request")
	}

	if _, ok := ctx.Deadline(); !ok && c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	data, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}
	data = append(data, '\n')

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		if err := c.dialLocked(); err != nil {
			return nil, err
		}
	}
	conn, reader := c.conn, c.reader

	// Reads are bounded by ctx alone
	if c.timeout > 0 {
		if err := conn.SetWriteDeadline(time.Now().Add(c.timeout)); err != nil {
			c.dropLocked()
			return nil, fmt.Errorf("failed to set write deadline: %w", err)
		}
	}
	if _, err := conn.Write(data); err != nil {
		c.dropLocked()
		return nil, fmt.Errorf("failed to write request: %w", err)
	}

	done := make(chan readResult, 1)
	go func() {
		resp, err := readResponse(reader, req.Request.ID)
		done <- readResult{resp, err}
	}()

	select {
	case <-ctx.Done():
		// Unblocks the reader and discards whatever reply is still in flight
		c.dropLocked()
		<-done
		return nil, fmt.Errorf("request cancelled or timed out: %w", ctx.Err())
	case r := <-done:
		if r.err != nil {
			c.dropLocked()
			return nil, r.err
		}
		return r.resp, nil
	}
}

// readResponse reads lines until the response to id arrives
func readResponse(reader *bufio.Reader, id string) (*models.Response, error) {
	for {
		line, err := reader.ReadBytes('\n')
		if err != nil {
			return nil, fmt.Errorf("failed to read response: %w", err)
		}

		var envelope models.MessageEnvelope
		if err := json.Unmarshal(line, &envelope); err != nil {
			return nil, fmt.Errorf("failed to unmarshal response: %w", err)
		}

		switch {
		case envelope.Type != models.TypeResponse:
			continue
		case envelope.Response == nil:
			return nil, fmt.Errorf("response envelope has nil response")
		case envelope.Response.ID != id:
			logging.Debug().Str("want", id).Str("got", envelope.Response.ID).Msg("Skipping response to another request")
			continue
		}
		return envelope.Response, nil
	}
}
