/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: client.go
Description: Remote engine client. Implements engine.Engine over a single TCP
connection to an engine dispatcher. Any transport failure poisons the client and is
reported as engine.ErrConnectionLost.
*/

package remote

import (
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/kleascm/alfbridge/pkg/engine"
)

// RemoteError is an error reported by the dispatcher for a single call
type RemoteError struct {
	Op      Op
	Message string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("remote engine op %d: %s", e.Op, e.Message)
}

// Client talks to one dispatcher connection
type Client struct {
	mu      sync.Mutex
	conn    net.Conn
	timeout time.Duration
	broken  error
}

var _ engine.Engine = (*Client)(nil)

// Dial connects to the dispatcher at addr
func Dial(addr string, timeout time.Duration) (*Client, error) {
	conn, err := net.DialTimeout("tcp", addr, timeout)
	if err != nil {
		return nil, fmt.Errorf("dial engine at %s: %w", addr, err)
	}
	return NewClient(conn, timeout), nil
}

// Loader returns an engine.Loader that dials addr on every (re)load
func Loader(addr string, timeout time.Duration) engine.Loader {
	return func() (engine.Engine, error) {
		return Dial(addr, timeout)
	}
}

// NewClient wraps an established connection. A zero timeout disables deadlines.
func NewClient(conn net.Conn, timeout time.Duration) *Client {
	return &Client{conn: conn, timeout: timeout}
}

// call performs one request/response round-trip. absent is true for StatusAbsent.
func (c *Client) call(op Op, payload []byte) (resp []byte, absent bool, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.broken != nil {
		return nil, false, c.broken
	}
	if c.timeout > 0 {
		_ = c.conn.SetDeadline(time.Now().Add(c.timeout))
	}
	if err := WriteFrame(c.conn, uint8(op), payload); err != nil {
		return nil, false, c.breakLocked(err)
	}
	status, body, err := ReadFrame(c.conn)
	if err != nil {
		return nil, false, c.breakLocked(err)
	}

	switch status {
	case StatusOK:
		return body, false, nil
	case StatusAbsent:
		return nil, true, nil
	case StatusError:
		return nil, false, &RemoteError{Op: op, Message: string(body)}
	default:
		return nil, false, c.breakLocked(fmt.Errorf("unknown status %d", status))
	}
}

func (c *Client) breakLocked(cause error) error {
	c.broken = fmt.Errorf("%w: %v", engine.ErrConnectionLost, cause)
	_ = c.conn.Close()
	return c.broken
}

func (c *Client) InstantiateAlgorithm(alg engine.AlgorithmID, alphabetSize int, opts []int) (engine.Handle, error) {
	var w Writer
	w.Uint32(uint32(alg)).Uint32(uint32(alphabetSize)).Ints(opts)
	resp, absent, err := c.call(OpInstantiate, w.Payload())
	if err != nil || absent || len(resp) == 0 {
		return nil, err
	}
	return engine.Handle(resp), nil
}

func (c *Client) Advance(h engine.Handle) ([]byte, error) {
	resp, absent, err := c.call(OpAdvance, h)
	if err != nil || absent {
		return nil, err
	}
	return resp, nil
}

func (c *Client) Dispose(h engine.Handle) error {
	_, _, err := c.call(OpDispose, h)
	return err
}

func (c *Client) FetchQueryBatch(h engine.Handle) (engine.BatchHandle, error) {
	resp, absent, err := c.call(OpFetchBatch, h)
	if err != nil {
		return nil, err
	}
	if absent {
		return nil, errors.New("engine has no pending query batch")
	}
	return engine.BatchHandle(resp), nil
}

func (c *Client) DecodeQueryBatch(b engine.BatchHandle) ([]int, error) {
	resp, absent, err := c.call(OpDecodeBatch, b)
	if err != nil || absent {
		return nil, err
	}
	r := NewReader(resp)
	enc := r.Ints()
	if err := r.Err(); err != nil {
		return nil, fmt.Errorf("decode batch response: %w", err)
	}
	return enc, nil
}

func (c *Client) SubmitBatchAnswers(h engine.Handle, b engine.BatchHandle, answers []int) error {
	var w Writer
	w.Bytes(h).Bytes(b).Ints(answers)
	_, _, err := c.call(OpSubmitAnswers, w.Payload())
	return err
}

func (c *Client) SubmitCounterexample(h engine.Handle, word []int) error {
	var w Writer
	w.Bytes(h).Ints(word)
	_, _, err := c.call(OpCounterexample, w.Payload())
	return err
}

func (c *Client) SubmitSamples(h engine.Handle, count int, inputs, outputs []int) (bool, error) {
	var w Writer
	w.Bytes(h).Uint32(uint32(count)).Ints(inputs).Ints(outputs)
	resp, absent, err := c.call(OpSubmitSamples, w.Payload())
	if err != nil {
		return false, err
	}
	if absent || len(resp) == 0 {
		return false, nil
	}
	return resp[0] != 0, nil
}

// Close closes the connection. Further calls report a lost connection.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.broken != nil {
		return nil
	}
	c.broken = fmt.Errorf("%w: client closed", engine.ErrConnectionLost)
	return c.conn.Close()
}
