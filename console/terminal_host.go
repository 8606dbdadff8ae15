//go:build !windows

// Package console hosts the real stdin/stdout boundary the interpreter
// talks to: a raw-mode terminal feeding a small buffered reader.
package console

import (
	"fmt"
	"os"
	"sync"
	"syscall"
	"time"

	"golang.org/x/term"
)

// TerminalHost puts stdin in raw mode and feeds bytes read from it into
// an internal buffer, satisfying both vm.Console (blocking ReadByte)
// and vm.KeyboardDevice (non-blocking Poll) for the same interpreter.
type TerminalHost struct {
	fd           int
	oldTermState *term.State
	nonblockSet  bool

	stopCh  chan struct{}
	done    chan struct{}
	stopped sync.Once

	mu  sync.Mutex
	buf []byte

	// SIGINT is set when Ctrl-C (0x03) is read from stdin.
	SIGINT chan struct{}
}

// NewTerminalHost creates a host bound to the process's stdin.
func NewTerminalHost() *TerminalHost {
	return &TerminalHost{
		stopCh: make(chan struct{}),
		done:   make(chan struct{}),
		SIGINT: make(chan struct{}),
	}
}

// Start puts stdin into raw, non-blocking mode and begins a background
// reader goroutine that lives for the host's lifetime. Call Stop to
// restore the terminal.
func (h *TerminalHost) Start() error {
	h.fd = int(os.Stdin.Fd())

	oldState, err := term.MakeRaw(h.fd)
	if err != nil {
		close(h.done)
		return fmt.Errorf("console: set raw mode: %w", err)
	}
	h.oldTermState = oldState

	if err := syscall.SetNonblock(h.fd, true); err != nil {
		_ = term.Restore(h.fd, h.oldTermState)
		h.oldTermState = nil
		close(h.done)
		return fmt.Errorf("console: set stdin non-blocking: %w", err)
	}
	h.nonblockSet = true

	go h.readLoop()
	return nil
}

func (h *TerminalHost) readLoop() {
	defer close(h.done)
	rbuf := make([]byte, 1)

	for {
		select {
		case <-h.stopCh:
			return
		default:
		}

		n, err := syscall.Read(h.fd, rbuf)
		if n > 0 {
			b := rbuf[0]
			if b == 0x03 {
				select {
				case h.SIGINT <- struct{}{}:
				default:
				}
				continue
			}
			h.mu.Lock()
			h.buf = append(h.buf, b)
			h.mu.Unlock()
		}
		if err == syscall.EAGAIN || err == syscall.EWOULDBLOCK || n == 0 {
			time.Sleep(5 * time.Millisecond)
			continue
		}
		if err != nil {
			return
		}
	}
}

// Stop terminates the reader goroutine and restores the terminal.
func (h *TerminalHost) Stop() {
	h.stopped.Do(func() {
		close(h.stopCh)
	})
	<-h.done
	if h.nonblockSet {
		_ = syscall.SetNonblock(h.fd, false)
		h.nonblockSet = false
	}
	if h.oldTermState != nil {
		_ = term.Restore(h.fd, h.oldTermState)
		h.oldTermState = nil
	}
}

// ReadByte blocks until a byte is available, satisfying vm.Console.
func (h *TerminalHost) ReadByte() (byte, error) {
	for {
		if b, ok := h.take(); ok {
			return b, nil
		}
		select {
		case <-h.done:
			return 0, fmt.Errorf("console: stdin closed")
		default:
			time.Sleep(2 * time.Millisecond)
		}
	}
}

// Poll returns a buffered byte without blocking, satisfying
// vm.KeyboardDevice.
func (h *TerminalHost) Poll() (byte, bool) {
	return h.take()
}

func (h *TerminalHost) take() (byte, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.buf) == 0 {
		return 0, false
	}
	b := h.buf[0]
	h.buf = h.buf[1:]
	return b, true
}

// WriteByte writes one raw byte to stdout, satisfying vm.Console.
func (h *TerminalHost) WriteByte(b byte) error {
	_, err := os.Stdout.Write([]byte{b})
	return err
}
