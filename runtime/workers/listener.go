package workers

import (
	"chat-server/contract"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sync"
)

var _ contract.Worker = (*ListenerWorker)(nil)

// ListenerWorker accepts connections and hands each one to the handler in its
// own goroutine. There is no admission control: every accepted connection
// gets a worker.
// When the context is canceled the listener and every live connection are
// closed, and Run waits for the handlers to return.
type ListenerWorker struct {
	log      *slog.Logger
	listener net.Listener
	handler  contract.ConnHandler

	mu     sync.Mutex
	conns  map[net.Conn]struct{}
	closed bool
	wg     sync.WaitGroup
}

func NewListenerWorker(log *slog.Logger, listener net.Listener, handler contract.ConnHandler) *ListenerWorker {
	return &ListenerWorker{
		log:      log,
		listener: listener,
		handler:  handler,
		conns:    make(map[net.Conn]struct{}),
	}
}

func (w *ListenerWorker) Run(ctx context.Context) error {
	stop := context.AfterFunc(ctx, func() {
		_ = w.listener.Close()
		w.closeAll()
	})
	defer stop()

	for {
		conn, err := w.listener.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				w.wg.Wait()
				w.log.Info("Listener stopped", "address", w.listener.Addr().String())
				return nil
			}
			return fmt.Errorf("accept failed: %w", err)
		}

		w.log.Debug("Connection accepted", "remote_addr", conn.RemoteAddr().String())
		if !w.track(conn) {
			// accepted while shutting down, after closeAll ran
			_ = conn.Close()
			continue
		}
		w.wg.Add(1)
		go func() {
			defer w.wg.Done()
			defer w.untrack(conn)
			w.handler.Serve(ctx, conn)
		}()
	}
}

// Active returns how many accepted connections are still being served.
func (w *ListenerWorker) Active() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.conns)
}

// track refuses the connection once closeAll has run.
func (w *ListenerWorker) track(conn net.Conn) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return false
	}
	w.conns[conn] = struct{}{}
	return true
}

func (w *ListenerWorker) untrack(conn net.Conn) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.conns, conn)
}

func (w *ListenerWorker) closeAll() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed = true
	for conn := range w.conns {
		_ = conn.Close()
	}
}
