package render

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"net/url"
	"sync/atomic"
	"time"

	"github.com/specialistvlad/evacgrid/internal/ctxlog"
	"github.com/specialistvlad/evacgrid/internal/planner"
	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"
)

const (
	DefaultRenderEvent     = "render_graph"
	DefaultRenderTimeout   = 10 * time.Second
	DefaultRenderNamespace = "/"
)

// SocketIOSink sends the render request to an external viewer over socket.io
// and waits until the viewer acknowledges it.
type SocketIOSink struct {
	URL                string
	Namespace          string // defaults to "/"
	Event              string
	AckEvent           string // defaults to Event + "_ack"
	Timeout            time.Duration
	InsecureSkipVerify bool
}

// NewSocketIOSink creates a sink for the viewer at rawURL.
func NewSocketIOSink(rawURL, event string, timeout time.Duration) *SocketIOSink {
	if event == "" {
		event = DefaultRenderEvent
	}
	if timeout <= 0 {
		timeout = DefaultRenderTimeout
	}
	return &SocketIOSink{
		URL:       rawURL,
		Namespace: DefaultRenderNamespace,
		Event:     event,
		AckEvent:  event + "_ack",
		Timeout:   timeout,
	}
}

// opResult passes the outcome of the exchange through the done channel.
type opResult struct {
	err error
}

// Publish implements Sink. It connects, emits the request once the
// connection is up and returns when the ack event arrives, the connection
// fails, or the timeout expires.
func (s *SocketIOSink) Publish(ctx context.Context, plan *planner.Plan, req *Request) error {
	logger := ctxlog.FromContext(ctx).With("sink", "socketio", "url", s.URL, "event", s.Event)
	logger.Debug("Publishing render request.")

	parsedURL, err := url.Parse(s.URL)
	if err != nil {
		return fmt.Errorf("socketio sink: failed to parse URL: %w", err)
	}
	if parsedURL.Scheme == "" || parsedURL.Host == "" {
		return fmt.Errorf("socketio sink: URL %q must include scheme and host", s.URL)
	}

	payload, err := toPayload(req)
	if err != nil {
		return fmt.Errorf("socketio sink: %w", err)
	}

	ackEvent := s.AckEvent
	if ackEvent == "" {
		ackEvent = s.Event + "_ack"
	}
	// Incoming packets are always decoded with a leading slash.
	namespace := s.Namespace
	if namespace == "" {
		namespace = DefaultRenderNamespace
	}

	var isConnected atomic.Bool
	done := make(chan opResult, 1)
	finish := func(res opResult) {
		select {
		case done <- res:
		default:
		}
	}

	opCtx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	baseURL := fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host)
	opts := socket.DefaultOptions()
	if parsedURL.Path != "" {
		opts.SetPath(parsedURL.Path)
	}
	if s.InsecureSkipVerify {
		logger.Warn("Skipping TLS certificate verification")
		opts.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}
	opts.SetTransports(types.NewSet(transports.WebSocket))

	manager := socket.NewManager(baseURL, opts)
	io := manager.Socket(namespace, opts)
	defer func() {
		logger.Debug("Disconnecting socket client")
		io.Disconnect()
	}()

	io.On(types.EventName("connect"), func(...any) {
		isConnected.Store(true)
		logger.Info("Connected to renderer.", "sid", io.Id(), "start", plan.Start, "highlight", req.Highlight)
		io.Emit(s.Event, payload)
	})

	io.On(types.EventName("connect_error"), func(errs ...any) {
		var cerr error
		if len(errs) > 0 {
			cerr, _ = errs[0].(error)
		}
		if cerr == nil {
			cerr = fmt.Errorf("connection refused")
		}
		finish(opResult{err: fmt.Errorf("socketio sink: connect failed: %w", cerr)})
	})

	io.On(types.EventName(ackEvent), func(...any) {
		logger.Debug("Renderer acknowledged request.", "ack_event", ackEvent)
		finish(opResult{})
	})

	io.Connect()

	select {
	case <-opCtx.Done():
		if isConnected.Load() {
			return fmt.Errorf("socketio sink: timed out after connecting while waiting for event '%s'", ackEvent)
		}
		return fmt.Errorf("socketio sink: timed out while waiting for initial connection")
	case res := <-done:
		return res.err
	}
}

// toPayload converts req into the generic map form the socket.io encoder
// expects.
func toPayload(req *Request) (map[string]any, error) {
	raw, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode render request: %w", err)
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("failed to encode render request: %w", err)
	}
	return out, nil
}
