// Package realtime implements the client side of the publish/subscribe
// order event channel: a websocket subscriber with an explicit
// connection state machine and reconnect policy.
package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/yeremiapane/restaurant-client/models"
)

// Event names carried in the message envelope.
const (
	EventOrderCreated = "order_created"
	EventOrderUpdated = "order_updated"
	EventOrderDeleted = "order_deleted"
)

const (
	// pongWait is how long a silent connection is tolerated before the
	// read fails and the reconnect loop takes over.
	pongWait = 60 * time.Second
	// pingInterval must fire well inside pongWait.
	pingInterval = (pongWait * 9) / 10

	writeWait = 10 * time.Second
)

// Message is the wire envelope for every channel event.
type Message struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// DecodeOrder unmarshals an order payload from a message.
func DecodeOrder(data json.RawMessage) (models.Order, error) {
	var order models.Order
	if err := json.Unmarshal(data, &order); err != nil {
		return models.Order{}, fmt.Errorf("decode order payload: %w", err)
	}
	return order, nil
}

// State is the connection lifecycle of a Subscriber.
type State int32

const (
	StateDisconnected State = iota
	StateConnecting
	StateConnected
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "CONNECTING"
	case StateConnected:
		return "CONNECTED"
	default:
		return "DISCONNECTED"
	}
}

// Subscriber maintains a websocket connection to the event channel and
// dispatches incoming messages to per-event handlers. It reconnects
// according to its ReconnectPolicy until the context given to Run is
// cancelled or Close is called.
type Subscriber struct {
	url    string
	policy ReconnectPolicy
	dialer *websocket.Dialer
	log    *logrus.Logger

	state atomic.Int32

	mu           sync.Mutex
	handlers     map[string]func(json.RawMessage)
	onConnect    func()
	onDisconnect func(error)
	cancel       context.CancelFunc
}

// NewSubscriber builds a subscriber for the given ws:// endpoint. A nil
// logger falls back to a fresh logrus logger.
func NewSubscriber(url string, policy ReconnectPolicy, log *logrus.Logger) *Subscriber {
	if log == nil {
		log = logrus.New()
	}
	return &Subscriber{
		url:      url,
		policy:   policy,
		dialer:   websocket.DefaultDialer,
		log:      log,
		handlers: map[string]func(json.RawMessage){},
	}
}

// Handle registers the handler for an event name. Handlers run on the
// read goroutine, one message at a time, in arrival order. Register
// before calling Run.
func (s *Subscriber) Handle(event string, fn func(json.RawMessage)) {
	s.mu.Lock()
	s.handlers[event] = fn
	s.mu.Unlock()
}

// OnConnect registers a callback fired each time the channel reaches
// CONNECTED, including after reconnects.
func (s *Subscriber) OnConnect(fn func()) {
	s.mu.Lock()
	s.onConnect = fn
	s.mu.Unlock()
}

// OnDisconnect registers a callback fired each time an established or
// attempted connection fails, with the cause.
func (s *Subscriber) OnDisconnect(fn func(error)) {
	s.mu.Lock()
	s.onDisconnect = fn
	s.mu.Unlock()
}

// State reports the current connection state.
func (s *Subscriber) State() State {
	return State(s.state.Load())
}

// Run connects and serves the channel until ctx is cancelled, Close is
// called, or the reconnect policy's attempts are exhausted. A clean
// teardown returns nil.
func (s *Subscriber) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	s.mu.Lock()
	s.cancel = cancel
	s.mu.Unlock()
	defer cancel()
	defer s.setState(StateDisconnected)

	delay := s.policy.Delay
	attempts := 0

	for {
		s.setState(StateConnecting)
		conn, resp, err := s.dialer.DialContext(ctx, s.url, nil)
		if resp != nil && resp.Body != nil {
			resp.Body.Close()
		}
		if err != nil {
			s.setState(StateDisconnected)
			s.notifyDisconnect(err)
			if ctx.Err() != nil {
				return nil
			}
			attempts++
			if s.policy.MaxAttempts > 0 && attempts >= s.policy.MaxAttempts {
				return fmt.Errorf("event channel unreachable after %d attempts: %w", attempts, err)
			}
			s.log.Warnf("event channel dial failed (attempt %d): %v", attempts, err)
			if !sleep(ctx, s.policy.jittered(delay)) {
				return nil
			}
			delay = s.policy.next(delay)
			continue
		}

		attempts = 0
		delay = s.policy.Delay
		s.setState(StateConnected)
		s.log.Infof("event channel connected: %s", s.url)
		if fn := s.connectHandler(); fn != nil {
			fn()
		}

		err = s.readLoop(ctx, conn)
		s.setState(StateDisconnected)
		s.notifyDisconnect(err)
		if ctx.Err() != nil {
			return nil
		}
		s.log.Warnf("event channel dropped: %v", err)
		if !sleep(ctx, s.policy.jittered(delay)) {
			return nil
		}
		delay = s.policy.next(delay)
	}
}

// Close tears the subscriber down. Safe to call before or during Run.
func (s *Subscriber) Close() {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.mu.Unlock()
}

// readLoop pumps messages off the connection until it fails. A side
// goroutine sends keep-alive pings and closes the connection on ctx
// cancellation so the blocking read returns.
func (s *Subscriber) readLoop(ctx context.Context, conn *websocket.Conn) error {
	defer conn.Close()

	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	done := make(chan struct{})
	defer close(done)
	go func() {
		ticker := time.NewTicker(pingInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				deadline := time.Now().Add(writeWait)
				if err := conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
					return
				}
			case <-ctx.Done():
				conn.Close()
				return
			case <-done:
				return
			}
		}
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			s.log.Warnf("skipping malformed channel message: %v", err)
			continue
		}
		s.dispatch(msg)
	}
}

func (s *Subscriber) dispatch(msg Message) {
	s.mu.Lock()
	fn := s.handlers[msg.Event]
	s.mu.Unlock()
	if fn == nil {
		return
	}
	fn(msg.Data)
}

func (s *Subscriber) connectHandler() func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.onConnect
}

func (s *Subscriber) notifyDisconnect(err error) {
	s.mu.Lock()
	fn := s.onDisconnect
	s.mu.Unlock()
	if fn != nil {
		fn(err)
	}
}

func (s *Subscriber) setState(state State) {
	s.state.Store(int32(state))
}

// sleep waits for d or until ctx is done; it reports whether the full
// wait elapsed.
func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
