package realtime_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"

	"github.com/yeremiapane/restaurant-client/models"
	"github.com/yeremiapane/restaurant-client/realtime"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func fastPolicy() realtime.ReconnectPolicy {
	return realtime.ReconnectPolicy{
		Delay:         5 * time.Millisecond,
		BackoffFactor: 1.0,
	}
}

type wireMessage struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

func TestSubscriberDispatchesEvents(t *testing.T) {
	send := make(chan wireMessage, 4)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		for msg := range send {
			if err := conn.WriteJSON(msg); err != nil {
				return
			}
		}
	}))
	defer srv.Close()
	defer close(send)

	sub := realtime.NewSubscriber(wsURL(srv), fastPolicy(), nil)

	received := make(chan models.Order, 4)
	sub.Handle(realtime.EventOrderCreated, func(data json.RawMessage) {
		order, err := realtime.DecodeOrder(data)
		assert.NoError(t, err)
		received <- order
	})

	connected := make(chan struct{}, 1)
	sub.OnConnect(func() { connected <- struct{}{} })

	done := make(chan error, 1)
	go func() { done <- sub.Run(context.Background()) }()
	defer sub.Close()

	select {
	case <-connected:
	case <-time.After(2 * time.Second):
		t.Fatal("subscriber never connected")
	}
	assert.Equal(t, realtime.StateConnected, sub.State())

	send <- wireMessage{
		Event: realtime.EventOrderCreated,
		Data:  models.Order{ID: "o1", Status: models.StatusReceived},
	}

	select {
	case order := <-received:
		assert.Equal(t, "o1", order.ID)
		assert.Equal(t, models.StatusReceived, order.Status)
	case <-time.After(2 * time.Second):
		t.Fatal("event never dispatched")
	}

	sub.Close()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after Close")
	}
	assert.Equal(t, realtime.StateDisconnected, sub.State())
}

func TestSubscriberIgnoresUnknownAndMalformedMessages(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		conn.WriteMessage(websocket.TextMessage, []byte("not json"))
		conn.WriteJSON(wireMessage{Event: "unrelated", Data: "x"})
		conn.WriteJSON(wireMessage{
			Event: realtime.EventOrderUpdated,
			Data:  models.Order{ID: "o2", Status: models.StatusProcessing},
		})
		// Hold the connection open until the client goes away.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	defer srv.Close()

	sub := realtime.NewSubscriber(wsURL(srv), fastPolicy(), nil)
	received := make(chan models.Order, 1)
	sub.Handle(realtime.EventOrderUpdated, func(data json.RawMessage) {
		order, _ := realtime.DecodeOrder(data)
		received <- order
	})

	go sub.Run(context.Background())
	defer sub.Close()

	select {
	case order := <-received:
		assert.Equal(t, "o2", order.ID)
	case <-time.After(2 * time.Second):
		t.Fatal("valid event after garbage never dispatched")
	}
}

func TestSubscriberReconnects(t *testing.T) {
	var conns atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		n := conns.Add(1)
		if n == 1 {
			// Drop the first connection immediately.
			conn.Close()
			return
		}
		defer conn.Close()
		conn.WriteJSON(wireMessage{
			Event: realtime.EventOrderCreated,
			Data:  models.Order{ID: "after-reconnect"},
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	defer srv.Close()

	sub := realtime.NewSubscriber(wsURL(srv), fastPolicy(), nil)

	var connects, disconnects atomic.Int32
	sub.OnConnect(func() { connects.Add(1) })
	sub.OnDisconnect(func(err error) { disconnects.Add(1) })

	received := make(chan models.Order, 1)
	sub.Handle(realtime.EventOrderCreated, func(data json.RawMessage) {
		order, _ := realtime.DecodeOrder(data)
		received <- order
	})

	go sub.Run(context.Background())
	defer sub.Close()

	select {
	case order := <-received:
		assert.Equal(t, "after-reconnect", order.ID)
	case <-time.After(5 * time.Second):
		t.Fatal("no event after reconnect")
	}
	assert.GreaterOrEqual(t, connects.Load(), int32(2))
	assert.GreaterOrEqual(t, disconnects.Load(), int32(1))
}

func TestSubscriberGivesUpAfterMaxAttempts(t *testing.T) {
	// A server that is already gone.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := wsURL(srv)
	srv.Close()

	policy := fastPolicy()
	policy.MaxAttempts = 2
	sub := realtime.NewSubscriber(url, policy, nil)

	var disconnects atomic.Int32
	sub.OnDisconnect(func(err error) {
		assert.Error(t, err)
		disconnects.Add(1)
	})

	err := sub.Run(context.Background())
	assert.Error(t, err)
	assert.Equal(t, int32(2), disconnects.Load())
	assert.Equal(t, realtime.StateDisconnected, sub.State())
}

func TestSubscriberStopsOnContextCancel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	defer srv.Close()

	sub := realtime.NewSubscriber(wsURL(srv), fastPolicy(), nil)
	connected := make(chan struct{}, 1)
	sub.OnConnect(func() { connected <- struct{}{} })

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- sub.Run(ctx) }()

	select {
	case <-connected:
	case <-time.After(2 * time.Second):
		t.Fatal("subscriber never connected")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestInitialStateIsDisconnected(t *testing.T) {
	sub := realtime.NewSubscriber("ws://localhost:1/ws", fastPolicy(), nil)
	assert.Equal(t, realtime.StateDisconnected, sub.State())
}
