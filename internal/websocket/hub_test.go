package websocket

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noopLogger struct{}

func (noopLogger) Debug(module, message string, details map[string]interface{}) {}
func (noopLogger) Info(module, message string, details map[string]interface{})  {}
func (noopLogger) Warn(module, message string, details map[string]interface{})  {}
func (noopLogger) Error(module, message string, details map[string]interface{}) {}
func (noopLogger) Sync() error                                                  { return nil }

func TestSendDropsStalledClientWithoutKillingHub(t *testing.T) {
	hub := NewHub(nil, noopLogger{})
	go hub.Run()

	stalled := &Client{Hub: hub, Handle: "u1", Send: make(chan []byte, 1)}
	hub.register <- stalled
	stalled.Send <- []byte("backlog") // fill the buffer

	// Overflowing the buffer drops the client instead of panicking the hub.
	hub.Send("u1", []byte("overflow"))

	require.Eventually(t, func() bool {
		hub.mu.RLock()
		defer hub.mu.RUnlock()
		_, ok := hub.clients["u1"]
		return !ok
	}, time.Second, 10*time.Millisecond)

	// A late teardown of the same client (readPump exiting) is a no-op.
	hub.unregister <- stalled

	// The Run loop survived: a fresh client still gets deliveries.
	healthy := &Client{Hub: hub, Handle: "u2", Send: make(chan []byte, 1)}
	hub.register <- healthy
	hub.Send("u2", []byte("hello"))

	select {
	case msg := <-healthy.Send:
		assert.Equal(t, "hello", string(msg))
	case <-time.After(time.Second):
		t.Fatal("hub stopped delivering after dropping a stalled client")
	}
}
