package ws_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jhoicas/Inventario-pos/internal/application/ports"
	"github.com/jhoicas/Inventario-pos/internal/interfaces/ws"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConn struct {
	mu       sync.Mutex
	messages [][]byte
	closed   bool
	failing  bool
}

func (f *fakeConn) WriteMessage(_ int, data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing {
		return errors.New("broken pipe")
	}
	f.messages = append(f.messages, data)
	return nil
}

func (f *fakeConn) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *fakeConn) received() [][]byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([][]byte(nil), f.messages...)
}

func (f *fakeConn) isClosed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

func startHub(t *testing.T) *ws.Hub {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	hub := ws.NewHub(nil)
	go hub.Run(ctx)
	return hub
}

func TestHub_DifundeSoloALaEmpresa(t *testing.T) {
	hub := startHub(t)
	mine, other := &fakeConn{}, &fakeConn{}
	hub.Register(mine, "company-1")
	hub.Register(other, "company-2")

	hub.NotifyStockChanged(context.Background(), "company-1", ports.StockReasonSale, []string{"p-1", "p-2"})

	require.Eventually(t, func() bool { return len(mine.received()) == 1 }, time.Second, 5*time.Millisecond)
	assert.Empty(t, other.received())

	var ev ws.StockEvent
	require.NoError(t, json.Unmarshal(mine.received()[0], &ev))
	assert.Equal(t, ws.EventStockUpdate, ev.Type)
	assert.Equal(t, ports.StockReasonSale, ev.Reason)
	assert.Equal(t, []string{"p-1", "p-2"}, ev.ProductIDs)
}

func TestHub_ConexionRotaSeElimina(t *testing.T) {
	hub := startHub(t)
	broken := &fakeConn{failing: true}
	hub.Register(broken, "company-1")
	require.Eventually(t, func() bool { return hub.Clients() == 1 }, time.Second, 5*time.Millisecond)

	hub.NotifyStockChanged(context.Background(), "company-1", ports.StockReasonReceipt, []string{"p-1"})

	require.Eventually(t, func() bool { return hub.Clients() == 0 }, time.Second, 5*time.Millisecond)
	assert.True(t, broken.isClosed())
}

func TestHub_UnregisterCierra(t *testing.T) {
	hub := startHub(t)
	conn := &fakeConn{}
	hub.Register(conn, "company-1")
	hub.Unregister(conn)

	require.Eventually(t, func() bool { return hub.Clients() == 0 }, time.Second, 5*time.Millisecond)
	assert.True(t, conn.isClosed())
}

func TestHub_NotifySinRunNoBloquea(t *testing.T) {
	hub := ws.NewHub(nil)
	done := make(chan struct{})
	go func() {
		for i := 0; i < 200; i++ {
			hub.NotifyStockChanged(context.Background(), "company-1", ports.StockReasonSale, nil)
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("NotifyStockChanged bloqueó con la cola llena")
	}
}

func TestHub_TrasDetenerNoBloquea(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	hub := ws.NewHub(nil)
	stopped := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(stopped)
	}()

	registered := &fakeConn{}
	hub.Register(registered, "company-1")
	cancel()
	<-stopped
	assert.True(t, registered.isClosed(), "al detenerse el hub cierra las conexiones")

	late := &fakeConn{}
	done := make(chan struct{})
	go func() {
		hub.Unregister(registered)
		hub.Register(late, "company-1")
		hub.Unregister(late)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Register/Unregister bloquearon con el hub detenido")
	}
	assert.True(t, late.isClosed())
	assert.Equal(t, 0, hub.Clients())
}
