package ws

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/jhoicas/Inventario-pos/internal/application/ports"
	"github.com/jhoicas/Inventario-pos/pkg/logger"
)

// EventStockUpdate tipo de mensaje enviado cuando cambia el stock.
const EventStockUpdate = "stock_update"

// Conn lo que el hub necesita de una conexión; lo cumple *websocket.Conn.
type Conn interface {
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// StockEvent mensaje publicado a los clientes de la empresa.
type StockEvent struct {
	Type       string    `json:"type"`
	Reason     string    `json:"reason"`
	CompanyID  string    `json:"company_id"`
	ProductIDs []string  `json:"product_ids"`
	At         time.Time `json:"at"`
}

type subscription struct {
	conn      Conn
	companyID string
}

var _ ports.StockNotifier = (*Hub)(nil)

// Hub mantiene las conexiones abiertas por empresa y difunde eventos de stock.
type Hub struct {
	clients    map[Conn]string
	register   chan subscription
	unregister chan Conn
	broadcast  chan StockEvent
	done       chan struct{}
	mutex      sync.Mutex
	log        *logger.Logger
}

// NewHub construye el hub; Run debe correr en su propia goroutine.
func NewHub(log *logger.Logger) *Hub {
	if log == nil {
		log = logger.Nop()
	}
	return &Hub{
		clients:    make(map[Conn]string),
		register:   make(chan subscription),
		unregister: make(chan Conn),
		broadcast:  make(chan StockEvent, 64),
		done:       make(chan struct{}),
		log:        log,
	}
}

// Run atiende altas, bajas y difusión hasta que ctx se cancele; entonces cierra todo.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.mutex.Lock()
			for conn := range h.clients {
				_ = conn.Close()
				delete(h.clients, conn)
			}
			h.mutex.Unlock()
			return

		case sub := <-h.register:
			h.mutex.Lock()
			h.clients[sub.conn] = sub.companyID
			h.mutex.Unlock()
			h.log.Debug().Str("company_id", sub.companyID).Msg("cliente ws conectado")

		case conn := <-h.unregister:
			h.mutex.Lock()
			if _, ok := h.clients[conn]; ok {
				delete(h.clients, conn)
				_ = conn.Close()
			}
			h.mutex.Unlock()

		case ev := <-h.broadcast:
			msg, err := json.Marshal(ev)
			if err != nil {
				continue
			}
			h.mutex.Lock()
			for conn, companyID := range h.clients {
				if companyID != ev.CompanyID {
					continue
				}
				if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
					_ = conn.Close()
					delete(h.clients, conn)
				}
			}
			h.mutex.Unlock()
		}
	}
}

// Register agrega una conexión de la empresa. Con el hub detenido la conexión se cierra.
func (h *Hub) Register(conn Conn, companyID string) {
	select {
	case h.register <- subscription{conn: conn, companyID: companyID}:
	case <-h.done:
		_ = conn.Close()
	}
}

// Unregister quita y cierra la conexión.
func (h *Hub) Unregister(conn Conn) {
	select {
	case h.unregister <- conn:
	case <-h.done:
		_ = conn.Close()
	}
}

// Clients número de conexiones activas.
func (h *Hub) Clients() int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.clients)
}

// NotifyStockChanged encola el evento sin bloquear; si la cola está llena se descarta.
func (h *Hub) NotifyStockChanged(_ context.Context, companyID, reason string, productIDs []string) {
	ev := StockEvent{
		Type:       EventStockUpdate,
		Reason:     reason,
		CompanyID:  companyID,
		ProductIDs: productIDs,
		At:         time.Now().UTC(),
	}
	select {
	case h.broadcast <- ev:
	default:
		h.log.Warn().Str("company_id", companyID).Str("reason", reason).Msg("cola ws llena; evento de stock descartado")
	}
}
