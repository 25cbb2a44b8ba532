package ws

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

// LocalCompanyID clave en Locals con la empresa autenticada (la pone el middleware de auth).
const LocalCompanyID = "company_id"

// RequireUpgrade deja pasar solo peticiones de upgrade a websocket.
func RequireUpgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// Handler registra la conexión en el hub y la mantiene abierta hasta que el cliente cierre.
func Handler(h *Hub) fiber.Handler {
	return websocket.New(func(c *websocket.Conn) {
		companyID, _ := c.Locals(LocalCompanyID).(string)
		h.Register(c, companyID)
		defer h.Unregister(c)

		for {
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	})
}
