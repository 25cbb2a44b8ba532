package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Inventario-pos/internal/application/inventory"
	"github.com/jhoicas/Inventario-pos/internal/application/sales"
	"github.com/jhoicas/Inventario-pos/internal/application/usecase"
	"github.com/jhoicas/Inventario-pos/internal/interfaces/ws"
	"github.com/jhoicas/Inventario-pos/pkg/jwt"
	"github.com/jhoicas/Inventario-pos/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC  *usecase.ProductUseCase
	CustomerUC *usecase.CustomerUseCase
	SupplierUC *usecase.SupplierUseCase
	SaleUC     *sales.CreateSaleUseCase
	PurchaseUC *inventory.PurchaseUseCase
	LedgerUC   *inventory.LedgerUseCase
	Hub        *ws.Hub // nil desactiva /ws
	JWTSecret  string
	Log        *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	auth := AuthMiddleware(deps.JWTSecret)
	anyRole := RequireRole(jwt.RoleAdmin, jwt.RoleBodeguero, jwt.RoleVendedor)
	stockRoles := RequireRole(jwt.RoleAdmin, jwt.RoleBodeguero)
	saleRoles := RequireRole(jwt.RoleAdmin, jwt.RoleVendedor)

	if deps.Hub != nil {
		app.Use("/ws", ws.RequireUpgrade, auth, anyRole)
		app.Get("/ws", ws.Handler(deps.Hub))
	}

	// Rutas protegidas (requieren Bearer Token)
	api := app.Group("/api", auth)

	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.Log)
	products.Post("/", stockRoles, productHandler.Create)
	products.Get("/", anyRole, productHandler.List)
	products.Get("/:id", anyRole, productHandler.GetByID)
	products.Put("/:id", stockRoles, productHandler.Update)
	products.Delete("/:id", RequireRole(jwt.RoleAdmin), productHandler.Delete)

	customers := api.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC, deps.Log)
	customers.Post("/", saleRoles, customerHandler.Create)
	customers.Get("/", anyRole, customerHandler.List)

	suppliers := api.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC, deps.Log)
	suppliers.Post("/", stockRoles, supplierHandler.Create)
	suppliers.Get("/", anyRole, supplierHandler.List)

	salesGroup := api.Group("/sales")
	saleHandler := NewSaleHandler(deps.SaleUC, deps.Log)
	salesGroup.Post("/", saleRoles, saleHandler.Create)
	salesGroup.Get("/", saleRoles, saleHandler.List)
	salesGroup.Get("/:id", saleRoles, saleHandler.GetByID)

	purchases := api.Group("/purchases")
	purchaseHandler := NewPurchaseHandler(deps.PurchaseUC, deps.Log)
	purchases.Post("/", stockRoles, purchaseHandler.Create)
	purchases.Get("/:id", stockRoles, purchaseHandler.GetByID)
	purchases.Post("/:id/receive", stockRoles, purchaseHandler.Receive)

	invGroup := api.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.LedgerUC, deps.Log)
	invGroup.Get("/products/:id/stock", anyRole, inventoryHandler.Stock)
	invGroup.Get("/products/:id/lots", anyRole, inventoryHandler.Lots)
}
