// Package memory implementa los repositorios en memoria (STORE_DRIVER=memory).
// Las transacciones se serializan con un mutex y trabajan sobre una copia del estado;
// solo al confirmar se reemplaza el estado, así una transacción fallida no deja rastro.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/Inventario-pos/internal/domain/entity"
	"github.com/jhoicas/Inventario-pos/internal/domain/repository"
)

type state struct {
	products      map[string]entity.Product
	customers     map[string]entity.Customer
	suppliers     map[string]entity.Supplier
	lots          map[string]entity.StockLot
	sales         map[string]entity.Sale
	saleLines     map[string]entity.SaleLine
	allocations   map[string]entity.SaleLineAllocation
	purchases     map[string]entity.Purchase
	purchaseLines map[string]entity.PurchaseLine
	// orden de inserción de líneas y asignaciones (equivale a la columna seq en postgres)
	seq     map[string]int64
	nextSeq int64
}

func newState() *state {
	return &state{
		products:      map[string]entity.Product{},
		customers:     map[string]entity.Customer{},
		suppliers:     map[string]entity.Supplier{},
		lots:          map[string]entity.StockLot{},
		sales:         map[string]entity.Sale{},
		saleLines:     map[string]entity.SaleLine{},
		allocations:   map[string]entity.SaleLineAllocation{},
		purchases:     map[string]entity.Purchase{},
		purchaseLines: map[string]entity.PurchaseLine{},
		seq:           map[string]int64{},
	}
}

func (s *state) clone() *state {
	return &state{
		products:      cloneMap(s.products),
		customers:     cloneMap(s.customers),
		suppliers:     cloneMap(s.suppliers),
		lots:          cloneMap(s.lots),
		sales:         cloneMap(s.sales),
		saleLines:     cloneMap(s.saleLines),
		allocations:   cloneMap(s.allocations),
		purchases:     cloneMap(s.purchases),
		purchaseLines: cloneMap(s.purchaseLines),
		seq:           cloneMap(s.seq),
		nextSeq:       s.nextSeq,
	}
}

func (s *state) mark(id string) {
	s.nextSeq++
	s.seq[id] = s.nextSeq
}

func cloneMap[V any](m map[string]V) map[string]V {
	out := make(map[string]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Store estado compartido de todos los repositorios en memoria.
type Store struct {
	mu sync.Mutex
	st *state
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{st: newState()}
}

// base resuelve sobre qué estado opera un repositorio: el compartido (con lock por
// operación) o la copia de una transacción en curso (el lock ya lo tiene RunSale/RunReceiving).
type base struct {
	store *Store
	tx    *state
}

func (b base) read(fn func(st *state) error) error {
	if b.tx != nil {
		return fn(b.tx)
	}
	b.store.mu.Lock()
	defer b.store.mu.Unlock()
	return fn(b.store.st)
}

// Products repositorio de productos sobre el estado compartido.
func (s *Store) Products() repository.ProductRepository { return &ProductRepo{base{store: s}} }

// Customers repositorio de clientes.
func (s *Store) Customers() repository.CustomerRepository { return &CustomerRepo{base{store: s}} }

// Suppliers repositorio de proveedores.
func (s *Store) Suppliers() repository.SupplierRepository { return &SupplierRepo{base{store: s}} }

// StockLots libro de lotes fuera de transacción (lecturas de auditoría).
func (s *Store) StockLots() repository.StockLotRepository { return &StockLotRepo{base{store: s}} }

// Sales repositorio de ventas para lecturas.
func (s *Store) Sales() repository.SaleRepository { return &SaleRepo{base{store: s}} }

// Purchases repositorio de compras para lecturas.
func (s *Store) Purchases() repository.PurchaseRepository { return &PurchaseRepo{base{store: s}} }

func (s *Store) run(ctx context.Context, fn func(tx *state) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	work := s.st.clone()
	if err := fn(work); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	s.st = work
	return nil
}

// RunSale implementa sales.SaleTxRunner.
func (s *Store) RunSale(ctx context.Context, fn func(
	lotRepo repository.StockLotRepository,
	saleRepo repository.SaleRepository,
) error) error {
	return s.run(ctx, func(tx *state) error {
		b := base{store: s, tx: tx}
		return fn(&StockLotRepo{b}, &SaleRepo{b})
	})
}

// RunReceiving implementa inventory.ReceivingTxRunner.
func (s *Store) RunReceiving(ctx context.Context, fn func(
	purchaseRepo repository.PurchaseRepository,
	lotRepo repository.StockLotRepository,
) error) error {
	return s.run(ctx, func(tx *state) error {
		b := base{store: s, tx: tx}
		return fn(&PurchaseRepo{b}, &StockLotRepo{b})
	})
}

// page aplica limit/offset sobre un slice ya ordenado.
func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
