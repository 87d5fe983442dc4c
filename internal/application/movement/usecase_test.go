package movement_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/edm-inventario/internal/application/movement"
	"github.com/jhoicas/edm-inventario/internal/domain"
	"github.com/jhoicas/edm-inventario/internal/domain/entity"
	"github.com/jhoicas/edm-inventario/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
//
// El store serializa las "transacciones" con un mutex y restaura saldos y
// ledger si el callback falla, imitando el Commit/Rollback real.
// ──────────────────────────────────────────────────────────────────────────────

type fakeStore struct {
	mu         sync.Mutex
	products   map[string]*entity.Product
	balances   map[string]*entity.InventoryBalance // key: productID|warehouseID
	ledger     []*entity.StockMovement
	warehouses map[string]*entity.Warehouse
	assigned   map[string][]string // userID -> warehouseIDs
}

func balanceKey(productID, warehouseID string) string { return productID + "|" + warehouseID }

func newFakeStore() *fakeStore {
	return &fakeStore{
		products:   map[string]*entity.Product{},
		balances:   map[string]*entity.InventoryBalance{},
		warehouses: map[string]*entity.Warehouse{},
		assigned:   map[string][]string{},
	}
}

func (s *fakeStore) addProduct(id, sku, barcode string) {
	p := &entity.Product{ID: id, SKU: sku, Name: "Producto " + sku, Unit: "ea"}
	if barcode != "" {
		p.Barcode = &barcode
	}
	s.products[id] = p
}

func (s *fakeStore) addWarehouse(id, code string) {
	s.warehouses[id] = &entity.Warehouse{ID: id, Code: code, Name: "Bodega " + code}
}

func (s *fakeStore) setBalance(productID, warehouseID string, qty int64) {
	s.balances[balanceKey(productID, warehouseID)] = &entity.InventoryBalance{
		ProductID:   productID,
		WarehouseID: warehouseID,
		Quantity:    qty,
		UpdatedAt:   time.Now(),
	}
}

func (s *fakeStore) quantity(productID, warehouseID string) int64 {
	if b, ok := s.balances[balanceKey(productID, warehouseID)]; ok {
		return b.Quantity
	}
	return 0
}

// fakeTxRunner ejecuta el callback bajo el mutex del store con rollback.
type fakeTxRunner struct{ store *fakeStore }

func (r *fakeTxRunner) Run(_ context.Context, fn func(
	movRepo repository.StockMovementRepository,
	balanceRepo repository.InventoryBalanceRepository,
	productRepo repository.ProductRepository,
) error) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	// Snapshot para simular rollback
	snapshot := make(map[string]entity.InventoryBalance, len(s.balances))
	for k, v := range s.balances {
		snapshot[k] = *v
	}
	ledgerLen := len(s.ledger)

	err := fn(&fakeMovementRepo{s}, &fakeBalanceRepo{s}, &fakeProductRepo{s})
	if err != nil {
		s.balances = make(map[string]*entity.InventoryBalance, len(snapshot))
		for k, v := range snapshot {
			b := v
			s.balances[k] = &b
		}
		s.ledger = s.ledger[:ledgerLen]
	}
	return err
}

type fakeProductRepo struct{ s *fakeStore }

func (r *fakeProductRepo) Create(*entity.Product) error          { return nil }
func (r *fakeProductRepo) GetByID(string) (*entity.Product, error) { return nil, nil }
func (r *fakeProductRepo) GetBySKUOrBarcode(key string) (*entity.Product, error) {
	// Como el repo real: el match por barcode gana sobre el match por SKU
	var bySKU *entity.Product
	for _, p := range r.s.products {
		if p.Barcode != nil && *p.Barcode == key {
			return p, nil
		}
		if p.SKU == key {
			bySKU = p
		}
	}
	return bySKU, nil
}
func (r *fakeProductRepo) List(int, int) ([]*entity.Product, error)   { return nil, nil }
func (r *fakeProductRepo) ListAll() ([]*entity.Product, error)        { return nil, nil }
func (r *fakeProductRepo) Update(*entity.Product) error               { return nil }
func (r *fakeProductRepo) Delete(string) error                        { return nil }
func (r *fakeProductRepo) DeleteExpiredDemo(time.Time) (int64, error) { return 0, nil }
func (r *fakeProductRepo) CountDemo(time.Time) (int64, int64, error)  { return 0, 0, nil }

type fakeBalanceRepo struct{ s *fakeStore }

func (r *fakeBalanceRepo) Get(productID, warehouseID string) (*entity.InventoryBalance, error) {
	if b, ok := r.s.balances[balanceKey(productID, warehouseID)]; ok {
		cp := *b
		return &cp, nil
	}
	return &entity.InventoryBalance{ProductID: productID, WarehouseID: warehouseID}, nil
}

func (r *fakeBalanceRepo) GetForUpdate(productID, warehouseID string) (*entity.InventoryBalance, error) {
	key := balanceKey(productID, warehouseID)
	if _, ok := r.s.balances[key]; !ok {
		r.s.balances[key] = &entity.InventoryBalance{ProductID: productID, WarehouseID: warehouseID}
	}
	cp := *r.s.balances[key]
	return &cp, nil
}

func (r *fakeBalanceRepo) SetQuantity(balance *entity.InventoryBalance) error {
	key := balanceKey(balance.ProductID, balance.WarehouseID)
	cp := *balance
	r.s.balances[key] = &cp
	return nil
}

func (r *fakeBalanceRepo) ListByWarehouse(warehouseID string) ([]*entity.InventoryBalance, error) {
	var out []*entity.InventoryBalance
	for _, b := range r.s.balances {
		if b.WarehouseID == warehouseID {
			cp := *b
			out = append(out, &cp)
		}
	}
	return out, nil
}

type fakeMovementRepo struct{ s *fakeStore }

func (r *fakeMovementRepo) Create(m *entity.StockMovement) error {
	cp := *m
	r.s.ledger = append(r.s.ledger, &cp)
	return nil
}

func (r *fakeMovementRepo) List(repository.MovementFilter) ([]*repository.MovementRow, error) {
	return nil, nil
}

type fakeWarehouseRepo struct{ s *fakeStore }

func (r *fakeWarehouseRepo) Create(*entity.Warehouse) error { return nil }
func (r *fakeWarehouseRepo) GetByID(id string) (*entity.Warehouse, error) {
	return r.s.warehouses[id], nil
}
func (r *fakeWarehouseRepo) GetByCode(code string) (*entity.Warehouse, error) {
	for _, w := range r.s.warehouses {
		if w.Code == code {
			return w, nil
		}
	}
	return nil, nil
}
func (r *fakeWarehouseRepo) List() ([]*entity.Warehouse, error) { return nil, nil }

type fakeUserWarehouseRepo struct{ s *fakeStore }

func (r *fakeUserWarehouseRepo) ListWarehouseIDs(userID string) ([]string, error) {
	return r.s.assigned[userID], nil
}
func (r *fakeUserWarehouseRepo) Assign(userID, warehouseID string) error {
	r.s.assigned[userID] = append(r.s.assigned[userID], warehouseID)
	return nil
}
func (r *fakeUserWarehouseRepo) Remove(string, string) error          { return nil }
func (r *fakeUserWarehouseRepo) SetForUser(string, []string) error    { return nil }

// ──────────────────────────────────────────────────────────────────────────────
// Setup
// ──────────────────────────────────────────────────────────────────────────────

const (
	whMain  = "wh-main"
	whNorth = "wh-north"
	prodID  = "prod-1"
	adminID = "user-admin"
	staffID = "user-staff"
)

func newEngine(t *testing.T) (*movement.ApplyMovementUseCase, *fakeStore) {
	t.Helper()
	store := newFakeStore()
	store.addWarehouse(whMain, entity.CodeMainWarehouse)
	store.addWarehouse(whNorth, "EDM-NORTH")
	store.addProduct(prodID, "SKU-1", "750100000001")
	uc := movement.NewApplyMovementUseCase(
		&fakeTxRunner{store},
		&fakeWarehouseRepo{store},
		&fakeUserWarehouseRepo{store},
	)
	return uc, store
}

func admin() movement.Caller { return movement.Caller{ID: adminID, Role: entity.RoleAdmin} }

// ──────────────────────────────────────────────────────────────────────────────
// IN / OUT
// ──────────────────────────────────────────────────────────────────────────────

func TestApply_IN_SumaAlSaldoYEscribeLedger(t *testing.T) {
	uc, store := newEngine(t)

	err := uc.Apply(context.Background(), admin(), movement.MovementInput{
		WarehouseID: whMain, Type: entity.MovementTypeIN, BarcodeOrSKU: "SKU-1", Quantity: 5,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(5), store.quantity(prodID, whMain))
	require.Len(t, store.ledger, 1)
	mov := store.ledger[0]
	assert.Equal(t, entity.MovementTypeIN, mov.Type)
	assert.Equal(t, int64(5), mov.Quantity)
	assert.Nil(t, mov.FromWarehouseID)
	require.NotNil(t, mov.ToWarehouseID)
	assert.Equal(t, whMain, *mov.ToWarehouseID)
	assert.Equal(t, adminID, mov.CreatedByUserID)
}

func TestApply_IN_ResuelveProductoPorBarcode(t *testing.T) {
	uc, store := newEngine(t)

	err := uc.Apply(context.Background(), admin(), movement.MovementInput{
		WarehouseID: whMain, Type: entity.MovementTypeIN, BarcodeOrSKU: "750100000001", Quantity: 3,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), store.quantity(prodID, whMain))
}

// Una clave que es SKU de un producto (sin barcode) y barcode de otro debe
// resolverse al producto del barcode, incluso con el barcode del primero NULL.
func TestApply_IN_ClaveAmbigua_PrefiereBarcode(t *testing.T) {
	uc, store := newEngine(t)
	store.addProduct("prod-sku", "CLAVE-X", "")
	store.addProduct("prod-bar", "SKU-OTRO", "CLAVE-X")

	err := uc.Apply(context.Background(), admin(), movement.MovementInput{
		WarehouseID: whMain, Type: entity.MovementTypeIN, BarcodeOrSKU: "CLAVE-X", Quantity: 2,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(2), store.quantity("prod-bar", whMain))
	assert.Equal(t, int64(0), store.quantity("prod-sku", whMain))
	require.Len(t, store.ledger, 1)
	assert.Equal(t, "prod-bar", store.ledger[0].ProductID)
}

func TestApply_OUT_RestaDelSaldo(t *testing.T) {
	uc, store := newEngine(t)
	store.setBalance(prodID, whMain, 10)

	err := uc.Apply(context.Background(), admin(), movement.MovementInput{
		WarehouseID: whMain, Type: entity.MovementTypeOUT, BarcodeOrSKU: "SKU-1", Quantity: 4,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(6), store.quantity(prodID, whMain))
	require.Len(t, store.ledger, 1)
	require.NotNil(t, store.ledger[0].FromWarehouseID)
	assert.Equal(t, whMain, *store.ledger[0].FromWarehouseID)
	assert.Nil(t, store.ledger[0].ToWarehouseID)
}

func TestApply_OUT_SaldoInsuficiente_RechazaSinEfectos(t *testing.T) {
	uc, store := newEngine(t)
	store.setBalance(prodID, whMain, 3)

	err := uc.Apply(context.Background(), admin(), movement.MovementInput{
		WarehouseID: whMain, Type: entity.MovementTypeOUT, BarcodeOrSKU: "SKU-1", Quantity: 4,
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, int64(3), store.quantity(prodID, whMain), "el saldo no debe cambiar")
	assert.Empty(t, store.ledger, "no debe quedar entrada en el ledger")
}

func TestApply_OUT_SaldoExacto_DejaCero(t *testing.T) {
	uc, store := newEngine(t)
	store.setBalance(prodID, whMain, 4)

	err := uc.Apply(context.Background(), admin(), movement.MovementInput{
		WarehouseID: whMain, Type: entity.MovementTypeOUT, BarcodeOrSKU: "SKU-1", Quantity: 4,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(0), store.quantity(prodID, whMain), "cero exacto es válido")
}

// ──────────────────────────────────────────────────────────────────────────────
// ADJUST (DELTA y SET)
// ──────────────────────────────────────────────────────────────────────────────

func TestApply_ADJUST_DeltaNegativo(t *testing.T) {
	uc, store := newEngine(t)
	store.setBalance(prodID, whMain, 10)

	err := uc.Apply(context.Background(), admin(), movement.MovementInput{
		WarehouseID: whMain, Type: entity.MovementTypeADJUST, BarcodeOrSKU: "SKU-1",
		Quantity: -3, AdjustMode: entity.AdjustModeDelta,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7), store.quantity(prodID, whMain))
	require.Len(t, store.ledger, 1)
	assert.Equal(t, int64(-3), store.ledger[0].Quantity, "el ledger guarda el delta con signo")
}

func TestApply_ADJUST_ModoVacioEquivaleADelta(t *testing.T) {
	uc, store := newEngine(t)
	store.setBalance(prodID, whMain, 2)

	err := uc.Apply(context.Background(), admin(), movement.MovementInput{
		WarehouseID: whMain, Type: entity.MovementTypeADJUST, BarcodeOrSKU: "SKU-1", Quantity: 5,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7), store.quantity(prodID, whMain))
}

func TestApply_ADJUST_SET_GuardaDeltaAplicadoYNota(t *testing.T) {
	uc, store := newEngine(t)
	store.setBalance(prodID, whMain, 10)

	err := uc.Apply(context.Background(), admin(), movement.MovementInput{
		WarehouseID: whMain, Type: entity.MovementTypeADJUST, BarcodeOrSKU: "SKU-1",
		Quantity: 4, AdjustMode: entity.AdjustModeSet,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(4), store.quantity(prodID, whMain))

	require.Len(t, store.ledger, 1)
	mov := store.ledger[0]
	assert.Equal(t, int64(-6), mov.Quantity, "el ledger guarda el delta real, no lo tecleado")
	require.NotNil(t, mov.Note)
	assert.Equal(t, "SET to 4 (delta -6)", *mov.Note)
}

func TestApply_ADJUST_SET_ConNotaDeUsuario_Concatena(t *testing.T) {
	uc, store := newEngine(t)
	store.setBalance(prodID, whMain, 10)

	err := uc.Apply(context.Background(), admin(), movement.MovementInput{
		WarehouseID: whMain, Type: entity.MovementTypeADJUST, BarcodeOrSKU: "SKU-1",
		Quantity: 12, AdjustMode: entity.AdjustModeSet, Note: "conteo físico",
	})
	require.NoError(t, err)
	require.Len(t, store.ledger, 1)
	require.NotNil(t, store.ledger[0].Note)
	assert.Equal(t, "conteo físico | SET to 12 (delta 2)", *store.ledger[0].Note)
}

func TestApply_ADJUST_SET_AlMismoValor_RegistraDeltaCero(t *testing.T) {
	uc, store := newEngine(t)
	store.setBalance(prodID, whMain, 10)

	err := uc.Apply(context.Background(), admin(), movement.MovementInput{
		WarehouseID: whMain, Type: entity.MovementTypeADJUST, BarcodeOrSKU: "SKU-1",
		Quantity: 10, AdjustMode: entity.AdjustModeSet,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(10), store.quantity(prodID, whMain))
	require.Len(t, store.ledger, 1)
	assert.Equal(t, int64(0), store.ledger[0].Quantity, "SET al valor actual deja constancia con delta 0")
}

func TestApply_ADJUST_DeltaBajoElPiso_Rechaza(t *testing.T) {
	uc, store := newEngine(t)
	store.setBalance(prodID, whMain, 2)

	err := uc.Apply(context.Background(), admin(), movement.MovementInput{
		WarehouseID: whMain, Type: entity.MovementTypeADJUST, BarcodeOrSKU: "SKU-1",
		Quantity: -3, AdjustMode: entity.AdjustModeDelta,
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, int64(2), store.quantity(prodID, whMain))
}

func TestApply_ADJUST_SET_Negativo_Rechaza(t *testing.T) {
	uc, store := newEngine(t)
	store.setBalance(prodID, whMain, 0)

	err := uc.Apply(context.Background(), admin(), movement.MovementInput{
		WarehouseID: whMain, Type: entity.MovementTypeADJUST, BarcodeOrSKU: "SKU-1",
		Quantity: -1, AdjustMode: entity.AdjustModeSet,
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, int64(0), store.quantity(prodID, whMain))
	assert.Empty(t, store.ledger)
}

func TestApply_ADJUST_CantidadCero_EsInvalida(t *testing.T) {
	uc, _ := newEngine(t)

	err := uc.Apply(context.Background(), admin(), movement.MovementInput{
		WarehouseID: whMain, Type: entity.MovementTypeADJUST, BarcodeOrSKU: "SKU-1", Quantity: 0,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// TRANSFER
// ──────────────────────────────────────────────────────────────────────────────

func TestApply_TRANSFER_ConservaElTotalYEscribeUnaSolaEntrada(t *testing.T) {
	uc, store := newEngine(t)
	store.setBalance(prodID, whMain, 10)

	err := uc.Apply(context.Background(), admin(), movement.MovementInput{
		WarehouseID: whMain, Type: entity.MovementTypeTRANSFER, BarcodeOrSKU: "SKU-1",
		Quantity: 6, ToWarehouseID: whNorth,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(4), store.quantity(prodID, whMain))
	assert.Equal(t, int64(6), store.quantity(prodID, whNorth))

	require.Len(t, store.ledger, 1, "un traslado produce exactamente una entrada")
	mov := store.ledger[0]
	assert.Equal(t, entity.MovementTypeTRANSFER, mov.Type)
	require.NotNil(t, mov.FromWarehouseID)
	require.NotNil(t, mov.ToWarehouseID)
	assert.Equal(t, whMain, *mov.FromWarehouseID)
	assert.Equal(t, whNorth, *mov.ToWarehouseID)
}

func TestApply_TRANSFER_SaldoInsuficiente_NoTocaNingunaBodega(t *testing.T) {
	uc, store := newEngine(t)
	store.setBalance(prodID, whMain, 2)
	store.setBalance(prodID, whNorth, 1)

	err := uc.Apply(context.Background(), admin(), movement.MovementInput{
		WarehouseID: whMain, Type: entity.MovementTypeTRANSFER, BarcodeOrSKU: "SKU-1",
		Quantity: 5, ToWarehouseID: whNorth,
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, int64(2), store.quantity(prodID, whMain))
	assert.Equal(t, int64(1), store.quantity(prodID, whNorth))
}

func TestApply_TRANSFER_MismaBodega_EsInvalido(t *testing.T) {
	uc, _ := newEngine(t)

	err := uc.Apply(context.Background(), admin(), movement.MovementInput{
		WarehouseID: whMain, Type: entity.MovementTypeTRANSFER, BarcodeOrSKU: "SKU-1",
		Quantity: 1, ToWarehouseID: whMain,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidTransfer)
}

func TestApply_TRANSFER_SinDestino_EsInvalido(t *testing.T) {
	uc, _ := newEngine(t)

	err := uc.Apply(context.Background(), admin(), movement.MovementInput{
		WarehouseID: whMain, Type: entity.MovementTypeTRANSFER, BarcodeOrSKU: "SKU-1", Quantity: 1,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidTransfer)
}

// ──────────────────────────────────────────────────────────────────────────────
// Autorización y errores de entrada
// ──────────────────────────────────────────────────────────────────────────────

func TestApply_SinCaller_RetornaUnauthorized(t *testing.T) {
	uc, _ := newEngine(t)

	err := uc.Apply(context.Background(), movement.Caller{}, movement.MovementInput{
		WarehouseID: whMain, Type: entity.MovementTypeIN, BarcodeOrSKU: "SKU-1", Quantity: 1,
	})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestApply_Viewer_RetornaForbidden(t *testing.T) {
	uc, _ := newEngine(t)

	err := uc.Apply(context.Background(), movement.Caller{ID: "user-v", Role: entity.RoleViewer}, movement.MovementInput{
		WarehouseID: whMain, Type: entity.MovementTypeIN, BarcodeOrSKU: "SKU-1", Quantity: 1,
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestApply_StaffSinBodegaAsignada_RetornaForbidden(t *testing.T) {
	uc, store := newEngine(t)
	store.assigned[staffID] = []string{whNorth} // asignado a otra bodega

	err := uc.Apply(context.Background(), movement.Caller{ID: staffID, Role: entity.RoleStaff}, movement.MovementInput{
		WarehouseID: whMain, Type: entity.MovementTypeIN, BarcodeOrSKU: "SKU-1", Quantity: 1,
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestApply_StaffConBodegaAsignada_Puede(t *testing.T) {
	uc, store := newEngine(t)
	store.assigned[staffID] = []string{whMain}

	err := uc.Apply(context.Background(), movement.Caller{ID: staffID, Role: entity.RoleStaff}, movement.MovementInput{
		WarehouseID: whMain, Type: entity.MovementTypeIN, BarcodeOrSKU: "SKU-1", Quantity: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), store.quantity(prodID, whMain))
}

func TestApply_ProductoDesconocido_RetornaProductNotFound(t *testing.T) {
	uc, store := newEngine(t)

	err := uc.Apply(context.Background(), admin(), movement.MovementInput{
		WarehouseID: whMain, Type: entity.MovementTypeIN, BarcodeOrSKU: "NO-EXISTE", Quantity: 1,
	})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
	assert.Empty(t, store.ledger)
}

func TestApply_BodegaDesconocida_RetornaNotFound(t *testing.T) {
	uc, _ := newEngine(t)

	err := uc.Apply(context.Background(), admin(), movement.MovementInput{
		WarehouseID: "wh-fantasma", Type: entity.MovementTypeIN, BarcodeOrSKU: "SKU-1", Quantity: 1,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestApply_CantidadNegativaEnIN_EsInvalida(t *testing.T) {
	uc, _ := newEngine(t)

	err := uc.Apply(context.Background(), admin(), movement.MovementInput{
		WarehouseID: whMain, Type: entity.MovementTypeIN, BarcodeOrSKU: "SKU-1", Quantity: -5,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestApply_NotaDemasiadoLarga_EsInvalida(t *testing.T) {
	uc, _ := newEngine(t)

	nota := make([]byte, 501)
	for i := range nota {
		nota[i] = 'x'
	}
	err := uc.Apply(context.Background(), admin(), movement.MovementInput{
		WarehouseID: whMain, Type: entity.MovementTypeIN, BarcodeOrSKU: "SKU-1",
		Quantity: 1, Note: string(nota),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// El límite de la nota son 500 caracteres, no bytes: una nota multibyte de
// 500 runas (más de 500 bytes en UTF-8) debe aceptarse.
func TestApply_NotaMultibyteDe500Caracteres_EsValida(t *testing.T) {
	uc, store := newEngine(t)

	nota := strings.Repeat("ñ", 500) // 1000 bytes
	err := uc.Apply(context.Background(), admin(), movement.MovementInput{
		WarehouseID: whMain, Type: entity.MovementTypeIN, BarcodeOrSKU: "SKU-1",
		Quantity: 1, Note: nota,
	})
	require.NoError(t, err)
	require.Len(t, store.ledger, 1)
	require.NotNil(t, store.ledger[0].Note)
	assert.Equal(t, nota, *store.ledger[0].Note)
}

// ──────────────────────────────────────────────────────────────────────────────
// Propiedades del ledger
// ──────────────────────────────────────────────────────────────────────────────

// El saldo siempre es la suma de los deltas aplicados del ledger.
func TestApply_SaldoEsLaSumaDeDeltasDelLedger(t *testing.T) {
	uc, store := newEngine(t)
	ctx := context.Background()

	steps := []movement.MovementInput{
		{WarehouseID: whMain, Type: entity.MovementTypeIN, BarcodeOrSKU: "SKU-1", Quantity: 10},
		{WarehouseID: whMain, Type: entity.MovementTypeOUT, BarcodeOrSKU: "SKU-1", Quantity: 3},
		{WarehouseID: whMain, Type: entity.MovementTypeADJUST, BarcodeOrSKU: "SKU-1", Quantity: -2, AdjustMode: entity.AdjustModeDelta},
		{WarehouseID: whMain, Type: entity.MovementTypeADJUST, BarcodeOrSKU: "SKU-1", Quantity: 8, AdjustMode: entity.AdjustModeSet},
	}
	for _, in := range steps {
		require.NoError(t, uc.Apply(ctx, admin(), in))
	}

	var sum int64
	for _, mov := range store.ledger {
		switch mov.Type {
		case entity.MovementTypeIN, entity.MovementTypeADJUST:
			sum += mov.Quantity
		case entity.MovementTypeOUT:
			sum -= mov.Quantity
		}
	}
	assert.Equal(t, store.quantity(prodID, whMain), sum)
	assert.Equal(t, int64(8), sum)
}

// Reenviar una petición idéntica aplica un segundo movimiento: no hay dedupe.
func TestApply_ReenvioIdentico_CreaSegundaEntrada(t *testing.T) {
	uc, store := newEngine(t)
	ctx := context.Background()
	in := movement.MovementInput{
		WarehouseID: whMain, Type: entity.MovementTypeIN, BarcodeOrSKU: "SKU-1", Quantity: 5,
	}

	require.NoError(t, uc.Apply(ctx, admin(), in))
	require.NoError(t, uc.Apply(ctx, admin(), in))

	assert.Len(t, store.ledger, 2)
	assert.Equal(t, int64(10), store.quantity(prodID, whMain))
}

// Dos OUT concurrentes de 6 contra saldo 10: exactamente uno gana.
func TestApply_OUTConcurrentes_SoloUnoGana(t *testing.T) {
	uc, store := newEngine(t)
	store.setBalance(prodID, whMain, 10)
	ctx := context.Background()
	in := movement.MovementInput{
		WarehouseID: whMain, Type: entity.MovementTypeOUT, BarcodeOrSKU: "SKU-1", Quantity: 6,
	}

	errs := make(chan error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- uc.Apply(ctx, admin(), in)
		}()
	}
	wg.Wait()
	close(errs)

	var okCount, insufficientCount int
	for err := range errs {
		switch {
		case err == nil:
			okCount++
		case errors.Is(err, domain.ErrInsufficientStock):
			insufficientCount++
		default:
			t.Fatalf("error inesperado: %v", err)
		}
	}
	assert.Equal(t, 1, okCount, "exactamente un OUT debe aplicarse")
	assert.Equal(t, 1, insufficientCount, "el otro debe rechazarse por saldo insuficiente")
	assert.Equal(t, int64(4), store.quantity(prodID, whMain))
	assert.Len(t, store.ledger, 1)
}
