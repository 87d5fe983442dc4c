package movement

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/jhoicas/edm-inventario/internal/domain"
	"github.com/jhoicas/edm-inventario/internal/domain/entity"
	"github.com/jhoicas/edm-inventario/internal/domain/repository"
)

// maxNoteLen límite de caracteres de la nota de un movimiento.
const maxNoteLen = 500

// Caller identidad del usuario que solicita el movimiento (para el gate de
// rol y la atribución en el ledger). ID vacío = no autenticado.
type Caller struct {
	ID   string
	Role string
}

// MovementInput entrada para aplicar un movimiento de stock.
//
// Quantity es lo que tecleó el usuario (requestedQuantity); el delta que el
// motor termina aplicando (appliedDelta) puede diferir en ADJUST modo SET y
// es lo que se persiste en el ledger.
type MovementInput struct {
	WarehouseID   string
	Type          string
	BarcodeOrSKU  string
	Quantity      int64
	AdjustMode    string // solo ADJUST; vacío = DELTA
	ToWarehouseID string // solo TRANSFER
	Note          string
}

// ApplyMovementUseCase aplica movimientos de stock de forma transaccional
// (IN, OUT, ADJUST, TRANSFER) con bloqueo de fila (SELECT FOR UPDATE) y
// Commit/Rollback. Es el único camino de escritura sobre los saldos.
type ApplyMovementUseCase struct {
	txRunner          TxRunner
	warehouseRepo     repository.WarehouseRepository
	userWarehouseRepo repository.UserWarehouseRepository
}

// NewApplyMovementUseCase construye el caso de uso.
func NewApplyMovementUseCase(
	txRunner TxRunner,
	warehouseRepo repository.WarehouseRepository,
	userWarehouseRepo repository.UserWarehouseRepository,
) *ApplyMovementUseCase {
	return &ApplyMovementUseCase{
		txRunner:          txRunner,
		warehouseRepo:     warehouseRepo,
		userWarehouseRepo: userWarehouseRepo,
	}
}

// Apply valida el movimiento, inicia una transacción, bloquea la(s) fila(s)
// de saldo, aplica el delta y agrega la entrada del ledger. Commit si todo
// ok, Rollback si algo falla; nunca queda efecto parcial visible.
//
// Reenviar una petición idéntica que ya se aplicó produce un segundo
// movimiento independiente: el motor no deduplica (comportamiento esperado,
// el reintento es responsabilidad del caller tras confirmar no-aplicación).
func (uc *ApplyMovementUseCase) Apply(ctx context.Context, caller Caller, input MovementInput) error {
	if err := uc.authorize(caller, input); err != nil {
		return err
	}
	if err := validateInput(input); err != nil {
		return err
	}

	// Validar que la(s) bodega(s) existan antes de abrir la transacción
	if wh, err := uc.warehouseRepo.GetByID(input.WarehouseID); err != nil || wh == nil {
		if err != nil {
			return err
		}
		return domain.ErrNotFound
	}
	if input.Type == entity.MovementTypeTRANSFER {
		if wh, err := uc.warehouseRepo.GetByID(input.ToWarehouseID); err != nil || wh == nil {
			if err != nil {
				return err
			}
			return domain.ErrNotFound
		}
	}

	now := time.Now()

	return uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		balanceRepo repository.InventoryBalanceRepository,
		productRepo repository.ProductRepository,
	) error {
		product, err := productRepo.GetBySKUOrBarcode(strings.TrimSpace(input.BarcodeOrSKU))
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrProductNotFound
		}

		switch input.Type {
		case entity.MovementTypeIN:
			return uc.doIN(movRepo, balanceRepo, product, caller, input, now)
		case entity.MovementTypeOUT:
			return uc.doOUT(movRepo, balanceRepo, product, caller, input, now)
		case entity.MovementTypeADJUST:
			return uc.doADJUST(movRepo, balanceRepo, product, caller, input, now)
		case entity.MovementTypeTRANSFER:
			return uc.doTRANSFER(movRepo, balanceRepo, product, caller, input, now)
		}
		return domain.ErrInvalidInput
	})
}

// authorize aplica el gate de rol y, para STAFF, la restricción de bodegas
// asignadas. Distingue "no autenticado" (ErrUnauthorized) de "autenticado
// sin rol suficiente" (ErrForbidden).
func (uc *ApplyMovementUseCase) authorize(caller Caller, input MovementInput) error {
	if caller.ID == "" {
		return domain.ErrUnauthorized
	}
	if caller.Role != entity.RoleAdmin && caller.Role != entity.RoleStaff {
		return domain.ErrForbidden
	}
	if caller.Role == entity.RoleStaff && uc.userWarehouseRepo != nil {
		assigned, err := uc.userWarehouseRepo.ListWarehouseIDs(caller.ID)
		if err != nil {
			return err
		}
		if !containsID(assigned, input.WarehouseID) {
			return domain.ErrForbidden
		}
		if input.Type == entity.MovementTypeTRANSFER && input.ToWarehouseID != "" &&
			!containsID(assigned, input.ToWarehouseID) {
			return domain.ErrForbidden
		}
	}
	return nil
}

// validateInput reglas de forma y cantidad, sin tocar estado.
func validateInput(input MovementInput) error {
	if input.WarehouseID == "" || strings.TrimSpace(input.BarcodeOrSKU) == "" {
		return domain.ErrInvalidInput
	}
	if !entity.IsValidMovementType(input.Type) {
		return domain.ErrInvalidInput
	}
	// Caracteres, no bytes: mismo criterio que el validador de los DTOs
	if utf8.RuneCountInString(input.Note) > maxNoteLen {
		return domain.ErrInvalidInput
	}
	if input.Quantity == 0 {
		return domain.ErrInvalidInput
	}
	switch input.Type {
	case entity.MovementTypeADJUST:
		switch input.AdjustMode {
		case "", entity.AdjustModeDelta, entity.AdjustModeSet:
		default:
			return domain.ErrInvalidInput
		}
	case entity.MovementTypeTRANSFER:
		// La cantidad es una magnitud: negativa no es "traslado inverso", es error
		if input.Quantity < 0 {
			return domain.ErrInvalidInput
		}
		if input.ToWarehouseID == "" || input.ToWarehouseID == input.WarehouseID {
			return domain.ErrInvalidTransfer
		}
	default: // IN, OUT
		if input.Quantity < 0 {
			return domain.ErrInvalidInput
		}
	}
	return nil
}

// doIN: bloquea (o crea) la fila de saldo y suma la cantidad. Solo incremento,
// no necesita verificación de piso.
func (uc *ApplyMovementUseCase) doIN(
	movRepo repository.StockMovementRepository,
	balanceRepo repository.InventoryBalanceRepository,
	product *entity.Product,
	caller Caller,
	input MovementInput,
	now time.Time,
) error {
	balance, err := balanceRepo.GetForUpdate(product.ID, input.WarehouseID)
	if err != nil {
		return err
	}
	balance.Quantity += input.Quantity
	balance.UpdatedAt = now
	if err := balanceRepo.SetQuantity(balance); err != nil {
		return err
	}
	mov := &entity.StockMovement{
		Type:            entity.MovementTypeIN,
		Quantity:        input.Quantity,
		Note:            noteOrNil(input.Note),
		ProductID:       product.ID,
		ToWarehouseID:   strPtr(input.WarehouseID),
		CreatedByUserID: caller.ID,
		CreatedAt:       now,
	}
	return movRepo.Create(mov)
}

// doOUT: bloquea la fila, verifica saldo >= cantidad solicitada y resta.
func (uc *ApplyMovementUseCase) doOUT(
	movRepo repository.StockMovementRepository,
	balanceRepo repository.InventoryBalanceRepository,
	product *entity.Product,
	caller Caller,
	input MovementInput,
	now time.Time,
) error {
	balance, err := balanceRepo.GetForUpdate(product.ID, input.WarehouseID)
	if err != nil {
		return err
	}
	if balance.Quantity < input.Quantity {
		return domain.ErrInsufficientStock
	}
	balance.Quantity -= input.Quantity
	balance.UpdatedAt = now
	if err := balanceRepo.SetQuantity(balance); err != nil {
		return err
	}
	mov := &entity.StockMovement{
		Type:            entity.MovementTypeOUT,
		Quantity:        input.Quantity,
		Note:            noteOrNil(input.Note),
		ProductID:       product.ID,
		FromWarehouseID: strPtr(input.WarehouseID),
		CreatedByUserID: caller.ID,
		CreatedAt:       now,
	}
	return movRepo.Create(mov)
}

// doADJUST: calcula el delta según el modo y lo aplica si no deja el saldo
// negativo. En el ledger se persiste el delta APLICADO (con signo), no lo que
// tecleó el usuario; en modo SET la nota registra ambos.
func (uc *ApplyMovementUseCase) doADJUST(
	movRepo repository.StockMovementRepository,
	balanceRepo repository.InventoryBalanceRepository,
	product *entity.Product,
	caller Caller,
	input MovementInput,
	now time.Time,
) error {
	balance, err := balanceRepo.GetForUpdate(product.ID, input.WarehouseID)
	if err != nil {
		return err
	}

	requestedQuantity := input.Quantity
	appliedDelta := requestedQuantity
	if input.AdjustMode == entity.AdjustModeSet {
		appliedDelta = requestedQuantity - balance.Quantity
	}

	// El saldo final nunca puede quedar bajo cero; exactamente cero sí se permite
	if appliedDelta < 0 && balance.Quantity < -appliedDelta {
		return domain.ErrInsufficientStock
	}

	balance.Quantity += appliedDelta
	balance.UpdatedAt = now
	if err := balanceRepo.SetQuantity(balance); err != nil {
		return err
	}

	note := input.Note
	if input.AdjustMode == entity.AdjustModeSet {
		extra := fmt.Sprintf("SET to %d (delta %d)", requestedQuantity, appliedDelta)
		if note != "" {
			note = note + " | " + extra
		} else {
			note = extra
		}
	}
	mov := &entity.StockMovement{
		Type:            entity.MovementTypeADJUST,
		Quantity:        appliedDelta,
		Note:            noteOrNil(note),
		ProductID:       product.ID,
		ToWarehouseID:   strPtr(input.WarehouseID),
		CreatedByUserID: caller.ID,
		CreatedAt:       now,
	}
	return movRepo.Create(mov)
}

// doTRANSFER: bloquea origen y destino en orden determinista (por ID de
// bodega) para evitar deadlocks con un traslado inverso concurrente, resta
// del origen, suma al destino y agrega UNA entrada al ledger con ambas
// bodegas. La cantidad total del producto entre bodegas se conserva.
func (uc *ApplyMovementUseCase) doTRANSFER(
	movRepo repository.StockMovementRepository,
	balanceRepo repository.InventoryBalanceRepository,
	product *entity.Product,
	caller Caller,
	input MovementInput,
	now time.Time,
) error {
	first, second := input.WarehouseID, input.ToWarehouseID
	if second < first {
		first, second = second, first
	}
	locked := map[string]*entity.InventoryBalance{}
	for _, whID := range []string{first, second} {
		b, err := balanceRepo.GetForUpdate(product.ID, whID)
		if err != nil {
			return err
		}
		locked[whID] = b
	}
	origin := locked[input.WarehouseID]
	dest := locked[input.ToWarehouseID]

	if origin.Quantity < input.Quantity {
		return domain.ErrInsufficientStock
	}
	origin.Quantity -= input.Quantity
	dest.Quantity += input.Quantity
	origin.UpdatedAt = now
	dest.UpdatedAt = now
	if err := balanceRepo.SetQuantity(origin); err != nil {
		return err
	}
	if err := balanceRepo.SetQuantity(dest); err != nil {
		return err
	}

	mov := &entity.StockMovement{
		Type:            entity.MovementTypeTRANSFER,
		Quantity:        input.Quantity,
		Note:            noteOrNil(input.Note),
		ProductID:       product.ID,
		FromWarehouseID: strPtr(input.WarehouseID),
		ToWarehouseID:   strPtr(input.ToWarehouseID),
		CreatedByUserID: caller.ID,
		CreatedAt:       now,
	}
	return movRepo.Create(mov)
}

func containsID(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func strPtr(s string) *string { return &s }

func noteOrNil(note string) *string {
	note = strings.TrimSpace(note)
	if note == "" {
		return nil
	}
	return &note
}
