package movement

import (
	"context"

	"github.com/jhoicas/edm-inventario/internal/application/dto"
)

// ApplyFromRequest adapta el request HTTP al caso de uso Apply(ctx, caller, MovementInput).
// Usar desde handlers HTTP que ya tienen el Caller resuelto por el middleware de auth.
func (uc *ApplyMovementUseCase) ApplyFromRequest(ctx context.Context, caller Caller, in dto.ApplyMovementRequest) error {
	input := MovementInput{
		WarehouseID:   in.WarehouseID,
		Type:          in.Type,
		BarcodeOrSKU:  in.BarcodeOrSKU,
		Quantity:      in.Quantity,
		AdjustMode:    in.AdjustMode,
		ToWarehouseID: in.ToWarehouseID,
		Note:          in.Note,
	}
	return uc.Apply(ctx, caller, input)
}
