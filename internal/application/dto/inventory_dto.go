package dto

import "time"

// StockMovementItemRequest ítem (producto, cantidad) de un movimiento.
type StockMovementItemRequest struct {
	ProductID int64 `json:"product_id" validate:"required,gt=0"`
	Quantity  int64 `json:"quantity" validate:"required,gt=0,lte=1000000000"`
}

// CreateStockMovementRequest body para POST /stock-movements/.
type CreateStockMovementRequest struct {
	Type         string                     `json:"type" validate:"required,movement_type"`
	MovementDate *FlexTime                  `json:"movement_date" validate:"required"`
	Items        []StockMovementItemRequest `json:"items" validate:"required,min=1,dive"`
}

// UpdateStockMovementRequest body para PUT /stock-movements/{id}; los ítems no se modifican.
type UpdateStockMovementRequest struct {
	Type         string    `json:"type" validate:"required,movement_type"`
	MovementDate *FlexTime `json:"movement_date" validate:"required"`
}

// StockMovementItemResponse salida de un ítem.
type StockMovementItemResponse struct {
	ID         int64 `json:"id"`
	MovementID int64 `json:"movement_id"`
	ProductID  int64 `json:"product_id"`
	Quantity   int64 `json:"quantity"`
}

// StockMovementResponse movimiento con sus ítems.
type StockMovementResponse struct {
	ID           int64                       `json:"id"`
	Type         string                      `json:"type"`
	MovementDate time.Time                   `json:"movement_date"`
	Items        []StockMovementItemResponse `json:"items"`
}
