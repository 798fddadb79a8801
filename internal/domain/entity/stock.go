package entity

// LedgerEntry cantidad asociada a un tipo de movimiento para un producto.
// Puede ser un ítem individual o la suma por tipo que devuelve la base de datos.
type LedgerEntry struct {
	Type     MovementType
	Quantity int64
}

// ProductStock stock derivado de un producto; nunca se persiste.
type ProductStock struct {
	ProductID   int64
	ProductName string
	Description *string
	Stock       int64
}
