package table

import "github.com/Leavend/SMI-HIMPA-Client/internal/domain/entity"

// Textos de respaldo para datos ausentes o desconocidos.
const (
	Unknown     = "Desconocido"
	NoName      = "Sin nombre"
	NoUser      = "Sin usuario"
	NoStatus    = "Sin estado"
	NotReturned = "No devuelto"
)

type statusLabel struct {
	label string
	tone  Tone
}

var statusLabels = map[entity.BorrowStatus]statusLabel{
	entity.StatusPending:  {"Pendiente", ToneOutline},
	entity.StatusActive:   {"Activo", ToneDefault},
	entity.StatusRejected: {"Rechazado", ToneDestructive},
	entity.StatusReturned: {"Devuelto", ToneSecondary},
}

// StatusBadge badge de un estado; los valores fuera del conjunto conocido se muestran como
// Desconocido.
func StatusBadge(s entity.BorrowStatus) Cell {
	if l, ok := statusLabels[s]; ok {
		return Badge(l.label, l.tone)
	}
	return Badge(Unknown, ToneSecondary)
}

var conditionLabels = map[string]string{
	entity.ConditionAvailable:    "Disponible",
	entity.ConditionOutOfStock:   "Agotado",
	entity.ConditionReserved:     "Reservado",
	entity.ConditionDamaged:      "Dañado",
	entity.ConditionDiscontinued: "Descontinuado",
}

var roleLabels = map[string]string{
	entity.RoleAdmin:    "Administrador",
	entity.RoleBorrower: "Prestatario",
}
