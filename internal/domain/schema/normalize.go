package schema

import "github.com/Leavend/SMI-HIMPA-Client/internal/domain/entity"

// Normalización: convierte las formas inconsistentes del servidor (singular vs. arreglo,
// ausente vs. null) en una única forma canónica. Se aplica igual a payloads del servidor y
// de la caché, así que todo lo que está aguas abajo ve siempre secuencias y null explícitos.

// nullableKeys campos nullable que, si faltan, se normalizan a null explícito.
var nullableKeys = []string{"deletedAt", "dateReturn"}

func normalizeInventory(m map[string]any) {
	fillNull(m, "deletedAt")
}

func normalizeUser(m map[string]any) {
	fillNull(m, "deletedAt")
	if role, _ := m["role"].(string); role != entity.RoleAdmin && role != entity.RoleBorrower {
		m["role"] = entity.RoleBorrower
	}
	if v, ok := m["password"]; !ok || v == nil {
		m["password"] = ""
	}
}

func normalizeBorrow(m map[string]any) {
	fillNull(m, nullableKeys...)
	details := asSequence(m, "borrowDetails")
	for _, d := range details {
		if dm, ok := d.(map[string]any); ok {
			fillNull(dm, "deletedAt")
			dropNull(dm, "inventory")
		}
	}
	normalizeEmbeddedUser(m)
}

func normalizeReturn(m map[string]any) {
	fillNull(m, nullableKeys...)
	dropNull(m, "borrow")
	b, ok := m["borrow"].(map[string]any)
	if !ok {
		return
	}
	dropNull(b, "status")
	for _, d := range asSequence(b, "borrowDetails") {
		if dm, ok := d.(map[string]any); ok {
			dropNull(dm, "inventory", "status")
		}
	}
	normalizeEmbeddedUser(b)
}

// normalizeEmbeddedUser unifica user.Username / user.username y descarta user null.
func normalizeEmbeddedUser(m map[string]any) {
	dropNull(m, "user")
	u, ok := m["user"].(map[string]any)
	if !ok {
		return
	}
	if _, has := u["username"]; !has {
		if legacy, ok := u["Username"]; ok {
			u["username"] = legacy
		}
	}
	delete(u, "Username")
	if v, ok := u["username"]; !ok || v == nil {
		u["username"] = ""
	}
}

// asSequence deja m[key] como arreglo: ausente/null → [], objeto → [objeto].
func asSequence(m map[string]any, key string) []any {
	switch v := m[key].(type) {
	case []any:
		return v
	case map[string]any:
		seq := []any{v}
		m[key] = seq
		return seq
	case nil:
		seq := []any{}
		m[key] = seq
		return seq
	default:
		// Tipo inesperado: se deja tal cual para que la lectura tipada lo reporte.
		return nil
	}
}

func fillNull(m map[string]any, keys ...string) {
	for _, k := range keys {
		if _, ok := m[k]; !ok {
			m[k] = nil
		}
	}
}

func dropNull(m map[string]any, keys ...string) {
	for _, k := range keys {
		if v, ok := m[k]; ok && v == nil {
			delete(m, k)
		}
	}
}
