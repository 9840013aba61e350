// Package schema valida y normaliza los payloads de la API y de la caché local antes de que
// lleguen al estado de los recursos. El flujo es siempre el mismo:
//
//	JSON crudo → registros genéricos → Normalize → lectura tipada con coerción → validator/v10
//
// Un payload puede ser un arreglo o un único objeto; las funciones de colección tratan un
// objeto suelto como secuencia de un elemento. Un fallo nunca produce resultados parciales.
package schema

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/Leavend/SMI-HIMPA-Client/internal/domain"
	"github.com/Leavend/SMI-HIMPA-Client/internal/domain/entity"
)

// Inventories valida una colección de Inventory.
func Inventories(raw []byte) ([]entity.Inventory, error) {
	return collection(raw, normalizeInventory, readInventory)
}

// Inventory valida un único Inventory.
func Inventory(raw []byte) (entity.Inventory, error) {
	return single(raw, normalizeInventory, readInventory)
}

// Users valida una colección de User.
func Users(raw []byte) ([]entity.User, error) {
	return collection(raw, normalizeUser, readUser)
}

// User valida un único User.
func User(raw []byte) (entity.User, error) {
	return single(raw, normalizeUser, readUser)
}

// Borrows valida una colección de Borrow (con sus BorrowDetail).
func Borrows(raw []byte) ([]entity.Borrow, error) {
	return collection(raw, normalizeBorrow, readBorrow)
}

// Borrow valida un único Borrow.
func Borrow(raw []byte) (entity.Borrow, error) {
	return single(raw, normalizeBorrow, readBorrow)
}

// Returns valida una colección de Return.
func Returns(raw []byte) ([]entity.Return, error) {
	return collection(raw, normalizeReturn, readReturn)
}

// Return valida un único Return.
func Return(raw []byte) (entity.Return, error) {
	return single(raw, normalizeReturn, readReturn)
}

type (
	normalizeFunc   func(map[string]any)
	readFunc[T any] func(*object) T
)

func collection[T any](raw []byte, normalize normalizeFunc, read readFunc[T]) ([]T, error) {
	records, err := parseRecords(raw)
	if err != nil {
		return nil, err
	}
	var fields []domain.FieldError
	out := make([]T, 0, len(records))
	for i, rec := range records {
		path := fmt.Sprintf("[%d]", i)
		m, ok := rec.(map[string]any)
		if !ok {
			fields = append(fields, domain.FieldError{Path: path, Reason: "debe ser un objeto"})
			continue
		}
		normalize(m)
		obj := newObject(path, m, &fields)
		item := read(obj)
		fields = append(fields, structErrors(path, &item)...)
		out = append(out, item)
	}
	if len(fields) > 0 {
		return nil, invalidData(fields)
	}
	return out, nil
}

func single[T any](raw []byte, normalize normalizeFunc, read readFunc[T]) (T, error) {
	var zero T
	root, err := parseJSON(raw)
	if err != nil {
		return zero, err
	}
	m, ok := root.(map[string]any)
	if !ok {
		return zero, invalidData([]domain.FieldError{{Path: "$", Reason: "debe ser un objeto"}})
	}
	var fields []domain.FieldError
	normalize(m)
	item := read(newObject("", m, &fields))
	fields = append(fields, structErrors("", &item)...)
	if len(fields) > 0 {
		return zero, invalidData(fields)
	}
	return item, nil
}

// parseRecords acepta un arreglo de registros o un único registro.
func parseRecords(raw []byte) ([]any, error) {
	root, err := parseJSON(raw)
	if err != nil {
		return nil, err
	}
	switch v := root.(type) {
	case []any:
		return v, nil
	case map[string]any:
		return []any{v}, nil
	default:
		return nil, invalidData([]domain.FieldError{{Path: "$", Reason: "se esperaba un arreglo u objeto"}})
	}
}

func parseJSON(raw []byte) (any, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, invalidData([]domain.FieldError{{Path: "$", Reason: "payload vacío"}})
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var root any
	if err := dec.Decode(&root); err != nil {
		return nil, invalidData([]domain.FieldError{{Path: "$", Reason: "JSON mal formado: " + err.Error()}})
	}
	if root == nil {
		return nil, invalidData([]domain.FieldError{{Path: "$", Reason: "payload nulo"}})
	}
	return root, nil
}

func invalidData(fields []domain.FieldError) error {
	return domain.NewValidation(domain.CodeInvalidData, "payload no cumple el esquema", dedupe(fields))
}
