// Package table define las columnas de las tablas de inventario, préstamos, devoluciones y
// usuarios: funciones puras de una entidad validada a celdas renderizables, más filtros y
// orden sobre campos derivados. Nunca hace I/O; las acciones de fila solo publican una
// invalidación.
package table

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/Leavend/SMI-HIMPA-Client/internal/application/invalidate"
)

// ErrUnknownColumn columna inexistente o no filtrable/ordenable.
var ErrUnknownColumn = errors.New("columna desconocida")

// Column definición de una columna. Filter recibe los valores seleccionados y decide si la
// fila pasa; SortKey devuelve string, int64 o time.Time.
type Column[T any] struct {
	ID       string
	Header   string
	Cell     func(T) Cell
	SortKey  func(T) any
	Filter   func(T, []string) bool
	Sortable bool
	Hideable bool
}

// RowAction acción disponible en el menú de cada fila.
type RowAction struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// Actions columna de acciones. Completed se llama cuando una mutación iniciada desde la fila
// terminó: publica la invalidación del recurso en lugar de recargar directamente.
type Actions[T any] struct {
	Resource string
	Items    []RowAction
	Scope    func(T) string
	Bus      invalidate.Bus
}

// Completed publica la invalidación de la fila. Sin bus no hace nada.
func (a Actions[T]) Completed(ctx context.Context, row T) error {
	if a.Bus == nil || a.Resource == "" {
		return nil
	}
	e := invalidate.Event{Resource: a.Resource, Origin: "table"}
	if a.Scope != nil {
		e.Scope = a.Scope(row)
	}
	return a.Bus.Publish(ctx, e)
}

// Table columnas + acciones de una entidad.
type Table[T any] struct {
	Name    string
	Columns []Column[T]
	Actions Actions[T]
}

// Query filtros (columna → valores), orden y dirección.
type Query struct {
	Filters map[string][]string
	SortBy  string
	Desc    bool
}

// Apply filtra y ordena una copia de rows.
func (t *Table[T]) Apply(rows []T, q Query) ([]T, error) {
	out, err := t.Filter(rows, q.Filters)
	if err != nil {
		return nil, err
	}
	if q.SortBy == "" {
		return out, nil
	}
	if err := t.Sort(out, q.SortBy, q.Desc); err != nil {
		return nil, err
	}
	return out, nil
}

// Filter devuelve las filas que pasan todos los filtros. Un filtro sin valores no filtra.
func (t *Table[T]) Filter(rows []T, filters map[string][]string) ([]T, error) {
	type active struct {
		fn     func(T, []string) bool
		values []string
	}
	var checks []active
	for id, values := range filters {
		col, ok := t.column(id)
		if !ok || col.Filter == nil {
			return nil, fmt.Errorf("%w: %s", ErrUnknownColumn, id)
		}
		if len(values) > 0 {
			checks = append(checks, active{col.Filter, values})
		}
	}
	out := make([]T, 0, len(rows))
	for _, r := range rows {
		pass := true
		for _, c := range checks {
			if !c.fn(r, c.values) {
				pass = false
				break
			}
		}
		if pass {
			out = append(out, r)
		}
	}
	return out, nil
}

// Sort ordena rows en su lugar (estable) por la columna id.
func (t *Table[T]) Sort(rows []T, id string, desc bool) error {
	col, ok := t.column(id)
	if !ok || !col.Sortable || col.SortKey == nil {
		return fmt.Errorf("%w: %s", ErrUnknownColumn, id)
	}
	slices.SortStableFunc(rows, func(a, b T) int {
		c := compareKeys(col.SortKey(a), col.SortKey(b))
		if desc {
			return -c
		}
		return c
	})
	return nil
}

func (t *Table[T]) column(id string) (Column[T], bool) {
	for _, c := range t.Columns {
		if c.ID == id {
			return c, true
		}
	}
	return Column[T]{}, false
}

// Render aplica las columnas a cada fila. Nunca falla: las columnas manejan sus faltantes.
func (t *Table[T]) Render(rows []T) RenderedTable {
	out := RenderedTable{
		Name:    t.Name,
		Columns: make([]ColumnMeta, 0, len(t.Columns)),
		Rows:    make([][]Cell, 0, len(rows)),
		Actions: t.Actions.Items,
	}
	for _, c := range t.Columns {
		out.Columns = append(out.Columns, ColumnMeta{
			ID: c.ID, Header: c.Header, Sortable: c.Sortable, Hideable: c.Hideable, Filterable: c.Filter != nil,
		})
	}
	for _, r := range rows {
		cells := make([]Cell, 0, len(t.Columns))
		for _, c := range t.Columns {
			cells = append(cells, c.Cell(r))
		}
		out.Rows = append(out.Rows, cells)
	}
	if out.Actions == nil {
		out.Actions = []RowAction{}
	}
	return out
}

func compareKeys(a, b any) int {
	switch x := a.(type) {
	case string:
		y, _ := b.(string)
		return strings.Compare(strings.ToLower(x), strings.ToLower(y))
	case int64:
		y, _ := b.(int64)
		return cmp.Compare(x, y)
	case time.Time:
		y, _ := b.(time.Time)
		return x.Compare(y)
	default:
		return 0
	}
}

// contains filtro de igualdad exacta contra los valores seleccionados.
func contains(values []string, v string) bool {
	return slices.Contains(values, v)
}

// ParseFilter interpreta "columna:v1,v2" (forma usada por la CLI y el BFF).
func ParseFilter(s string) (string, []string, error) {
	id, raw, ok := strings.Cut(s, ":")
	if !ok || id == "" {
		return "", nil, fmt.Errorf("filtro inválido %q: se espera columna:valor[,valor]", s)
	}
	var values []string
	for _, v := range strings.Split(raw, ",") {
		if v = strings.TrimSpace(v); v != "" {
			values = append(values, v)
		}
	}
	return id, values, nil
}
