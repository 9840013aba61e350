package schema

import (
	"encoding/json"
	"math"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Leavend/SMI-HIMPA-Client/internal/domain"
)

// object lee campos tipados de un registro genérico y acumula los errores por ruta.
type object struct {
	path   string
	fields map[string]any
	errs   *[]domain.FieldError
}

func newObject(path string, fields map[string]any, errs *[]domain.FieldError) *object {
	return &object{path: path, fields: fields, errs: errs}
}

func (o *object) at(key string) string {
	if o.path == "" {
		return key
	}
	return o.path + "." + key
}

func (o *object) fail(key, reason string) {
	*o.errs = append(*o.errs, domain.FieldError{Path: o.at(key), Reason: reason})
}

// str lee un string obligatorio.
func (o *object) str(key string) string {
	v, ok := o.fields[key]
	if !ok || v == nil {
		o.fail(key, "requerido")
		return ""
	}
	s, ok := v.(string)
	if !ok {
		o.fail(key, "debe ser texto")
		return ""
	}
	return s
}

// optStr lee un string opcional; ausente o null devuelve "".
func (o *object) optStr(key string) string {
	v, ok := o.fields[key]
	if !ok || v == nil {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		o.fail(key, "debe ser texto")
		return ""
	}
	return s
}

// integer coerciona número o texto numérico a entero.
func (o *object) integer(key string) int64 {
	v, ok := o.fields[key]
	if !ok || v == nil {
		o.fail(key, "requerido")
		return 0
	}
	var d decimal.Decimal
	var err error
	switch n := v.(type) {
	case json.Number:
		d, err = decimal.NewFromString(n.String())
	case string:
		d, err = decimal.NewFromString(n)
	default:
		o.fail(key, "debe ser numérico")
		return 0
	}
	if err != nil {
		o.fail(key, "debe ser numérico")
		return 0
	}
	if !d.IsInteger() {
		o.fail(key, "debe ser entero")
		return 0
	}
	if d.GreaterThan(decimal.NewFromInt(math.MaxInt64)) || d.LessThan(decimal.NewFromInt(math.MinInt64)) {
		o.fail(key, "fuera de rango")
		return 0
	}
	return d.IntPart()
}

// timestamp lee una fecha RFC 3339 obligatoria.
func (o *object) timestamp(key string) time.Time {
	v, ok := o.fields[key]
	if !ok || v == nil {
		o.fail(key, "requerido")
		return time.Time{}
	}
	return o.parseTime(key, v)
}

// nullableTime exige que el campo esté presente: null produce nil, cualquier otro valor debe
// ser una fecha válida. La ausencia no equivale a null (la normalización decide cuándo
// rellenar null).
func (o *object) nullableTime(key string) *time.Time {
	v, ok := o.fields[key]
	if !ok {
		o.fail(key, "requerido (puede ser null)")
		return nil
	}
	if v == nil {
		return nil
	}
	t := o.parseTime(key, v)
	if t.IsZero() {
		return nil
	}
	return &t
}

func (o *object) parseTime(key string, v any) time.Time {
	s, ok := v.(string)
	if !ok {
		o.fail(key, "debe ser una fecha")
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		o.fail(key, "fecha inválida")
		return time.Time{}
	}
	return t
}

// child devuelve el sub-objeto opcional key; ausente produce (nil, false).
func (o *object) child(key string) (*object, bool) {
	v, ok := o.fields[key]
	if !ok || v == nil {
		return nil, false
	}
	m, ok := v.(map[string]any)
	if !ok {
		o.fail(key, "debe ser un objeto")
		return nil, false
	}
	return newObject(o.at(key), m, o.errs), true
}

// list devuelve los elementos del arreglo key; la normalización garantiza que sea arreglo.
func (o *object) list(key string) []*object {
	v, ok := o.fields[key]
	if !ok || v == nil {
		return nil
	}
	arr, ok := v.([]any)
	if !ok {
		o.fail(key, "debe ser un arreglo")
		return nil
	}
	out := make([]*object, 0, len(arr))
	for i, item := range arr {
		m, ok := item.(map[string]any)
		if !ok {
			*o.errs = append(*o.errs, domain.FieldError{Path: indexPath(o.at(key), i), Reason: "debe ser un objeto"})
			continue
		}
		out = append(out, newObject(indexPath(o.at(key), i), m, o.errs))
	}
	return out
}

func indexPath(path string, i int) string {
	return path + "[" + strconv.Itoa(i) + "]"
}

// optText lee un texto opcional que el servidor a veces envía como número (p. ej. teléfonos).
func (o *object) optText(key string) string {
	switch v := o.fields[key].(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	default:
		o.fail(key, "debe ser texto")
		return ""
	}
}
