package schema

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Leavend/SMI-HIMPA-Client/internal/domain"
	"github.com/Leavend/SMI-HIMPA-Client/internal/domain/entity"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("inventory_condition", func(fl validator.FieldLevel) bool {
		return entity.IsCondition(fl.Field().String())
	})
	_ = v.RegisterValidation("user_role", func(fl validator.FieldLevel) bool {
		r := fl.Field().String()
		return r == entity.RoleAdmin || r == entity.RoleBorrower
	})
	_ = v.RegisterValidation("borrow_decision", func(fl validator.FieldLevel) bool {
		return entity.BorrowStatus(fl.Field().String()).IsDecision()
	})
	_ = v.RegisterValidation("borrow_status", func(fl validator.FieldLevel) bool {
		return entity.BorrowStatus(fl.Field().String()).Known()
	})
	return v
}

// ValidateStruct valida un DTO de entrada (esquemas parciales de las mutaciones).
// Devuelve un *domain.Error de validación con código INVALID_INPUT.
func ValidateStruct(v any) error {
	fields := structErrors("", v)
	if len(fields) == 0 {
		return nil
	}
	return domain.NewValidation(domain.CodeInvalidInput, "datos de entrada inválidos", fields)
}

// structErrors ejecuta validator/v10 sobre v y traduce cada fallo a una ruta relativa a prefix.
func structErrors(prefix string, v any) []domain.FieldError {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []domain.FieldError{{Path: joinPath(prefix, "$"), Reason: err.Error()}}
	}
	out := make([]domain.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, domain.FieldError{
			Path:   joinPath(prefix, trimRoot(fe.Namespace())),
			Reason: reason(fe),
		})
	}
	return out
}

// trimRoot quita el nombre del tipo raíz del namespace ("Inventory.quantity" → "quantity").
func trimRoot(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func joinPath(prefix, rest string) string {
	switch {
	case prefix == "":
		return rest
	case rest == "":
		return prefix
	default:
		return prefix + "." + rest
	}
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "requerido"
	case "gte":
		return "debe ser mayor o igual a " + fe.Param()
	case "gt":
		return "debe ser mayor que " + fe.Param()
	case "min":
		return "longitud mínima " + fe.Param()
	case "max":
		return "longitud máxima " + fe.Param()
	case "email":
		return "correo inválido"
	case "uuid":
		return "debe ser un UUID"
	case "oneof":
		return "debe ser uno de: " + fe.Param()
	case "eqfield":
		return "debe coincidir con " + fe.Param()
	case "inventory_condition":
		return "condición desconocida"
	case "user_role":
		return "rol desconocido"
	case "borrow_decision":
		return "decisión inválida (ACTIVE o REJECTED)"
	case "borrow_status":
		return "estado desconocido"
	case "gtfield":
		return "debe ser posterior a " + fe.Param()
	default:
		return "no cumple la regla " + fe.Tag()
	}
}

// dedupe elimina fallos repetidos (la lectura tipada y el validador pueden reportar el mismo campo).
func dedupe(fields []domain.FieldError) []domain.FieldError {
	seen := make(map[domain.FieldError]struct{}, len(fields))
	out := fields[:0]
	for _, f := range fields {
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		out = append(out, f)
	}
	return out
}
