package http

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Leavend/SMI-HIMPA-Client/internal/application/dto"
	"github.com/Leavend/SMI-HIMPA-Client/internal/application/invalidate"
	"github.com/Leavend/SMI-HIMPA-Client/internal/application/resource"
	"github.com/Leavend/SMI-HIMPA-Client/internal/application/usecase"
	"github.com/Leavend/SMI-HIMPA-Client/internal/domain"
	"github.com/Leavend/SMI-HIMPA-Client/internal/domain/entity"
	"github.com/Leavend/SMI-HIMPA-Client/internal/infrastructure/pdf"
	"github.com/Leavend/SMI-HIMPA-Client/internal/interfaces/table"
	"github.com/Leavend/SMI-HIMPA-Client/pkg/logger"
)

// Tablas disponibles en /api/tables/:name.
const (
	TableInventories = "inventories"
	TableCatalog     = "catalog"
	TableBorrows     = "borrows"
	TableMyBorrows   = "my-borrows"
	TableReturns     = "returns"
	TableMyReturns   = "my-returns"
	TableUsers       = "users"
)

// adminTables requieren rol ADMIN antes de tocar la API.
var adminTables = map[string]bool{
	TableInventories: true,
	TableBorrows:     true,
	TableReturns:     true,
	TableUsers:       true,
}

var tableTitles = map[string]string{
	TableInventories: "Inventario",
	TableCatalog:     "Catálogo",
	TableBorrows:     "Préstamos",
	TableMyBorrows:   "Mis préstamos",
	TableReturns:     "Devoluciones",
	TableMyReturns:   "Mis devoluciones",
	TableUsers:       "Usuarios",
}

// TableView respuesta de una tabla: las filas vigentes más el estado del recurso. Con error
// se conservan las últimas filas buenas.
type TableView struct {
	Table     table.RenderedTable `json:"table"`
	Loading   bool                `json:"loading"`
	Error     string              `json:"error,omitempty"`
	Source    resource.Source     `json:"source,omitempty"`
	UpdatedAt *time.Time          `json:"updatedAt,omitempty"`
}

// TableHandler renderiza las tablas de la sesión como JSON o PDF.
type TableHandler struct {
	bus    invalidate.Bus
	format table.Formatter
	pdf    *pdf.TablePDFGenerator
	log    *logger.Logger
}

// NewTableHandler crea el handler. bus alimenta las acciones de fila de las tablas de admin.
func NewTableHandler(bus invalidate.Bus, format table.Formatter, gen *pdf.TablePDFGenerator, log *logger.Logger) *TableHandler {
	return &TableHandler{bus: bus, format: format, pdf: gen, log: log.Component("tables")}
}

// Get GET /api/tables/:name (también :name.pdf).
func (h *TableHandler) Get(c *fiber.Ctx) error {
	name := c.Params("name")
	asPDF := strings.HasSuffix(name, ".pdf")
	name = strings.TrimSuffix(name, ".pdf")
	if _, ok := tableTitles[name]; !ok {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "UNKNOWN_TABLE", Message: "tabla desconocida: " + name})
	}
	if adminTables[name] && GetRole(c) != entity.RoleAdmin {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: domain.CodeForbidden, Message: "se requiere rol de administrador"})
	}
	q, err := parseQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: err.Error()})
	}
	ws := GetWorkspace(c)
	if ws == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: domain.CodeMissingToken, Message: "sesión requerida"})
	}

	view, err := h.build(c, ws, name, q, c.QueryBool("force"))
	if err != nil {
		if errors.Is(err, table.ErrUnknownColumn) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "UNKNOWN_COLUMN", Message: err.Error()})
		}
		h.log.Error().Err(err).Str("table", name).Msg("error armando tabla")
		return writeError(c, err, "No se pudo cargar la tabla.")
	}
	if asPDF {
		return h.writePDF(c, name, view)
	}
	return c.JSON(view)
}

func (h *TableHandler) build(c *fiber.Ctx, ws *usecase.Workspace, name string, q table.Query, force bool) (TableView, error) {
	ctx := c.Context()
	userID := GetUserID(c)
	switch name {
	case TableInventories:
		return view(table.Inventories(h.format, h.bus), ws.Inventories.FetchAll(ctx, force), q)
	case TableCatalog:
		return view(table.Catalog(h.format), ws.Catalog.FetchAll(ctx, force), q)
	case TableBorrows:
		return view(table.Borrows(h.format, h.bus), ws.Borrows.FetchAll(ctx, force), q)
	case TableMyBorrows:
		return view(table.Borrows(h.format, nil), ws.MyBorrows.FetchAll(ctx, userID), q)
	case TableReturns:
		return view(table.Returns(h.format), ws.Returns.FetchAllAdmin(ctx, force), q)
	case TableMyReturns:
		return view(table.Returns(h.format), ws.Returns.FetchByUser(ctx, userID, force), q)
	default:
		return view(table.Users(h.format, h.bus), ws.Users.FetchAll(ctx, force), q)
	}
}

func view[T any](tbl *table.Table[T], st resource.State[T], q table.Query) (TableView, error) {
	rows, err := tbl.Apply(st.Data, q)
	if err != nil {
		return TableView{}, err
	}
	v := TableView{
		Table:   tbl.Render(rows),
		Loading: st.Loading,
		Error:   st.Message,
		Source:  st.Source,
	}
	if !st.UpdatedAt.IsZero() {
		at := st.UpdatedAt
		v.UpdatedAt = &at
	}
	return v, nil
}

func (h *TableHandler) writePDF(c *fiber.Ctx, name string, v TableView) error {
	headers, rows := v.Table.Plain()
	body, err := h.pdf.Generate(c.Context(), pdf.Document{
		Title:       tableTitles[name],
		Subtitle:    v.Error,
		GeneratedAt: h.format.DateTime(time.Now()),
		Headers:     headers,
		Rows:        rows,
	})
	if err != nil {
		h.log.Error().Err(err).Str("table", name).Msg("error generando PDF")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "PDF_ERROR", Message: "No se pudo generar el PDF."})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+name+`.pdf"`)
	return c.Send(body)
}

// parseQuery lee filter (repetible, "columna:v1,v2"), sort y desc.
func parseQuery(c *fiber.Ctx) (table.Query, error) {
	q := table.Query{SortBy: c.Query("sort"), Desc: c.QueryBool("desc")}
	for _, raw := range c.Context().QueryArgs().PeekMulti("filter") {
		col, values, err := table.ParseFilter(string(raw))
		if err != nil {
			return q, err
		}
		if q.Filters == nil {
			q.Filters = map[string][]string{}
		}
		q.Filters[col] = append(q.Filters[col], values...)
	}
	return q, nil
}
