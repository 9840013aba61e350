package table_test

import (
	"bytes"
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Leavend/SMI-HIMPA-Client/internal/application/invalidate"
	"github.com/Leavend/SMI-HIMPA-Client/internal/domain/entity"
	"github.com/Leavend/SMI-HIMPA-Client/internal/domain/schema"
	"github.com/Leavend/SMI-HIMPA-Client/internal/interfaces/table"
)

func at(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

func ptr(t time.Time) *time.Time { return &t }

func texts(r table.RenderedTable, col int) []string {
	out := make([]string, 0, len(r.Rows))
	for _, row := range r.Rows {
		out = append(out, row[col].Text)
	}
	return out
}

func inventories() []entity.Inventory {
	return []entity.Inventory{
		{
			ID: "inv-1", Name: "Proyector", Quantity: 3, Condition: entity.ConditionAvailable, Code: "PRJ-01",
			CreatedAt: at("2024-05-01T08:00:00Z"), UpdatedAt: at("2024-05-02T08:00:00Z"),
		},
		{
			ID: "inv-2", Name: "Kamera Sony", Quantity: 1200, Condition: entity.ConditionDamaged, Code: "CAM-07",
			CreatedAt: at("2024-12-31T17:30:00Z"), UpdatedAt: at("2024-12-31T17:30:00Z"),
		},
	}
}

// ── Formatter ─────────────────────────────────────────────────────────────────

func TestFormatter_FechasEnZonaFija(t *testing.T) {
	ts := at("2024-05-01T08:00:00Z")

	id := table.DefaultFormatter()
	assert.Equal(t, "1 Mei 2024", id.Date(ts))
	assert.Equal(t, "1 Mei 2024 pukul 16.00.00", id.DateTime(ts))
	// 17:30 UTC ya es el día siguiente en UTC+8.
	assert.Equal(t, "1 Januari 2025", id.Date(at("2024-12-31T17:30:00Z")))

	es := table.NewFormatter("es-ES", table.DefaultTimezone)
	assert.Equal(t, "1 de mayo de 2024, 16:00:00", es.DateTime(ts))

	en := table.NewFormatter("en-US", table.DefaultTimezone)
	assert.Equal(t, "May 1, 2024", en.Date(ts))
}

func TestFormatter_ZonaInvalidaCaeAUTCMas8(t *testing.T) {
	f := table.NewFormatter("no-es-un-locale!!", "Nowhere/Zone")

	assert.Equal(t, "1 Mei 2024 pukul 16.00.00", f.DateTime(at("2024-05-01T08:00:00Z")))
}

func TestFormatter_Numeros(t *testing.T) {
	assert.Equal(t, "1.234.567", table.DefaultFormatter().Number(1234567))
	assert.Equal(t, "1,234,567", table.NewFormatter("en-US", table.DefaultTimezone).Number(1234567))
}

// ── Inventario ────────────────────────────────────────────────────────────────

func TestInventories_TextoGolden(t *testing.T) {
	g := goldie.New(t)
	var buf bytes.Buffer

	require.NoError(t, table.WriteText(&buf, table.Inventories(table.DefaultFormatter(), nil).Render(inventories())))

	g.Assert(t, "inventories_text", buf.Bytes())
}

func TestInventories_CondicionDesconocidaQuedaVacia(t *testing.T) {
	items := inventories()
	items[0].Condition = "Broken"

	r := table.Catalog(table.DefaultFormatter()).Render(items)

	assert.Equal(t, []string{"", "Dañado"}, texts(r, 2))
	assert.Empty(t, r.Actions)
}

func TestInventories_FiltroYOrden(t *testing.T) {
	tbl := table.Inventories(table.DefaultFormatter(), nil)

	rows, err := tbl.Apply(inventories(), table.Query{SortBy: "quantity", Desc: true})
	require.NoError(t, err)
	assert.Equal(t, "Kamera Sony", rows[0].Name)

	rows, err = tbl.Apply(inventories(), table.Query{Filters: map[string][]string{"condition": {"Available"}}})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Proyector", rows[0].Name)

	_, err = tbl.Apply(inventories(), table.Query{Filters: map[string][]string{"code": {"x"}}})
	assert.ErrorIs(t, err, table.ErrUnknownColumn)
	_, err = tbl.Apply(inventories(), table.Query{SortBy: "nada"})
	assert.ErrorIs(t, err, table.ErrUnknownColumn)
}

// ── Préstamos ─────────────────────────────────────────────────────────────────

const borrowBase = `{
	"borrowId": "b-1", "quantity": 1, "dateBorrow": "2024-05-01T08:00:00Z", "dateReturn": null,
	"userId": "u-1", "adminId": "a-1", "createdAt": "2024-05-01T08:00:00Z",
	"updatedAt": "2024-05-01T08:00:00Z", "user": {"Username": "budi"}, "borrowDetails": %s
}`

const detail = `{
	"borrowDetailId": "5b8f0e5c-1e39-4f4e-9a53-0f3f3c6b1a01", "borrowId": "5b8f0e5c-1e39-4f4e-9a53-0f3f3c6b1a02",
	"inventoryId": "5b8f0e5c-1e39-4f4e-9a53-0f3f3c6b1a03", "status": "%s",
	"createdAt": "2024-05-01T08:00:00Z", "updatedAt": "2024-05-01T08:00:00Z",
	"inventory": {"name": "Proyector"}
}`

func borrowPayload(details string) []byte {
	return []byte(fmt.Sprintf(borrowBase, details))
}

func TestBorrows_DetalleSingularYPluralRenderizanIgual(t *testing.T) {
	single, err := schema.Borrows(borrowPayload(fmt.Sprintf(detail, "PENDING")))
	require.NoError(t, err)
	plural, err := schema.Borrows(borrowPayload("[" + fmt.Sprintf(detail, "PENDING") + "]"))
	require.NoError(t, err)
	tbl := table.Borrows(table.DefaultFormatter(), nil)

	assert.Equal(t, tbl.Render(plural), tbl.Render(single))
}

func TestBorrows_EstadoDesconocidoNoRompeLaFila(t *testing.T) {
	rows, err := schema.Borrows(borrowPayload("[" + fmt.Sprintf(detail, "ARCHIVED") + "," + fmt.Sprintf(detail, "ACTIVE") + "]"))
	require.NoError(t, err)

	r := table.Borrows(table.DefaultFormatter(), nil).Render(rows)

	require.Len(t, r.Rows, 1)
	status := r.Rows[0][5]
	assert.Equal(t, table.VariantList, status.Variant)
	require.Len(t, status.Items, 2)
	assert.Equal(t, table.Unknown, status.Items[0].Text)
	assert.Equal(t, "Activo", status.Items[1].Text)
	assert.Equal(t, "Desconocido, Activo", status.Text)
}

func TestBorrows_FaltantesUsanTextosDeRespaldo(t *testing.T) {
	r := table.Borrows(table.DefaultFormatter(), nil).Render([]entity.Borrow{{ID: "b-1", DateBorrow: at("2024-05-01T08:00:00Z")}})

	row := r.Rows[0]
	assert.Equal(t, table.NoName, row[0].Text)
	assert.Equal(t, table.NoUser, row[1].Text)
	assert.Equal(t, table.NotReturned, row[4].Text)
	assert.Equal(t, table.VariantBadge, row[4].Variant)
	assert.Equal(t, table.NoStatus, row[5].Text)
	assert.Equal(t, table.ToneMuted, row[5].Tone)
}

func TestBorrows_FiltroSobreTodosLosDetalles(t *testing.T) {
	mixed := entity.Borrow{ID: "b-1", Details: []entity.BorrowDetail{{Status: entity.StatusPending}, {Status: entity.StatusReturned}}}
	active := entity.Borrow{ID: "b-2", Details: []entity.BorrowDetail{{Status: entity.StatusActive}}}
	empty := entity.Borrow{ID: "b-3"}
	tbl := table.Borrows(table.DefaultFormatter(), nil)

	rows, err := tbl.Filter([]entity.Borrow{mixed, active, empty}, map[string][]string{"status": {"RETURNED"}})

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "b-1", rows[0].ID)
}

func TestBorrows_AccionPublicaInvalidacionAcotada(t *testing.T) {
	bus := invalidate.NewLocalBus()
	var got []invalidate.Event
	bus.Subscribe(invalidate.Borrow, func(_ context.Context, e invalidate.Event) { got = append(got, e) })
	tbl := table.Borrows(table.DefaultFormatter(), bus)

	require.NoError(t, tbl.Actions.Completed(context.Background(), entity.Borrow{ID: "b-1", UserID: "u-7"}))

	require.Len(t, got, 1)
	assert.Equal(t, "u-7", got[0].Scope)
	assert.Equal(t, "table", got[0].Origin)
	assert.Len(t, tbl.Render(nil).Actions, 2)
}

func TestBorrows_SinBusNoHayAcciones(t *testing.T) {
	tbl := table.Borrows(table.DefaultFormatter(), nil)

	assert.NoError(t, tbl.Actions.Completed(context.Background(), entity.Borrow{}))
	assert.Empty(t, tbl.Render(nil).Actions)
}

// ── Devoluciones ──────────────────────────────────────────────────────────────

func TestReturns_JSONGolden(t *testing.T) {
	rows := []entity.Return{
		{
			ID: "r-1", BorrowID: "b-1", Quantity: 1, DateBorrow: at("2024-05-01T08:00:00Z"),
			DateReturn: ptr(at("2024-05-06T08:00:00Z")), LateDays: 2,
			Borrow: &entity.ReturnBorrow{Details: []entity.ReturnDetail{{
				Status: entity.StatusReturned, Inventory: &entity.InventoryRef{Name: "Proyector"},
			}}},
		},
		{ID: "r-2", BorrowID: "b-2", Quantity: 1, DateBorrow: at("2024-06-10T01:00:00Z")},
	}
	var buf bytes.Buffer

	require.NoError(t, table.WriteJSON(&buf, table.Returns(table.DefaultFormatter()).Render(rows)))

	goldie.New(t).Assert(t, "returns_json", buf.Bytes())
}

func TestReturns_TonoDeAtraso(t *testing.T) {
	r := table.Returns(table.DefaultFormatter()).Render([]entity.Return{{LateDays: 0}, {LateDays: 4}})

	assert.Equal(t, table.ToneSuccess, r.Rows[0][3].Tone)
	assert.Equal(t, table.ToneDanger, r.Rows[1][3].Tone)
	assert.Equal(t, "4 días", r.Rows[1][3].Text)
}

// ── Usuarios ──────────────────────────────────────────────────────────────────

func TestUsers_RolYFiltro(t *testing.T) {
	users := []entity.User{
		{ID: "u-1", Username: "ana", Role: entity.RoleAdmin, Password: "secreto"},
		{ID: "u-2", Username: "budi", Role: entity.RoleBorrower},
	}
	tbl := table.Users(table.DefaultFormatter(), nil)

	r := tbl.Render(users)
	assert.Equal(t, []string{"Administrador", "Prestatario"}, texts(r, 2))
	for _, row := range r.Rows {
		for _, c := range row {
			assert.NotContains(t, c.Text, "secreto")
		}
	}

	rows, err := tbl.Filter(users, map[string][]string{"role": {entity.RoleBorrower}})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "budi", rows[0].Username)
}

func TestParseFilter(t *testing.T) {
	id, values, err := table.ParseFilter("status:PENDING, ACTIVE,")
	require.NoError(t, err)
	assert.Equal(t, "status", id)
	assert.Equal(t, []string{"PENDING", "ACTIVE"}, values)

	_, _, err = table.ParseFilter("sin-separador")
	assert.Error(t, err)
}
