package table

import (
	"encoding/json"
	"io"
	"strings"
	"text/tabwriter"
)

// ColumnMeta cabecera de una columna renderizada.
type ColumnMeta struct {
	ID         string `json:"id"`
	Header     string `json:"header"`
	Sortable   bool   `json:"sortable"`
	Hideable   bool   `json:"hideable"`
	Filterable bool   `json:"filterable"`
}

// RenderedTable tabla lista para serializar: Rows[i][j] es la celda j de la fila i.
type RenderedTable struct {
	Name    string       `json:"name"`
	Columns []ColumnMeta `json:"columns"`
	Rows    [][]Cell     `json:"rows"`
	Actions []RowAction  `json:"actions"`
}

// WriteJSON escribe la tabla como JSON indentado.
func WriteJSON(w io.Writer, t RenderedTable) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(t)
}

// WriteText escribe la tabla alineada en columnas.
func WriteText(w io.Writer, t RenderedTable) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	headers := make([]string, 0, len(t.Columns))
	for _, c := range t.Columns {
		headers = append(headers, strings.ToUpper(c.Header))
	}
	if _, err := io.WriteString(tw, strings.Join(headers, "\t")+"\n"); err != nil {
		return err
	}
	for _, row := range t.Rows {
		texts := make([]string, 0, len(row))
		for _, c := range row {
			texts = append(texts, plain(c.Text))
		}
		if _, err := io.WriteString(tw, strings.Join(texts, "\t")+"\n"); err != nil {
			return err
		}
	}
	return tw.Flush()
}

// plain evita que tabs o saltos de línea del servidor rompan la alineación.
func plain(s string) string {
	return strings.NewReplacer("\t", " ", "\n", " ", "\r", " ").Replace(s)
}

// Plain cabeceras y textos de cada celda (exportación PDF).
func (t RenderedTable) Plain() ([]string, [][]string) {
	headers := make([]string, 0, len(t.Columns))
	for _, c := range t.Columns {
		headers = append(headers, c.Header)
	}
	rows := make([][]string, 0, len(t.Rows))
	for _, r := range t.Rows {
		texts := make([]string, 0, len(r))
		for _, c := range r {
			texts = append(texts, c.Text)
		}
		rows = append(rows, texts)
	}
	return headers, rows
}
