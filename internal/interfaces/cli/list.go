package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Leavend/SMI-HIMPA-Client/internal/application/resource"
	"github.com/Leavend/SMI-HIMPA-Client/internal/interfaces/table"
)

// listOptions flags comunes de los subcomandos list.
type listOptions struct {
	filters []string
	sort    string
	desc    bool
	force   bool
}

func (o *listOptions) bind(cmd *cobra.Command, forceable bool) {
	cmd.Flags().StringArrayVar(&o.filters, "filter", nil, "filtro columna:valor[,valor] (repetible)")
	cmd.Flags().StringVar(&o.sort, "sort", "", "columna por la que ordenar")
	cmd.Flags().BoolVar(&o.desc, "desc", false, "orden descendente")
	if forceable {
		cmd.Flags().BoolVar(&o.force, "force", false, "ignorar la caché local")
	}
}

func (o listOptions) query() (table.Query, error) {
	q := table.Query{SortBy: o.sort, Desc: o.desc}
	for _, raw := range o.filters {
		col, values, err := table.ParseFilter(raw)
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

// render filtra, ordena e imprime el estado del recurso.
func render[T any](out *OutputFormatter, tbl *table.Table[T], st resource.State[T], o listOptions) error {
	q, err := o.query()
	if err != nil {
		return NewExitError(ExitCommandError, err.Error())
	}
	rows, err := tbl.Apply(st.Data, q)
	if err != nil {
		return NewExitError(ExitCommandError, err.Error())
	}
	return out.Table(tbl.Render(rows), st.Source, st.Message, st.Err)
}

// parseDate acepta RFC 3339 o AAAA-MM-DD (medianoche UTC).
func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("fecha inválida %q: use AAAA-MM-DD o RFC 3339", s)
	}
	return t, nil
}
