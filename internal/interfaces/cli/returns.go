package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/Leavend/SMI-HIMPA-Client/internal/application/session"
	"github.com/Leavend/SMI-HIMPA-Client/internal/interfaces/table"
)

// userMe valor de --user que representa al usuario del token.
const userMe = "me"

func newReturnsCommand(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "returns",
		Short: "Devoluciones",
	}
	var (
		lo     listOptions
		userID string
	)
	list := &cobra.Command{
		Use:   "list",
		Short: "Listar devoluciones (todas como administrador, --user para las de un usuario)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return e.run(cmd, func(ctx context.Context, rt *Runtime, out *OutputFormatter) error {
				tbl := table.Returns(rt.Formatter)
				if userID == "" {
					return render(out, tbl, rt.Workspace.Returns.FetchAllAdmin(ctx, lo.force), lo)
				}
				id := userID
				if id == userMe {
					id = session.Subject(rt.Workspace.Session)
				}
				return render(out, tbl, rt.Workspace.Returns.FetchByUser(ctx, id, lo.force), lo)
			})
		},
	}
	lo.bind(list, true)
	list.Flags().StringVar(&userID, "user", "", `userId ("me" = usuario del token)`)
	cmd.AddCommand(list)
	return cmd
}
