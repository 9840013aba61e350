package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/Leavend/SMI-HIMPA-Client/internal/interfaces/table"
)

func newUsersCommand(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Usuarios (administrador)",
	}
	var lo listOptions
	list := &cobra.Command{
		Use:   "list",
		Short: "Listar usuarios",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return e.run(cmd, func(ctx context.Context, rt *Runtime, out *OutputFormatter) error {
				return render(out, table.Users(rt.Formatter, nil), rt.Workspace.Users.FetchAll(ctx, lo.force), lo)
			})
		},
	}
	lo.bind(list, true)

	setRole := &cobra.Command{
		Use:   "set-role <userId> <ADMIN|BORROWER>",
		Short: "Cambiar el rol de un usuario",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return e.run(cmd, func(ctx context.Context, rt *Runtime, out *OutputFormatter) error {
				if err := rt.Workspace.Users.UpdateRole(ctx, args[0], args[1]); err != nil {
					return out.Fail(err, "No se pudo actualizar el rol.")
				}
				return out.Success("Rol actualizado", nil)
			})
		},
	}
	cmd.AddCommand(list, setRole)
	return cmd
}
