package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/Leavend/SMI-HIMPA-Client/internal/application/dto"
	"github.com/Leavend/SMI-HIMPA-Client/internal/application/session"
	"github.com/Leavend/SMI-HIMPA-Client/internal/domain/entity"
	"github.com/Leavend/SMI-HIMPA-Client/internal/interfaces/table"
)

func newBorrowsCommand(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "borrows",
		Short: "Préstamos",
	}
	cmd.AddCommand(newBorrowsListCommand(e))
	cmd.AddCommand(newBorrowsConfirmCommand(e))
	cmd.AddCommand(newBorrowsUpdateCommand(e))
	cmd.AddCommand(newBorrowsCreateCommand(e))
	return cmd
}

func newBorrowsListCommand(e *env) *cobra.Command {
	var (
		lo   listOptions
		mine bool
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Listar préstamos (todos como administrador, --mine para los propios)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return e.run(cmd, func(ctx context.Context, rt *Runtime, out *OutputFormatter) error {
				tbl := table.Borrows(rt.Formatter, nil)
				if mine {
					return render(out, tbl, rt.Workspace.MyBorrows.FetchAll(ctx, session.Subject(rt.Workspace.Session)), lo)
				}
				return render(out, tbl, rt.Workspace.Borrows.FetchAll(ctx, lo.force), lo)
			})
		},
	}
	lo.bind(cmd, true)
	cmd.Flags().BoolVar(&mine, "mine", false, "solo los préstamos del usuario del token")
	return cmd
}

func newBorrowsConfirmCommand(e *env) *cobra.Command {
	var status string
	cmd := &cobra.Command{
		Use:   "confirm <borrowId>",
		Short: "Aprobar (ACTIVE) o rechazar (REJECTED) un préstamo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := dto.ConfirmBorrowRequest{BorrowID: args[0], Status: entity.BorrowStatus(status)}
			return e.run(cmd, func(ctx context.Context, rt *Runtime, out *OutputFormatter) error {
				if err := rt.Workspace.Borrows.Confirm(ctx, in); err != nil {
					return out.Fail(err, "No se pudo confirmar el préstamo.")
				}
				return out.Success("Préstamo actualizado", nil)
			})
		},
	}
	cmd.Flags().StringVar(&status, "status", string(entity.StatusActive), "ACTIVE o REJECTED")
	return cmd
}

func newBorrowsUpdateCommand(e *env) *cobra.Command {
	var (
		dateReturn, status string
		clearDate          bool
	)
	cmd := &cobra.Command{
		Use:   "update <borrowId>",
		Short: "Cambiar la fecha de devolución o el estado de un préstamo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var in dto.UpdateBorrowRequest
			if cmd.Flags().Changed("date-return") {
				t, err := parseDate(dateReturn)
				if err != nil {
					return NewExitError(ExitCommandError, err.Error())
				}
				in.DateReturn = &t
			}
			in.ClearDateReturn = clearDate
			if cmd.Flags().Changed("status") {
				s := entity.BorrowStatus(status)
				in.Status = &s
			}
			return e.run(cmd, func(ctx context.Context, rt *Runtime, out *OutputFormatter) error {
				if err := rt.Workspace.Borrows.Update(ctx, args[0], in); err != nil {
					return out.Fail(err, "No se pudo actualizar el préstamo.")
				}
				return out.Success("Préstamo actualizado", nil)
			})
		},
	}
	cmd.Flags().StringVar(&dateReturn, "date-return", "", "nueva fecha de devolución")
	cmd.Flags().BoolVar(&clearDate, "clear-date-return", false, "marcar como no devuelto (dateReturn null)")
	cmd.Flags().StringVar(&status, "status", "", "nuevo estado")
	cmd.MarkFlagsMutuallyExclusive("date-return", "clear-date-return")
	return cmd
}

func newBorrowsCreateCommand(e *env) *cobra.Command {
	var (
		in       dto.CreateBorrowRequest
		from, to string
	)
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Solicitar un préstamo",
		Long:  "Sin --admin la solicitud se asigna a un administrador al azar; sin --user se usa el usuario del token.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if in.DateBorrow, err = parseDate(from); err != nil {
				return NewExitError(ExitCommandError, err.Error())
			}
			if in.DateReturn, err = parseDate(to); err != nil {
				return NewExitError(ExitCommandError, err.Error())
			}
			return e.run(cmd, func(ctx context.Context, rt *Runtime, out *OutputFormatter) error {
				if in.UserID == "" {
					in.UserID = session.Subject(rt.Workspace.Session)
				}
				if err := rt.Workspace.MyBorrows.Create(ctx, in); err != nil {
					return out.Fail(err, "No se pudo crear el préstamo.")
				}
				return out.Success("Préstamo solicitado", nil)
			})
		},
	}
	cmd.Flags().StringVar(&in.InventoryID, "inventory", "", "inventoryId")
	cmd.Flags().Int64Var(&in.Quantity, "quantity", 1, "cantidad")
	cmd.Flags().StringVar(&from, "from", "", "fecha de préstamo")
	cmd.Flags().StringVar(&to, "to", "", "fecha de devolución prevista")
	cmd.Flags().StringVar(&in.AdminID, "admin", "", "adminId (opcional)")
	cmd.Flags().StringVar(&in.UserID, "user", "", "userId (por defecto el del token)")
	return cmd
}
