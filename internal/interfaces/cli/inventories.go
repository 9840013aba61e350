package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/Leavend/SMI-HIMPA-Client/internal/application/dto"
	"github.com/Leavend/SMI-HIMPA-Client/internal/interfaces/table"
)

func newInventoriesCommand(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inventories",
		Short: "Inventario (administrador)",
	}
	cmd.AddCommand(newInventoriesListCommand(e))
	cmd.AddCommand(newInventoriesCreateCommand(e))
	cmd.AddCommand(newInventoriesUpdateCommand(e))
	return cmd
}

func newInventoriesListCommand(e *env) *cobra.Command {
	var lo listOptions
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Listar el inventario",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return e.run(cmd, func(ctx context.Context, rt *Runtime, out *OutputFormatter) error {
				st := rt.Workspace.Inventories.FetchAll(ctx, lo.force)
				return render(out, table.Inventories(rt.Formatter, nil), st, lo)
			})
		},
	}
	lo.bind(cmd, true)
	return cmd
}

func newInventoriesCreateCommand(e *env) *cobra.Command {
	var in dto.CreateInventoryRequest
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Crear un item de inventario",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return e.run(cmd, func(ctx context.Context, rt *Runtime, out *OutputFormatter) error {
				if err := rt.Workspace.Inventories.Create(ctx, in); err != nil {
					return out.Fail(err, "No se pudo crear el inventario.")
				}
				return out.Success("Inventario creado", nil)
			})
		},
	}
	cmd.Flags().StringVar(&in.Name, "name", "", "nombre")
	cmd.Flags().Int64Var(&in.Quantity, "quantity", 0, "cantidad")
	cmd.Flags().StringVar(&in.Condition, "condition", "Available", "condición (Available, Out of Stock, Reserved, Damaged, Discontinued)")
	cmd.Flags().StringVar(&in.Code, "code", "", "código")
	return cmd
}

func newInventoriesUpdateCommand(e *env) *cobra.Command {
	var (
		name, condition string
		quantity        int64
	)
	cmd := &cobra.Command{
		Use:   "update <inventoryId>",
		Short: "Actualizar nombre, cantidad o condición",
		Long:  "Solo se envían los campos indicados con flags; sin ninguno el comando falla sin llamar a la API.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var in dto.UpdateInventoryRequest
			if cmd.Flags().Changed("name") {
				in.Name = &name
			}
			if cmd.Flags().Changed("quantity") {
				in.Quantity = &quantity
			}
			if cmd.Flags().Changed("condition") {
				in.Condition = &condition
			}
			return e.run(cmd, func(ctx context.Context, rt *Runtime, out *OutputFormatter) error {
				if err := rt.Workspace.Inventories.Update(ctx, args[0], in); err != nil {
					return out.Fail(err, "No se pudo actualizar el inventario.")
				}
				return out.Success("Inventario actualizado", nil)
			})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "nuevo nombre")
	cmd.Flags().Int64Var(&quantity, "quantity", 0, "nueva cantidad")
	cmd.Flags().StringVar(&condition, "condition", "", "nueva condición")
	return cmd
}

func newCatalogCommand(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Catálogo de inventario para cualquier usuario",
	}
	var lo listOptions
	list := &cobra.Command{
		Use:   "list",
		Short: "Listar el catálogo",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return e.run(cmd, func(ctx context.Context, rt *Runtime, out *OutputFormatter) error {
				st := rt.Workspace.Catalog.FetchAll(ctx, lo.force)
				return render(out, table.Catalog(rt.Formatter), st, lo)
			})
		},
	}
	lo.bind(list, true)
	cmd.AddCommand(list)
	return cmd
}
