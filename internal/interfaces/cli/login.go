package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Leavend/SMI-HIMPA-Client/internal/application/dto"
)

func newLoginCommand(e *env) *cobra.Command {
	var in dto.LoginRequest
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Iniciar sesión e imprimir el token",
		Long: `Inicia sesión contra la API e imprime el token.

Guárdelo en $SMI_TOKEN para los siguientes comandos.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return e.run(cmd, func(ctx context.Context, rt *Runtime, out *OutputFormatter) error {
				res, err := rt.Workspace.Auth.Login(ctx, in)
				if err != nil {
					return out.Fail(err, "No se pudo iniciar sesión.")
				}
				res.User.Password = ""
				msg := fmt.Sprintf("Sesión iniciada: %s (%s)\n%s=%s", res.User.Username, res.User.Role, EnvToken, res.Token)
				return out.Success(msg, res)
			})
		},
	}
	cmd.Flags().StringVar(&in.Username, "username", "", "usuario")
	cmd.Flags().StringVar(&in.Password, "password", "", "contraseña")
	return cmd
}
