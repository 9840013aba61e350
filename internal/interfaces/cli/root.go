// Package cli implementa smictl: las mismas tablas y mutaciones del BFF sobre la terminal.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/spf13/cobra"
)

// EnvToken variable de entorno con el token cuando no se pasa --token.
const EnvToken = "SMI_TOKEN"

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"
	Token   string
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand crea el comando raíz. open construye el entorno de cada invocación.
func NewRootCommand(open Opener) *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "smictl",
		Short:         "smictl - inventario y préstamos de HIMPA",
		Long:          "Consulta y administra el inventario, los préstamos, las devoluciones y los usuarios de la API SMI-HIMPA.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return NewExitError(ExitCommandError, fmt.Sprintf("formato inválido %q: use uno de %v", opts.Format, ValidFormats))
			}
			if opts.Token == "" {
				opts.Token = os.Getenv(EnvToken)
			}
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.Token, "token", "", "token de sesión (por defecto $"+EnvToken+")")

	env := &env{opts: opts, open: open}
	cmd.AddCommand(newLoginCommand(env))
	cmd.AddCommand(newInventoriesCommand(env))
	cmd.AddCommand(newCatalogCommand(env))
	cmd.AddCommand(newBorrowsCommand(env))
	cmd.AddCommand(newReturnsCommand(env))
	cmd.AddCommand(newUsersCommand(env))

	return cmd
}

// Execute ejecuta smictl con args y devuelve el código de salida.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer, open Opener) int {
	cmd := NewRootCommand(open)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		if !exitErr.reported {
			fmt.Fprintln(stderr, "error:", exitErr.Error())
		}
		return exitErr.Code
	}
	// Errores de cobra: flags, argumentos o comando desconocido.
	fmt.Fprintln(stderr, "error:", err)
	return ExitCommandError
}
