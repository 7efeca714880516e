package cli

import (
	"fmt"

	"sripos/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newPosCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "pos",
		Short: "Pantalla interactiva del punto de venta",
		RunE: func(cmd *cobra.Command, args []string) error {
			activo, err := a.sesion.VerificarTurno(cmd.Context())
			if err != nil {
				return err
			}
			if !activo {
				fmt.Fprintln(cmd.OutOrStdout(), "Sin turno activo. Sucursales disponibles:")
				for _, s := range a.sesion.Sucursales() {
					fmt.Fprintf(cmd.OutOrStdout(), "  %3d  %s\n", s.ID, s.Nombre)
				}
				return fmt.Errorf("abra un turno con: sripos turno abrir --sucursal <id>")
			}

			programa := tea.NewProgram(tui.New(cmd.Context(), a.sesion), tea.WithAltScreen())
			_, err = programa.Run()
			return err
		},
	}
}
