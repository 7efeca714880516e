package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"sripos/internal/dto"
	"sripos/internal/infra"
	"sripos/internal/model"
	"sripos/internal/worker"

	"github.com/spf13/cobra"
)

func newVentasCmd(a *app) *cobra.Command {
	var seguir bool
	cmd := &cobra.Command{
		Use:   "ventas",
		Short: "Historial de ventas y su estado SRI",
		RunE: func(cmd *cobra.Command, args []string) error {
			ventas, err := a.client.GetVentas(cmd.Context(), dto.VentaFilter{})
			if err != nil {
				return err
			}
			imprimirVentas(cmd, ventas)

			if !seguir || !algunaEnProceso(ventas) {
				return nil
			}

			// Re-fetch while any document is still processing; the poller
			// self-cancels once none remains.
			poller := worker.NewPoller(worker.PollerConfig{
				Fuente:   a.client,
				CB:       infra.NewCircuitBreaker(0, 0, 0),
				Interval: a.cfg.PollInterval(),
				OnUpdate: func(ventas []model.Venta) {
					imprimirVentas(cmd, ventas)
				},
			})
			poller.Start(cmd.Context())
			defer poller.Stop()

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
			<-quit
			return nil
		},
	}
	cmd.Flags().BoolVar(&seguir, "seguir", false, "refresca mientras haya documentos en proceso")
	return cmd
}

func imprimirVentas(cmd *cobra.Command, ventas []model.Venta) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "ID      ESTADO  CLAVE DE ACCESO                                   TOTAL")
	for _, v := range ventas {
		fmt.Fprintf(out, "%-6d  %-6s  %-48s  $%s\n", v.ID, v.EstadoSRI, v.ClaveAcceso, v.Total.StringFixed(2))
	}
}

func algunaEnProceso(ventas []model.Venta) bool {
	for _, v := range ventas {
		if v.EnProceso() {
			return true
		}
	}
	return false
}
