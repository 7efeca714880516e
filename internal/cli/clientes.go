package cli

import (
	"fmt"

	"sripos/internal/dto"

	"github.com/spf13/cobra"
)

func newClientesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clientes",
		Short: "Búsqueda y alta de clientes",
	}

	buscar := &cobra.Command{
		Use:   "buscar <término>",
		Short: "Busca clientes (mínimo 3 caracteres)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientes, err := a.sesion.BuscarClientes(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if clientes == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "Escriba al menos 3 caracteres")
				return nil
			}
			for _, c := range clientes {
				fmt.Fprintf(cmd.OutOrStdout(), "%-13s  %s\n", c.Identificacion, c.RazonSocial)
			}
			return nil
		},
	}

	req := dto.CrearClienteRequest{}
	crear := &cobra.Command{
		Use:   "crear",
		Short: "Registra un cliente y lo selecciona para la próxima venta",
		RunE: func(cmd *cobra.Command, args []string) error {
			cliente, err := a.sesion.CrearCliente(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cliente %s creado y seleccionado\n", cliente.RazonSocial)
			return nil
		},
	}
	crear.Flags().StringVar(&req.TipoIdentificacion, "tipo", "05", "tipo de identificación SRI (04 RUC, 05 cédula)")
	crear.Flags().StringVar(&req.Identificacion, "identificacion", "", "cédula o RUC (requerido)")
	crear.Flags().StringVar(&req.RazonSocial, "nombre", "", "razón social (requerido)")
	crear.Flags().StringVar(&req.Email, "email", "", "correo electrónico (requerido)")
	crear.Flags().StringVar(&req.Direccion, "direccion", "", "dirección")
	crear.Flags().StringVar(&req.Telefono, "telefono", "", "teléfono")
	for _, flag := range []string{"identificacion", "nombre", "email"} {
		_ = crear.MarkFlagRequired(flag)
	}

	cmd.AddCommand(buscar, crear)
	return cmd
}
