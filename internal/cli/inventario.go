package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"sripos/internal/dto"
	"sripos/internal/model"

	"github.com/spf13/cobra"
)

func newInventarioCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inventario",
		Short: "Consulta y mutación del stock por sucursal",
	}
	cmd.AddCommand(
		newInventarioListarCmd(a),
		newInventarioAjustarCmd(a),
		newInventarioTransferirCmd(a),
		newInventarioImportarCmd(a),
	)
	return cmd
}

func newInventarioListarCmd(a *app) *cobra.Command {
	var (
		sucursal int64
		buscar   string
		expandir []int64
	)
	cmd := &cobra.Command{
		Use:   "listar",
		Short: "Lista el stock: agrupado entre sucursales, o en detalle al filtrar por una",
		RunE: func(cmd *cobra.Command, args []string) error {
			if buscar != "" {
				// Buscar triggers its own load with the term applied.
				if sucursal > 0 {
					suc := sucursal
					if err := a.inventario.SeleccionarSucursal(cmd.Context(), &suc); err != nil {
						return err
					}
				}
				if err := a.inventario.Buscar(cmd.Context(), buscar); err != nil {
					return err
				}
			} else if sucursal > 0 {
				suc := sucursal
				if err := a.inventario.SeleccionarSucursal(cmd.Context(), &suc); err != nil {
					return err
				}
			} else if err := a.inventario.CargarDatos(cmd.Context()); err != nil {
				return err
			}

			for _, id := range expandir {
				a.inventario.AlternarExpansion(id)
			}

			out := cmd.OutOrStdout()
			switch a.inventario.Modo() {
			case model.ModoDetalle:
				fmt.Fprintln(out, "PRODUCTO                        SUCURSAL              CANTIDAD")
				for _, fila := range a.inventario.FilasDetalle() {
					fmt.Fprintf(out, "%-30s  %-20s  %6d\n", fila.ProductoNombre, fila.SucursalNombre, fila.Cantidad)
				}
			case model.ModoAgrupado:
				fmt.Fprintln(out, "PRODUCTO                        STOCK GLOBAL")
				for _, fila := range a.inventario.FilasAgrupadas() {
					fmt.Fprintf(out, "%-30s  %6d\n", fila.ProductoNombre, fila.StockTotalGlobal)
					if a.inventario.Expandida(fila.ProductoID) {
						for _, d := range fila.Desglose {
							fmt.Fprintf(out, "    └ %-24s  %6d\n", d.SucursalNombre, d.Cantidad)
						}
					}
				}
			}
			return nil
		},
	}
	cmd.Flags().Int64Var(&sucursal, "sucursal", 0, "filtrar por sucursal (modo detalle)")
	cmd.Flags().StringVar(&buscar, "buscar", "", "término de búsqueda")
	cmd.Flags().Int64SliceVar(&expandir, "expandir", nil, "ids de producto a desglosar en modo agrupado")
	return cmd
}

func newInventarioAjustarCmd(a *app) *cobra.Command {
	req := dto.AjusteRequest{}
	cmd := &cobra.Command{
		Use:   "ajustar",
		Short: "Registra un ajuste manual de stock en una sucursal",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.inventario.Ajustar(cmd.Context(), req); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Ajuste registrado")
			return nil
		},
	}
	cmd.Flags().Int64Var(&req.Producto, "producto", 0, "id del producto (requerido)")
	cmd.Flags().Int64Var(&req.Sucursal, "sucursal", 0, "id de la sucursal (requerido)")
	cmd.Flags().StringVar(&req.Tipo, "tipo", "", "incremento | decremento (requerido)")
	cmd.Flags().IntVar(&req.Cantidad, "cantidad", 0, "cantidad (requerido)")
	cmd.Flags().StringVar(&req.Motivo, "motivo", "", "motivo del ajuste (requerido)")
	for _, flag := range []string{"producto", "sucursal", "tipo", "cantidad", "motivo"} {
		_ = cmd.MarkFlagRequired(flag)
	}
	return cmd
}

func newInventarioTransferirCmd(a *app) *cobra.Command {
	req := dto.TransferenciaRequest{}
	cmd := &cobra.Command{
		Use:   "transferir",
		Short: "Transfiere stock entre sucursales, con guía de remisión opcional",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.inventario.Transferir(cmd.Context(), req); err != nil {
				return err
			}
			if req.GenerarGuia {
				fmt.Fprintln(cmd.OutOrStdout(), "Transferencia registrada con guía de remisión")
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "Transferencia registrada")
			}
			return nil
		},
	}
	cmd.Flags().Int64Var(&req.Producto, "producto", 0, "id del producto (requerido)")
	cmd.Flags().Int64Var(&req.OrigenID, "origen", 0, "sucursal de origen (requerido)")
	cmd.Flags().Int64Var(&req.DestinoID, "destino", 0, "sucursal de destino (requerido)")
	cmd.Flags().IntVar(&req.Cantidad, "cantidad", 0, "cantidad (requerido)")
	cmd.Flags().BoolVar(&req.GenerarGuia, "guia", false, "genera la guía de remisión en la misma acción")
	cmd.Flags().StringVar(&req.TransportistaRUC, "transportista-ruc", "", "RUC del transportista (requerido con --guia)")
	cmd.Flags().StringVar(&req.TransportistaRazonSocial, "transportista", "", "razón social del transportista (requerido con --guia)")
	cmd.Flags().StringVar(&req.Placa, "placa", "", "placa del vehículo (opcional)")
	for _, flag := range []string{"producto", "origen", "destino", "cantidad"} {
		_ = cmd.MarkFlagRequired(flag)
	}
	return cmd
}

func newInventarioImportarCmd(a *app) *cobra.Command {
	var (
		archivo   string
		sucursal  int64
		confirmar bool
	)
	cmd := &cobra.Command{
		Use:   "importar",
		Short: "Carga masiva de stock desde un .xlsx (REEMPLAZA el stock de la sucursal)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !confirmar {
				return fmt.Errorf("la importación REEMPLAZA el stock actual de la sucursal; repita con --si para confirmar")
			}
			f, err := os.Open(archivo)
			if err != nil {
				return err
			}
			defer f.Close()

			if err := a.inventario.ImportarArchivo(cmd.Context(), f, filepath.Base(archivo), sucursal); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Importación aplicada")
			return nil
		},
	}
	cmd.Flags().StringVar(&archivo, "archivo", "", "ruta del .xlsx (requerido)")
	cmd.Flags().Int64Var(&sucursal, "sucursal", 0, "sucursal de destino (requerido)")
	cmd.Flags().BoolVar(&confirmar, "si", false, "confirma el reemplazo de stock")
	_ = cmd.MarkFlagRequired("archivo")
	_ = cmd.MarkFlagRequired("sucursal")
	return cmd
}
