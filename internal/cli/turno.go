package cli

import (
	"fmt"
	"strings"

	"sripos/internal/dto"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func newTurnoCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "turno",
		Short: "Apertura, estado y cierre del turno de caja",
	}
	cmd.AddCommand(newTurnoEstadoCmd(a), newTurnoAbrirCmd(a), newTurnoCerrarCmd(a))
	return cmd
}

func newTurnoEstadoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "estado",
		Short: "Muestra el turno activo, si existe",
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
				return nil
			}
			turno := a.sesion.Turno()
			fmt.Fprintf(cmd.OutOrStdout(), "Turno #%d abierto en %s desde %s\n",
				turno.ID, turno.SucursalNombre, turno.InicioTurno.Format("2006-01-02 15:04"))
			return nil
		},
	}
}

func newTurnoAbrirCmd(a *app) *cobra.Command {
	var sucursal int64
	cmd := &cobra.Command{
		Use:   "abrir",
		Short: "Abre un turno en la sucursal indicada",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.sesion.VerificarTurno(cmd.Context()); err != nil {
				return err
			}
			if err := a.sesion.AbrirTurno(cmd.Context(), sucursal); err != nil {
				return err
			}
			turno := a.sesion.Turno()
			fmt.Fprintf(cmd.OutOrStdout(), "Turno #%d abierto en %s\n", turno.ID, turno.SucursalNombre)
			return nil
		},
	}
	cmd.Flags().Int64Var(&sucursal, "sucursal", 0, "id de la sucursal (requerido)")
	_ = cmd.MarkFlagRequired("sucursal")
	return cmd
}

func newTurnoCerrarCmd(a *app) *cobra.Command {
	var (
		efectivo      string
		tarjeta       string
		transferencia string
		observaciones string
		salidas       []string
		confirmar     bool
	)
	cmd := &cobra.Command{
		Use:   "cerrar",
		Short: "Cierra el turno con la declaración contada (arqueo)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !confirmar {
				return fmt.Errorf("cerrar el turno es irreversible; repita con --si para confirmar")
			}
			if _, err := a.sesion.VerificarTurno(cmd.Context()); err != nil {
				return err
			}

			decl := a.sesion.DeclaracionSimple()
			var err error
			if efectivo != "" {
				if decl.Efectivo, err = decimal.NewFromString(efectivo); err != nil {
					return fmt.Errorf("efectivo inválido: %w", err)
				}
			}
			if tarjeta != "" {
				if decl.Tarjeta, err = decimal.NewFromString(tarjeta); err != nil {
					return fmt.Errorf("tarjeta inválida: %w", err)
				}
			}
			if transferencia != "" {
				if decl.Transferencia, err = decimal.NewFromString(transferencia); err != nil {
					return fmt.Errorf("transferencia inválida: %w", err)
				}
			}
			if observaciones != "" {
				decl.Observaciones = &observaciones
			}
			for _, salida := range salidas {
				parsed, err := parseSalida(salida)
				if err != nil {
					return err
				}
				decl.Salidas = append(decl.Salidas, parsed)
			}

			arqueo, err := a.sesion.CerrarTurno(cmd.Context(), decl)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(),
				"Turno cerrado. Esperado $%s, declarado $%s, desvío $%s (%s%%) — %s\n",
				arqueo.Esperado.Total.StringFixed(2),
				arqueo.Declarado.Total.StringFixed(2),
				arqueo.Desvio.Monto.StringFixed(2),
				arqueo.Desvio.Porcentaje.StringFixed(2),
				arqueo.Desvio.Clasificacion)
			return nil
		},
	}
	cmd.Flags().StringVar(&efectivo, "efectivo", "", "efectivo contado")
	cmd.Flags().StringVar(&tarjeta, "tarjeta", "", "total en tarjeta")
	cmd.Flags().StringVar(&transferencia, "transferencia", "", "total en transferencia")
	cmd.Flags().StringVar(&observaciones, "observaciones", "", "observaciones del supervisor")
	cmd.Flags().StringArrayVar(&salidas, "salida", nil, "salida de caja, formato monto:descripcion (repetible)")
	cmd.Flags().BoolVar(&confirmar, "si", false, "confirma el cierre")
	return cmd
}

// parseSalida interprets "monto:descripcion".
func parseSalida(raw string) (dto.SalidaCaja, error) {
	monto, descripcion, ok := strings.Cut(raw, ":")
	if !ok || strings.TrimSpace(descripcion) == "" {
		return dto.SalidaCaja{}, fmt.Errorf("salida inválida %q: se espera monto:descripcion", raw)
	}
	valor, err := decimal.NewFromString(strings.TrimSpace(monto))
	if err != nil {
		return dto.SalidaCaja{}, fmt.Errorf("salida inválida %q: %w", raw, err)
	}
	return dto.SalidaCaja{Monto: valor, Descripcion: strings.TrimSpace(descripcion)}, nil
}
