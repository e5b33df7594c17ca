package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/jhoicas/Inventario-sheets/internal/application/auth"
	"github.com/jhoicas/Inventario-sheets/internal/application/dto"
	"github.com/jhoicas/Inventario-sheets/internal/domain/entity"
)

func listCommand() *cobra.Command {
	var filter dto.InventoryFilter
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Lista el inventario filtrado por categoría y estado",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := newEnv(cmd.Context())
			if err != nil {
				return err
			}
			defer e.close()

			tbl, err := e.uc.Load(cmd.Context())
			if err != nil {
				return err
			}
			view, err := e.uc.View(tbl, filter)
			if err != nil {
				return err
			}
			printRecords(cmd.OutOrStdout(), view.Items)
			fmt.Fprintf(cmd.OutOrStdout(), "\n%d de %d ítems\n", view.Total, view.TableSize)
			return nil
		},
	}
	cmd.Flags().StringVar(&filter.Category, "category", "All", "categoría o All")
	cmd.Flags().StringVar(&filter.Status, "status", "All", "estado o All")
	return cmd
}

func addCommand() *cobra.Command {
	var (
		in    dto.CreateRecordRequest
		id    int64
		price string
	)
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Agrega un ítem al final de la hoja",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("id") {
				in.ItemID = &id
			}
			p, err := decimal.NewFromString(price)
			if err != nil {
				return fmt.Errorf("--price inválido %q", price)
			}
			in.Price = p

			e, err := newEnv(cmd.Context())
			if err != nil {
				return err
			}
			defer e.close()

			tbl, err := e.uc.Load(cmd.Context())
			if err != nil {
				return err
			}
			out, err := e.uc.Add(cmd.Context(), tbl, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ítem %d agregado\n", out.ItemID)
			return nil
		},
	}
	f := cmd.Flags()
	f.Int64Var(&id, "id", 0, "item_id (por defecto máximo + 1)")
	f.StringVar(&in.ItemName, "name", "", "nombre del ítem")
	f.StringVar(&in.Category, "category", "", "categoría")
	f.IntVar(&in.Quantity, "quantity", 0, "cantidad")
	f.StringVar(&price, "price", "0", "precio unitario")
	f.StringVar(&in.Location, "location", "", "ubicación")
	f.StringVar(&in.Supplier, "supplier", "", "proveedor")
	f.StringVar(&in.Status, "status", string(entity.StatusInStock), "In Stock | Out of Stock | Damaged")
	f.StringVar(&in.LastUpdated, "date", "", "fecha DD-MM-YYYY (por defecto hoy)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("category")
	return cmd
}

func updateCommand() *cobra.Command {
	var (
		name, category, location, supplier, status, date, price string
		quantity                                                int
	)
	cmd := &cobra.Command{
		Use:   "update <item_id>",
		Short: "Edita los campos indicados de un ítem",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			f := cmd.Flags()
			var in dto.UpdateRecordRequest
			if f.Changed("name") {
				in.ItemName = &name
			}
			if f.Changed("category") {
				in.Category = &category
			}
			if f.Changed("quantity") {
				in.Quantity = &quantity
			}
			if f.Changed("price") {
				p, err := decimal.NewFromString(price)
				if err != nil {
					return fmt.Errorf("--price inválido %q", price)
				}
				in.Price = &p
			}
			if f.Changed("location") {
				in.Location = &location
			}
			if f.Changed("supplier") {
				in.Supplier = &supplier
			}
			if f.Changed("status") {
				in.Status = &status
			}
			if f.Changed("date") {
				in.LastUpdated = &date
			}

			e, err := newEnv(cmd.Context())
			if err != nil {
				return err
			}
			defer e.close()

			tbl, err := e.uc.Load(cmd.Context())
			if err != nil {
				return err
			}
			out, err := e.uc.Edit(cmd.Context(), tbl, id, in)
			if err != nil {
				return err
			}
			printRecords(cmd.OutOrStdout(), []dto.RecordResponse{*out})
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&name, "name", "", "nombre del ítem")
	f.StringVar(&category, "category", "", "categoría")
	f.IntVar(&quantity, "quantity", 0, "cantidad")
	f.StringVar(&price, "price", "", "precio unitario")
	f.StringVar(&location, "location", "", "ubicación")
	f.StringVar(&supplier, "supplier", "", "proveedor")
	f.StringVar(&status, "status", "", "In Stock | Out of Stock | Damaged")
	f.StringVar(&date, "date", "", "fecha DD-MM-YYYY")
	return cmd
}

func deleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <item_id>",
		Short: "Elimina un ítem de la hoja",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			e, err := newEnv(cmd.Context())
			if err != nil {
				return err
			}
			defer e.close()

			tbl, err := e.uc.Load(cmd.Context())
			if err != nil {
				return err
			}
			out, err := e.uc.Delete(cmd.Context(), tbl, id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ítem %d eliminado; quedan %d\n", out.ItemID, out.TableSize)
			return nil
		},
	}
}

func reportCommand() *cobra.Command {
	var (
		filter dto.InventoryFilter
		output string
	)
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Genera el reporte PDF de existencias",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := newEnv(cmd.Context())
			if err != nil {
				return err
			}
			defer e.close()

			tbl, err := e.uc.Load(cmd.Context())
			if err != nil {
				return err
			}
			pdf, err := e.uc.Report(cmd.Context(), tbl, filter)
			if err != nil {
				return err
			}
			if err := os.WriteFile(output, pdf, 0o644); err != nil {
				return fmt.Errorf("escribir %s: %w", output, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "reporte escrito en %s\n", output)
			return nil
		},
	}
	cmd.Flags().StringVar(&filter.Category, "category", "All", "categoría o All")
	cmd.Flags().StringVar(&filter.Status, "status", "All", "estado o All")
	cmd.Flags().StringVarP(&output, "output", "o", "inventario.pdf", "archivo de salida")
	return cmd
}

func hashPasswordCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password <password>",
		Short: "Genera el valor de AUTH_PASSWORD_HASH",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := auth.HashPassword(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("item_id inválido %q", s)
	}
	return id, nil
}

func printRecords(w io.Writer, items []dto.RecordResponse) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNOMBRE\tCATEGORÍA\tCANT.\tPRECIO\tUBICACIÓN\tPROVEEDOR\tESTADO\tACTUALIZADO")
	for _, r := range items {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\t%s\t%s\t%s\t%s\n",
			r.ItemID, r.ItemName, r.Category, r.Quantity, r.Price.StringFixed(2),
			r.Location, r.Supplier, r.Status, r.LastUpdated)
	}
	_ = tw.Flush()
}
