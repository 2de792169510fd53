package commands

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/faststat/pkg/kernels"
)

const (
	kernelsCmdUse   = "kernels"
	kernelsCmdShort = "List the available kernels"
	groupFlag       = "group"
	groupUsage      = "only list kernels of this group (selection, dispersion, mode)"
)

func newKernelsCommand() *cobra.Command {
	var group string

	cmd := &cobra.Command{
		Use:   kernelsCmdUse,
		Short: kernelsCmdShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tbl := table.NewWriter()
			tbl.SetStyle(table.StyleLight)
			tbl.Style().Format.Footer = text.FormatDefault
			tbl.AppendHeader(table.Row{"Name", "Group", "Domain", "Description"})

			count := 0

			for _, k := range kernels.Default().Kernels() {
				if group != "" && string(k.Group()) != group {
					continue
				}

				tbl.AppendRow(table.Row{k.Name(), k.Group(), k.Domain(), k.Description()})

				count++
			}

			tbl.AppendFooter(table.Row{fmt.Sprintf("Total: %d kernels", count)})

			_, err := fmt.Fprintln(cmd.OutOrStdout(), tbl.Render())

			return err
		},
	}

	cmd.Flags().StringVar(&group, groupFlag, "", groupUsage)

	return cmd
}
