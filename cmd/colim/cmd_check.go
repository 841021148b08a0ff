package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/odvcencio/colim/pkg/diagram"
)

var green = color.New(color.FgGreen)

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <diagram.toml>",
		Short: "Validate a diagram description file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := diagram.Load(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			green.Fprintf(out, "✓ %s\n", args[0])
			fmt.Fprintf(out, "  %d indices, %d arrows\n",
				len(d.Shape.Objects), len(d.Shape.Arrows))
			return nil
		},
	}
}

func newShapeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shape <diagram.toml>",
		Short: "Print the indexing category of a diagram",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := diagram.Load(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, i := range d.Shape.Objects {
				c, _ := d.Category(i)
				fmt.Fprintf(out, "%s  (%d objects, %d morphisms)\n",
					i, len(c.Objects), len(c.Morphisms))
			}
			for _, u := range d.Shape.Arrows {
				fmt.Fprintf(out, "%s: %s -> %s\n", u.ID, u.Src, u.Dst)
			}
			return nil
		},
	}
}
