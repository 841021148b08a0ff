package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/odvcencio/colim/pkg/diagram"
	"github.com/odvcencio/colim/pkg/quotient"
	"github.com/odvcencio/colim/pkg/store"
)

func newClassesCmd() *cobra.Command {
	var saveDir string

	cmd := &cobra.Command{
		Use:   "classes <diagram.toml>",
		Short: "Compute the object classes of a diagram's colimit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := diagram.Load(args[0])
			if err != nil {
				return err
			}
			cls, err := quotient.Compute(d)
			if err != nil {
				return err
			}

			reps := make([]string, 0, len(cls.Members))
			for rep := range cls.Members {
				reps = append(reps, rep)
			}
			sort.Strings(reps)

			out := cmd.OutOrStdout()
			for _, rep := range reps {
				tags := make([]string, len(cls.Members[rep]))
				for i, e := range cls.Members[rep] {
					tags[i] = e.Tag()
				}
				fmt.Fprintf(out, "[%s] %s\n", rep, strings.Join(tags, " "))
			}

			if saveDir != "" {
				h, err := store.New(saveDir).PutClasses(cls)
				if err != nil {
					return fmt.Errorf("save classes: %w", err)
				}
				fmt.Fprintf(out, "saved %s\n", h)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&saveDir, "save", "", "store the computed classes under this directory")
	return cmd
}
