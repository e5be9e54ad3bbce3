package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/aura-blueprint/aura/internal/blueprint/domain"
)

func newHistoryCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Manage the recent blueprints",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List recent blueprints, newest first",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			items := a.store.List()
			if len(items) == 0 {
				fmt.Fprintln(a.out, "No recent blueprints.")
				return nil
			}
			w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTITLE\tTYPE\tCREATED")
			for _, it := range items {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", shortID(it.ID), it.Title, it.ProjectType.Info().Name, it.CreatedAt.Local().Format(time.DateTime))
			}
			return w.Flush()
		},
	}

	var section string
	show := &cobra.Command{
		Use:   "show <id>",
		Short: "Print a recent blueprint",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return a.show(args[0], section)
		},
	}
	show.Flags().StringVarP(&section, "section", "s", "all", "section to print, or \"all\"")

	remove := &cobra.Command{
		Use:     "remove <id>",
		Aliases: []string{"rm"},
		Short:   "Remove one blueprint from history",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			if item, err := a.lookup(id); err == nil {
				id = item.ID
			}
			// Removing an unknown id is a no-op.
			if err := a.store.Remove(cmd.Context(), id); err != nil {
				a.warnDegraded(err)
			}
			fmt.Fprintf(a.out, "Removed %s.\n", shortID(id))
			return nil
		},
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove every blueprint from history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.store.Clear(cmd.Context()); err != nil {
				a.warnDegraded(err)
			}
			fmt.Fprintln(a.out, "History cleared.")
			return nil
		},
	}

	cmd.AddCommand(list, show, remove, clearCmd)
	return cmd
}

// warnDegraded reports a history write that only reached memory.
func (a *app) warnDegraded(err error) {
	fmt.Fprintf(a.errOut, "[warn] %s\n", domain.UserMessage(err))
	a.log().Sugar().Warnw("history write failed", "kind", domain.KindOf(err), "error", err)
}
