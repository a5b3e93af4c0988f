package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"opsharness/internal/formatting"
	"opsharness/internal/store"
	"opsharness/pkg/apis/neonforge/v1alpha1"
)

// listOutputFormat selects table, json or yaml output.
var listOutputFormat string

// newListStore is replaced in tests.
var newListStore = func() (store.Store, error) {
	restConfig, err := store.GetRestConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to get Kubernetes config: %w", err)
	}
	c, err := store.NewClient(restConfig)
	if err != nil {
		return nil, err
	}
	return store.NewKubernetesStore(c, restConfig), nil
}

// newListCmd creates the command listing live resources.
func newListCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "list [name]",
		Short: "List KubeOpsTest resources in the cluster",
		Long: `List KubeOpsTest resources in the cluster.

With a name, only that resource is shown and a missing resource is an error.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := formatting.ParseOutputFormat(listOutputFormat)
			if err != nil {
				return err
			}

			s, err := newListStore()
			if err != nil {
				return err
			}

			items, err := fetchResources(cmd.Context(), s, args)
			if err != nil {
				return err
			}

			f := formatting.New(formatting.Options{
				Format: format,
				Color:  isTerminal(cmd),
			})
			return f.FormatResources(cmd.OutOrStdout(), items)
		},
	}

	c.Flags().StringVarP(&listOutputFormat, "output", "o", "table", "Output format: table, json or yaml")
	return c
}

// fetchResources returns the named resource, or all of them when args is empty.
func fetchResources(ctx context.Context, s store.Store, args []string) ([]v1alpha1.KubeOpsTest, error) {
	if len(args) == 0 {
		items, err := s.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list resources: %w", err)
		}
		return items, nil
	}

	obj, err := s.Get(ctx, args[0])
	if err != nil {
		return nil, fmt.Errorf("failed to get resource %s: %w", args[0], err)
	}
	return []v1alpha1.KubeOpsTest{*obj}, nil
}

// isTerminal reports whether the command writes to an interactive terminal.
func isTerminal(cmd *cobra.Command) bool {
	type fder interface{ Fd() uintptr }
	if f, ok := cmd.OutOrStdout().(fder); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}
