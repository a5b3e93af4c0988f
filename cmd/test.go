package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"opsharness/internal/app"
	"opsharness/internal/reconciler"
)

// requeue makes every reconcile request a delayed requeue.
var requeue bool

// inMemory runs against an in-process store instead of a cluster.
var inMemory bool

// newTestCmds creates one command per test mode.
func newTestCmds() []*cobra.Command {
	return []*cobra.Command{
		newTestCmd(reconciler.ModeCreateAndDelete,
			"Create a resource once a second and the controller deletes immediately on reconcile",
			`Creates a KubeOpsTest every second. The controller deletes each resource
the first time it is reconciled.`),
		newTestCmd(reconciler.ModeCreateModifyStatus,
			"Create a resource once a second and the controller updates status on reconcile",
			`Creates a KubeOpsTest every second. The controller sets status.phase to
Created on reconcile, and resources older than the lifespan are deleted in
batches.`),
		newTestCmd(reconciler.ModeCreateModifyStatusException,
			"Create a resource once a second and the controller throws an exception on status-modified",
			`Same as createmodifystatus, but every status change raises a fault in the
controller. Faults are logged with their stack trace and dispatch continues.`),
	}
}

func newTestCmd(mode reconciler.TestMode, short, long string) *cobra.Command {
	c := &cobra.Command{
		Use:   string(mode),
		Short: short,
		Long:  long,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTest(cmd, mode)
		},
	}

	c.Flags().BoolVar(&requeue, "requeue", false, "Return a 5s requeue from every reconcile")
	c.Flags().BoolVar(&inMemory, "in-memory", false, "Use an in-process store instead of the cluster")
	return c
}

// runTest runs mode until interrupted.
func runTest(cmd *cobra.Command, mode reconciler.TestMode) error {
	cfg := app.NewConfig(mode, debug, requeue, inMemory, configPath)
	cfg.LogOutput = cmd.OutOrStdout()

	application, err := app.NewApplication(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return application.Run(ctx)
}
