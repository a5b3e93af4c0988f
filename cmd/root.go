package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Exit codes for CLI commands.
const (
	// ExitCodeSuccess indicates successful execution.
	ExitCodeSuccess = 0
	// ExitCodeError indicates a general error (command failed, invalid or missing arguments).
	ExitCodeError = 1
)

// debug enables verbose logging across the application.
var debug bool

// configPath specifies a custom configuration directory path.
// The directory should contain config.yaml.
var configPath string

// rootCmd represents the base command for the opsharness application.
// Running it without a subcommand is a usage error.
var rootCmd = &cobra.Command{
	Use:   "opsharness",
	Short: "Stress a reconciliation engine with KubeOpsTest resources",
	Long: `opsharness registers the KubeOpsTest custom resource, creates one resource
per second and runs a controller against it, racing deletions and status
updates to shake out ordering and redelivery bugs in the dispatch engine.

Create a resource once a second and the controller deletes immediately on reconcile:

    opsharness CreateAndDelete [--requeue]

Create a resource once a second and the controller updates status on reconcile:

    opsharness CreateModifyStatus [--requeue]

Create a resource once a second and the controller throws an exception on status-modified:

    opsharness CreateModifyStatusException [--requeue]

Command names are case-insensitive.`,
	// SilenceUsage prevents Cobra from printing the usage message on errors that are handled by the application.
	SilenceUsage: true,
	RunE:         runRoot,
}

// usageError is returned when no command was given.
type usageError struct {
	msg string
}

func (e *usageError) Error() string {
	return e.msg
}

// runRoot prints the usage to stderr and fails.
func runRoot(cmd *cobra.Command, args []string) error {
	fmt.Fprintln(cmd.ErrOrStderr())
	fmt.Fprintln(cmd.ErrOrStderr(), "*** ERROR: command expected:")
	fmt.Fprintln(cmd.ErrOrStderr())
	fmt.Fprint(cmd.ErrOrStderr(), cmd.UsageString())
	return &usageError{msg: "command expected"}
}

// SetVersion sets the version for the root command.
// This function is typically called from the main package to inject the application version at build time.
func SetVersion(v string) {
	rootCmd.Version = v
}

// GetVersion returns the current version of the application.
func GetVersion() string {
	return rootCmd.Version
}

// Execute is the main entry point for the CLI application.
// It initializes and executes the root command, which in turn handles subcommands and flags.
// This function is called by main.main().
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "opsharness version %s\n" .Version}}`)

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(getExitCode(err))
	}
}

// getExitCode maps a command error to the process exit code. Usage errors and
// test failures both exit with ExitCodeError.
func getExitCode(err error) int {
	if err == nil {
		return ExitCodeSuccess
	}
	return ExitCodeError
}

func init() {
	// Accept CreateAndDelete as well as createanddelete
	cobra.EnableCaseInsensitive = true

	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config-path", "", "Configuration directory containing config.yaml (default is $HOME/.config/opsharness)")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newGeneratorCmd())
	rootCmd.AddCommand(newListCmd())
	for _, c := range newTestCmds() {
		rootCmd.AddCommand(c)
	}
}
