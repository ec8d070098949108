package freedom

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/sjzar/freedom/internal/errors"
	"github.com/sjzar/freedom/internal/freedom"
	"github.com/sjzar/freedom/internal/freedom/conf"
)

var ConfigFile string

func init() {
	// windows only
	cobra.MousetrapHelpText = ""

	rootCmd.PersistentFlags().BoolVar(&Debug, "debug", false, "debug")
	rootCmd.PersistentFlags().StringVarP(&ConfigFile, "config", "c", "", "settings file (default "+conf.DefaultConfigFile+", env "+conf.EnvConfigFile+")")
	rootCmd.PersistentPreRun = initLog
}

// Execute registers one subcommand per dispatch table entry and runs the
// command line. It exits non-zero only when a command fails.
func Execute() {
	m := freedom.New()
	register(rootCmd, m)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		errType, _, code := errors.GetErrorDetails(err)
		log.Err(err).Str("type", errType).Msg("command execution failed")
		log.Debug().Msg(errors.FormatErrorChain(err))
		if code == errors.ExitOK {
			code = errors.ExitFatal
		}
		os.Exit(code)
	}
}

var rootCmd = &cobra.Command{
	Use:     "freedom [command]",
	Short:   "freedom",
	Long:    `freedom checks for process observers and bootstraps the tor browser`,
	Example: `freedom check_for_observers -c settings.json`,
	Args:    cobra.ArbitraryArgs,
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	SilenceErrors: true,
	SilenceUsage:  true,
	Run:           Root,
}

// Root handles anything not matching a registered command. Both cases are
// reported and exit 0.
func Root(cmd *cobra.Command, args []string) {
	if len(args) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No command given.")
		return
	}
	log.Debug().Str("command", args[0]).Msg("unknown command")
	fmt.Fprintln(cmd.OutOrStdout(), "The command was not found.")
}

func register(root *cobra.Command, m *freedom.Manager) {
	cmds := m.Commands()
	for _, name := range m.CommandNames() {
		root.AddCommand(newCommand(name, cmds[name]))
	}
}

func newCommand(name string, fn freedom.CommandFunc) *cobra.Command {
	return &cobra.Command{
		Use:   name + " [args...]",
		Short: "Run " + name,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return fn(cmd.Context(), ConfigFile)
		},
	}
}
