package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"actionstoolkit/internal/quiet"
	"actionstoolkit/internal/wait"
	"actionstoolkit/pkg/command"
	"actionstoolkit/pkg/core"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	verbose          bool
	workingDirectory string
	decodeAll        bool

	// actionsCore is replaced in tests
	actionsCore = core.Default()
)

var rootCmd = &cobra.Command{
	Use:   "actions",
	Short: "Actions - workflow command toolkit",
	Long: `Actions runs workflow actions and exposes the workflow command protocol to scripts.

Commands are written to stdout as workflow command lines, for example:

  ::set-output name=greeting::hello

Diagnostics are written to stderr. Set RUNNER_DEBUG=1 or --verbose for debug output.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogging(cmd.ErrOrStderr(), verbose || actionsCore.IsDebug())
	},
}

func setupLogging(w io.Writer, debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}

var waitCmd = &cobra.Command{
	Use:   "wait",
	Short: "Wait the number of milliseconds given by INPUT_MILLISECONDS",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return wait.Run(cmd.Context(), actionsCore)
	},
}

var inputCmd = &cobra.Command{
	Use:   "input NAME",
	Short: "Print the value of an input",
	Long:  `Print the value of the input NAME, read from INPUT_<NAME>. Spaces in NAME become underscores.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		value, err := actionsCore.Input(args[0])
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), value)
		return err
	},
}

var getStateCmd = &cobra.Command{
	Use:   "get-state NAME",
	Short: "Print a value saved with save-state",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		value, err := actionsCore.GetState(args[0])
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), value)
		return err
	},
}

var setOutputCmd = &cobra.Command{
	Use:   "set-output NAME VALUE",
	Short: "Set an output of the step",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return actionsCore.SetOutput(args[0], args[1])
	},
}

var exportVariableCmd = &cobra.Command{
	Use:   "export-variable NAME VALUE",
	Short: "Set an environment variable for the following steps",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return actionsCore.ExportVariable(args[0], args[1])
	},
}

var saveStateCmd = &cobra.Command{
	Use:   "save-state NAME VALUE",
	Short: "Save a value for the post step of the action",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return actionsCore.SaveState(args[0], args[1])
	},
}

var addPathCmd = &cobra.Command{
	Use:   "add-path DIR",
	Short: "Add a directory to PATH for the following steps",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return actionsCore.AddPath(args[0])
	},
}

var addMaskCmd = &cobra.Command{
	Use:   "add-mask [VALUE]",
	Short: "Mask a secret in the log",
	Long: `Mask a secret in the log.

Without VALUE the secret is read from stdin, so it does not show up in the process list.
If stdin is a terminal the secret is read without echo.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			return actionsCore.SetSecret(args[0])
		}
		secret, err := readSecret(cmd)
		if err != nil {
			return err
		}
		if secret == "" {
			return fmt.Errorf("refusing to mask an empty value")
		}
		return actionsCore.SetSecret(secret)
	},
}

func readSecret(cmd *cobra.Command) (string, error) {
	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(cmd.ErrOrStderr(), "Enter secret: ")
		secret, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(cmd.ErrOrStderr()) // Print newline after secret input
		if err != nil {
			return "", fmt.Errorf("failed to read secret: %w", err)
		}
		return strings.TrimRight(string(secret), "\r\n"), nil
	}
	data, err := io.ReadAll(in)
	if err != nil {
		return "", fmt.Errorf("failed to read secret from stdin: %w", err)
	}
	return strings.TrimRight(string(data), "\r\n"), nil
}

var infoCmd = &cobra.Command{
	Use:   "info MESSAGE",
	Short: "Print a plain log line",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return actionsCore.Info(args[0])
	},
}

// newLogCmd returns the command for one annotation level. Without location flags the
// message is escaped, with location flags it is written as it is.
func newLogCmd(level command.Level, short string) *cobra.Command {
	var (
		file string
		line uint
		col  uint
	)
	cmd := &cobra.Command{
		Use:   string(level) + " MESSAGE",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if !flags.Changed("file") && !flags.Changed("line") && !flags.Changed("col") {
				return actionsCore.LogMessage(level, args[0])
			}
			l := command.Message(args[0])
			if flags.Changed("file") {
				l.File = &file
			}
			if flags.Changed("line") {
				l.Line = &line
			}
			if flags.Changed("col") {
				l.Col = &col
			}
			return actionsCore.Log(level, l)
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "File the message refers to")
	cmd.Flags().UintVar(&line, "line", 0, "Line number in --file")
	cmd.Flags().UintVar(&col, "col", 0, "Column number in --file")
	return cmd
}

var isDebugCmd = &cobra.Command{
	Use:   "is-debug",
	Short: "Print true if step debug logging is enabled (RUNNER_DEBUG=1)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), actionsCore.IsDebug())
		return err
	},
}

var execCmd = &cobra.Command{
	Use:   "exec cmd [args...]",
	Short: "Run a command whose output is not processed as workflow commands",
	Long: `Run a command with workflow command processing stopped.

The output of cmd is wrapped in stop-commands and the matching resume line, so lines
printed by cmd which look like workflow commands are shown as plain text.

The exit status of cmd is the exit status of this command.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return quiet.Run(cmd.Context(), actionsCore, args, quiet.Options{
			Dir:    workingDirectory,
			Stdin:  cmd.InOrStdin(),
			Stderr: cmd.ErrOrStderr(),
		})
	},
}

var decodeCmd = &cobra.Command{
	Use:   "decode",
	Short: "Decode workflow commands read from stdin",
	Long: `Read process output from stdin and print one JSON object per workflow command,
the way the orchestrator would see them. Lines between stop-commands and the matching
resume line are plain output.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return decode(cmd.InOrStdin(), cmd.OutOrStdout(), decodeAll)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Write debug diagnostics to stderr")

	execCmd.Flags().StringVar(&workingDirectory, "working-directory", "", "Working directory for the command")
	execCmd.Flags().SetInterspersed(false)

	decodeCmd.Flags().BoolVar(&decodeAll, "all", false, "Also print plain output lines")

	rootCmd.AddCommand(waitCmd)
	rootCmd.AddCommand(inputCmd)
	rootCmd.AddCommand(getStateCmd)
	rootCmd.AddCommand(setOutputCmd)
	rootCmd.AddCommand(exportVariableCmd)
	rootCmd.AddCommand(saveStateCmd)
	rootCmd.AddCommand(addPathCmd)
	rootCmd.AddCommand(addMaskCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(newLogCmd(command.LevelDebug, "Write a debug message"))
	rootCmd.AddCommand(newLogCmd(command.LevelWarning, "Write a warning annotation"))
	rootCmd.AddCommand(newLogCmd(command.LevelError, "Write an error annotation"))
	rootCmd.AddCommand(isDebugCmd)
	rootCmd.AddCommand(execCmd)
	rootCmd.AddCommand(decodeCmd)
}

// exitCode maps an error returned by a command to the process exit status.
func exitCode(err error) int {
	var exitErr *quiet.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return 1
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		var exitErr *quiet.ExitError
		if !errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, err)
		}
		stop()
		os.Exit(exitCode(err))
	}
}
