package main

import (
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"quietcheck/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "quietcheck [flags] -- [cppcheck arguments]",
	Short: "cppcheck wrapper that mutes previously recorded diagnostics",
	Long: `quietcheck runs cppcheck and relays its diagnostic stream, suppressing
findings whose fingerprint was recorded in an earlier write-mode run.
Wrapper flags go before the "--" separator; everything after it is
forwarded to cppcheck verbatim. Without a separator all arguments are
forwarded and no filtering takes place.`,
	Args: cobra.NoArgs,
	RunE: runWrapper,
}

var (
	// forwardArgs is the argument list handed to cppcheck verbatim.
	forwardArgs []string
	// useFilter is false when no "--" separator was given; the wrapper
	// then degrades to a transparent relay.
	useFilter bool
	// exitCode mirrors the underlying tool's exit code.
	exitCode int
)

// main splits argv on the "--" separator before cobra sees it: wrapper
// flags live to the left, the cppcheck argument list to the right. An
// invocation starting with a subcommand name is handed to cobra
// unchanged.
func main() {
	rootCmd.Version = version.Version
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true

	rootCmd.AddCommand(storeCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.Flags().String("cppcheck-path", "", "path to cppcheck binary file (default: cppcheck)")
	rootCmd.Flags().String("save-path", "", "path to the fingerprint store file (default: cppcheck.fingerprints)")
	rootCmd.Flags().BoolP("write", "w", false, "activate write mode (record fingerprints instead of suppressing)")
	rootCmd.Flags().BoolP("force", "f", false, "overwrite the store file if it already exists")
	rootCmd.Flags().BoolP("disable-filter", "d", false, "relay the diagnostic stream unfiltered")

	args := os.Args[1:]
	switch {
	case isSubcommandInvocation(args):
		rootCmd.SetArgs(args)
	default:
		wrapper, forwarded, found := splitArgv(args)
		if found {
			forwardArgs = forwarded
			useFilter = true
			rootCmd.SetArgs(wrapper)
		} else {
			forwardArgs = args
			useFilter = false
			// An empty slice, not nil: cobra falls back to os.Args
			// when no argument vector was set.
			rootCmd.SetArgs([]string{})
		}
	}

	if err := rootCmd.Execute(); err != nil {
		rootCmd.PrintErrln("Error:", err.Error())
		os.Exit(1)
	}
	os.Exit(exitCode)
}

func isSubcommandInvocation(args []string) bool {
	if len(args) == 0 {
		return false
	}
	name := args[0]
	if name == "help" || name == "completion" || strings.HasPrefix(name, "__complete") {
		return true
	}
	for _, c := range rootCmd.Commands() {
		if c.Name() == name || c.HasAlias(name) {
			return true
		}
	}
	return false
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
