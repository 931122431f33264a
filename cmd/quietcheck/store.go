package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"quietcheck/internal/store"
)

var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Inspect and combine fingerprint stores",
}

var storeShowCmd = &cobra.Command{
	Use:   "show [store-file]",
	Short: "List the fingerprints recorded in a store file",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runStoreShow,
}

var (
	storeMergeOutput string
	storeMergeForce  bool
)

var storeMergeCmd = &cobra.Command{
	Use:   "merge -o OUT IN...",
	Short: "Union several store files into one",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runStoreMerge,
}

func init() {
	storeMergeCmd.Flags().StringVarP(&storeMergeOutput, "output", "o", "", "destination store file")
	storeMergeCmd.Flags().BoolVarP(&storeMergeForce, "force", "f", false, "overwrite the destination if it already exists")
	_ = storeMergeCmd.MarkFlagRequired("output")

	storeCmd.AddCommand(storeShowCmd)
	storeCmd.AddCommand(storeMergeCmd)
}

var (
	storeHeaderStyle = lipgloss.NewStyle().Bold(true)
	storeCountStyle  = lipgloss.NewStyle().Faint(true)
)

func runStoreShow(cmd *cobra.Command, args []string) error {
	if err := applyColorMode(cmd); err != nil {
		return err
	}
	path := store.DefaultFilename
	if len(args) == 1 {
		path = args[0]
	}
	s, err := store.Load(path)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, styled(storeHeaderStyle, path))
	for _, fp := range s.Fingerprints() {
		fmt.Fprintln(out, fp)
	}
	fmt.Fprintln(out, styled(storeCountStyle, fmt.Sprintf("%d fingerprint(s)", s.Len())))
	return nil
}

func runStoreMerge(cmd *cobra.Command, args []string) error {
	if err := applyColorMode(cmd); err != nil {
		return err
	}
	merged, err := store.Merge(args)
	if err != nil {
		return err
	}
	if err := merged.Save(storeMergeOutput, storeMergeForce); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %d fingerprint(s) to %s\n", merged.Len(), storeMergeOutput)
	return nil
}

// styled applies s unless colors are off for this invocation.
func styled(s lipgloss.Style, text string) string {
	if color.NoColor {
		return text
	}
	return s.Render(text)
}
