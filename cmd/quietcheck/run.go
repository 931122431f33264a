package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"quietcheck/internal/filter"
	"quietcheck/internal/relay"
	"quietcheck/internal/store"
)

// runWrapper executes the root command: resolve configuration, build
// the active filter, relay the cppcheck run, and flush the fingerprint
// store before returning. The store is written on every exit path of a
// write-mode run that recorded anything.
func runWrapper(cmd *cobra.Command, _ []string) error {
	if err := applyColorMode(cmd); err != nil {
		return err
	}

	cppcheckPath, savePath, err := resolvePaths(cmd)
	if err != nil {
		return err
	}

	writeMode, _ := cmd.Flags().GetBool("write")
	force, _ := cmd.Flags().GetBool("force")
	disabled, _ := cmd.Flags().GetBool("disable-filter")

	var seen *store.Store
	var active filter.Filter
	if useFilter && !disabled && filterUsable(forwardArgs) {
		seen, err = loadSeen(cmd, savePath, writeMode)
		if err != nil {
			return err
		}
		active = buildFilter(seen, writeMode)
	}

	code, runErr := relay.Run(cmd.Context(), relay.Options{
		Path:   cppcheckPath,
		Args:   forwardArgs,
		Filter: active,
		Stdout: cmd.OutOrStdout(),
		Stderr: cmd.ErrOrStderr(),
	})
	if runErr != nil {
		var spawnErr *relay.SpawnError
		if errors.As(runErr, &spawnErr) {
			// Reported, not escalated: the wrapper must not crash
			// ambiguously when the binary is missing.
			fmt.Fprintf(cmd.ErrOrStderr(), "%s\n", spawnErr.Error())
			exitCode = 1
			runErr = nil
		} else {
			return runErr
		}
	} else {
		exitCode = code
	}

	if writeMode && seen != nil && seen.Len() > 0 {
		if err := seen.Save(savePath, force); err != nil {
			if errors.Is(err, store.ErrExists) {
				fmt.Fprintf(cmd.ErrOrStderr(),
					"Warning: file `%s` already exists. Use --force (-f) option to overwrite file.\n", savePath)
				return nil
			}
			return err
		}
	}
	return nil
}

// resolvePaths merges flag values over quietcheck.toml over built-in
// defaults.
func resolvePaths(cmd *cobra.Command) (cppcheckPath, savePath string, err error) {
	cppcheckPath = "cppcheck"
	savePath = store.DefaultFilename

	cfg, found, err := loadConfig(".")
	if err != nil {
		return "", "", err
	}
	if found {
		if cfg.CppcheckPath != "" {
			cppcheckPath = cfg.CppcheckPath
		}
		if cfg.SavePath != "" {
			savePath = cfg.SavePath
		}
	}

	if cmd.Flags().Changed("cppcheck-path") {
		cppcheckPath, _ = cmd.Flags().GetString("cppcheck-path")
	}
	if cmd.Flags().Changed("save-path") {
		savePath, _ = cmd.Flags().GetString("save-path")
	}
	return cppcheckPath, savePath, nil
}

// loadSeen builds the fingerprint set for this run. Read mode loads the
// store file, tolerating a missing one; write mode always starts empty.
func loadSeen(cmd *cobra.Command, savePath string, writeMode bool) (*store.Store, error) {
	if writeMode {
		return store.New(), nil
	}
	s, err := store.Load(savePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(cmd.ErrOrStderr(), "Warning: file `%s` not found. Ignoring...\n", savePath)
			return store.New(), nil
		}
		return nil, err
	}
	return s, nil
}

// buildFilter picks the filter matching the forwarded output format. A
// filter with nothing to do (read mode over an empty store) deactivates
// itself; the relay then runs unfiltered.
func buildFilter(seen *store.Store, writeMode bool) filter.Filter {
	var f filter.Filter
	if wantsXML(forwardArgs) {
		f = filter.NewXML(seen, writeMode)
	} else {
		f = filter.NewLine(seen, writeMode)
	}
	if !f.Active() {
		return nil
	}
	return f
}
