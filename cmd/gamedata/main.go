// Package main provides the CLI entry point for gamedata-go.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/hszqf/gamedata-go/internal/config"
	"github.com/hszqf/gamedata-go/internal/logging"
	"github.com/hszqf/gamedata-go/pkg/gamedata"
	"github.com/hszqf/gamedata-go/pkg/gamedata/models"
	"github.com/hszqf/gamedata-go/pkg/gamedata/output"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// Exit codes.
const (
	exitOK         = 0
	exitValidation = 1
	exitFatal      = 2
)

func main() {
	os.Exit(execute(os.Args[1:]))
}

func execute(args []string) int {
	root := newRootCmd(afero.NewOsFs())
	root.SetArgs(args)
	err := root.Execute()
	if err == nil {
		return exitOK
	}
	var verr *gamedata.ValidationError
	if errors.As(err, &verr) {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return exitValidation
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	return exitFatal
}

func newRootCmd(fsys afero.Fs) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "gamedata",
		Short: "Export game data workbooks to JSON",
		Long: `gamedata-go reads a game-balance workbook (Meta, Balance, Nodes, Anomalies,
TaskDefs, Events, EventOptions, Effects, EffectOps, EventTriggers), validates it
and writes a deterministic JSON document for the game runtime.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	config.RegisterFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(
		newExportCmd(fsys),
		newValidateCmd(fsys),
		newInspectCmd(fsys),
	)
	return rootCmd
}

func newExportCmd(fsys afero.Fs) *cobra.Command {
	return &cobra.Command{
		Use:   "export [input.xlsx]",
		Short: "Validate a workbook and write the JSON document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, fsys, args[0], false)
		},
	}
}

func newValidateCmd(fsys afero.Fs) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [input.xlsx]",
		Short: "Validate a workbook without writing output",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, fsys, args[0], true)
		},
	}
}

func newInspectCmd(fsys afero.Fs) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect [document.json]",
		Short: "Summarize an exported document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := afero.ReadFile(fsys, args[0])
			if err != nil {
				return fmt.Errorf("failed to read document: %w", err)
			}
			summary, err := output.Summarize(data)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "schema=%s dataVersion=%s\n", summary.SchemaVersion, summary.DataVersion)
			for _, t := range summary.Tables {
				fmt.Fprintf(out, "%-16s mode=%-5s idField=%-12s rows=%d\n", t.Name, t.Mode, t.IDField, t.Rows)
			}
			return nil
		},
	}
}

func run(cmd *cobra.Command, fsys afero.Fs, input string, validateOnly bool) error {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return err
	}
	logger := logging.Setup(logging.Config{
		Level:  cfg.LogLevel,
		JSON:   cfg.LogJSON,
		Output: cmd.ErrOrStderr(),
	})

	includeTables := cfg.IncludeTables
	opts := gamedata.Options{
		Pretty:        cfg.Pretty,
		ValidateOnly:  validateOnly,
		Workers:       cfg.Workers,
		IncludeTables: &includeTables,
		Logger:        logger,
	}

	res, err := gamedata.Export(context.Background(), fsys, input, cfg.Output, opts)
	if res != nil && cfg.IssuesJSON {
		data, jerr := output.IssuesToJSON(res.Issues, cfg.Pretty)
		if jerr != nil {
			return jerr
		}
		cmd.OutOrStdout().Write(data)
	}
	if err != nil {
		return err
	}

	if validateOnly {
		logger.Info("validation only: no output written", "warnings", res.Issues.Count(models.SeverityWarning))
		return nil
	}
	if cfg.Output == "" && !cfg.IssuesJSON {
		_, err = cmd.OutOrStdout().Write(res.JSON)
		return err
	}
	return nil
}
