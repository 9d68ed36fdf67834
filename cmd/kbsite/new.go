// cmd/kbsite/new.go
package main

import (
	"fmt"
	"kbsite/internal/records"
	"kbsite/internal/scaffold"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func (a *app) newCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "new <dir>",
		Short: "Scaffold a data repository with one sample record per category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := args[0]
			created, err := scaffold.CreateSite(dir)
			if err != nil {
				return fmt.Errorf("could not scaffold %s: %w", dir, err)
			}
			a.logger.Debug("scaffolded site", zap.String("dir", dir), zap.Int("files", len(created)))

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Scaffolded new site in:", dir)
			for _, f := range created {
				fmt.Fprintln(out, "  "+f)
			}
			fmt.Fprintln(out, "You can now run:")
			fmt.Fprintln(out, "  kbsite build --root", dir)
			return nil
		},
	}
}

func (a *app) addCmd() *cobra.Command {
	var names []string
	for _, c := range records.Categories() {
		if c != records.Organization && c != records.LLMData {
			names = append(names, string(c))
		}
	}
	return &cobra.Command{
		Use:       "add <category> <title>",
		Short:     "Add a record stub to a category folder",
		Long:      "Add a record stub to the canonical folder of a category. Categories: " + strings.Join(names, ", ") + ".",
		Args:      cobra.ExactArgs(2),
		ValidArgs: names,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := a.discoverRoot()
			if err != nil {
				return err
			}
			path, err := scaffold.NewRecord(root, records.Category(args[0]), args[1])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Created:", path)
			return nil
		},
	}
}
