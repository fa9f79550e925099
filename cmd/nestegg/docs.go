package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/rgehrsitz/nestegg/internal/docs"
)

func docsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "docs",
		Short: "Show the calculation API documentation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetString("format")
			style, _ := cmd.Flags().GetString("style")
			d := docs.Build()

			switch strings.ToLower(format) {
			case "json":
				data, err := json.MarshalIndent(d, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
			case "markdown", "md":
				fmt.Fprint(cmd.OutOrStdout(), d.Markdown())
			case "terminal", "":
				out, err := renderMarkdown(d.Markdown(), style)
				if err != nil {
					return fmt.Errorf("failed to render docs: %w", err)
				}
				fmt.Fprint(cmd.OutOrStdout(), out)
			default:
				return fmt.Errorf("unknown output format: %s (valid: terminal, markdown, json)", format)
			}
			return nil
		},
	}

	cmd.Flags().StringP("format", "f", "terminal", "Output format (terminal, markdown, json)")
	cmd.Flags().String("style", "auto", "Glamour style for terminal output (auto, dark, light, notty)")

	return cmd
}

func renderMarkdown(md, style string) (string, error) {
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(100)}
	if style == "" || style == "auto" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(style))
	}

	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", err
	}
	return r.Render(md)
}
