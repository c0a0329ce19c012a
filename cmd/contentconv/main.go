// Command contentconv converts newsletter article content between Markdown,
// HTML, and the editor's JSON document format on the command line.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/parentpost/contentconv"
	"github.com/parentpost/contentconv/document"
	"github.com/parentpost/contentconv/mdconv"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var preset string
	var configPath string
	var conv *contentconv.Converter

	cmd := &cobra.Command{
		Use:           "contentconv",
		Short:         "Convert newsletter content between Markdown, HTML, and editor JSON",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(preset, configPath)
			if err != nil {
				return err
			}
			conv, err = contentconv.New(cfg)
			return err
		},
	}

	cmd.PersistentFlags().StringVar(&preset, "preset", presetBalanced, "Config preset: balanced, strict, clean, pretty")
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file overriding the preset")

	getConv := func() *contentconv.Converter { return conv }

	cmd.AddCommand(newStringCmd("md2html", "Convert Markdown to HTML", getConv,
		func(c *contentconv.Converter, in string) contentconv.Result {
			return c.MarkdownToHTML(in)
		}))
	cmd.AddCommand(newStringCmd("html2md", "Convert HTML to Markdown", getConv,
		func(c *contentconv.Converter, in string) contentconv.Result {
			return c.HTMLToMarkdown(in)
		}))
	cmd.AddCommand(newTreeOutCmd("md2doc", "Convert Markdown to editor document JSON", getConv,
		func(c *contentconv.Converter, in string) contentconv.TreeResult {
			return c.MarkdownToTree(in)
		}))
	cmd.AddCommand(newTreeOutCmd("html2doc", "Convert HTML to editor document JSON", getConv,
		func(c *contentconv.Converter, in string) contentconv.TreeResult {
			return c.HTMLToTree(in)
		}))
	cmd.AddCommand(newTreeInCmd("doc2html", "Convert editor document JSON to HTML", getConv,
		func(c *contentconv.Converter, doc document.Node) contentconv.Result {
			return c.TreeToHTML(doc)
		}))
	cmd.AddCommand(newTreeInCmd("doc2md", "Convert editor document JSON to Markdown", getConv,
		func(c *contentconv.Converter, doc document.Node) contentconv.Result {
			return c.TreeToMarkdown(doc)
		}))
	cmd.AddCommand(newCheckCmd(getConv))
	cmd.AddCommand(newRepairCmd())

	return cmd
}

type stringOp func(*contentconv.Converter, string) contentconv.Result

func newStringCmd(use, short string, getConv func() *contentconv.Converter, op stringOp) *cobra.Command {
	return &cobra.Command{
		Use:   use + " [file]",
		Short: short,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			return writeResult(cmd, op(getConv(), input))
		},
	}
}

type treeOutOp func(*contentconv.Converter, string) contentconv.TreeResult

func newTreeOutCmd(use, short string, getConv func() *contentconv.Converter, op treeOutOp) *cobra.Command {
	return &cobra.Command{
		Use:   use + " [file]",
		Short: short,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			result := op(getConv(), input)
			warnResult(cmd, result.Warnings, result.Errors)

			encoded, err := json.MarshalIndent(result.Doc, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to encode document JSON: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(encoded))
			return nil
		},
	}
}

type treeInOp func(*contentconv.Converter, document.Node) contentconv.Result

func newTreeInCmd(use, short string, getConv func() *contentconv.Converter, op treeInOp) *cobra.Command {
	return &cobra.Command{
		Use:   use + " [file]",
		Short: short,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			var doc document.Node
			if err := json.Unmarshal([]byte(input), &doc); err != nil {
				return fmt.Errorf("failed to parse document JSON: %w", err)
			}
			return writeResult(cmd, op(getConv(), doc))
		},
	}
}

func newCheckCmd(getConv func() *contentconv.Converter) *cobra.Command {
	return &cobra.Command{
		Use:   "check <original> <converted>",
		Short: "Score conversion fidelity between two content files",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			original, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			converted, err := os.ReadFile(args[1])
			if err != nil {
				return err
			}

			result := getConv().ValidateConversion(string(original), string(converted))
			result.Content = ""
			encoded, err := json.MarshalIndent(result, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(encoded))
			return nil
		},
	}
}

func newRepairCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repair [file]",
		Short: "Balance unmatched Markdown delimiters",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), mdconv.Repair(input))
			return nil
		},
	}
}

// readInput reads the file named by the first argument, or stdin when no
// argument (or "-") is given.
func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		raw, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(raw), nil
	}

	raw, err := os.ReadFile(args[0])
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func writeResult(cmd *cobra.Command, result contentconv.Result) error {
	warnResult(cmd, result.Warnings, result.Errors)
	if !result.Success {
		return fmt.Errorf("conversion failed")
	}
	fmt.Fprintln(cmd.OutOrStdout(), result.Content)
	return nil
}

func warnResult(cmd *cobra.Command, warnings, errors []string) {
	for _, warning := range warnings {
		fmt.Fprintln(cmd.ErrOrStderr(), "warning:", warning)
	}
	for _, errMsg := range errors {
		fmt.Fprintln(cmd.ErrOrStderr(), "error:", errMsg)
	}
}
