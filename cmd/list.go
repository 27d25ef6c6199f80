package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const (
	outputText = "text"
	outputJSON = "json"
	outputYAML = "yaml"
)

var listToolsCmdOutput string

var listToolsCmd = &cobra.Command{
	Use:   "list",
	Short: "List the tools exposed by the server",
	Long: "List the tools exposed by a running booksmcp server.\n" +
		"Use --output json or --output yaml to print the full tool definitions.",
	Args: cobra.NoArgs,
	RunE: runListTools,
	Annotations: map[string]string{
		"group": string(subCommandGroupBasic),
		"order": "2",
	},
}

func init() {
	listToolsCmd.Flags().StringVarP(
		&listToolsCmdOutput,
		"output",
		"o",
		outputText,
		fmt.Sprintf("output format, one of %s, %s or %s", outputText, outputJSON, outputYAML),
	)
	rootCmd.AddCommand(listToolsCmd)
}

func runListTools(cmd *cobra.Command, args []string) error {
	tools, err := apiClient.ListTools()
	if err != nil {
		return fmt.Errorf("failed to list tools: %w", err)
	}

	switch listToolsCmdOutput {
	case outputJSON:
		b, err := json.MarshalIndent(tools, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode tools: %w", err)
		}
		cmd.Println(string(b))
	case outputYAML:
		b, err := yaml.Marshal(tools)
		if err != nil {
			return fmt.Errorf("failed to encode tools: %w", err)
		}
		cmd.Print(string(b))
	case outputText:
		if len(tools) == 0 {
			cmd.Println("There are no tools available")
			return nil
		}
		for i, t := range tools {
			cmd.Printf("%d. %s\n", i+1, t.Name)
			cmd.Println(t.Description)
			cmd.Println()
		}
		cmd.Println("Run 'usage <tool name>' to see a tool's input parameters.")
	default:
		return fmt.Errorf("unsupported output format '%s'", listToolsCmdOutput)
	}
	return nil
}
