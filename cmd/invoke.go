package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var invokeToolCmdInput string

var invokeToolCmd = &cobra.Command{
	Use:   "invoke <name>",
	Short: "Invoke a tool",
	Long: "Invoke a tool on a running booksmcp server and print its result.\n" +
		"Parameters are supplied as a JSON object, eg:\n" +
		"    booksmcp invoke get_book --input '{\"book_id\": 1}'",
	Args: cobra.ExactArgs(1),
	RunE: runInvokeTool,
	Annotations: map[string]string{
		"group": string(subCommandGroupBasic),
		"order": "4",
	},
}

func init() {
	invokeToolCmd.Flags().StringVar(
		&invokeToolCmdInput,
		"input",
		"{}",
		"input parameters of the tool as a JSON object",
	)
	rootCmd.AddCommand(invokeToolCmd)
}

func runInvokeTool(cmd *cobra.Command, args []string) error {
	var params map[string]any
	if err := json.Unmarshal([]byte(invokeToolCmdInput), &params); err != nil {
		return fmt.Errorf("invalid input: %w", err)
	}

	res, err := apiClient.CallTool(args[0], params)
	if err != nil {
		return fmt.Errorf("failed to invoke tool: %w", err)
	}
	if res.IsError() {
		return fmt.Errorf("tool returned an error: %s", res.Error)
	}

	b, err := json.MarshalIndent(res.Result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	cmd.Println(string(b))
	return nil
}
