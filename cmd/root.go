// Package cmd implements the booksmcp command line interface.
package cmd

import (
	"fmt"
	"net/http"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/booksmcp/booksmcp/client"
	"github.com/spf13/cobra"
)

const (
	ServerURLEnvVar  = "BOOKSMCP_SERVER_URL"
	ServerURLDefault = "http://127.0.0.1:8080"
)

type subCommandGroup string

const (
	subCommandGroupBasic    subCommandGroup = "basic"
	subCommandGroupAdvanced subCommandGroup = "advanced"
)

var rootCmdServerURL string

// apiClient is the client used by the commands that talk to a running booksmcp server.
// It is created before any subcommand runs.
var apiClient *client.Client

var rootCmd = &cobra.Command{
	Use:   "booksmcp",
	Short: "Expose a Books API to AI assistants as a set of tools",
	Long: "booksmcp serves the CRUD operations of a Books API as tools.\n" +
		"Clients can discover the tools and call them over a simple HTTP API or over the Model Context Protocol.",
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		apiClient = client.NewClient(getServerURL(), &http.Client{Timeout: 60 * time.Second})
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&rootCmdServerURL,
		"server-url",
		"",
		fmt.Sprintf("URL of the booksmcp server (overrides env var %s, default %s)", ServerURLEnvVar, ServerURLDefault),
	)
}

// Execute runs the root command.
func Execute() error {
	applyCommandGroups(rootCmd)
	return rootCmd.Execute()
}

// getServerURL returns the URL of the booksmcp server to talk to.
// precedence: command line flag > environment variable > default
func getServerURL() string {
	u := rootCmdServerURL
	if u == "" {
		u = os.Getenv(ServerURLEnvVar)
	}
	if u == "" {
		u = ServerURLDefault
	}
	return u
}

// applyCommandGroups places every subcommand in the help group named by its "group" annotation
// and lists subcommands by their "order" annotation instead of alphabetically.
func applyCommandGroups(root *cobra.Command) {
	cobra.EnableCommandSorting = false
	root.AddGroup(
		&cobra.Group{ID: string(subCommandGroupBasic), Title: "Basic Commands:"},
		&cobra.Group{ID: string(subCommandGroupAdvanced), Title: "Advanced Commands:"},
	)

	cmds := append([]*cobra.Command(nil), root.Commands()...)
	sort.SliceStable(cmds, func(i, j int) bool {
		return commandOrder(cmds[i]) < commandOrder(cmds[j])
	})
	root.RemoveCommand(cmds...)
	for _, c := range cmds {
		if g := c.Annotations["group"]; g != "" {
			c.GroupID = g
		}
		root.AddCommand(c)
	}
}

func commandOrder(c *cobra.Command) int {
	n, err := strconv.Atoi(c.Annotations["order"])
	if err != nil {
		return 1 << 10
	}
	return n
}
