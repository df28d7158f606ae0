// Package client contains Cobra CLI commands for tailscope.
package client

import (
	"bufio"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

// NewLogsCommand constructs the `logs` command group and subcommands.
func NewLogsCommand(baseURL BaseURLFunc) *cobra.Command {
	logsCmd := &cobra.Command{Use: "logs", Short: "Log operations"}
	logsCmd.AddCommand(
		newLogsTailCommand(baseURL),
		newLogsListCommand(baseURL),
		newLogsFollowCommand(baseURL),
	)
	return logsCmd
}

// tailQuery assembles the shared tail query string.
func tailQuery(cmd *cobra.Command) string {
	file, _ := cmd.Flags().GetString("file")
	n, _ := cmd.Flags().GetInt("lines")
	keyword, _ := cmd.Flags().GetString("keyword")
	filter, _ := cmd.Flags().GetString("filter")

	q := url.Values{"file": {file}}
	if n > 0 {
		q.Set("n", strconv.Itoa(n))
	}
	if keyword != "" {
		q.Set("keyword", keyword)
	}
	if filter != "" {
		q.Set("filter", filter)
	}
	return q.Encode()
}

func newLogsTailCommand(baseURL BaseURLFunc) *cobra.Command {
	tailCmd := &cobra.Command{
		Use:   "tail",
		Short: "Show the last lines of a log file, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return getPretty(cmd, baseURL()+"/v1/logs/tail?"+tailQuery(cmd))
		},
	}
	tailCmd.Flags().StringP("file", "f", "", "Log file path relative to the log directory")
	tailCmd.Flags().IntP("lines", "n", 0, "Number of lines (0 uses the server default)")
	tailCmd.Flags().StringP("keyword", "k", "", "Only show lines containing this keyword")
	tailCmd.Flags().String("filter", "", "CEL expression applied per line, e.g. 'text.contains(\"500\")'")
	_ = tailCmd.MarkFlagRequired("file")
	return tailCmd
}

func newLogsListCommand(baseURL BaseURLFunc) *cobra.Command {
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List available log files",
		RunE: func(cmd *cobra.Command, _ []string) error {
			dir, _ := cmd.Flags().GetString("dir")
			q := ""
			if dir != "" {
				q = "?" + url.Values{"dir": {dir}}.Encode()
			}
			return getPretty(cmd, baseURL()+"/v1/logs/list"+q)
		},
	}
	listCmd.Flags().String("dir", "", "Subdirectory to list (default: whole log directory)")
	return listCmd
}

func newLogsFollowCommand(baseURL BaseURLFunc) *cobra.Command {
	followCmd := &cobra.Command{
		Use:   "follow",
		Short: "Follow a log file live (like tail -f), printing new lines as SSE events arrive",
		RunE: func(cmd *cobra.Command, _ []string) error {
			file, _ := cmd.Flags().GetString("file")
			keyword, _ := cmd.Flags().GetString("keyword")
			q := url.Values{"file": {file}}
			if keyword != "" {
				q.Set("keyword", keyword)
			}
			req, err := http.NewRequestWithContext(cmd.Context(), http.MethodGet,
				baseURL()+"/v1/logs/follow?"+q.Encode(), nil)
			if err != nil {
				return err
			}
			resp, err := http.DefaultClient.Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()
			if resp.StatusCode != http.StatusOK {
				return fmt.Errorf("server returned %s", resp.Status)
			}
			sc := bufio.NewScanner(resp.Body)
			for sc.Scan() {
				if line, ok := strings.CutPrefix(sc.Text(), "data: "); ok {
					fmt.Fprintln(cmd.OutOrStdout(), line)
				}
			}
			return sc.Err()
		},
	}
	followCmd.Flags().StringP("file", "f", "", "Log file path relative to the log directory")
	followCmd.Flags().StringP("keyword", "k", "", "Only show lines containing this keyword")
	_ = followCmd.MarkFlagRequired("file")
	return followCmd
}
