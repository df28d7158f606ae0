package client

import (
	"net/url"
	"strconv"

	"github.com/spf13/cobra"
)

// NewAggregateCommand constructs the `aggregate` command group and subcommands.
func NewAggregateCommand(baseURL BaseURLFunc) *cobra.Command {
	aggCmd := &cobra.Command{Use: "aggregate", Short: "Fleet-wide log operations"}
	aggCmd.AddCommand(
		newAggregateLogsCommand(baseURL),
		newAggregateSearchCommand(baseURL),
	)
	return aggCmd
}

func newAggregateLogsCommand(baseURL BaseURLFunc) *cobra.Command {
	logsCmd := &cobra.Command{
		Use:   "logs",
		Short: "Tail the same file on every registered server and merge the results",
		RunE: func(cmd *cobra.Command, _ []string) error {
			file, _ := cmd.Flags().GetString("file")
			n, _ := cmd.Flags().GetInt("lines")
			keyword, _ := cmd.Flags().GetString("keyword")
			servers, _ := cmd.Flags().GetString("servers")

			q := url.Values{"file": {file}}
			if n > 0 {
				q.Set("n", strconv.Itoa(n))
			}
			if keyword != "" {
				q.Set("keyword", keyword)
			}
			if servers != "" {
				q.Set("servers", servers)
			}
			return getPretty(cmd, baseURL()+"/v1/aggregate/logs?"+q.Encode())
		},
	}
	logsCmd.Flags().StringP("file", "f", "", "Log file path relative to each server's log directory")
	logsCmd.Flags().IntP("lines", "n", 0, "Number of merged lines (0 uses the server default)")
	logsCmd.Flags().StringP("keyword", "k", "", "Only show lines containing this keyword")
	logsCmd.Flags().String("servers", "", "Comma-separated server names (default: all)")
	_ = logsCmd.MarkFlagRequired("file")
	return logsCmd
}

func newAggregateSearchCommand(baseURL BaseURLFunc) *cobra.Command {
	searchCmd := &cobra.Command{
		Use:   "search",
		Short: "Search for a keyword across every server's files, ranked by match count",
		RunE: func(cmd *cobra.Command, _ []string) error {
			keyword, _ := cmd.Flags().GetString("keyword")
			n, _ := cmd.Flags().GetInt("lines")
			servers, _ := cmd.Flags().GetString("servers")

			q := url.Values{"keyword": {keyword}}
			if n > 0 {
				q.Set("n", strconv.Itoa(n))
			}
			if servers != "" {
				q.Set("servers", servers)
			}
			return getPretty(cmd, baseURL()+"/v1/aggregate/search?"+q.Encode())
		},
	}
	searchCmd.Flags().StringP("keyword", "k", "", "Keyword to search for")
	searchCmd.Flags().IntP("lines", "n", 0, "Maximum hits (0 uses the server default)")
	searchCmd.Flags().String("servers", "", "Comma-separated server names (default: all)")
	_ = searchCmd.MarkFlagRequired("keyword")
	return searchCmd
}
