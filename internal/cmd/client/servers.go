package client

import (
	"net/url"

	"github.com/spf13/cobra"
)

// NewServersCommand constructs the `servers` command group and subcommands.
func NewServersCommand(baseURL BaseURLFunc) *cobra.Command {
	serversCmd := &cobra.Command{Use: "servers", Short: "Secondary server registry operations"}
	serversCmd.AddCommand(
		newServersListCommand(baseURL),
		newServersRegisterCommand(baseURL),
		newServersUnregisterCommand(baseURL),
		newServersHealthCommand(baseURL),
		newServersFilesCommand(baseURL),
	)
	return serversCmd
}

func newServersListCommand(baseURL BaseURLFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List registered servers",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return getPretty(cmd, baseURL()+"/v1/servers")
		},
	}
}

func newServersRegisterCommand(baseURL BaseURLFunc) *cobra.Command {
	registerCmd := &cobra.Command{
		Use:   "register",
		Short: "Register a secondary server (it is health-probed first)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			name, _ := cmd.Flags().GetString("name")
			serverURL, _ := cmd.Flags().GetString("url")
			desc, _ := cmd.Flags().GetString("description")
			return postPretty(cmd, baseURL()+"/v1/servers/register", map[string]string{
				"name":        name,
				"url":         serverURL,
				"description": desc,
			})
		},
	}
	registerCmd.Flags().String("name", "", "Unique server name")
	registerCmd.Flags().String("url", "", "Base URL, e.g. http://web-1:8080")
	registerCmd.Flags().String("description", "", "Optional description")
	_ = registerCmd.MarkFlagRequired("name")
	_ = registerCmd.MarkFlagRequired("url")
	return registerCmd
}

func newServersUnregisterCommand(baseURL BaseURLFunc) *cobra.Command {
	unregisterCmd := &cobra.Command{
		Use:   "unregister",
		Short: "Unregister a secondary server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			name, _ := cmd.Flags().GetString("name")
			return postPretty(cmd, baseURL()+"/v1/servers/unregister", map[string]string{"name": name})
		},
	}
	unregisterCmd.Flags().String("name", "", "Server name")
	_ = unregisterCmd.MarkFlagRequired("name")
	return unregisterCmd
}

func newServersHealthCommand(baseURL BaseURLFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Probe every registered server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return getPretty(cmd, baseURL()+"/v1/servers/health")
		},
	}
}

func newServersFilesCommand(baseURL BaseURLFunc) *cobra.Command {
	filesCmd := &cobra.Command{
		Use:   "files",
		Short: "List one server's log files",
		RunE: func(cmd *cobra.Command, _ []string) error {
			name, _ := cmd.Flags().GetString("name")
			q := url.Values{"server": {name}}
			return getPretty(cmd, baseURL()+"/v1/servers/files?"+q.Encode())
		},
	}
	filesCmd.Flags().String("name", "", "Server name")
	_ = filesCmd.MarkFlagRequired("name")
	return filesCmd
}
