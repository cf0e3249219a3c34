package cli

import (
	"github.com/spf13/cobra"
	"github.com/tartampluch/go-age/internal/config"
	"github.com/tartampluch/go-age/internal/server"
)

func (rt *cliRuntime) serveCmd() *cobra.Command {
	var addr, port string

	cmd := &cobra.Command{
		Use:   config.CmdUseServe,
		Short: config.CmdShortServe,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings := rt.settings
			if cmd.Flags().Changed(config.FlagAddr) {
				settings.ListenAddr = addr
			}
			if cmd.Flags().Changed(config.FlagPort) {
				settings.Port = port
			}

			srv := server.New(settings)
			srv.Clock = rt.Clock
			srv.Catalog = rt.catalog
			return srv.Start(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&addr, config.FlagAddr, config.LocalhostBindAddr, config.FlagDescAddr)
	cmd.Flags().StringVar(&port, config.FlagPort, config.DefaultPort, config.FlagDescPort)
	return cmd
}
