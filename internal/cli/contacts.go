package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tartampluch/go-age/internal/config"
	"github.com/tartampluch/go-age/internal/engine"
)

func (rt *cliRuntime) contactsCmd() *cobra.Command {
	var user string

	cmd := &cobra.Command{
		Use:   config.CmdUseContacts,
		Short: config.CmdShortContact,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// The password never appears on the command line.
			var pass string
			if rt.Getenv != nil {
				pass = rt.Getenv(config.EnvPassword)
			}

			reader := &engine.ContactReader{Clock: rt.Clock, Fetcher: rt.Fetcher}
			contacts, err := reader.Read(cmd.Context(), args[0], user, pass)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(contacts) == 0 {
				_, err := fmt.Fprintln(out, rt.tr.Msg(config.TKeyNoContacts))
				return err
			}
			_, err = fmt.Fprintln(out, rt.contactsTable(contacts))
			return err
		},
	}

	cmd.Flags().StringVar(&user, config.FlagUser, "", config.FlagDescUser)
	return cmd
}
