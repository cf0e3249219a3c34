package cli

import (
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/tartampluch/go-age/internal/config"
	"github.com/tartampluch/go-age/internal/engine"
)

func (rt *cliRuntime) calendarCmd() *cobra.Command {
	var (
		flags    engine.DateFieldInput
		name     string
		reminder string
	)

	cmd := &cobra.Command{
		Use:   config.CmdUseCalendar,
		Short: config.CmdShortCal,
		Args:  dateArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := engine.ParseTarget(dateInput(args, flags), rt.today())
			if err != nil {
				return rt.reportValidation(err)
			}

			slog.Debug(config.MsgCalendarReq,
				config.LogKeyComponent, config.CompCLI,
				config.LogKeyTarget, target.String(),
			)

			builder := &engine.CalendarBuilder{
				Clock:         rt.Clock,
				Reminder:      rt.settings.CalendarReminder,
				FormatSummary: rt.tr.Summary,
			}
			if cmd.Flags().Changed(config.FlagReminder) {
				if err := config.ValidateReminder(reminder); err != nil {
					return err
				}
				builder.Reminder = reminder
			}

			data, err := builder.Build([]engine.Anniversary{engine.NewAnniversary(name, target)})
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	dateFlags(cmd, &flags)
	cmd.Flags().StringVar(&name, config.FlagName, "", config.FlagDescName)
	cmd.Flags().StringVar(&reminder, config.FlagReminder, config.DefaultReminder, config.FlagDescReminder)
	return cmd
}
