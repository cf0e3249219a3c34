package cli

import (
	"errors"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/tartampluch/go-age/internal/config"
	"github.com/tartampluch/go-age/internal/engine"
)

// dateFlags registers --day, --month and --year on cmd.
func dateFlags(cmd *cobra.Command, in *engine.DateFieldInput) {
	cmd.Flags().StringVar(&in.Day, config.FlagDay, "", config.FlagDescDay)
	cmd.Flags().StringVar(&in.Month, config.FlagMonth, "", config.FlagDescMonth)
	cmd.Flags().StringVar(&in.Year, config.FlagYear, "", config.FlagDescYear)
}

// dateArgs accepts either no positional argument (flags are used) or exactly DD MM YYYY.
func dateArgs(_ *cobra.Command, args []string) error {
	if len(args) != 0 && len(args) != 3 {
		return errors.New(config.ErrArgsCount)
	}
	return nil
}

// dateInput prefers the positional arguments over the flags.
func dateInput(args []string, flags engine.DateFieldInput) engine.DateFieldInput {
	if len(args) == 3 {
		return engine.DateFieldInput{Day: args[0], Month: args[1], Year: args[2]}
	}
	return flags
}

func (rt *cliRuntime) calcCmd() *cobra.Command {
	var flags engine.DateFieldInput

	cmd := &cobra.Command{
		Use:   config.CmdUseCalc,
		Short: config.CmdShortCalc,
		Args:  dateArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in := dateInput(args, flags)

			d, err := engine.Calculate(in, rt.today())
			if err != nil {
				slog.Debug(config.ErrValidation,
					config.LogKeyComponent, config.CompCLI,
					config.LogKeyError, err,
				)
				return rt.reportValidation(err)
			}

			slog.Debug(config.MsgSubmit,
				config.LogKeyComponent, config.CompCLI,
				config.LogKeyYears, d.Years,
				config.LogKeyMonths, d.Months,
				config.LogKeyDays, d.Days,
			)
			return rt.printDifference(cmd.OutOrStdout(), d)
		},
	}

	dateFlags(cmd, &flags)
	return cmd
}
