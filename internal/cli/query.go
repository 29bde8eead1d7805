package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

// NewStarCommand creates the star command.
func NewStarCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "star <date>",
		Short: "Show the star of the day",
		Long: `Show the nakshatra the Moon occupies at local sunrise on a date
(YYYY-MM-DD, Indian Standard Time), with the Malayalam date.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStar(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runStar(opts *RootOptions, date string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)
	svc, err := newService(opts, cmd, formatter)
	if err != nil {
		return err
	}

	res := svc.GetNakshatra(date, nil)
	return formatter.Result(res.Result, res.NakshatraInfo, func() string {
		return fmt.Sprintf("%s  %s (%s)\nMalayalam date: %s",
			res.Date, res.EnglishName, res.MalayalamName, res.MalayalamDate)
	})
}

// NewDateCommand creates the date command.
func NewDateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "date <date>",
		Short:         "Convert a Gregorian date to the Malayalam calendar",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runDate(opts *RootOptions, date string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)
	svc, err := newService(opts, cmd, formatter)
	if err != nil {
		return err
	}

	res := svc.GetMalayalamDate(date, nil)
	return formatter.Result(res.Result, res.MalayalamDateInfo, func() string {
		return fmt.Sprintf("%s  %d %s %d (%s)",
			res.Date, res.Day, res.MonthEnglish, res.Year, res.Formatted)
	})
}

// NewGregorianCommand creates the gregorian command.
func NewGregorianCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gregorian <year> <month> <day>",
		Short: "Convert a Malayalam date to the Gregorian calendar",
		Long: `Find the Gregorian date of a Kollam era date. The month is an English
or Malayalam month name, or its index counted from Medam (0).`,
		Example:       "  panchangam gregorian 1200 Chingam 1",
		Args:          cobra.ExactArgs(3),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGregorian(rootOpts, args, cmd)
		},
	}

	return cmd
}

func runGregorian(opts *RootOptions, args []string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	year, err := strconv.Atoi(args[0])
	if err != nil {
		return formatter.Fail(ExitFailure, ErrCodeArgs, fmt.Sprintf("year %q is not a number", args[0]), nil)
	}
	day, err := strconv.Atoi(args[2])
	if err != nil {
		return formatter.Fail(ExitFailure, ErrCodeArgs, fmt.Sprintf("day %q is not a number", args[2]), nil)
	}

	svc, err := newService(opts, cmd, formatter)
	if err != nil {
		return err
	}

	res := svc.GetGregorianDate(year, args[1], day)
	return formatter.Result(res.Result, res.GregorianInfo, func() string {
		return res.Date
	})
}

type nextOptions struct {
	from   string
	count  int
	months int
}

// NewNextCommand creates the next command.
func NewNextCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &nextOptions{}

	cmd := &cobra.Command{
		Use:   "next <star>",
		Short: "List upcoming days of a star",
		Long: `List the next days whose star of the day is the given nakshatra
(English or Malayalam name, or index from Aswathi = 0).

By default the next --count days within 150 days are listed. With --months
every matching day in that many months is listed.`,
		Example:       "  panchangam next Revathi --from 2024-01-01 --count 3",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNext(rootOpts, opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.from, "from", "", "start date YYYY-MM-DD (default today)")
	cmd.Flags().IntVarP(&opts.count, "count", "n", 0, "number of days to list (default 5)")
	cmd.Flags().IntVarP(&opts.months, "months", "m", 0, "list every day within this many months")
	cmd.MarkFlagsMutuallyExclusive("count", "months")

	return cmd
}

func runNext(rootOpts *RootOptions, opts *nextOptions, star string, cmd *cobra.Command) error {
	formatter := newFormatter(rootOpts, cmd)
	svc, err := newService(rootOpts, cmd, formatter)
	if err != nil {
		return err
	}

	res := svc.GetNextOccurrences(star, opts.from, nil, opts.count, opts.months)
	return formatter.Result(res.Result, res.OccurrencesInfo, func() string {
		var b strings.Builder
		fmt.Fprintf(&b, "%s: %d day(s)", res.StarName, len(res.Dates))
		for _, d := range res.Dates {
			fmt.Fprintf(&b, "\n  %s  %s", d.Date, d.MalayalamDate)
		}
		return b.String()
	})
}

// NewTimelineCommand creates the timeline command.
func NewTimelineCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "timeline <date>",
		Short: "Show when the nakshatra changes during a day",
		Long: `Show the nakshatras the Moon passes through on a date, with the
minute each one begins and ends (Indian Standard Time).`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTimeline(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runTimeline(opts *RootOptions, date string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)
	svc, err := newService(opts, cmd, formatter)
	if err != nil {
		return err
	}

	res := svc.GetDayTimeline(date, nil)
	return formatter.Result(res.Result, res.TimelineInfo, func() string {
		var b strings.Builder
		b.WriteString(res.Date)
		for _, seg := range res.Timeline {
			fmt.Fprintf(&b, "\n  %s - %s  %s (%s)",
				clock(seg.Start, "00:00"), clock(seg.End, "24:00"), seg.EnglishName, seg.MalayalamName)
		}
		return b.String()
	})
}

// clock renders an RFC 3339 instant as HH:MM. A segment running past the
// edge of the day shows edge instead, marked with "~".
func clock(instant *string, edge string) string {
	if instant == nil {
		return "~" + edge
	}
	t, err := time.Parse(time.RFC3339, *instant)
	if err != nil {
		return *instant
	}
	return " " + t.Format("15:04")
}
