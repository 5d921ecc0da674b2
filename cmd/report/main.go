package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ignite/agent-tracker/internal/report"
	"github.com/ignite/agent-tracker/internal/tracker"
)

type options struct {
	file       string
	format     string
	agent      string
	start      string
	end        string
	listAgents bool
}

func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, renderError(err))
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:           "report",
		Short:         "Print an agent's daily lots against target for a CSV or xlsx export",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runReport(cmd.OutOrStdout(), opts)
		},
	}
	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "CSV or xlsx file to read")
	cmd.Flags().StringVar(&opts.format, "format", "", "file format: csv or xlsx (default from the extension)")
	cmd.Flags().StringVarP(&opts.agent, "agent", "a", "", "agent name (default: first agent in the file)")
	cmd.Flags().StringVar(&opts.start, "start", "", "start date, DD/MM/YYYY or YYYY-MM-DD (default: first date)")
	cmd.Flags().StringVar(&opts.end, "end", "", "end date, DD/MM/YYYY or YYYY-MM-DD (default: last date)")
	cmd.Flags().BoolVar(&opts.listAgents, "agents", false, "list agents and the date range, then exit")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func runReport(out io.Writer, opts options) error {
	ds, err := load(opts.file, opts.format)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, titleStyle.Render(fmt.Sprintf("%s · %d rows · %s", opts.file, ds.Len(), ds.Bounds())))
	if n := ds.Dropped(); n > 0 {
		fmt.Fprintln(out, renderBanner(report.Banner{Level: report.BannerInfo, Message: report.DroppedMessage(n)}))
	}

	if opts.listAgents {
		for _, a := range ds.Agents() {
			fmt.Fprintln(out, "  "+a)
		}
		return nil
	}

	sel := tracker.NewSelector(ds)
	if err := sel.Apply(opts.agent, opts.start, opts.end); err != nil {
		return err
	}
	view, err := tracker.Filter(ds, sel.Criteria())
	if err != nil {
		return err
	}

	c := view.Criteria
	fmt.Fprintf(out, "%s  %s–%s\n", c.Agent, tracker.FormatDate(c.Start), tracker.FormatDate(c.End))
	if !view.Empty() {
		fmt.Fprintln(out, renderTable(report.DisplayRows(view)))
	}

	v := view.Verdict()
	if v.Invalid > 0 {
		fmt.Fprintln(out, renderBanner(report.Banner{Level: report.BannerWarning, Message: report.InvalidMessage(v.Invalid)}))
	}
	fmt.Fprintln(out, renderBanner(report.Outcome(v)))
	return nil
}

func load(path, declared string) (*tracker.Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	format, err := tracker.ResolveFormat(declared, path, data)
	if err != nil {
		return nil, err
	}
	return tracker.Ingest(data, format)
}
