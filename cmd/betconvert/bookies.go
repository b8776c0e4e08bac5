package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sacsbrainz/betconverter/internal/catalog"
)

type BookiesOptions struct {
	*GlobalOptions
	SourcesOnly      bool
	DestinationsOnly bool
}

func NewCmdBookies(g *GlobalOptions) *cobra.Command {
	o := &BookiesOptions{GlobalOptions: g}
	cmd := &cobra.Command{
		Use:   "bookies",
		Short: "List the supported bookmakers.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.Validate(); err != nil {
				return err
			}
			return o.Run(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	cmd.Flags().BoolVar(&o.SourcesOnly, "sources", false, "only list bookmakers usable as a source")
	cmd.Flags().BoolVar(&o.DestinationsOnly, "destinations", false, "only list bookmakers usable as a destination")
	return cmd
}

func (o *BookiesOptions) Validate() error {
	if o.SourcesOnly && o.DestinationsOnly {
		return fmt.Errorf("--sources and --destinations are mutually exclusive")
	}
	return nil
}

func (o *BookiesOptions) Run(ctx context.Context, out, errOut io.Writer) error {
	list, err := o.client(errOut).ListBookmakers(ctx)
	if err != nil {
		return err
	}

	c, err := catalog.New(list)
	if err != nil {
		return err
	}

	switch {
	case o.SourcesOnly:
		list = c.Sources()
	case o.DestinationsOnly:
		list = c.Destinations()
	}

	w := tabwriter.NewWriter(out, 0, 8, 1, '\t', 0)
	defer w.Flush()

	fmt.Fprintln(w, "BOOKMAKER\tCODE\tSOURCE\tDESTINATION")
	for _, b := range list {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", b.Label(), b.CountryShortCode, yesNo(!b.InputDisabled), yesNo(!b.OutputDisabled))
	}
	return nil
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
