package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sacsbrainz/betconverter/internal/catalog"
	"github.com/sacsbrainz/betconverter/internal/convert"
	"github.com/sacsbrainz/betconverter/internal/metrics"
	"github.com/sacsbrainz/betconverter/internal/models"
)

var errConversionFailed = errors.New("conversion failed")

type ConvertOptions struct {
	*GlobalOptions
	Code        string
	From        string
	To          string
	ForceRemove bool
	RetryRemove bool
	MetricsFile string
}

func NewCmdConvert(g *GlobalOptions) *cobra.Command {
	o := &ConvertOptions{GlobalOptions: g}
	cmd := &cobra.Command{
		Use:   "convert --code CODE --from NAME[:COUNTRY] --to NAME[:COUNTRY]",
		Short: "Convert a booking code to another bookmaker.",
		Example: `  betconvert convert --code BC123 --from sportybet:nigeria --to msport:ghana
  betconvert convert --code ST99 --from stake --to football:nigeria --force-remove`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.Run(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	cmd.Flags().StringVar(&o.Code, "code", "", "booking code to convert")
	cmd.Flags().StringVar(&o.From, "from", "", "source bookmaker, e.g. sportybet:nigeria")
	cmd.Flags().StringVar(&o.To, "to", "", "destination bookmaker, e.g. msport:ghana")
	cmd.Flags().BoolVar(&o.ForceRemove, "force-remove", false, "drop markets the destination does not offer")
	cmd.Flags().BoolVar(&o.RetryRemove, "retry-remove", false, "retry once with --force-remove when some markets are not available")
	cmd.Flags().StringVar(&o.MetricsFile, "metrics-file", "", "write submission counters to this file in Prometheus text format")
	return cmd
}

// resolve picks the catalog entry for "name[:country]". The country may be
// left out when the name is unique.
func resolve(c *catalog.Catalog, ref string) (catalog.Bookmaker, error) {
	if ref == "" {
		return catalog.Bookmaker{}, nil
	}

	name, country, hasCountry := strings.Cut(ref, ":")
	if hasCountry {
		return c.Find(name, country)
	}

	matches := c.FindByName(name)
	switch len(matches) {
	case 0:
		return catalog.Bookmaker{}, fmt.Errorf("%s: %w", ref, catalog.ErrNotFound)
	case 1:
		return matches[0], nil
	}

	countries := make([]string, 0, len(matches))
	for _, m := range matches {
		countries = append(countries, strings.ToLower(m.Country))
	}
	return catalog.Bookmaker{}, fmt.Errorf("%s is available in several countries, use %s:<country> with one of: %s", name, name, strings.Join(countries, ", "))
}

// notifier prints notices to w and, when verbose, also logs them.
func (o *ConvertOptions) notifier(w io.Writer, log *zap.Logger) convert.Notifier {
	var n convert.Notifier = convert.NewWriterNotifier(w)
	if o.Verbose {
		n = convert.Notifiers{n, convert.NewZapNotifier(log)}
	}
	return n
}

func (o *ConvertOptions) Run(ctx context.Context, out, errOut io.Writer) (err error) {
	client := o.client(errOut)

	list, err := client.ListBookmakers(ctx)
	if err != nil {
		return err
	}
	c, err := catalog.New(list)
	if err != nil {
		return err
	}

	in, err := resolve(c, o.From)
	if err != nil {
		return fmt.Errorf("--from: %w", err)
	}
	outB, err := resolve(c, o.To)
	if err != nil {
		return fmt.Errorf("--to: %w", err)
	}

	log := o.logger(errOut)
	m := metrics.NewClient()
	if o.MetricsFile != "" {
		defer func() {
			if werr := m.WriteTextfile(o.MetricsFile); werr != nil && err == nil {
				err = fmt.Errorf("--metrics-file: %w", werr)
			}
		}()
	}

	form := convert.NewForm(client, o.notifier(errOut, log), log, convert.WithMetrics(m))
	form.SetCode(o.Code)
	if err := form.SelectInput(in); err != nil {
		return fmt.Errorf("--from %s: %w", in.Label(), err)
	}
	if err := form.SelectOutput(outB); err != nil {
		return fmt.Errorf("--to %s: %w", outB.Label(), err)
	}

	submit := form.Submit
	if o.ForceRemove {
		submit = form.SubmitWithRemove
	}

	_, err = submit(ctx)

	var ce *convert.ConversionError
	if o.RetryRemove && errors.As(err, &ce) && ce.Kind == models.KindMarketsUnavailable {
		fmt.Fprintln(errOut, "note: retrying without the unavailable markets")
		_, err = form.Submit(ctx)
	}
	if err != nil {
		// The form has already printed the reason.
		return errConversionFailed
	}

	link, err := form.CopyLink()
	if err != nil {
		return err
	}

	res := form.Result()
	fmt.Fprintf(out, "%s\n%s\n", res.ShareCode, link)
	return nil
}
