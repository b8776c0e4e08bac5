// Command betconvert converts betting booking codes between bookmakers
// through the converter API.
package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/sacsbrainz/betconverter/internal/convert"
)

const (
	appName        = "betconvert"
	apiURLEnv      = "BETCONVERTER_API_URL"
	defaultBaseURL = "http://localhost:8080"
)

// GlobalOptions are shared by every subcommand.
type GlobalOptions struct {
	APIURL  string
	Verbose bool
}

func (o *GlobalOptions) Bind(cmd *cobra.Command) {
	def := os.Getenv(apiURLEnv)
	if def == "" {
		def = defaultBaseURL
	}
	cmd.PersistentFlags().StringVar(&o.APIURL, "api-url", def, "converter API base URL (env "+apiURLEnv+")")
	cmd.PersistentFlags().BoolVarP(&o.Verbose, "verbose", "v", false, "log requests to stderr")
}

func (o *GlobalOptions) logger(w io.Writer) *zap.Logger {
	if !o.Verbose {
		return zap.NewNop()
	}
	enc := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	return zap.New(zapcore.NewCore(enc, zapcore.AddSync(w), zap.DebugLevel))
}

func (o *GlobalOptions) client(w io.Writer) *convert.Client {
	return convert.NewClient(o.APIURL, o.logger(w))
}

func NewBetconvertCommand() *cobra.Command {
	o := &GlobalOptions{}
	cmd := &cobra.Command{
		Use:           appName + " [command]",
		Short:         "Convert betting booking codes between bookmakers.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	o.Bind(cmd)

	cmd.AddCommand(NewCmdBookies(o))
	cmd.AddCommand(NewCmdConvert(o))

	return cmd
}

func main() {
	cobra.CheckErr(NewBetconvertCommand().Execute())
}
