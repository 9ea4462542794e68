package main

import (
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/dlrkawo/aitutor-lms/backend"
	"github.com/dlrkawo/aitutor-lms/client"
	"github.com/dlrkawo/aitutor-lms/internal/config"
	"github.com/dlrkawo/aitutor-lms/internal/logger"
)

func main() {
	if err := NewRootCmd().Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

// rootOptions holds the persistent flags and the configuration they
// resolve to before any subcommand runs.
type rootOptions struct {
	apiURL  string
	mode    string
	backend string
	debug   bool
	timeout time.Duration

	cfg *config.Config
}

// NewRootCmd constructs the root CLI command; exposed for unit testing.
func NewRootCmd() *cobra.Command {
	o := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:           "lmsctl",
		Short:         "lmsctl drives the AI Tutor LMS backend from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return o.setup(cmd)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&o.apiURL, "api-url", "", "Absolute backend address; implies --mode direct (env LMS_API_URL)")
	pf.StringVar(&o.mode, "mode", "", "Address mode: auto, proxy or direct (env LMS_MODE)")
	pf.StringVar(&o.backend, "backend", "", "Backend: http or memory (env LMS_BACKEND)")
	pf.BoolVarP(&o.debug, "debug", "d", false, "Enable debug logging with request/response dumps")
	pf.DurationVar(&o.timeout, "timeout", 0, "Per-request timeout, 0 for none (env LMS_HTTP_TIMEOUT)")

	rootCmd.AddCommand(
		newSignupCmd(o),
		newLoginCmd(o),
		newLogoutCmd(o),
		newWhoamiCmd(o),
		newTokenCmd(o),
		newPingCmd(o),
		newCoursesCmd(o),
		newLecturesCmd(o),
		newInquireCmd(o),
		newQuizCmd(o),
		newAssessmentsCmd(o),
		newSubmissionsCmd(o),
	)
	return rootCmd
}

// setup loads LMS_ configuration, applies flag overrides and initialises
// logging.
func (o *rootOptions) setup(cmd *cobra.Command) error {
	logger.Init("info", o.debug)

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("api-url") {
		cfg.APIURL = o.apiURL
		if !flags.Changed("mode") {
			cfg.Mode = config.ModeAuto
		}
	}
	if flags.Changed("mode") {
		cfg.Mode = o.mode
	}
	if flags.Changed("backend") {
		cfg.Backend = o.backend
	}
	if flags.Changed("timeout") {
		cfg.HTTPTimeout = o.timeout
	}
	if o.debug {
		cfg.Debug = true
	}
	if err := cfg.ResolveDefaults(); err != nil {
		return err
	}

	logger.Init(cfg.LogLevel, cfg.Debug)
	log.Debug().
		Str("mode", cfg.Mode).
		Str("base_url", cfg.BaseURL).
		Str("backend", cfg.Backend).
		Msg("lmsctl configured")
	o.cfg = cfg
	return nil
}

// open connects to the configured backend. Callers close it.
func (o *rootOptions) open(opts ...client.Option) (*backend.Backend, error) {
	return backend.Open(o.cfg, log.Logger, opts...)
}

func closeBackend(b *backend.Backend) {
	if err := b.Close(); err != nil {
		log.Warn().Err(err).Msg("close backend")
	}
}
