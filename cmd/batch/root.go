package main

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/cogniscribe-batch/internal/config"
	"github.com/nguyentantai21042004/cogniscribe-batch/internal/domain"
)

type options struct {
	configPath string
	url        string
	ratio      float64
	subject    string
	output     string
	logLevel   string
	docx       bool
	yes        bool
	watch      bool
}

type streams struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer
}

func newRootCmd(in io.Reader, out, errOut io.Writer) *cobra.Command {
	opts := &options{}
	ios := streams{in: in, out: out, errOut: errOut}

	cmd := &cobra.Command{
		Use:   "cogniscribe-batch [flags] <file-or-directory>...",
		Short: "Transcribe and summarize a batch of lecture recordings",
		Long: `cogniscribe-batch sends every audio file found in the given paths to a
CogniScribe pipeline server, one at a time, and saves the transcript, study
notes and raw result of each under the output directory. A summary of the run
is rewritten after every file so an interrupted run keeps its progress.`,
		Example: `  cogniscribe-batch ~/Lectures/Anatomy/
  cogniscribe-batch lecture1.mp3 lecture2.mp3
  cogniscribe-batch --subject pharmacology --ratio 0.25 ~/Lectures/*.mp3`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd, opts, args, ios)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.configPath, "config", "batch.yaml", "Optional YAML config file")
	flags.StringVar(&opts.url, "url", config.DefaultURL, "CogniScribe API URL")
	flags.Float64Var(&opts.ratio, "ratio", domain.DefaultRatio, "Summary length ratio, 0.05-1.0")
	flags.StringVar(&opts.subject, "subject", "", "Subject/topic for all files (e.g. anatomy)")
	flags.StringVar(&opts.output, "output", config.DefaultOutput, "Output directory")
	flags.StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	flags.BoolVar(&opts.docx, "docx", false, "Also write study_notes.docx for every file")
	flags.BoolVarP(&opts.yes, "yes", "y", false, "Skip the confirmation prompt")
	flags.BoolVar(&opts.watch, "watch", false, "Keep watching the given directories for new recordings")

	cmd.AddCommand(newReportCmd(ios))
	return cmd
}

// loadConfig layers defaults, the config file, the environment and explicit flags.
func loadConfig(cmd *cobra.Command, opts *options) (*config.Config, error) {
	if err := config.LoadDotEnv(".env"); err != nil {
		return nil, err
	}

	cfg, err := config.LoadOptional(opts.configPath)
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv()

	flags := cmd.Flags()
	if flags.Changed("url") {
		cfg.Server.URL = opts.url
	}
	if flags.Changed("ratio") {
		cfg.Request.Ratio = opts.ratio
	}
	if flags.Changed("subject") {
		cfg.Request.Subject = opts.subject
	}
	if flags.Changed("output") {
		cfg.Paths.Output = opts.output
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level = opts.logLevel
	}
	if flags.Changed("docx") {
		cfg.Artifacts.Docx = opts.docx
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
