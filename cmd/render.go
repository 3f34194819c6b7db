package cmd

import (
	"goldilocks/internal/models"
	"goldilocks/internal/modules/filereader"
	"goldilocks/internal/modules/persistence"
	"goldilocks/internal/modules/pipeline"
	"goldilocks/internal/modules/renderer"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

type renderFlags struct {
	input   string
	output  string
	nulls   string
	workers int
	sort    bool
	unique  bool
}

func newRenderCmd(a *app) *cobra.Command {
	var f renderFlags

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Print debug strings for URL records in a CSV file",
		Long: `Reads a CSV file whose first line is a header and whose rows are
protocol,host_name,port,path. An empty port or path means the component is
absent; a path of "" is a present empty path. Each record is printed as
Url { protocol: "...", host_name: "...", port: N, path: "..." }.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, a, &f)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&f.input, "input", "i", "", "Path to CSV file containing URL records")
	flags.StringVarP(&f.output, "output", "o", "", "Write to this file instead of stdout")
	flags.StringVar(&f.nulls, "nulls", "", "Rendering of an absent path: empty or explicit")
	flags.IntVarP(&f.workers, "workers", "w", 0, "Number of rendering workers")
	flags.BoolVar(&f.sort, "sort", false, "Sort records by protocol, host, port, path")
	flags.BoolVar(&f.unique, "unique", false, "Drop records equal to an earlier one")
	cmd.MarkFlagRequired("input")

	return cmd
}

func runRender(cmd *cobra.Command, a *app, f *renderFlags) error {
	flags := cmd.Flags()

	style := a.cfg.NullStyle()
	if flags.Changed("nulls") {
		s, err := models.ParseNullStyle(f.nulls)
		if err != nil {
			return err
		}
		style = s
	}
	workers := flagOr(flags, "workers", f.workers, a.cfg.Render.Workers)
	opts := persistence.Options{
		Sort:   flagOr(flags, "sort", f.sort, a.cfg.Render.Sort),
		Unique: flagOr(flags, "unique", f.unique, a.cfg.Render.Unique),
	}

	sink := persistence.NewStream(cmd.OutOrStdout(), opts)
	if f.output != "" {
		sink = persistence.NewFile(f.output, opts)
	}

	a.logger.Info("starting record processing",
		zap.String("input", f.input),
		zap.String("output", f.output),
		zap.Stringer("nulls", style),
		zap.Int("workers", workers))

	p := pipeline.New(a.logger)
	p.AddStage(filereader.New(f.input))
	p.AddStage(renderer.New(style, workers))
	p.AddStage(sink)

	// The reader stage produces its own input.
	input := make(chan interface{})
	close(input)

	return p.Run(cmd.Context(), input)
}

// flagOr returns flagValue if the named flag was set on the command line, otherwise fallback.
func flagOr[T any](flags *pflag.FlagSet, name string, flagValue, fallback T) T {
	if flags.Changed(name) {
		return flagValue
	}
	return fallback
}
