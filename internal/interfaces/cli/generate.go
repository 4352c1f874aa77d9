package cli

import (
	"encoding/json"
	"fmt"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/turtacn/molforge/internal/application/export"
	"github.com/turtacn/molforge/internal/application/generator"
	"github.com/turtacn/molforge/internal/domain/chem"
	"github.com/turtacn/molforge/internal/domain/library"
	"github.com/turtacn/molforge/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/molforge/internal/render"
	mtypes "github.com/turtacn/molforge/pkg/types/molecule"
)

type generateOptions struct {
	count    int
	seed     int64
	csvPath  string
	imageDir string
	width    int
	height   int
}

func newGenerateCommand(root *rootOptions) *cobra.Command {
	opts := &generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate candidate drug-like molecules",
		Example: `  molforge generate --count 10
  molforge generate -n 25 --seed 42 --csv molecules.csv
  molforge generate -n 5 --images ./depictions -o json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerate(cmd, root, opts)
		},
	}

	flags := cmd.Flags()
	flags.IntVarP(&opts.count, "count", "n", 0, "number of molecules to attempt (default from config)")
	flags.Int64Var(&opts.seed, "seed", 0, "random seed for a reproducible run")
	flags.StringVar(&opts.csvPath, "csv", "", "write the result set to this CSV file")
	flags.StringVar(&opts.imageDir, "images", "", "write a PNG depiction per molecule into this directory")
	flags.IntVar(&opts.width, "width", 0, "depiction width in pixels (default from config)")
	flags.IntVar(&opts.height, "height", 0, "depiction height in pixels (default from config)")

	return cmd
}

func runGenerate(cmd *cobra.Command, root *rootOptions, opts *generateOptions) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}
	logger, err := root.newLogger(cfg)
	if err != nil {
		return err
	}

	toolkit := chem.NewToolkit(render.NewRenderer())

	lib, err := library.WithOverrides(cfg.Library.Fragments, cfg.Library.Linkers)
	if err != nil {
		return err
	}
	warnInertEntries(logger, lib, toolkit)

	count := opts.count
	if count == 0 {
		count = cfg.Generation.DefaultCount
	}

	serviceOpts := []generator.Option{generator.WithLogger(logger)}
	switch {
	case cmd.Flags().Changed("seed"):
		serviceOpts = append(serviceOpts, generator.WithSeed(opts.seed))
	case cfg.Generation.Seed != 0:
		serviceOpts = append(serviceOpts, generator.WithSeed(cfg.Generation.Seed))
	}

	service := generator.NewService(toolkit, serviceOpts...)
	result, err := service.Generate(cmd.Context(), lib.Fragments(), lib.Linkers(), count)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if result.Empty() {
		fmt.Fprintln(out, "No valid drug-like molecules were generated. Try a larger count or a different library.")
		return nil
	}

	switch root.output {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result.Molecules); err != nil {
			return err
		}
	default:
		printTable(out, result.Molecules)
	}
	fmt.Fprintf(out, "\nGenerated %d of %d requested molecules.\n", len(result.Molecules), count)

	if opts.csvPath != "" {
		if err := writeCSVFile(opts.csvPath, result.Molecules); err != nil {
			return err
		}
		fmt.Fprintf(out, "CSV written to %s\n", opts.csvPath)
	}

	if opts.imageDir != "" {
		width, height := opts.width, opts.height
		if width == 0 {
			width = cfg.Render.Width
		}
		if height == 0 {
			height = cfg.Render.Height
		}
		if err := writeImages(toolkit, opts.imageDir, result.Molecules, width, height); err != nil {
			return err
		}
		fmt.Fprintf(out, "Depictions written to %s\n", opts.imageDir)
	}
	return nil
}

// warnInertEntries surfaces library entries the toolkit cannot parse.
// Unparseable fragments are fatal misconfiguration; unparseable linkers only
// waste slots, so they warn.
func warnInertEntries(logger logging.Logger, lib *library.Library, toolkit chem.Toolkit) {
	report := lib.Validate(toolkit)
	if len(report.InvalidLinkers) > 0 {
		logger.Warn("library contains inert linkers",
			logging.String("linkers", strings.Join(report.InvalidLinkers, ", ")))
	}
	if len(report.InvalidFragments) > 0 {
		logger.Warn("library contains unparseable fragments",
			logging.String("fragments", strings.Join(report.InvalidFragments, ", ")))
	}
}

func printTable(out io.Writer, records []mtypes.RecordDTO) {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSMILES\tMW (Da)\tLogP\tTPSA\tHBA\tHBD")
	for _, rec := range records {
		fmt.Fprintf(w, "%s\t%s\t%.2f\t%.2f\t%.2f\t%d\t%d\n",
			rec.ID, rec.SMILES,
			rec.Descriptors.Weight, rec.Descriptors.LogP, rec.Descriptors.TPSA,
			rec.Descriptors.HAcceptors, rec.Descriptors.HDonors)
	}
	_ = w.Flush()
}

func writeCSVFile(path string, records []mtypes.RecordDTO) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return export.WriteCSV(f, records)
}

func writeImages(toolkit chem.Toolkit, dir string, records []mtypes.RecordDTO, width, height int) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	for _, rec := range records {
		mol, err := toolkit.Parse(rec.SMILES)
		if err != nil {
			return err
		}
		img, err := toolkit.Render2D(mol, width, height)
		if err != nil {
			return err
		}
		f, err := os.Create(filepath.Join(dir, rec.ID+".png"))
		if err != nil {
			return err
		}
		if err := png.Encode(f, img); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
	}
	return nil
}
