package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/success-cli/internal/report"
)

var (
	metricsFormat string
	metricsOutDir string
)

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Link the exports and compute all metric dimensions",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate("metrics"); err != nil {
			return err
		}

		store, err := loadStore(cfg.Data)
		if err != nil {
			return err
		}

		rep, err := computeReport(cmd.Context(), store)
		if err != nil {
			return err
		}

		return writeReport(rep, reportFormat(), reportOutDir())
	},
}

func reportFormat() string {
	if metricsFormat != "" {
		return metricsFormat
	}
	return cfg.Report.Format
}

func reportOutDir() string {
	if metricsOutDir != "" {
		return metricsOutDir
	}
	return cfg.Report.OutDir
}

// writeReport renders the report into outDir. CSV produces one file per
// comparison table; json and yaml produce a single document.
func writeReport(rep *report.Report, format, outDir string) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return eris.Wrapf(err, "create output dir %s", outDir)
	}

	write := func(name string, fn func(f *os.File) error) error {
		path := filepath.Join(outDir, name)
		f, err := os.Create(path)
		if err != nil {
			return eris.Wrapf(err, "create %s", path)
		}
		defer f.Close()
		if err := fn(f); err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", path)
		return nil
	}

	switch format {
	case "json":
		return write("report.json", func(f *os.File) error { return rep.WriteJSON(f) })
	case "yaml":
		return write("report.yaml", func(f *os.File) error { return rep.WriteYAML(f) })
	case "csv":
		if err := write("accounts.csv", func(f *os.File) error { return rep.WriteAccountCSV(f) }); err != nil {
			return err
		}
		return write("products.csv", func(f *os.File) error { return rep.WriteProductCSV(f) })
	default:
		return eris.Errorf("unknown report format %q", format)
	}
}

func init() {
	metricsCmd.Flags().StringVar(&metricsFormat, "format", "", "report format: json, yaml, or csv (default from config)")
	metricsCmd.Flags().StringVar(&metricsOutDir, "out-dir", "", "output directory (default from config)")
	rootCmd.AddCommand(metricsCmd)
}
