package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// DoctorJSON represents the JSON output structure for doctor command
type DoctorJSON struct {
	ConfigSource string   `json:"config_source"`
	SettingPath  string   `json:"setting_path,omitempty"`
	Dictionary   string   `json:"dictionary"`
	Version      string   `json:"dictionary_version,omitempty"`
	Fields       int      `json:"fields"`
	Delimiter    string   `json:"delimiter"`
	Archive      string   `json:"archive"`
	Archived     int      `json:"archived"`
	Metrics      string   `json:"metrics_textfile,omitempty"`
	Errors       []string `json:"errors"`
}

func newDoctorCmd(opts *rootOptions) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check configuration, dictionary and archive",
		RunE: func(cmd *cobra.Command, args []string) error {
			report := runDoctor(cmd, opts)
			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if err := enc.Encode(report); err != nil {
					return err
				}
			} else {
				printDoctor(cmd.OutOrStdout(), report)
			}
			if len(report.Errors) > 0 {
				return fmt.Errorf("doctor found %d problem(s)", len(report.Errors))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	return cmd
}

func runDoctor(cmd *cobra.Command, opts *rootOptions) *DoctorJSON {
	c := opts.container
	cfg := c.Config()
	report := &DoctorJSON{
		ConfigSource: cfg.ConfigSource(),
		SettingPath:  cfg.SettingPath(),
		Dictionary:   cfg.DictionaryPath(),
		Delimiter:    delimiterName(cfg.Delimiter()),
		Archive:      cfg.ArchivePath(),
		Metrics:      cfg.MetricsTextfile(),
		Errors:       []string{},
	}

	if dict, err := c.Dictionary(cmd.Context()); err != nil {
		report.Errors = append(report.Errors, err.Error())
	} else {
		report.Version = dict.Version()
		report.Fields = dict.Len()
	}

	if records, err := c.Records(); err != nil {
		report.Errors = append(report.Errors, err.Error())
	} else if n, err := records.Count(cmd.Context()); err != nil {
		report.Errors = append(report.Errors, fmt.Sprintf("count archive: %v", err))
	} else {
		report.Archived = n
	}

	if report.Metrics != "" {
		if err := probeWritable(c.FS(), filepath.Dir(report.Metrics)); err != nil {
			report.Errors = append(report.Errors, err.Error())
		}
	}
	return report
}

func probeWritable(fs afero.Fs, dir string) error {
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("metrics dir error: %w", err)
	}
	f, err := afero.TempFile(fs, dir, ".probe-")
	if err != nil {
		return fmt.Errorf("write check failed: %w", err)
	}
	name := f.Name()
	f.Close()
	_ = fs.Remove(name)
	return nil
}

func delimiterName(d byte) string {
	if d == 0x01 {
		return "SOH"
	}
	return string(d)
}

func printDoctor(w io.Writer, r *DoctorJSON) {
	fmt.Fprintf(w, "Config: %s", r.ConfigSource)
	if r.SettingPath != "" {
		fmt.Fprintf(w, " (%s)", r.SettingPath)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Delimiter: %s\n", r.Delimiter)
	if r.Version != "" {
		fmt.Fprintf(w, "OK: dictionary %s loaded from %s (%d fields)\n", r.Version, r.Dictionary, r.Fields)
	}
	fmt.Fprintf(w, "Archive: %s (%d records)\n", r.Archive, r.Archived)
	if r.Metrics != "" {
		fmt.Fprintf(w, "Metrics textfile: %s\n", r.Metrics)
	}
	for _, e := range r.Errors {
		fmt.Fprintf(w, "ERROR: %s\n", e)
	}
}
