// aslmirror copies an image dataset organized in label folders, uppercasing the labels, and
// adds a left-right mirrored copy of every image.
//
// With no flags it reads from src/aslwireframedataset and writes to src/aslwireframemodified.
package main

import (
	"flag"
	"os"

	"github.com/aslwire/aslmirror/pkg/materialize"
	"github.com/aslwire/aslmirror/pkg/support/fsutil"
	"github.com/janpfeifer/must"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

var (
	flagConfig = flag.String("config", "", "HCL configuration file with any of the attributes source_dir, dest_dir, "+
		"max_index, extensions, flipped_suffix, match_folder_case and jpeg_quality. Flags explicitly set take precedence.")
	flagSource   = flag.String("source", materialize.DefaultSourceDir, "Source directory, with one sub-directory per label.")
	flagDest     = flag.String("dest", materialize.DefaultDestDir, "Destination directory. Created if missing, never cleared.")
	flagMaxIndex = flag.Int("max_index", materialize.DefaultMaxIndex, "Largest image index looked for in each label folder (inclusive).")
	flagSuffix   = flag.String("flipped_suffix", materialize.DefaultFlippedSuffix,
		"Suffix appended to the uppercased label for the directory of mirrored images.")
	flagMatchFolderCase = flag.Bool("match_folder_case", false, "Look for source images named with the label folder "+
		"as is (e.g. a/a0.png), instead of the uppercased label (a/A0.png). Destination names are always uppercased.")
	flagJPEGQuality = flag.Int("jpeg_quality", materialize.DefaultJPEGQuality, "Quality (1-100) of the mirrored JPEG images.")
	flagProgress    = flag.Bool("progress", true, "Display a progress bar.")
	flagSummary     = flag.Bool("summary", true, "Display a table with the number of images written per label.")
)

func main() {
	klog.InitFlags(nil)
	flag.Parse()
	must.M = func(err error) {
		if err != nil {
			klog.Errorf("%+v", err)
			klog.Flush()
			os.Exit(1)
		}
	}
	must.M(run())
	klog.Flush()
}

// run materializes the dataset configured by the parsed flags. The returned error names the
// offending path.
func run() error {
	if flag.NArg() > 0 {
		return errors.Errorf("unexpected arguments %q, see 'aslmirror -help'", flag.Args())
	}
	config, err := buildConfig()
	if err != nil {
		return err
	}
	m, err := materialize.New(config)
	if err != nil {
		return err
	}
	report, err := m.Run()
	if *flagSummary && report != nil {
		printSummary(report)
	}
	return err
}

// buildConfig starts from the defaults, applies the -config file, if given, and then the flags
// explicitly set in the command line.
func buildConfig() (config materialize.Config, err error) {
	config = materialize.DefaultConfig()
	if *flagConfig != "" {
		configPath, err := fsutil.ReplaceTildeInDir(*flagConfig)
		if err != nil {
			return config, err
		}
		config, err = materialize.LoadConfigFile(configPath, config)
		if err != nil {
			return config, err
		}
	}

	flag.Visit(func(f *flag.Flag) {
		if err != nil {
			return
		}
		switch f.Name {
		case "source":
			config.SourceDir, err = fsutil.ReplaceTildeInDir(*flagSource)
		case "dest":
			config.DestDir, err = fsutil.ReplaceTildeInDir(*flagDest)
		case "max_index":
			config.MaxIndex = *flagMaxIndex
		case "flipped_suffix":
			config.FlippedSuffix = *flagSuffix
		case "match_folder_case":
			config.MatchFolderCase = *flagMatchFolderCase
		case "jpeg_quality":
			config.JPEGQuality = *flagJPEGQuality
		}
	})
	if err != nil {
		return config, err
	}
	config.ShowProgress = *flagProgress
	return config, nil
}
