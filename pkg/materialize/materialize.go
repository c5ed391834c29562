// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package materialize copies an image dataset organized in one folder per label into a new
// directory, with the labels uppercased, and augments it with left-right mirrored copies.
//
// For a source tree like:
//
//	aslwireframedataset/
//	  a/A0.png A1.jpg ...
//	  b/B0.png ...
//
// Materializer.Run produces:
//
//	aslwireframemodified/
//	  A/A0.png A1.jpg ...
//	  A_flipped/A0.png A1.jpg ...
//	  B/B0.png ...
//	  B_flipped/B0.png ...
//
// Images are looked for by name, `<LABEL><index><ext>`, for index in 0...MaxIndex and for each
// configured extension. Notice the source files must be named with the uppercased label, unless
// Config.MatchFolderCase is set.
//
// Runs are sequential and may be repeated: files are overwritten, and nothing is ever deleted.
package materialize

import (
	"os"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/aslwire/aslmirror/pkg/support/fsutil"
	"github.com/pkg/errors"
	"github.com/schollz/progressbar/v3"
	"k8s.io/klog/v2"
)

// Materializer turns the label folders of Config.SourceDir into the uppercased and augmented
// layout in Config.DestDir.
type Materializer struct {
	config Config
	bar    *progressbar.ProgressBar
}

// New returns a Materializer for the given configuration, or an error if the configuration is invalid.
func New(config Config) (*Materializer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	config.Extensions = append([]string(nil), config.Extensions...)
	return &Materializer{config: config}, nil
}

// Config returns a copy of the configuration used by the Materializer.
func (m *Materializer) Config() Config {
	c := m.config
	c.Extensions = append([]string(nil), c.Extensions...)
	return c
}

// LabelReport holds what was written for one label folder.
type LabelReport struct {
	// Folder is the name of the source folder, Label its uppercased version.
	Folder, Label string

	// Copied and Flipped are the number of files written to each of the destination directories.
	Copied, Flipped int

	// Bytes copied verbatim.
	Bytes int64
}

// Report of a Materializer run.
type Report struct {
	SourceDir, DestDir string
	Labels             []LabelReport
	Elapsed            time.Duration
}

// Copied returns the total number of images copied.
func (r *Report) Copied() (total int) {
	for _, l := range r.Labels {
		total += l.Copied
	}
	return
}

// Flipped returns the total number of mirrored images written.
func (r *Report) Flipped() (total int) {
	for _, l := range r.Labels {
		total += l.Flipped
	}
	return
}

// Bytes returns the total number of bytes copied verbatim.
func (r *Report) Bytes() (total int64) {
	for _, l := range r.Labels {
		total += l.Bytes
	}
	return
}

// CandidateName returns the image file name for the given label, index and extension (with the ".").
func CandidateName(label string, index int, ext string) string {
	return label + strconv.Itoa(index) + ext
}

// Labels returns the names of the label folders in the source directory: its immediate
// sub-directories (or symbolic links to directories). Other entries are ignored.
//
// The names are returned sorted.
func (m *Materializer) Labels() ([]string, error) {
	entries, err := os.ReadDir(m.config.SourceDir)
	if err != nil {
		return nil, newError(OpList, m.config.SourceDir, err)
	}
	folders := make([]string, 0, len(entries))
	for _, entry := range entries {
		isDir := entry.IsDir()
		if entry.Type()&os.ModeSymlink != 0 {
			info, err := os.Stat(path.Join(m.config.SourceDir, entry.Name()))
			if err != nil {
				klog.Warningf("Skipping %q in %q: %v", entry.Name(), m.config.SourceDir, err)
				continue
			}
			isDir = info.IsDir()
		}
		if !isDir {
			continue
		}
		folders = append(folders, entry.Name())
	}
	return folders, nil
}

// Run materializes every label folder found in the source directory.
//
// It aborts on the first error, returning the report of what was written so far along with
// the error, which will be an *Error naming the offending path.
func (m *Materializer) Run() (*Report, error) {
	start := time.Now()
	report := &Report{SourceDir: m.config.SourceDir, DestDir: m.config.DestDir}
	folders, err := m.Labels()
	if err != nil {
		return report, err
	}
	if err = os.MkdirAll(m.config.DestDir, 0755); err != nil {
		return report, newError(OpMkdir, m.config.DestDir, err)
	}
	klog.Infof("Materializing %d label folders from %q to %q", len(folders), m.config.SourceDir, m.config.DestDir)

	// Two folders differing only by case write to the same destination directories.
	seenLabels := make(map[string]string, len(folders))
	for _, folder := range folders {
		label := strings.ToUpper(folder)
		if previous, found := seenLabels[label]; found {
			klog.Warningf("Folders %q and %q both map to label %q, their images will be merged", previous, folder, label)
		}
		seenLabels[label] = folder
	}

	if m.config.ShowProgress {
		m.bar = progressbar.NewOptions(len(folders)*(m.config.MaxIndex+1),
			progressbar.OptionSetDescription("Materializing"),
			progressbar.OptionUseANSICodes(true),
			progressbar.OptionEnableColorCodes(true),
			progressbar.OptionShowIts(),
			progressbar.OptionSetItsString("indices"),
			progressbar.OptionSetTheme(progressbar.ThemeUnicode),
		)
		defer func() {
			_ = m.bar.Close()
			m.bar = nil
		}()
	}

	for _, folder := range folders {
		labelReport, err := m.MaterializeLabel(folder)
		report.Labels = append(report.Labels, labelReport)
		if err != nil {
			report.Elapsed = time.Since(start)
			return report, err
		}
	}
	report.Elapsed = time.Since(start)
	klog.Infof("Materialized %d labels: %d images copied, %d mirrored, in %s",
		len(report.Labels), report.Copied(), report.Flipped(), report.Elapsed)
	return report, nil
}

// MaterializeLabel copies and mirrors the images of one label folder (given by its name
// in the source directory).
//
// Indices are processed in ascending order, and for each index the extensions in the configured order.
func (m *Materializer) MaterializeLabel(folder string) (LabelReport, error) {
	label := strings.ToUpper(folder)
	report := LabelReport{Folder: folder, Label: label}
	srcDir := path.Join(m.config.SourceDir, folder)
	copyDir := path.Join(m.config.DestDir, label)
	flippedDir := path.Join(m.config.DestDir, label+m.config.FlippedSuffix)
	for _, dir := range []string{copyDir, flippedDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return report, newError(OpMkdir, dir, err)
		}
	}

	prefix := label
	if m.config.MatchFolderCase {
		prefix = folder
	}
	for idx := 0; idx <= m.config.MaxIndex; idx++ {
		for _, ext := range m.config.Extensions {
			srcPath := path.Join(srcDir, CandidateName(prefix, idx, ext))
			found, err := fsutil.IsRegularFile(srcPath)
			if err != nil {
				return report, newError(OpStat, srcPath, errors.Cause(err))
			}
			if !found {
				continue
			}

			name := CandidateName(label, idx, ext)
			copyPath := path.Join(copyDir, name)
			n, err := fsutil.CopyFile(srcPath, copyPath)
			if err != nil {
				return report, newError(OpCopy, copyPath, err)
			}
			report.Copied++
			report.Bytes += n

			flippedPath := path.Join(flippedDir, name)
			if err = FlipFile(srcPath, flippedPath, m.config.JPEGQuality); err != nil {
				return report, err
			}
			report.Flipped++
			klog.V(1).Infof("%s -> %s, %s", srcPath, copyPath, flippedPath)
		}
		if m.bar != nil {
			_ = m.bar.Add(1)
		}
	}
	klog.Infof("Label %q (folder %q): %d images", label, folder, report.Copied)
	return report, nil
}
