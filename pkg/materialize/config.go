// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package materialize

import (
	"strings"

	"github.com/aslwire/aslmirror/pkg/support/fsutil"
	"github.com/disintegration/imaging"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/pkg/errors"
)

const (
	DefaultSourceDir     = "src/aslwireframedataset"
	DefaultDestDir       = "src/aslwireframemodified"
	DefaultMaxIndex      = 1000
	DefaultFlippedSuffix = "_flipped"
	DefaultJPEGQuality   = 95
)

// DefaultExtensions are tried, in this order, for every index.
var DefaultExtensions = []string{".png", ".jpg", ".jpeg"}

// Config holds the parameters of a Materializer run.
type Config struct {
	// SourceDir holds one sub-directory per label.
	SourceDir string

	// DestDir receives, for each label, the directories <LABEL> and <LABEL><FlippedSuffix>.
	// It is created if missing, and never cleared.
	DestDir string

	// MaxIndex is the largest image index looked for, inclusive.
	MaxIndex int

	// Extensions are the file extensions (with the leading ".") tried for each index, in order.
	Extensions []string

	// FlippedSuffix is appended to the uppercased label to name the directory of mirrored images.
	FlippedSuffix string

	// MatchFolderCase makes the source file names be looked for with the label folder name as is,
	// instead of uppercased. Destination names are always uppercased.
	//
	// The default (false) only finds source files already named with the uppercased label.
	MatchFolderCase bool

	// JPEGQuality used when encoding mirrored JPEG images, from 1 to 100.
	JPEGQuality int

	// ShowProgress displays a progress bar on the terminal.
	ShowProgress bool
}

// DefaultConfig returns the configuration with the default paths, index bound and extensions.
func DefaultConfig() Config {
	return Config{
		SourceDir:     DefaultSourceDir,
		DestDir:       DefaultDestDir,
		MaxIndex:      DefaultMaxIndex,
		Extensions:    append([]string(nil), DefaultExtensions...),
		FlippedSuffix: DefaultFlippedSuffix,
		JPEGQuality:   DefaultJPEGQuality,
	}
}

// Validate returns an error if the configuration can't be used for a run.
func (c *Config) Validate() error {
	if c.SourceDir == "" {
		return errors.New("source directory not set")
	}
	if c.DestDir == "" {
		return errors.New("destination directory not set")
	}
	if c.MaxIndex < 0 {
		return errors.Errorf("max index must be >= 0, got %d", c.MaxIndex)
	}
	if len(c.Extensions) == 0 {
		return errors.New("no image extensions configured")
	}
	for _, ext := range c.Extensions {
		if !strings.HasPrefix(ext, ".") {
			return errors.Errorf("extension %q must start with \".\"", ext)
		}
		if _, err := imaging.FormatFromExtension(ext); err != nil {
			return errors.Wrapf(err, "extension %q has no image codec", ext)
		}
	}
	if c.FlippedSuffix == "" {
		return errors.New("flipped suffix must not be empty, otherwise mirrored images overwrite the copies")
	}
	if c.JPEGQuality < 1 || c.JPEGQuality > 100 {
		return errors.Errorf("jpeg quality must be between 1 and 100, got %d", c.JPEGQuality)
	}
	return nil
}

// hclConfigFile is the layout of a configuration file. Attributes left out keep their previous values.
type hclConfigFile struct {
	SourceDir       *string  `hcl:"source_dir,optional"`
	DestDir         *string  `hcl:"dest_dir,optional"`
	MaxIndex        *int     `hcl:"max_index,optional"`
	Extensions      []string `hcl:"extensions,optional"`
	FlippedSuffix   *string  `hcl:"flipped_suffix,optional"`
	MatchFolderCase *bool    `hcl:"match_folder_case,optional"`
	JPEGQuality     *int     `hcl:"jpeg_quality,optional"`
}

// LoadConfigFile reads the HCL configuration file in filePath and applies its attributes over base.
//
// Example of a configuration file:
//
//	source_dir = "~/data/aslwireframedataset"
//	dest_dir   = "~/data/aslwireframemodified"
//	max_index  = 1000
//	extensions = [".png", ".jpg", ".jpeg"]
//
// Directories starting with "~" are expanded to the user's home directory.
func LoadConfigFile(filePath string, base Config) (Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filePath)
	if diags.HasErrors() {
		return base, errors.Errorf("failed to parse HCL file %s: %s", filePath, diags.Error())
	}
	var parsed hclConfigFile
	diags = gohcl.DecodeBody(file.Body, nil, &parsed)
	if diags.HasErrors() {
		return base, errors.Errorf("failed to decode HCL file %s: %s", filePath, diags.Error())
	}

	config := base
	var err error
	if parsed.SourceDir != nil {
		if config.SourceDir, err = fsutil.ReplaceTildeInDir(*parsed.SourceDir); err != nil {
			return base, errors.WithMessagef(err, "in config file %s", filePath)
		}
	}
	if parsed.DestDir != nil {
		if config.DestDir, err = fsutil.ReplaceTildeInDir(*parsed.DestDir); err != nil {
			return base, errors.WithMessagef(err, "in config file %s", filePath)
		}
	}
	if parsed.MaxIndex != nil {
		config.MaxIndex = *parsed.MaxIndex
	}
	if parsed.Extensions != nil {
		config.Extensions = parsed.Extensions
	}
	if parsed.FlippedSuffix != nil {
		config.FlippedSuffix = *parsed.FlippedSuffix
	}
	if parsed.MatchFolderCase != nil {
		config.MatchFolderCase = *parsed.MatchFolderCase
	}
	if parsed.JPEGQuality != nil {
		config.JPEGQuality = *parsed.JPEGQuality
	}
	if err = config.Validate(); err != nil {
		return base, errors.WithMessagef(err, "invalid configuration in %s", filePath)
	}
	return config, nil
}
