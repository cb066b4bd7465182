// Copyright (c) 2026 The XGo Authors (xgo.dev). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package build

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/goplus/ttpdist/pkgs/dist"
	"github.com/goplus/ttpdist/pkgs/mod/versions"
	"github.com/goplus/ttpdist/pkgs/platform"
)

// ErrMissingPlatformDir is returned when the source tree has no directory
// for the resolved platform.
var ErrMissingPlatformDir = errors.New("platform directory not found")

// Options configures a Packager.
type Options struct {
	// SourceDir holds one pre-built directory per platform, e.g. win64-release.
	SourceDir string
	// OutputDir receives the packaged platform directory.
	OutputDir string
	// WorkspaceDir holds the package index. Empty disables the index.
	WorkspaceDir string

	Locator *dist.Locator // nil uses the default allow-list
	Copier  Copier        // nil uses FSCopier
	Logger  *log.Logger   // nil uses log.Default()
}

// Packager copies the pre-built artifacts of one platform into a package.
type Packager struct {
	sourceDir    string
	outputDir    string
	workspaceDir string
	locator      *dist.Locator
	copier       Copier
	logger       *log.Logger
}

// Result describes a produced package.
type Result struct {
	Resolution *dist.Resolution
	OutputDir  string // the packaged platform directory
	Manifest   *Manifest
}

// NewPackager creates a Packager.
func NewPackager(opts Options) (*Packager, error) {
	if opts.SourceDir == "" {
		return nil, errors.New("source directory is required")
	}
	if opts.OutputDir == "" {
		return nil, errors.New("output directory is required")
	}
	sourceDir, err := filepath.Abs(opts.SourceDir)
	if err != nil {
		return nil, err
	}
	outputDir, err := filepath.Abs(opts.OutputDir)
	if err != nil {
		return nil, err
	}
	p := &Packager{
		sourceDir:    sourceDir,
		outputDir:    outputDir,
		workspaceDir: opts.WorkspaceDir,
		locator:      opts.Locator,
		copier:       opts.Copier,
		logger:       opts.Logger,
	}
	if p.locator == nil {
		p.locator = dist.NewLocator(nil)
	}
	if p.copier == nil {
		p.copier = FSCopier{}
	}
	if p.logger == nil {
		p.logger = log.Default()
	}
	return p, nil
}

// Package resolves s, copies the platform's include, bin and debuglib
// directories as is and its lib directory through the selection, and
// writes the manifest stamped with version. On failure nothing is left
// in the output directory.
func (p *Packager) Package(ctx context.Context, s platform.Settings, version string) (*Result, error) {
	if version == "" {
		return nil, fmt.Errorf("package %s: %w", s, versions.ErrMalformedVersionFile)
	}
	res, err := p.locator.Resolve(s)
	if err != nil {
		return nil, err
	}
	logger := p.logger.With("dir", res.DirName)

	srcRoot := filepath.Join(p.sourceDir, res.DirName)
	if info, err := os.Stat(srcRoot); err != nil || !info.IsDir() {
		return nil, fmt.Errorf("package %s: %w: %s", s, ErrMissingPlatformDir, srcRoot)
	}

	semver := versions.Semver(version)
	if semver == "" {
		logger.Warn("version is not a semantic version", "version", version)
	}

	if err := os.MkdirAll(p.outputDir, 0o755); err != nil {
		return nil, err
	}
	stage, err := os.MkdirTemp(p.outputDir, "."+res.DirName+".tmp-")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(stage)

	files := make(map[string]int, len(dist.Categories))
	for _, category := range dist.Categories {
		src := filepath.Join(srcRoot, category)
		if _, err := os.Stat(src); errors.Is(err, fs.ErrNotExist) {
			logger.Debug("skipping missing directory", "category", category)
			continue
		}
		var keep func(string) bool
		if category == dist.LibDir && res.Selection.Filtered() {
			keep = res.Selection.Keep
		}
		n, err := p.copier.CopyDir(ctx, src, filepath.Join(stage, category), keep)
		if err != nil {
			return nil, fmt.Errorf("copy %s: %w", category, err)
		}
		files[category] = n
		logger.Debug("copied", "category", category, "files", n, "selection", selectionOf(category, res.Selection))
	}
	if res.Selection.Filtered() {
		p.warnMissing(logger, srcRoot, stage, res.Selection.AllowList())
	}

	manifest := &Manifest{
		Version:   version,
		Semver:    semver,
		OS:        s.OSName(),
		Arch:      s.ArchName(),
		BuildType: s.BuildType,
		DirName:   res.DirName,
		Selection: res.Selection.String(),
		Layout:    res.Layout,
		Files:     files,
		BuildTime: time.Now().UTC(),
	}
	if err := writeManifest(stage, manifest); err != nil {
		return nil, err
	}

	// A broken workspace must fail before anything is published.
	var index *packageIndex
	if p.workspaceDir != "" {
		if index, err = loadIndex(p.workspaceDir); err != nil {
			return nil, fmt.Errorf("load package index: %w", err)
		}
	}

	final := filepath.Join(p.outputDir, res.DirName)
	err = publish(stage, final, func() error {
		if index == nil {
			return nil
		}
		if err := p.record(logger, index, manifest, final); err != nil {
			return fmt.Errorf("update package index: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	logger.Info("packaged", "version", version, "output", final)
	return &Result{Resolution: res, OutputDir: final, Manifest: manifest}, nil
}

// publish renames stage to final and then runs commit. A previous package
// at final is moved aside and only removed once commit succeeds; on any
// failure it is put back.
func publish(stage, final string, commit func() error) error {
	backup := stage + ".old"
	hadPrev := true
	if err := os.Rename(final, backup); errors.Is(err, fs.ErrNotExist) {
		hadPrev = false
	} else if err != nil {
		return err
	}
	restore := func() {
		if hadPrev {
			os.Rename(backup, final)
		}
	}
	if err := os.Rename(stage, final); err != nil {
		restore()
		return err
	}
	if err := commit(); err != nil {
		os.RemoveAll(final)
		restore()
		return err
	}
	if hadPrev {
		os.RemoveAll(backup)
	}
	return nil
}

func (p *Packager) record(logger *log.Logger, index *packageIndex, m *Manifest, outputDir string) error {
	if prev, ok := index.get(m.Version, m.DirName); ok {
		logger.Info("replacing indexed package", "built", prev.BuildTime.Format(time.RFC3339))
	}
	total := 0
	for _, n := range m.Files {
		total += n
	}
	index.set(&IndexEntry{
		Version:   m.Version,
		DirName:   m.DirName,
		OutputDir: outputDir,
		Files:     total,
		BuildTime: m.BuildTime,
	})
	return saveIndex(p.workspaceDir, index)
}

// warnMissing logs allow-listed libraries that matched nothing in the source.
func (p *Packager) warnMissing(logger *log.Logger, srcRoot, stage string, allow *dist.AllowList) {
	libDir := filepath.Join(stage, dist.LibDir)
	var rels []string
	filepath.WalkDir(libDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		if rel, err := filepath.Rel(libDir, path); err == nil {
			rels = append(rels, filepath.ToSlash(rel))
		}
		return nil
	})
	for _, f := range allow.Unmatched(rels) {
		logger.Warn("allow-listed library not found", "file", f, "source", filepath.Join(srcRoot, dist.LibDir))
	}
}

func selectionOf(category string, sel dist.Selection) string {
	if category == dist.LibDir {
		return sel.String()
	}
	return "all"
}
