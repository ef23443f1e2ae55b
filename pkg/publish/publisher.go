// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package publish copies source trees into a consumer project, rewriting
// namespace declarations to match the destination.
package publish

import (
	"context"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/walteh/publishrc/pkg/namespace"
	"gitlab.com/tozd/go/errors"
)

// 🖼️ FileEvent describes one per-file outcome during a tree publish.
type FileEvent struct {
	// SourcePath is always set.
	SourcePath string
	// DestPath and Namespace are empty for skipped files.
	DestPath  string
	Namespace string
	// Rewritten reports whether a namespace declaration was replaced.
	Rewritten bool
	// Skipped reports that an ignore pattern excluded the file.
	Skipped bool
}

// 🔔 FileEventHook receives one event per file the walk touches, including
// files excluded by ignore patterns.
type FileEventHook func(FileEvent)

// 🔧 Options configures a Publisher.
type Options struct {
	// Namespace is the base namespace assigned to files directly inside the
	// source root. Each directory level below appends one segment.
	Namespace string
	// OnCopy, when set, runs after each successful per-file copy and rewrite.
	OnCopy CopyCallback
	// OnFile, when set, receives a FileEvent per published or skipped file.
	OnFile FileEventHook
	// Ignore lists doublestar patterns matched against slash-separated paths
	// relative to the source root; matching files are not published.
	Ignore []string
	// Logger defaults to the context logger when nil.
	Logger *zerolog.Logger
}

// 📦 Publisher mirrors a source tree into a destination directory, rewriting
// each file's namespace declaration as it descends.
type Publisher struct {
	opts Options
}

// 🏭 New creates a new Publisher
func New(opts Options) *Publisher {
	return &Publisher{opts: opts}
}

// 🏃 Publish walks sourceDir recursively, mirroring it into destDir.
// Directory nesting maps one-to-one onto namespace nesting: a file k levels
// below sourceDir receives the base namespace plus k segments, each a
// directory name taken verbatim. Entries are processed in lexical order. A
// failure anywhere aborts the walk; there is no rollback.
func (p *Publisher) Publish(ctx context.Context, sourceDir, destDir string) error {
	logger := p.opts.Logger
	if logger == nil {
		logger = zerolog.Ctx(ctx)
	}

	if _, err := os.Stat(sourceDir); err != nil {
		return errors.Errorf("%w: %s", ErrSourceNotFound, sourceDir)
	}

	visited := map[string]bool{}
	return p.publishDir(ctx, logger, sourceDir, destDir, p.opts.Namespace, sourceDir, visited)
}

// 📁 publishDir publishes one directory level and recurses into its
// subdirectories.
func (p *Publisher) publishDir(ctx context.Context, logger *zerolog.Logger, sourceDir, destDir, ns, root string, visited map[string]bool) error {
	// Symlink cycle guard: never descend into the same canonical directory twice.
	canonical, err := canonicalDir(sourceDir)
	if err != nil {
		return errors.Errorf("%w: %s", ErrSourceNotFound, sourceDir)
	}
	if visited[canonical] {
		logger.Warn().Str("dir", sourceDir).Msg("skipping already-visited directory")
		return nil
	}
	visited[canonical] = true

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return errors.Errorf("%w %s: %w", ErrCreatingDirectory, destDir, err)
	}

	entries, err := os.ReadDir(sourceDir)
	if err != nil {
		return errors.Errorf("%w %s: %w", ErrReadingFile, sourceDir, err)
	}

	for _, entry := range entries {
		srcPath := filepath.Join(sourceDir, entry.Name())

		// Classify through symlinks so a linked directory still recurses.
		info, err := os.Stat(srcPath)
		if err != nil {
			return errors.Errorf("%w %s: %w", ErrReadingFile, srcPath, err)
		}

		if info.IsDir() {
			childNS := namespace.Join(ns, entry.Name())
			if err := p.publishDir(ctx, logger, srcPath, filepath.Join(destDir, entry.Name()), childNS, root, visited); err != nil {
				return err
			}
			continue
		}

		if p.shouldIgnore(logger, root, srcPath) {
			if p.opts.OnFile != nil {
				p.opts.OnFile(FileEvent{SourcePath: srcPath, Skipped: true})
			}
			continue
		}

		if err := p.publishFile(ctx, logger, srcPath, destDir, ns); err != nil {
			return err
		}
	}

	return nil
}

// 📄 publishFile copies one file, rewrites its namespace declaration, and
// fires the per-file callback.
func (p *Publisher) publishFile(ctx context.Context, logger *zerolog.Logger, srcPath, destDir, ns string) error {
	destPath, err := CopyFile(ctx, srcPath, destDir, nil)
	if err != nil {
		return err
	}

	rewritten, err := rewriteNamespace(destPath, ns)
	if err != nil {
		return err
	}

	logger.Debug().
		Str("file", destPath).
		Str("namespace", ns).
		Bool("rewritten", rewritten).
		Msg("published file")

	if p.opts.OnCopy != nil {
		if err := p.opts.OnCopy(srcPath, destPath); err != nil {
			return errors.Errorf("copy callback: %w", err)
		}
	}

	if p.opts.OnFile != nil {
		p.opts.OnFile(FileEvent{
			SourcePath: srcPath,
			DestPath:   destPath,
			Namespace:  ns,
			Rewritten:  rewritten,
		})
	}

	return nil
}

// ✏️ rewriteNamespace rewrites the declaration of an already-copied file in
// place. Files without a declaration stay byte-identical.
func rewriteNamespace(path, ns string) (bool, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return false, errors.Errorf("%w %s: %w", ErrReadingFile, path, err)
	}

	updated, changed := namespace.RewriteDeclaration(content, ns)
	if !changed {
		return false, nil
	}

	perm := os.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}
	if err := os.WriteFile(path, updated, perm); err != nil {
		return false, errors.Errorf("%w %s: %w", ErrWritingFile, path, err)
	}

	return true, nil
}

// 🔍 shouldIgnore checks if a file matches one of the ignore patterns
func (p *Publisher) shouldIgnore(logger *zerolog.Logger, root, path string) bool {
	if len(p.opts.Ignore) == 0 {
		return false
	}

	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)

	for _, pattern := range p.opts.Ignore {
		matched, err := doublestar.Match(pattern, rel)
		if err != nil {
			logger.Debug().Str("pattern", pattern).Str("path", rel).Err(err).Msg("error matching pattern")
			continue
		}
		if matched {
			logger.Debug().Str("file", rel).Str("pattern", pattern).Msg("file ignored by pattern")
			return true
		}
	}

	return false
}

// canonicalDir returns the absolute, symlink-resolved form of dir.
func canonicalDir(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(abs)
}
