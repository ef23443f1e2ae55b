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

package publish

import (
	"context"
	"os"
	"path/filepath"

	cp "github.com/otiai10/copy"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🔔 CopyCallback is invoked synchronously after each successful file copy
// with the source path and the resolved destination path. An error returned
// here propagates to and aborts the enclosing operation.
type CopyCallback func(sourcePath, destPath string) error

// 📄 CopyFile copies sourceFile into targetDir byte for byte and returns the
// absolute path of the copy. An empty targetDir means the current working
// directory; the directory is created recursively when absent. The copy is
// not atomic: an interrupted write can leave a truncated file behind.
func CopyFile(ctx context.Context, sourceFile, targetDir string, onCopy CopyCallback) (string, error) {
	if _, err := os.Stat(sourceFile); err != nil {
		return "", errors.Errorf("%w: %s", ErrSourceNotFound, sourceFile)
	}

	if targetDir == "" {
		targetDir = "."
	}
	if err := os.MkdirAll(targetDir, 0755); err != nil {
		return "", errors.Errorf("%w %s: %w", ErrCreatingDirectory, targetDir, err)
	}

	targetFile, err := filepath.Abs(filepath.Join(targetDir, filepath.Base(sourceFile)))
	if err != nil {
		return "", errors.Errorf("resolving target path: %w", err)
	}

	if err := cp.Copy(sourceFile, targetFile); err != nil {
		return "", errors.Errorf("%w %s: %w", ErrCopyFailed, sourceFile, err)
	}

	zerolog.Ctx(ctx).Debug().
		Str("source", sourceFile).
		Str("dest", targetFile).
		Msg("copied file")

	if onCopy != nil {
		if err := onCopy(sourceFile, targetFile); err != nil {
			return "", errors.Errorf("copy callback: %w", err)
		}
	}

	return targetFile, nil
}
