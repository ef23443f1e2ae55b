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

import "gitlab.com/tozd/go/errors"

// Failure classes surfaced by publish operations. All are terminal: a
// failure aborts the current call, nothing is retried, and files copied
// before the failure stay on disk.
var (
	// ErrSourceNotFound means the file or directory to copy does not exist.
	ErrSourceNotFound = errors.Base("source does not exist")

	// ErrCreatingDirectory means a destination directory could not be created.
	ErrCreatingDirectory = errors.Base("creating directory")

	// ErrCopyFailed means the underlying byte copy failed mid-operation.
	ErrCopyFailed = errors.Base("copying file")

	// ErrReadingFile means a published file could not be read back for rewriting.
	ErrReadingFile = errors.Base("reading file")

	// ErrWritingFile means a rewritten file could not be written.
	ErrWritingFile = errors.Base("writing file")
)
