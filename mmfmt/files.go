// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mmfmt

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// A NotFoundError reports an input path that does not name a readable
// file.
type NotFoundError struct {
	Path string
	Err  error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no such file: %s", e.Path)
}

func (e *NotFoundError) Unwrap() error {
	return e.Err
}

// Open reads every record in the CSV file at path, in file order.
//
// If path does not exist, cannot be opened, or is a directory, Open
// returns a *NotFoundError. Malformed input yields a *FormatError.
func Open(path string) ([]*Record, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
			return nil, &NotFoundError{path, err}
		}
		return nil, err
	}
	defer f.Close()

	if st, err := f.Stat(); err == nil && st.IsDir() {
		return nil, &NotFoundError{path, fmt.Errorf("%s is a directory", path)}
	}

	var recs []*Record
	r := NewReader(f, path)
	for r.Scan() {
		recs = append(recs, r.Record().Clone())
	}
	if err := r.Err(); err != nil {
		return nil, err
	}
	return recs, nil
}
