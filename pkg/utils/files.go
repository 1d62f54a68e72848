package utils

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/sevenzip"
	"github.com/klauspost/compress/gzip"
	"github.com/ulikunitz/xz"
)

// ErrNoROM is returned when an archive holds no ROM.
var ErrNoROM = errors.New("utils: archive contains no rom")

// LoadFile loads the given file and performs decompression if necessary.
func LoadFile(filename string) ([]byte, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return Decompress(filename, data)
}

// Decompress decodes data according to the extension of filename. Data
// with an unknown extension is returned as is. Archives (.zip, .7z)
// yield the first ROM they contain.
func Decompress(filename string, data []byte) ([]byte, error) {
	var decoder io.Reader
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".gz":
		r, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("utils: %s: %w", filename, err)
		}
		defer r.Close()
		decoder = r
	case ".xz":
		r, err := xz.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("utils: %s: %w", filename, err)
		}
		decoder = r
	case ".zip":
		zipReader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
		if err != nil {
			return nil, fmt.Errorf("utils: %s: %w", filename, err)
		}
		for _, f := range zipReader.File {
			if isROM(f.Name) {
				return readAll(f.Open)
			}
		}
		return nil, ErrNoROM
	case ".7z":
		r, err := sevenzip.NewReader(bytes.NewReader(data), int64(len(data)))
		if err != nil {
			return nil, fmt.Errorf("utils: %s: %w", filename, err)
		}
		for _, f := range r.File {
			if isROM(f.Name) {
				return readAll(f.Open)
			}
		}
		return nil, ErrNoROM
	default:
		return data, nil
	}

	return io.ReadAll(decoder)
}

func isROM(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".gb", ".gbc", ".bin":
		return true
	}
	return false
}

func readAll(open func() (io.ReadCloser, error)) ([]byte, error) {
	rc, err := open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}
