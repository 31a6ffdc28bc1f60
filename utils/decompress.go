package utils

import (
	"compress/bzip2"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/pgzip"
	"github.com/pkg/errors"
	xz "github.com/smira/go-xz"
)

// List of extensions + corresponding uncompression support
var compressionMethods = []struct {
	extension      string
	transformation func(io.Reader) (io.Reader, error)
}{
	{
		extension:      ".gz",
		transformation: func(r io.Reader) (io.Reader, error) { return pgzip.NewReader(r) },
	},
	{
		extension:      ".xz",
		transformation: func(r io.Reader) (io.Reader, error) { return xz.NewReader(r) },
	},
	{
		extension:      ".bz2",
		transformation: func(r io.Reader) (io.Reader, error) { return bzip2.NewReader(r), nil },
	},
}

// DecompressedName strips known compression extension from path
func DecompressedName(path string) string {
	for _, method := range compressionMethods {
		if strings.HasSuffix(path, method.extension) {
			return strings.TrimSuffix(path, method.extension)
		}
	}
	return path
}

// DecompressFile uncompresses source to destination, compression is
// chosen by source extension (unknown extensions are copied as is)
//
// Destination is replaced atomically, source is removed unless keepSource is set.
func DecompressFile(source string, destination string, keepSource bool) error {
	in, err := os.Open(source)
	if err != nil {
		return err
	}
	defer func() {
		_ = in.Close()
	}()

	var r io.Reader = in
	for _, method := range compressionMethods {
		if strings.HasSuffix(source, method.extension) {
			r, err = method.transformation(in)
			if err != nil {
				return errors.Wrapf(err, "unable to decompress %s", source)
			}
			break
		}
	}

	if closer, ok := r.(io.Closer); ok && r != io.Reader(in) {
		defer func() {
			_ = closer.Close()
		}()
	}

	temppath := filepath.Join(filepath.Dir(destination), "."+filepath.Base(destination)+".tmp")

	out, err := os.Create(temppath)
	if err != nil {
		return err
	}

	_, err = io.Copy(out, r)
	if err2 := out.Close(); err == nil {
		err = err2
	}
	if err != nil {
		_ = os.Remove(temppath)
		return errors.Wrapf(err, "unable to decompress %s", source)
	}

	if err = os.Rename(temppath, destination); err != nil {
		_ = os.Remove(temppath)
		return err
	}

	if !keepSource && source != destination {
		return os.Remove(source)
	}

	return nil
}
