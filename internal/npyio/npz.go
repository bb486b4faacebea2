package npyio

import (
	"bufio"
	"io"
	"os"
	"sort"

	"github.com/klauspost/compress/zip"

	"github.com/timpalpant/nash/tensor"
)

// MakeNPZ writes arrays to a new .npz file at output. Each array is
// stored as <name>.npy.
func MakeNPZ(arrays map[string]*tensor.Tensor[float64], output string) error {
	f, err := os.Create(output)
	if err != nil {
		return err
	}

	b := bufio.NewWriter(f)
	if err := WriteNPZ(b, arrays); err != nil {
		f.Close()
		return err
	}
	if err := b.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// WriteNPZ writes arrays to w as a zip archive of .npy files, in order of name.
func WriteNPZ(w io.Writer, arrays map[string]*tensor.Tensor[float64]) error {
	names := make([]string, 0, len(arrays))
	for name := range arrays {
		names = append(names, name)
	}
	sort.Strings(names)

	z := zip.NewWriter(w)
	for _, name := range names {
		f, err := z.Create(name + ".npy")
		if err != nil {
			return err
		}

		if err := Write(f, arrays[name]); err != nil {
			return err
		}
	}

	return z.Close()
}
