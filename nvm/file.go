//go:build !rp2040

package nvm

import (
	"bufio"
	"os"
	"strconv"
	"strings"
)

// File is a host-side Store that mirrors a Memory store to a small text
// file, one "index value" pair per line. It stands in for the device
// EEPROM during simulation; writes are flushed immediately since a
// simulator can be killed at any point.
type File struct {
	path string
	mem  *Memory
}

func OpenFile(path string, size int) (*File, error) {
	f := &File{path: path, mem: NewMemory(size)}
	fh, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return f, nil // first run: empty store
		}
		return nil, err
	}
	defer fh.Close()

	sc := bufio.NewScanner(fh)
	for sc.Scan() {
		idx, val, ok := strings.Cut(strings.TrimSpace(sc.Text()), " ")
		if !ok {
			continue
		}
		i, err1 := strconv.Atoi(idx)
		v, err2 := strconv.ParseFloat(val, 64)
		if err1 != nil || err2 != nil {
			continue
		}
		_ = f.mem.Write(i, v)
	}
	return f, sc.Err()
}

func (f *File) Read(index int) (float64, error) { return f.mem.Read(index) }

func (f *File) Write(index int, value float64) error {
	if err := f.mem.Write(index, value); err != nil {
		return err
	}
	return f.flush()
}

func (f *File) flush() error {
	fh, err := os.Create(f.path)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(fh)
	for i, ok := range f.mem.valid {
		if !ok {
			continue
		}
		w.WriteString(strconv.Itoa(i))
		w.WriteByte(' ')
		w.WriteString(strconv.FormatFloat(f.mem.slots[i], 'g', -1, 64))
		w.WriteByte('\n')
	}
	if err := w.Flush(); err != nil {
		fh.Close()
		return err
	}
	return fh.Close()
}
