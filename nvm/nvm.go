// Package nvm abstracts the non-volatile value store behind the config
// system's persistence gate. Values are keyed by registry index, one
// float64 slot per entry; the config core decides whether to call it.
package nvm

import "errors"

var ErrRange = errors.New("nvm: index out of range")

// Store reads and writes one value slot per registry index.
type Store interface {
	Read(index int) (float64, error)
	Write(index int, value float64) error
}

// Memory is a fixed-slot in-memory store. The zero value is not usable;
// create with NewMemory sized to the registry.
type Memory struct {
	slots []float64
	valid []bool
}

func NewMemory(size int) *Memory {
	return &Memory{slots: make([]float64, size), valid: make([]bool, size)}
}

func (m *Memory) Read(index int) (float64, error) {
	if index < 0 || index >= len(m.slots) {
		return 0, ErrRange
	}
	if !m.valid[index] {
		return 0, ErrEmpty
	}
	return m.slots[index], nil
}

func (m *Memory) Write(index int, value float64) error {
	if index < 0 || index >= len(m.slots) {
		return ErrRange
	}
	m.slots[index] = value
	m.valid[index] = true
	return nil
}

// ErrEmpty is returned by Read for a slot that has never been written.
var ErrEmpty = errors.New("nvm: slot not written")
