package log

import (
	"errors"
	"fmt"
	"io"
)

// MultiWriter fans log records out to every appender. A failing appender
// does not stop the others.
type MultiWriter struct {
	writers []io.Writer
}

// Write returns len(p) and, when appenders failed, an error naming each
// failed appender by its position.
func (m *MultiWriter) Write(p []byte) (int, error) {
	var errs []error
	for i, w := range m.writers {
		if _, err := w.Write(p); err != nil {
			errs = append(errs, fmt.Errorf("appender %d (%T): %w", i, w, err))
		}
	}
	return len(p), errors.Join(errs...)
}

// Add appends writer and returns m for chaining.
func (m *MultiWriter) Add(writer io.Writer) *MultiWriter {
	m.writers = append(m.writers, writer)
	return m
}

// Len reports the number of appenders.
func (m *MultiWriter) Len() int {
	return len(m.writers)
}

func NewMultiWriter() *MultiWriter {
	return &MultiWriter{}
}
