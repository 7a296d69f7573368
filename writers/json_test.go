//
// SPDX-License-Identifier: GPL-3.0-or-later
//
// Copyright (C) 2025 Aaron Mathis aaron.mathis@gmail.com
//
// This file is part of DataProc.
//
// DataProc is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// DataProc is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with DataProc. If not, see https://www.gnu.org/licenses/.

package writers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Mock writer for testing
type mockWriter struct {
	*strings.Builder
	failWrite bool
}

func (m *mockWriter) Write(p []byte) (int, error) {
	if m.failWrite {
		return 0, io.ErrUnexpectedEOF
	}
	return m.Builder.Write(p)
}

func newMockWriter() *mockWriter {
	return &mockWriter{Builder: &strings.Builder{}}
}

// TestJSONWriter_BasicFunctionality tests the default layout
func TestJSONWriter_BasicFunctionality(t *testing.T) {
	mock := newMockWriter()
	writer := NewJSONWriter()

	err := writer.WriteDataset(context.Background(), mock, map[string]interface{}{"x": json.Number("1")})
	require.NoError(t, err)

	assert.Equal(t, "{\n  \"x\": 1\n}", mock.String())
}

// TestJSONWriter_Sequence tests nested indentation and key order
func TestJSONWriter_Sequence(t *testing.T) {
	mock := newMockWriter()
	writer := NewJSONWriter()

	data := []interface{}{
		map[string]interface{}{"b": json.Number("2"), "a": json.Number("1")},
		map[string]interface{}{"list": []interface{}{"x", nil}, "empty": []interface{}{}},
	}
	require.NoError(t, writer.WriteDataset(context.Background(), mock, data))

	expected := `[
  {
    "a": 1,
    "b": 2
  },
  {
    "empty": [],
    "list": [
      "x",
      null
    ]
  }
]`
	assert.Equal(t, expected, mock.String())
}

// TestJSONWriter_Options tests compact output and trailing newline
func TestJSONWriter_Options(t *testing.T) {
	mock := newMockWriter()
	writer := NewJSONWriter(WithJSONIndent(0), WithTrailingNewline(true))

	require.NoError(t, writer.WriteDataset(context.Background(), mock, map[string]interface{}{"b": 2, "a": 1}))
	assert.Equal(t, "{\"a\":1,\"b\":2}\n", mock.String())
}

// TestJSONWriter_NoHTMLEscape tests that markup survives unescaped by default
func TestJSONWriter_NoHTMLEscape(t *testing.T) {
	mock := newMockWriter()
	writer := NewJSONWriter(WithJSONIndent(0))

	require.NoError(t, writer.WriteDataset(context.Background(), mock, "<a&b>"))
	assert.Equal(t, `"<a&b>"`, mock.String())
}

// TestJSONWriter_EscapeHTML tests that markup is escaped when requested
func TestJSONWriter_EscapeHTML(t *testing.T) {
	mock := newMockWriter()
	writer := NewJSONWriter(WithJSONIndent(0), WithEscapeHTML(true))

	require.NoError(t, writer.WriteDataset(context.Background(), mock, "<a&b>"))
	assert.Equal(t, `"\u003ca\u0026b\u003e"`, mock.String())
}

// TestJSONWriter_UnsortedKeys tests that disabling key sorting keeps every field
func TestJSONWriter_UnsortedKeys(t *testing.T) {
	data := map[string]interface{}{}
	for _, k := range []string{"k", "c", "x", "a", "q", "f", "m", "b"} {
		data[k] = json.Number("1")
	}

	sorted := newMockWriter()
	require.NoError(t, NewJSONWriter(WithJSONIndent(0)).WriteDataset(context.Background(), sorted, data))
	assert.Equal(t, `{"a":1,"b":1,"c":1,"f":1,"k":1,"m":1,"q":1,"x":1}`, sorted.String())

	unsorted := newMockWriter()
	require.NoError(t, NewJSONWriter(WithJSONIndent(0), WithSortKeys(false)).WriteDataset(context.Background(), unsorted, data))
	assert.JSONEq(t, sorted.String(), unsorted.String())
}

// TestJSONWriter_Stats tests record and null tracking
func TestJSONWriter_Stats(t *testing.T) {
	mock := newMockWriter()
	writer := NewJSONWriter()

	data := []interface{}{
		map[string]interface{}{"name": "Alice", "email": nil},
		map[string]interface{}{"name": nil, "email": nil},
		"not a record",
	}
	require.NoError(t, writer.WriteDataset(context.Background(), mock, data))

	stats := writer.Stats()
	assert.Equal(t, int64(1), stats.DocumentsWritten)
	assert.Equal(t, int64(2), stats.RecordsWritten)
	assert.Equal(t, int64(len(mock.String())), stats.BytesWritten)
	assert.Equal(t, int64(2), stats.NullValueCounts["email"])
	assert.Equal(t, int64(1), stats.NullValueCounts["name"])

	// Stats returns a copy.
	stats.NullValueCounts["email"] = 99
	assert.Equal(t, int64(2), writer.Stats().NullValueCounts["email"])
}

// TestJSONWriter_ErrorHandling tests error conditions
func TestJSONWriter_ErrorHandling(t *testing.T) {
	t.Run("write_error", func(t *testing.T) {
		mock := newMockWriter()
		mock.failWrite = true
		writer := NewJSONWriter()

		err := writer.WriteDataset(context.Background(), mock, map[string]interface{}{"x": 1})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "json writer write")
		assert.True(t, errors.Is(err, io.ErrUnexpectedEOF))
	})

	t.Run("invalid_json", func(t *testing.T) {
		mock := newMockWriter()
		writer := NewJSONWriter()

		err := writer.WriteDataset(context.Background(), mock, map[string]interface{}{"invalid": make(chan int)})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "marshal")
		assert.Empty(t, mock.String())
	})

	t.Run("cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := NewJSONWriter().WriteDataset(ctx, newMockWriter(), "x")
		assert.ErrorIs(t, err, context.Canceled)
	})
}

// TestJSONWriter_ConcurrentSafety tests that shared writers serialise access
func TestJSONWriter_ConcurrentSafety(t *testing.T) {
	writer := NewJSONWriter()
	const numGoroutines = 5

	var wg sync.WaitGroup
	for i := 0; i < numGoroutines; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			mock := newMockWriter()
			assert.NoError(t, writer.WriteDataset(context.Background(), mock, []interface{}{map[string]interface{}{"id": id}}))
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int64(numGoroutines), writer.Stats().DocumentsWritten)
	assert.Equal(t, int64(numGoroutines), writer.Stats().RecordsWritten)
}
