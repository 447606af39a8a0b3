package pipeline

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"

	apperrors "project-analyzer/internal/common/errors"
	"project-analyzer/internal/models"
)

// Encode writes projects as an indented JSON array. Non-ASCII text and HTML
// characters are written as-is, U+2028 and U+2029 included.
func Encode(w io.Writer, projects []models.AnalyzedProject) error {
	if projects == nil {
		projects = []models.AnalyzedProject{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(projects); err != nil {
		return err
	}
	_, err := w.Write(unescapeLineSeparators(buf.Bytes()))
	return err
}

// unescapeLineSeparators turns the \u2028 and \u2029 escapes encoding/json
// always emits back into the raw characters. Escape pairs are consumed
// together so an escaped backslash followed by "u2028" is left alone.
func unescapeLineSeparators(data []byte) []byte {
	if !bytes.Contains(data, []byte(`\u202`)) {
		return data
	}
	out := make([]byte, 0, len(data))
	for i := 0; i < len(data); i++ {
		if data[i] != '\\' || i+1 >= len(data) {
			out = append(out, data[i])
			continue
		}
		if rest := data[i+1:]; bytes.HasPrefix(rest, []byte("u2028")) || bytes.HasPrefix(rest, []byte("u2029")) {
			if rest[4] == '8' {
				out = append(out, "\u2028"...)
			} else {
				out = append(out, "\u2029"...)
			}
			i += 5
			continue
		}
		out = append(out, data[i], data[i+1])
		i++
	}
	return out
}

// WriteFile replaces path with the encoded document. The data goes to a
// temporary file in the same directory first, so readers never see a
// partial document.
func WriteFile(path string, projects []models.AnalyzedProject) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return apperrors.NewOutputWriteFailedError(path, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := Encode(tmp, projects); err != nil {
		tmp.Close()
		return apperrors.NewOutputWriteFailedError(path, err)
	}
	if err := tmp.Close(); err != nil {
		return apperrors.NewOutputWriteFailedError(path, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return apperrors.NewOutputWriteFailedError(path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return apperrors.NewOutputWriteFailedError(path, err)
	}
	return nil
}
