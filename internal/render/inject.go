package render

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/agentstation/starlist/pkg/constants"
	"github.com/agentstation/starlist/pkg/errors"
)

// Inject replaces whatever lies between the start and end markers of doc
// with body. Both markers must be present, start before end.
func Inject(doc, body string) (string, error) {
	start := strings.Index(doc, constants.StartMarker)
	if start < 0 {
		return "", markerError(constants.StartMarker)
	}
	contentStart := start + len(constants.StartMarker)

	end := strings.Index(doc[contentStart:], constants.EndMarker)
	if end < 0 {
		return "", markerError(constants.EndMarker)
	}
	end += contentStart

	var b strings.Builder
	b.Grow(len(doc) + len(body))
	b.WriteString(doc[:contentStart])
	b.WriteString("\n\n")
	if body = strings.TrimSpace(body); body != "" {
		b.WriteString(body)
		b.WriteString("\n\n")
	}
	b.WriteString(doc[end:])
	return b.String(), nil
}

func markerError(marker string) error {
	return &errors.ConfigError{
		Component: "render",
		Message:   fmt.Sprintf("target document has no %s marker", marker),
		Err:       errors.ErrMarkerMissing,
	}
}

// CheckFile reports whether the document at path can take an injection.
func CheckFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.WrapIO("read", path, err)
	}
	_, err = Inject(string(data), "")
	return err
}

// InjectFile injects body into the document at path. When dryRun is set
// the result is written to out and the file is left alone. The file is
// only replaced after a successful injection.
func InjectFile(path, body string, dryRun bool, out io.Writer) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.WrapIO("read", path, err)
	}

	doc, err := Inject(string(data), body)
	if err != nil {
		return err
	}

	if dryRun {
		if _, err := io.WriteString(out, doc); err != nil {
			return errors.WrapIO("write", "stdout", err)
		}
		return nil
	}

	return writeFile(path, []byte(doc))
}

// writeFile replaces path atomically, keeping its permissions.
func writeFile(path string, data []byte) error {
	mode := os.FileMode(constants.FilePermissions)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+"-*")
	if err != nil {
		return errors.WrapIO("create", "temp file", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return errors.WrapIO("write", tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return errors.WrapIO("close", tmpPath, err)
	}
	if err := os.Chmod(tmpPath, mode); err != nil {
		_ = os.Remove(tmpPath)
		return errors.WrapIO("chmod", tmpPath, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return errors.WrapIO("move", path, err)
	}
	return nil
}
