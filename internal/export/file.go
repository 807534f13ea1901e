package export

import (
	"fmt"
	"io"
	"os"

	"github.com/Faultbox/rtin-terrain/internal/config"
	"github.com/Faultbox/rtin-terrain/internal/terrain"
)

// Write writes m to w in the named format.
func Write(w io.Writer, format string, m *terrain.RenderMesh) error {
	switch format {
	case config.FormatOBJ:
		return WriteOBJ(w, m)
	case config.FormatBinary:
		return WriteBinary(w, m)
	}
	return fmt.Errorf("unknown export format %q", format)
}

// WriteFile writes m to path in the named format.
func WriteFile(path, format string, m *terrain.RenderMesh) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(f, format, m); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}
