package scene

import (
	"bytes"
	"fmt"
	"image/png"
)

// ExportFilename is the name offered to the browser for a saved scene.
const ExportFilename = "solar_system.png"

// Export encodes the scene surface as PNG.
func Export(s *Scene) ([]byte, error) {
	if s == nil || s.Surface == nil {
		return nil, fmt.Errorf("no surface to export")
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, s.Surface); err != nil {
		return nil, fmt.Errorf("failed to encode png: %w", err)
	}
	return buf.Bytes(), nil
}
