package response

import (
	"fmt"
	"net/http"
	"strconv"
)

// PNG writes an encoded PNG image. A non-empty filename marks the response as a download.
func PNG(w http.ResponseWriter, data []byte, filename string) {
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Header().Set("Cache-Control", "no-store")
	if filename != "" {
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	}
	w.WriteHeader(http.StatusOK)

	// The status code has already been sent
	_, _ = w.Write(data)
}
