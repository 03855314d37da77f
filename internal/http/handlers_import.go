package http

import (
	"io"
	"mime"
	"net/http"
	"strings"
)

const maxImportSize = 10 << 20 // 10 MiB

// handleImport accepts CSV either as a multipart "file" field or as
// the raw request body.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	body, err := importBody(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	defer body.Close()

	report, err := s.importer.ImportBatch(r.Context(), io.LimitReader(body, maxImportSize))
	if err != nil {
		writeError(w, err)
		return
	}

	s.invalidateCaches()
	respondJSON(w, http.StatusOK, report)
}

func importBody(r *http.Request) (io.ReadCloser, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if !strings.HasPrefix(mediaType, "multipart/") {
		return r.Body, nil
	}

	if err := r.ParseMultipartForm(maxImportSize); err != nil {
		return nil, err
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		return nil, err
	}
	return file, nil
}
