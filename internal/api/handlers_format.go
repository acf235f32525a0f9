package api

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/dgallion1/mdsplit/internal/document"
	"github.com/dgallion1/mdsplit/internal/formatter"
)

func (s *Server) handleFormat(w http.ResponseWriter, r *http.Request) {
	filename, data, ok := s.readUpload(w, r)
	if !ok {
		return
	}

	doc, err := document.Read(bytes.NewReader(data), filename)
	if err != nil {
		jsonError(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Write([]byte(formatter.Format(doc.Text())))
}
