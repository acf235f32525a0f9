package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/dgallion1/mdsplit/internal/chunker"
	"github.com/dgallion1/mdsplit/internal/document"
	"github.com/dgallion1/mdsplit/internal/pipeline"
	"github.com/dgallion1/mdsplit/internal/sink"
)

type chunkResponse struct {
	Index           int           `json:"index"`
	Kind            document.Kind `json:"kind"`
	StartLine       int           `json:"start_line"`
	Breadcrumb      []string      `json:"breadcrumb"`
	Text            string        `json:"text"`
	EstimatedTokens int           `json:"estimated_tokens"`
}

type splitResponse struct {
	Document    string          `json:"document"`
	ContentHash string          `json:"content_hash"`
	ChunkSize   int             `json:"chunk_size"`
	Count       int             `json:"count"`
	Chunks      []chunkResponse `json:"chunks"`
}

func (s *Server) handleSplit(w http.ResponseWriter, r *http.Request) {
	filename, data, ok := s.readUpload(w, r)
	if !ok {
		return
	}

	opts := pipeline.ChunkOptions{ChunkSize: s.cfg.ChunkSize}
	if v := r.FormValue("chunk_size"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= s.cfg.ChunkOverlap {
			jsonError(w, fmt.Sprintf("chunk_size must be an integer greater than %d", s.cfg.ChunkOverlap), http.StatusBadRequest)
			return
		}
		opts.ChunkSize = n
	}
	if v := r.FormValue("normalize"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			jsonError(w, "normalize must be a boolean", http.StatusBadRequest)
			return
		}
		opts.Normalize = b
	}

	var (
		out sink.Sink
		enc sink.Encoder
	)
	if f := r.FormValue("format"); f != "" && f != "json" {
		var err error
		if out, err = sink.ForFormat(sink.Format(f)); err != nil {
			jsonError(w, err.Error(), http.StatusBadRequest)
			return
		}
		if enc, ok = out.(sink.Encoder); !ok {
			jsonError(w, fmt.Sprintf("format %s cannot be returned inline", f), http.StatusBadRequest)
			return
		}
	}

	doc, chunks, err := s.processor.ChunkReader(bytes.NewReader(data), filename, opts)
	if err != nil {
		var perr *pipeline.ProcessingError
		switch {
		case errors.Is(err, pipeline.ErrUnsupportedFormat):
			jsonError(w, err.Error(), http.StatusBadRequest)
		case errors.As(err, &perr):
			jsonError(w, err.Error(), http.StatusUnprocessableEntity)
		default:
			s.log.Error("split failed", "filename", filename, "error", err)
			jsonError(w, "split failed", http.StatusInternalServerError)
		}
		return
	}

	batch := sink.Batch{
		Document:    doc.Name,
		ContentHash: doc.ContentHash(),
		ChunkSize:   opts.ChunkSize,
		Chunks:      chunks,
	}
	s.log.Info("split upload", "document", doc.Name, "chunks", len(chunks), "format", r.FormValue("format"))

	if enc == nil {
		writeJSON(w, http.StatusOK, newSplitResponse(batch))
		return
	}

	var buf bytes.Buffer
	if err := enc.Encode(&buf, batch); err != nil {
		s.log.Error("encode failed", "document", doc.Name, "error", err)
		jsonError(w, "encode failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", enc.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.Name+out.Extension()))
	w.Write(buf.Bytes())
}

func newSplitResponse(b sink.Batch) splitResponse {
	resp := splitResponse{
		Document:    b.Document,
		ContentHash: b.ContentHash,
		ChunkSize:   b.ChunkSize,
		Count:       len(b.Chunks),
		Chunks:      make([]chunkResponse, 0, len(b.Chunks)),
	}
	for _, c := range b.Chunks {
		resp.Chunks = append(resp.Chunks, chunkResponse{
			Index:           c.Index,
			Kind:            c.Kind,
			StartLine:       c.StartLine,
			Breadcrumb:      c.Breadcrumb,
			Text:            c.Text,
			EstimatedTokens: chunker.EstimateTokens(c.Text),
		})
	}
	return resp
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}
