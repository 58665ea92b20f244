package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"answerforge/internal/extract"
	"answerforge/internal/pipeline"
	"answerforge/internal/qbank"
	"answerforge/internal/segment"
	"github.com/go-chi/chi/v5"
)

// handleExtract runs extraction and segmentation synchronously so the caller
// can review and edit the question list before generating answers.
func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024) // extra 1MB for form overhead

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	filename, data, err := s.readUpload(r, "file")
	if err != nil {
		jsonError(w, err.Error(), statusForUpload(err))
		return
	}

	format, err := extract.FormatForFile(filename)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	text, err := extract.Document(data, format, filename)
	if err != nil {
		jsonError(w, "extract: "+err.Error(), statusForExtract(err))
		return
	}

	questions := segment.Questions(text)
	texts := make([]string, 0, len(questions))
	for _, q := range questions {
		texts = append(texts, q.Text)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"filename":  filename,
		"format":    format,
		"text":      text,
		"questions": texts,
	})
}

// handleGenerate starts an asynchronous generation run and returns a run ID
// to poll.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes*6+6*1024*1024)

	if err := r.ParseMultipartForm(64 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	subject := strings.TrimSpace(r.FormValue("subject"))
	if subject == "" {
		jsonError(w, "subject is required", http.StatusBadRequest)
		return
	}
	mode := strings.TrimSpace(r.FormValue("mode"))
	if mode == "" {
		mode = qbank.ModeUnderstand
	}
	if mode != qbank.ModeUnderstand && mode != qbank.ModeExam {
		jsonError(w, fmt.Sprintf("unknown mode %q", mode), http.StatusBadRequest)
		return
	}

	req := pipeline.Request{
		Subject:      subject,
		Mode:         mode,
		CustomPrompt: r.FormValue("custom_prompt"),
	}

	// Either an edited question list or a document to segment.
	if raw := r.FormValue("questions"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &req.Questions); err != nil {
			jsonError(w, "questions must be a JSON array of strings", http.StatusBadRequest)
			return
		}
		if len(req.Questions) == 0 {
			jsonError(w, "questions list is empty", http.StatusBadRequest)
			return
		}
	} else {
		filename, data, err := s.readUpload(r, "file")
		if err != nil {
			jsonError(w, err.Error(), statusForUpload(err))
			return
		}
		format, err := extract.FormatForFile(filename)
		if err != nil {
			jsonError(w, err.Error(), http.StatusBadRequest)
			return
		}
		req.Document = data
		req.Format = format
		req.Filename = filename
	}

	// Optional reference material.
	for _, fh := range r.MultipartForm.File["references"] {
		name := sanitizeFilename(fh.Filename)
		if !extract.IsSupportedFile(name) {
			jsonError(w, fmt.Sprintf("unsupported reference file type: %s", filepath.Ext(name)), http.StatusBadRequest)
			return
		}
		data, err := readMultipartFile(fh, s.cfg.MaxUploadBytes)
		if err != nil {
			jsonError(w, fmt.Sprintf("reference %s: %s", name, err), statusForUpload(err))
			return
		}
		req.References = append(req.References, extract.NamedBytes{Name: name, Data: data})
	}

	now := time.Now()
	job := &pipeline.Job{
		ID:        pipeline.NewRunID(),
		Status:    pipeline.StatusQueued,
		Subject:   subject,
		Mode:      mode,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.jobs.Put(job)

	go func() {
		res, err := s.runner.Run(context.Background(), req, job)
		if err != nil {
			s.log.Error("run failed", "run_id", job.ID, "error", err)
			job.Fail(err.Error())
			return
		}
		job.Complete(res)
		if res.NoQuestions() {
			job.SetStatus(pipeline.StatusNoQuestions)
		}
	}()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]any{
		"run_id":   job.ID,
		"status":   job.Status,
		"poll_url": fmt.Sprintf("/api/runs/%s/status", job.ID),
	})
}

func (s *Server) handleRunStatus(w http.ResponseWriter, r *http.Request) {
	runID := chi.URLParam(r, "runID")
	job := s.jobs.Get(runID)
	if job == nil {
		jsonError(w, "run not found", http.StatusNotFound)
		return
	}
	snap := job.Snapshot()
	resp := map[string]any{
		"run_id":            snap.ID,
		"status":            snap.Status,
		"subject":           snap.Subject,
		"mode":              snap.Mode,
		"question_count":    snap.QuestionCount,
		"answers_done":      snap.AnswersDone,
		"placeholder_count": snap.PlaceholderCount,
	}
	if snap.Error != "" {
		resp["error"] = snap.Error
	}
	if snap.Status == pipeline.StatusCompleted {
		resp["document_url"] = fmt.Sprintf("/api/runs/%s/document", snap.ID)
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func (s *Server) handleRunDocument(w http.ResponseWriter, r *http.Request) {
	runID := chi.URLParam(r, "runID")
	job := s.jobs.Get(runID)
	if job == nil {
		jsonError(w, "run not found", http.StatusNotFound)
		return
	}
	res := job.Result()
	if res == nil || len(res.Document) == 0 {
		jsonError(w, "document not ready", http.StatusConflict)
		return
	}
	name := filepath.Base(res.OutputPath)
	if name == "" || name == "." {
		name = "answers.docx"
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.wordprocessingml.document")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.Write(res.Document)
}

var errUploadTooLarge = errors.New("file exceeds max upload size")

func (s *Server) readUpload(r *http.Request, field string) (string, []byte, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		return "", nil, fmt.Errorf("%s is required: %w", field, err)
	}
	defer file.Close()

	filename := sanitizeFilename(header.Filename)
	if !extract.IsSupportedFile(filename) {
		return "", nil, fmt.Errorf("unsupported file type: %s", filepath.Ext(filename))
	}

	data, err := io.ReadAll(io.LimitReader(file, s.cfg.MaxUploadBytes+1))
	if err != nil {
		return "", nil, fmt.Errorf("read %s: %w", field, err)
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		return "", nil, errUploadTooLarge
	}
	return filename, data, nil
}

func readMultipartFile(fh *multipart.FileHeader, maxBytes int64) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, maxBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > maxBytes {
		return nil, errUploadTooLarge
	}
	return data, nil
}

func statusForUpload(err error) int {
	if errors.Is(err, errUploadTooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusBadRequest
}

func statusForExtract(err error) int {
	switch {
	case errors.Is(err, extract.ErrNoText), errors.Is(err, extract.ErrNoTextInImage):
		return http.StatusUnprocessableEntity
	case errors.Is(err, extract.ErrOCRUnavailable):
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed"
	}
	return name
}
