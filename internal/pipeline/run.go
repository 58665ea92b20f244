// Package pipeline orchestrates one generation run: extraction,
// segmentation, reference chunking, answer generation, normalization and
// rendering, in strict stage order.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"answerforge/internal/extract"
	"answerforge/internal/gen"
	"answerforge/internal/history"
	"answerforge/internal/markup"
	"answerforge/internal/qbank"
	"answerforge/internal/refchunk"
	"answerforge/internal/render"
	"answerforge/internal/segment"
)

// CapacityExceededText is the placeholder answer used once the session call
// cap is reached.
const CapacityExceededText = "The session limit on generation calls was reached before this question could be answered. Start a new session or raise MAX_SESSION_CALLS to generate it."

// Config bounds a runner's behavior for the life of the process.
type Config struct {
	BatchSize           int           // questions per generation call, clamped to 1..5
	MinCallDelay        time.Duration // enforced between successive backend calls
	MaxSessionCalls     int           // soft session-wide cap on backend calls
	ChunkOpts           refchunk.Options
	CodeWrapWidth       int
	ProgrammingSubjects []string
	OutputDir           string // where output documents are written; empty disables writing
}

// Request describes one run. Either Document or Questions must be set: a
// non-empty Questions list replaces segmentation entirely (the user-edited
// list, replace-whole-list semantics).
type Request struct {
	Document []byte
	Format   qbank.Format
	Filename string

	Questions []string

	References   []extract.NamedBytes
	Subject      string
	Mode         string
	CustomPrompt string
}

// Result is the outcome of a run. An empty Questions slice means no
// questions were found even after the fallback pass; NormalizedText is
// returned so the caller can offer it for manual inspection.
type Result struct {
	Questions      []qbank.Question
	Records        []qbank.AnswerRecord
	NormalizedText string
	Document       []byte
	OutputPath     string
	Meta           qbank.RunMeta
}

// NoQuestions reports the empty-segmentation outcome, a normal result
// variant rather than an error.
func (r *Result) NoQuestions() bool { return len(r.Questions) == 0 }

// Runner executes generation runs. Runs are serialized: the pipeline is
// single-user-session oriented and the session call cap is shared state.
type Runner struct {
	gen  gen.Generator
	hist *history.Log
	log  *slog.Logger
	cfg  Config

	mu        sync.Mutex
	callsMade int
	lastCall  time.Time
}

func NewRunner(g gen.Generator, hist *history.Log, log *slog.Logger, cfg Config) *Runner {
	if cfg.BatchSize < 1 {
		cfg.BatchSize = 1
	}
	if cfg.BatchSize > 5 {
		cfg.BatchSize = 5
	}
	if cfg.ChunkOpts.MaxChunkSize <= 0 {
		cfg.ChunkOpts = refchunk.DefaultOptions()
	}
	if len(cfg.ProgrammingSubjects) == 0 {
		cfg.ProgrammingSubjects = markup.DefaultProgrammingSubjects
	}
	return &Runner{gen: g, hist: hist, log: log, cfg: cfg}
}

// Run executes the full pipeline for one request. job may be nil; when set,
// its status and progress are updated as stages complete.
func (r *Runner) Run(ctx context.Context, req Request, job *Job) (*Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	log := r.log.With("subject", req.Subject, "mode", req.Mode)
	res := &Result{}

	// Stage 1: extraction + segmentation, unless the caller supplied an
	// edited question list.
	if len(req.Questions) > 0 {
		for i, text := range req.Questions {
			text = segment.Clean(text)
			if text == "" {
				return nil, fmt.Errorf("question %d is empty", i+1)
			}
			res.Questions = append(res.Questions, qbank.Question{Ordinal: len(res.Questions) + 1, Text: text})
		}
	} else {
		setStatus(job, StatusExtracting)
		text, err := extract.Document(req.Document, req.Format, req.Filename)
		if err != nil {
			return nil, fmt.Errorf("extract: %w", err)
		}
		res.NormalizedText = text

		setStatus(job, StatusSegmenting)
		res.Questions = segment.Questions(text)
		if res.NoQuestions() {
			log.Warn("no questions found", "text_len", len(text))
			setStatus(job, StatusNoQuestions)
			return res, nil
		}
	}
	log.Info("questions ready", "count", len(res.Questions))

	// Stage 2: reference material.
	reference := ""
	if len(req.References) > 0 {
		texts, errs := extract.ReferenceTexts(req.References)
		for _, err := range errs {
			log.Warn("skipping reference file", "error", err)
		}
		reference = refchunk.Join(texts, r.cfg.ChunkOpts)
	}

	// Stage 3: generation.
	setStatus(job, StatusGenerating)
	popts := gen.PromptOptions{
		Subject:      req.Subject,
		Mode:         req.Mode,
		CustomPrompt: req.CustomPrompt,
		Reference:    reference,
	}
	records, err := r.generateAll(ctx, res.Questions, popts, job, log)
	if err != nil {
		return nil, err
	}
	res.Records = records

	// Stage 4: normalize + render.
	setStatus(job, StatusRendering)
	res.Meta = qbank.RunMeta{
		Subject:            req.Subject,
		Mode:               req.Mode,
		QuestionCount:      len(res.Questions),
		CustomInstructions: strings.TrimSpace(req.CustomPrompt) != "",
		GeneratedAt:        time.Now(),
	}
	doc, err := r.renderAll(res)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	res.Document = doc

	// Stage 5: persist output + history.
	if r.cfg.OutputDir != "" {
		path, err := r.writeOutput(res)
		if err != nil {
			return nil, err
		}
		res.OutputPath = path
		if r.hist != nil {
			entry := history.Entry{
				ID:            NewRunID(),
				Subject:       res.Meta.Subject,
				Mode:          res.Meta.Mode,
				QuestionCount: res.Meta.QuestionCount,
				GeneratedAt:   res.Meta.GeneratedAt,
				OutputPath:    path,
			}
			if err := r.hist.Append(entry); err != nil {
				log.Warn("history append failed", "error", err)
			}
		}
	}

	return res, nil
}

// generateAll walks the question list in fixed-size batches, preserving
// ordinal order in the returned records. A failed batch degrades to
// placeholder answers; completed sibling records are never discarded. Fatal
// errors abort the run.
func (r *Runner) generateAll(ctx context.Context, questions []qbank.Question, popts gen.PromptOptions, job *Job, log *slog.Logger) ([]qbank.AnswerRecord, error) {
	records := make([]qbank.AnswerRecord, 0, len(questions))
	placeholders := 0

	for start := 0; start < len(questions); start += r.cfg.BatchSize {
		end := min(start+r.cfg.BatchSize, len(questions))
		batch := questions[start:end]

		if r.cfg.MaxSessionCalls > 0 && r.callsMade >= r.cfg.MaxSessionCalls {
			// Short-circuit: the cap is checked before the call is attempted.
			for _, q := range batch {
				records = append(records, placeholderRecord(q, CapacityExceededText))
				placeholders++
			}
			continue
		}

		var prompt string
		if len(batch) == 1 {
			prompt = gen.BuildPrompt(batch[0].Text, popts)
		} else {
			prompt = gen.BuildBatchPrompt(batch, popts)
		}

		text, err := r.callWithRetry(ctx, prompt, log)
		switch {
		case err == nil:
			if len(batch) == 1 {
				rec := qbank.AnswerRecord{Ordinal: batch[0].Ordinal, Question: batch[0].Text, Answer: strings.TrimSpace(text)}
				if rec.Answer == "" {
					rec = placeholderRecord(batch[0], "The model returned an empty answer for this question.")
					placeholders++
				}
				records = append(records, rec)
			} else {
				for _, rec := range gen.ParseBatch(text, batch) {
					if rec.Placeholder {
						placeholders++
					}
					records = append(records, rec)
				}
			}

		case IsFatal(err):
			return nil, fmt.Errorf("generation aborted: %w", err)

		case ctx.Err() != nil:
			return nil, ctx.Err()

		default:
			// Retries exhausted: substitute placeholders and continue, one
			// bad batch must not sink the document.
			log.Warn("generation failed, substituting placeholder", "error", err, "first_ordinal", batch[0].Ordinal)
			for _, q := range batch {
				records = append(records, placeholderRecord(q, "Unable to generate an answer for this question: "+err.Error()))
				placeholders++
			}
		}

		setProgress(job, len(records), placeholders)
	}

	return records, nil
}

// callWithRetry performs one backend call with bounded exponential backoff
// for transient failures and a minimum delay between successive calls.
func (r *Runner) callWithRetry(ctx context.Context, prompt string, log *slog.Logger) (string, error) {
	var lastErr error
	for attempt := 0; attempt < MaxRetries; attempt++ {
		if err := r.waitForSlot(ctx); err != nil {
			return "", err
		}
		r.callsMade++
		text, err := r.gen.Generate(ctx, prompt)
		if err == nil {
			return text, nil
		}
		lastErr = err
		if !IsRetryable(err) {
			return "", err
		}
		log.Warn("retryable generation error", "attempt", attempt, "error", err)
		select {
		case <-time.After(Backoff(attempt)):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return "", lastErr
}

// waitForSlot enforces the minimum inter-call delay.
func (r *Runner) waitForSlot(ctx context.Context) error {
	if r.cfg.MinCallDelay > 0 && !r.lastCall.IsZero() {
		if wait := r.cfg.MinCallDelay - time.Since(r.lastCall); wait > 0 {
			select {
			case <-time.After(wait):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
	r.lastCall = time.Now()
	return nil
}

func (r *Runner) renderAll(res *Result) ([]byte, error) {
	mopts := markup.Options{
		Subject:             res.Meta.Subject,
		ProgrammingSubjects: r.cfg.ProgrammingSubjects,
		CodeWrapWidth:       r.cfg.CodeWrapWidth,
	}

	sections := make([]render.Section, 0, len(res.Records))
	for i, rec := range res.Records {
		sections = append(sections, render.Section{
			Question:    res.Questions[i],
			Blocks:      markup.Normalize(rec.Answer, mopts),
			Placeholder: rec.Placeholder,
		})
	}
	return render.Answers(render.Input{Meta: res.Meta, Sections: sections})
}

func (r *Runner) writeOutput(res *Result) (string, error) {
	if err := os.MkdirAll(r.cfg.OutputDir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	name := fmt.Sprintf("answers_%s_%s.docx",
		subjectSlug(res.Meta.Subject),
		res.Meta.GeneratedAt.Format("20060102_150405"))
	path := filepath.Join(r.cfg.OutputDir, name)
	if err := os.WriteFile(path, res.Document, 0o644); err != nil {
		return "", fmt.Errorf("write output: %w", err)
	}
	return path, nil
}

func placeholderRecord(q qbank.Question, text string) qbank.AnswerRecord {
	return qbank.AnswerRecord{
		Ordinal:     q.Ordinal,
		Question:    q.Text,
		Answer:      text,
		Placeholder: true,
	}
}

func subjectSlug(subject string) string {
	s := strings.ToLower(strings.TrimSpace(subject))
	s = strings.ReplaceAll(s, " ", "_")
	if s == "" {
		s = "general"
	}
	return s
}

func setStatus(job *Job, s RunStatus) {
	if job != nil {
		job.SetStatus(s)
	}
}

func setProgress(job *Job, done, placeholders int) {
	if job != nil {
		job.SetProgress(done, placeholders)
	}
}
