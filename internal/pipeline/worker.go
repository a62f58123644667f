package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dgallion1/notegen/internal/chunker"
	"github.com/dgallion1/notegen/internal/generate"
	"github.com/dgallion1/notegen/internal/notes"
	"github.com/dgallion1/notegen/internal/parser"
	"github.com/dgallion1/notegen/internal/store"
)

// Worker processes a single notes generation job.
type Worker struct {
	gen      *generate.Client
	store    *store.Client
	log      *slog.Logger
	chunkCfg chunker.Config
	maxWords int

	maxConcurrentGenerate int
	pdfFallback           bool
}

func NewWorker(gen *generate.Client, st *store.Client, log *slog.Logger, chunkCfg chunker.Config, maxWords, maxGenerate int, pdfFallback bool) *Worker {
	return &Worker{
		gen:                   gen,
		store:                 st,
		log:                   log,
		chunkCfg:              chunkCfg,
		maxWords:              maxWords,
		maxConcurrentGenerate: maxGenerate,
		pdfFallback:           pdfFallback,
	}
}

// Process runs the full generation pipeline for a job.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "user_id", job.UserID)

	// Phase 1: Parse
	job.SetStatus(StatusParsing, "parsing")
	text, title, err := w.parseInput(job)
	if err != nil {
		log.Error("parse failed", "error", err)
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "parsing")
		return
	}
	if job.Title == "" {
		job.Title = title
	}
	if strings.TrimSpace(text) == "" {
		log.Warn("no extractable content")
		job.AddError("no extractable content")
		job.SetStatus(StatusFailed, "parsing")
		return
	}

	// Content hash is computed from the parsed text so the same
	// transcript dedups regardless of container format.
	job.ContentHash = ContentHashHex([]byte(text))
	job.DocID = job.ContentHash[:16]
	log = log.With("doc_id", job.DocID)

	// Phase 1.5: Dedup check
	if !job.Force() {
		existing, err := w.store.FindByHash(ctx, job.UserID, job.ContentHash)
		if err != nil {
			log.Warn("dedup check failed, proceeding", "error", err)
		} else if existing != nil {
			log.Info("duplicate document, skipping", "existing_doc_id", existing.ID)
			job.DocID = existing.ID
			job.SetStatus(StatusDupSkipped, "dedup")
			return
		}
	}

	// Phase 2: Chunk
	job.SetStatus(StatusChunking, "chunking")
	chunks, err := chunker.SplitAll(text, w.chunkCfg)
	if err != nil {
		log.Error("chunking failed", "error", err)
		job.AddError(fmt.Sprintf("chunk: %s", err))
		job.SetStatus(StatusFailed, "chunking")
		return
	}
	job.SetTotalChunks(len(chunks))
	log.Info("chunked transcript", "chunks", len(chunks), "chars", len(text))

	// Phase 3: Generate notes per chunk with bounded concurrency.
	job.SetStatus(StatusGenerating, "generating")
	maxWords := job.MaxWords
	if maxWords <= 0 {
		maxWords = w.maxWords
	}

	parts := make([]string, len(chunks))
	type chunkResult struct {
		idx  int
		text string
		err  error
	}
	results := make(chan chunkResult, len(chunks))
	sem := make(chan struct{}, w.maxConcurrentGenerate)

	for i, chunk := range chunks {
		sem <- struct{}{}
		go func(i int, chunk string) {
			defer func() { <-sem }()
			var prompt string
			if len(chunks) > 1 {
				prompt = generate.BuildSequentialPrompt(chunk, job.ContentType, i+1, len(chunks), maxWords)
			} else {
				prompt = generate.BuildNotesPrompt(chunk, job.ContentType, maxWords)
			}
			var out string
			var lastErr error
			for attempt := range MaxRetries {
				out, lastErr = w.gen.GenerateNotes(ctx, prompt)
				if lastErr == nil || !IsRetryable(lastErr) {
					break
				}
				log.Warn("retryable generation error", "chunk", i, "attempt", attempt, "error", lastErr)
				select {
				case <-time.After(Backoff(attempt)):
				case <-ctx.Done():
					results <- chunkResult{idx: i, err: ctx.Err()}
					return
				}
			}
			results <- chunkResult{idx: i, text: out, err: lastErr}
		}(i, chunk)
	}

	hadErrors := false
	failed := 0
	for range chunks {
		r := <-results
		job.IncrChunksProcessed()
		if r.err != nil {
			log.Error("generation failed", "chunk", r.idx, "error", r.err)
			job.AddError(fmt.Sprintf("chunk %d: %s", r.idx, r.err))
			parts[r.idx] = errorSection(r.idx + 1)
			hadErrors = true
			failed++
			continue
		}
		parts[r.idx] = r.text
	}
	log.Info("generation complete", "chunks", len(chunks), "failed", failed)

	if failed == len(chunks) {
		job.SetStatus(StatusFailed, "generating")
		return
	}

	// Phase 4: Enforce structure and the per-section word limit.
	job.SetStatus(StatusEnforcing, "enforcing")
	doc := notes.ParseDocument(strings.Join(parts, "\n\n"))
	if len(doc) == 0 {
		log.Error("generated output had no sections")
		job.AddError("no sections in generated notes")
		job.SetStatus(StatusFailed, "enforcing")
		return
	}
	doc = notes.FixStructure(doc)
	doc, err = notes.EnforceWordLimit(doc, maxWords)
	if err != nil {
		log.Error("word limit enforcement failed", "error", err)
		job.AddError(fmt.Sprintf("enforce: %s", err))
		job.SetStatus(StatusFailed, "enforcing")
		return
	}

	markdown := generate.DocumentHeader(job.ContentType) + notes.Render(doc)
	words := 0
	for _, sec := range doc {
		words += sec.Words()
	}
	job.SetResult(markdown, len(doc), words)

	// Phase 5: Store the finished document.
	job.SetStatus(StatusStoring, "storing")
	storeErr := w.store.PutDocument(ctx, job.DocID, store.DocumentRequest{
		UserID:      job.UserID,
		Title:       job.Title,
		ContentType: job.ContentType,
		Markdown:    markdown,
		Sections:    len(doc),
		Words:       words,
		ContentHash: job.ContentHash,
		CreatedAt:   job.CreatedAt.Format(time.RFC3339),
	})
	if storeErr != nil {
		log.Error("store failed", "error", storeErr)
		job.AddError(fmt.Sprintf("store: %s", storeErr))
		job.SetStatus(StatusFailed, "storing")
		return
	}

	if hadErrors {
		job.SetStatus(StatusPartial, "done")
	} else {
		job.SetStatus(StatusCompleted, "done")
	}
	log.Info("job complete", "sections", len(doc), "words", words, "status", job.Status)
}

// parseInput resolves the job input into transcript text and a title.
// Raw text submissions bypass the file parsers.
func (w *Worker) parseInput(job *Job) (string, string, error) {
	if raw := job.RawText(); raw != "" {
		title := job.Title
		if title == "" {
			title = "Transcript"
		}
		return raw, title, nil
	}

	p, err := parser.ForFile(job.Filename)
	if err != nil {
		return "", "", err
	}
	if pp, ok := p.(*parser.PDFParser); ok {
		pp.FallbackPdftotext = w.pdfFallback
	}
	tr, err := p.Parse(bytes.NewReader(job.FileData()), job.Filename)
	if err != nil {
		return "", "", fmt.Errorf("parse: %w", err)
	}
	return tr.Text, tr.Title, nil
}

// errorSection produces a placeholder section for a chunk whose
// generation failed, so the document keeps its part numbering.
func errorSection(part int) string {
	return fmt.Sprintf("## Part %d - Processing Error\n\nThis part of the source could not be processed. "+
		"The remaining sections cover the rest of the material. "+
		"Re-submit the document to retry this part.", part)
}
