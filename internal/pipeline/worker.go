package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgallion1/docoutline/internal/parser"
	"github.com/dgallion1/docoutline/internal/session"
)

// Worker turns one uploaded document into an editing session.
type Worker struct {
	sessions          *session.Store
	log               *slog.Logger
	pdfFallbackToText bool
}

func NewWorker(sessions *session.Store, log *slog.Logger, pdfFallback bool) *Worker {
	return &Worker{
		sessions:          sessions,
		log:               log,
		pdfFallbackToText: pdfFallback,
	}
}

// Process runs the registration pipeline for a job: pick a parser, extract
// the header list, create the session.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "filename", job.Filename)

	if job.Cancelled() {
		log.Info("job cancelled before start, skipping")
		return
	}
	if ctx.Err() != nil {
		job.SetStatus(StatusFailed, "shutting down")
		return
	}

	job.SetStatus(StatusParsing, "parsing document")
	job.SetProgress(0.1)

	p, err := parser.ForFile(job.Filename)
	if err != nil {
		log.Error("unsupported format", "error", err)
		job.SetStatus(StatusFailed, err.Error())
		return
	}
	if pdfParser, ok := p.(*parser.PDFParser); ok {
		pdfParser.FallbackPdftotext = w.pdfFallbackToText
	}

	headers, err := p.Parse(bytes.NewReader(job.FileData()), job.Filename)
	if err != nil {
		log.Error("parse failed", "error", err)
		job.SetStatus(StatusFailed, fmt.Sprintf("parse: %s", err))
		return
	}
	job.SetProgress(0.8)

	if job.Cancelled() {
		log.Info("job cancelled during parse, discarding result")
		return
	}

	sessionID := ContentHashHex([]byte(fmt.Sprintf("%s-%d", job.ID, time.Now().UnixNano())))[:16]
	w.sessions.Put(session.New(sessionID, job.Filename, headers))

	job.SetResult(sessionID, len(headers))
	job.SetProgress(1.0)
	job.SetStatus(StatusCompleted, fmt.Sprintf("found %d headers", len(headers)))
	log.Info("document registered", "session_id", sessionID, "headers", len(headers))
}
