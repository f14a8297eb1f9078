package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/pdflab/internal/core/domain"
)

// StageFile records the document to upload next. Staging nil clears it.
func (w *Workspace) StageFile(file *domain.StagedFile) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if file == nil {
		w.staged = nil
		w.statuses.SetStatus(domain.Idle(domain.MsgNoFileStaged), domain.ChannelUpload)
		return
	}
	staged := *file
	w.staged = &staged
	w.statuses.SetStatus(domain.OK(domain.MsgReadyToUpload), domain.ChannelUpload)
}

// UploadAndIndex submits the staged document, then triggers indexing with
// the name the backend assigned. Indexing never starts unless the submission
// succeeded, and the file list is only refreshed after indexing succeeds.
func (w *Workspace) UploadAndIndex(ctx context.Context) error {
	w.mu.Lock()
	if w.staged == nil {
		w.statuses.SetStatus(domain.Warn(domain.MsgSelectPDFFirst), domain.ChannelUpload)
		w.mu.Unlock()
		return domain.ErrNoFileStaged
	}
	file := *w.staged
	w.uploadSeq++
	seq := w.uploadSeq
	w.statuses.SetStatus(domain.Idle(domain.MsgUploading), domain.ChannelUpload)
	w.mu.Unlock()

	w.logger.Info("submitting document", "name", file.Name, "bytes", len(file.Content))
	filename, err := w.backend.Upload(ctx, file)
	return w.indexSubmitted(ctx, seq, filename, err)
}

// UploadURLAndIndex asks the backend to fetch a document by URL, then
// indexes it exactly as UploadAndIndex does.
func (w *Workspace) UploadURLAndIndex(ctx context.Context, req domain.UploadURLRequest) error {
	req.URL = strings.TrimSpace(req.URL)

	w.mu.Lock()
	if req.URL == "" {
		w.statuses.SetStatus(domain.Warn(domain.MsgEnterURLFirst), domain.ChannelUpload)
		w.mu.Unlock()
		return domain.ErrNoFileStaged
	}
	w.uploadSeq++
	seq := w.uploadSeq
	w.statuses.SetStatus(domain.Idle(domain.MsgUploadingURL), domain.ChannelUpload)
	w.mu.Unlock()

	w.logger.Info("submitting document by url", "url", req.URL)
	filename, err := w.backend.UploadURL(ctx, req)
	return w.indexSubmitted(ctx, seq, filename, err)
}

func (w *Workspace) indexSubmitted(ctx context.Context, seq uint64, filename string, submitErr error) error {
	if submitErr != nil {
		return w.failUpload(seq, fmt.Errorf("submit document: %w", submitErr), submitErr)
	}

	w.mu.Lock()
	if seq != w.uploadSeq {
		w.mu.Unlock()
		return domain.ErrStale
	}
	w.lastUploaded = filename
	w.files = w.files.Select(filename)
	w.statuses.SetStatus(domain.OK(domain.MsgUploadComplete), domain.ChannelUpload)
	w.mu.Unlock()

	w.logger.Info("document submitted, indexing", "filename", filename)
	outcome, err := w.backend.Index(ctx, filename)
	if err != nil {
		return w.failUpload(seq, fmt.Errorf("index %s: %w", filename, err), err)
	}

	w.mu.Lock()
	if seq != w.uploadSeq {
		w.mu.Unlock()
		return domain.ErrStale
	}
	w.processing = outcome
	w.filesGen++
	w.statuses.SetStatus(domain.OK(domain.MsgIndexed), domain.ChannelUpload)
	w.mu.Unlock()

	w.logger.Info("document indexed",
		"filename", filename,
		"pages", outcome.Pages.String(),
		"chunks", outcome.ChunksIndexed.String(),
		"captions", outcome.CaptionsIndexed.String(),
		"language", outcome.LanguageCode,
	)

	// The registry absorbs its own failure by emptying itself.
	_ = w.ReloadFiles(ctx)
	return nil
}

// failUpload reports err on the upload channel unless a newer upload owns it
func (w *Workspace) failUpload(seq uint64, err error, cause error) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if seq != w.uploadSeq {
		return domain.ErrStale
	}
	w.statuses.SetStatus(domain.Failed(cause, domain.MsgUploadFailed), domain.ChannelUpload)
	w.logger.Error("upload failed", "error", err)
	return err
}
