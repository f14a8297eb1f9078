package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/pdflab/internal/core/domain"
)

// startSummaryLocked launches summarization for a query without blocking it.
// The task outlives the caller's cancellation. The returned channel is
// closed when it settles; it is nil once the workspace is closed.
// Callers hold w.mu.
func (w *Workspace) startSummaryLocked(ctx context.Context, seq uint64, items []domain.ResultItem, query string) <-chan struct{} {
	if w.closed {
		return nil
	}
	done := make(chan struct{})
	w.lastSummary = done
	w.tasks.Add(1)

	detached := context.WithoutCancel(ctx)
	go func() {
		defer w.tasks.Done()
		defer close(done)
		_ = w.summarize(detached, seq, items, query)
	}()
	return done
}

// summarize condenses the texts of items into an answer for query. Its
// outcome only ever lands on the summary channel.
func (w *Workspace) summarize(ctx context.Context, seq uint64, items []domain.ResultItem, query string) error {
	texts := domain.Texts(items)

	w.mu.Lock()
	if seq != w.querySeq {
		w.mu.Unlock()
		return domain.ErrStale
	}
	if len(texts) == 0 {
		w.statuses.SetStatus(domain.Warn(domain.MsgNothingToSummary), domain.ChannelSummary)
		w.mu.Unlock()
		return domain.ErrNothingToSummarize
	}
	w.statuses.SetStatus(domain.Idle(domain.MsgSummarizing), domain.ChannelSummary)
	w.mu.Unlock()

	summary, err := w.backend.Summarize(ctx, domain.SummaryRequest{Texts: texts, Query: query})

	w.mu.Lock()
	defer w.mu.Unlock()

	if seq != w.querySeq {
		w.logger.Debug("dropping superseded summary", "seq", seq)
		return domain.ErrStale
	}
	if err != nil {
		w.statuses.SetStatus(domain.Failed(err, domain.MsgSummaryFailed), domain.ChannelSummary)
		w.logger.Error("summarization failed", "error", err)
		return fmt.Errorf("summarize: %w", err)
	}
	w.summary = summary
	w.statuses.SetStatus(domain.OK(domain.MsgSummaryReady), domain.ChannelSummary)
	w.logger.Info("summary ready", "texts", len(texts))
	return nil
}
