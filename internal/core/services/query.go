package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/pdflab/internal/core/domain"
)

// Query searches the backend and keeps the hits that belong to the selected
// file. Prior results and summary are cleared before the search is sent.
// When something matches, summarization is started and not waited for.
func (w *Workspace) Query(ctx context.Context, text string) error {
	_, err := w.runQuery(ctx, text)
	return err
}

// QueryAndWait runs Query and then waits for the summary this query
// started, ignoring summaries of other queries. The summary keeps running
// if ctx ends first.
func (w *Workspace) QueryAndWait(ctx context.Context, text string) error {
	done, err := w.runQuery(ctx, text)
	if err != nil || done == nil {
		return err
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// runQuery returns a channel closed when the started summary settles, or
// nil when none was started
func (w *Workspace) runQuery(ctx context.Context, text string) (<-chan struct{}, error) {
	w.mu.Lock()
	if strings.TrimSpace(text) == "" {
		w.statuses.SetStatus(domain.Warn(domain.MsgTypeQuestion), domain.ChannelQuery)
		w.mu.Unlock()
		return nil, domain.ErrEmptyQuery
	}
	selected := w.files.Selected
	if selected == "" {
		w.statuses.SetStatus(domain.Warn(domain.MsgSelectFileFirst), domain.ChannelQuery)
		w.mu.Unlock()
		return nil, domain.ErrNoFileSelected
	}

	w.querySeq++
	seq := w.querySeq
	w.query = text
	w.statuses.SetStatus(domain.Idle(domain.MsgSearching), domain.ChannelQuery)
	w.statuses.SetStatus(domain.InitialStatus(domain.ChannelSummary), domain.ChannelSummary)
	w.summary = ""
	w.results = nil
	w.lastSummary = nil
	w.mu.Unlock()

	resp, err := w.backend.Search(ctx, domain.SearchRequest{Query: text, TopK: domain.DefaultTopK})

	w.mu.Lock()
	if seq != w.querySeq {
		w.mu.Unlock()
		w.logger.Debug("dropping superseded search response", "seq", seq)
		return nil, domain.ErrStale
	}
	if err != nil {
		w.statuses.SetStatus(domain.Failed(err, domain.MsgQueryFailed), domain.ChannelQuery)
		w.mu.Unlock()
		w.logger.Error("search failed", "error", err)
		return nil, fmt.Errorf("search: %w", err)
	}

	owned := domain.FilterOwned(resp.Merge(), selected)
	if len(owned) == 0 {
		w.statuses.SetStatus(domain.Warn(domain.MsgNoMatches), domain.ChannelQuery)
		w.mu.Unlock()
		w.logger.Info("search returned nothing for selection",
			"selected", selected,
			"chunks", len(resp.TextChunks),
			"captions", len(resp.Captions),
		)
		return nil, domain.ErrNoMatches
	}

	w.results = owned
	w.statuses.SetStatus(domain.OK(fmt.Sprintf("Showing %d results.", len(owned))), domain.ChannelQuery)
	done := w.startSummaryLocked(ctx, seq, owned, text)
	w.mu.Unlock()

	w.logger.Info("search complete", "selected", selected, "results", len(owned))
	return done, nil
}
