package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/pdflab/internal/core/domain"
	"github.com/custodia-labs/pdflab/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.Backend = (*Client)(nil)

// Client implements driven.Backend against the document API and the PDF worker
type Client struct {
	apiURL     string
	workerURL  string
	httpClient *http.Client
}

// Config holds collaborator endpoints
type Config struct {
	// APIURL is the document API root (e.g., http://localhost:8000/backend)
	APIURL string

	// WorkerURL is the PDF worker root (e.g., http://localhost:8001/pdfworker)
	WorkerURL string

	// Timeout for HTTP requests, zero means none
	Timeout time.Duration
}

// DefaultConfig returns the roots the bundled reverse proxy exposes
func DefaultConfig() Config {
	return Config{
		APIURL:    "http://localhost/backend",
		WorkerURL: "http://localhost/pdfworker",
	}
}

// NewClient creates a new collaborator client
func NewClient(cfg Config) *Client {
	return &Client{
		apiURL:    strings.TrimSuffix(cfg.APIURL, "/"),
		workerURL: strings.TrimSuffix(cfg.WorkerURL, "/"),
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

type filesResponse struct {
	Files json.RawMessage `json:"files"`
}

// ListFiles lists indexed documents. A missing or non-list "files" field
// is an empty list, not an error.
func (c *Client) ListFiles(ctx context.Context) ([]string, error) {
	var resp filesResponse
	if err := c.doJSON(ctx, "list files", http.MethodGet, c.apiURL+"/files/", nil, &resp); err != nil {
		return nil, err
	}
	return stringList(resp.Files), nil
}

type uploadResponse struct {
	Filename string `json:"filename"`
}

// Upload sends the document as multipart form content under "file"
func (c *Client) Upload(ctx context.Context, file domain.StagedFile) (string, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	contentType := file.ContentType
	if contentType == "" {
		contentType = "application/pdf"
	}
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, escapeQuotes(file.Name)))
	header.Set("Content-Type", contentType)

	part, err := mw.CreatePart(header)
	if err != nil {
		return "", err
	}
	if _, err := part.Write(file.Content); err != nil {
		return "", err
	}
	if err := mw.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL+"/upload/", &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var resp uploadResponse
	if err := c.do(req, "upload", &resp); err != nil {
		return "", err
	}
	if resp.Filename == "" {
		return "", &domain.CollaboratorError{Op: "upload", Body: "upload response missing filename"}
	}
	return resp.Filename, nil
}

// UploadURL asks the document API to download the document itself
func (c *Client) UploadURL(ctx context.Context, in domain.UploadURLRequest) (string, error) {
	var resp uploadResponse
	if err := c.doJSON(ctx, "upload url", http.MethodPost, c.apiURL+"/upload_url/", in, &resp); err != nil {
		return "", err
	}
	if resp.Filename == "" {
		return "", &domain.CollaboratorError{Op: "upload url", Body: "upload response missing filename"}
	}
	return resp.Filename, nil
}

type indexResponse struct {
	Pages           domain.Count    `json:"pages"`
	ChunksIndexed   domain.Count    `json:"chunks_indexed"`
	CaptionsIndexed domain.Count    `json:"captions_indexed"`
	Language        json.RawMessage `json:"language"`
	LanguageName    json.RawMessage `json:"language_name"`
	SectionPatterns json.RawMessage `json:"section_patterns"`
}

// Index runs the worker's full pipeline on an uploaded document
func (c *Client) Index(ctx context.Context, filename string) (*domain.ProcessingOutcome, error) {
	endpoint := fmt.Sprintf("%s/process/full/%s", c.workerURL, url.PathEscape(filename))

	var resp indexResponse
	if err := c.doJSON(ctx, "index", http.MethodPost, endpoint, nil, &resp); err != nil {
		return nil, err
	}

	return &domain.ProcessingOutcome{
		Filename:        filename,
		Pages:           resp.Pages,
		ChunksIndexed:   resp.ChunksIndexed,
		CaptionsIndexed: resp.CaptionsIndexed,
		LanguageCode:    stringOr(resp.Language, domain.UnknownLanguageCode),
		LanguageName:    stringOr(resp.LanguageName, domain.UnknownLanguageName),
		SectionPatterns: stringList(resp.SectionPatterns),
	}, nil
}

// Search queries chunks and captions
func (c *Client) Search(ctx context.Context, in domain.SearchRequest) (*domain.QueryResponse, error) {
	var resp domain.QueryResponse
	if err := c.doJSON(ctx, "search", http.MethodPost, c.apiURL+"/query/", in, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

type summaryResponse struct {
	Summary *string `json:"summary"`
}

// Summarize condenses texts; a response without a summary is an empty summary
func (c *Client) Summarize(ctx context.Context, in domain.SummaryRequest) (string, error) {
	var resp summaryResponse
	if err := c.doJSON(ctx, "summarize", http.MethodPost, c.apiURL+"/summarize_texts/", in, &resp); err != nil {
		return "", err
	}
	if resp.Summary == nil {
		return "", nil
	}
	return *resp.Summary, nil
}

// HealthCheck probes the document API and the worker concurrently
func (c *Client) HealthCheck(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	for op, endpoint := range map[string]string{
		"api health":    c.apiURL + "/health",
		"worker health": c.workerURL + "/health",
	} {
		g.Go(func() error {
			req, err := http.NewRequestWithContext(gctx, http.MethodGet, endpoint, nil)
			if err != nil {
				return err
			}
			return c.do(req, op, nil)
		})
	}
	return g.Wait()
}

// doJSON sends in as a JSON body (when non-nil) and decodes the reply into out
func (c *Client) doJSON(ctx context.Context, op, method, endpoint string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("%s: marshal request: %w", op, err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.do(req, op, out)
}

// do executes req. Non-2xx replies become a CollaboratorError carrying the
// body verbatim.
func (c *Client) do(req *http.Request, op string, out interface{}) error {
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &domain.CollaboratorError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return &domain.CollaboratorError{Op: op, StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &domain.CollaboratorError{
			Op:         op,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("decode %s response: %w", op, err),
		}
	}
	return nil
}

// stringList decodes a JSON array keeping only its string entries.
// Anything that is not an array yields an empty list.
func stringList(raw json.RawMessage) []string {
	out := []string{}
	if len(raw) == 0 {
		return out
	}
	var items []interface{}
	if err := json.Unmarshal(raw, &items); err != nil {
		return out
	}
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// stringOr renders a reported scalar as text, returning fallback when it is
// null, absent, an object or an array
func stringOr(raw json.RawMessage, fallback string) string {
	if s, ok := domain.ScalarText(raw); ok {
		return s
	}
	return fallback
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
