// Package remote provides a parser for legacy binary documents through an
// extraction service. The service converts the file and replies with the
// paragraph stream and media inventory; classification then runs locally,
// the same as for native paragraph streams.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/docforge-io/docstyler/internal/classify"
	"github.com/docforge-io/docstyler/internal/ir"
	"github.com/docforge-io/docstyler/internal/logging"
	"github.com/docforge-io/docstyler/internal/parser"
)

const (
	// DefaultTimeout bounds a single extraction call.
	DefaultTimeout = 180 * time.Second
	// ProviderName is the parser identifier.
	ProviderName = "remote"
	// EndpointEnv names the environment variable holding the service URL.
	EndpointEnv = "DOCSTYLER_REMOTE_ENDPOINT"
)

// Config holds the configuration for the remote extractor.
type Config struct {
	Endpoint string
	APIKey   string
	Timeout  time.Duration
}

// APIResponse is the extraction service reply.
type APIResponse struct {
	Paragraphs []classify.Paragraph `json:"paragraphs"`
	Images     []APIImage           `json:"images"`
}

// APIImage describes one media asset of the converted document.
type APIImage struct {
	Name   string `json:"name"`
	Format string `json:"format"`
	Size   int64  `json:"size"`
}

// Parser parses documents by uploading them to the extraction service.
type Parser struct {
	endpoint string
	apiKey   string
	client   *http.Client
	options  parser.Options
	log      zerolog.Logger

	thresholds classify.Thresholds

	// Refine, when set, runs between grouping and block assembly and may
	// rewrite group kinds in place.
	Refine func(groups []classify.Group)

	paragraphs []classify.Paragraph
	groups     []classify.Group
}

// New creates a new remote parser.
func New(cfg Config, opts parser.Options) (*Parser, error) {
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = os.Getenv(EndpointEnv)
	}
	if endpoint == "" {
		return nil, errors.New("remote extractor endpoint not configured (set " + EndpointEnv + " or provide via config)")
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	return &Parser{
		endpoint:   endpoint,
		apiKey:     cfg.APIKey,
		client:     &http.Client{Timeout: timeout},
		options:    opts,
		log:        logging.Component(opts.Log(), "remote"),
		thresholds: classify.DefaultThresholds(),
	}, nil
}

// Name returns the parser identifier.
func (p *Parser) Name() string {
	return ProviderName
}

// SetThresholds overrides the classification cutoffs.
func (p *Parser) SetThresholds(th classify.Thresholds) {
	p.thresholds = th
}

// Parse uploads the document at the given path and assembles the extracted
// paragraph stream into a document.
func (p *Parser) Parse(ctx context.Context, filePath string) (*ir.Document, error) {
	apiResp, err := p.extract(ctx, filePath)
	if err != nil {
		return nil, err
	}

	doc := ir.NewDocument()
	doc.Source = ir.Source{Path: filePath, Format: parser.FormatDoc.String()}

	paras := apiResp.Paragraphs
	normalizeIndices(paras)
	p.paragraphs = paras

	p.groups = classify.GroupParagraphs(paras, p.thresholds)
	if p.Refine != nil {
		p.Refine(p.groups)
	}
	p.log.Debug().Int("paragraphs", len(paras)).Int("groups", len(p.groups)).
		Msg("classified extracted stream")

	classify.Assemble(doc, paras, p.groups)

	for _, img := range apiResp.Images {
		doc.AddImage(ir.ImageRef{Name: img.Name, Format: img.Format, Size: img.Size})
	}

	return doc, nil
}

// Paragraphs returns the paragraph stream from the last Parse call.
func (p *Parser) Paragraphs() []classify.Paragraph {
	return p.paragraphs
}

// Groups returns the format groups computed by the last Parse call.
func (p *Parser) Groups() []classify.Group {
	return p.groups
}

func (p *Parser) extract(ctx context.Context, filePath string) (*APIResponse, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("document", filepath.Base(filePath))
	if err != nil {
		return nil, fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("failed to copy file content: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to close multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", p.endpoint, &buf)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if p.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+p.apiKey)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("extraction request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("extraction service error (status %d): %s", resp.StatusCode, string(body))
	}

	var apiResp APIResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("failed to decode extraction response: %w", err)
	}

	return &apiResp, nil
}

// normalizeIndices assigns positional indices when the service omits them
// or sends a non-increasing sequence.
func normalizeIndices(paras []classify.Paragraph) {
	for i := 1; i < len(paras); i++ {
		if paras[i].Index > paras[i-1].Index {
			continue
		}
		for j := range paras {
			paras[j].Index = j
		}
		return
	}
}
