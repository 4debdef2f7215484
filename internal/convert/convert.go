// Package convert orchestrates the conversion pipeline: input-shape
// detection, parsing, optional classification refinement, rendering.
// One Pipeline holds a fixed configuration; each Convert call runs
// single-threaded with fresh render state.
package convert

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/docforge-io/docstyler/internal/classify"
	"github.com/docforge-io/docstyler/internal/ir"
	"github.com/docforge-io/docstyler/internal/llm"
	"github.com/docforge-io/docstyler/internal/logging"
	"github.com/docforge-io/docstyler/internal/parser"
	"github.com/docforge-io/docstyler/internal/parser/docx"
	"github.com/docforge-io/docstyler/internal/parser/latex"
	"github.com/docforge-io/docstyler/internal/parser/remote"
	"github.com/docforge-io/docstyler/internal/render"
	"github.com/docforge-io/docstyler/internal/style"
)

// Options configure a pipeline.
type Options struct {
	// Format forces the input shape; FormatUnknown detects from the
	// path extension, then from content.
	Format parser.Format

	// Catalog supplies the styles; nil resolves every kind to the
	// built-in defaults.
	Catalog *style.Catalog

	// Overrides reassigns block kinds before style resolution.
	Overrides *ir.OverrideMap

	// RestyleSelection limits restyling to the listed group signatures
	// or block indices. Empty restyles every block.
	RestyleSelection []string

	// Provider, when set, refines ambiguous group classifications.
	// Refinement failures are logged and the heuristic kinds kept.
	Provider llm.Provider

	// Thresholds override the built-in kind-guessing cutoffs.
	Thresholds *classify.Thresholds

	ExtractImages bool
	ImageDir      string

	// Extractor configures the remote extraction service used for
	// legacy shapes the local readers cannot open.
	Extractor remote.Config

	Progress parser.ProgressFunc
	Logger   *zerolog.Logger
}

// Result carries the conversion artifacts beyond what the writer
// received.
type Result struct {
	Format   parser.Format
	Document *ir.Document
	Groups   []classify.Group    // stream path only
	Refined  *llm.ClassifyResult // nil when refinement did not run
}

// Pipeline converts documents with a fixed configuration.
type Pipeline struct {
	opts Options
	log  zerolog.Logger
}

// New creates a pipeline.
func New(opts Options) *Pipeline {
	log := zerolog.Nop()
	if opts.Logger != nil {
		log = logging.Component(*opts.Logger, "convert")
	}
	return &Pipeline{opts: opts, log: log}
}

// Convert parses inputPath and renders it through w. Progress
// checkpoints are advisory and monotonically non-decreasing: parsing
// runs 10 to 40, classification 45 to 60, rendering 60 to 95.
func (p *Pipeline) Convert(ctx context.Context, inputPath string, w render.DocumentWriter) (*Result, error) {
	if _, err := os.Stat(inputPath); err != nil {
		return nil, fmt.Errorf("%w: %v", parser.ErrSourceUnavailable, err)
	}

	format, err := p.resolveFormat(inputPath)
	if err != nil {
		return nil, err
	}
	p.report(5, "detected "+format.String()+" input")

	res := &Result{Format: format}
	p.report(10, "parsing document")
	doc, err := p.parse(ctx, inputPath, format, res)
	if err != nil {
		return nil, err
	}
	res.Document = doc
	p.report(40, fmt.Sprintf("parsed %d blocks", len(doc.Blocks)))

	if len(res.Groups) > 0 {
		p.report(45, fmt.Sprintf("classified %d format groups", len(res.Groups)))
		if res.Refined != nil {
			p.report(60, fmt.Sprintf("refined %d groups", len(res.Refined.Assignments)))
		} else {
			p.report(60, "classification done")
		}
	}

	p.report(60, "rendering blocks")
	ropts := render.Options{
		Only:   p.opts.RestyleSelection,
		Logger: p.opts.Logger,
	}
	if p.opts.Progress != nil && len(doc.Blocks) > 0 {
		total := len(doc.Blocks)
		ropts.Progress = func(done, _ int) {
			p.report(60+done*35/total, "rendering blocks")
		}
	}
	if err := render.New(p.opts.Catalog).Render(doc, p.opts.Overrides, w, ropts); err != nil {
		return nil, err
	}

	p.report(100, "conversion complete")
	return res, nil
}

// Analyze parses the input and returns the block and group report
// without rendering. No progress checkpoints are emitted.
func (p *Pipeline) Analyze(ctx context.Context, inputPath string) (*Result, error) {
	if _, err := os.Stat(inputPath); err != nil {
		return nil, fmt.Errorf("%w: %v", parser.ErrSourceUnavailable, err)
	}

	format, err := p.resolveFormat(inputPath)
	if err != nil {
		return nil, err
	}

	res := &Result{Format: format}
	doc, err := p.parse(ctx, inputPath, format, res)
	if err != nil {
		return nil, err
	}
	res.Document = doc
	return res, nil
}

// resolveFormat picks the input shape: explicit option, then extension,
// then content sniffing.
func (p *Pipeline) resolveFormat(inputPath string) (parser.Format, error) {
	if p.opts.Format != parser.FormatUnknown {
		return p.opts.Format, nil
	}
	if f := parser.DetectFormat(inputPath); f != parser.FormatUnknown {
		return f, nil
	}

	file, err := os.Open(inputPath)
	if err != nil {
		return parser.FormatUnknown, fmt.Errorf("%w: %v", parser.ErrSourceUnavailable, err)
	}
	defer file.Close()

	f, err := parser.DetectFormatFromReader(file)
	if err != nil {
		return parser.FormatUnknown, fmt.Errorf("failed to detect input shape: %w", err)
	}
	if f == parser.FormatUnknown {
		return parser.FormatUnknown, fmt.Errorf("%w: cannot determine input shape of %s", parser.ErrUnsupportedFormat, inputPath)
	}
	return f, nil
}

func (p *Pipeline) parse(ctx context.Context, inputPath string, format parser.Format, res *Result) (*ir.Document, error) {
	popts := parser.Options{
		ExtractImages: p.opts.ExtractImages,
		ImageDir:      p.opts.ImageDir,
		Logger:        p.opts.Logger,
	}

	switch format {
	case parser.FormatLaTeX:
		lp, err := latex.New(inputPath, popts)
		if err != nil {
			return nil, err
		}
		defer lp.Close()
		return lp.Parse()

	case parser.FormatDocx:
		dp, err := docx.New(inputPath, popts)
		if err != nil {
			return nil, err
		}
		defer dp.Close()
		if p.opts.Thresholds != nil {
			dp.SetThresholds(*p.opts.Thresholds)
		}
		dp.Refine = p.refineHook(ctx, res)
		doc, err := dp.Parse()
		if err != nil {
			return nil, err
		}
		res.Groups = dp.Groups()
		return doc, nil

	case parser.FormatDoc:
		rp, err := remote.New(p.opts.Extractor, popts)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", parser.ErrUnsupportedFormat, err)
		}
		if p.opts.Thresholds != nil {
			rp.SetThresholds(*p.opts.Thresholds)
		}
		rp.Refine = p.refineHook(ctx, res)
		doc, err := rp.Parse(ctx, inputPath)
		if err != nil {
			return nil, err
		}
		res.Groups = rp.Groups()
		return doc, nil
	}

	return nil, fmt.Errorf("%w: cannot determine input shape of %s", parser.ErrUnsupportedFormat, inputPath)
}

// refineHook returns the classification hook wired to the configured
// provider, or nil when refinement is off.
func (p *Pipeline) refineHook(ctx context.Context, res *Result) func([]classify.Group) {
	if p.opts.Provider == nil {
		return nil
	}
	return func(groups []classify.Group) {
		refined, err := classify.RefineGroups(ctx, p.opts.Provider, groups)
		if err != nil {
			p.log.Warn().Err(err).Msg("classification refinement failed, keeping heuristic kinds")
			return
		}
		res.Refined = refined
	}
}

func (p *Pipeline) report(percent int, message string) {
	if p.opts.Progress != nil {
		p.opts.Progress(percent, message)
	}
}
