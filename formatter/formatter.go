package formatter

import (
	"errors"
	"fmt"
	"io"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/apiformat/caser"
	"github.com/erraggy/apiformat/document"
	"github.com/erraggy/apiformat/filter"
	"github.com/erraggy/apiformat/internal/nodeutil"
	"github.com/erraggy/apiformat/sorter"
)

// Stage names a pipeline step.
type Stage string

const (
	// StageFilter removes document parts selected by the filter set.
	StageFilter Stage = "filter"
	// StageSort orders keys by the sort set.
	StageSort Stage = "sort"
	// StageSortComponents orders component names alphabetically.
	StageSortComponents Stage = "sort-components"
	// StageCase rewrites identifiers by the casing set.
	StageCase Stage = "case"
	// StageRename replaces the document title.
	StageRename Stage = "rename"
)

// Result contains the outcome of a format operation.
type Result struct {
	// Document is the formatted tree.
	Document *yaml.Node
	// SourceFormat is the format of the input, used as the default output format.
	SourceFormat document.SourceFormat
	// SourcePath is the input path, "-" for a reader, or "" for a node.
	SourcePath string
	// UnusedComponents lists the components removed as unused.
	UnusedComponents filter.UnusedComponents
	// FilterPasses is the number of filter passes run, 0 without a filter set.
	FilterPasses int
	// Converged is false when unused-component removal stopped at its
	// pass limit.
	Converged bool
	// Renames lists the components renamed by the casing stage.
	Renames caser.Renames
	// Stages lists the stages that ran, in order.
	Stages []Stage
}

// HasStage reports whether s ran.
func (r *Result) HasStage(s Stage) bool {
	for _, st := range r.Stages {
		if st == s {
			return true
		}
	}
	return false
}

// Marshal serializes the document. SourceFormatUnknown uses the source format,
// falling back to YAML.
func (r *Result) Marshal(format document.SourceFormat) ([]byte, error) {
	if format == document.SourceFormatUnknown {
		format = r.SourceFormat
	}
	return document.Marshal(r.Document, format)
}

// Formatter runs the filter, sort, case and rename stages.
type Formatter struct {
	// SortSet holds the key priority lists. nil uses sorter.DefaultSortSet.
	SortSet sorter.SortSet
	// SortComponents lists component collections whose entry names are
	// sorted alphabetically.
	SortComponents []string
	// NoSort disables the sort stages.
	NoSort bool
	// FilterSet enables the filter stage when non-nil.
	FilterSet *filter.FilterSet
	// CasingSet enables the case stage when it configures a style.
	CasingSet caser.CasingSet
	// Rename replaces info.title when non-empty.
	Rename string
	// UserAgent is sent when loading documents from URLs.
	UserAgent string
	// Logger receives stage diagnostics. nil disables logging.
	Logger document.Logger
}

// New creates a Formatter with the default sort set.
func New() *Formatter {
	return &Formatter{}
}

// Format runs the pipeline on a copy of root.
func (f *Formatter) Format(root *yaml.Node) (*Result, error) {
	if root == nil {
		return nil, errors.New("formatter: nil document")
	}
	log := document.OrNop(f.Logger)
	result := &Result{
		Document:         root,
		SourceFormat:     document.SourceFormatUnknown,
		UnusedComponents: filter.UnusedComponents{},
		Converged:        true,
		Renames:          caser.Renames{},
	}
	out := nodeutil.Clone(root)

	if f.FilterSet != nil {
		fr, err := (&filter.Filterer{FilterSet: f.FilterSet, Logger: log.With("stage", StageFilter)}).Filter(out)
		if err != nil {
			return nil, fmt.Errorf("formatter: %w", err)
		}
		out = fr.Document
		result.UnusedComponents = fr.UnusedComponents
		result.FilterPasses = fr.Passes
		result.Converged = fr.Converged
		result.Stages = append(result.Stages, StageFilter)
	}

	if !f.NoSort {
		s := &sorter.Sorter{SortSet: f.SortSet, Logger: log.With("stage", StageSort)}
		out = s.Sort(out)
		result.Stages = append(result.Stages, StageSort)

		if len(f.SortComponents) > 0 {
			out = sorter.SortComponents(out, f.SortComponents)
			result.Stages = append(result.Stages, StageSortComponents)
		}
	}

	if !f.CasingSet.IsEmpty() {
		c := &caser.Caser{CasingSet: f.CasingSet, Logger: log.With("stage", StageCase)}
		out, result.Renames = c.Apply(out)
		result.Stages = append(result.Stages, StageCase)
	}

	if f.Rename != "" {
		out = RenameTitle(out, f.Rename)
		result.Stages = append(result.Stages, StageRename)
	}

	log.Debug("format complete", "stages", len(result.Stages))
	result.Document = out
	return result, nil
}

// FormatDocument formats a loaded document and keeps its source details.
func (f *Formatter) FormatDocument(doc *document.Document) (*Result, error) {
	if doc == nil {
		return nil, errors.New("formatter: nil document")
	}
	result, err := f.Format(doc.Root)
	if err != nil {
		return nil, err
	}
	result.SourceFormat = doc.Format
	result.SourcePath = doc.Path
	return result, nil
}

// FormatFile loads a file or URL and formats it.
func (f *Formatter) FormatFile(path string) (*Result, error) {
	doc, err := f.loader().Load(path)
	if err != nil {
		return nil, fmt.Errorf("formatter: failed to load document: %w", err)
	}
	return f.FormatDocument(doc)
}

// FormatReader reads a document from r and formats it.
func (f *Formatter) FormatReader(r io.Reader) (*Result, error) {
	doc, err := f.loader().ParseReader(r)
	if err != nil {
		return nil, fmt.Errorf("formatter: failed to parse document: %w", err)
	}
	return f.FormatDocument(doc)
}

func (f *Formatter) loader() *document.Loader {
	l := document.New()
	if f.UserAgent != "" {
		l.UserAgent = f.UserAgent
	}
	l.Logger = f.Logger
	return l
}

// RenameTitle returns a copy of root with an existing info.title replaced
// by title. A document without info.title is returned unchanged.
func RenameTitle(root *yaml.Node, title string) *yaml.Node {
	out := nodeutil.Clone(root)
	if title == "" {
		return out
	}
	if existing := nodeutil.GetPath(out, "info", "title"); nodeutil.IsScalar(existing) {
		existing.SetString(title)
	}
	return out
}
