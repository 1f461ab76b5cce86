// Package document loads and serializes API description documents as
// ordered YAML node trees.
//
// Documents are read from files, http(s) URLs, readers or byte slices. JSON
// is a subset of YAML, so both formats are parsed by go.yaml.in/yaml/v4 into
// a *yaml.Node tree; aliases and merge keys are expanded so the formatting
// engine only sees mappings, sequences and scalars.
//
//	doc, err := document.Load("asyncapi.yaml")
//	if err != nil {
//	    return err
//	}
//	out, err := document.Marshal(doc.Root, document.SourceFormatJSON)
//
// Parse failures are reported as *apierrors.ParseError with the line and
// column when the YAML parser provides them.
//
// The package also defines the [Logger] interface shared by the formatter
// packages, with [NopLogger] and an adapter for log/slog.
package document
