package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/aura-blueprint/aura/internal/blueprint/domain"
	"github.com/aura-blueprint/aura/internal/presentation"
)

// Format is an export document format.
type Format string

const (
	FormatPDF      Format = "pdf"
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
)

var extensions = map[Format]string{
	FormatPDF:      "pdf",
	FormatMarkdown: "md",
	FormatJSON:     "json",
	FormatYAML:     "yaml",
}

// Formats lists the supported formats.
func Formats() []Format {
	return []Format{FormatPDF, FormatMarkdown, FormatJSON, FormatYAML}
}

// ParseFormat accepts a format name or file extension.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")) {
	case "", "pdf":
		return FormatPDF, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unsupported export format %q", s)
}

// FileName derives the download name: the lowercased title with every
// character outside [a-z0-9] replaced by '-', then "-blueprint.<ext>".
func FileName(bp *domain.Blueprint, format Format) string {
	title := strings.ToLower(bp.Title)
	if strings.TrimSpace(title) == "" {
		title = "untitled"
	}
	var b strings.Builder
	for _, r := range title {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteByte('-')
		}
	}
	ext, ok := extensions[format]
	if !ok {
		ext = extensions[FormatPDF]
	}
	return b.String() + "-blueprint." + ext
}

// Write serializes bp into w. The document is rendered fully in memory
// first so a failure never leaves a partial file behind; any failure,
// including a renderer panic, is reported as ExportFailure. bp is not
// modified.
func Write(w io.Writer, bp *domain.Blueprint, format Format) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = domain.NewError(domain.KindExportFailure, fmt.Errorf("render %s: panic: %v", format, r))
		}
	}()

	if bp == nil {
		return domain.NewError(domain.KindExportFailure, fmt.Errorf("no blueprint to export"))
	}

	var buf bytes.Buffer
	switch format {
	case FormatPDF:
		err = writePDF(&buf, bp)
	case FormatMarkdown:
		_, err = buf.WriteString(presentation.RenderAll(bp))
	case FormatJSON:
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		err = enc.Encode(bp)
	case FormatYAML:
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err = enc.Encode(bp); err == nil {
			err = enc.Close()
		}
	default:
		err = fmt.Errorf("unsupported export format %q", format)
	}
	if err != nil {
		return domain.NewError(domain.KindExportFailure, fmt.Errorf("render %s: %w", format, err))
	}

	if _, err := w.Write(buf.Bytes()); err != nil {
		return domain.NewError(domain.KindExportFailure, fmt.Errorf("write %s: %w", format, err))
	}
	return nil
}
