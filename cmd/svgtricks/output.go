package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/benoitkugler/svgtricks/svgdoc"
	"github.com/benoitkugler/svgtricks/svgicon"
	"github.com/benoitkugler/svgtricks/svgpdf"
	"github.com/benoitkugler/svgtricks/svgraster"
)

var formats = []string{"svg", "png", "pdf"}

// resolveFormat returns the explicit format, or the one of the
// output file extension, defaulting to svg.
func resolveFormat(format, output string) (string, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = strings.TrimPrefix(strings.ToLower(filepath.Ext(output)), ".")
		if format == "" {
			return "svg", nil
		}
	}
	for _, f := range formats {
		if f == format {
			return format, nil
		}
	}
	return "", fmt.Errorf("unsupported output format %q (expected one of %s)", format, strings.Join(formats, ", "))
}

func writeDocument(w io.Writer, doc *svgdoc.Document, format string) error {
	switch format {
	case "svg":
		_, err := doc.WriteTo(w)
		return err
	case "png":
		img, err := svgraster.RasterDocument(doc, svgraster.Options{
			Scale:      cfg.Scale,
			Background: cfg.Background,
			ErrorMode:  cfg.ErrorMode,
			Logger:     logger,
		})
		if err != nil {
			return err
		}
		return svgraster.WritePNG(w, img)
	case "pdf":
		return svgpdf.WriteDocument(w, doc, svgpdf.Options{ErrorMode: cfg.ErrorMode, Logger: logger})
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}

// emit writes doc to `output`, or to the command output when empty.
func emit(cmd *cobra.Command, doc *svgdoc.Document, output, format string) error {
	format, err := resolveFormat(format, output)
	if err != nil {
		return err
	}
	if output == "" {
		return writeDocument(cmd.OutOrStdout(), doc, format)
	}

	f, err := os.Create(output)
	if err != nil {
		return err
	}
	if err := writeDocument(f, doc, format); err != nil {
		f.Close()
		if rmErr := os.Remove(output); rmErr != nil {
			logger.Warn("removing partial output", zap.String("path", output), zap.Error(rmErr))
		}
		return fmt.Errorf("write %s: %w", output, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	logger.Info("wrote document", zap.String("path", output), zap.String("format", format))
	return nil
}

// fitDocument sets the viewBox and size of doc to its content,
// enlarged by margin. Text labels only count by their anchor,
// so the margin should leave room for them.
func fitDocument(doc *svgdoc.Document, margin float64) error {
	icon, err := svgicon.Compile(doc.Root(), cfg.ErrorMode, logger)
	if err != nil {
		return err
	}
	b := icon.ContentBounds()
	if b.Empty() {
		logger.Debug("nothing to fit")
		return nil
	}
	b = b.Expand(margin)
	w, h := b.MaxX-b.MinX, b.MaxY-b.MinY
	doc.Viewport(b.MinX, b.MinY, w, h)
	doc.Canvas(w, h)
	logger.Debug("fitted document",
		zap.Float64("x", b.MinX), zap.Float64("y", b.MinY),
		zap.Float64("width", w), zap.Float64("height", h))
	return nil
}
