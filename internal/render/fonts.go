package render

import (
	"log"
	"os"
	"path/filepath"

	"github.com/jung-kurt/gofpdf"
)

// fontFileCandidates lists the TTF filenames tried per family, in order,
// under the engine's font directory.
var fontFileCandidates = map[string][]string{
	"Inter":          {"Inter-Regular.ttf", "Inter.ttf"},
	"Merriweather":   {"Merriweather-Regular.ttf", "Merriweather.ttf"},
	"Dancing Script": {"DancingScript-Regular.ttf", "DancingScript.ttf"},
	"Oswald":         {"Oswald-Regular.ttf", "Oswald.ttf"},
	"JetBrains Mono": {"JetBrainsMono-Regular.ttf", "JetBrainsMono.ttf"},
}

// standardFamily maps a project font family to the built-in PDF font
// used when no TTF can be embedded: serif families to Times, monospace
// to Courier, everything else to Helvetica.
func standardFamily(family string) string {
	switch family {
	case "Merriweather":
		return "Times"
	case "JetBrains Mono":
		return "Courier"
	default:
		return "Helvetica"
	}
}

func identity(s string) string { return s }

// embedFont tries to embed a subsetted TTF for the selected family and
// returns the family name to use with SetFont plus the text translator
// for that font. Any failure falls back to a built-in font; font
// problems never abort an export.
func (e *Engine) embedFont(pdf *gofpdf.Fpdf, family string) (string, func(string) string) {
	for _, file := range fontFileCandidates[family] {
		data, err := os.ReadFile(filepath.Join(e.FontDir, file))
		if err != nil {
			continue
		}
		pdf.AddUTF8FontFromBytes(family, "", data)
		if pdf.Err() {
			log.Printf("WARNING: failed to embed font %s: %v", file, pdf.Error())
			pdf.ClearError()
			continue
		}
		// Embedded UTF-8 fonts take text as-is.
		return family, identity
	}
	// Built-in fonts expect cp1252; translate on the way in.
	return standardFamily(family), pdf.UnicodeTranslatorFromDescriptor("")
}
