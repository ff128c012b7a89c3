package exports

import (
	"bytes"
	"fmt"
	"os"

	"github.com/go-pdf/fpdf"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// RenderPDF converts a markdown report to PDF bytes. Only the node kinds
// BuildReport emits are rendered richly; anything else falls through as
// plain text.
func RenderPDF(markdown string) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(12, 12, 12)
	pdf.SetAutoPageBreak(true, 12)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "", 10)

	md := goldmark.New(goldmark.WithExtensions(extension.Table))
	source := []byte(markdown)
	doc := md.Parser().Parse(text.NewReader(source))

	r := &reportRenderer{pdf: pdf, source: source, size: 10}
	if err := ast.Walk(doc, r.walk); err != nil {
		return nil, fmt.Errorf("failed to render report: %w", err)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to produce PDF output: %w", err)
	}
	return buf.Bytes(), nil
}

// WritePDF renders the report and writes it to path.
func WritePDF(markdown, path string) error {
	data, err := RenderPDF(markdown)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

type reportRenderer struct {
	pdf    *fpdf.Fpdf
	source []byte
	size   float64
	bold   bool
	italic bool
	inList bool
}

func (r *reportRenderer) setFont() {
	style := ""
	if r.bold {
		style += "B"
	}
	if r.italic {
		style += "I"
	}
	r.pdf.SetFont("Helvetica", style, r.size)
}

func (r *reportRenderer) walk(n ast.Node, entering bool) (ast.WalkStatus, error) {
	switch node := n.(type) {
	case *ast.Heading:
		r.heading(node, entering)
	case *ast.Paragraph:
		if !entering {
			r.pdf.Ln(7)
		}
	case *ast.Text:
		if entering {
			r.pdf.Write(5, string(node.Text(r.source)))
		}
	case *ast.Emphasis:
		if node.Level == 2 {
			r.bold = entering
		} else {
			r.italic = entering
		}
		r.setFont()
	case *ast.List:
		r.inList = entering
		if !entering {
			r.pdf.Ln(3)
		}
	case *ast.ListItem:
		if entering {
			r.pdf.Ln(5)
			r.pdf.SetX(16)
			r.pdf.Write(5, "- ")
		}
	case *ast.ThematicBreak:
		if entering {
			r.pdf.Ln(3)
			r.pdf.Line(12, r.pdf.GetY(), 198, r.pdf.GetY())
			r.pdf.Ln(3)
		}
	case *extast.Table:
		if entering {
			r.table(node)
			return ast.WalkSkipChildren, nil
		}
	}
	return ast.WalkContinue, nil
}

func (r *reportRenderer) heading(n *ast.Heading, entering bool) {
	if entering {
		r.pdf.Ln(6)
		size := 15.0 - 1.5*float64(n.Level)
		if size < 10 {
			size = 10
		}
		r.pdf.SetFont("Helvetica", "B", size)
		return
	}
	r.pdf.Ln(7)
	r.setFont()
}

func (r *reportRenderer) table(n *extast.Table) {
	var rows [][]string
	for section := n.FirstChild(); section != nil; section = section.NextSibling() {
		switch row := section.(type) {
		case *extast.TableHeader:
			if _, direct := row.FirstChild().(*extast.TableCell); direct {
				rows = append(rows, r.cells(row))
				break
			}
			for tr := row.FirstChild(); tr != nil; tr = tr.NextSibling() {
				rows = append(rows, r.cells(tr))
			}
		case *extast.TableRow:
			rows = append(rows, r.cells(row))
		}
	}
	if len(rows) == 0 || len(rows[0]) == 0 {
		return
	}

	widths := r.columnWidths(rows)
	lineHeight := 6.0
	r.pdf.Ln(2)

	for i, row := range rows {
		if i == 0 {
			r.pdf.SetFont("Helvetica", "B", 9)
			r.pdf.SetFillColor(235, 235, 235)
		} else {
			r.pdf.SetFont("Helvetica", "", 9)
			r.pdf.SetFillColor(255, 255, 255)
		}
		for j, cell := range row {
			if j >= len(widths) {
				break
			}
			r.pdf.CellFormat(widths[j], lineHeight, cell, "1", 0, "L", i == 0, 0, "")
		}
		r.pdf.Ln(lineHeight)
	}

	r.pdf.Ln(3)
	r.setFont()
}

func (r *reportRenderer) cells(row ast.Node) []string {
	var out []string
	for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
		if _, ok := cell.(*extast.TableCell); ok {
			out = append(out, string(cell.Text(r.source)))
		}
	}
	return out
}

// columnWidths sizes columns by their widest cell, scaled to fit the page.
func (r *reportRenderer) columnWidths(rows [][]string) []float64 {
	pageWidth := 186.0
	widths := make([]float64, len(rows[0]))

	r.pdf.SetFont("Helvetica", "B", 9)
	for _, row := range rows {
		for i, cell := range row {
			if i >= len(widths) {
				break
			}
			if w := r.pdf.GetStringWidth(cell) + 4; w > widths[i] {
				widths[i] = w
			}
		}
	}

	total := 0.0
	for _, w := range widths {
		total += w
	}
	if total > pageWidth {
		scale := pageWidth / total
		for i := range widths {
			widths[i] *= scale
		}
	}
	return widths
}
