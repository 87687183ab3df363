package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"strings"
)

// TemplateBusinessProposal is the document template the back office ships
// with today.
const TemplateBusinessProposal = "business-proposal"

// PDFRenderer turns a report payload into a binary document. The production
// deployment swaps in a real rendering backend; BasicPDFRenderer below is
// the built-in seam implementation.
type PDFRenderer interface {
	Render(ctx context.Context, template string, payload *ReportPayload) ([]byte, error)
}

// BasicPDFRenderer writes a minimal single-page PDF by hand: title, date
// range, metric summary and a row-count note. It exists so the pipeline has
// a working default when no external rendering service is configured.
type BasicPDFRenderer struct{}

func NewBasicPDFRenderer() PDFRenderer {
	return &BasicPDFRenderer{}
}

func (r *BasicPDFRenderer) Render(ctx context.Context, template string, payload *ReportPayload) ([]byte, error) {
	if template != TemplateBusinessProposal {
		return nil, fmt.Errorf("unknown document template %q", template)
	}
	if payload == nil {
		return nil, fmt.Errorf("nil payload")
	}

	lines := []string{
		payload.Title,
		fmt.Sprintf("Period: %s to %s",
			payload.DateRange.Start.Format("2006-01-02"),
			payload.DateRange.End.Format("2006-01-02")),
		fmt.Sprintf("Generated: %s", payload.GeneratedAt.Format("2006-01-02 15:04")),
		"",
	}
	for _, m := range payload.Metrics {
		lines = append(lines, fmt.Sprintf("%s: %.2f", m.Label, m.Value))
	}
	lines = append(lines, "", fmt.Sprintf("%d data rows across %d columns",
		len(payload.Table.Rows), len(payload.Table.Columns)))

	return buildPDF(lines), nil
}

// buildPDF assembles a valid one-page PDF document around the given text
// lines, Helvetica 12pt, top-left origin.
func buildPDF(lines []string) []byte {
	var content bytes.Buffer
	content.WriteString("BT\n/F1 12 Tf\n50 780 Td\n14 TL\n")
	for _, line := range lines {
		fmt.Fprintf(&content, "(%s) Tj\nT*\n", escapePDFText(line))
	}
	content.WriteString("ET\n")

	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 595 842] /Resources << /Font << /F1 4 0 R >> >> /Contents 5 0 R >>",
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>",
		fmt.Sprintf("<< /Length %d >>\nstream\n%sendstream", content.Len(), content.String()),
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")

	offsets := make([]int, len(objects)+1)
	for i, obj := range objects {
		offsets[i+1] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xrefStart := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(objects)+1)
	for i := 1; i <= len(objects); i++ {
		fmt.Fprintf(&buf, "%010d 00000 n \n", offsets[i])
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n",
		len(objects)+1, xrefStart)

	return buf.Bytes()
}

func escapePDFText(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "(", `\(`)
	s = strings.ReplaceAll(s, ")", `\)`)
	return s
}
