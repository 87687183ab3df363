package pipeline

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"
)

func sampleTable() TableData {
	return TableData{
		Columns: []string{"date", "package", "value"},
		Rows: [][]any{
			{"2026-03-01", "Umrah Plus", 4500.0},
			{"2026-03-02", "Istanbul City Break", 1200.0},
		},
	}
}

func TestExportCSV(t *testing.T) {
	data, err := ExportCSV(sampleTable())
	if err != nil {
		t.Fatal(err)
	}

	want := "date,package,value\n" +
		"2026-03-01,Umrah Plus,4500\n" +
		"2026-03-02,Istanbul City Break,1200\n"
	if string(data) != want {
		t.Errorf("csv output:\n%s\nwant:\n%s", data, want)
	}
}

func TestExportCSVEmptyTable(t *testing.T) {
	data, err := ExportCSV(TableData{Columns: []string{"a", "b"}})
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "a,b\n" {
		t.Errorf("csv output = %q, want header only", data)
	}
}

func TestFormatCell(t *testing.T) {
	stamp := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)

	tests := []struct {
		in   any
		want string
	}{
		{nil, ""},
		{stamp, "2026-03-01 09:30:00"},
		{"text", "text"},
		{42, "42"},
		{12.5, "12.5"},
	}
	for _, tt := range tests {
		if got := formatCell(tt.in); got != tt.want {
			t.Errorf("formatCell(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestExportExcelRoundTrip(t *testing.T) {
	data, err := ExportExcel(sampleTable())
	if err != nil {
		t.Fatal(err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("workbook does not open: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Report")
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Fatalf("row count = %d, want header + 2", len(rows))
	}
	if rows[0][0] != "date" || rows[0][2] != "value" {
		t.Errorf("header = %v", rows[0])
	}
	if rows[1][1] != "Umrah Plus" {
		t.Errorf("first row = %v", rows[1])
	}
}

func TestBasicPDFRenderer(t *testing.T) {
	payload := &ReportPayload{
		Title: "SALES Report",
		Metrics: []MetricValue{
			{Label: "Total", Value: 5700},
		},
		Table: sampleTable(),
	}

	data, err := NewBasicPDFRenderer().Render(context.Background(), TemplateBusinessProposal, payload)
	if err != nil {
		t.Fatal(err)
	}

	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Error("output missing pdf header")
	}
	if !bytes.HasSuffix(bytes.TrimSpace(data), []byte("%%EOF")) {
		t.Error("output missing pdf trailer")
	}
}

func TestBasicPDFRendererUnknownTemplate(t *testing.T) {
	_, err := NewBasicPDFRenderer().Render(context.Background(), "invoice", &ReportPayload{})
	if err == nil {
		t.Fatal("expected error for unknown template")
	}
}
