package emails

import (
	"encoding/base64"
	"strings"
	"testing"
)

func TestBuildMessagePlain(t *testing.T) {
	msg := string(buildMessage(&Email{
		From:     "reports@travelops.example",
		To:       []string{"ops@example.com"},
		Subject:  "Scheduled report",
		HtmlBody: "<p>attached</p>",
	}))

	if !strings.Contains(msg, "Subject: Scheduled report\r\n") {
		t.Error("subject header missing")
	}
	if !strings.Contains(msg, "Content-Type: text/html") {
		t.Error("html content type missing")
	}
	if !strings.HasSuffix(msg, "<p>attached</p>") {
		t.Error("body missing")
	}
}

func TestBuildMessageWithAttachment(t *testing.T) {
	payload := []byte("date,value\nMon,100\n")
	msg := string(buildMessage(&Email{
		From:    "reports@travelops.example",
		To:      []string{"ops@example.com", "finance@example.com"},
		Subject: "Scheduled report",
		Attachments: []Attachment{{
			Filename:    "sales_report_2026-03-15.csv",
			ContentType: "text/csv",
			Data:        payload,
		}},
	}))

	if !strings.Contains(msg, "multipart/mixed") {
		t.Error("multipart envelope missing")
	}
	if !strings.Contains(msg, "filename=sales_report_2026-03-15.csv") {
		t.Error("attachment filename missing")
	}
	if !strings.Contains(msg, "To: ops@example.com, finance@example.com") {
		t.Error("recipient list missing")
	}
	if !strings.Contains(msg, base64.StdEncoding.EncodeToString(payload)) {
		t.Error("attachment data not base64 encoded")
	}
}
