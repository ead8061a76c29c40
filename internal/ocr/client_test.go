package ocr

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestExtractText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/ocr" {
			t.Fatalf("path = %q, want /ocr", r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("form file: %v", err)
		}
		defer file.Close()
		if header.Filename != "invoice.png" {
			t.Fatalf("filename = %q, want invoice.png", header.Filename)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"text": "رقم العقد 3701455886 / 1014871"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	text, err := client.ExtractText(context.Background(), "invoice.png", "image/png", strings.NewReader("image bytes"))
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	if !strings.Contains(text, "3701455886 / 1014871") {
		t.Fatalf("text = %q", text)
	}
}

func TestExtractTextProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"text": "", "error": "unreadable image"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.ExtractText(context.Background(), "invoice.png", "image/png", strings.NewReader("image bytes"))
	if err == nil || !strings.Contains(err.Error(), "unreadable image") {
		t.Fatalf("err = %v, want provider error surfaced", err)
	}
}

func TestExtractTextBadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.ExtractText(context.Background(), "invoice.png", "image/png", strings.NewReader("image bytes"))
	if err == nil {
		t.Fatal("expected an error for a 500 response")
	}
}
