package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"vending-insights/models"
)

func TestDecodeRawCSV(t *testing.T) {
	input := "Model,Name,Brand,Price,Performance\n" +
		`HAHA-100,HAHA Cabinet,HAHA,12999,"{""speed"": 95}"` + "\n" +
		"BOX-1,Boxly,Boxly,abc\n"

	rows, err := DecodeRawCSV(strings.NewReader(input), "test")
	if err != nil {
		t.Fatalf("DecodeRawCSV: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows; want 2", len(rows))
	}
	if rows[0].Model != "HAHA-100" || rows[0].RawPerformance != `{"speed": 95}` || rows[0].Source != "test" {
		t.Errorf("unexpected first row %+v", rows[0])
	}
	if rows[1].RawPrice != "abc" || rows[1].RawSpecs != "" {
		t.Errorf("unexpected second row %+v", rows[1])
	}
}

func TestDecodeRawCSVMissingColumn(t *testing.T) {
	_, err := DecodeRawCSV(strings.NewReader("model,name,price\nA,B,1\n"), "test")
	if err == nil || !strings.Contains(err.Error(), "brand") {
		t.Errorf("expected missing brand column error, got %v", err)
	}
}

func TestDecodeRawCSVEmpty(t *testing.T) {
	if _, err := DecodeRawCSV(strings.NewReader(""), "test"); err == nil {
		t.Error("expected error for empty input")
	}
}

func TestCSVWriterSnapshotReadsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "raw.csv")
	w, err := NewCSVWriter(path)
	if err != nil {
		t.Fatalf("NewCSVWriter: %v", err)
	}
	raw := []*models.RawProduct{
		{Model: "HAHA-100", Name: "HAHA Cabinet", Brand: "HAHA", RawPrice: "12999", ImportedAt: time.Now()},
	}
	if err := w.WriteRaw(raw); err != nil {
		t.Fatalf("WriteRaw: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("snapshot not written: %v", err)
	}
	back, err := ReadRawCSV(path)
	if err != nil {
		t.Fatalf("ReadRawCSV: %v", err)
	}
	if len(back) != 1 || back[0].Model != "HAHA-100" || back[0].RawPrice != "12999" {
		t.Errorf("unexpected rows %+v", back)
	}
}
