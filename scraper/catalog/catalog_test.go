package catalog

import (
	"io"
	"reflect"
	"testing"

	"vending-insights/config"
	"vending-insights/utils"
)

func TestPageURLs(t *testing.T) {
	got, err := PageURLs("https://shop.example.com/vending?brand=HAHA", 3)
	if err != nil {
		t.Fatalf("PageURLs: %v", err)
	}
	want := []string{
		"https://shop.example.com/vending?brand=HAHA",
		"https://shop.example.com/vending?brand=HAHA&page=2",
		"https://shop.example.com/vending?brand=HAHA&page=3",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("PageURLs = %v; want %v", got, want)
	}

	got, err = PageURLs("https://shop.example.com/", 0)
	if err != nil || len(got) != 1 {
		t.Errorf("zero pages should yield the base url, got %v, %v", got, err)
	}
}

func TestCollectDeduplicatesModels(t *testing.T) {
	cfg := &config.Config{MaxConcurrency: 1, MaxRetries: 1}
	s := New(cfg, utils.NewLoggerTo(io.Discard, io.Discard, false))

	s.collect([]card{
		{Model: "HAHA-100", Name: "HAHA Cabinet", Brand: "HAHA", Price: "12999"},
		{Model: "", Name: "No model"},
		{Model: "HAHA-100", Name: "Duplicate"},
	})
	s.collect([]card{{Model: "BOX-1", Name: "Boxly", Brand: "Boxly", Price: "18000", Performance: `{"s": 90}`}})

	if len(s.products) != 2 {
		t.Fatalf("collected %d products; want 2", len(s.products))
	}
	if s.products[0].Name != "HAHA Cabinet" || s.products[1].RawPerformance != `{"s": 90}` {
		t.Errorf("unexpected products %+v %+v", s.products[0], s.products[1])
	}
	if s.products[0].Source != source {
		t.Errorf("Source = %q; want %q", s.products[0].Source, source)
	}
}

func TestFindChromeBinaryPrefersConfigured(t *testing.T) {
	if got := findChromeBinary("/custom/chrome"); got != "/custom/chrome" {
		t.Errorf("findChromeBinary = %q", got)
	}
}
