package storage

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestSaveFile_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "report.yaml")

	if err := SaveFile(path, []byte("first")); err != nil {
		t.Fatalf("SaveFile() error = %v", err)
	}
	if err := SaveFile(path, []byte("second")); err != nil {
		t.Fatalf("SaveFile() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(data) != "second" {
		t.Errorf("file content = %q, want second", data)
	}

	stats, err := GetFileStats(path)
	if err != nil {
		t.Fatalf("GetFileStats() error = %v", err)
	}
	if stats.SizeBytes != 6 {
		t.Errorf("SizeBytes = %d, want 6", stats.SizeBytes)
	}
}

func TestSavePNG(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 3))
	img.Set(1, 1, color.NRGBA{R: 0, G: 0xA7, B: 0xEB, A: 0xFF})

	path := filepath.Join(t.TempDir(), "img.png")
	if err := SavePNG(path, img); err != nil {
		t.Fatalf("SavePNG() error = %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer f.Close()

	decoded, err := png.Decode(f)
	if err != nil {
		t.Fatalf("png.Decode() error = %v", err)
	}
	if decoded.Bounds() != img.Bounds() {
		t.Errorf("Bounds() = %v, want %v", decoded.Bounds(), img.Bounds())
	}
}

func TestGetFileStats_Missing(t *testing.T) {
	if _, err := GetFileStats(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("GetFileStats() error = nil for missing file")
	}
}
