package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/M0ricette/lego/types"
)

var csvHeader = []string{"uuid", "id", "title", "price", "discount", "comments", "temperature", "published", "link"}

// exportedDeal is the JSON shape written by ExportJSON. Its fields mirror
// types.Deal so deals convert directly.
type exportedDeal struct {
	UUID        string    `json:"uuid"`
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Link        string    `json:"link"`
	Price       float64   `json:"price"`
	Discount    float64   `json:"discount"`
	Comments    int       `json:"comments"`
	Temperature float64   `json:"temperature"`
	Published   time.Time `json:"published"`
}

func ExportCSV(path string, deals []types.Deal) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv export: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, deal := range deals {
		row := []string{
			deal.UUID,
			deal.ID,
			deal.Title,
			fmt.Sprintf("%.2f", deal.Price),
			strconv.FormatFloat(deal.Discount, 'f', -1, 64),
			strconv.Itoa(deal.Comments),
			strconv.FormatFloat(deal.Temperature, 'f', -1, 64),
			formatExportDate(deal.Published),
			deal.Link,
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush csv export: %w", err)
	}
	return f.Close()
}

func ExportJSON(path string, deals []types.Deal) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create json export: %w", err)
	}
	defer f.Close()

	out := make([]exportedDeal, len(deals))
	for i, d := range deals {
		out[i] = exportedDeal(d)
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode json export: %w", err)
	}
	return f.Close()
}

// BuildExportPath names an export file after label and the current time.
func BuildExportPath(dir, label, ext string, now time.Time) string {
	sanitized := sanitizeFilename(label)
	if sanitized == "" {
		sanitized = "deals"
	}
	if ext == "" {
		ext = "csv"
	}
	name := fmt.Sprintf("lego-deals-%s-%s.%s", sanitized, now.Format("20060102-150405"), ext)
	return filepath.Join(dir, name)
}

func formatExportDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func sanitizeFilename(label string) string {
	trimmed := strings.TrimSpace(strings.ToLower(label))
	if trimmed == "" {
		return ""
	}

	var b strings.Builder
	prevDash := false
	for _, r := range trimmed {
		isAlphaNum := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if isAlphaNum {
			b.WriteRune(r)
			prevDash = false
			continue
		}
		if !prevDash {
			b.WriteByte('-')
			prevDash = true
		}
	}
	out := strings.Trim(b.String(), "-")
	if len(out) > 40 {
		out = strings.Trim(out[:40], "-")
	}
	return out
}
