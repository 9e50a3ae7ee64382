// Package export writes the scanned library to local files.
package export

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"deckdex/internal/model"

	"github.com/xuri/excelize/v2"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// BaseName is the file name (without extension) every export uses.
const BaseName = "mtg_library"

const sheetName = "Library"

var header = []string{"Name", "Type", "Cost", "Rarity", "Set"}

func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatCSV:
		return FormatCSV, nil
	case FormatXLSX:
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("unknown export format: %s (expected csv|xlsx)", s)
	}
}

func (f Format) FileName() string { return BaseName + "." + string(f) }

func (f Format) ContentType() string {
	if f == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv; charset=utf-8"
}

func row(c model.ScannedCard) []string {
	return []string{c.Name, c.Type, c.Cost, c.Rarity, c.Set}
}

// WriteCSV writes the header followed by one line per card, newline-joined
// with no trailing newline. Fields are written verbatim: a value containing a
// comma is NOT quoted, matching the format downstream tools already consume.
func WriteCSV(w io.Writer, cards []model.ScannedCard) error {
	lines := make([]string, 0, len(cards)+1)
	lines = append(lines, strings.Join(header, ","))
	for _, c := range cards {
		lines = append(lines, strings.Join(row(c), ","))
	}
	_, err := io.WriteString(w, strings.Join(lines, "\n"))
	return err
}

// WriteXLSX writes the same table as WriteCSV into a "Library" sheet.
func WriteXLSX(w io.Writer, cards []model.ScannedCard) (err error) {
	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return err
	}
	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		return err
	}
	if err := sw.SetRow("A1", toRow(header)); err != nil {
		return err
	}
	for i, c := range cards {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cell, toRow(row(c))); err != nil {
			return err
		}
	}
	if err := sw.Flush(); err != nil {
		return err
	}
	return f.Write(w)
}

func toRow(vals []string) []any {
	out := make([]any, len(vals))
	for i, v := range vals {
		out[i] = v
	}
	return out
}

func Write(w io.Writer, f Format, cards []model.ScannedCard) error {
	switch f {
	case FormatCSV:
		return WriteCSV(w, cards)
	case FormatXLSX:
		return WriteXLSX(w, cards)
	default:
		return fmt.Errorf("unknown export format: %s", f)
	}
}

// WriteFile writes dir/mtg_library.<ext> and returns its path.
func WriteFile(dir string, f Format, cards []model.ScannedCard) (string, error) {
	if strings.TrimSpace(dir) == "" {
		return "", errors.New("export: missing dir")
	}
	dir = filepath.Clean(strings.TrimSpace(dir))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("export: %w", err)
	}
	path := filepath.Join(dir, f.FileName())
	out, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("export: %w", err)
	}
	defer func() { _ = out.Close() }()

	if err := Write(out, f, cards); err != nil {
		return "", fmt.Errorf("export %s: %w", path, err)
	}
	if err := out.Close(); err != nil {
		return "", fmt.Errorf("export %s: %w", path, err)
	}
	return path, nil
}
