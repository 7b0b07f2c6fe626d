// Command seedcatalog converts a supplier price-list Excel file into a SQL
// seed file for the products table.
// Expected columns: A=SKU, B=Name, C=Unit, D=List price. Data starts at row 2.
// Usage: go run ./cmd/seedcatalog <price-list.xlsx>
// Output: db/seeds/products.sql
package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const batchSize = 500

type productEntry struct {
	sku       string
	name      string
	unit      string
	listPrice decimal.Decimal
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	if len(os.Args) < 2 {
		fmt.Println("Usage: seedcatalog <price-list.xlsx>")
		os.Exit(1)
	}
	xlsxPath := os.Args[1]
	outPath := "db/seeds/products.sql"

	f, err := excelize.OpenFile(xlsxPath)
	if err != nil {
		return fmt.Errorf("open Excel file: %w", err)
	}
	defer func() { _ = f.Close() }()

	entries, err := parsePriceList(f)
	if err != nil {
		return fmt.Errorf("parse price list: %w", err)
	}
	log.Printf("price list: %d entries", len(entries))

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer func() { _ = out.Close() }()

	w := func(s string) error { _, werr := fmt.Fprintln(out, s); return werr }

	for _, line := range []string{
		"-- Product catalog seed data generated from a price-list workbook.",
		fmt.Sprintf("-- %d entries in batches of %d.", len(entries), batchSize),
		"-- Run: make seed-catalog",
		"BEGIN;",
		"",
	} {
		if werr := w(line); werr != nil {
			return fmt.Errorf("write header: %w", werr)
		}
	}

	for i := 0; i < len(entries); i += batchSize {
		end := i + batchSize
		if end > len(entries) {
			end = len(entries)
		}
		if err := writeBatch(out, entries[i:end]); err != nil {
			return fmt.Errorf("write batch at offset %d: %w", i, err)
		}
	}

	for _, line := range []string{"", "COMMIT;"} {
		if werr := w(line); werr != nil {
			return fmt.Errorf("write footer: %w", werr)
		}
	}

	log.Printf("Generated %d entries (%d batches) in %s",
		len(entries), (len(entries)+batchSize-1)/batchSize, outPath)
	return nil
}

// parsePriceList reads the first sheet. Rows with an empty SKU or an
// unparseable price are skipped; duplicate SKUs keep the first occurrence.
func parsePriceList(f *excelize.File) ([]productEntry, error) {
	sheetName := f.GetSheetName(0)
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var entries []productEntry
	for i := 1; i < len(rows); i++ {
		row := rows[i]

		sku := strings.TrimSpace(cellVal(row, 0))
		if sku == "" || seen[sku] {
			continue
		}

		name := strings.TrimSpace(cellVal(row, 1))
		if name == "" {
			continue
		}

		priceStr := strings.TrimSpace(cellVal(row, 3))
		priceStr = strings.ReplaceAll(priceStr, ",", "")
		price, perr := decimal.NewFromString(priceStr)
		if perr != nil || price.IsNegative() {
			continue
		}

		seen[sku] = true
		entries = append(entries, productEntry{
			sku:       sku,
			name:      name,
			unit:      strings.TrimSpace(cellVal(row, 2)),
			listPrice: price,
		})
	}
	return entries, nil
}

func writeBatch(out *os.File, batch []productEntry) error {
	if len(batch) == 0 {
		return nil
	}

	var b strings.Builder
	b.WriteString("INSERT INTO products (id, sku, name, unit, list_price, is_active, created_at, updated_at) VALUES\n")

	for i := range batch {
		e := &batch[i]
		if i > 0 {
			b.WriteString(",\n")
		}
		fmt.Fprintf(&b, "  (gen_random_uuid(), '%s', '%s', '%s', %s, true, now(), now())",
			escapeSQL(e.sku), escapeSQL(e.name), escapeSQL(e.unit), e.listPrice.String())
	}

	b.WriteString("\nON CONFLICT (sku) DO UPDATE SET list_price = EXCLUDED.list_price, updated_at = now();\n")

	_, err := out.WriteString(b.String())
	return err
}

func cellVal(row []string, idx int) string {
	if idx < len(row) {
		return row[idx]
	}
	return ""
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
