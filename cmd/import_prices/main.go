package main

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/ledongthuc/pdf"
	"gorm.io/gorm"

	"eltuff/internal/config"
	"eltuff/internal/db"
	"eltuff/internal/ledger"
	"eltuff/models"
)

// quoteLinePattern matches "<material name> <amount>" lines from extracted
// PDF text, tolerating a currency prefix and separator punctuation.
var quoteLinePattern = regexp.MustCompile(`^(.*?)[\s,;:]+(?:GHS\s*)?([-+]?\d+(?:\.\d+)?)\s*$`)

type priceQuote struct {
	Name string
	Cost float64
}

type importSummary struct {
	Updated   int
	Unchanged int
	Unmatched int
}

func main() {
	dryRun := flag.Bool("dry-run", false, "report price changes without applying them")
	note := flag.String("note", "", "note recorded against each price change")
	flag.Parse()

	path := flag.Arg(0)
	if err := run(path, *dryRun, *note); err != nil {
		fmt.Fprintf(os.Stderr, "import failed: %v\n", err)
		os.Exit(1)
	}
}

func run(path string, dryRun bool, note string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("usage: import_prices [flags] <price-list.csv|price-list.pdf>")
	}
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("locate price list: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	database, err := db.Initialize(cfg.Database)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	if err := db.AutoMigrate(database); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	quotes, err := readPriceList(path)
	if err != nil {
		return fmt.Errorf("read price list: %w", err)
	}
	if len(quotes) == 0 {
		return fmt.Errorf("no usable price lines in %s", path)
	}

	if note == "" {
		note = "supplier price list: " + filepath.Base(path)
	}

	summary, err := applyQuotes(context.Background(), database, ledger.NewService(database), quotes, dryRun, note)
	if err != nil {
		return err
	}

	verb := "updated"
	if dryRun {
		verb = "would update"
	}
	fmt.Printf("%s %d materials, %d unchanged, %d unmatched\n", verb, summary.Updated, summary.Unchanged, summary.Unmatched)
	return nil
}

func readPriceList(path string) ([]priceQuote, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return readCSVQuotes(f)
	case ".pdf":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		return readPDFQuotes(data)
	default:
		return nil, fmt.Errorf("unsupported price list format %q", filepath.Ext(path))
	}
}

func readCSVQuotes(r io.Reader) ([]priceQuote, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var quotes []priceQuote
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(record) < 2 {
			continue
		}
		name := strings.TrimSpace(record[0])
		if name == "" {
			continue
		}
		// The first parseable number after the name is the unit cost;
		// header rows fall through here with no number at all.
		for _, field := range record[1:] {
			cost, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				continue
			}
			if cost >= 0 {
				quotes = append(quotes, priceQuote{Name: name, Cost: cost})
			}
			break
		}
	}
	return quotes, nil
}

func readPDFQuotes(data []byte) ([]priceQuote, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}

	var builder strings.Builder
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return nil, err
		}
		builder.WriteString(text)
		builder.WriteString("\n")
	}

	var quotes []priceQuote
	for _, line := range strings.Split(builder.String(), "\n") {
		if quote, ok := parseQuoteLine(line); ok {
			quotes = append(quotes, quote)
		}
	}
	return quotes, nil
}

func parseQuoteLine(line string) (priceQuote, bool) {
	matches := quoteLinePattern.FindStringSubmatch(strings.TrimSpace(line))
	if matches == nil {
		return priceQuote{}, false
	}
	name := strings.Trim(strings.TrimSpace(matches[1]), ".-:")
	cost, err := strconv.ParseFloat(matches[2], 64)
	if err != nil || name == "" || cost < 0 {
		return priceQuote{}, false
	}
	return priceQuote{Name: strings.TrimSpace(name), Cost: cost}, true
}

// applyQuotes routes every price change through the material ledger so the
// usual history entries are written.
func applyQuotes(ctx context.Context, database *gorm.DB, service *ledger.Service, quotes []priceQuote, dryRun bool, note string) (importSummary, error) {
	var summary importSummary
	for _, quote := range quotes {
		var material models.RawMaterial
		err := database.WithContext(ctx).
			Where("LOWER(name) = ?", strings.ToLower(quote.Name)).
			First(&material).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			summary.Unmatched++
			fmt.Printf("no material named %q\n", quote.Name)
			continue
		}
		if err != nil {
			return summary, fmt.Errorf("look up material %q: %w", quote.Name, err)
		}

		if material.CostPerUnit == quote.Cost {
			summary.Unchanged++
			continue
		}

		if dryRun {
			fmt.Printf("%s: %.4f -> %.4f\n", material.Name, material.CostPerUnit, quote.Cost)
			summary.Updated++
			continue
		}

		cost := quote.Cost
		if _, err := service.UpdateMaterial(ctx, material.ID, ledger.MaterialPatch{CostPerUnit: &cost, Note: note}); err != nil {
			return summary, fmt.Errorf("update material %q: %w", material.Name, err)
		}
		fmt.Printf("%s: %.4f -> %.4f\n", material.Name, material.CostPerUnit, quote.Cost)
		summary.Updated++
	}
	return summary, nil
}
