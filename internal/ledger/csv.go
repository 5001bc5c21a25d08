package ledger

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kisankhidmat/khidmat/internal/models"
)

// Header is the canonical column set of a ledger file.
var Header = []string{"Date", "Item", "Amount", "Paid"}

func encode(entries []models.Transaction) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(Header); err != nil {
		return nil, err
	}
	for _, e := range entries {
		row := []string{
			e.Date.Format(models.DateLayout),
			e.Item,
			e.Amount.String(),
			e.Paid.String(),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decode(r io.Reader) ([]models.Transaction, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(Header)

	entries := []models.Transaction{}
	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return entries, nil
	}
	if err != nil {
		return nil, fmt.Errorf("header: %w", err)
	}
	for i, col := range Header {
		if header[i] != col {
			return nil, fmt.Errorf("unexpected column %q at position %d", header[i], i)
		}
	}

	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		txn, err := parseRow(rec)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		entries = append(entries, txn)
	}
	return entries, nil
}

func parseRow(rec []string) (models.Transaction, error) {
	date, err := time.Parse(models.DateLayout, rec[0])
	if err != nil {
		return models.Transaction{}, fmt.Errorf("date: %w", err)
	}
	amount, err := parseAmount(rec[2])
	if err != nil {
		return models.Transaction{}, fmt.Errorf("amount: %w", err)
	}
	paid, err := parseAmount(rec[3])
	if err != nil {
		return models.Transaction{}, fmt.Errorf("paid: %w", err)
	}
	return models.Transaction{Date: date, Item: rec[1], Amount: amount, Paid: paid}, nil
}

// parseAmount treats a blank cell as zero.
func parseAmount(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}
