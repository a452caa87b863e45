package ledger

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finsight-dev/finsight/internal/model"
)

// Header is the CSV header for ledger.csv.
const Header = "id,date,description,amount,category,confidence,shared,provenance,external_id"

const (
	numFields     = 9
	dateFormat    = "2006-01-02"
	colID         = 0
	colDate       = 1
	colDesc       = 2
	colAmount     = 3
	colCategory   = 4
	colConfidence = 5
	colShared     = 6
	colProvenance = 7
	colExternalID = 8
)

// ReadTransactions reads all transactions from a ledger.csv reader.
func ReadTransactions(r io.Reader) ([]model.Transaction, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading ledger CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	// Skip header row.
	var txns []model.Transaction
	for i, rec := range records[1:] {
		txn, err := UnmarshalTransaction(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		txns = append(txns, txn)
	}
	return txns, nil
}

// WriteTransactions writes transactions to a ledger.csv writer
// (including header).
func WriteTransactions(w io.Writer, txns []model.Transaction) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, txn := range txns {
		if err := cw.Write(MarshalTransaction(txn)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// MarshalTransaction converts a Transaction to a CSV row ([]string).
func MarshalTransaction(t model.Transaction) []string {
	row := make([]string, numFields)
	row[colID] = t.ID
	row[colDate] = t.Date.Format(dateFormat)
	row[colDesc] = t.Description
	row[colAmount] = t.Amount.StringFixed(2)
	row[colCategory] = t.Category
	if !t.Confidence.IsZero() {
		row[colConfidence] = t.Confidence.String()
	}
	row[colShared] = strconv.FormatBool(t.Shared)
	row[colProvenance] = string(t.Provenance)
	row[colExternalID] = t.ExternalID
	return row
}

// UnmarshalTransaction converts a CSV row to a Transaction.
func UnmarshalTransaction(record []string) (model.Transaction, error) {
	if len(record) != numFields {
		return model.Transaction{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	date, err := time.Parse(dateFormat, record[colDate])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing date %q: %w", record[colDate], err)
	}

	amount, err := decimal.NewFromString(record[colAmount])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing amount %q: %w", record[colAmount], err)
	}

	var confidence decimal.Decimal
	if record[colConfidence] != "" {
		confidence, err = decimal.NewFromString(record[colConfidence])
		if err != nil {
			return model.Transaction{}, fmt.Errorf("parsing confidence %q: %w", record[colConfidence], err)
		}
	}

	shared := false
	if record[colShared] != "" {
		shared, err = strconv.ParseBool(record[colShared])
		if err != nil {
			return model.Transaction{}, fmt.Errorf("parsing shared %q: %w", record[colShared], err)
		}
	}

	return model.Transaction{
		ID:          record[colID],
		Date:        date,
		Description: record[colDesc],
		Amount:      amount,
		Category:    record[colCategory],
		Confidence:  confidence,
		Shared:      shared,
		Provenance:  model.Provenance(record[colProvenance]),
		ExternalID:  record[colExternalID],
	}, nil
}
