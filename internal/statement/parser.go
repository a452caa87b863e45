// Package statement parses heterogeneous bank statement exports into a
// canonical (date, description, amount) shape. Column roles are inferred
// from header names rather than fixed positions, since source banks
// disagree on naming.
package statement

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Row is one normalized statement line, not yet categorized.
// Amount is signed: negative = outflow.
type Row struct {
	Date        time.Time
	Description string
	Amount      decimal.Decimal
}

// SchemaError reports that a file's date or description column could not
// be identified. The file is skipped; the batch continues.
type SchemaError struct {
	File    string
	Missing string // role that could not be resolved
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s: no %s column identified", e.File, e.Missing)
}

// dateLayouts are tried in order when parsing date cells.
var dateLayouts = []string{
	"2006-01-02",
	"01/02/2006",
	"1/2/2006",
	"2006/01/02",
	"01-02-2006",
	"02 Jan 2006",
	"Jan 2, 2006",
	"2006-01-02 15:04:05",
}

// Parse reads a delimited statement and returns normalized rows in file
// order. Rows lacking a resolvable date or description are dropped.
// Returns a *SchemaError when no date or description column exists.
func Parse(r io.Reader, name string) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	header := records[0]

	dateCol, ok := findColumn(header, dateTerms)
	if !ok {
		return nil, &SchemaError{File: name, Missing: "date"}
	}
	descCol, ok := findColumn(header, descriptionTerms)
	if !ok {
		return nil, &SchemaError{File: name, Missing: "description"}
	}

	debitCol, creditCol, netted := findDebitCredit(header)

	var amountCol columnRef
	if !netted {
		amountCol, ok = findColumn(header, amountTerms)
		if !ok {
			return nil, &SchemaError{File: name, Missing: "amount"}
		}
	}

	var rows []Row
	for _, rec := range records[1:] {
		date, ok := parseDate(cell(rec, dateCol.index))
		if !ok {
			continue
		}
		desc := strings.TrimSpace(cell(rec, descCol.index))
		if desc == "" {
			continue
		}

		var amount decimal.Decimal
		if netted {
			debit := parseAmount(cell(rec, debitCol.index))
			credit := parseAmount(cell(rec, creditCol.index))
			amount = credit.Sub(debit)
		} else {
			amount = parseAmount(cell(rec, amountCol.index))
		}

		rows = append(rows, Row{Date: date, Description: desc, Amount: amount})
	}
	return rows, nil
}

func cell(rec []string, i int) string {
	if i >= len(rec) {
		return ""
	}
	return rec[i]
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// parseAmount coerces a statement amount cell to a decimal. Currency
// symbols and thousands separators are stripped; a parenthesized value
// is negative. Unparseable cells coerce to zero.
func parseAmount(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, ",", "")
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		s = "-" + s[1:len(s)-1]
	}
	if s == "" {
		return decimal.Zero
	}
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return amount
}
