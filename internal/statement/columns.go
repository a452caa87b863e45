package statement

import "strings"

// Column-role candidate terms, in priority order. Matching is a
// case-insensitive substring test against the header cell; the first
// term with a matching column wins for that role.
var (
	dateTerms = []string{
		"date",
		"transaction date",
		"posted",
		"post date",
		"value date",
	}

	descriptionTerms = []string{
		"description",
		"details",
		"name",
		"memo",
		"transaction",
		"merchant",
	}

	amountTerms = []string{
		"amount",
		"debit",
		"credit",
		"amount $",
		"amt",
		"withdrawal",
		"deposit",
	}
)

// columnRef is a resolved header position for one role.
type columnRef struct {
	index int
	name  string
}

// findColumn returns the first column whose name contains any candidate
// term, scanning terms in priority order.
func findColumn(header []string, terms []string) (columnRef, bool) {
	for _, term := range terms {
		for i, col := range header {
			if strings.Contains(strings.ToLower(col), term) {
				return columnRef{index: i, name: col}, true
			}
		}
	}
	return columnRef{}, false
}

// findDebitCredit locates separate debit and credit columns, if both
// exist. Withdrawal/deposit naming counts as debit/credit.
func findDebitCredit(header []string) (debit, credit columnRef, ok bool) {
	foundDebit, foundCredit := false, false
	for i, col := range header {
		lc := strings.ToLower(col)
		if strings.Contains(lc, "debit") || strings.Contains(lc, "withdrawal") {
			debit = columnRef{index: i, name: col}
			foundDebit = true
		}
		if strings.Contains(lc, "credit") || strings.Contains(lc, "deposit") {
			credit = columnRef{index: i, name: col}
			foundCredit = true
		}
	}
	return debit, credit, foundDebit && foundCredit
}
