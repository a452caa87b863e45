package ledger

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finsight-dev/finsight/internal/model"
)

const (
	ledgerFile   = "ledger.csv"
	networthFile = "networth.csv"
	cursorFile   = "sync_cursor"

	networthHeader = "date,assets,liabilities"
)

// FileStore is a Store backed by CSV files under a data directory.
// All records are held in memory; Commit rewrites the files.
type FileStore struct {
	dir string
	MemoryStore
}

// OpenFileStore loads (or initializes) a file-backed store at dir.
func OpenFileStore(dir string) (*FileStore, error) {
	s := &FileStore{dir: dir, MemoryStore: *NewMemoryStore()}

	txns, err := readLedgerFile(filepath.Join(dir, ledgerFile))
	if err != nil {
		return nil, err
	}
	for _, t := range txns {
		if err := s.MemoryStore.InsertTransaction(t); err != nil {
			return nil, fmt.Errorf("loading ledger: %w", err)
		}
	}

	snaps, err := readNetworthFile(filepath.Join(dir, networthFile))
	if err != nil {
		return nil, err
	}
	for _, snap := range snaps {
		if err := s.MemoryStore.UpsertSnapshot(snap); err != nil {
			return nil, err
		}
	}

	cursor, err := os.ReadFile(filepath.Join(dir, cursorFile))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("reading sync cursor: %w", err)
	}
	s.cursor = strings.TrimSpace(string(cursor))

	return s, nil
}

// Commit writes the ledger, snapshots, and cursor to disk.
func (s *FileStore) Commit() error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	f, err := os.Create(filepath.Join(s.dir, ledgerFile))
	if err != nil {
		return fmt.Errorf("creating ledger file: %w", err)
	}
	if err := WriteTransactions(f, s.txns); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing ledger file: %w", err)
	}

	if err := s.writeSnapshots(); err != nil {
		return err
	}

	if err := os.WriteFile(filepath.Join(s.dir, cursorFile), []byte(s.cursor), 0o644); err != nil {
		return fmt.Errorf("writing sync cursor: %w", err)
	}
	return nil
}

func (s *FileStore) writeSnapshots() error {
	snaps, _ := s.MemoryStore.Snapshots()
	sort.Slice(snaps, func(i, j int) bool { return snaps[i].Date.Before(snaps[j].Date) })

	f, err := os.Create(filepath.Join(s.dir, networthFile))
	if err != nil {
		return fmt.Errorf("creating networth file: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	defer cw.Flush()

	if err := cw.Write(strings.Split(networthHeader, ",")); err != nil {
		return fmt.Errorf("writing networth header: %w", err)
	}
	for _, snap := range snaps {
		row := []string{
			snap.Date.Format(dateFormat),
			snap.Assets.StringFixed(2),
			snap.Liabilities.StringFixed(2),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing networth row: %w", err)
		}
	}
	return cw.Error()
}

func readLedgerFile(path string) ([]model.Transaction, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening ledger %s: %w", path, err)
	}
	defer f.Close()

	txns, err := ReadTransactions(f)
	if err != nil {
		return nil, fmt.Errorf("reading ledger %s: %w", path, err)
	}
	return txns, nil
}

func readNetworthFile(path string) ([]model.NetWorthSnapshot, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening networth %s: %w", path, err)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.FieldsPerRecord = 3

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading networth %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	var snaps []model.NetWorthSnapshot
	for i, rec := range records[1:] {
		date, err := time.Parse(dateFormat, rec[0])
		if err != nil {
			return nil, fmt.Errorf("networth row %d: parsing date %q: %w", i+2, rec[0], err)
		}
		assets, err := decimal.NewFromString(rec[1])
		if err != nil {
			return nil, fmt.Errorf("networth row %d: parsing assets %q: %w", i+2, rec[1], err)
		}
		liabilities, err := decimal.NewFromString(rec[2])
		if err != nil {
			return nil, fmt.Errorf("networth row %d: parsing liabilities %q: %w", i+2, rec[2], err)
		}
		snaps = append(snaps, model.NetWorthSnapshot{Date: date, Assets: assets, Liabilities: liabilities})
	}
	return snaps, nil
}
