package tabulate

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"github.com/carbocation/pfx"
	"github.com/gocarina/gocsv"
)

// Sink persists the tables of one analysis. Implementations are safe for
// concurrent use.
type Sink interface {
	Write(ctx context.Context, t Tables) error
}

// MultiSink writes to each sink in order and stops at the first error.
type MultiSink []Sink

func (m MultiSink) Write(ctx context.Context, t Tables) error {
	for _, s := range m {
		if err := s.Write(ctx, t); err != nil {
			return err
		}
	}

	return nil
}

// CSVSink appends each table to <Dir>/<table>.csv. A header is written only
// when the file is new or empty. The distribution and spatial tables are
// skipped when they have no rows.
type CSVSink struct {
	Dir string

	mu sync.Mutex
}

func NewCSVSink(dir string) (*CSVSink, error) {
	if dir == "" {
		dir = "."
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, pfx.Err(err)
	}

	return &CSVSink{Dir: dir}, nil
}

func (s *CSVSink) Write(ctx context.Context, t Tables) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.appendTable(SummaryTable, &t.Summary); err != nil {
		return err
	}

	if len(t.Distribution) > 0 {
		if err := s.appendTable(DistributionTable, &t.Distribution); err != nil {
			return err
		}
	}

	if err := s.appendTable(GeometryTable, &t.Geometry); err != nil {
		return err
	}

	if len(t.Spatial) > 0 {
		if err := s.appendTable(SpatialTable, &t.Spatial); err != nil {
			return err
		}
	}

	return nil
}

// Path returns the CSV file that backs the named table.
func (s *CSVSink) Path(table string) string {
	return filepath.Join(s.Dir, table+".csv")
}

func (s *CSVSink) appendTable(table string, rows interface{}) error {
	path := s.Path(table)

	needsHeader := true
	if info, err := os.Stat(path); err == nil && info.Size() > 0 {
		needsHeader = false
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return pfx.Err(err)
	}

	if needsHeader {
		err = gocsv.Marshal(rows, f)
	} else {
		err = gocsv.MarshalWithoutHeaders(rows, f)
	}
	if err != nil {
		f.Close()
		return pfx.Err(err)
	}

	return pfx.Err(f.Close())
}
