package storage

import (
	"bytes"

	"github.com/parquet-go/parquet-go"
	"github.com/rotisserie/eris"

	"github.com/trendlab/subreddit-trends/internal/domain"
)

// MarshalTable serializes a table to parquet bytes. Column names and order
// follow the Row struct tags.
func MarshalTable(t domain.Table) ([]byte, error) {
	var buf bytes.Buffer
	if err := parquet.Write[domain.Row](&buf, t.Rows()); err != nil {
		return nil, eris.Wrap(err, "storage: encode parquet")
	}
	return buf.Bytes(), nil
}

// UnmarshalTable reads parquet bytes produced by MarshalTable back into a
// table.
func UnmarshalTable(data []byte) (domain.Table, error) {
	rows, err := parquet.Read[domain.Row](bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return domain.Table{}, eris.Wrap(err, "storage: decode parquet")
	}
	return domain.NewTable(rows), nil
}

// ReadTableFile loads a parquet file written by the local backend.
func ReadTableFile(path string) (domain.Table, error) {
	rows, err := parquet.ReadFile[domain.Row](path)
	if err != nil {
		return domain.Table{}, eris.Wrapf(err, "storage: read %s", path)
	}
	return domain.NewTable(rows), nil
}
