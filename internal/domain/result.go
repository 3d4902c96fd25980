package domain

// FetchedAtLayout is the time layout of the ScrapeResult.FetchedAt token.
// Second precision keys distinct scrapes of the same target apart.
const FetchedAtLayout = "20060102_150405"

// Table is an ordered, fixed-schema collection of normalized rows. A table
// with zero rows is valid and distinct from no table at all: the column
// schema is carried by the Row type itself.
type Table struct {
	rows []Row
}

// NewTable builds a Table that takes ownership of rows.
func NewTable(rows []Row) Table { return Table{rows: rows} }

// Rows returns the rows in insertion order. Callers must treat the returned
// slice as read-only.
func (t Table) Rows() []Row { return t.rows }

// Len returns the number of rows.
func (t Table) Len() int { return len(t.rows) }

// Empty reports whether the table has zero rows.
func (t Table) Empty() bool { return len(t.rows) == 0 }

// TableBuilder accumulates normalized rows into a Table. The zero value is
// ready to use.
type TableBuilder struct {
	rows []Row
}

// Append adds one row to the table under construction.
func (b *TableBuilder) Append(r Row) { b.rows = append(b.rows, r) }

// Build finalizes the table. The builder must not be reused afterwards.
func (b *TableBuilder) Build() Table { return Table{rows: b.rows} }

// ScrapeResult bundles the normalized table with the metadata of the fetch
// that produced it. It is immutable once assembled: a method without a time
// filter leaves TimeFilter zero here, and storage backends substitute their
// sentinel at key-derivation time only.
type ScrapeResult struct {
	Table      Table
	Method     FetchMethod
	Subreddit  string
	TimeFilter TimeFilter
	FetchedAt  string
}
