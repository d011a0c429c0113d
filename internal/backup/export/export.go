// Package export writes a full database snapshot as an XML document,
// one element per table row with named column values.
package export

import (
	"context"
	"encoding/xml"
	"fmt"
	"iter"
	"os"
	"path/filepath"
	"time"

	"github.com/bookwormapp/bookworm-server/internal/errors"
	"github.com/bookwormapp/bookworm-server/internal/logger"
	"github.com/bookwormapp/bookworm-server/internal/store"
)

// Source is the subset of the store the exporter reads from.
type Source interface {
	DatabaseName() string
	Tables(ctx context.Context) ([]string, error)
	StreamRows(ctx context.Context, table string) iter.Seq2[*store.TableRow, error]
}

// Result summarizes a completed export.
type Result struct {
	Path     string
	Size     int64
	Tables   int
	Rows     int
	Duration time.Duration
}

type Exporter struct {
	logger *logger.Logger
}

func New(log *logger.Logger) *Exporter {
	return &Exporter{logger: log.With("component", "export")}
}

// Export streams every table of src into an XML file under dir. The file is
// written to a temporary name and renamed into place on success, so a failed
// export never leaves a partial file behind. The file name carries a
// timestamp: <database>-export-20060102-150405.xml.
func (e *Exporter) Export(ctx context.Context, src Source, dir string) (*Result, error) {
	start := time.Now()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Persistence("create export directory").WithCause(err)
	}

	name := fmt.Sprintf("%s-export-%s.xml", src.DatabaseName(), start.Format("20060102-150405"))
	path := filepath.Join(dir, name)

	tmp, err := os.CreateTemp(dir, name+".tmp-*")
	if err != nil {
		return nil, errors.Persistence("create export file").WithCause(err)
	}
	defer func() {
		tmp.Close()
		os.Remove(tmp.Name())
	}()

	result, err := e.write(ctx, src, tmp)
	if err != nil {
		return nil, err
	}

	if err := tmp.Close(); err != nil {
		return nil, errors.Persistence("flush export file").WithCause(err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return nil, errors.Persistence("finalize export file").WithCause(err)
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.Persistence("stat export file").WithCause(err)
	}

	result.Path = path
	result.Size = info.Size()
	result.Duration = time.Since(start)

	e.logger.Info("export complete",
		"path", result.Path,
		"tables", result.Tables,
		"rows", result.Rows,
		"bytes", result.Size,
		"duration", result.Duration)

	return result, nil
}

func (e *Exporter) write(ctx context.Context, src Source, f *os.File) (*Result, error) {
	enc := xml.NewEncoder(f)
	enc.Indent("", "  ")

	nameAttr := func(value string) []xml.Attr {
		return []xml.Attr{{Name: xml.Name{Local: "name"}, Value: value}}
	}

	dbStart := xml.StartElement{Name: xml.Name{Local: "database"}, Attr: nameAttr(src.DatabaseName())}
	if err := enc.EncodeToken(dbStart); err != nil {
		return nil, errors.Persistence("write export document").WithCause(err)
	}

	tables, err := src.Tables(ctx)
	if err != nil {
		return nil, err
	}

	result := &Result{}
	for _, table := range tables {
		tableStart := xml.StartElement{Name: xml.Name{Local: "table"}, Attr: nameAttr(table)}
		if err := enc.EncodeToken(tableStart); err != nil {
			return nil, errors.Persistence("write table element").WithCause(err)
		}

		e.logger.Debug("exporting table", "table", table)

		for row, err := range src.StreamRows(ctx, table) {
			if err != nil {
				return nil, err
			}
			if err := encodeRow(enc, row); err != nil {
				return nil, err
			}
			result.Rows++
		}

		if err := enc.EncodeToken(tableStart.End()); err != nil {
			return nil, errors.Persistence("write table element").WithCause(err)
		}
		result.Tables++
	}

	if err := enc.EncodeToken(dbStart.End()); err != nil {
		return nil, errors.Persistence("write export document").WithCause(err)
	}
	if err := enc.Flush(); err != nil {
		return nil, errors.Persistence("flush export document").WithCause(err)
	}

	return result, nil
}

func encodeRow(enc *xml.Encoder, row *store.TableRow) error {
	rowStart := xml.StartElement{Name: xml.Name{Local: "row"}}
	if err := enc.EncodeToken(rowStart); err != nil {
		return errors.Persistence("write row element").WithCause(err)
	}

	for i, column := range row.Columns {
		colStart := xml.StartElement{
			Name: xml.Name{Local: "col"},
			Attr: []xml.Attr{{Name: xml.Name{Local: "name"}, Value: column}},
		}
		if err := enc.EncodeToken(colStart); err != nil {
			return errors.Persistence("write column element").WithCause(err)
		}
		if err := enc.EncodeToken(xml.CharData(row.Values[i])); err != nil {
			return errors.Persistence("write column value").WithCause(err)
		}
		if err := enc.EncodeToken(colStart.End()); err != nil {
			return errors.Persistence("write column element").WithCause(err)
		}
	}

	if err := enc.EncodeToken(rowStart.End()); err != nil {
		return errors.Persistence("write row element").WithCause(err)
	}
	return nil
}
