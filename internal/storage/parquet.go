// Package storage holds the persistence collaborators around the merge
// core: the parquet codec for materialized tables and the S3 object
// store they are kept in.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/compress"
	"github.com/apache/arrow-go/v18/parquet/file"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"

	"matchlake/internal/table"
)

const writeChunkSize = 64 * 1024

// EncodeParquet serializes a table to snappy-compressed parquet bytes.
// Every column is written nullable.
func EncodeParquet(t *table.Table) ([]byte, error) {
	mem := memory.NewGoAllocator()

	fields := make([]arrow.Field, t.NumCols())
	for i, c := range t.Columns() {
		fields[i] = arrow.Field{Name: c.Name(), Type: arrowType(c.Type()), Nullable: true}
	}
	schema := arrow.NewSchema(fields, nil)

	bldr := array.NewRecordBuilder(mem, schema)
	defer bldr.Release()
	for i, c := range t.Columns() {
		switch fb := bldr.Field(i).(type) {
		case *array.Int64Builder:
			for r := 0; r < c.Len(); r++ {
				if c.IsNull(r) {
					fb.AppendNull()
				} else {
					fb.Append(c.Int(r))
				}
			}
		case *array.Float64Builder:
			for r := 0; r < c.Len(); r++ {
				if c.IsNull(r) {
					fb.AppendNull()
				} else {
					fb.Append(c.Float(r))
				}
			}
		case *array.StringBuilder:
			for r := 0; r < c.Len(); r++ {
				if c.IsNull(r) {
					fb.AppendNull()
				} else {
					fb.Append(c.Str(r))
				}
			}
		}
	}

	rec := bldr.NewRecord()
	defer rec.Release()
	atbl := array.NewTableFromRecords(schema, []arrow.Record{rec})
	defer atbl.Release()

	var buf bytes.Buffer
	props := parquet.NewWriterProperties(parquet.WithCompression(compress.Codecs.Snappy))
	if err := pqarrow.WriteTable(atbl, &buf, writeChunkSize, props, pqarrow.DefaultWriterProps()); err != nil {
		return nil, fmt.Errorf("write parquet: %w", err)
	}
	return buf.Bytes(), nil
}

// DecodeParquet reads parquet bytes into a fully materialized table.
// Foreign column types are coerced into the engine's three primitives:
// smaller ints, unsigned ints, and booleans widen to INT64, float32
// widens to FLOAT64, and timestamps become RFC 3339 strings.
func DecodeParquet(ctx context.Context, data []byte) (*table.Table, error) {
	rdr, err := file.NewParquetReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open parquet: %w", err)
	}
	defer rdr.Close()

	fr, err := pqarrow.NewFileReader(rdr, pqarrow.ArrowReadProperties{BatchSize: writeChunkSize}, memory.NewGoAllocator())
	if err != nil {
		return nil, fmt.Errorf("open parquet as arrow: %w", err)
	}
	atbl, err := fr.ReadTable(ctx)
	if err != nil {
		return nil, fmt.Errorf("read parquet table: %w", err)
	}
	defer atbl.Release()

	cols := make([]*table.Column, int(atbl.NumCols()))
	for i := range cols {
		field := atbl.Schema().Field(i)
		typ, ok := tableType(field.Type)
		if !ok {
			return nil, fmt.Errorf("unsupported parquet column type %s for %q", field.Type, field.Name)
		}
		out := table.NewColumn(field.Name, typ)
		for _, chunk := range atbl.Column(i).Data().Chunks() {
			if err := appendArrow(out, chunk); err != nil {
				return nil, fmt.Errorf("column %q: %w", field.Name, err)
			}
		}
		cols[i] = out
	}
	return table.FromColumns(cols...)
}

func arrowType(t table.Type) arrow.DataType {
	switch t {
	case table.Int64:
		return arrow.PrimitiveTypes.Int64
	case table.Float64:
		return arrow.PrimitiveTypes.Float64
	default:
		return arrow.BinaryTypes.String
	}
}

func tableType(dt arrow.DataType) (table.Type, bool) {
	switch dt.ID() {
	case arrow.INT8, arrow.INT16, arrow.INT32, arrow.INT64,
		arrow.UINT8, arrow.UINT16, arrow.UINT32, arrow.UINT64,
		arrow.BOOL:
		return table.Int64, true
	case arrow.FLOAT32, arrow.FLOAT64:
		return table.Float64, true
	case arrow.STRING, arrow.LARGE_STRING, arrow.TIMESTAMP:
		return table.String, true
	}
	return 0, false
}

func appendArrow(out *table.Column, arr arrow.Array) error {
	switch a := arr.(type) {
	case *array.Int64:
		for i := 0; i < a.Len(); i++ {
			appendOrNull(out, a, i, func() { out.AppendInt(a.Value(i)) })
		}
	case *array.Int32:
		for i := 0; i < a.Len(); i++ {
			appendOrNull(out, a, i, func() { out.AppendInt(int64(a.Value(i))) })
		}
	case *array.Int16:
		for i := 0; i < a.Len(); i++ {
			appendOrNull(out, a, i, func() { out.AppendInt(int64(a.Value(i))) })
		}
	case *array.Int8:
		for i := 0; i < a.Len(); i++ {
			appendOrNull(out, a, i, func() { out.AppendInt(int64(a.Value(i))) })
		}
	case *array.Uint64:
		for i := 0; i < a.Len(); i++ {
			appendOrNull(out, a, i, func() { out.AppendInt(int64(a.Value(i))) })
		}
	case *array.Uint32:
		for i := 0; i < a.Len(); i++ {
			appendOrNull(out, a, i, func() { out.AppendInt(int64(a.Value(i))) })
		}
	case *array.Uint16:
		for i := 0; i < a.Len(); i++ {
			appendOrNull(out, a, i, func() { out.AppendInt(int64(a.Value(i))) })
		}
	case *array.Uint8:
		for i := 0; i < a.Len(); i++ {
			appendOrNull(out, a, i, func() { out.AppendInt(int64(a.Value(i))) })
		}
	case *array.Boolean:
		for i := 0; i < a.Len(); i++ {
			appendOrNull(out, a, i, func() {
				if a.Value(i) {
					out.AppendInt(1)
				} else {
					out.AppendInt(0)
				}
			})
		}
	case *array.Float64:
		for i := 0; i < a.Len(); i++ {
			appendOrNull(out, a, i, func() { out.AppendFloat(a.Value(i)) })
		}
	case *array.Float32:
		for i := 0; i < a.Len(); i++ {
			appendOrNull(out, a, i, func() { out.AppendFloat(float64(a.Value(i))) })
		}
	case *array.String:
		for i := 0; i < a.Len(); i++ {
			appendOrNull(out, a, i, func() { out.AppendStr(a.Value(i)) })
		}
	case *array.LargeString:
		for i := 0; i < a.Len(); i++ {
			appendOrNull(out, a, i, func() { out.AppendStr(a.Value(i)) })
		}
	case *array.Timestamp:
		unit := a.DataType().(*arrow.TimestampType).Unit
		for i := 0; i < a.Len(); i++ {
			appendOrNull(out, a, i, func() {
				out.AppendStr(a.Value(i).ToTime(unit).UTC().Format(time.RFC3339))
			})
		}
	default:
		return fmt.Errorf("unsupported arrow array %T", arr)
	}
	return nil
}

func appendOrNull(out *table.Column, arr arrow.Array, i int, append func()) {
	if arr.IsNull(i) {
		out.AppendNull()
		return
	}
	append()
}
