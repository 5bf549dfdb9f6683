package pipeline

import (
	"strings"

	"github.com/de-tools/test-atlas/pkg/models/domain"
)

// Project applies a declarative column spec to a row collection. A nil or
// empty spec passes rows through unchanged. Otherwise each output row
// contains exactly the specified columns, in spec order, resolved by
// dotted-path lookup with the spec's default filling absent values.
func Project(rows []*domain.Row, specs []domain.ColumnSpec) []*domain.Row {
	if len(specs) == 0 {
		return rows
	}

	out := make([]*domain.Row, 0, len(rows))
	for _, row := range rows {
		projected := domain.NewRow()
		for _, spec := range specs {
			header := spec.Header
			if header == "" {
				header = spec.Key
			}
			v, ok := lookupPath(row, spec.Key)
			if !ok || v == nil {
				if spec.Default != "" {
					projected.Set(header, spec.Default)
				} else {
					projected.Set(header, "")
				}
				continue
			}
			projected.Set(header, v)
		}
		out = append(out, projected)
	}
	return out
}

// lookupPath resolves a dotted path against a row. The first segment is a
// row column; any remaining segments descend into nested mappings, which
// can occur before flattening resolves them.
func lookupPath(row *domain.Row, path string) (any, bool) {
	segments := strings.Split(path, ".")
	v, ok := row.Get(segments[0])
	if !ok {
		return nil, false
	}
	for _, seg := range segments[1:] {
		m, isMap := v.(map[string]any)
		if !isMap {
			return nil, false
		}
		v, ok = m[seg]
		if !ok {
			return nil, false
		}
	}
	return v, true
}
