package schema

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
)

// FlattenValue converts a decoded Airtable field value into the TEXT
// representation stored in the applications table. Scalars become their
// string form; attachment lists, linked records and other composite values
// are stored as JSON so nothing from the remote record is lost.
func FlattenValue(value any) any {
	switch v := value.(type) {
	case nil:
		return nil
	case string:
		if v == "" {
			return nil
		}
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		// JSON numbers decode as float64; keep integers readable
		if v == float64(int64(v)) {
			return strconv.FormatInt(int64(v), 10)
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	case []any, map[string]any:
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(data)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// FlattenFields maps a remote record's fields onto database columns. When
// two questions resolve to the same column the first non-empty value wins,
// matching how duplicate form questions were merged historically. Fields are
// visited in sorted order so the winner does not depend on map iteration.
func FlattenFields(fields map[string]any) map[string]any {
	names := make([]string, 0, len(fields))
	for field := range fields {
		names = append(names, field)
	}
	sort.Strings(names)

	row := make(map[string]any, len(fields))
	for _, field := range names {
		value := fields[field]
		col := ColumnFor(field)
		flat := FlattenValue(value)
		if existing, ok := row[col]; ok && existing != nil {
			continue
		}
		if flat == nil {
			// keep the key so the column is still discovered
			if _, ok := row[col]; !ok {
				row[col] = nil
			}
			continue
		}
		row[col] = flat
	}
	return row
}
