package query

import (
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestFormatTable(t *testing.T) {
	t.Run("PaddingAndSeparators", func(t *testing.T) {
		result := &Result{
			Columns: []string{"customer_id", "name"},
			Rows: [][]any{
				{"CUST0001", "James Smith"},
				{"CUST0002", "Jo"},
			},
			Count: 2,
		}

		var sb strings.Builder
		assert.NoError(t, FormatTable(result, &sb))

		expected := strings.Join([]string{
			"customer_id | name       ",
			"------------+------------",
			"CUST0001    | James Smith",
			"CUST0002    | Jo         ",
			"",
			"2 rows returned.",
			"",
		}, "\n")
		assert.Equal(t, expected, sb.String())
	})

	t.Run("WideValueStretchesColumn", func(t *testing.T) {
		result := &Result{
			Columns: []string{"id"},
			Rows:    [][]any{{"a-rather-long-identifier"}},
			Count:   1,
		}

		var sb strings.Builder
		assert.NoError(t, FormatTable(result, &sb))

		lines := strings.Split(sb.String(), "\n")
		assert.Equal(t, "id                      ", lines[0])
		assert.Equal(t, strings.Repeat("-", 24), lines[1])
	})

	t.Run("NullRendersEmpty", func(t *testing.T) {
		result := &Result{
			Columns: []string{"rating"},
			Rows:    [][]any{{nil}},
			Count:   1,
		}

		var sb strings.Builder
		assert.NoError(t, FormatTable(result, &sb))
		assert.Contains(t, sb.String(), "rating\n------\n      \n")
	})

	t.Run("NumericValues", func(t *testing.T) {
		result := &Result{
			Columns: []string{"quantity", "subtotal"},
			Rows:    [][]any{{int64(3), 59.97}},
			Count:   1,
		}

		var sb strings.Builder
		assert.NoError(t, FormatTable(result, &sb))
		assert.Contains(t, sb.String(), "3        | 59.97")
		assert.Contains(t, sb.String(), "1 rows returned.")
	})
}
