package plan

// Candidate column names per logical role, ordered by preference. These are
// process-wide configuration; nothing mutates them after init.
var (
	ProductNameCandidates  = []string{"product_name", "name", "title", "product_title", "product"}
	OrderTotalCandidates   = []string{"total_amount", "total", "amount", "order_total"}
	ReviewRatingCandidates = []string{"rating", "stars", "score"}
	OrderIDCandidates      = []string{"order_id", "id"}
	ProductIDCandidates    = []string{"product_id", "id"}
	CustomerIDCandidates   = []string{"customer_id", "id"}
	QuantityCandidates     = []string{"quantity", "qty"}
	SubtotalCandidates     = []string{"subtotal", "line_total", "amount"}
)

// Resolve returns the first candidate that occurs in columns, compared
// case-sensitively against the names the database reported. The second
// return value is false when no candidate matches; absence is an expected
// outcome, never an error.
func Resolve(columns, candidates []string) (string, bool) {
	for _, candidate := range candidates {
		for _, column := range columns {
			if column == candidate {
				return candidate, true
			}
		}
	}
	return "", false
}

// resolveOr returns the first matching candidate, or fallback if none match
func resolveOr(columns, candidates []string, fallback string) string {
	if name, ok := Resolve(columns, candidates); ok {
		return name
	}
	return fallback
}
