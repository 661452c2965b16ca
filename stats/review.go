package stats

import "context"

// VariantReviewer judges whether a gendered variant says something different from the
// default text, beyond the differences the word diff already accounts for.
type VariantReviewer interface {
	ReviewVariant(ctx context.Context, diff GenderDiff) (VariantVerdict, error)
}

type VariantVerdict struct {
	Substantive bool   `json:"substantive" jsonschema:"required,description=True when the variants differ in meaning and not only in gendered wording"`
	Reason      string `json:"reason" jsonschema:"required,description=One short sentence explaining the verdict"`
}
