package fundwatch

import (
	"encoding/json"
	"fmt"
	"io"
)

// EncodeChanges writes the records of a change report as JSON lines, one object per security.
//
// Fields always come in the same order so that the output stays diff-friendly:
// fund, from, to, security, id, category, status, then weights and quantities.
func EncodeChanges(w io.Writer, r *ChangeReport) error {
	for _, rec := range r.Records {
		var o jsonObjectWriter
		o.Append("fund", r.Fund).
			Append("from", r.From).
			Append("to", r.To).
			Append("security", rec.Security.Name()).
			Optional("id", rec.Security.ID()).
			Optional("category", rec.Security.Category()).
			Append("status", rec.Status.String()).
			Append("fromWeight", float64(rec.From)).
			Append("toWeight", float64(rec.To)).
			Append("delta", float64(rec.Delta())).
			Append("fromQuantity", json.Number(rec.FromQuantity.String())).
			Append("toQuantity", json.Number(rec.ToQuantity.String())).
			Append("quantityDelta", json.Number(rec.QuantityDelta().String()))
		line, err := o.MarshalJSON()
		if err != nil {
			return fmt.Errorf("cannot encode %q: %w", rec.Security.Name(), err)
		}
		if _, err := fmt.Fprintf(w, "%s\n", line); err != nil {
			return err
		}
	}
	return nil
}
