package fundwatch

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestEncodeChanges(t *testing.T) {
	report, err := newAnalysis(t).Changes(sep2024, oct2024, 0.5)
	if err != nil {
		t.Fatalf("Changes() error = %v", err)
	}
	var buf bytes.Buffer
	if err := EncodeChanges(&buf, report); err != nil {
		t.Fatalf("EncodeChanges() error = %v", err)
	}
	want := `{"fund":"F","from":"2024-09","to":"2024-10","security":"Alpha Ltd","id":"INE002A01018","status":"increased","fromWeight":5,"toWeight":5.5,"delta":0.5,"fromQuantity":100,"toQuantity":100,"quantityDelta":0}
{"fund":"F","from":"2024-09","to":"2024-10","security":"Gamma Ltd","status":"added","fromWeight":0,"toWeight":0.2,"delta":0.2,"fromQuantity":0,"toQuantity":100,"quantityDelta":100}
`
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("EncodeChanges() mismatch (-want +got):\n%s", diff)
	}
}
