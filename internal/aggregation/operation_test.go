package aggregation

import "testing"

func TestParseOperationSet(t *testing.T) {
	cases := []struct {
		input    string
		expected string
		wantErr  bool
	}{
		{"AVERAGE,MAX,MIN,SUM", "AVERAGE,MAX,MIN,SUM", false},
		{"sum", "SUM", false},
		{"max, min", "MAX,MIN", false},
		// Canonical order is restored regardless of input order
		{"SUM,AVERAGE", "AVERAGE,SUM", false},
		{"", "", false},
		{"AVERAGE,MEDIAN", "", true},
		{"bogus", "", true},
	}

	for _, tc := range cases {
		set, err := ParseOperationSet(tc.input)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseOperationSet(%q): expected error, got %v", tc.input, set)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseOperationSet(%q) failed: %v", tc.input, err)
			continue
		}
		if set.String() != tc.expected {
			t.Errorf("ParseOperationSet(%q): expected %q, got %q", tc.input, tc.expected, set.String())
		}
	}
}

func TestOperationSetHas(t *testing.T) {
	set := OperationSet(0).Add(OpAverage).Add(OpSum)

	if !set.Has(OpAverage) || !set.Has(OpSum) {
		t.Error("expected AVERAGE and SUM to be present")
	}
	if set.Has(OpMax) || set.Has(OpMin) {
		t.Error("expected MAX and MIN to be absent")
	}
	if set.IsEmpty() {
		t.Error("non-empty set reported as empty")
	}
	if !OperationSet(0).IsEmpty() {
		t.Error("empty set not reported as empty")
	}
}

func TestParseMode(t *testing.T) {
	if _, err := ParseMode("MONTHLY"); err != nil {
		t.Errorf("MONTHLY should parse: %v", err)
	}
	if _, err := ParseMode("date_range"); err != nil {
		t.Errorf("date_range should parse: %v", err)
	}
	if _, err := ParseMode("yearly"); err == nil {
		t.Error("yearly should not parse")
	}
}
