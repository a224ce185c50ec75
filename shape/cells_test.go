package shape

import "testing"

func TestCellMeasurer(t *testing.T) {
	m := NewCellMeasurer(10)
	tests := []struct {
		name    string
		cluster string
		want    float64
	}{
		{"empty", "", 0},
		{"ascii letter", "a", 10},
		{"space", " ", 10},
		{"wide cjk", "宽", 20},
		{"combining mark attaches", "é", 10},
		{"emoji", "\U0001F600", 20},
		{"newline", "\n", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := m.Measure([]rune(tt.cluster)); got != tt.want {
				t.Errorf("Measure(%q) = %g, want %g", tt.cluster, got, tt.want)
			}
		})
	}
}

func TestCellMeasurerEastAsian(t *testing.T) {
	narrow := NewCellMeasurer(10)
	wide := NewCellMeasurerEastAsian(10)

	// U+00B1 is ambiguous-width: one cell normally, two in East Asian
	// locales.
	if got := narrow.Measure([]rune("±")); got != 10 {
		t.Errorf("narrow Measure(±) = %g, want 10", got)
	}
	if got := wide.Measure([]rune("±")); got != 20 {
		t.Errorf("east asian Measure(±) = %g, want 20", got)
	}
}
