package filters

import "testing"

func TestParamsIntOr(t *testing.T) {
	p := Params{
		"Int":     42,
		"Int32":   int32(7),
		"Int64":   int64(9),
		"Real":    float64(3.9),
		"NotANum": "12",
	}
	tests := []struct {
		name     string
		params   Params
		key      string
		fallback int
		want     int
	}{
		{"plain int", p, "Int", 0, 42},
		{"int32", p, "Int32", 0, 7},
		{"int64", p, "Int64", 0, 9},
		{"real truncates", p, "Real", 0, 3},
		{"wrong type falls back", p, "NotANum", 5, 5},
		{"missing key falls back", p, "Absent", 1728, 1728},
		{"nil params fall back", nil, "Anything", 99, 99},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.params.intOr(tt.key, tt.fallback); got != tt.want {
				t.Errorf("intOr(%q, %d) = %d, want %d", tt.key, tt.fallback, got, tt.want)
			}
		})
	}
}

func TestParamsBoolOr(t *testing.T) {
	p := Params{"On": true, "Off": false, "NotABool": "true"}
	tests := []struct {
		name     string
		params   Params
		key      string
		fallback bool
		want     bool
	}{
		{"true value", p, "On", false, true},
		{"false value beats fallback", p, "Off", true, false},
		{"wrong type falls back", p, "NotABool", false, false},
		{"missing key falls back", p, "Absent", true, true},
		{"nil params fall back", nil, "Anything", false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.params.boolOr(tt.key, tt.fallback); got != tt.want {
				t.Errorf("boolOr(%q, %v) = %v, want %v", tt.key, tt.fallback, got, tt.want)
			}
		})
	}
}
