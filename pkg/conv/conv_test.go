package conv

import (
	"reflect"
	"testing"
)

func TestToFloat64(t *testing.T) {
	tests := []struct {
		in   any
		want float64
		ok   bool
	}{
		{0.5, 0.5, true},
		{float32(2), 2, true},
		{3, 3, true},
		{int64(4), 4, true},
		{true, 1, true},
		{"1", 0, false},
		{nil, 0, false},
	}
	for _, tt := range tests {
		got, ok := ToFloat64(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ToFloat64(%v) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestSliceAnyToString(t *testing.T) {
	got := SliceAnyToString([]any{"a", 42, 1.0, map[string]any{}})
	if want := []string{"a", "42", "1"}; !reflect.DeepEqual(got, want) {
		t.Errorf("SliceAnyToString = %v, want %v", got, want)
	}
	if SliceAnyToString("a") != nil {
		t.Error("non-slice should return nil")
	}
}

func TestConfigGet(t *testing.T) {
	cfg := map[string]any{"name": "x", "n": 3, "f": 2.0, "bad": "y"}
	if got := ConfigGet(cfg, "name", ""); got != "x" {
		t.Errorf("ConfigGet(name) = %q", got)
	}
	if got := ConfigGet(cfg, "n", "d"); got != "d" {
		t.Errorf("ConfigGet type mismatch = %q, want default", got)
	}
	if got := ConfigGet[string](nil, "name", "d"); got != "d" {
		t.Errorf("ConfigGet(nil) = %q", got)
	}
	if got := ConfigGetInt64(cfg, "n", 0); got != 3 {
		t.Errorf("ConfigGetInt64(n) = %d", got)
	}
	if got := ConfigGetInt64(cfg, "f", 0); got != 2 {
		t.Errorf("ConfigGetInt64(f) = %d", got)
	}
	if got := ConfigGetInt64(cfg, "bad", 7); got != 7 {
		t.Errorf("ConfigGetInt64(bad) = %d", got)
	}
}

func TestConfigGetFloat64AndStrings(t *testing.T) {
	cfg := map[string]any{"ratio": 0.3, "n": 2, "one": "LAEF", "many": []any{"a", "b"}}
	if got := ConfigGetFloat64(cfg, "ratio", 1); got != 0.3 {
		t.Errorf("ConfigGetFloat64(ratio) = %v", got)
	}
	if got := ConfigGetFloat64(cfg, "n", 1); got != 2 {
		t.Errorf("ConfigGetFloat64(n) = %v", got)
	}
	if got := ConfigGetFloat64(cfg, "missing", 0.7); got != 0.7 {
		t.Errorf("ConfigGetFloat64(missing) = %v", got)
	}
	if got := ConfigGetStrings(cfg, "one"); !reflect.DeepEqual(got, []string{"LAEF"}) {
		t.Errorf("ConfigGetStrings(one) = %v", got)
	}
	if got := ConfigGetStrings(cfg, "many"); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("ConfigGetStrings(many) = %v", got)
	}
	if got := ConfigGetStrings(nil, "many"); got != nil {
		t.Errorf("ConfigGetStrings(nil) = %v", got)
	}
}
