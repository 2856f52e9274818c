package recipe

import "testing"

func TestParseSwitch(t *testing.T) {
	tests := []struct {
		in      string
		want    bool
		wantErr bool
	}{
		{"ON", true, false},
		{"on", true, false},
		{"OFF", false, false},
		{"True", true, false},
		{"false", false, false},
		{"yes", true, false},
		{"0", false, false},
		{" 1 ", true, false},
		{"maybe", false, true},
		{"", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseSwitch(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseSwitch(%q) expected error", tt.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseSwitch(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestSwitch(t *testing.T) {
	if Switch(true) != "ON" || Switch(false) != "OFF" {
		t.Error("unexpected Switch rendering")
	}
}

func TestOptions_With(t *testing.T) {
	base := DefaultOptions()

	got, err := base.With([]string{"unittest=OFF", "enable_compat_header=true"})
	if err != nil {
		t.Fatal(err)
	}
	if got.Unittest || !got.EnableCompatHeader {
		t.Errorf("With() = %+v", got)
	}
	if !base.Unittest {
		t.Error("With() mutated receiver")
	}

	for _, bad := range [][]string{{"unittest"}, {"unittest=maybe"}, {"shared=ON"}} {
		if _, err := base.With(bad); err == nil {
			t.Errorf("With(%v) expected error", bad)
		}
	}
}

func TestParseReference(t *testing.T) {
	ref, err := ParseReference("catch2/2.13.4")
	if err != nil {
		t.Fatal(err)
	}
	if ref.Name != "catch2" || ref.Version != "2.13.4" || ref.String() != "catch2/2.13.4" {
		t.Errorf("unexpected reference %+v", ref)
	}

	for _, bad := range []string{"", "catch2", "/1.0", "catch2/", "a/b/c"} {
		if _, err := ParseReference(bad); err == nil {
			t.Errorf("ParseReference(%q) expected error", bad)
		}
	}
}
