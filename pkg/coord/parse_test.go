package coord

import "testing"

func TestParseModuleID(t *testing.T) {
	tests := []struct {
		in      string
		want    ModuleID
		wantErr bool
	}{
		{
			in:   "org.example/lib@1.0",
			want: ModuleID{Organisation: "org.example", Module: "lib", Revision: "1.0"},
		},
		{
			in:   "commons-lang/commons-lang@2.6",
			want: ModuleID{Organisation: "commons-lang", Module: "commons-lang", Revision: "2.6"},
		},
		{in: "org.example/lib", wantErr: true},     // no revision
		{in: "lib@1.0", wantErr: true},             // no organisation
		{in: "org/extra/lib@1.0", wantErr: true},   // slash in module
		{in: "org.example/lib@", wantErr: true},    // empty revision
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseModuleID(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseModuleID(%q) = %v, want error", tt.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseModuleID(%q) error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseModuleID(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseRoundTrip(t *testing.T) {
	mid := ModuleID{Organisation: "org.example", Module: "lib", Revision: "1.0"}
	got, err := ParseModuleID(mid.String())
	if err != nil {
		t.Fatal(err)
	}
	if got != mid {
		t.Errorf("round trip = %v, want %v", got, mid)
	}
}

func TestParseModuleIDRejectsUnsafeParts(t *testing.T) {
	for _, in := range []string{
		"org.example/lib@../2.0",
		"../escape/lib@1.0",
		"org.example/lib@1.0\x00",
	} {
		if _, err := ParseModuleID(in); err == nil {
			t.Errorf("ParseModuleID(%q) succeeded, want error", in)
		}
	}
}
