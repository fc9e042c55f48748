package util

import "testing"

func TestSanitizeFileName(t *testing.T) {
	cases := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"report_handle", "fraud_analysis_0c9d.txt", "fraud_analysis_0c9d.txt", false},
		{"trims_whitespace", "  report.txt  ", "report.txt", false},
		{"traversal", "../etc/passwd", "", true},
		{"path_separator", "reports/a.txt", "", true},
		{"backslash", `reports\a.txt`, "", true},
		{"leading_dot", ".hidden", "", true},
		{"empty", "", "", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := SanitizeFileName(tc.input)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %q", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("SanitizeFileName: %v", err)
			}
			if got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}
