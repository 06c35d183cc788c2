package restorerevert_test

import (
	"strings"
	"testing"

	"github.com/arthur-debert/restorerevert/pkg/restorerevert"
)

func TestClassify(t *testing.T) {
	testCases := []struct {
		name     string
		expected string
		match    bool
	}{
		{"a.txt.backup.20180101", "a.txt", true},
		{"d.backup.20180202", "d", true},
		{"no-extension.backup.99999999", "no-extension", true},
		{"with space.backup.20200101", "with space", true},
		{"ümlaut.txt.backup.20200101", "ümlaut.txt", true},
		{"a.backup.12345678.backup.87654321", "a.backup.12345678", true},
		{".hidden.backup.20200101", ".hidden", true},
		{"c.txt.backup.1234567", "", false},
		{"c.txt.backup.123456789", "", false},
		{"c.txt.backup.2018010a", "", false},
		{"c.txt.backup.20180101.tmp", "", false},
		{"c.txt.BACKUP.20180101", "", false},
		{"c.txt-backup-20180101", "", false},
		{".backup.20180101", "", false},
		{"plain.txt", "", false},
		{"", "", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			base, ok := restorerevert.Classify(tc.name)
			if ok != tc.match {
				t.Fatalf("Classify(%q) matched = %v, expected %v", tc.name, ok, tc.match)
			}
			if base != tc.expected {
				t.Errorf("Classify(%q) = %q, expected %q", tc.name, base, tc.expected)
			}
		})
	}
}

func TestClassifyName_Date(t *testing.T) {
	m, ok := restorerevert.ClassifyName("report.pdf.backup.20131121")
	if !ok {
		t.Fatal("Expected report.pdf.backup.20131121 to match")
	}
	if m.Base != "report.pdf" || m.Date != "20131121" {
		t.Errorf("Unexpected match %+v", m)
	}
}

// Every name built as base + ".backup." + 8 digits classifies back to base,
// and changing the digit count breaks the match.
func TestClassify_Totality(t *testing.T) {
	bases := []string{"a", "a.b", "x.backup.1", "-", "名前", "a.backup.12345678"}
	digits := "0123456789"

	for _, base := range bases {
		for n := 0; n <= 10; n++ {
			suffix := strings.Repeat(digits[n%10:n%10+1], n)
			name := base + ".backup." + suffix

			got, ok := restorerevert.Classify(name)
			switch {
			case n == 8 && !ok:
				t.Errorf("Expected %q to match", name)
			case n == 8 && got != base:
				t.Errorf("Classify(%q) = %q, expected %q", name, got, base)
			case n != 8 && ok:
				t.Errorf("Expected %q not to match", name)
			}
		}
	}
}
