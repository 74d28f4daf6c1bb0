package validator

import (
	"strings"
	"testing"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestWithinLimit(t *testing.T) {
	cases := []struct {
		name  string
		input string
		max   int
		want  bool
	}{
		{"empty", "", 10, true},
		{"exactly at limit", strings.Repeat("a", 10), 10, true},
		{"one over limit", strings.Repeat("a", 11), 10, false},
		{"multi-byte counted as runes", strings.Repeat("ü", 10), 10, true},
		{"cover letter at cap", strings.Repeat("x", 5000), 5000, true},
		{"cover letter over cap", strings.Repeat("x", 5001), 5000, false},
	}
	for _, c := range cases {
		got := WithinLimit(c.input, c.max)
		if got != c.want {
			t.Errorf("%s: WithinLimit(len=%d, %d) = %v, want %v", c.name, len(c.input), c.max, got, c.want)
		}
	}
}

func TestSerializedSize(t *testing.T) {
	size, err := SerializedSize(map[string]string{"referral": "Org_Member"})
	if err != nil {
		t.Fatalf("SerializedSize returned error: %v", err)
	}
	want := len(`{"referral":"Org_Member"}`)
	if size != want {
		t.Errorf("SerializedSize = %d, want %d", size, want)
	}

	big := map[string]string{"blob": strings.Repeat("a", 11*1024)}
	size, err = SerializedSize(big)
	if err != nil {
		t.Fatalf("SerializedSize returned error: %v", err)
	}
	if size <= 10*1024 {
		t.Errorf("SerializedSize = %d, want > 10KiB", size)
	}
}

func TestIsValidRating(t *testing.T) {
	valid := []int{1, 2, 3, 4, 5}
	invalid := []int{0, -1, 6, 100}
	for _, score := range valid {
		if !IsValidRating(score) {
			t.Errorf("IsValidRating(%d) = false, want true", score)
		}
	}
	for _, score := range invalid {
		if IsValidRating(score) {
			t.Errorf("IsValidRating(%d) = true, want false", score)
		}
	}
}

func TestIsValidProgress(t *testing.T) {
	valid := []int{0, 1, 50, 99, 100}
	invalid := []int{-1, 101, 1000}
	for _, p := range valid {
		if !IsValidProgress(p) {
			t.Errorf("IsValidProgress(%d) = false, want true", p)
		}
	}
	for _, p := range invalid {
		if IsValidProgress(p) {
			t.Errorf("IsValidProgress(%d) = true, want false", p)
		}
	}
}

func TestIsValidUUID(t *testing.T) {
	valid := []string{
		"0188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b", // valid UUIDv7
		"0188D0F2-7B8C-7B4A-8A2B-6B8B8B8B8B8B", // valid UUIDv7 (uppercase)
	}
	invalid := []string{
		"123e4567-e89b-12d3-a456-426614174000", // not v7
		"0188d0f27b8c7b4a8a2b6b8b8b8b8b8b",     // missing dashes
		"g188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b", // invalid hex
		"",                                     // empty
	}
	for _, uuid := range valid {
		if !IsValidUUID(uuid) {
			t.Errorf("IsValidUUID(%q) = false, want true", uuid)
		}
	}
	for _, uuid := range invalid {
		if IsValidUUID(uuid) {
			t.Errorf("IsValidUUID(%q) = true, want false", uuid)
		}
	}
}

func TestIsNumeric(t *testing.T) {
	valid := []string{"123", "0", "9876543210"}
	invalid := []string{"abc", "123a", "", "-123"}
	for _, s := range valid {
		if !IsNumeric(s) {
			t.Errorf("IsNumeric(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if IsNumeric(s) {
			t.Errorf("IsNumeric(%q) = true, want false", s)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	valid := []string{"2023-01-01", "2000-12-31"}
	invalid := []string{"2023-13-01", "2023-01-32", "2023/01/01", "01-01-2023", ""}
	for _, s := range valid {
		_, ok := IsValidDate(s)
		if !ok {
			t.Errorf("IsValidDate(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		_, ok := IsValidDate(s)
		if ok {
			t.Errorf("IsValidDate(%q) = true, want false", s)
		}
	}
}

func TestIsValidHandle(t *testing.T) {
	valid := []string{"StarRunner", "star_runner-42", "abc"}
	invalid := []string{"ab", "has space", "handle!", strings.Repeat("a", 31), ""}
	for _, h := range valid {
		if !IsValidHandle(h) {
			t.Errorf("IsValidHandle(%q) = false, want true", h)
		}
	}
	for _, h := range invalid {
		if IsValidHandle(h) {
			t.Errorf("IsValidHandle(%q) = true, want false", h)
		}
	}
}

func TestIsValidOrgSID(t *testing.T) {
	valid := []string{"VERSE", "CREW42", "abc"}
	invalid := []string{"ab", "TOO-LONG-SID", "WITH SPACE", "UNDER_SCORE", ""}
	for _, sid := range valid {
		if !IsValidOrgSID(sid) {
			t.Errorf("IsValidOrgSID(%q) = false, want true", sid)
		}
	}
	for _, sid := range invalid {
		if IsValidOrgSID(sid) {
			t.Errorf("IsValidOrgSID(%q) = true, want false", sid)
		}
	}
}

func TestIsInSlice(t *testing.T) {
	slice := []string{"a", "b", "c"}
	if !IsInSlice("a", slice) {
		t.Errorf("IsInSlice('a') = false, want true")
	}
	if IsInSlice("d", slice) {
		t.Errorf("IsInSlice('d') = true, want false")
	}
}

func TestValidationErrors_Error(t *testing.T) {
	errs := ValidationErrors{
		{Field: "cover_letter", Message: "too long"},
		{Field: "availability", Message: "required"},
	}
	got := errs.Error()
	want := "cover_letter: too long; availability: required"
	if got != want {
		t.Errorf("ValidationErrors.Error() = %q, want %q", got, want)
	}
}

func TestValidationErrors_ToMap(t *testing.T) {
	errs := ValidationErrors{
		{Field: "cover_letter", Message: "too long"},
		{Field: "availability", Message: "required"},
	}
	got := errs.ToMap()
	want := map[string]string{"cover_letter": "too long", "availability": "required"}
	if len(got) != len(want) {
		t.Errorf("ValidationErrors.ToMap() length = %d, want %d", len(got), len(want))
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("ValidationErrors.ToMap()[%q] = %q, want %q", k, got[k], v)
		}
	}
}
