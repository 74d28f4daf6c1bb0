package verification

import (
	"strings"
	"testing"
	"time"
)

func TestGenerateCode(t *testing.T) {
	code := GenerateCode()

	if !strings.HasPrefix(code, "VC-") {
		t.Errorf("GenerateCode() = %q, want VC- prefix", code)
	}
	// 16 UUID bytes in unpadded base32 is 26 characters.
	if len(code) != len("VC-")+26 {
		t.Errorf("GenerateCode() length = %d, want %d", len(code), len("VC-")+26)
	}
	if strings.Contains(code, "=") {
		t.Errorf("GenerateCode() = %q, want no padding", code)
	}

	if GenerateCode() == code {
		t.Error("two generated codes are identical")
	}
}

func TestNewCode(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	c := NewCode(SubjectUser, "user-1", "user-1", now)

	if c.SubjectType != SubjectUser || c.SubjectID != "user-1" {
		t.Errorf("NewCode subject = %s/%s, want user/user-1", c.SubjectType, c.SubjectID)
	}
	if want := now.Add(24 * time.Hour); !c.ExpiresAt.Equal(want) {
		t.Errorf("ExpiresAt = %v, want %v", c.ExpiresAt, want)
	}
	if c.IsExpired(now.Add(23 * time.Hour)) {
		t.Error("code expired before its TTL")
	}
	if !c.IsExpired(now.Add(25 * time.Hour)) {
		t.Error("code still valid after its TTL")
	}
	if c.IsConsumed() {
		t.Error("fresh code reports consumed")
	}
}

func TestContainsCode(t *testing.T) {
	code := "VC-ABC123"

	cases := []struct {
		name string
		body string
		want bool
	}{
		{"in bio text", `<div class="bio">My verification: VC-ABC123 o7</div>`, true},
		{"bare body", "VC-ABC123", true},
		{"absent", `<div class="bio">no code here</div>`, false},
		{"partial", "VC-ABC12", false},
		{"empty body", "", false},
	}

	for _, c := range cases {
		if got := ContainsCode(c.body, code); got != c.want {
			t.Errorf("%s: ContainsCode = %v, want %v", c.name, got, c.want)
		}
	}

	if ContainsCode("anything", "") {
		t.Error("empty code must never match")
	}
}
