package logger

import "testing"

func TestSanitizeKVsRedactsSensitiveKeys(t *testing.T) {
	out := sanitizeKVs([]interface{}{
		"password", "hunter2",
		"refresh_token", "abc",
		"project_code", "PRJ-1",
	})
	if len(out) != 6 {
		t.Fatalf("unexpected length: %d", len(out))
	}
	if out[1] != "[REDACTED]" || out[3] != "[REDACTED]" {
		t.Fatalf("expected redaction, got=%v", out)
	}
	if out[5] != "PRJ-1" {
		t.Fatalf("non-sensitive value changed: %v", out[5])
	}
}

func TestSanitizeKVsHashesUserIDs(t *testing.T) {
	out := sanitizeKVs([]interface{}{"user_id", "6f1c"})
	got, ok := out[1].(string)
	if !ok || len(got) != len("hash:")+12 {
		t.Fatalf("expected hashed value, got=%v", out[1])
	}
}

func TestSanitizeKVsKeepsDanglingKey(t *testing.T) {
	out := sanitizeKVs([]interface{}{"op", "x", "dangling"})
	if len(out) != 3 || out[2] != "dangling" {
		t.Fatalf("unexpected output: %v", out)
	}
}

func TestLooksLikeJWT(t *testing.T) {
	if !looksLikeJWT("eyJhbGciOiJIUzI1.eyJzdWIiOiIxMjM0.sig") {
		t.Fatalf("expected jwt detection")
	}
	if looksLikeJWT("PRJ-2024.001.x") {
		t.Fatalf("short segments should not be treated as jwt")
	}
}
