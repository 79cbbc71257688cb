package utils

import "testing"

func TestSessionTokenRoundTrip(t *testing.T) {
	svc := NewJWTService("secret")

	token, err := svc.GenerateToken("sid-123")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	sid, err := svc.ExtractSessionID(token)
	if err != nil {
		t.Fatalf("ExtractSessionID: %v", err)
	}
	if sid != "sid-123" {
		t.Errorf("sid = %q", sid)
	}
}

func TestSessionTokenRejectsForeignSecret(t *testing.T) {
	token, _ := NewJWTService("one").GenerateToken("sid")
	if _, err := NewJWTService("two").ExtractSessionID(token); err == nil {
		t.Fatal("token signed with another secret must be rejected")
	}
	if _, err := NewJWTService("one").ExtractSessionID("garbage"); err == nil {
		t.Fatal("garbage must be rejected")
	}
}
