package retell

import "testing"

func TestVerifyHMAC(t *testing.T) {
	payload := []byte(`{"event_type":"call_ended"}`)
	sig := Sign("secret", payload)

	if !VerifyHMAC("secret", payload, sig) {
		t.Fatal("valid signature rejected")
	}
	if VerifyHMAC("secret", payload, "deadbeef") {
		t.Fatal("bogus signature accepted")
	}
	if VerifyHMAC("other", payload, sig) {
		t.Fatal("signature accepted with wrong secret")
	}
	if VerifyHMAC("", payload, sig) {
		t.Fatal("empty secret must not verify")
	}
	if VerifyHMAC("secret", payload, "") {
		t.Fatal("empty signature must not verify")
	}
}
