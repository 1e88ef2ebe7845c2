package normalize

import "testing"

func TestLoginPayloadWrappedUnderData(t *testing.T) {
	raw := []byte(`{"data": {"token": "abc", "userId": 7, "userName": "sara", "role": "Admin"}}`)

	identity, token, ok := LoginPayload(raw, "sara")
	if !ok {
		t.Fatal("expected ok")
	}
	if token != "abc" {
		t.Errorf("expected token abc, got %q", token)
	}
	if identity.ID != 7 || identity.Username != "sara" || identity.Role != "Admin" {
		t.Errorf("unexpected identity: %+v", identity)
	}
}

func TestLoginPayloadTopLevelTokenWins(t *testing.T) {
	raw := []byte(`{"token": "outer", "data": {"token": "inner"}}`)
	_, token, ok := LoginPayload(raw, "x")
	if !ok || token != "outer" {
		t.Fatalf("expected top-level token outer, got %q ok=%v", token, ok)
	}
}

func TestLoginPayloadExplicitUserObject(t *testing.T) {
	raw := []byte(`{"token": "t1", "user": {"id": 12, "username": "mostafa", "role": "Staff"}}`)

	identity, _, ok := LoginPayload(raw, "ignored")
	if !ok {
		t.Fatal("expected ok")
	}
	if identity.ID != 12 || identity.Username != "mostafa" || identity.Role != "Staff" {
		t.Errorf("unexpected identity: %+v", identity)
	}
}

func TestLoginPayloadAssemblesIdentityFromFlatFields(t *testing.T) {
	raw := []byte(`{"token": "t2", "id": 4}`)

	identity, _, ok := LoginPayload(raw, "submitted-name")
	if !ok {
		t.Fatal("expected ok")
	}
	if identity.ID != 4 {
		t.Errorf("expected id 4, got %d", identity.ID)
	}
	if identity.Username != "submitted-name" {
		t.Errorf("expected submitted username fallback, got %q", identity.Username)
	}
	if identity.Role != DefaultRole {
		t.Errorf("expected default role, got %q", identity.Role)
	}
}

func TestLoginPayloadNoTokenAnywhere(t *testing.T) {
	for _, raw := range []string{`{}`, `{"data": {"userId": 1}}`, `{"token": null}`, `{"token": ""}`} {
		if _, _, ok := LoginPayload([]byte(raw), "sara"); ok {
			t.Errorf("raw %s: expected failure without token", raw)
		}
	}
}
