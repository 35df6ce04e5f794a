package service

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"scorebox/internal/modkit"
	"scorebox/internal/platform/store"
	"scorebox/internal/services/scoring/domain"
)

var anchor = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

// jsonNum builds the decoded form of a JSON number literal
func jsonNum(lit string) json.Number { return json.Number(lit) }

// fakeKV is an in-memory store.KV with scriptable failures
type fakeKV struct {
	data map[string]string

	getErr error
	setErr error

	sets     map[string]string
	setTTLs  map[string]time.Duration
	getCalls int
}

var _ store.KV = (*fakeKV)(nil)

func newFakeKV() *fakeKV {
	return &fakeKV{
		data:    map[string]string{},
		sets:    map[string]string{},
		setTTLs: map[string]time.Duration{},
	}
}

func (f *fakeKV) Get(ctx context.Context, key string) (string, bool, error) {
	f.getCalls++
	if f.getErr != nil {
		return "", false, f.getErr
	}
	v, ok := f.data[key]
	return v, ok, nil
}

func (f *fakeKV) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.data[key] = value
	f.sets[key] = value
	f.setTTLs[key] = ttl
	return nil
}

func (f *fakeKV) Delete(ctx context.Context, key string) error {
	delete(f.data, key)
	return nil
}

func (f *fakeKV) CacheGet(ctx context.Context, key string) (string, bool) {
	v, ok, err := f.Get(ctx, key)
	if err != nil {
		return "", false
	}
	return v, ok
}

func (f *fakeKV) CacheSet(ctx context.Context, key, value string, ttl time.Duration) {
	_ = f.Set(ctx, key, value, ttl)
}

func newTestService(kv store.KV) *Service {
	return New(modkit.Deps{KV: kv}, WithClock(func() time.Time { return anchor }))
}

func regularToken(account, login string) string {
	return sha512Hex(account + login + domain.Salt)
}

func adminToken(now time.Time) string {
	return sha512Hex(now.Format("2006010215") + domain.AdminSalt)
}

func signedBody(method string, args map[string]any) map[string]any {
	return map[string]any{
		"account":   "horns&hoofs",
		"login":     "h&f",
		"token":     regularToken("horns&hoofs", "h&f"),
		"method":    method,
		"arguments": args,
	}
}

func TestDispatchInvalidEnvelope(t *testing.T) {
	s := newTestService(newFakeKV())
	result, code, err := s.Dispatch(context.Background(), map[string]any{}, domain.Telemetry{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if code != http.StatusUnprocessableEntity {
		t.Fatalf("code = %d, want 422", code)
	}
	errs, ok := result.(map[string]string)
	if !ok || errs["login"] != "login is required" {
		t.Fatalf("result = %#v", result)
	}
}

func TestDispatchForbidden(t *testing.T) {
	s := newTestService(newFakeKV())
	body := signedBody("online_score", map[string]any{})
	body["token"] = "not-a-token"
	result, code, err := s.Dispatch(context.Background(), body, domain.Telemetry{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if code != http.StatusForbidden {
		t.Fatalf("code = %d, want 403", code)
	}
	if result != nil {
		t.Fatalf("forbidden result = %#v, want nil", result)
	}
}

func TestDispatchUnknownMethod(t *testing.T) {
	s := newTestService(newFakeKV())
	body := signedBody("online_scoring", map[string]any{})
	result, code, err := s.Dispatch(context.Background(), body, domain.Telemetry{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if code != http.StatusUnprocessableEntity {
		t.Fatalf("code = %d, want 422", code)
	}
	if result != "Unknown method: online_scoring" {
		t.Fatalf("result = %#v", result)
	}
}

func TestDispatchInvalidArguments(t *testing.T) {
	s := newTestService(newFakeKV())
	body := signedBody("online_score", map[string]any{"phone": "123"})
	result, code, err := s.Dispatch(context.Background(), body, domain.Telemetry{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if code != http.StatusUnprocessableEntity {
		t.Fatalf("code = %d, want 422", code)
	}
	errs, ok := result.(map[string]string)
	if !ok || errs["phone"] != "phone must be 11 digits long" {
		t.Fatalf("result = %#v", result)
	}
}

func TestDispatchEmptyTokenIsForbidden(t *testing.T) {
	s := newTestService(newFakeKV())
	body := signedBody("online_score", map[string]any{})
	body["token"] = ""
	_, code, err := s.Dispatch(context.Background(), body, domain.Telemetry{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if code != http.StatusForbidden {
		t.Fatalf("code = %d, want 403", code)
	}
}

func TestCheckAuthRegular(t *testing.T) {
	s := newTestService(nil)
	env := &domain.Envelope{
		Account: "horns&hoofs",
		Login:   "h&f",
		Token:   regularToken("horns&hoofs", "h&f"),
	}
	if !s.CheckAuth(env) {
		t.Fatalf("valid token rejected")
	}

	env.Token = regularToken("horns&hoofs", "other")
	if s.CheckAuth(env) {
		t.Fatalf("token for another login accepted")
	}
}

func TestCheckAuthAbsentAccount(t *testing.T) {
	// an absent account hashes as the empty string
	s := newTestService(nil)
	env := &domain.Envelope{
		Login: "h&f",
		Token: regularToken("", "h&f"),
	}
	if !s.CheckAuth(env) {
		t.Fatalf("empty-account token rejected")
	}
}

func TestCheckAuthAdminHourWindow(t *testing.T) {
	s := newTestService(nil)
	env := &domain.Envelope{
		Login: domain.AdminLogin,
		Token: adminToken(anchor),
	}
	if !s.CheckAuth(env) {
		t.Fatalf("current-hour admin token rejected")
	}

	// a token minted in the previous hour no longer verifies
	env.Token = adminToken(anchor.Add(-time.Hour))
	if s.CheckAuth(env) {
		t.Fatalf("stale admin token accepted")
	}

	// minutes within the hour do not matter
	late := New(modkit.Deps{}, WithClock(func() time.Time { return anchor.Add(45 * time.Minute) }))
	env.Token = adminToken(anchor)
	if !late.CheckAuth(env) {
		t.Fatalf("same-hour admin token rejected")
	}
}

func TestCheckAuthAdminIgnoresAccountSalt(t *testing.T) {
	// the admin digest is time based; a regular-style digest for the admin
	// login must not verify
	s := newTestService(nil)
	env := &domain.Envelope{
		Account: "acc",
		Login:   domain.AdminLogin,
		Token:   regularToken("acc", domain.AdminLogin),
	}
	if s.CheckAuth(env) {
		t.Fatalf("regular digest accepted for admin login")
	}
}
