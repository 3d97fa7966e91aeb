package users

import (
	"context"
	"errors"
	"testing"
	"time"

	json "github.com/goccy/go-json"

	"github.com/localnerve/scenedir/internal/store"
	"github.com/localnerve/scenedir/tests/helpers"
)

func newTestService(t *testing.T) (*Service, *helpers.FakeStore) {
	t.Helper()
	fs := helpers.NewFakeStore()
	t.Cleanup(fs.Close)
	client := store.NewClient(fs.URL(), 5*time.Second)
	return NewService(client, nil), fs
}

func TestListSortsByName(t *testing.T) {
	svc, fs := newTestService(t)
	fs.SetDocument("users", helpers.UsersDoc)

	accounts := svc.List(context.Background(), "tok")
	if len(accounts) != 2 {
		t.Fatalf("Expected 2 accounts, got %d", len(accounts))
	}
	if accounts[0].Name != "Ada" || accounts[1].Name != "Sam" {
		t.Errorf("Expected name order Ada, Sam; got %s, %s", accounts[0].Name, accounts[1].Name)
	}
	if accounts[0].UID != "uid-admin" {
		t.Errorf("UID not back-filled from key: %q", accounts[0].UID)
	}
}

func TestListDegradesToEmpty(t *testing.T) {
	svc, fs := newTestService(t)
	fs.FailAll(true)

	accounts := svc.List(context.Background(), "tok")
	if accounts == nil || len(accounts) != 0 {
		t.Errorf("Expected empty non-nil slice, got %v", accounts)
	}
}

func TestRoleCounts(t *testing.T) {
	svc, fs := newTestService(t)
	fs.SetDocument("users", `{
	  "u1": {"name": "A", "role": "Admin"},
	  "u2": {"name": "B", "role": "admin"},
	  "u3": {"name": "C", "role": "STAFF"},
	  "u4": {"name": "D", "role": "visitor"},
	  "u5": {"name": "E"}
	}`)

	admins, staff := svc.RoleCounts(context.Background(), "tok")
	if admins != 2 {
		t.Errorf("Expected 2 admins, got %d", admins)
	}
	if staff != 1 {
		t.Errorf("Expected 1 staff, got %d", staff)
	}
}

func TestEditProfile(t *testing.T) {
	svc, fs := newTestService(t)

	ok, err := svc.EditProfile(context.Background(), "tok", "uid-1", " Ada ", "555-1234", " ada@example.com ")
	if err != nil || !ok {
		t.Fatalf("Expected success, got ok=%v err=%v", ok, err)
	}

	req := fs.LastRequest()
	if req == nil || req.Method != "PATCH" || req.Path != "users/uid-1" {
		t.Fatalf("Unexpected request: %+v", req)
	}

	var fields map[string]string
	if err := json.Unmarshal([]byte(req.Body), &fields); err != nil {
		t.Fatalf("Patch body not JSON: %v", err)
	}
	if len(fields) != 3 {
		t.Errorf("Patch must carry exactly name, phone, email; got %v", fields)
	}
	if fields["name"] != "Ada" || fields["email"] != "ada@example.com" {
		t.Errorf("Fields not trimmed: %v", fields)
	}
}

func TestEditProfileInvalidEmail(t *testing.T) {
	svc, fs := newTestService(t)

	_, err := svc.EditProfile(context.Background(), "tok", "uid-1", "Ada", "", "not-an-email")
	if !errors.Is(err, ErrInvalidEmail) {
		t.Errorf("Expected ErrInvalidEmail, got %v", err)
	}
	if len(fs.Requests()) != 0 {
		t.Error("Invalid email must not reach the store")
	}
}

func TestEditProfileUpstreamFailure(t *testing.T) {
	svc, fs := newTestService(t)
	fs.FailAll(true)

	ok, err := svc.EditProfile(context.Background(), "tok", "uid-1", "Ada", "", "ada@example.com")
	if err != nil {
		t.Fatalf("Upstream failure must not surface as error, got %v", err)
	}
	if ok {
		t.Error("Expected ok=false on upstream failure")
	}
}

func TestDeleteSelfRefused(t *testing.T) {
	svc, fs := newTestService(t)
	fs.SetDocument("users", helpers.UsersDoc)

	err := svc.Delete(context.Background(), "tok", "uid-admin", "uid-admin")
	if !errors.Is(err, ErrSelfDelete) {
		t.Errorf("Expected ErrSelfDelete, got %v", err)
	}
}

func TestDeleteLastAdminRefused(t *testing.T) {
	svc, fs := newTestService(t)
	fs.SetDocument("users", helpers.UsersDoc)
	fs.SetDocument("users/uid-admin", `{"name": "Ada", "role": "Admin"}`)

	err := svc.Delete(context.Background(), "tok", "uid-staff", "uid-admin")
	if !errors.Is(err, ErrLastAdmin) {
		t.Errorf("Expected ErrLastAdmin, got %v", err)
	}
}

func TestDeleteAdminWithAnotherRemaining(t *testing.T) {
	svc, fs := newTestService(t)
	fs.SetDocument("users", `{
	  "uid-a1": {"name": "A1", "role": "Admin"},
	  "uid-a2": {"name": "A2", "role": "Admin"}
	}`)
	fs.SetDocument("users/uid-a2", `{"name": "A2", "role": "Admin"}`)

	if err := svc.Delete(context.Background(), "tok", "uid-a1", "uid-a2"); err != nil {
		t.Fatalf("Expected success, got %v", err)
	}

	req := fs.LastRequest()
	if req == nil || req.Method != "DELETE" || req.Path != "users/uid-a2" {
		t.Errorf("Expected DELETE users/uid-a2, got %+v", req)
	}
}

func TestDeleteStaff(t *testing.T) {
	svc, fs := newTestService(t)
	fs.SetDocument("users/uid-staff", `{"name": "Sam", "role": "Staff"}`)

	if err := svc.Delete(context.Background(), "tok", "uid-admin", "uid-staff"); err != nil {
		t.Fatalf("Expected success, got %v", err)
	}
}

func TestDeleteMissingAccount(t *testing.T) {
	svc, _ := newTestService(t)

	err := svc.Delete(context.Background(), "tok", "uid-admin", "uid-ghost")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}
