// service.go
//
// A scalable, high performance scene directory and analytics service
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of scenedir.
// scenedir is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// scenedir is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with scenedir.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

// Package users maintains the account directory stored under users/{uid}.
package users

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/mail"
	"sort"
	"strings"
	"time"

	json "github.com/goccy/go-json"

	"github.com/localnerve/scenedir/internal/store"
)

const (
	RoleAdmin = "Admin"
	RoleStaff = "Staff"
)

var (
	// ErrInvalidEmail rejects a profile edit with a malformed address.
	ErrInvalidEmail = errors.New("invalid email address")

	// ErrSelfDelete rejects deleting the account that is performing the delete.
	ErrSelfDelete = errors.New("cannot delete your own account")

	// ErrLastAdmin rejects deleting the only remaining admin account.
	ErrLastAdmin = errors.New("cannot delete the last admin account")

	// ErrNotFound marks a uid with no account document.
	ErrNotFound = errors.New("account not found")
)

const timestampLayout = "2006-01-02T15:04:05Z"

// Account is a directory entry under users/{uid}.
type Account struct {
	UID       string `json:"uid,omitempty"`
	Name      string `json:"name,omitempty"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Role      string `json:"role,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
}

// profilePatch carries exactly the editable profile fields. Fields stay
// present even when blank so a cleared phone number actually clears.
type profilePatch struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

// Service manages the account directory.
type Service struct {
	store *store.Client
	auth  *store.AuthClient
}

// NewService creates a users service.
func NewService(c *store.Client, a *store.AuthClient) *Service {
	return &Service{store: c, auth: a}
}

// Get fetches the account document for uid.
func (s *Service) Get(ctx context.Context, token, uid string) (*Account, error) {
	raw, err := s.store.Get(ctx, token, "users/"+uid)
	if err != nil {
		return nil, err
	}
	if store.IsNull(raw) {
		return nil, ErrNotFound
	}
	var acct Account
	if err := json.Unmarshal(raw, &acct); err != nil {
		return nil, fmt.Errorf("malformed account document for %s: %w", uid, err)
	}
	acct.UID = uid
	return &acct, nil
}

// EditProfile merges name, phone and email into users/{uid}. The email must
// parse as an address. Upstream failure reports false without an error.
func (s *Service) EditProfile(ctx context.Context, token, uid, name, phone, email string) (bool, error) {
	email = strings.TrimSpace(email)
	if _, err := mail.ParseAddress(email); err != nil {
		return false, ErrInvalidEmail
	}

	patch := profilePatch{
		Name:  strings.TrimSpace(name),
		Phone: strings.TrimSpace(phone),
		Email: email,
	}
	if err := s.store.Patch(ctx, token, "users/"+uid, patch); err != nil {
		log.Printf("profile edit failed for %s: %v", uid, err)
		return false, nil
	}
	return true, nil
}

// List returns every account in the directory, sorted by name.
// Upstream failure degrades to an empty list.
func (s *Service) List(ctx context.Context, token string) []Account {
	raw, err := s.store.Get(ctx, token, "users")
	if err != nil {
		log.Printf("account list degraded to empty: %v", err)
		return []Account{}
	}
	accounts := parseDirectory(raw)
	sort.Slice(accounts, func(i, j int) bool {
		return accounts[i].Name < accounts[j].Name
	})
	return accounts
}

// RoleCounts tallies admin and staff accounts. Role matching is
// case-insensitive; unknown roles count toward neither bucket.
func (s *Service) RoleCounts(ctx context.Context, token string) (admins, staff int) {
	for _, acct := range s.List(ctx, token) {
		switch {
		case strings.EqualFold(acct.Role, RoleAdmin):
			admins++
		case strings.EqualFold(acct.Role, RoleStaff):
			staff++
		}
	}
	return admins, staff
}

// Create registers the account with the identity provider, then writes its
// directory document. The identity step is authoritative, a directory write
// failure is logged but the account still exists.
func (s *Service) Create(ctx context.Context, token, email, password, name, role string) (*Account, error) {
	if role == "" {
		role = RoleStaff
	}
	if !strings.EqualFold(role, RoleAdmin) && !strings.EqualFold(role, RoleStaff) {
		return nil, fmt.Errorf("unknown role %q", role)
	}

	creds, err := s.auth.SignUp(ctx, email, password)
	if err != nil {
		return nil, err
	}

	acct := Account{
		UID:       creds.UID,
		Name:      strings.TrimSpace(name),
		Email:     creds.Email,
		Role:      canonicalRole(role),
		CreatedAt: time.Now().UTC().Format(timestampLayout),
	}
	doc := acct
	doc.UID = "" // uid is the path, not a field
	if err := s.store.Put(ctx, token, "users/"+creds.UID, doc); err != nil {
		log.Printf("directory write failed for new account %s: %v", creds.UID, err)
	}
	return &acct, nil
}

// Delete removes an account from the directory. Self-deletion is refused, as
// is deleting the last remaining admin.
func (s *Service) Delete(ctx context.Context, token, currentUID, targetUID string) error {
	if targetUID == currentUID {
		return ErrSelfDelete
	}

	target, err := s.Get(ctx, token, targetUID)
	if err != nil {
		return err
	}
	if strings.EqualFold(target.Role, RoleAdmin) {
		admins, _ := s.RoleCounts(ctx, token)
		if admins <= 1 {
			return ErrLastAdmin
		}
	}

	return s.store.Delete(ctx, token, "users/"+targetUID)
}

func parseDirectory(raw []byte) []Account {
	accounts := []Account{}
	if store.IsNull(raw) {
		return accounts
	}

	var root map[string]json.RawMessage
	if err := json.Unmarshal(raw, &root); err != nil {
		log.Printf("malformed account directory: %v", err)
		return accounts
	}
	for uid, doc := range root {
		var acct Account
		if err := json.Unmarshal(doc, &acct); err != nil {
			log.Printf("skipping malformed account %s: %v", uid, err)
			continue
		}
		acct.UID = uid
		accounts = append(accounts, acct)
	}
	return accounts
}

func canonicalRole(role string) string {
	if strings.EqualFold(role, RoleAdmin) {
		return RoleAdmin
	}
	return RoleStaff
}
