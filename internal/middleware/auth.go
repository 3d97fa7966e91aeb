// auth.go
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

package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"

	"github.com/localnerve/scenedir/internal/types"
)

// Session keys written at login and read by the handlers via Locals.
const (
	SessionUID     = "uid"
	SessionIDToken = "idToken"
	SessionRole    = "role"
	SessionEmail   = "email"
)

// RequireSession validates that the request carries a signed-in session
func RequireSession(store *session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return authorize(c, store, false, "data.authorization.user")
	}
}

// RequireAdmin validates that the request carries an admin session
func RequireAdmin(store *session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return authorize(c, store, true, "data.authorization.admin")
	}
}

// authorize performs the authorization check
func authorize(c *fiber.Ctx, store *session.Store, adminOnly bool, errorType string) error {
	sess, err := store.Get(c)
	if err != nil {
		return &types.CustomError{
			Code:    fiber.StatusForbidden,
			Message: "Session not found",
			Type:    errorType,
		}
	}

	token, _ := sess.Get(SessionIDToken).(string)
	if token == "" {
		return &types.CustomError{
			Code:    fiber.StatusForbidden,
			Message: "Not signed in",
			Type:    errorType,
		}
	}

	role, _ := sess.Get(SessionRole).(string)
	if adminOnly && !strings.EqualFold(role, "Admin") {
		return &types.CustomError{
			Code:    fiber.StatusForbidden,
			Message: "Admin role required",
			Type:    errorType,
		}
	}

	// Expose session identity to the handlers
	c.Locals(SessionIDToken, token)
	c.Locals(SessionRole, role)
	if uid, ok := sess.Get(SessionUID).(string); ok {
		c.Locals(SessionUID, uid)
	}
	if email, ok := sess.Get(SessionEmail).(string); ok {
		c.Locals(SessionEmail, email)
	}

	return c.Next()
}
