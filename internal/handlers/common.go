// common.go
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

package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/localnerve/scenedir/internal/middleware"
)

// sessionToken returns the document store credential the auth middleware
// stashed for this request. Empty only on routes missing the middleware.
func sessionToken(c *fiber.Ctx) string {
	token, _ := c.Locals(middleware.SessionIDToken).(string)
	return token
}

// sessionUID returns the signed-in account's uid.
func sessionUID(c *fiber.Ctx) string {
	uid, _ := c.Locals(middleware.SessionUID).(string)
	return uid
}

// parseCount extracts a positive integer query parameter, falling back to
// def on absence or garbage.
func parseCount(c *fiber.Ctx, key string, def int) int {
	raw := c.Query(key)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return def
	}
	return n
}
