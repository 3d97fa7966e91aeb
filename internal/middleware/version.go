package middleware

import (
	"github.com/gofiber/fiber/v2"
)

// APIVersion is the current service API version, used as the default when a
// request carries no X-Api-Version header.
const APIVersion = "1.0.0"

// APIVersionKey is the Locals key the resolved version is stored under.
const APIVersionKey = "apiVersion"

// versionAliases maps shorthand versions to their canonical form.
var versionAliases = map[string]string{
	"1":   APIVersion,
	"1.0": APIVersion,
}

// VersionMiddleware resolves the X-Api-Version header, stores it in context
// and echoes the resolved version on the response.
func VersionMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		version := c.Get("X-Api-Version", APIVersion)
		if canonical, ok := versionAliases[version]; ok {
			version = canonical
		}

		c.Locals(APIVersionKey, version)
		c.Set("X-Api-Version", version)

		return c.Next()
	}
}
