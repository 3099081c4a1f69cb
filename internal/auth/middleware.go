package auth

import (
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

const (
	// LocalsCaller is the fiber.Locals key holding the authenticated Caller.
	LocalsCaller = "caller"
	// LocalsUsername is the fiber.Locals key holding the caller's username for access logging.
	LocalsUsername = "username"
)

const bearerScheme = "Bearer "

// RequireCaller creates Fiber middleware that authenticates the bearer token
// of the request and stores the Caller in the request locals.
func RequireCaller(authService *Service) fiber.Handler {
	return func(c fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)

		token, ok := strings.CutPrefix(header, bearerScheme)
		if !ok || token == "" {
			log.Debug().Str("path", c.Path()).Msg("no bearer token found")
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
		}

		caller, err := authService.Authenticate(c.Context(), token)
		if err != nil {
			if errors.Is(err, ErrMalformedToken) || errors.Is(err, ErrInvalidToken) ||
				errors.Is(err, ErrTokenExpired) || errors.Is(err, ErrUserAccountDisabled) {
				log.Warn().Err(err).Str("ip", c.IP()).Msg("api token rejected")

				return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
			}

			log.Error().Err(err).Msg("failed to authenticate api token")

			return fiber.NewError(fiber.StatusInternalServerError, "Internal Server Error")
		}

		c.Locals(LocalsCaller, caller)
		c.Locals(LocalsUsername, caller.Username)

		return c.Next()
	}
}

// CallerFrom returns the Caller stored by RequireCaller.
func CallerFrom(c fiber.Ctx) (Caller, bool) {
	caller, ok := c.Locals(LocalsCaller).(Caller)
	return caller, ok
}
