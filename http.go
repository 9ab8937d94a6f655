package onsocial

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-print"
)

// GuardMiddleware classifies every request against the route table and
// enforces the resulting policy before the handler runs.
type GuardMiddleware struct {
	auth   Authenticator
	table  *RouteTable
	guard  *Guard
	scheme string
	ctxKey string
	logger Logger
}

// NewGuardMiddleware wires the authenticator, route table, and guard
// into a single fiber handler.
func NewGuardMiddleware(auth Authenticator, table *RouteTable, guard *Guard, cfg Config) *GuardMiddleware {
	scheme := cfg.GetAuthScheme()
	if scheme == "" {
		scheme = "Bearer"
	}

	ctxKey := cfg.GetContextKey()
	if ctxKey == "" {
		ctxKey = ContextKey
	}

	return &GuardMiddleware{
		auth:   auth,
		table:  table,
		guard:  guard,
		scheme: scheme,
		ctxKey: ctxKey,
		logger: defLogger{},
	}
}

func (g *GuardMiddleware) WithLogger(l Logger) *GuardMiddleware {
	if l != nil {
		g.logger = l
	}
	return g
}

// Handler returns the fiber middleware. Policy failures never reach
// the route handlers; they are translated to protocol responses by the
// app error handler.
func (g *GuardMiddleware) Handler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		classification := g.table.Classify(c.Method(), c.Path())

		var claims AuthClaims

		raw, ok := g.bearerToken(c)
		if ok {
			validated, err := g.auth.SessionFromToken(raw)
			if err != nil {
				// Public routes still serve callers with broken tokens
				if classification.Policy != PolicyPublic {
					return err
				}
			} else {
				claims = validated
			}
		}

		resourceID := classification.Params["id"]

		if err := g.guard.Authorize(c.Context(), claims, classification, resourceID); err != nil {
			g.logger.Info(
				"request denied",
				"method", c.Method(),
				"path", c.Path(),
				"policy", classification.Policy.String(),
			)
			return err
		}

		if claims != nil {
			SetFiberClaims(c, g.ctxKey, claims)
		}

		return c.Next()
	}
}

func (g *GuardMiddleware) bearerToken(c *fiber.Ctx) (string, bool) {
	header := c.Get(fiber.HeaderAuthorization)
	if header == "" {
		return "", false
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], g.scheme) {
		return "", false
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}

	return token, true
}

// ErrorHandler translates error variants to protocol responses. It is
// the single place where domain errors become status codes.
func ErrorHandler(logger Logger) fiber.ErrorHandler {
	if logger == nil {
		logger = defLogger{}
	}

	return func(c *fiber.Ctx, err error) error {
		if fieldErrs, ok := validationErrors(err); ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"errors": fieldErrs,
			})
		}

		var richErr *errors.Error
		if !errors.As(err, &richErr) {
			if fe, ok := err.(*fiber.Error); ok {
				return c.Status(fe.Code).JSON(fiber.Map{
					"error": fe.Message,
				})
			}
			richErr = errors.Wrap(err, errors.CategoryInternal, "An unexpected server error occurred").
				WithCode(errors.CodeInternal)
		}

		status := statusFromCategory(richErr)

		if status >= fiber.StatusInternalServerError {
			logger.Error(
				"request failed",
				"error", richErr.Message,
				"category", richErr.Category,
				"details", print.MaybePrettyJSON(richErr.Metadata),
			)
		}

		body := fiber.Map{
			"error": richErr.Message,
		}
		if richErr.TextCode != "" {
			body["text_code"] = richErr.TextCode
		}

		return c.Status(status).JSON(body)
	}
}

func statusFromCategory(err *errors.Error) int {
	switch err.Category {
	case errors.CategoryAuth:
		return fiber.StatusUnauthorized
	case errors.CategoryAuthz:
		return fiber.StatusForbidden
	case errors.CategoryBadInput, errors.CategoryValidation:
		return fiber.StatusBadRequest
	case errors.CategoryConflict:
		return fiber.StatusConflict
	case errors.CategoryNotFound:
		return fiber.StatusNotFound
	default:
		if err.Code >= 400 {
			return err.Code
		}
		return fiber.StatusInternalServerError
	}
}

func validationErrors(err error) (map[string]string, bool) {
	var verrs validation.Errors
	if !errors.As(err, &verrs) {
		return nil, false
	}

	out := make(map[string]string, len(verrs))
	for field, ferr := range verrs {
		out[field] = ferr.Error()
	}
	return out, true
}
