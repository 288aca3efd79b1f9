package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/emsworks/employment-service/internal/api/dto"
	"github.com/emsworks/employment-service/internal/auth"
	"github.com/emsworks/employment-service/internal/domain"
	"github.com/emsworks/employment-service/internal/repository"
	"github.com/emsworks/employment-service/internal/service"
	apperrors "github.com/emsworks/employment-service/pkg/util/errorutil"
)

const actorKey = "service_actor"

// ActorResolver loads the employee record linked to an account.
type ActorResolver interface {
	ResolveActor(ctx context.Context, user *domain.User) (service.Actor, error)
}

// LoadActor resolves the authenticated principal into a service.Actor. It must run after AuthMiddleware.Handle.
func LoadActor(resolver ActorResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := auth.PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		actor, err := resolver.ResolveActor(c.UserContext(), principal.User)
		if err != nil {
			return err
		}
		c.Locals(actorKey, actor)
		return c.Next()
	}
}

func actorFrom(c *fiber.Ctx) (service.Actor, error) {
	actor, ok := c.Locals(actorKey).(service.Actor)
	if !ok || actor.User == nil {
		return service.Actor{}, apperrors.NewUnauthorized("authentication required")
	}
	return actor, nil
}

func parseBody(c *fiber.Ctx, dst any) error {
	if err := c.BodyParser(dst); err != nil {
		return apperrors.NewValidationError("invalid payload", map[string]any{"body": err.Error()})
	}
	return nil
}

// parsePage reads page (1-based) and page_size query parameters.
func parsePage(c *fiber.Ctx) repository.Page {
	page := parseInt(c.Query("page"), 1)
	size := parseInt(c.Query("page_size"), 20)
	if size > 100 {
		size = 100
	}
	return repository.Page{Limit: size, Offset: (page - 1) * size}
}

func parseInt(val string, def int) int {
	if val == "" {
		return def
	}
	parsed, err := strconv.Atoi(val)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}

func queryString(c *fiber.Ctx, key string) *string {
	val := strings.TrimSpace(c.Query(key))
	if val == "" {
		return nil
	}
	return &val
}

func queryInt(c *fiber.Ctx, key string) (*int, error) {
	val := strings.TrimSpace(c.Query(key))
	if val == "" {
		return nil, nil
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid query parameter", map[string]any{key: "must be an integer"})
	}
	return &parsed, nil
}

func queryBool(c *fiber.Ctx, key string) (*bool, error) {
	val := strings.TrimSpace(c.Query(key))
	if val == "" {
		return nil, nil
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid query parameter", map[string]any{key: "must be true or false"})
	}
	return &parsed, nil
}

func queryDate(c *fiber.Ctx, key string) (*time.Time, error) {
	return parseOptionalDate(key, c.Query(key))
}

type enum interface {
	~string
	Valid() bool
}

func queryEnum[T enum](c *fiber.Ctx, key string) (*T, error) {
	val := strings.TrimSpace(c.Query(key))
	if val == "" {
		return nil, nil
	}
	parsed := T(val)
	if !parsed.Valid() {
		return nil, apperrors.NewValidationError("invalid query parameter", map[string]any{key: "unknown value " + val})
	}
	return &parsed, nil
}

func parseOptionalDate(field, val string) (*time.Time, error) {
	if strings.TrimSpace(val) == "" {
		return nil, nil
	}
	parsed, err := domain.ParseDate(val)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid date", map[string]any{field: "must be YYYY-MM-DD"})
	}
	return &parsed, nil
}

func parseDate(field, val string) (time.Time, error) {
	parsed, err := parseOptionalDate(field, val)
	if err != nil {
		return time.Time{}, err
	}
	if parsed == nil {
		return time.Time{}, apperrors.NewValidationError("invalid date", map[string]any{field: "is required"})
	}
	return *parsed, nil
}

func listResponse(c *fiber.Ctx, data any, total int, page repository.Page) error {
	return c.JSON(fiber.Map{
		"data": data,
		"meta": dto.ListMeta{Total: total, Limit: page.Limit, Offset: page.Offset},
	})
}

func created(c *fiber.Ctx, data any) error {
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": data})
}

func respond(c *fiber.Ctx, data any) error {
	return c.JSON(fiber.Map{"data": data})
}
