package controllers

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/gofiber/fiber/v2"
	fiberutils "github.com/gofiber/fiber/v2/utils"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.uber.org/zap"

	"github.com/pllus/articles-server/dto"
	"github.com/pllus/articles-server/internal/repository"
	"github.com/pllus/articles-server/internal/services"
	"github.com/pllus/articles-server/utils"
)

const defaultTimeout = 5 * time.Second

// requestContext bounds store calls made on behalf of one request.
func requestContext(c *fiber.Ctx, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		d = defaultTimeout
	}
	return context.WithTimeout(c.UserContext(), d)
}

var validate = newValidator()

// newValidator reports fields by their json names.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}
	return v
}

// parseBody decodes the JSON body into out and enforces its validate tags.
// The first failing field becomes a 400.
func parseBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}
	err := validate.Struct(out)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}
	fe := verrs[0]
	switch fe.Tag() {
	case "required", "notblank":
		return fiber.NewError(fiber.StatusBadRequest, fe.Field()+" is required")
	}
	return fiber.NewError(fiber.StatusBadRequest, "invalid "+fe.Field())
}

func parseID(raw, field string) (bson.ObjectID, error) {
	if raw == "" {
		return bson.NilObjectID, fiber.NewError(fiber.StatusBadRequest, field+" is required")
	}
	id, err := utils.Oid(raw)
	if err != nil {
		return bson.NilObjectID, fiber.NewError(fiber.StatusBadRequest, "invalid "+field)
	}
	return id, nil
}

// storeError maps repository, service and deadline errors onto HTTP errors.
// Anything else is returned untouched and becomes a logged 500.
func storeError(err error, notFound string) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, notFound)
	case errors.Is(err, context.DeadlineExceeded), mongo.IsTimeout(err):
		return fiber.NewError(fiber.StatusGatewayTimeout, "request timed out")
	case errors.Is(err, services.ErrToggleConflict):
		return fiber.NewError(fiber.StatusConflict, "too many concurrent updates, please retry")
	}
	return err
}

// ErrorHandler renders every error as {message}. Internal errors are logged
// and never leaked.
func ErrorHandler(log *zap.SugaredLogger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return c.Status(fe.Code).JSON(dto.ErrorResponse{Message: fe.Message})
		}
		log.Errorw("request failed",
			"method", fiberutils.CopyString(c.Method()),
			"path", fiberutils.CopyString(c.Path()),
			"request_id", fiberutils.CopyString(c.GetRespHeader(fiber.HeaderXRequestID)),
			"error", err,
		)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Message: "internal server error"})
	}
}
