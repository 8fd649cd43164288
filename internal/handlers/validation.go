package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	appErrors "github.com/charlesng35/codeshelf/pkg/errors"
	"github.com/charlesng35/codeshelf/pkg/response"
	appValidator "github.com/charlesng35/codeshelf/pkg/validator"
)

// bindAndValidate binds the JSON payload into dest and runs struct validation rules.
// When validation fails, an error response is automatically written and false is returned.
func bindAndValidate[T any](c *gin.Context, dest *T) bool {
	if err := c.ShouldBindJSON(dest); err != nil {
		response.Error(c, appErrors.NewBadRequest(formatBindError(err)))
		return false
	}

	if err := appValidator.ValidateStruct(dest); err != nil {
		response.Error(c, appErrors.NewBadRequest(formatValidationError(err)))
		return false
	}

	return true
}

func formatBindError(err error) string {
	if errors.Is(err, io.EOF) {
		return "request body is required"
	}
	msg := err.Error()
	if field, ok := strings.CutPrefix(msg, "json: unknown field "); ok {
		return fmt.Sprintf("unknown field %s", field)
	}
	if strings.HasPrefix(msg, "json: cannot unmarshal") {
		return "invalid field type in JSON payload"
	}
	return "invalid JSON payload"
}

func formatValidationError(err error) string {
	var ve appValidator.ValidationErrors
	if !errors.As(err, &ve) || len(ve) == 0 {
		return "invalid request payload"
	}
	return strings.Join(ve.Messages(), "; ")
}

// parseID reads a positive integer path parameter. On failure a 400 response is written.
func parseID(c *gin.Context, param string) (uint, bool) {
	raw := strings.TrimSpace(c.Param(param))
	id, err := parsePositiveID(raw)
	if err != nil {
		response.Error(c, appErrors.NewBadRequest(fmt.Sprintf("%s must be a positive integer", param)))
		return 0, false
	}
	return id, true
}

func parsePositiveID(raw string) (uint, error) {
	value, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, err
	}
	if value == 0 {
		return 0, errors.New("id must be positive")
	}
	return uint(value), nil
}

// parseIDList parses a comma separated list of positive ids. Empty entries are skipped.
func parseIDList(raw string) ([]uint, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ",")
	ids := make([]uint, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := parsePositiveID(part)
		if err != nil {
			return nil, fmt.Errorf("invalid id %q", part)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// requestContext returns the request context, or Background for handlers driven without one.
func requestContext(c *gin.Context) context.Context {
	if c == nil || c.Request == nil {
		return context.Background()
	}
	return c.Request.Context()
}
