package handler

import (
	"net/url"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/silsila-idreesia/portal/listing"
)

// ListParams extracts list parameters from the request query string.
func ListParams(c *fiber.Ctx) listing.Params {
	values := url.Values{}
	for key, val := range c.Queries() {
		values.Set(key, val)
	}

	return listing.ParseValues(values)
}

// ParamID parses the :id route parameter.
func ParamID(c *fiber.Ctx) (uint64, error) {
	return strconv.ParseUint(c.Params("id"), 10, 64)
}
