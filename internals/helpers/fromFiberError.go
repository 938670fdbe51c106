package helper

import "github.com/gofiber/fiber/v2"

// FromFiberError dipakai sebagai fiber.Config.ErrorHandler.
// *fiber.Error dan error apperror dipetakan ke shape ErrorResponse yang sama.
func FromFiberError(c *fiber.Ctx, err error) error {
	if fe, ok := err.(*fiber.Error); ok {
		return JsonError(c, fe.Code, fe.Message)
	}
	return JsonAppError(c, err)
}
