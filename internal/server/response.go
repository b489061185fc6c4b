// Package server holds the shared HTTP response envelope. Every handler in
// the API answers with one of these two shapes so clients can branch on the
// success flag alone.
package server

import (
	"github.com/gofiber/fiber/v2"
)

// Response is the success envelope
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// ErrorResponse is the failure envelope. Field is set only for validation
// failures that point at a single request field.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// OK writes a 200 success envelope
func OK(c *fiber.Ctx, message string, data interface{}) error {
	return c.Status(fiber.StatusOK).JSON(Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Created writes a 201 success envelope
func Created(c *fiber.Ctx, message string, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Fail writes a failure envelope with the given status and error code
func Fail(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(ErrorResponse{
		Success: false,
		Error:   code,
		Message: message,
	})
}

// FailField writes a validation failure envelope naming the offending field
func FailField(c *fiber.Ctx, status int, code, message, field string) error {
	return c.Status(status).JSON(ErrorResponse{
		Success: false,
		Error:   code,
		Message: message,
		Field:   field,
	})
}
