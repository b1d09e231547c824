package constant

import "fmt"

type AppError struct {
	ErrorCode string
	Message   string
	Params    map[string]interface{}
}

func (e AppError) Code() string  { return e.ErrorCode }
func (e AppError) Error() string { return e.Message }

type BadRequestError struct{ AppError }

func NewBadRequestError(code, message string, params map[string]interface{}) *BadRequestError {
	return &BadRequestError{
		AppError: AppError{
			ErrorCode: code,
			Message:   message,
			Params:    params,
		},
	}
}

type NotFoundError struct{ AppError }

func NewNotFoundError(code, message string, params map[string]interface{}) *NotFoundError {
	return &NotFoundError{
		AppError: AppError{
			ErrorCode: code,
			Message:   message,
			Params:    params,
		},
	}
}

func INVALID_VITAL(name string, value float64) *BadRequestError {
	return NewBadRequestError("invalid_vital", fmt.Sprintf("Invalid value for %s: %v", name, value),
		map[string]interface{}{"Name": name})
}

func INVALID_SCHEDULE_STATUS(status string) *BadRequestError {
	return NewBadRequestError("invalid_schedule_status", fmt.Sprintf("Unknown schedule status: %s", status),
		map[string]interface{}{"Status": status})
}
