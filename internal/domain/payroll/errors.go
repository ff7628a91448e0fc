package payroll

import "errors"

var (
	ErrPayrollRecordNotFound   = errors.New("payroll record not found")
	ErrPayrollExists           = errors.New("payroll record already exists for this period")
	ErrInvalidTransition       = errors.New("payroll status can only advance pending -> processed -> paid")
	ErrInvalidPeriod           = errors.New("invalid payroll period, expected YYYY-MM")
	ErrNegativeAmount          = errors.New("payroll amounts must not be negative")
	ErrEmployeeHasNoBaseSalary = errors.New("employee has no base salary configured")
)
