package dashboard

import "errors"

var ErrInvalidMonth = errors.New("month must use the YYYY-MM format")
