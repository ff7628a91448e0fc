package leave

import "errors"

var (
	ErrLeaveRequestNotFound = errors.New("leave request not found")
	ErrAlreadyDecided       = errors.New("request has already been approved or rejected")
	ErrInvalidRange         = errors.New("invalid leave range")
	ErrInvalidDate          = errors.New("invalid date, expected YYYY-MM-DD")
	ErrInvalidLeaveType     = errors.New("invalid leave type")
	ErrCommentRequired      = errors.New("a comment is required to reject a request")
	ErrNotRequestOwner      = errors.New("only the requester may edit this leave request")
)
