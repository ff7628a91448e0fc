package employee

import (
	"io"

	"github.com/dayflow-hr/hrms-backend-go/internal/domain/user"
)

// UploadAvatarRequest is built by the handler from a multipart form.
type UploadAvatarRequest struct {
	UserID   string
	File     io.Reader
	Filename string
}

func (r *UploadAvatarRequest) Validate() error {
	if r.File == nil || r.Filename == "" {
		return ErrFileRequired
	}
	return nil
}

type Team struct {
	Members     []user.User
	Departments []user.DepartmentCount
}

type TeamResponse struct {
	Members     []user.TeamMemberResponse `json:"members"`
	Departments []user.DepartmentCount    `json:"departments"`
}

func NewTeamResponse(t Team) TeamResponse {
	return TeamResponse{
		Members:     user.NewTeamMemberResponses(t.Members),
		Departments: t.Departments,
	}
}
