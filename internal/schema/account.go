package schema

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"interview-portal/internal/model"
)

type LoginForm struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

func (f *LoginForm) Validate() error {
	return wrap(validation.ValidateStruct(f,
		validation.Field(&f.Email,
			validation.Required.Error(ErrEmailFormatMsg),
			is.EmailFormat.Error(ErrEmailFormatMsg),
		),
		validation.Field(&f.Password, validation.Required.Error("Password is required")),
	))
}

type RegisterForm struct {
	Name           string     `json:"name" form:"name"`
	Email          string     `json:"email" form:"email"`
	Password       string     `json:"password" form:"password"`
	Role           model.Role `json:"role" form:"role"`
	OrganizationID string     `json:"organization_id,omitempty" form:"organization_id"`
}

func (f *RegisterForm) Validate() error {
	return wrap(validation.ValidateStruct(f,
		validation.Field(&f.Name,
			validation.Required.Error("Name must be at least 2 characters"),
			validation.RuneLength(2, 0).Error("Name must be at least 2 characters"),
		),
		validation.Field(&f.Email,
			validation.Required.Error(ErrEmailFormatMsg),
			is.EmailFormat.Error(ErrEmailFormatMsg),
		),
		validation.Field(&f.Password,
			validation.Required.Error("Password is required"),
			validation.RuneLength(8, 0).Error("Password must be at least 8 characters"),
		),
		validation.Field(&f.Role,
			validation.Required.Error("Please select a role"),
			validation.In(model.RoleAdmin, model.RoleInterviewer, model.RoleInterviewee).Error("Please select a valid role"),
		),
	))
}

// RecordForm creates one of the flat directory records: organization,
// interviewer, interviewee or organization admin.
type RecordForm struct {
	Name           string `json:"name" form:"name"`
	Email          string `json:"email" form:"email"`
	OrganizationID string `json:"organization_id,omitempty" form:"organization_id"`
}

func (f *RecordForm) Validate() error {
	return wrap(validation.ValidateStruct(f,
		validation.Field(&f.Name,
			validation.Required.Error("Name must be at least 2 characters"),
			validation.RuneLength(2, 0).Error("Name must be at least 2 characters"),
		),
		validation.Field(&f.Email,
			validation.Required.Error(ErrEmailFormatMsg),
			is.EmailFormat.Error(ErrEmailFormatMsg),
		),
	))
}

func (f *RecordForm) Normalize() {
	f.Name = strings.TrimSpace(f.Name)
	f.Email = strings.ToLower(strings.TrimSpace(f.Email))
}

// OrgID returns nil for an empty organization id so it stores as NULL.
func (f *RecordForm) OrgID() *string {
	if f.OrganizationID == "" {
		return nil
	}
	id := f.OrganizationID
	return &id
}

// RecordPatch is a partial update of a directory record. Nil fields are
// left untouched; an empty organization_id detaches the record.
type RecordPatch struct {
	Name           *string `json:"name,omitempty"`
	Email          *string `json:"email,omitempty"`
	OrganizationID *string `json:"organization_id,omitempty"`
}

func (p *RecordPatch) Validate() error {
	if p.Name == nil && p.Email == nil && p.OrganizationID == nil {
		return &ValidationError{Fields: FieldErrors{"name": "Nothing to update"}}
	}
	if p.Name != nil {
		n := strings.TrimSpace(*p.Name)
		p.Name = &n
	}
	if p.Email != nil {
		e := strings.ToLower(strings.TrimSpace(*p.Email))
		p.Email = &e
	}
	return wrap(validation.ValidateStruct(p,
		validation.Field(&p.Name, validation.NilOrNotEmpty.Error("Name must be at least 2 characters"),
			validation.RuneLength(2, 0).Error("Name must be at least 2 characters")),
		validation.Field(&p.Email, validation.NilOrNotEmpty.Error(ErrEmailFormatMsg),
			is.EmailFormat.Error(ErrEmailFormatMsg)),
	))
}
