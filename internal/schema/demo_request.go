package schema

import (
	"errors"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"interview-portal/internal/model"
)

const (
	ErrWorkEmailMsg   = "Please use your work email address"
	ErrEmailFormatMsg = "Please enter a valid email address"
	ErrTermsMsg       = "You must agree to the terms"
	ErrPhoneMsg       = "Please enter a valid phone number"
	ErrServiceMsg     = "Please select a valid service"
	ErrMessageLenMsg  = "Message must be at most 1000 characters"
)

const (
	nameMin           = 2
	nameMax           = 50
	demoMessageMaxLen = 1000
)

// ConsumerDomains are free mail providers rejected for work_email. The list
// is a heuristic, not exhaustive, and it is matched by substring on the
// domain part, so "mail.gmail.com.example" is rejected too.
var ConsumerDomains = []string{
	"gmail.com",
	"yahoo.com",
	"hotmail.com",
	"outlook.com",
	"aol.com",
	"icloud.com",
}

var ServiceInterests = []any{"technical-hiring", "campus-hiring", "interview-as-a-service", "other"}

var phoneRe = regexp.MustCompile(`^[0-9+\-() ]{7,20}$`)

type DemoRequestForm struct {
	FirstName       string `json:"first_name" form:"first_name"`
	LastName        string `json:"last_name" form:"last_name"`
	WorkEmail       string `json:"work_email" form:"work_email"`
	PhoneNumber     string `json:"phone_number,omitempty" form:"phone_number"`
	ServiceInterest string `json:"service_interest,omitempty" form:"service_interest"`
	Message         string `json:"message,omitempty" form:"message"`
	AgreesToTerms   bool   `json:"agrees_to_terms" form:"agrees_to_terms"`
}

// Normalize trims the free-text fields in place. Validate calls it, so the
// values checked are the values sent.
func (f *DemoRequestForm) Normalize() {
	f.FirstName = strings.TrimSpace(f.FirstName)
	f.LastName = strings.TrimSpace(f.LastName)
	f.WorkEmail = strings.TrimSpace(f.WorkEmail)
	f.PhoneNumber = strings.TrimSpace(f.PhoneNumber)
}

func (f *DemoRequestForm) Validate() error {
	f.Normalize()
	err := validation.ValidateStruct(f,
		validation.Field(&f.FirstName, nameRules("First name")...),
		validation.Field(&f.LastName, nameRules("Last name")...),
		validation.Field(&f.WorkEmail,
			validation.Required.Error(ErrEmailFormatMsg),
			is.EmailFormat.Error(ErrEmailFormatMsg),
			validation.By(workEmail),
		),
		validation.Field(&f.PhoneNumber, validation.Match(phoneRe).Error(ErrPhoneMsg)),
		validation.Field(&f.ServiceInterest, validation.In(ServiceInterests...).Error(ErrServiceMsg)),
		validation.Field(&f.Message, validation.RuneLength(0, demoMessageMaxLen).Error(ErrMessageLenMsg)),
		validation.Field(&f.AgreesToTerms, validation.Required.Error(ErrTermsMsg)),
	)
	return wrap(err)
}

// Payload is the JSON body sent to the API. Call after Validate.
func (f *DemoRequestForm) Payload() model.DemoRequest {
	return model.DemoRequest{
		FirstName:       f.FirstName,
		LastName:        f.LastName,
		WorkEmail:       f.WorkEmail,
		PhoneNumber:     f.PhoneNumber,
		ServiceInterest: f.ServiceInterest,
		Message:         f.Message,
		AgreesToTerms:   f.AgreesToTerms,
	}
}

// nameRules gives distinct messages for too short (including empty) and too
// long values.
func nameRules(label string) []validation.Rule {
	short := label + " must be at least 2 characters"
	long := label + " must be at most 50 characters"
	return []validation.Rule{
		validation.Required.Error(short),
		validation.RuneLength(nameMin, 0).Error(short),
		validation.RuneLength(0, nameMax).Error(long),
	}
}

func workEmail(value any) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	if IsConsumerEmail(s) {
		return errors.New(ErrWorkEmailMsg)
	}
	return nil
}

// IsConsumerEmail reports whether the domain part of addr contains one of
// ConsumerDomains.
func IsConsumerEmail(addr string) bool {
	at := strings.LastIndex(addr, "@")
	if at < 0 {
		return false
	}
	domain := strings.ToLower(addr[at+1:])
	for _, d := range ConsumerDomains {
		if strings.Contains(domain, d) {
			return true
		}
	}
	return false
}
