// Package checkout validates the three-step checkout form and builds the
// WhatsApp handoff for a placed order.
package checkout

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

const (
	StepSender   = 1
	StepReceiver = 2
	StepPayment  = 3
	StepCount    = 3
)

var ErrInvalidStep = errors.New("checkout: invalid step")

// FieldError names the first missing or malformed field of a step.
type FieldError struct {
	Step  int
	Field string
	Msg   string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("step %d: %s %s", e.Step, e.Field, e.Msg)
}

// Sender is step 1 of the wizard.
type Sender struct {
	SenderFullName string `json:"sender_full_name" binding:"required"`
	SenderCountry  string `json:"sender_country" binding:"required"`
	SenderEmail    string `json:"sender_email" binding:"required,email"`
	SenderContact  string `json:"sender_contact" binding:"required"`
}

// Receiver is step 2 of the wizard.
type Receiver struct {
	ReceiverFullName string `json:"receiver_full_name" binding:"required"`
	ReceiverIDNumber string `json:"receiver_id_number" binding:"required"`
	ReceiverContact  string `json:"receiver_contact" binding:"required"`
	ReceiverAddress  string `json:"receiver_address" binding:"required"`
	ReceiverExtra    string `json:"receiver_extra"`
}

// Payment is step 3 of the wizard.
type Payment struct {
	PaymentMethod string `json:"payment_method" binding:"required"`
}

// Form is what the buyer fills in across the wizard. The steps are
// embedded so the JSON stays flat.
type Form struct {
	Sender
	Receiver
	Payment
}

// Normalize trims every field in place.
func (f *Form) Normalize() {
	for _, p := range []*string{
		&f.SenderFullName, &f.SenderCountry, &f.SenderEmail, &f.SenderContact,
		&f.ReceiverFullName, &f.ReceiverIDNumber, &f.ReceiverContact, &f.ReceiverAddress, &f.ReceiverExtra,
		&f.PaymentMethod,
	} {
		*p = strings.TrimSpace(*p)
	}
}

// ValidateStep checks the fields collected by one wizard step. Blank
// values count as missing.
func (f Form) ValidateStep(step int) error {
	f.Normalize()

	var part any
	switch step {
	case StepSender:
		part = f.Sender
	case StepReceiver:
		part = f.Receiver
	case StepPayment:
		part = f.Payment
	default:
		return ErrInvalidStep
	}

	err := binding.Validator.ValidateStruct(part)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	return fieldError(step, reflect.TypeOf(part), verrs[0])
}

// Validate checks every step in order.
func (f Form) Validate() error {
	for step := 1; step <= StepCount; step++ {
		if err := f.ValidateStep(step); err != nil {
			return err
		}
	}
	return nil
}

func fieldError(step int, t reflect.Type, fe validator.FieldError) *FieldError {
	name := fe.Field()
	if sf, ok := t.FieldByName(fe.StructField()); ok {
		if tag := strings.Split(sf.Tag.Get("json"), ",")[0]; tag != "" {
			name = tag
		}
	}

	msg := "is required"
	if fe.Tag() == "email" {
		msg = "is not a valid e-mail"
	}
	return &FieldError{Step: step, Field: name, Msg: msg}
}
