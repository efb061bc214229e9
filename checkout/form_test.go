package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validForm() Form {
	return Form{
		Sender: Sender{
			SenderFullName: "Ana Pérez",
			SenderCountry:  "US",
			SenderEmail:    "ana@example.com",
			SenderContact:  "+1 305 555 0100",
		},
		Receiver: Receiver{
			ReceiverFullName: "Luis Pérez",
			ReceiverIDNumber: "85010112345",
			ReceiverContact:  "+53 5 555 0101",
			ReceiverAddress:  "Calle 23 #456, Vedado",
		},
		Payment: Payment{PaymentMethod: "Zelle"},
	}
}

func TestValidateAcceptsCompleteForm(t *testing.T) {
	assert.NoError(t, validForm().Validate())
}

func TestValidateStepReportsFirstMissingField(t *testing.T) {
	f := validForm()
	f.ReceiverContact = "  "
	f.ReceiverAddress = ""

	assert.NoError(t, f.ValidateStep(StepSender))

	err := f.ValidateStep(StepReceiver)
	var fe *FieldError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, StepReceiver, fe.Step)
	assert.Equal(t, "receiver_contact", fe.Field)
}

func TestValidateStepEmail(t *testing.T) {
	f := validForm()
	f.SenderEmail = "not-an-email"

	var fe *FieldError
	require.ErrorAs(t, f.Validate(), &fe)
	assert.Equal(t, StepSender, fe.Step)
	assert.Equal(t, "sender_email", fe.Field)
	assert.Equal(t, "is not a valid e-mail", fe.Msg)
}

func TestValidateStepIgnoresLaterSteps(t *testing.T) {
	f := Form{Sender: validForm().Sender}

	assert.NoError(t, f.ValidateStep(StepSender))

	var fe *FieldError
	require.ErrorAs(t, f.Validate(), &fe)
	assert.Equal(t, StepReceiver, fe.Step)
	assert.Equal(t, "receiver_full_name", fe.Field)
	assert.Equal(t, "is required", fe.Msg)
}

func TestValidateStepPaymentRequired(t *testing.T) {
	f := validForm()
	f.PaymentMethod = " "

	var fe *FieldError
	require.ErrorAs(t, f.ValidateStep(StepPayment), &fe)
	assert.Equal(t, "payment_method", fe.Field)
}

func TestReceiverExtraIsOptional(t *testing.T) {
	f := validForm()
	f.ReceiverExtra = ""
	assert.NoError(t, f.ValidateStep(StepReceiver))
}

func TestValidateStepUnknown(t *testing.T) {
	assert.ErrorIs(t, validForm().ValidateStep(4), ErrInvalidStep)
}

func TestNormalize(t *testing.T) {
	f := Form{Sender: Sender{SenderFullName: "  Ana "}, Payment: Payment{PaymentMethod: "\tZelle\n"}}
	f.Normalize()
	assert.Equal(t, "Ana", f.SenderFullName)
	assert.Equal(t, "Zelle", f.PaymentMethod)
}
