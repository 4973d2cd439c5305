package session

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// validate — один разделяемый валидатор на пакет (потокобезопасен).
var validate = validator.New(validator.WithRequiredStructEnabled())

// LoginForm — поля формы входа. Username и Password проверяются только на
// заполненность (политику сложности знает Account-сервис), одноразовый
// код — шесть цифр TOTP.
type LoginForm struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
	OTP      string `validate:"required,len=6,numeric"`
}

// Validate возвращает первую ошибку валидации формы.
func (f LoginForm) Validate() error {
	return validate.Struct(f)
}

// statusForFormError — статус для пользователя по ошибке валидации.
// Пустые учётные данные важнее кривого кода: сообщение про OTP показываем,
// только если забраковано одно лишь поле OTP.
func statusForFormError(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		otpOnly := len(verrs) > 0
		for _, fe := range verrs {
			if fe.Field() != "OTP" {
				otpOnly = false
				break
			}
		}

		if otpOnly {
			return StatusInvalidOTP
		}
	}

	return StatusInvalidCredentials
}
