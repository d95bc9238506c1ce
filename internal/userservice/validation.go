package userservice

import (
	"regexp"

	"github.com/sushihentaime/blogsphere/internal/common"
)

var (
	EmailRX  = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	LetterRX = regexp.MustCompile("[A-Za-z]")
	NumberRX = regexp.MustCompile("[0-9]")
)

func validateEmail(v *common.Validator, email string) {
	v.Check(email != "", "email", "must be provided")
	v.Check(EmailRX.MatchString(email), "email", "must be a valid email address")
}

func validatePassword(v *common.Validator, password string) {
	v.Check(password != "", "password", "must be provided")
	v.Check(v.CheckStringLength(password, 6, 20), "password", "must be between 6 and 20 characters long")
	v.Check(LetterRX.MatchString(password) && NumberRX.MatchString(password), "password", "must contain at least one letter and one number")
}

func validateName(v *common.Validator, name string) {
	v.Check(name != "", "name", "must be provided")
	v.Check(v.CheckStringLength(name, 2, 50), "name", "must be between 2 and 50 characters long")
}

func validateLogin(v *common.Validator, email, password string) {
	validateEmail(v, email)
	v.Check(password != "", "password", "must be provided")
}
