package mailservice

import (
	"bytes"
	"errors"
	"testing"

	"github.com/go-mail/mail/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestSendEmail(t *testing.T) {
	mockParser := new(MockTemplate)
	mockDialer := new(MockDialer)

	mailer := &Mail{
		dialer: mockDialer,
		parser: mockParser,
		sender: "sender@example.com",
	}

	subject := bytes.NewBufferString("Test Subject")
	plainBody := bytes.NewBufferString("Test Plain Body")
	htmlBody := bytes.NewBufferString("Test HTML Body")
	data := welcomeData{Name: "Tester"}
	mockParser.On("ParseTemplate", "template.html", data).Return(subject, plainBody, htmlBody, nil)

	mockDialer.On("DialAndSend", mock.MatchedBy(func(msgs []*mail.Message) bool {
		return len(msgs) == 1 &&
			msgs[0].GetHeader("To")[0] == "test@example.com" &&
			msgs[0].GetHeader("From")[0] == "sender@example.com" &&
			msgs[0].GetHeader("Subject")[0] == "Test Subject"
	})).Return(nil)

	err := mailer.send("test@example.com", data, "template.html")
	assert.NoError(t, err)

	mockParser.AssertExpectations(t)
	mockDialer.AssertExpectations(t)
}

func TestSendEmail_TemplateError(t *testing.T) {
	mockParser := new(MockTemplate)
	mockDialer := new(MockDialer)

	mailer := &Mail{dialer: mockDialer, parser: mockParser, sender: "sender@example.com"}

	mockParser.On("ParseTemplate", "missing.html", nil).Return(nil, nil, nil, errors.New("no such template"))

	err := mailer.send("test@example.com", nil, "missing.html")
	assert.Error(t, err)
	mockDialer.AssertNotCalled(t, "DialAndSend", mock.Anything)
}

func TestNewMailer(t *testing.T) {
	mailer := NewMailer("smtp.example.com", 1025, "", "", "BlogSphere <no-reply@example.com>", NewTemplate())

	dialer, ok := mailer.dialer.(*mail.Dialer)
	if assert.True(t, ok) {
		assert.Equal(t, "smtp.example.com", dialer.Host)
		assert.Equal(t, 1025, dialer.Port)
		assert.Equal(t, smtpTimeout, dialer.Timeout)
		assert.Equal(t, mail.OpportunisticStartTLS, dialer.StartTLSPolicy)
	}
	assert.Equal(t, "BlogSphere <no-reply@example.com>", mailer.sender)
}

func TestCompose(t *testing.T) {
	mockParser := new(MockTemplate)
	mailer := &Mail{parser: mockParser, sender: "sender@example.com"}

	data := welcomeData{Name: "Tester", LoginURL: "http://localhost:3000/login"}
	mockParser.On("ParseTemplate", welcomeTemplate, data).Return(
		bytes.NewBufferString("\n  Welcome to BlogSphere, Tester!\n"),
		bytes.NewBufferString("plain"),
		bytes.NewBufferString("<p>html</p>"),
		nil,
	)

	msg, err := mailer.compose("tester@example.com", data, welcomeTemplate)
	assert.NoError(t, err)
	assert.Equal(t, []string{"Welcome to BlogSphere, Tester!"}, msg.GetHeader("Subject"))
	assert.Equal(t, []string{"tester@example.com"}, msg.GetHeader("To"))
	assert.Equal(t, []string{"sender@example.com"}, msg.GetHeader("From"))
}

func TestSendEmail_DialError(t *testing.T) {
	mockParser := new(MockTemplate)
	mockDialer := new(MockDialer)
	mailer := &Mail{dialer: mockDialer, parser: mockParser, sender: "sender@example.com"}

	dialErr := errors.New("connection refused")
	mockParser.On("ParseTemplate", "template.html", nil).Return(
		bytes.NewBufferString("s"), bytes.NewBufferString("p"), bytes.NewBufferString("h"), nil)
	mockDialer.On("DialAndSend", mock.Anything).Return(dialErr)

	err := mailer.send("test@example.com", nil, "template.html")
	assert.ErrorIs(t, err, dialErr)
	assert.Contains(t, err.Error(), "test@example.com")
}
