package emailsvc

import (
	"net/mail"
	"testing"
	texttmpl "text/template"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/opsdesk/core"
)

var testConf = &core.Config{AppName: "Opsdesk"}

func init() {
	testConf.Mail.DefaultFromEmail = mail.Address{Name: "Opsdesk", Address: "noreply@opsdesk.test"}
	testConf.Mail.SendgridAPIKey = "key"
}

func Test_consoleServiceMock_SendMessages(t *testing.T) {
	ResetSentMessages()
	defer ResetSentMessages()

	svc := NewConsoleServiceMock(testConf)
	to := []mail.Address{{Name: "Fleet", Address: "fleet@opsdesk.test"}}
	tmpl := texttmpl.Must(texttmpl.New("t").Parse("hello {{.}}"))

	svc.SendMessages(
		&core.EmailMessage{To: to, Subject: "plain", BodyStr: "body"},
		&core.EmailMessage{To: to, Subject: "templated", Template: tmpl, TemplateData: "van"},
		&core.EmailMessage{Subject: "no recipients", BodyStr: "body"},
		&core.EmailMessage{To: to, Subject: "no content"},
	)

	require.Len(t, SentMessages, 2)
	assert.Equal(t, "body", SentMessages[0].TextContent)
	assert.Equal(t, "hello van", SentMessages[1].TextContent)
}

func Test_sendgridService_prepare(t *testing.T) {
	svc := NewSendgridService(testConf, nil).(*sendgridService)

	m := svc.prepare(core.EmailMessage{
		To:          []mail.Address{{Name: "Fleet", Address: "fleet@opsdesk.test"}},
		Cc:          []mail.Address{{Address: "ops@opsdesk.test"}},
		Subject:     "Vehicle van",
		TextContent: "due",
	})

	assert.Equal(t, "noreply@opsdesk.test", m.From.Address)
	require.Len(t, m.Personalizations, 1)
	p := m.Personalizations[0]
	assert.Equal(t, "[Opsdesk] Vehicle van", p.Subject)
	require.Len(t, p.To, 1)
	assert.Equal(t, "fleet@opsdesk.test", p.To[0].Address)
	require.Len(t, p.CC, 1)
	require.Len(t, m.Content, 1)
	assert.Equal(t, "text/plain", m.Content[0].Type)
	assert.Equal(t, "due", m.Content[0].Value)
}
