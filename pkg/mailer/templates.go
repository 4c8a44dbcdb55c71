package mailer

import (
	"bytes"
	"fmt"
	htmpl "html/template"
)

// Template names accepted in EmailJob.Template.
const (
	TemplateWelcome   = "welcome"
	TemplateVerifyOTP = "verify_otp"
	TemplateResetOTP  = "reset_otp"
)

var templates = map[string]struct {
	subject string
	body    *htmpl.Template
}{
	TemplateWelcome: {
		subject: "🎉 Bienvenue chez Alibia !",
		body: htmpl.Must(htmpl.New(TemplateWelcome).Parse(`
<div style="font-family: Arial, sans-serif; padding: 16px;">
  <h2 style="color: #3b82f6;">Bienvenue {{.Name}} 👋</h2>
  <p>Merci de rejoindre notre plateforme ! Nous sommes ravis de vous accueillir.</p>
  <p style="margin-top: 20px;">🚀 L'aventure commence maintenant !</p>
  <p>— L'équipe Alibia</p>
</div>`)),
	},
	TemplateVerifyOTP: {
		subject: "🎉 Vérification du compte OTP",
		body: htmpl.Must(htmpl.New(TemplateVerifyOTP).Parse(`
<div style="font-family: Arial, sans-serif; padding: 16px;">
  <h2 style="color: #3b82f6;">Your OTP is {{.Code}} 👋</h2>
  <p>Vérifiez votre compte à l'aide de cet OTP</p>
  <p>— L'équipe Alibia</p>
</div>`)),
	},
	TemplateResetOTP: {
		subject: "🔐 OTP de réinitialisation de mot de passe",
		body: htmpl.Must(htmpl.New(TemplateResetOTP).Parse(`
<div style="font-family: Arial, sans-serif; padding: 16px;">
  <h2 style="color: #3b82f6;">Votre OTP est {{.Code}}</h2>
  <p>Utilisez cet OTP pour réinitialiser votre mot de passe.</p>
  <p>— L'équipe Alibia</p>
</div>`)),
	},
}

// Render produces subject and HTML body for a named template. Unknown
// template names are an error so the worker can dead-letter the job.
func Render(name string, data map[string]any) (subject, html string, err error) {
	t, ok := templates[name]
	if !ok {
		return "", "", fmt.Errorf("unknown email template %q", name)
	}
	var buf bytes.Buffer
	if err := t.body.Execute(&buf, data); err != nil {
		return "", "", err
	}
	return t.subject, buf.String(), nil
}
