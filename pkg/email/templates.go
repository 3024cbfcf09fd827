package email

import (
	"bytes"
	"fmt"
	"html/template"
)

// AutoReplyData holds the two interpolation points of the auto-reply body
type AutoReplyData struct {
	Name    string
	Subject string
}

type autoReplyView struct {
	AutoReplyData
	SiteName string
}

// autoReplyTemplate is the HTML template for the visitor confirmation email
const autoReplyTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Thanks for reaching out</title>
</head>
<body style="margin:0;padding:0;font-family:Arial,Helvetica,sans-serif;background-color:#f4f5f7;color:#333;">
<table width="100%" cellpadding="0" cellspacing="0" style="background-color:#f4f5f7;padding:40px 0;">
<tr><td align="center">
<table width="560" cellpadding="0" cellspacing="0" style="background-color:#ffffff;border-radius:8px;overflow:hidden;">
  <tr><td style="background:#0066cc;color:#ffffff;padding:24px 40px;text-align:center;">
    <h1 style="margin:0;font-size:22px;">{{.SiteName}}</h1>
  </td></tr>
  <tr><td style="padding:32px 40px 8px;">
    <p style="margin:0 0 16px;font-size:16px;">Hi {{.Name}},</p>
    <p style="margin:0 0 16px;font-size:15px;line-height:1.6;">
      Thank you for getting in touch about <strong>{{.Subject}}</strong>. We have received your message and will get back to you as soon as possible.
    </p>
  </td></tr>
  <tr><td style="padding:8px 40px 32px;">
    <p style="margin:0;font-size:15px;line-height:1.6;">Best regards,<br>{{.SiteName}}</p>
  </td></tr>
  <tr><td style="padding:16px 40px;background-color:#f9f9fc;border-top:1px solid #eeeef2;">
    <p style="margin:0;font-size:12px;color:#8888a0;text-align:center;">
      This is an automated confirmation. Replies to this email reach {{.SiteName}} directly.
    </p>
  </td></tr>
</table>
</td></tr>
</table>
</body>
</html>`

// AutoReplyRenderer renders the branded confirmation email body
type AutoReplyRenderer struct {
	tmpl     *template.Template
	siteName string
}

// NewAutoReplyRenderer parses the auto-reply template once for the given brand
func NewAutoReplyRenderer(siteName string) (*AutoReplyRenderer, error) {
	tmpl, err := template.New("auto_reply").Parse(autoReplyTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse email template: %w", err)
	}
	return &AutoReplyRenderer{tmpl: tmpl, siteName: siteName}, nil
}

// Render returns the complete HTML document for one visitor
func (r *AutoReplyRenderer) Render(data AutoReplyData) (string, error) {
	var body bytes.Buffer
	if err := r.tmpl.Execute(&body, autoReplyView{AutoReplyData: data, SiteName: r.siteName}); err != nil {
		return "", fmt.Errorf("failed to execute email template: %w", err)
	}
	return body.String(), nil
}
