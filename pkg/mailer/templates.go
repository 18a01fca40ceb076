package mailer

import (
	"bytes"
	"fmt"
	"html/template"
)

var welcomeHTML = template.Must(template.New("welcome").Parse(`<!doctype html>
<html>
  <body style="font-family: sans-serif; color: #222;">
    <h2>Welcome{{if .Name}}, {{.Name}}{{end}}!</h2>
    <p>Your account was created successfully. You can sign in right away
    with the token issued at registration.</p>
    <p style="color:#888; font-size: 12px;">If you did not create this
    account, please contact support.</p>
  </body>
</html>`))

// Render produces subject, text and HTML bodies for a template job.
func Render(name string, data map[string]any) (subject, text, html string, err error) {
	switch name {
	case "welcome":
		var buf bytes.Buffer
		if err := welcomeHTML.Execute(&buf, map[string]any{"Name": data["name"]}); err != nil {
			return "", "", "", err
		}
		subject = "Welcome aboard"
		text = "Your account was created successfully."
		html = buf.String()
		return subject, text, html, nil
	default:
		return "", "", "", fmt.Errorf("unknown template %q", name)
	}
}
