package mailer

import (
	"bytes"
	"html/template"
	"strings"

	notification "github.com/zennajjames/TheVillage/internal/pkg/notification/port"
)

var newMessageTemplate = template.Must(template.New("new_message").Parse(`<!DOCTYPE html>
<html>
  <head>
    <style>
      body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
      .container { max-width: 600px; margin: 0 auto; padding: 20px; }
      .header { background-color: #9333ea; color: white; padding: 20px; text-align: center; border-radius: 8px 8px 0 0; }
      .content { background-color: #f9f9f9; padding: 30px; border-radius: 0 0 8px 8px; }
      .message-preview { background-color: white; padding: 15px; border-left: 4px solid #9333ea; margin: 20px 0; }
      .button { display: inline-block; background-color: #9333ea; color: white; padding: 12px 30px; text-decoration: none; border-radius: 6px; margin-top: 20px; }
      .footer { text-align: center; margin-top: 20px; color: #666; font-size: 12px; }
    </style>
  </head>
  <body>
    <div class="container">
      <div class="header">
        <h1>&#128172; New Message</h1>
      </div>
      <div class="content">
        <p>Hi {{.ToName}},</p>
        <p><strong>{{.FromName}}</strong> sent you a message:</p>
        <div class="message-preview">
          &quot;{{.Preview}}&quot;
        </div>
        <a href="{{.Link}}" class="button">View Message</a>
        <p style="margin-top: 20px;">Stay connected with your community!</p>
      </div>
      <div class="footer">
        <p>You're receiving this because you're a member of The Village.</p>
        <p>To manage your notification preferences, visit your profile settings.</p>
      </div>
    </div>
  </body>
</html>
`))

type newMessageEmailData struct {
	ToName   string
	FromName string
	Preview  string
	Link     string
}

func renderNewMessageEmail(n notification.NewMessageNotification, clientURL string) ([]byte, error) {
	data := newMessageEmailData{
		ToName:   n.ToName,
		FromName: n.FromName,
		Preview:  n.Preview,
		Link:     strings.TrimRight(clientURL, "/") + "/messages/" + n.ConversationID,
	}
	var buf bytes.Buffer
	if err := newMessageTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
