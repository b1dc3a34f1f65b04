package notify

import (
	"bytes"
	htmltemplate "html/template"
	"io"
	texttemplate "text/template"

	"github.com/silis/backend/internal/model"
)

// Display format of the submission time in e-mails.
const submittedLayout = "02.01.2006 в 15:04"

const (
	adminSubjectPrefix = "Новая заявка на КП от "
	clientSubject      = "Ваша заявка получена - Центр якутского языка «Силис»"
)

type executor interface {
	Execute(w io.Writer, data any) error
}

type templateData struct {
	Name         string
	Phone        string
	Email        string
	Organization string
	Comment      string
	Submitted    string
}

func newTemplateData(s *model.ContactSubmission) templateData {
	return templateData{
		Name:         s.Name,
		Phone:        s.Phone,
		Email:        s.Email,
		Organization: s.Organization,
		Comment:      s.Comment,
		Submitted:    s.CreatedAt.UTC().Format(submittedLayout),
	}
}

// RenderAdminNotice builds the administrator notice for s. From and To are
// left for the caller.
func RenderAdminNotice(s *model.ContactSubmission) (*Message, error) {
	return renderMessage(adminSubjectPrefix+s.Name, adminText, adminHTML, newTemplateData(s))
}

// RenderClientConfirmation builds the confirmation sent to the client.
func RenderClientConfirmation(s *model.ContactSubmission) (*Message, error) {
	return renderMessage(clientSubject, clientText, clientHTML, newTemplateData(s))
}

func renderMessage(subject string, text, html executor, data templateData) (*Message, error) {
	textBody, err := render(text, data)
	if err != nil {
		return nil, err
	}
	htmlBody, err := render(html, data)
	if err != nil {
		return nil, err
	}
	return &Message{Subject: subject, Text: textBody, HTML: htmlBody}, nil
}

func render(t executor, data any) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

const baseStyle = `
    body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px; }
    .header { background: linear-gradient(135deg, #0E3F2B 0%, #7DB68C 100%); color: white; padding: 20px; border-radius: 8px; text-align: center; margin-bottom: 20px; }
    .content { background: #f9f9f9; padding: 20px; border-radius: 8px; }
    .footer { text-align: center; margin-top: 20px; padding: 15px; font-size: 14px; color: #666; }`

var adminHTML = htmltemplate.Must(htmltemplate.New("admin.html").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <style>` + baseStyle + `
    .content { border-left: 4px solid #7DB68C; }
    .field { margin-bottom: 15px; padding: 10px; background: white; border-radius: 4px; }
    .field-label { font-weight: bold; color: #0E3F2B; }
    .field-value { margin-top: 5px; color: #333; }
    .footer { background: #EDE6D6; border-radius: 8px; }
  </style>
</head>
<body>
  <div class="header">
    <h2>Новая заявка на коммерческое предложение</h2>
    <p>Центр якутского языка «Силис»</p>
  </div>
  <div class="content">
    <div class="field"><div class="field-label">Имя клиента:</div><div class="field-value">{{.Name}}</div></div>
    <div class="field"><div class="field-label">Телефон:</div><div class="field-value">{{.Phone}}</div></div>
    <div class="field"><div class="field-label">Email:</div><div class="field-value">{{.Email}}</div></div>
    {{- if .Organization}}
    <div class="field"><div class="field-label">Организация:</div><div class="field-value">{{.Organization}}</div></div>
    {{- end}}
    {{- if .Comment}}
    <div class="field"><div class="field-label">Комментарий:</div><div class="field-value">{{.Comment}}</div></div>
    {{- end}}
    <div class="field"><div class="field-label">Дата подачи заявки:</div><div class="field-value">{{.Submitted}}</div></div>
  </div>
  <div class="footer">
    <p>Это автоматическое уведомление с сайта центра «Силис»</p>
    <p>Свяжитесь с клиентом в ближайшее время для обсуждения коммерческого предложения</p>
  </div>
</body>
</html>
`))

var adminText = texttemplate.Must(texttemplate.New("admin.txt").Parse(`Новая заявка на коммерческое предложение
Центр якутского языка «Силис»

Имя клиента: {{.Name}}
Телефон: {{.Phone}}
Email: {{.Email}}
{{- if .Organization}}
Организация: {{.Organization}}
{{- end}}
{{- if .Comment}}
Комментарий: {{.Comment}}
{{- end}}
Дата подачи заявки: {{.Submitted}}

Свяжитесь с клиентом в ближайшее время для обсуждения коммерческого предложения.
`))

var clientHTML = htmltemplate.Must(htmltemplate.New("client.html").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <style>` + baseStyle + `
    .highlight { background: #EDE6D6; padding: 15px; border-radius: 8px; margin: 15px 0; border-left: 4px solid #7DB68C; }
    .contact-info { background: white; padding: 15px; border-radius: 8px; margin: 15px 0; }
  </style>
</head>
<body>
  <div class="header">
    <h2>Спасибо за вашу заявку!</h2>
    <p>Центр якутского языка «Силис»</p>
  </div>
  <div class="content">
    <p>Уважаемый(ая) {{.Name}}!</p>
    <p>Мы получили вашу заявку на коммерческое предложение и благодарим вас за интерес к нашим услугам.</p>
    <div class="highlight">
      <strong>Что происходит дальше:</strong>
      <ul>
        <li>Наш менеджер свяжется с вами в течение рабочего дня</li>
        <li>Мы подготовим персональное коммерческое предложение</li>
        <li>Обсудим все детали и ответим на ваши вопросы</li>
      </ul>
    </div>
    <div class="contact-info">
      <strong>Наши контакты:</strong><br>
      Email: silisykt@mail.ru<br>
      Телефон: 8 914 287 0753, 8 964 076 7660<br>
      Адрес: г. Якутск, ул. Лермонтова 47, ТЦ НОРД, 4 этаж<br>
      WhatsApp: <a href="https://wa.me/79649767660">+7 964 976-76-60</a>
    </div>
    <p>С уважением,<br>Команда центра якутского языка «Силис»</p>
  </div>
  <div class="footer">
    <p>Это автоматическое сообщение. Пожалуйста, не отвечайте на него.</p>
  </div>
</body>
</html>
`))

var clientText = texttemplate.Must(texttemplate.New("client.txt").Parse(`Спасибо за вашу заявку!
Центр якутского языка «Силис»

Уважаемый(ая) {{.Name}}!

Мы получили вашу заявку на коммерческое предложение и благодарим вас за интерес к нашим услугам.

Что происходит дальше:
- Наш менеджер свяжется с вами в течение рабочего дня
- Мы подготовим персональное коммерческое предложение
- Обсудим все детали и ответим на ваши вопросы

Наши контакты:
Email: silisykt@mail.ru
Телефон: 8 914 287 0753, 8 964 076 7660
Адрес: г. Якутск, ул. Лермонтова 47, ТЦ НОРД, 4 этаж
WhatsApp: +7 964 976-76-60

С уважением,
Команда центра якутского языка «Силис»
`))
