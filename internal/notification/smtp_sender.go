package notification

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"
)

// SMTPSender delivers templated emails over plain SMTP. Template bodies are
// intentionally minimal here; the rendering service owns the real content.
type SMTPSender struct {
	addr string // host:port
	from string
	auth smtp.Auth
}

func NewSMTPSender(host, port, from, username, password string) *SMTPSender {
	var auth smtp.Auth
	if username != "" {
		auth = smtp.PlainAuth("", username, password, host)
	}
	return &SMTPSender{
		addr: host + ":" + port,
		from: from,
		auth: auth,
	}
}

func (s *SMTPSender) Send(ctx context.Context, to, template string, params map[string]string) error {
	subject, body := renderTemplate(template, params)

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", s.from)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n")
	msg.WriteString(body)

	return smtp.SendMail(s.addr, s.auth, s.from, []string{to}, []byte(msg.String()))
}

func renderTemplate(template string, params map[string]string) (subject, body string) {
	switch template {
	case "login_credentials":
		return "Thông tin đăng nhập BASMS",
			fmt.Sprintf(
				"Xin chào %s,\n\nTài khoản của bạn đã được tạo.\nEmail: %s\nMật khẩu: %s\n\nVui lòng đổi mật khẩu sau lần đăng nhập đầu tiên.",
				params["full_name"], params["email"], params["password"],
			)
	default:
		return "Thông báo từ BASMS", "Bạn có thông báo mới từ hệ thống BASMS."
	}
}
