package mailer

import (
	"context"
	"fmt"
	"log"

	mail "github.com/wneessen/go-mail"

	"borrowbee/internal/config"
)

type Mailer interface {
	SendBorrowRequest(ctx context.Context, toEmail, fromUserName, bookTitle, message, fromUserEmail string) bool
	SendNotification(ctx context.Context, toEmail, subject, message string) bool
}

// transport - одна SMTP-конфигурация из упорядоченного списка попыток
type transport struct {
	name string
	port int
	opts []mail.Option
}

type SMTPMailer struct {
	cfg        config.SMTP
	transports []transport
}

// NewSMTPMailer builds the ordered transport list: STARTTLS on 587 first,
// then implicit TLS on 465. The first successful delivery short-circuits.
func NewSMTPMailer(cfg config.SMTP) *SMTPMailer {
	return &SMTPMailer{
		cfg: cfg,
		transports: []transport{
			{
				name: "starttls",
				port: 587,
				opts: []mail.Option{
					mail.WithPort(587),
					mail.WithTLSPolicy(mail.TLSMandatory),
				},
			},
			{
				name: "ssl",
				port: 465,
				opts: []mail.Option{
					mail.WithPort(465),
					mail.WithSSL(),
				},
			},
		},
	}
}

func (m *SMTPMailer) send(ctx context.Context, toEmail, subject, body string) bool {
	if m.cfg.Email == "" || m.cfg.Password == "" {
		log.Println("SMTP-учетные данные не настроены, письмо не отправлено")
		return false
	}

	msg := mail.NewMsg()
	if err := msg.From(m.cfg.From); err != nil {
		log.Printf("Неверный адрес отправителя %s: %v", m.cfg.From, err)
		return false
	}
	if err := msg.To(toEmail); err != nil {
		log.Printf("Неверный адрес получателя %s: %v", toEmail, err)
		return false
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	for _, t := range m.transports {
		opts := append([]mail.Option{
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(m.cfg.Email),
			mail.WithPassword(m.cfg.Password),
		}, t.opts...)

		client, err := mail.NewClient(m.cfg.Host, opts...)
		if err != nil {
			log.Printf("Ошибка создания SMTP-клиента (%s:%d): %v", t.name, t.port, err)
			continue
		}

		if err := client.DialAndSendWithContext(ctx, msg); err != nil {
			log.Printf("Ошибка отправки письма через %s:%d: %v", t.name, t.port, err)
			continue
		}

		log.Printf("Письмо успешно отправлено на %s (%s:%d)", toEmail, t.name, t.port)
		return true
	}

	log.Printf("Не удалось отправить письмо на %s ни через один транспорт", toEmail)
	return false
}

func (m *SMTPMailer) SendBorrowRequest(ctx context.Context, toEmail, fromUserName, bookTitle, message, fromUserEmail string) bool {
	subject := fmt.Sprintf("BorrowBee: Book Borrow Request for '%s'", bookTitle)

	contactLine := ""
	if fromUserEmail != "" {
		contactLine = fmt.Sprintf("Contact: %s\n", fromUserEmail)
	}

	body := fmt.Sprintf(`Hello!

You have received a new book borrow request through BorrowBee:

Book: %s
Requested by: %s
%s
Message:
%s

---
Please respond to this request directly to arrange book borrowing details.

Best regards,
BorrowBee Team
`, bookTitle, fromUserName, contactLine, message)

	return m.send(ctx, toEmail, subject, body)
}

func (m *SMTPMailer) SendNotification(ctx context.Context, toEmail, subject, message string) bool {
	body := fmt.Sprintf(`%s

---
Best regards,
BorrowBee Team
`, message)

	return m.send(ctx, toEmail, "BorrowBee: "+subject, body)
}
