package services

import (
	"fmt"
	"net/smtp"
	"os"

	"stay/models"
)

// Mailer gửi email thông báo cho khách, lỗi gửi chỉ được log chứ không chặn nghiệp vụ
type Mailer interface {
	Send(to string, subject string, htmlBody string) error
}

// SMTPMailer gửi email qua SMTP
type SMTPMailer struct{}

func NewSMTPMailer() *SMTPMailer {
	return &SMTPMailer{}
}

func (m *SMTPMailer) Send(to string, subject string, htmlBody string) error {
	from := os.Getenv("SMTP_FROM")
	password := os.Getenv("SMTP_PASSWORD")

	host := "smtp.gmail.com"
	port := "587"

	msg := []byte("MIME-Version: 1.0\r\nContent-Type: text/html; charset=UTF-8\r\n" +
		"Subject: " + subject + "\r\n\r\n" + htmlBody)

	auth := smtp.PlainAuth("", from, password, host)

	return smtp.SendMail(host+":"+port, auth, from, []string{to}, msg)
}

// Nội dung email khi khách gửi yêu cầu đặt chỗ
func bookingReceivedEmail(booking *models.Booking) (string, string) {
	subject := "Đã nhận yêu cầu đặt chỗ"
	body := fmt.Sprintf(`<!DOCTYPE html>
	<html>
	<head><meta charset="UTF-8"></head>
	<body>
		<p>Xin chào %s,</p>
		<p>Yêu cầu đặt chỗ của bạn đã được ghi nhận và đang chờ duyệt.</p>
		<ul>
			<li>Chỗ nghỉ: <strong>%s</strong></li>
			<li>Ngày nhận chỗ: <strong>%s</strong></li>
			<li>Ngày trả chỗ: <strong>%s</strong></li>
		</ul>
		<p>Chúng tôi sẽ thông báo cho bạn khi có kết quả.</p>
		<p>Xin cảm ơn,<br>Nhóm hỗ trợ</p>
	</body>
	</html>`, guestName(booking), booking.Property.Name,
		booking.StartDate.Format("02/01/2006"), booking.EndDate.Format("02/01/2006"))
	return subject, body
}

// Nội dung email khi trạng thái đặt chỗ thay đổi
func bookingStatusEmail(booking *models.Booking) (string, string) {
	subject := "Trạng thái đặt chỗ đã thay đổi"
	body := fmt.Sprintf(`<!DOCTYPE html>
	<html>
	<head><meta charset="UTF-8"></head>
	<body>
		<p>Xin chào %s,</p>
		<p>Đặt chỗ của bạn tại <strong>%s</strong> đã chuyển sang trạng thái <strong>%s</strong>.</p>
		<ul>
			<li>Ngày nhận chỗ: <strong>%s</strong></li>
			<li>Ngày trả chỗ: <strong>%s</strong></li>
		</ul>
		<p>Xin cảm ơn,<br>Nhóm hỗ trợ</p>
	</body>
	</html>`, guestName(booking), booking.Property.Name, booking.Status,
		booking.StartDate.Format("02/01/2006"), booking.EndDate.Format("02/01/2006"))
	return subject, body
}

// Nội dung email khi đặt chỗ bị xóa
func bookingDeletedEmail(booking *models.Booking) (string, string) {
	subject := "Đặt chỗ đã bị xóa"
	body := fmt.Sprintf(`<!DOCTYPE html>
	<html>
	<head><meta charset="UTF-8"></head>
	<body>
		<p>Xin chào %s,</p>
		<p>Đặt chỗ của bạn tại <strong>%s</strong> (%s - %s) đã bị xóa khỏi hệ thống.</p>
		<p>Vui lòng liên hệ chủ nhà nếu bạn cần thêm thông tin.</p>
		<p>Xin cảm ơn,<br>Nhóm hỗ trợ</p>
	</body>
	</html>`, guestName(booking), booking.Property.Name,
		booking.StartDate.Format("02/01/2006"), booking.EndDate.Format("02/01/2006"))
	return subject, body
}

func guestName(booking *models.Booking) string {
	if booking.Guest != nil {
		return booking.Guest.Name
	}
	return "bạn"
}
