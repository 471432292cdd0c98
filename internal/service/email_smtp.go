package service

import (
	"crypto/tls"
	"errors"
	"net"
	"net/smtp"
	"net/textproto"
	"strconv"
	"strings"
	"time"

	"github.com/foodhub-next/internal/config"
)

const smtpDialTimeout = 10 * time.Second

// mailTransport 投递已编码的邮件
type mailTransport interface {
	Send(from string, to []string, msg []byte) error
}

// smtpTransport 每封邮件独立建连；use_ssl 走隐式 TLS，use_tls 走 STARTTLS
type smtpTransport struct {
	cfg *config.EmailConfig
}

func (t smtpTransport) Send(from string, to []string, msg []byte) error {
	client, err := t.dial()
	if err != nil {
		return err
	}
	defer client.Close()

	if t.cfg.Username != "" || t.cfg.Password != "" {
		if ok, _ := client.Extension("AUTH"); ok {
			if err := client.Auth(smtp.PlainAuth("", t.cfg.Username, t.cfg.Password, t.cfg.Host)); err != nil {
				return err
			}
		}
	}
	if err := client.Mail(from); err != nil {
		return err
	}
	for _, rcpt := range to {
		if err := client.Rcpt(rcpt); err != nil {
			return classifySMTPError(err)
		}
	}
	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return classifySMTPError(err)
	}
	return client.Quit()
}

func (t smtpTransport) dial() (*smtp.Client, error) {
	addr := net.JoinHostPort(t.cfg.Host, strconv.Itoa(t.cfg.Port))
	tlsConfig := &tls.Config{ServerName: t.cfg.Host}
	dialer := &net.Dialer{Timeout: smtpDialTimeout}

	var conn net.Conn
	var err error
	if t.cfg.UseSSL {
		conn, err = tls.DialWithDialer(dialer, "tcp", addr, tlsConfig)
	} else {
		conn, err = dialer.Dial("tcp", addr)
	}
	if err != nil {
		return nil, err
	}
	client, err := smtp.NewClient(conn, t.cfg.Host)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	if !t.cfg.UseSSL && t.cfg.UseTLS {
		if err := client.StartTLS(tlsConfig); err != nil {
			_ = client.Close()
			return nil, err
		}
	}
	return client, nil
}

var rejectedRecipientHints = []string{
	"no such recipient",
	"no such user",
	"recipient address rejected",
	"invalid recipient",
	"user unknown",
	"unknown mailbox",
	"mailbox unavailable",
}

// classifySMTPError 收件人被拒（550/551/553 或常见提示语）转为 ErrEmailRecipientRejected
func classifySMTPError(err error) error {
	if err == nil {
		return nil
	}
	var protoErr *textproto.Error
	if errors.As(err, &protoErr) {
		switch protoErr.Code {
		case 550, 551, 553:
			return ErrEmailRecipientRejected
		}
	}
	message := strings.ToLower(err.Error())
	for _, hint := range rejectedRecipientHints {
		if strings.Contains(message, hint) {
			return ErrEmailRecipientRejected
		}
	}
	return err
}
