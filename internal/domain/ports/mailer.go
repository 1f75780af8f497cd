package ports

import "context"

// PasswordResetEmail são os dados do e-mail de redefinição de senha
type PasswordResetEmail struct {
	To       string `json:"to"`
	Name     string `json:"name"`
	ResetURL string `json:"reset_url"`
	Language string `json:"language"`
}

// Mailer entrega e-mails transacionais (fire-and-forget do ponto de vista da API)
type Mailer interface {
	SendPasswordReset(ctx context.Context, msg PasswordResetEmail) error
}
