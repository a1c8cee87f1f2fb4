// Package email implementa el puerto Notifier contra la API REST de Resend.
package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/vendorhub/portal-api/internal/application/ports"
	"github.com/vendorhub/portal-api/internal/domain/entity"
)

// Verificar en tiempo de compilación que ResendService implementa Notifier.
var _ ports.Notifier = (*ResendService)(nil)

const resendEmailsURL = "https://api.resend.com/emails"

// ResendService adaptador de notificaciones usando la API REST de Resend.
// Usa net/http de la librería estándar de Go; no requiere SDK.
// Con apiKey vacío los envíos se omiten con un log (modo desarrollo).
type ResendService struct {
	apiKey     string
	from       string
	adminEmail string
	httpClient *http.Client
}

// NewResendService construye el adaptador. adminEmail es el destinatario de
// las alertas de registro de vendors nuevos.
func NewResendService(apiKey, from, adminEmail string) *ResendService {
	return &ResendService{
		apiKey:     apiKey,
		from:       from,
		adminEmail: adminEmail,
		httpClient: &http.Client{
			// Timeout de red de 20 s; el que dispara impone además su propio context.
			Timeout: 20 * time.Second,
		},
	}
}

type resendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

type resendResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

// VendorApproved avisa al vendor que su cuenta fue aprobada.
func (s *ResendService) VendorApproved(ctx context.Context, a *entity.Account) error {
	body := fmt.Sprintf(
		"<p>Hola %s,</p><p>Tu cuenta de vendor%s fue aprobada. Ya podés iniciar sesión en el portal.</p>",
		a.Name, companySuffix(a))
	return s.send(ctx, a.Email, "Tu cuenta de vendor fue aprobada", body)
}

// VendorRejected avisa al vendor que su aprobación fue revocada o rechazada.
func (s *ResendService) VendorRejected(ctx context.Context, a *entity.Account, reason string) error {
	body := fmt.Sprintf(
		"<p>Hola %s,</p><p>Tu cuenta de vendor%s ya no está aprobada.</p><p>%s</p>",
		a.Name, companySuffix(a), reason)
	return s.send(ctx, a.Email, "Estado de tu cuenta de vendor", body)
}

// NewVendorSignup alerta al administrador de un registro nuevo pendiente.
func (s *ResendService) NewVendorSignup(ctx context.Context, a *entity.Account) error {
	if s.adminEmail == "" {
		log.Debug().Msg("EMAIL_ADMIN no configurado, se omite la alerta de registro")
		return nil
	}
	body := fmt.Sprintf(
		"<p>Un vendor nuevo se registró y espera aprobación:</p><p>%s &lt;%s&gt;%s</p>",
		a.Name, a.Email, companySuffix(a))
	return s.send(ctx, s.adminEmail, "Nuevo vendor pendiente de aprobación", body)
}

// PasswordReset envía el link de reseteo de password.
func (s *ResendService) PasswordReset(ctx context.Context, a *entity.Account, resetLink string) error {
	body := fmt.Sprintf(
		`<p>Hola %s,</p><p>Para restablecer tu password abrí este link (vence pronto):</p><p><a href="%s">%s</a></p>`,
		a.Name, resetLink, resetLink)
	return s.send(ctx, a.Email, "Restablecer tu password", body)
}

func (s *ResendService) send(ctx context.Context, to, subject, html string) error {
	if s.apiKey == "" {
		log.Debug().Str("to", to).Str("subject", subject).Msg("EMAIL_API_KEY vacío, envío omitido")
		return nil
	}
	payload, err := json.Marshal(resendRequest{
		From:    s.from,
		To:      []string{to},
		Subject: subject,
		HTML:    html,
	})
	if err != nil {
		return fmt.Errorf("email: serializar pedido: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, resendEmailsURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("email: crear pedido: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("email: llamada a Resend: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		var out resendResponse
		_ = json.Unmarshal(raw, &out)
		if out.Message != "" {
			return fmt.Errorf("email: Resend respondió %d: %s", resp.StatusCode, out.Message)
		}
		return fmt.Errorf("email: Resend respondió %d", resp.StatusCode)
	}
	return nil
}

func companySuffix(a *entity.Account) string {
	if a.CompanyName == "" {
		return ""
	}
	return " (" + a.CompanyName + ")"
}
