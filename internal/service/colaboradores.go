package service

import (
	"context"

	"github.com/rs/zerolog/log"
)

// Severidad of a user-facing notification.
type Severidad string

const (
	SeveridadSuccess Severidad = "success"
	SeveridadInfo    Severidad = "info"
	SeveridadError   Severidad = "error"
)

// Notificacion is shown to the user after create, update or delete.
type Notificacion struct {
	Titulo    string    `json:"titulo"`
	Mensaje   string    `json:"mensaje"`
	Severidad Severidad `json:"severidad"`
}

// Notificador presents a notification fire-and-forget style. The service
// never waits on the outcome, so implementations must not block.
type Notificador interface {
	Notificar(n Notificacion)
}

// Confirmacion is the fixed copy of the delete dialog.
type Confirmacion struct {
	Titulo         string `json:"titulo"`
	Texto          string `json:"texto"`
	BotonConfirmar string `json:"botonConfirmar"`
	BotonCancelar  string `json:"botonCancelar"`
}

// Confirmador asks the user a yes/no question and resolves asynchronously.
// Only an explicit true lets the pending operation proceed.
type Confirmador interface {
	Confirmar(ctx context.Context, c Confirmacion) (bool, error)
}

// LogNotificador writes notifications to the structured log — the default
// sink when no UI is attached.
type LogNotificador struct{}

func (LogNotificador) Notificar(n Notificacion) {
	evt := log.Info()
	if n.Severidad == SeveridadError {
		evt = log.Error()
	}
	evt.Str("titulo", n.Titulo).Str("severidad", string(n.Severidad)).Msg(n.Mensaje)
}

// ConfirmadorContexto resolves a confirmation from the request context: the
// browser shows the dialog and re-issues the operation with the answer,
// which the transport layer stamps via ConfirmacionEnContexto. An absent
// answer counts as declined.
type ConfirmadorContexto struct{}

type confirmadoKey struct{}

// ConfirmacionEnContexto records the user's answer for ConfirmadorContexto.
func ConfirmacionEnContexto(ctx context.Context, confirmado bool) context.Context {
	return context.WithValue(ctx, confirmadoKey{}, confirmado)
}

func (ConfirmadorContexto) Confirmar(ctx context.Context, _ Confirmacion) (bool, error) {
	confirmado, ok := ctx.Value(confirmadoKey{}).(bool)
	return ok && confirmado, nil
}
