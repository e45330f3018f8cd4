package domain

import "errors"

// Erros de domínio (sem dependências externas).
var (
	ErrNotFound              = errors.New("recurso não encontrado")
	ErrInvalidInput          = errors.New("entrada inválida")
	ErrDuplicate             = errors.New("recurso duplicado")
	ErrUnauthorized          = errors.New("não autorizado")
	ErrForbidden             = errors.New("acesso negado")
	ErrConflict              = errors.New("conflito com o estado atual")
	ErrInsufficientStock     = errors.New("estoque insuficiente")
	ErrCapabilityUnavailable = errors.New("suporte a Excel não disponível nesta instalação")
)
