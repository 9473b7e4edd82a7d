package domain

import (
	"errors"
	"fmt"
)

// Erros do livro-caixa e do backup
var (
	// Erros de validação
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("sale not found")

	// Erros de restauração
	ErrRestoreWindowExpired = errors.New("restore is allowed only right after server start")
	ErrRestoreAlreadyUsed   = errors.New("restore already used once this boot")
	ErrNoBackupAvailable    = errors.New("no recent_*.csv backup found")
	ErrEmptyBackup          = errors.New("backup file has no data rows")
)

// LedgerError é um erro com contexto adicional sobre o campo rejeitado
type LedgerError struct {
	Err     error  // Erro base
	Field   string // Campo envolvido (quando aplicável)
	Details string // Detalhes adicionais
}

// Error implementa a interface error
func (e *LedgerError) Error() string {
	msg := e.Err.Error()
	if e.Field != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Field)
	}
	if e.Details != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Details)
	}
	return msg
}

// Unwrap retorna o erro subjacente
func (e *LedgerError) Unwrap() error {
	return e.Err
}

// NewInvalidInput cria um LedgerError de validação para o campo informado
func NewInvalidInput(field string, details string) *LedgerError {
	return &LedgerError{
		Err:     ErrInvalidInput,
		Field:   field,
		Details: details,
	}
}

// IsRestoreGateError indica se o erro é uma violação das travas de restauração
func IsRestoreGateError(err error) bool {
	return errors.Is(err, ErrRestoreWindowExpired) || errors.Is(err, ErrRestoreAlreadyUsed)
}
