package apiErrors

import (
	"errors"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/pos-ledger-api/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	// Erros de validação
	ErrInvalidRequest = "VAL_001" // Requisição inválida
	ErrInvalidFormat  = "VAL_002" // Formato de dados inválido
	ErrRouteNotFound  = "VAL_003" // Rota inexistente
	ErrMethodNotAllow = "VAL_004" // Método não suportado pela rota

	// Erros do livro-caixa
	ErrSaleNotFound = "SALE_001" // Venda não encontrada

	// Erros de restauração
	ErrRestoreWindowExpired = "RST_001" // Fora da janela após o boot
	ErrRestoreAlreadyUsed   = "RST_002" // Restauração já usada neste boot
	ErrNoBackupAvailable    = "RST_003" // Nenhum recent_*.csv encontrado
	ErrEmptyBackup          = "RST_004" // Backup sem linhas de dados

	// Erros do servidor
	ErrInternalServer = "SRV_001" // Erro interno do servidor
	ErrBackupWrite    = "SRV_002" // Erro ao gravar ou ler backups
)

// Mapeamento de códigos de erro para status HTTP
var httpStatusMap = map[string]int{
	ErrInvalidRequest:       http.StatusBadRequest,
	ErrInvalidFormat:        http.StatusBadRequest,
	ErrRouteNotFound:        http.StatusNotFound,
	ErrMethodNotAllow:       http.StatusMethodNotAllowed,
	ErrSaleNotFound:         http.StatusNotFound,
	ErrRestoreWindowExpired: http.StatusForbidden,
	ErrRestoreAlreadyUsed:   http.StatusConflict,
	ErrNoBackupAvailable:    http.StatusNotFound,
	ErrEmptyBackup:          http.StatusBadRequest,
	ErrInternalServer:       http.StatusInternalServerError,
	ErrBackupWrite:          http.StatusInternalServerError,
}

// APIError representa um erro de API padronizado
type APIError struct {
	Code    string `json:"code"`              // Código de erro para o cliente
	Message string `json:"message,omitempty"` // Mensagem descritiva (opcional)
	Details any    `json:"details,omitempty"` // Detalhes adicionais (opcional)
}

// StatusFor retorna o status HTTP do código, 500 para códigos desconhecidos
func StatusFor(code string) int {
	status, exists := httpStatusMap[code]
	if !exists {
		return http.StatusInternalServerError
	}
	return status
}

// WriteError escreve o erro padronizado para a resposta HTTP
func WriteError(w http.ResponseWriter, code string, message string, details any) {
	apiErr := APIError{
		Code:    code,
		Message: message,
		Details: details,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(StatusFor(code))
	_ = json.NewEncoder(w).Encode(apiErr)
}

// CodeFor traduz os erros do domínio para códigos de API
func CodeFor(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return ErrInvalidRequest
	case errors.Is(err, domain.ErrNotFound):
		return ErrSaleNotFound
	case errors.Is(err, domain.ErrRestoreWindowExpired):
		return ErrRestoreWindowExpired
	case errors.Is(err, domain.ErrRestoreAlreadyUsed):
		return ErrRestoreAlreadyUsed
	case errors.Is(err, domain.ErrNoBackupAvailable):
		return ErrNoBackupAvailable
	case errors.Is(err, domain.ErrEmptyBackup):
		return ErrEmptyBackup
	default:
		return ErrInternalServer
	}
}

// FromError cria um erro de API a partir de um erro Go. Erros de validação
// carregam o campo rejeitado em details.
func FromError(err error) APIError {
	if err == nil {
		return APIError{
			Code:    ErrInternalServer,
			Message: "Erro desconhecido",
		}
	}

	apiErr := APIError{
		Code:    CodeFor(err),
		Message: err.Error(),
	}

	var ledgerErr *domain.LedgerError
	if errors.As(err, &ledgerErr) && ledgerErr.Field != "" {
		apiErr.Details = map[string]string{"field": ledgerErr.Field}
	}

	return apiErr
}

// WriteFromError escreve a resposta de erro correspondente a err
func WriteFromError(w http.ResponseWriter, err error) {
	apiErr := FromError(err)
	WriteError(w, apiErr.Code, apiErr.Message, apiErr.Details)
}
