package models

import "encoding/json"

// Tipos de lancamento financeiro
const (
	EntryTypeIn  = "entrada"
	EntryTypeOut = "saida"
)

// FinanceEntry e um lancamento do livro-caixa da missao. Imutavel depois de
// criado: nao existe operacao de edicao ou remocao de lancamentos.
// ProjectID vazio significa lancamento do caixa central.
type FinanceEntry struct {
	ID          string  `json:"id"`
	Date        string  `json:"date"`
	Type        string  `json:"type"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	ReceiptLink string  `json:"receipt_link"`
	ProjectID   string  `json:"project_id"`
	CreatedBy   string  `json:"created_by"`
	CreatedAt   string  `json:"created_at"`
}

// FinanceReport e um retrato persistido do painel financeiro no momento da
// geracao. Periods e State sao gravados e devolvidos verbatim.
type FinanceReport struct {
	Periods   json.RawMessage `json:"periods"`
	State     json.RawMessage `json:"state"`
	CreatedBy string          `json:"created_by"`
	CreatedAt string          `json:"created_at"`
}

// Feedback e um retorno enviado por visitantes ou membros sobre o portal
type Feedback struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	Message   string `json:"message"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Page      string `json:"page"`
	CreatedAt string `json:"created_at"`
}
