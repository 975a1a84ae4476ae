package models

// FinanceEntryForm carrega os campos do formulario de lancamento como chegam
// do cliente. Amount vem como texto no formato brasileiro ("1.234,56") e e
// validado/convertido pelo motor financeiro, nunca pelo binding.
type FinanceEntryForm struct {
	Type        string `json:"type" form:"type"`
	Amount      string `json:"amount" form:"amount"`
	Date        string `json:"date" form:"date"`
	Description string `json:"description" form:"description"`
	Category    string `json:"category" form:"category"`
	ReceiptLink string `json:"receipt_link" form:"receipt_link"`
	ProjectID   string `json:"project_id" form:"project_id"`
}

// UpdateMeetingLinkRequest atualiza o link de reuniao da missao ou de um projeto
type UpdateMeetingLinkRequest struct {
	MeetingLink string `json:"meeting_link" binding:"required"`
}

// UpdateBudgetRequest define o orcamento de um projeto
type UpdateBudgetRequest struct {
	Budget float64 `json:"budget" binding:"min=0"`
}

// FeedbackRequest e o corpo do envio de feedback
type FeedbackRequest struct {
	Type    string `json:"type" form:"type"`
	Message string `json:"message" form:"message"`
	Email   string `json:"email" form:"email"`
	Name    string `json:"name" form:"name"`
	Page    string `json:"page" form:"page"`
}
