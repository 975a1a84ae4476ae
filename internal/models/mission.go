package models

// Mission e o agregado raiz de um tenant: tudo que pertence a uma missao
// e montado em um unico documento a partir das linhas persistidas.
// Status e Progress sao derivados na normalizacao, nunca persistidos.
type Mission struct {
	Slug        string `json:"slug"`
	Name        string `json:"name"`
	Location    string `json:"location"`
	Description string `json:"description"`
	VerseText   string `json:"verse_text"`
	VerseRef    string `json:"verse_ref"`
	MeetingLink string `json:"meeting_link"`

	About   About      `json:"about"`
	Contact Contact    `json:"contact"`
	Help    []HelpItem `json:"help"`

	Projects       []Project       `json:"projects"`
	Users          []MissionUser   `json:"users"`
	ChatMessages   []ChatMessage   `json:"chat_messages"`
	FinanceEntries []FinanceEntry  `json:"finance_entries"`
	FinanceReports []FinanceReport `json:"finance_reports"`

	Status   string `json:"status"`
	Progress int    `json:"progress"`
}

// About descreve a secao institucional da missao
type About struct {
	Summary string   `json:"summary"`
	Mission string   `json:"mission"`
	Vision  string   `json:"vision"`
	Values  []string `json:"values"`
	Team    string   `json:"team"`
}

// Contact agrupa os canais de contato da missao
type Contact struct {
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Hours   string `json:"hours"`
	Social  Social `json:"social"`
}

type Social struct {
	Instagram string `json:"instagram"`
	Facebook  string `json:"facebook"`
	Site      string `json:"site"`
}

// HelpItem e uma forma de ajudar a missao exibida na pagina publica
type HelpItem struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// MissionUser e um membro da missao; Email e a identidade dentro do tenant
type MissionUser struct {
	Name               string `json:"name"`
	Email              string `json:"email"`
	InstitutionalEmail string `json:"institutional_email"`
	Role               string `json:"role"`
	Status             string `json:"status"`
}

// ChatMessage e uma mensagem do chat interno entre dois membros
type ChatMessage struct {
	FromEmail string `json:"from_email"`
	FromName  string `json:"from_name"`
	ToEmail   string `json:"to_email"`
	Message   string `json:"message"`
	SentAt    string `json:"sent_at"`
}

// MissionSummary e a visao reduzida usada na listagem de missoes
type MissionSummary struct {
	Slug        string `json:"slug"`
	Name        string `json:"name"`
	Location    string `json:"location"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Progress    int    `json:"progress"`
}

// Summary projeta a missao para a listagem
func (m *Mission) Summary() MissionSummary {
	return MissionSummary{
		Slug:        m.Slug,
		Name:        m.Name,
		Location:    m.Location,
		Description: m.Description,
		Status:      m.Status,
		Progress:    m.Progress,
	}
}

// FindProject localiza um projeto pelo id derivado do titulo
func (m *Mission) FindProject(projectID string) *Project {
	for i := range m.Projects {
		if m.Projects[i].ID == projectID {
			return &m.Projects[i]
		}
	}
	return nil
}

// FindUser localiza um membro pelo email
func (m *Mission) FindUser(email string) *MissionUser {
	for i := range m.Users {
		if m.Users[i].Email == email {
			return &m.Users[i]
		}
	}
	return nil
}
