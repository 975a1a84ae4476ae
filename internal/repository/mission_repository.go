package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/missoes-dashboard-api/internal/models"
	"github.com/missoes-dashboard-api/internal/progress"
)

const dateLayout = "2006-01-02"

// MissionRepository monta o documento aninhado de uma missao a partir das
// tabelas relacionais e executa as escritas pontuais do painel. Pool nulo
// (persistencia nao configurada) degrada para leituras vazias e escritas
// com retorno false, nunca para erro fatal.
type MissionRepository struct {
	pool *pgxpool.Pool
}

func NewMissionRepository(pool *pgxpool.Pool) *MissionRepository {
	return &MissionRepository{pool: pool}
}

// GetBySlug carrega uma missao completa. Antes de servir, executa a
// manutencao preguicosa: fixa closed_at de projetos concluidos e expurga
// projetos fechados ha mais de 365 dias.
func (r *MissionRepository) GetBySlug(ctx context.Context, slug string) (*models.Mission, error) {
	if r.pool == nil {
		return nil, nil
	}

	if err := r.runMaintenance(ctx); err != nil {
		return nil, err
	}

	var missionID int64
	err := r.pool.QueryRow(ctx, "SELECT id FROM missions WHERE slug = $1", slug).Scan(&missionID)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get mission: %w", err)
	}

	return r.loadByID(ctx, missionID)
}

// List carrega todas as missoes completas, ordenadas por nome
func (r *MissionRepository) List(ctx context.Context) ([]models.Mission, error) {
	if r.pool == nil {
		return nil, nil
	}

	if err := r.runMaintenance(ctx); err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx, "SELECT id FROM missions ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to list missions: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan mission id: %w", err)
		}
		ids = append(ids, id)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating missions: %w", rows.Err())
	}

	missions := make([]models.Mission, 0, len(ids))
	for _, id := range ids {
		mission, err := r.loadByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if mission != nil {
			missions = append(missions, *mission)
		}
	}
	return missions, nil
}

// maintainedProject e a visao minima de um projeto para as regras de ciclo
// de vida: status armazenado, tarefas e carimbo de fechamento.
type maintainedProject struct {
	MissionID  int64
	ProjectKey string
	Status     string
	ClosedAt   *time.Time
	Tasks      []models.Task
}

// planMaintenance decide quais projetos recebem closed_at agora e quais
// expiraram. As duas regras usam o status DERIVADO do projeto, o mesmo que
// as views exibem: um projeto sem status armazenado cujas tarefas estao
// todas "done" conta como concluido aqui tambem.
func planMaintenance(projects []maintainedProject, now time.Time) (stamp, purge []maintainedProject) {
	cutoff := now.AddDate(0, 0, -365)

	for _, p := range projects {
		derived := progress.ProjectStatus(models.Project{Status: p.Status, Tasks: p.Tasks})
		if derived != progress.StatusDone {
			continue
		}
		if p.ClosedAt == nil {
			stamp = append(stamp, p)
			continue
		}
		if p.ClosedAt.Before(cutoff) {
			purge = append(purge, p)
		}
	}
	return stamp, purge
}

// runMaintenance aplica as regras de ciclo de vida de projeto no caminho de
// leitura: closed_at e gravado uma unica vez quando o status derivado chega
// em "concluida"; projetos fechados ha 365+ dias caem com tarefas e
// lancamentos. Um projeto carimbado agora nunca expira na mesma passada.
func (r *MissionRepository) runMaintenance(ctx context.Context) error {
	projects, err := r.loadMaintainedProjects(ctx)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	stamp, purge := planMaintenance(projects, now)

	today := now.Format(dateLayout)
	for _, p := range stamp {
		_, err := r.pool.Exec(ctx, `
			UPDATE mission_projects
			SET closed_at = $1
			WHERE mission_id = $2 AND project_key = $3 AND closed_at IS NULL
		`, today, p.MissionID, p.ProjectKey)
		if err != nil {
			return fmt.Errorf("failed to set closed_at: %w", err)
		}
	}

	for _, p := range purge {
		_, err := r.pool.Exec(ctx, `
			DELETE FROM project_tasks
			WHERE mission_id = $1 AND project_key = $2
		`, p.MissionID, p.ProjectKey)
		if err != nil {
			return fmt.Errorf("failed to purge expired tasks: %w", err)
		}

		_, err = r.pool.Exec(ctx, `
			DELETE FROM finance_entries
			WHERE mission_id = $1 AND project_key = $2
		`, p.MissionID, p.ProjectKey)
		if err != nil {
			return fmt.Errorf("failed to purge expired finance entries: %w", err)
		}

		_, err = r.pool.Exec(ctx, `
			DELETE FROM mission_projects
			WHERE mission_id = $1 AND project_key = $2
		`, p.MissionID, p.ProjectKey)
		if err != nil {
			return fmt.Errorf("failed to purge expired project: %w", err)
		}
	}

	return nil
}

// loadMaintainedProjects carrega todos os projetos com seus status de tarefa
// para a derivacao de status do ciclo de vida
func (r *MissionRepository) loadMaintainedProjects(ctx context.Context) ([]maintainedProject, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT mission_id, project_key, COALESCE(status, ''), closed_at
		FROM mission_projects
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to load projects for maintenance: %w", err)
	}
	defer rows.Close()

	var projects []maintainedProject
	for rows.Next() {
		var p maintainedProject
		if err := rows.Scan(&p.MissionID, &p.ProjectKey, &p.Status, &p.ClosedAt); err != nil {
			return nil, fmt.Errorf("failed to scan project for maintenance: %w", err)
		}
		projects = append(projects, p)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating projects for maintenance: %w", rows.Err())
	}

	taskRows, err := r.pool.Query(ctx, `
		SELECT mission_id, project_key, COALESCE(status, '')
		FROM project_tasks
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to load tasks for maintenance: %w", err)
	}
	defer taskRows.Close()

	type projectRef struct {
		missionID  int64
		projectKey string
	}
	tasksByProject := make(map[projectRef][]models.Task)
	for taskRows.Next() {
		var ref projectRef
		var task models.Task
		if err := taskRows.Scan(&ref.missionID, &ref.projectKey, &task.Status); err != nil {
			return nil, fmt.Errorf("failed to scan task for maintenance: %w", err)
		}
		tasksByProject[ref] = append(tasksByProject[ref], task)
	}
	if taskRows.Err() != nil {
		return nil, fmt.Errorf("error iterating tasks for maintenance: %w", taskRows.Err())
	}

	for i := range projects {
		ref := projectRef{missionID: projects[i].MissionID, projectKey: projects[i].ProjectKey}
		projects[i].Tasks = tasksByProject[ref]
	}
	return projects, nil
}

func (r *MissionRepository) loadByID(ctx context.Context, missionID int64) (*models.Mission, error) {
	mission := &models.Mission{}

	err := r.pool.QueryRow(ctx, `
		SELECT slug, name, location, description, verse_text, verse_ref, meeting_link
		FROM missions
		WHERE id = $1
	`, missionID).Scan(
		&mission.Slug,
		&mission.Name,
		&mission.Location,
		&mission.Description,
		&mission.VerseText,
		&mission.VerseRef,
		&mission.MeetingLink,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load mission: %w", err)
	}

	if err := r.loadAbout(ctx, missionID, mission); err != nil {
		return nil, err
	}
	if err := r.loadContact(ctx, missionID, mission); err != nil {
		return nil, err
	}
	if err := r.loadHelp(ctx, missionID, mission); err != nil {
		return nil, err
	}
	if err := r.loadProjects(ctx, missionID, mission); err != nil {
		return nil, err
	}
	if err := r.loadUsers(ctx, missionID, mission); err != nil {
		return nil, err
	}
	if err := r.loadChatMessages(ctx, missionID, mission); err != nil {
		return nil, err
	}
	if err := r.loadFinanceEntries(ctx, missionID, mission); err != nil {
		return nil, err
	}
	if err := r.loadFinanceReports(ctx, missionID, mission); err != nil {
		return nil, err
	}

	return mission, nil
}

func (r *MissionRepository) loadAbout(ctx context.Context, missionID int64, mission *models.Mission) error {
	err := r.pool.QueryRow(ctx, `
		SELECT summary, mission, vision, team
		FROM mission_about
		WHERE mission_id = $1
	`, missionID).Scan(
		&mission.About.Summary,
		&mission.About.Mission,
		&mission.About.Vision,
		&mission.About.Team,
	)
	if err != nil && err != pgx.ErrNoRows {
		return fmt.Errorf("failed to load mission about: %w", err)
	}

	rows, err := r.pool.Query(ctx,
		"SELECT value FROM mission_values WHERE mission_id = $1", missionID)
	if err != nil {
		return fmt.Errorf("failed to load mission values: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var value string
		if err := rows.Scan(&value); err != nil {
			return fmt.Errorf("failed to scan mission value: %w", err)
		}
		mission.About.Values = append(mission.About.Values, value)
	}
	return rows.Err()
}

func (r *MissionRepository) loadContact(ctx context.Context, missionID int64, mission *models.Mission) error {
	err := r.pool.QueryRow(ctx, `
		SELECT email, phone, address, hours
		FROM mission_contact
		WHERE mission_id = $1
	`, missionID).Scan(
		&mission.Contact.Email,
		&mission.Contact.Phone,
		&mission.Contact.Address,
		&mission.Contact.Hours,
	)
	if err != nil && err != pgx.ErrNoRows {
		return fmt.Errorf("failed to load mission contact: %w", err)
	}

	err = r.pool.QueryRow(ctx, `
		SELECT instagram, facebook, site
		FROM mission_contact_social
		WHERE mission_id = $1
	`, missionID).Scan(
		&mission.Contact.Social.Instagram,
		&mission.Contact.Social.Facebook,
		&mission.Contact.Social.Site,
	)
	if err != nil && err != pgx.ErrNoRows {
		return fmt.Errorf("failed to load mission social: %w", err)
	}
	return nil
}

func (r *MissionRepository) loadHelp(ctx context.Context, missionID int64, mission *models.Mission) error {
	rows, err := r.pool.Query(ctx,
		"SELECT title, description FROM mission_help WHERE mission_id = $1", missionID)
	if err != nil {
		return fmt.Errorf("failed to load mission help: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item models.HelpItem
		if err := rows.Scan(&item.Title, &item.Description); err != nil {
			return fmt.Errorf("failed to scan help item: %w", err)
		}
		mission.Help = append(mission.Help, item)
	}
	return rows.Err()
}

func (r *MissionRepository) loadProjects(ctx context.Context, missionID int64, mission *models.Mission) error {
	rows, err := r.pool.Query(ctx, `
		SELECT project_key, title, description, COALESCE(status, ''),
		       COALESCE(meeting_link, ''), COALESCE(budget, 0), closed_at
		FROM mission_projects
		WHERE mission_id = $1
	`, missionID)
	if err != nil {
		return fmt.Errorf("failed to load projects: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var project models.Project
		var closedAt *time.Time
		if err := rows.Scan(
			&project.ID,
			&project.Title,
			&project.Description,
			&project.Status,
			&project.MeetingLink,
			&project.Budget,
			&closedAt,
		); err != nil {
			return fmt.Errorf("failed to scan project: %w", err)
		}
		if closedAt != nil {
			project.ClosedAt = closedAt.Format(dateLayout)
		}
		mission.Projects = append(mission.Projects, project)
	}
	if rows.Err() != nil {
		return fmt.Errorf("error iterating projects: %w", rows.Err())
	}

	return r.loadTasks(ctx, missionID, mission)
}

func (r *MissionRepository) loadTasks(ctx context.Context, missionID int64, mission *models.Mission) error {
	rows, err := r.pool.Query(ctx, `
		SELECT project_key, title, COALESCE(status, ''), COALESCE(assignee, ''),
		       COALESCE(weight, 1)
		FROM project_tasks
		WHERE mission_id = $1
	`, missionID)
	if err != nil {
		return fmt.Errorf("failed to load tasks: %w", err)
	}
	defer rows.Close()

	tasksByProject := make(map[string][]models.Task)
	for rows.Next() {
		var projectKey string
		var task models.Task
		if err := rows.Scan(&projectKey, &task.Title, &task.Status, &task.Assignee, &task.Weight); err != nil {
			return fmt.Errorf("failed to scan task: %w", err)
		}
		tasksByProject[projectKey] = append(tasksByProject[projectKey], task)
	}
	if rows.Err() != nil {
		return fmt.Errorf("error iterating tasks: %w", rows.Err())
	}

	for i := range mission.Projects {
		mission.Projects[i].Tasks = tasksByProject[mission.Projects[i].ID]
	}
	return nil
}

func (r *MissionRepository) loadUsers(ctx context.Context, missionID int64, mission *models.Mission) error {
	rows, err := r.pool.Query(ctx, `
		SELECT name, email, COALESCE(institutional_email, ''), role, COALESCE(status, '')
		FROM mission_users
		WHERE mission_id = $1
	`, missionID)
	if err != nil {
		return fmt.Errorf("failed to load users: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var user models.MissionUser
		if err := rows.Scan(&user.Name, &user.Email, &user.InstitutionalEmail, &user.Role, &user.Status); err != nil {
			return fmt.Errorf("failed to scan user: %w", err)
		}
		mission.Users = append(mission.Users, user)
	}
	return rows.Err()
}

func (r *MissionRepository) loadChatMessages(ctx context.Context, missionID int64, mission *models.Mission) error {
	rows, err := r.pool.Query(ctx, `
		SELECT from_email, from_name, to_email, message, sent_at
		FROM chat_messages
		WHERE mission_id = $1
		ORDER BY sent_at
	`, missionID)
	if err != nil {
		return fmt.Errorf("failed to load chat messages: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var msg models.ChatMessage
		if err := rows.Scan(&msg.FromEmail, &msg.FromName, &msg.ToEmail, &msg.Message, &msg.SentAt); err != nil {
			return fmt.Errorf("failed to scan chat message: %w", err)
		}
		mission.ChatMessages = append(mission.ChatMessages, msg)
	}
	return rows.Err()
}

func (r *MissionRepository) loadFinanceEntries(ctx context.Context, missionID int64, mission *models.Mission) error {
	rows, err := r.pool.Query(ctx, `
		SELECT id, date, type, amount, description, COALESCE(category, ''),
		       COALESCE(receipt_link, ''), COALESCE(project_key, ''), created_by, created_at
		FROM finance_entries
		WHERE mission_id = $1
	`, missionID)
	if err != nil {
		return fmt.Errorf("failed to load finance entries: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var entry models.FinanceEntry
		var date time.Time
		if err := rows.Scan(
			&entry.ID,
			&date,
			&entry.Type,
			&entry.Amount,
			&entry.Description,
			&entry.Category,
			&entry.ReceiptLink,
			&entry.ProjectID,
			&entry.CreatedBy,
			&entry.CreatedAt,
		); err != nil {
			return fmt.Errorf("failed to scan finance entry: %w", err)
		}
		entry.Date = date.Format(dateLayout)
		mission.FinanceEntries = append(mission.FinanceEntries, entry)
	}
	return rows.Err()
}

func (r *MissionRepository) loadFinanceReports(ctx context.Context, missionID int64, mission *models.Mission) error {
	rows, err := r.pool.Query(ctx, `
		SELECT report_json, created_by, created_at
		FROM finance_reports
		WHERE mission_id = $1
	`, missionID)
	if err != nil {
		return fmt.Errorf("failed to load finance reports: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var raw []byte
		var report models.FinanceReport
		if err := rows.Scan(&raw, &report.CreatedBy, &report.CreatedAt); err != nil {
			return fmt.Errorf("failed to scan finance report: %w", err)
		}

		// Relatorio e persistido verbatim como {periods, state}; JSON
		// corrompido vira relatorio vazio, nao erro
		var payload struct {
			Periods json.RawMessage `json:"periods"`
			State   json.RawMessage `json:"state"`
		}
		if err := json.Unmarshal(raw, &payload); err == nil {
			report.Periods = payload.Periods
			report.State = payload.State
		}
		mission.FinanceReports = append(mission.FinanceReports, report)
	}
	return rows.Err()
}

// UpdateMeetingLink troca o link de reuniao da missao. Retorna false quando
// nenhuma linha casa com o slug; isso e resultado esperado, nao erro.
func (r *MissionRepository) UpdateMeetingLink(ctx context.Context, slug, meetingLink string) (bool, error) {
	if r.pool == nil {
		return false, nil
	}

	result, err := r.pool.Exec(ctx,
		"UPDATE missions SET meeting_link = $1 WHERE slug = $2", meetingLink, slug)
	if err != nil {
		return false, fmt.Errorf("failed to update meeting link: %w", err)
	}
	return result.RowsAffected() > 0, nil
}

// UpdateProjectMeetingLink troca o link de reuniao de um projeto
func (r *MissionRepository) UpdateProjectMeetingLink(ctx context.Context, slug, projectID, meetingLink string) (bool, error) {
	if r.pool == nil {
		return false, nil
	}

	result, err := r.pool.Exec(ctx, `
		UPDATE mission_projects
		SET meeting_link = $1
		WHERE project_key = $2 AND mission_id = (SELECT id FROM missions WHERE slug = $3)
	`, meetingLink, projectID, slug)
	if err != nil {
		return false, fmt.Errorf("failed to update project meeting link: %w", err)
	}
	return result.RowsAffected() > 0, nil
}

// UpdateProjectBudget define o orcamento de um projeto
func (r *MissionRepository) UpdateProjectBudget(ctx context.Context, slug, projectID string, budget float64) (bool, error) {
	if r.pool == nil {
		return false, nil
	}

	result, err := r.pool.Exec(ctx, `
		UPDATE mission_projects
		SET budget = $1
		WHERE project_key = $2 AND mission_id = (SELECT id FROM missions WHERE slug = $3)
	`, budget, projectID, slug)
	if err != nil {
		return false, fmt.Errorf("failed to update project budget: %w", err)
	}
	return result.RowsAffected() > 0, nil
}

// AddFinanceEntry insere um lancamento ja validado pelo motor financeiro
func (r *MissionRepository) AddFinanceEntry(ctx context.Context, slug string, entry *models.FinanceEntry) (bool, error) {
	if r.pool == nil {
		return false, nil
	}

	var projectKey *string
	if entry.ProjectID != "" {
		projectKey = &entry.ProjectID
	}

	result, err := r.pool.Exec(ctx, `
		INSERT INTO finance_entries
		(id, mission_id, date, type, amount, description, category, receipt_link,
		 project_key, created_by, created_at)
		SELECT $1, id, $3, $4, $5, $6, $7, $8, $9, $10, $11
		FROM missions WHERE slug = $2
	`,
		entry.ID,
		slug,
		entry.Date,
		entry.Type,
		entry.Amount,
		entry.Description,
		entry.Category,
		entry.ReceiptLink,
		projectKey,
		entry.CreatedBy,
		entry.CreatedAt,
	)
	if err != nil {
		return false, fmt.Errorf("failed to add finance entry: %w", err)
	}
	return result.RowsAffected() > 0, nil
}

// AddFinanceReport grava um retrato do painel financeiro verbatim
func (r *MissionRepository) AddFinanceReport(ctx context.Context, slug string, report *models.FinanceReport) (bool, error) {
	if r.pool == nil {
		return false, nil
	}

	payload, err := json.Marshal(map[string]json.RawMessage{
		"periods": report.Periods,
		"state":   report.State,
	})
	if err != nil {
		return false, fmt.Errorf("failed to marshal report: %w", err)
	}

	result, err := r.pool.Exec(ctx, `
		INSERT INTO finance_reports (mission_id, report_json, created_by, created_at)
		SELECT id, $2, $3, $4
		FROM missions WHERE slug = $1
	`, slug, payload, report.CreatedBy, report.CreatedAt)
	if err != nil {
		return false, fmt.Errorf("failed to add finance report: %w", err)
	}
	return result.RowsAffected() > 0, nil
}
