package mapping

import (
	"github.com/SscSPs/cabinet_contabil_app/internal/core/domain"
	"github.com/SscSPs/cabinet_contabil_app/internal/models"
)

// ToModelTask converts a domain Task to a model Task
func ToModelTask(d domain.Task) models.Task {
	var stage *string
	if d.Stage != nil {
		s := string(*d.Stage)
		stage = &s
	}
	return models.Task{
		TaskID:      d.TaskID,
		Title:       d.Title,
		Date:        d.Date,
		Notes:       d.Notes,
		Objective:   d.Objective,
		Blocked:     d.Blocked,
		Done:        d.Done,
		Stage:       stage,
		UserID:      d.UserID,
		ClientID:    d.ClientID,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTask converts a model Task to a domain Task
func ToDomainTask(m models.Task) domain.Task {
	var stage *domain.Stage
	if m.Stage != nil {
		s := domain.Stage(*m.Stage)
		stage = &s
	}
	return domain.Task{
		TaskID:      m.TaskID,
		Title:       m.Title,
		Date:        m.Date,
		Notes:       m.Notes,
		Objective:   m.Objective,
		Blocked:     m.Blocked,
		Done:        m.Done,
		Stage:       stage,
		UserID:      m.UserID,
		ClientID:    m.ClientID,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainTaskViewSlice converts joined task rows to domain TaskViews
func ToDomainTaskViewSlice(ms []models.TaskView) []domain.TaskView {
	ds := make([]domain.TaskView, len(ms))
	for i, m := range ms {
		ds[i] = domain.TaskView{
			Task:       ToDomainTask(m.Task),
			ClientName: m.ClientName,
			ClientTip:  m.ClientTip,
			UserName:   m.UserName,
			UserEmail:  m.UserEmail,
		}
	}
	return ds
}
