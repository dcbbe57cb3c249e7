package dto

import (
	"github.com/SscSPs/cabinet_contabil_app/internal/core/domain"
)

// SituationParams filters the rollup.
type SituationParams struct {
	Firma string `form:"firma"`
	Month string `form:"month"`
	Year  string `form:"year"`
}

// SituationRowResponse is a row with every stage flattened into
// <stage>, <stage>HasTask, <stage>User, <stage>Notes, <stage>TaskId and
// <stage>Status keys.
type SituationRowResponse map[string]any

func ToSituationRowResponse(r *domain.SituationRow) SituationRowResponse {
	out := SituationRowResponse{
		"clientId":   r.ClientID,
		"firma":      r.Firma,
		"tip":        r.Tip,
		"data":       r.Data(),
		"dateTs":     r.DateTs(),
		"assignedTo": r.AssignedTo,
	}
	for _, s := range domain.Stages {
		cell := r.Cell(s)
		key := string(s)
		out[key] = cell.Done
		out[key+"HasTask"] = cell.HasTask
		out[key+"Status"] = cell.Status()
		if cell.User != "" {
			out[key+"User"] = cell.User
		}
		if cell.Notes != "" {
			out[key+"Notes"] = cell.Notes
		}
		if cell.HasTask {
			out[key+"TaskId"] = cell.TaskID
		}
	}
	return out
}

func ToSituationResponse(rows []domain.SituationRow) []SituationRowResponse {
	out := make([]SituationRowResponse, len(rows))
	for i := range rows {
		out[i] = ToSituationRowResponse(&rows[i])
	}
	return out
}
