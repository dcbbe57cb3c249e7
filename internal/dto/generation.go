package dto

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/SscSPs/cabinet_contabil_app/internal/core/domain"
)

// Param is a raw generation parameter. It binds from a query string or from a
// JSON string or number, and keeps the literal text so parsing stays strict.
type Param string

func (p *Param) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*p = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*p = Param(s)
		return nil
	}
	*p = Param(data)
	return nil
}

// String returns the trimmed text.
func (p Param) String() string { return strings.TrimSpace(string(p)) }

// Bool parses the parameter as a flag; empty is false.
func (p Param) Bool() (bool, error) {
	if p.String() == "" {
		return false, nil
	}
	return strconv.ParseBool(p.String())
}

// GenerationParams collects every parameter any generation endpoint accepts.
type GenerationParams struct {
	Frequency    Param `form:"frequency" json:"frequency"`
	Month        Param `form:"month" json:"month"`
	Year         Param `form:"year" json:"year"`
	ClientID     Param `form:"clientId" json:"clientId"`
	Note         Param `form:"note" json:"note"`
	SkipExisting Param `form:"skipExisting" json:"skipExisting"`
}

// Merge fills the fields of p that are empty from other.
func (p *GenerationParams) Merge(other GenerationParams) {
	fill := func(dst *Param, src Param) {
		if dst.String() == "" {
			*dst = src
		}
	}
	fill(&p.Frequency, other.Frequency)
	fill(&p.Month, other.Month)
	fill(&p.Year, other.Year)
	fill(&p.ClientID, other.ClientID)
	fill(&p.Note, other.Note)
	fill(&p.SkipExisting, other.SkipExisting)
}

// GenerationResponse summarizes a generator run.
type GenerationResponse struct {
	Message string         `json:"message"`
	Tasks   []TaskResponse `json:"tasks"`
	Count   int            `json:"count"`
	Skipped int            `json:"skipped"`
}

func ToGenerationResponse(r *domain.GenerationReport) GenerationResponse {
	return GenerationResponse{
		Message: r.Message,
		Tasks:   ToTaskResponses(r.Tasks),
		Count:   len(r.Tasks),
		Skipped: r.Skipped,
	}
}

// NoteActionResponse reports what happened to one title.
type NoteActionResponse struct {
	Action string `json:"action"`
	Title  string `json:"title"`
	TaskID int64  `json:"taskId"`
	Notes  string `json:"notes"`
	Reason string `json:"reason,omitempty"`
}

// ConditionalNotesResponse is the per-title log of a conditional-notes run.
type ConditionalNotesResponse struct {
	Message  string               `json:"message"`
	ClientID int64                `json:"clientId"`
	Month    int                  `json:"month"`
	Year     int                  `json:"year"`
	Note     string               `json:"note"`
	Results  []NoteActionResponse `json:"results"`
}

func ToConditionalNotesResponse(r *domain.NoteReport) ConditionalNotesResponse {
	results := make([]NoteActionResponse, len(r.Actions))
	for i, a := range r.Actions {
		results[i] = NoteActionResponse{
			Action: string(a.Action),
			Title:  a.Title,
			TaskID: a.TaskID,
			Notes:  a.Notes,
			Reason: a.Reason,
		}
	}
	return ConditionalNotesResponse{
		Message:  "Tasks processed successfully",
		ClientID: r.ClientID,
		Month:    r.Period.Month,
		Year:     r.Period.Year,
		Note:     r.Note,
		Results:  results,
	}
}
