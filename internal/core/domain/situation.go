package domain

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Stage is one of the six monthly compliance milestones.
type Stage string

const (
	StageAvemActe          Stage = "avemActe"
	StageIntrodusActe      Stage = "introdusActe"
	StageVerificareLuna    Stage = "verificareLuna"
	StageGeneratDeclaratii Stage = "generatDeclaratii"
	StageDepusDeclaratii   Stage = "depusDeclaratii"
	StageLunaPrintata      Stage = "lunaPrintata"
)

// Stages lists every stage in display order.
var Stages = []Stage{
	StageAvemActe,
	StageIntrodusActe,
	StageVerificareLuna,
	StageGeneratDeclaratii,
	StageDepusDeclaratii,
	StageLunaPrintata,
}

// stagePatterns classify legacy titles that carry no explicit stage.
var stagePatterns = map[Stage][]string{
	StageAvemActe:          {"avem acte"},
	StageIntrodusActe:      {"introdus acte", "introdusacte", "introducere acte"},
	StageVerificareLuna:    {"verificare luna", "verificat luna", "verificare acte", "verificat acte"},
	StageGeneratDeclaratii: {"generat declaratii", "generare declaratii", "generare declara"},
	StageDepusDeclaratii:   {"depus declaratii", "depunere declaratii", "depunere declara"},
	StageLunaPrintata:      {"luna printata", "printat luna", "printare luna"},
}

// IsValid reports whether s is a known stage.
func (s Stage) IsValid() bool {
	_, ok := stagePatterns[s]
	return ok
}

// StageForTitle returns the stage a generator title belongs to, if any.
func StageForTitle(title string) (Stage, bool) {
	switch title {
	case TitleAvemActe:
		return StageAvemActe, true
	case TitleIntrodusActe:
		return StageIntrodusActe, true
	case TitleVerificatActe:
		return StageVerificareLuna, true
	case TitleGeneratDeclaratii:
		return StageGeneratDeclaratii, true
	case TitleDepusDeclaratii:
		return StageDepusDeclaratii, true
	case TitleLunaPrintata:
		return StageLunaPrintata, true
	}
	return "", false
}

// MatchStages returns every stage whose patterns occur in the title,
// case-insensitively. A title can hit several stages.
func MatchStages(title string) []Stage {
	t := strings.ToLower(title)
	var hits []Stage
	for _, s := range Stages {
		for _, p := range stagePatterns[s] {
			if strings.Contains(t, p) {
				hits = append(hits, s)
				break
			}
		}
	}
	return hits
}

// StagesOf classifies a task: an explicit stage wins over title matching.
func StagesOf(t Task) []Stage {
	if t.Stage != nil && t.Stage.IsValid() {
		return []Stage{*t.Stage}
	}
	if t.Title == "" {
		return nil
	}
	return MatchStages(t.Title)
}

// StageCell is the state of one stage within a client-month.
type StageCell struct {
	Done    bool
	HasTask bool
	User    string
	Notes   string
	TaskID  int64
}

// Status renders the cell as missing, done or pending.
func (c StageCell) Status() string {
	switch {
	case !c.HasTask:
		return "missing"
	case c.Done:
		return "done"
	default:
		return "pending"
	}
}

// SituationRow summarizes one client's stages for one month.
type SituationRow struct {
	ClientID   int64
	Firma      string
	Tip        string
	Period     Period
	MonthStart time.Time
	AssignedTo string
	Cells      map[Stage]*StageCell
}

// Data renders the month start as dd/mm/yyyy.
func (r SituationRow) Data() string {
	return r.MonthStart.Format("02/01/2006")
}

// DateTs is the month start in unix milliseconds.
func (r SituationRow) DateTs() int64 {
	return r.MonthStart.UnixMilli()
}

// Cell returns the cell for a stage, never nil.
func (r SituationRow) Cell(s Stage) StageCell {
	if c, ok := r.Cells[s]; ok && c != nil {
		return *c
	}
	return StageCell{}
}

type situationKey struct {
	clientID int64
	period   Period
}

func newSituationRow(t TaskView, p Period) *SituationRow {
	row := &SituationRow{
		ClientID:   t.ClientID,
		Firma:      fmt.Sprintf("Client %d", t.ClientID),
		Period:     p,
		MonthStart: p.FirstDay(),
		Cells:      make(map[Stage]*StageCell, len(Stages)),
	}
	if t.ClientName != nil {
		row.Firma = *t.ClientName
	}
	if t.ClientTip != nil {
		row.Tip = *t.ClientTip
	}
	for _, s := range Stages {
		row.Cells[s] = &StageCell{}
	}
	return row
}

// ComputeSituation buckets the viewer's dated tasks by client and month and
// classifies them into stages. A stage is done when any of its tasks is done.
// Rows are sorted by firma in Romanian collation, newest month first.
func ComputeSituation(tasks []TaskView, viewer *Viewer) []SituationRow {
	if viewer == nil {
		return []SituationRow{}
	}

	rows := make(map[situationKey]*SituationRow)
	for _, t := range tasks {
		if t.Date == nil || !viewer.CanSee(t.Task) {
			continue
		}
		p := PeriodOf(*t.Date)
		key := situationKey{clientID: t.ClientID, period: p}
		row, ok := rows[key]
		if !ok {
			row = newSituationRow(t, p)
			rows[key] = row
		}

		label := t.AssigneeLabel()
		if row.AssignedTo == "" {
			row.AssignedTo = label
		}

		for _, s := range StagesOf(t.Task) {
			cell := row.Cells[s]
			if !cell.HasTask {
				cell.TaskID = t.TaskID
			}
			cell.HasTask = true
			if t.Done {
				cell.Done = true
			}
			if cell.User == "" {
				cell.User = label
			}
			if cell.Notes == "" && t.Notes != nil {
				cell.Notes = *t.Notes
			}
		}
	}

	result := make([]SituationRow, 0, len(rows))
	for _, row := range rows {
		result = append(result, *row)
	}
	SortSituation(result)
	return result
}

// SortSituation orders rows by firma (Romanian collation) then month descending.
func SortSituation(rows []SituationRow) {
	col := collate.New(language.Romanian)
	sort.SliceStable(rows, func(i, j int) bool {
		if c := col.CompareString(rows[i].Firma, rows[j].Firma); c != 0 {
			return c < 0
		}
		if !rows[i].MonthStart.Equal(rows[j].MonthStart) {
			return rows[i].MonthStart.After(rows[j].MonthStart)
		}
		return rows[i].ClientID < rows[j].ClientID
	})
}
