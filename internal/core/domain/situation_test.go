package domain_test

import (
	"testing"
	"time"

	"github.com/SscSPs/cabinet_contabil_app/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func timePtr(t time.Time) *time.Time { return &t }

func taskView(id, clientID, userID int64, title string, date *time.Time, done bool) domain.TaskView {
	return domain.TaskView{
		Task: domain.Task{
			TaskID:   id,
			Title:    title,
			Date:     date,
			Done:     done,
			UserID:   userID,
			ClientID: clientID,
		},
		ClientName: stringPtr("Alfa SRL"),
		ClientTip:  stringPtr("SRL"),
		UserEmail:  stringPtr("ana@cabinet.ro"),
	}
}

var admin = &domain.Viewer{UserID: 1, Role: domain.RoleAdmin}

func TestMatchStages(t *testing.T) {
	tests := []struct {
		title string
		want  []domain.Stage
	}{
		{"Avem acte", []domain.Stage{domain.StageAvemActe}},
		{"INTRODUCERE ACTE martie", []domain.Stage{domain.StageIntrodusActe}},
		{"Verificat acte", []domain.Stage{domain.StageVerificareLuna}},
		{"Generare declaratii 300", []domain.Stage{domain.StageGeneratDeclaratii}},
		{"Depunere declaratii", []domain.Stage{domain.StageDepusDeclaratii}},
		{"Printare luna", []domain.Stage{domain.StageLunaPrintata}},
		{"avem acte, luna printata", []domain.Stage{domain.StageAvemActe, domain.StageLunaPrintata}},
		{"Depunere 112", nil},
	}
	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.MatchStages(tt.title))
		})
	}
}

func TestComputeSituation_StageIsDoneWhenAnyTaskIsDone(t *testing.T) {
	date := timePtr(time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC))
	tasks := []domain.TaskView{
		taskView(10, 7, 3, "Avem acte", date, true),
		taskView(11, 7, 3, "avem acte extra", date, false),
	}

	rows := domain.ComputeSituation(tasks, admin)

	require.Len(t, rows, 1)
	cell := rows[0].Cell(domain.StageAvemActe)
	assert.True(t, cell.Done)
	assert.True(t, cell.HasTask)
	assert.Equal(t, int64(10), cell.TaskID)
	assert.Equal(t, "done", cell.Status())
	assert.Equal(t, "missing", rows[0].Cell(domain.StageLunaPrintata).Status())
}

func TestComputeSituation_LaterUndoneTaskKeepsDone(t *testing.T) {
	date := timePtr(time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC))
	tasks := []domain.TaskView{
		taskView(11, 7, 3, "avem acte extra", date, false),
		taskView(10, 7, 3, "Avem acte", date, true),
		taskView(12, 7, 3, "Avem acte bis", date, false),
	}

	rows := domain.ComputeSituation(tasks, admin)

	require.Len(t, rows, 1)
	cell := rows[0].Cell(domain.StageAvemActe)
	assert.True(t, cell.Done)
	assert.Equal(t, int64(11), cell.TaskID)
}

func TestComputeSituation_IgnoresDatelessTasks(t *testing.T) {
	tasks := []domain.TaskView{
		taskView(1, 7, 3, "Avem acte", nil, true),
	}

	rows := domain.ComputeSituation(tasks, admin)

	assert.Empty(t, rows)
}

func TestComputeSituation_Visibility(t *testing.T) {
	date := timePtr(time.Date(2025, time.April, 25, 0, 0, 0, 0, time.UTC))
	tasks := []domain.TaskView{
		taskView(1, 7, 3, "Generat declaratii", date, false),
		taskView(2, 8, 4, "Generat declaratii", date, false),
	}

	manager := &domain.Viewer{UserID: 99, Role: domain.RoleManager}
	assert.Len(t, domain.ComputeSituation(tasks, manager), 2)

	user := &domain.Viewer{UserID: 3, Role: domain.RoleUser}
	rows := domain.ComputeSituation(tasks, user)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(7), rows[0].ClientID)

	assert.Empty(t, domain.ComputeSituation(tasks, nil))
}

func TestComputeSituation_BucketsByMonth(t *testing.T) {
	tasks := []domain.TaskView{
		taskView(1, 7, 3, "Avem acte", timePtr(time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)), true),
		taskView(2, 7, 3, "Depus declaratii", timePtr(time.Date(2025, time.March, 25, 0, 0, 0, 0, time.UTC)), false),
		taskView(3, 7, 3, "Avem acte", timePtr(time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)), false),
	}

	rows := domain.ComputeSituation(tasks, admin)

	require.Len(t, rows, 2)
	assert.Equal(t, "01/04/2025", rows[0].Data())
	assert.Equal(t, "01/03/2025", rows[1].Data())
	assert.Equal(t, time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC).UnixMilli(), rows[1].DateTs())
	assert.True(t, rows[1].Cell(domain.StageAvemActe).Done)
	assert.Equal(t, "pending", rows[1].Cell(domain.StageDepusDeclaratii).Status())
}

func TestComputeSituation_FirstLabelAndNotes(t *testing.T) {
	date := timePtr(time.Date(2025, time.March, 25, 0, 0, 0, 0, time.UTC))
	first := taskView(1, 7, 3, "Generat declaratii", date, false)
	first.UserName = stringPtr("Ana")
	second := taskView(2, 7, 4, "Generare declaratii rectificativa", date, false)
	second.UserName = stringPtr("Bogdan")
	second.Notes = stringPtr("300,390")

	rows := domain.ComputeSituation([]domain.TaskView{first, second}, admin)

	require.Len(t, rows, 1)
	cell := rows[0].Cell(domain.StageGeneratDeclaratii)
	assert.Equal(t, "Ana", cell.User)
	assert.Equal(t, "300,390", cell.Notes)
	assert.Equal(t, "Ana", rows[0].AssignedTo)
}

func TestComputeSituation_ExplicitStageOverridesTitle(t *testing.T) {
	date := timePtr(time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC))
	stage := domain.StageLunaPrintata
	task := taskView(1, 7, 3, "Avem acte", date, true)
	task.Stage = &stage

	rows := domain.ComputeSituation([]domain.TaskView{task}, admin)

	require.Len(t, rows, 1)
	assert.False(t, rows[0].Cell(domain.StageAvemActe).HasTask)
	assert.True(t, rows[0].Cell(domain.StageLunaPrintata).Done)
}

func TestComputeSituation_MissingClientGetsSyntheticName(t *testing.T) {
	date := timePtr(time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC))
	task := taskView(1, 42, 3, "Avem acte", date, false)
	task.ClientName = nil
	task.ClientTip = nil

	rows := domain.ComputeSituation([]domain.TaskView{task}, admin)

	require.Len(t, rows, 1)
	assert.Equal(t, "Client 42", rows[0].Firma)
	assert.Equal(t, "", rows[0].Tip)
}

func TestComputeSituation_SortsByRomanianCollation(t *testing.T) {
	date := timePtr(time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC))
	names := map[int64]string{1: "Zeta SRL", 2: "Ștefan PFA", 3: "Alfa SRL", 4: "Sigma SRL"}
	var tasks []domain.TaskView
	for id, name := range names {
		tv := taskView(id, id, 3, "Avem acte", date, false)
		tv.ClientName = stringPtr(name)
		tasks = append(tasks, tv)
	}

	rows := domain.ComputeSituation(tasks, admin)

	require.Len(t, rows, 4)
	got := make([]string, len(rows))
	for i, r := range rows {
		got[i] = r.Firma
	}
	assert.Equal(t, []string{"Alfa SRL", "Sigma SRL", "Ștefan PFA", "Zeta SRL"}, got)
}
