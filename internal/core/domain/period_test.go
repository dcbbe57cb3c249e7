package domain_test

import (
	"testing"
	"time"

	"github.com/SscSPs/cabinet_contabil_app/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePeriod(t *testing.T) {
	tests := []struct {
		name    string
		month   string
		year    string
		want    domain.Period
		wantErr bool
	}{
		{name: "valid", month: "3", year: "2025", want: domain.Period{Month: 3, Year: 2025}},
		{name: "padded month", month: "03", year: "2025", want: domain.Period{Month: 3, Year: 2025}},
		{name: "missing month", month: "", year: "2025", wantErr: true},
		{name: "missing year", month: "3", year: "", wantErr: true},
		{name: "month zero", month: "0", year: "2025", wantErr: true},
		{name: "month thirteen", month: "13", year: "2025", wantErr: true},
		{name: "trailing garbage", month: "3abc", year: "2025", wantErr: true},
		{name: "decimal month", month: "3.5", year: "2025", wantErr: true},
		{name: "year too small", month: "3", year: "1899", wantErr: true},
		{name: "year too large", month: "3", year: "2101", wantErr: true},
		{name: "year bounds", month: "12", year: "2100", want: domain.Period{Month: 12, Year: 2100}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := domain.ParsePeriod(tt.month, tt.year)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPeriod_Dates(t *testing.T) {
	p := domain.Period{Month: 2, Year: 2024}

	assert.Equal(t, time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC), p.FirstDay())
	assert.Equal(t, time.Date(2024, time.February, 25, 0, 0, 0, 0, time.UTC), p.DeclarationsDay())
	assert.False(t, p.IsQuarterEnd())
	assert.True(t, domain.Period{Month: 9, Year: 2024}.IsQuarterEnd())
}

func TestToday_TruncatesToUTCDay(t *testing.T) {
	bucharest := time.FixedZone("EET", 2*60*60)
	now := time.Date(2025, time.March, 1, 1, 30, 0, 0, bucharest)

	assert.Equal(t, time.Date(2025, time.February, 28, 0, 0, 0, 0, time.UTC), domain.Today(now))
}

func TestPickAssignee(t *testing.T) {
	manager := domain.ClientUser{User: domain.User{UserID: 1, Role: domain.RoleManager}}
	admin := domain.ClientUser{User: domain.User{UserID: 2, Role: domain.RoleAdmin}}
	first := domain.ClientUser{User: domain.User{UserID: 3, Role: domain.RoleUser}}
	second := domain.ClientUser{User: domain.User{UserID: 4, Role: domain.RoleUser}}

	got, ok := domain.PickAssignee([]domain.ClientUser{manager, admin, first, second})
	assert.True(t, ok)
	assert.Equal(t, int64(3), got.UserID)

	got, ok = domain.PickAssignee([]domain.ClientUser{admin, manager})
	assert.True(t, ok)
	assert.Equal(t, int64(1), got.UserID)

	_, ok = domain.PickAssignee([]domain.ClientUser{admin})
	assert.False(t, ok)

	_, ok = domain.PickAssignee(nil)
	assert.False(t, ok)
}
