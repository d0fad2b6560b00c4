package domain

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
)

func freezeClock(t *testing.T, at time.Time) {
	t.Helper()
	SetClock(clockwork.NewFakeClockAt(at))
	t.Cleanup(func() { SetClock(nil) })
}

func TestSurveyFilename(t *testing.T) {
	freezeClock(t, time.Date(2024, time.May, 14, 7, 5, 42, 0, time.UTC))
	paris, err := time.LoadLocation("Europe/Paris")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}

	tests := []struct {
		name   string
		survey Survey
		loc    *time.Location
		want   string
	}{
		{"soil named", Survey{Type: TypeSoil, Specific: &SoilData{Name: "SC1"}}, time.UTC, "sondage-SC1-2024-05-14-07-05"},
		{"soil unnamed", Survey{Type: TypeSoil, Specific: &SoilData{}}, time.UTC, "sondage-sans-nom-2024-05-14-07-05"},
		{"local time", Survey{Type: TypeGroundwater, Specific: &GroundwaterData{Name: "PZ 2"}}, paris, "piezometre-PZ 2-2024-05-14-09-05"},
		{"path characters", Survey{Type: TypeGas, Specific: &GasData{SampleDescription: GasSampleDescription{Name: "A/B:1"}}}, nil, "gaz-du-sol-A_B_1-2024-05-14-07-05"},
		{"pid never named", Survey{Type: TypePID, Specific: &PIDData{}}, time.UTC, "campagne-pid-sans-nom-2024-05-14-07-05"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SurveyFilename(tt.survey, tt.loc))
		})
	}
}

func TestSurveyFilename_StableWithinMinute(t *testing.T) {
	fc := clockwork.NewFakeClockAt(time.Date(2024, time.May, 14, 7, 5, 1, 0, time.UTC))
	SetClock(fc)
	t.Cleanup(func() { SetClock(nil) })

	s := Survey{Type: TypeSoil, Specific: &SoilData{Name: "SC1"}}
	first := SurveyFilename(s, time.UTC)
	fc.Advance(30 * time.Second)
	assert.Equal(t, first, SurveyFilename(s, time.UTC))
	fc.Advance(30 * time.Second)
	assert.NotEqual(t, first, SurveyFilename(s, time.UTC))
}

func TestListFilename(t *testing.T) {
	assert.Equal(t, "fiches-AFF-2024-017", ListFilename(Site{ProjectNumber: "AFF-2024-017"}))
	assert.Equal(t, "fiches-sans-numero", ListFilename(Site{}))
	assert.Equal(t, "fiches-sans-numero", ListFilename(Site{ProjectNumber: "  "}))
}

func TestSite_Address(t *testing.T) {
	assert.Equal(t, "12 rue des Lilas, Lyon", Site{Location: "12 rue des Lilas", City: "Lyon"}.Address())
	assert.Equal(t, "Lyon", Site{City: "Lyon"}.Address())
	assert.Equal(t, "12 rue des Lilas", Site{Location: "12 rue des Lilas"}.Address())
	assert.Empty(t, Site{}.Address())
}
