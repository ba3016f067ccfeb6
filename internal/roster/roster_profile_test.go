package roster_test

import (
	"encoding/json"
	"testing"
	"time"

	"go-grafik/internal/roster"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeRoster(t *testing.T) {
	t.Run("legacy string entries become profiles", func(t *testing.T) {
		profiles, migrated, err := roster.DecodeRoster([]byte(`["Adam Nowak", "Ewa Kowalska"]`))
		require.NoError(t, err)
		assert.True(t, migrated)
		require.Len(t, profiles, 2)
		assert.Equal(t, "Adam Nowak", profiles[0].Name)
		assert.Empty(t, profiles[0].Skills.Names())
	})

	t.Run("medical_date and list skills", func(t *testing.T) {
		payload := `[{"name":"Adam","medical_date":"2025-06-01","skills":["wózek","spawanie"]}]`
		profiles, migrated, err := roster.DecodeRoster([]byte(payload))
		require.NoError(t, err)
		assert.True(t, migrated)
		assert.Equal(t, "2025-06-01", profiles[0].MedicalExam)
		assert.Equal(t, []string{"wózek", "spawanie"}, profiles[0].Skills.Enabled())
	})

	t.Run("complete entries are not migrated", func(t *testing.T) {
		payload := `[{"name":"Adam","position":"Magazynier","contact":"123","email":"a@b.pl","medical_exam":"","skills":{"b":false,"a":true}}]`
		profiles, migrated, err := roster.DecodeRoster([]byte(payload))
		require.NoError(t, err)
		assert.False(t, migrated)
		assert.Equal(t, []string{"b", "a"}, profiles[0].Skills.Names())
		assert.Equal(t, []string{"a"}, profiles[0].Skills.Enabled())
	})

	t.Run("not a list", func(t *testing.T) {
		_, _, err := roster.DecodeRoster([]byte(`{"name":"Adam"}`))
		assert.Error(t, err)
	})
}

func TestEncodeRoster_KeepsShapeAndOrder(t *testing.T) {
	p := roster.NewProfile("Adam")
	p.Skills.Set("wózek", true)
	p.Skills.Set("dźwig", false)

	b, err := roster.EncodeRoster([]roster.Profile{p})
	require.NoError(t, err)
	assert.JSONEq(t,
		`[{"name":"Adam","position":"","contact":"","email":"","medical_exam":"","skills":{"wózek":true,"dźwig":false}}]`,
		string(b),
	)
	assert.Contains(t, string(b), `{"wózek":true,"dźwig":false}`)

	empty, err := roster.EncodeRoster(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(empty))
}

func TestSkillSet_Without(t *testing.T) {
	var s roster.SkillSet
	require.NoError(t, json.Unmarshal([]byte(`{"Wózek":true,"Spawanie":true}`), &s))

	out, removed := s.Without("wózek")
	assert.True(t, removed)
	assert.Equal(t, []string{"Spawanie"}, out.Names())

	_, removed = s.Without("dźwig")
	assert.False(t, removed)
}

func TestProfile_ExamDaysLeft(t *testing.T) {
	today := time.Date(2025, 3, 1, 15, 30, 0, 0, time.UTC)

	p := roster.Profile{MedicalExam: "2025-03-31"}
	days, ok := p.ExamDaysLeft(today)
	assert.True(t, ok)
	assert.Equal(t, 30, days)

	p.MedicalExam = "2025-02-27"
	days, ok = p.ExamDaysLeft(today)
	assert.True(t, ok)
	assert.Equal(t, -2, days)

	p.MedicalExam = "31.03.2025"
	_, ok = p.ExamDaysLeft(today)
	assert.False(t, ok)
}

func TestValidEmail(t *testing.T) {
	assert.True(t, roster.ValidEmail("jan.kowalski@firma.pl"))
	assert.False(t, roster.ValidEmail("jan kowalski@firma.pl"))
	assert.False(t, roster.ValidEmail("jan@firma"))
}
