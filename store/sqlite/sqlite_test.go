package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/payroll-engine/generic"
	"github.com/warp/payroll-engine/leave"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestProfiles_CRUD(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	// GIVEN: A new profile without an ID
	end := generic.NewDate(2025, time.June, 30)
	saved, err := s.SaveProfile(ctx, Profile{
		Name:         "Eleni",
		HireDate:     generic.NewDate(2016, time.March, 1),
		EndDate:      &end,
		WeekType:     leave.SixDayWeek,
		Children:     2,
		MonthlyGross: decimal.RequireFromString("1850.50"),
	})
	require.NoError(t, err)
	require.NotEmpty(t, saved.ID)

	// WHEN: Reading it back
	got, err := s.GetProfile(ctx, saved.ID)
	require.NoError(t, err)

	// THEN: Every field survives the round trip
	assert.Equal(t, "Eleni", got.Name)
	assert.True(t, got.HireDate.Equal(generic.NewDate(2016, time.March, 1)))
	require.NotNil(t, got.EndDate)
	assert.True(t, got.EndDate.Equal(end))
	assert.Equal(t, leave.SixDayWeek, got.WeekType)
	assert.Equal(t, 2, got.Children)
	assert.True(t, got.MonthlyGross.Equal(decimal.RequireFromString("1850.5")))

	// Update keeps the ID
	got.Children = 3
	got.EndDate = nil
	_, err = s.SaveProfile(ctx, *got)
	require.NoError(t, err)
	updated, err := s.GetProfile(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, updated.Children)
	assert.Nil(t, updated.EndDate)

	list, err := s.ListProfiles(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, s.DeleteProfile(ctx, saved.ID))
	_, err = s.GetProfile(ctx, saved.ID)
	assert.True(t, errors.Is(err, generic.ErrProfileNotFound))
	assert.True(t, errors.Is(s.DeleteProfile(ctx, saved.ID), generic.ErrProfileNotFound))
}

func TestProfiles_DefaultWeekType(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	p, err := s.SaveProfile(ctx, Profile{Name: "Nikos", HireDate: generic.NewDate(2020, time.January, 1)})
	require.NoError(t, err)
	assert.Equal(t, leave.FiveDayWeek, p.WeekType)
}

func TestReplaceProfiles(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	_, err := s.SaveProfile(ctx, Profile{Name: "Old", HireDate: generic.NewDate(2010, time.May, 5)})
	require.NoError(t, err)

	saved, err := s.ReplaceProfiles(ctx, []Profile{
		{ID: "a", Name: "Anna", HireDate: generic.NewDate(2019, time.January, 1)},
		{ID: "b", Name: "Babis", HireDate: generic.NewDate(2023, time.July, 1)},
	})
	require.NoError(t, err)
	assert.Len(t, saved, 2)

	list, err := s.ListProfiles(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Anna", list[0].Name)
	assert.Equal(t, "Babis", list[1].Name)
}

func TestCalculations_History(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	base := time.Date(2025, time.March, 1, 9, 0, 0, 0, time.UTC)

	profile, err := s.SaveProfile(ctx, Profile{Name: "Eleni", HireDate: generic.NewDate(2016, time.March, 1)})
	require.NoError(t, err)

	// GIVEN: Three calculations an hour apart
	for i, kind := range []string{"gross-to-net", "severance", "gross-to-net"} {
		_, err := s.SaveCalculation(ctx, Calculation{
			Kind:         kind,
			ProfileID:    profile.ID,
			RequestJSON:  `{}`,
			ResponseJSON: `{}`,
			CreatedAt:    base.Add(time.Duration(i) * time.Hour),
		})
		require.NoError(t, err)
	}

	// WHEN: Listing
	all, err := s.ListCalculations(ctx, HistoryFilter{})
	require.NoError(t, err)

	// THEN: Newest first
	require.Len(t, all, 3)
	assert.True(t, all[0].CreatedAt.Equal(base.Add(2*time.Hour)))
	assert.Equal(t, profile.ID, all[0].ProfileID)

	byKind, err := s.ListCalculations(ctx, HistoryFilter{Kind: "gross-to-net"})
	require.NoError(t, err)
	assert.Len(t, byKind, 2)

	limited, err := s.ListCalculations(ctx, HistoryFilter{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	got, err := s.GetCalculation(ctx, all[1].ID)
	require.NoError(t, err)
	assert.Equal(t, "severance", got.Kind)

	// Deleting the profile detaches its history
	require.NoError(t, s.DeleteProfile(ctx, profile.ID))
	got, err = s.GetCalculation(ctx, all[1].ID)
	require.NoError(t, err)
	assert.Empty(t, got.ProfileID)
}

func TestCalculations_UnknownProfile(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	_, err := s.SaveCalculation(ctx, Calculation{Kind: "yearly", ProfileID: "missing", RequestJSON: `{}`, ResponseJSON: `{}`})
	assert.True(t, errors.Is(err, generic.ErrProfileNotFound))
}

func TestCalculations_DeleteAndPrune(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	base := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)

	var ids []string
	for days := 0; days < 5; days++ {
		c, err := s.SaveCalculation(ctx, Calculation{
			Kind:         "gross-to-net",
			RequestJSON:  `{}`,
			ResponseJSON: `{}`,
			CreatedAt:    base.AddDate(0, 0, days),
		})
		require.NoError(t, err)
		ids = append(ids, c.ID)
	}

	require.NoError(t, s.DeleteCalculation(ctx, ids[4]))
	_, err := s.GetCalculation(ctx, ids[4])
	assert.True(t, errors.Is(err, generic.ErrRecordNotFound))
	assert.True(t, errors.Is(s.DeleteCalculation(ctx, ids[4]), generic.ErrRecordNotFound))

	// Records from March 1 and 2 are older than the cutoff
	removed, err := s.PruneCalculations(ctx, base.AddDate(0, 0, 2))
	require.NoError(t, err)
	assert.Equal(t, int64(2), removed)

	left, err := s.ListCalculations(ctx, HistoryFilter{})
	require.NoError(t, err)
	assert.Len(t, left, 2)
}

func TestReset(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	_, err := s.SaveProfile(ctx, Profile{Name: "X", HireDate: generic.NewDate(2020, time.January, 1)})
	require.NoError(t, err)
	_, err = s.SaveCalculation(ctx, Calculation{Kind: "k", RequestJSON: `{}`, ResponseJSON: `{}`})
	require.NoError(t, err)

	require.NoError(t, s.Reset(ctx))

	profiles, err := s.ListProfiles(ctx)
	require.NoError(t, err)
	assert.Empty(t, profiles)
	calcs, err := s.ListCalculations(ctx, HistoryFilter{})
	require.NoError(t, err)
	assert.Empty(t, calcs)
}
