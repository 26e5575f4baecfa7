package entity_test

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	shared "indicator_backend/internal/domain/entity"
	"indicator_backend/internal/domain/rule"
	"indicator_backend/internal/feature/indicatorboard/domain/entity"
)

func info(id string) shared.IndicatorInfo {
	return shared.IndicatorInfo{
		ID:            id,
		Symbol:        "SYM-" + id,
		IndicatorType: shared.IndicatorTypeStocks,
		Name:          "name " + id,
		Exchange:      "NASDAQ",
	}
}

// newBoard は指定の状態から集約を復元するテスト用ヘルパーです。
func newBoard(t *testing.T, ids []string, customIDs []string, sections entity.Sections) *entity.IndicatorBoardMetadata {
	t.Helper()
	infos := make([]shared.IndicatorInfo, 0, len(ids))
	for _, id := range ids {
		infos = append(infos, info(id))
	}
	created := time.Date(2024, 3, 4, 5, 17, 33, 0, time.UTC)
	m, err := entity.Reconstruct(entity.Snapshot{
		ID:                         uuid.MustParse("c6a99067-27d0-4358-b3d5-e63a64b604c0"),
		Name:                       "name",
		IndicatorInfos:             infos,
		CustomForecastIndicatorIDs: customIDs,
		Sections:                   sections,
		CreatedAt:                  created,
		UpdatedAt:                  created,
	})
	require.NoError(t, err)
	return m
}

func TestCreateNew(t *testing.T) {
	t.Parallel()

	t.Run("valid name", func(t *testing.T) {
		t.Parallel()
		before := time.Now()
		m, err := entity.CreateNew(" my board ")
		require.NoError(t, err)

		assert.Equal(t, uuid.Nil, m.ID())
		assert.Equal(t, " my board ", m.Name())
		assert.Empty(t, m.IndicatorInfos())
		assert.Empty(t, m.CustomForecastIndicatorIDs())
		assert.Equal(t, entity.DefaultSections(), m.Sections())
		assert.False(t, m.CreatedAt().Before(before))
		assert.Equal(t, m.CreatedAt(), m.UpdatedAt())
	})

	t.Run("blank names are rejected", func(t *testing.T) {
		t.Parallel()
		for _, name := range []string{"", "   ", "\t"} {
			m, err := entity.CreateNew(name)
			assert.Nil(t, m)
			assert.True(t, rule.IsViolation(err), "name %q", name)
			assert.EqualError(t, err, rule.NewNameShouldNotBeEmpty(name).Message())
		}
	})
}

func TestReconstruct(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		snap    entity.Snapshot
		wantErr bool
	}{
		{
			name: "valid",
			snap: entity.Snapshot{
				Name:           "name",
				IndicatorInfos: []shared.IndicatorInfo{info("indicatorId1")},
				Sections:       entity.Sections{{Name: "section1", IDs: []string{"indicatorId1"}}},
			},
		},
		{
			name:    "blank name",
			snap:    entity.Snapshot{Name: " "},
			wantErr: true,
		},
		{
			name: "sections over the limit",
			snap: entity.Snapshot{
				Name: "name",
				Sections: entity.Sections{
					{Name: "section1", IDs: []string{"1", "2", "3"}},
					{Name: "section2", IDs: []string{"4", "5", "6"}},
				},
			},
			wantErr: true,
		},
		{
			name: "duplicate section names",
			snap: entity.Snapshot{
				Name:           "name",
				IndicatorInfos: []shared.IndicatorInfo{info("indicatorId1")},
				Sections: entity.Sections{
					{Name: "section1", IDs: []string{"indicatorId1"}},
					{Name: "section1", IDs: []string{}},
				},
			},
			wantErr: true,
		},
		{
			name: "duplicate indicator ids",
			snap: entity.Snapshot{
				Name:           "name",
				IndicatorInfos: []shared.IndicatorInfo{info("indicatorId1"), info("indicatorId1")},
			},
			wantErr: true,
		},
		{
			name: "duplicate custom forecast indicator ids",
			snap: entity.Snapshot{
				Name:                       "name",
				CustomForecastIndicatorIDs: []string{"cf1", "cf1"},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			m, err := entity.Reconstruct(tt.snap)
			if tt.wantErr {
				assert.Nil(t, m)
				assert.True(t, rule.IsViolation(err))
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, m)
		})
	}
}

// TestSnapshotRoundTrip は復元直後のスナップショットが入力と一致することを検証します。
func TestSnapshotRoundTrip(t *testing.T) {
	t.Parallel()

	created := time.Date(2024, 3, 4, 5, 17, 33, 0, time.UTC)
	snap := entity.Snapshot{
		ID:                         uuid.New(),
		Name:                       "board",
		IndicatorInfos:             []shared.IndicatorInfo{info("indicatorId1"), info("indicatorId2")},
		CustomForecastIndicatorIDs: []string{"customForecastIndicatorId1"},
		Sections: entity.Sections{
			{Name: "section2", IDs: []string{"customForecastIndicatorId1"}},
			{Name: "section1", IDs: []string{"indicatorId2", "indicatorId1"}},
		},
		CreatedAt: created,
		UpdatedAt: created.Add(time.Hour),
	}

	m, err := entity.Reconstruct(snap)
	require.NoError(t, err)
	if diff := cmp.Diff(snap, m.Snapshot()); diff != "" {
		t.Errorf("snapshot mismatch (-want +got):\n%s", diff)
	}

	// 返却値を書き換えても集約には影響しない
	got := m.Snapshot()
	got.IndicatorInfos[0].ID = "mutated"
	got.Sections[0].IDs[0] = "mutated"
	if diff := cmp.Diff(snap, m.Snapshot()); diff != "" {
		t.Errorf("aggregate shares memory with snapshot (-want +got):\n%s", diff)
	}
}

func TestInsertIndicatorID(t *testing.T) {
	t.Parallel()

	t.Run("appends without touching sections", func(t *testing.T) {
		t.Parallel()
		m := newBoard(t, []string{"indicatorId1"}, nil, entity.DefaultSections())
		before := m.UpdatedAt()

		require.NoError(t, m.InsertIndicatorID(info("indicatorId2")))
		assert.Equal(t, []string{"indicatorId1", "indicatorId2"}, m.IndicatorIDs())
		assert.Equal(t, entity.DefaultSections(), m.Sections())
		assert.True(t, m.UpdatedAt().After(before))
	})

	t.Run("duplicate id leaves state unchanged", func(t *testing.T) {
		t.Parallel()
		m := newBoard(t, []string{"indicatorId1", "indicatorId2"}, nil, entity.DefaultSections())
		want := m.Snapshot()

		err := m.InsertIndicatorID(info("indicatorId2"))
		assert.EqualError(t, err, rule.NewShouldNotDuplicate(nil).Message())
		assert.Empty(t, cmp.Diff(want, m.Snapshot()))
	})

	t.Run("sixth reference is rejected", func(t *testing.T) {
		t.Parallel()
		ids := []string{"indicatorId1", "indicatorId2", "indicatorId3"}
		customIDs := []string{"customForecastIndicatorId1", "customForecastIndicatorId2"}
		sections := entity.Sections{
			{Name: "section1", IDs: ids},
			{Name: "section2", IDs: customIDs},
		}
		m := newBoard(t, ids, customIDs, sections)
		want := m.Snapshot()

		err := m.InsertIndicatorID(info("indicatorId6"))
		assert.EqualError(t, err, rule.NewCountShouldNotExceedLimit().Message())
		assert.Empty(t, cmp.Diff(want, m.Snapshot()))
	})

	t.Run("sections already at the limit reject a new reference", func(t *testing.T) {
		t.Parallel()
		m := newBoard(t, []string{"a"}, nil, entity.DefaultSections())
		require.NoError(t, m.UpdateSections(entity.Sections{
			{Name: "section1", IDs: []string{"a", "a", "a", "a", "a"}},
		}))
		want := m.Snapshot()

		err := m.InsertIndicatorID(info("b"))
		assert.EqualError(t, err, rule.NewCountShouldNotExceedLimit().Message())
		assert.Empty(t, cmp.Diff(want, m.Snapshot()))
	})

	t.Run("stale section references count against the limit", func(t *testing.T) {
		t.Parallel()
		ids := []string{"indicatorId1", "indicatorId2", "indicatorId3", "indicatorId4", "indicatorId5"}
		m := newBoard(t, ids, nil, entity.Sections{{Name: "section1", IDs: ids}})
		require.NoError(t, m.DeleteIndicatorID("indicatorId5"))

		err := m.InsertIndicatorID(info("indicatorId6"))
		assert.EqualError(t, err, rule.NewCountShouldNotExceedLimit().Message())
		assert.Len(t, m.IndicatorIDs(), 4)
	})

	t.Run("empty placeholder is treated as empty", func(t *testing.T) {
		t.Parallel()
		m, err := entity.Reconstruct(entity.Snapshot{
			Name:           "name",
			IndicatorInfos: []shared.IndicatorInfo{{ID: ""}},
		})
		require.NoError(t, err)

		require.NoError(t, m.InsertIndicatorID(info("indicatorId1")))
		assert.Equal(t, []string{"indicatorId1"}, m.IndicatorIDs())
	})
}

func TestDeleteIndicatorID(t *testing.T) {
	t.Parallel()

	t.Run("removes registered id", func(t *testing.T) {
		t.Parallel()
		m := newBoard(t, []string{"indicatorId1", "indicatorId2"}, nil, entity.DefaultSections())

		require.NoError(t, m.DeleteIndicatorID("indicatorId1"))
		assert.Equal(t, []string{"indicatorId2"}, m.IndicatorIDs())
	})

	t.Run("sections are not pruned", func(t *testing.T) {
		t.Parallel()
		sections := entity.Sections{{Name: "section1", IDs: []string{"indicatorId1"}}}
		m := newBoard(t, []string{"indicatorId1"}, nil, sections)

		require.NoError(t, m.DeleteIndicatorID("indicatorId1"))
		assert.Empty(t, m.IndicatorIDs())
		assert.Equal(t, sections, m.Sections())
	})

	t.Run("unregistered id leaves state unchanged", func(t *testing.T) {
		t.Parallel()
		m := newBoard(t, []string{"indicatorId1", "indicatorId2"}, nil, entity.DefaultSections())
		want := m.Snapshot()

		err := m.DeleteIndicatorID("invalidId")
		assert.EqualError(t, err, rule.NewOnlyRegisteredIDCanBeRemoved(nil, "").Message())
		assert.Empty(t, cmp.Diff(want, m.Snapshot()))
	})
}

func TestCustomForecastIndicatorIDs(t *testing.T) {
	t.Parallel()

	t.Run("insert and delete", func(t *testing.T) {
		t.Parallel()
		m := newBoard(t, nil, []string{"cf1"}, entity.DefaultSections())

		require.NoError(t, m.InsertCustomForecastIndicatorID("cf2"))
		assert.Equal(t, []string{"cf1", "cf2"}, m.CustomForecastIndicatorIDs())

		require.NoError(t, m.DeleteCustomForecastIndicatorID("cf1"))
		assert.Equal(t, []string{"cf2"}, m.CustomForecastIndicatorIDs())
	})

	t.Run("duplicate is rejected", func(t *testing.T) {
		t.Parallel()
		m := newBoard(t, nil, []string{"cf1"}, entity.DefaultSections())
		want := m.Snapshot()

		assert.True(t, rule.IsViolation(m.InsertCustomForecastIndicatorID("cf1")))
		assert.Empty(t, cmp.Diff(want, m.Snapshot()))
	})

	t.Run("limit counts both collections", func(t *testing.T) {
		t.Parallel()
		m := newBoard(t, []string{"i1", "i2", "i3"}, []string{"cf1", "cf2"}, entity.DefaultSections())

		err := m.InsertCustomForecastIndicatorID("cf3")
		assert.EqualError(t, err, rule.NewCountShouldNotExceedLimit().Message())
		assert.Equal(t, []string{"cf1", "cf2"}, m.CustomForecastIndicatorIDs())
	})

	t.Run("sections at the limit reject a new custom forecast indicator", func(t *testing.T) {
		t.Parallel()
		m := newBoard(t, []string{"i1"}, nil, entity.Sections{
			{Name: "section1", IDs: []string{"i1", "i1", "i1"}},
			{Name: "section2", IDs: []string{"i1", "i1"}},
		})

		err := m.InsertCustomForecastIndicatorID("cf1")
		assert.EqualError(t, err, rule.NewCountShouldNotExceedLimit().Message())
		assert.Empty(t, m.CustomForecastIndicatorIDs())
	})

	t.Run("delete unregistered is rejected", func(t *testing.T) {
		t.Parallel()
		m := newBoard(t, nil, []string{"cf1"}, entity.DefaultSections())

		assert.True(t, rule.IsViolation(m.DeleteCustomForecastIndicatorID("cf9")))
		assert.Equal(t, []string{"cf1"}, m.CustomForecastIndicatorIDs())
	})
}

func TestUpdateIndicatorBoardMetadataName(t *testing.T) {
	t.Parallel()

	m := newBoard(t, nil, nil, entity.DefaultSections())
	before := m.UpdatedAt()

	require.NoError(t, m.UpdateIndicatorBoardMetadataName("renamed"))
	assert.Equal(t, "renamed", m.Name())
	assert.True(t, m.UpdatedAt().After(before))

	for _, name := range []string{"", "  "} {
		assert.True(t, rule.IsViolation(m.UpdateIndicatorBoardMetadataName(name)))
	}
	assert.Equal(t, "renamed", m.Name())
}

func TestUpdateSections(t *testing.T) {
	t.Parallel()

	base := func(t *testing.T) *entity.IndicatorBoardMetadata {
		return newBoard(t,
			[]string{"indicatorId1", "indicatorId2"},
			[]string{"customForecastIndicatorId3", "customForecastIndicatorId5"},
			entity.DefaultSections(),
		)
	}

	tests := []struct {
		name     string
		sections entity.Sections
		wantErr  string
	}{
		{
			name: "registered ids in new order",
			sections: entity.Sections{
				{Name: "section2", IDs: []string{"customForecastIndicatorId5", "indicatorId1"}},
				{Name: "section1", IDs: []string{"indicatorId2", "customForecastIndicatorId3"}},
			},
		},
		{
			name:     "empty layout",
			sections: entity.Sections{},
		},
		{
			name: "dangling id",
			sections: entity.Sections{
				{Name: "section1", IDs: []string{"indicatorId2", "invalid"}},
			},
			wantErr: rule.NewIDInSectionsShouldBeInIndicator(nil, nil, nil).Message(),
		},
		{
			name: "duplicate section name",
			sections: entity.Sections{
				{Name: "section1", IDs: []string{"indicatorId1"}},
				{Name: "section1", IDs: []string{}},
			},
			wantErr: rule.NewSectionNameShouldNotDuplicate(nil).Message(),
		},
		{
			name: "dangling id hidden behind a repeated section name",
			sections: entity.Sections{
				{Name: "s", IDs: []string{"dangling"}},
				{Name: "s", IDs: []string{}},
			},
			wantErr: rule.NewSectionNameShouldNotDuplicate(nil).Message(),
		},
		{
			name: "dangling id in a later section",
			sections: entity.Sections{
				{Name: "section1", IDs: []string{"indicatorId1"}},
				{Name: "section2", IDs: []string{"dangling"}},
			},
			wantErr: rule.NewIDInSectionsShouldBeInIndicator(nil, nil, nil).Message(),
		},
		{
			name: "more than five entries",
			sections: entity.Sections{
				{Name: "section1", IDs: []string{"indicatorId1", "indicatorId2", "indicatorId1"}},
				{Name: "section2", IDs: []string{"customForecastIndicatorId3", "customForecastIndicatorId5", "indicatorId2"}},
			},
			wantErr: rule.NewCountShouldNotExceedLimit().Message(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			m := base(t)
			want := m.Snapshot()

			err := m.UpdateSections(tt.sections)
			if tt.wantErr != "" {
				assert.EqualError(t, err, tt.wantErr)
				assert.Empty(t, cmp.Diff(want, m.Snapshot()))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.sections, m.Sections())
		})
	}
}
