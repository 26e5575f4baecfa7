// Package entity defines the indicator board metadata aggregate.
package entity

import (
	"slices"
	"time"

	"github.com/google/uuid"

	shared "indicator_backend/internal/domain/entity"
	"indicator_backend/internal/domain/rule"
)

// now is replaced in tests.
var now = time.Now

// IndicatorBoardMetadata は指標ボードの集約ルートです。
//
// すべての変更操作は変更後の状態を一旦ローカルに組み立て、ルールを検証してから
// フィールドへ反映します。ルール違反時は *rule.ViolationError を返し、状態は変わりません。
type IndicatorBoardMetadata struct {
	id                         uuid.UUID
	name                       string
	indicatorInfos             []shared.IndicatorInfo
	customForecastIndicatorIDs []string
	sections                   Sections
	createdAt                  time.Time
	updatedAt                  time.Time
}

// Snapshot is the full persisted state of a board.
type Snapshot struct {
	ID                         uuid.UUID
	Name                       string
	IndicatorInfos             []shared.IndicatorInfo
	CustomForecastIndicatorIDs []string
	Sections                   Sections
	CreatedAt                  time.Time
	UpdatedAt                  time.Time
}

// CreateNew builds an unsaved board with empty collections and the default section.
func CreateNew(name string) (*IndicatorBoardMetadata, error) {
	if err := rule.Check(rule.NewNameShouldNotBeEmpty(name)); err != nil {
		return nil, err
	}
	t := now()
	return &IndicatorBoardMetadata{
		id:                         uuid.Nil,
		name:                       name,
		indicatorInfos:             []shared.IndicatorInfo{},
		customForecastIndicatorIDs: []string{},
		sections:                   DefaultSections(),
		createdAt:                  t,
		updatedAt:                  t,
	}, nil
}

// Reconstruct rehydrates a board from persisted state.
// Stored data that already breaks a rule is rejected.
func Reconstruct(s Snapshot) (*IndicatorBoardMetadata, error) {
	infos := cloneInfos(s.IndicatorInfos)
	customIDs := cloneStrings(s.CustomForecastIndicatorIDs)
	sections := s.Sections.Clone()

	if err := rule.Check(
		rule.NewNameShouldNotBeEmpty(s.Name),
		rule.NewSectionNameShouldNotDuplicate(sections.Names()),
		rule.NewCountShouldNotExceedLimit(sections.Values()...),
		rule.NewShouldNotDuplicate(shared.IndicatorInfoIDs(infos)),
		rule.NewShouldNotDuplicate(customIDs),
	); err != nil {
		return nil, err
	}

	return &IndicatorBoardMetadata{
		id:                         s.ID,
		name:                       s.Name,
		indicatorInfos:             infos,
		customForecastIndicatorIDs: customIDs,
		sections:                   sections,
		createdAt:                  s.CreatedAt,
		updatedAt:                  s.UpdatedAt,
	}, nil
}

func (m *IndicatorBoardMetadata) ID() uuid.UUID        { return m.id }
func (m *IndicatorBoardMetadata) Name() string         { return m.name }
func (m *IndicatorBoardMetadata) CreatedAt() time.Time { return m.createdAt }
func (m *IndicatorBoardMetadata) UpdatedAt() time.Time { return m.updatedAt }

// IndicatorInfos returns a copy of the registered indicators in insertion order.
func (m *IndicatorBoardMetadata) IndicatorInfos() []shared.IndicatorInfo {
	return cloneInfos(m.indicatorInfos)
}

// IndicatorIDs returns the ids of the registered indicators.
func (m *IndicatorBoardMetadata) IndicatorIDs() []string {
	return shared.IndicatorInfoIDs(m.indicatorInfos)
}

// CustomForecastIndicatorIDs returns a copy of the registered custom forecast indicator ids.
func (m *IndicatorBoardMetadata) CustomForecastIndicatorIDs() []string {
	return cloneStrings(m.customForecastIndicatorIDs)
}

// Sections returns a copy of the section layout.
func (m *IndicatorBoardMetadata) Sections() Sections {
	return m.sections.Clone()
}

// Snapshot returns a deep copy of every field.
func (m *IndicatorBoardMetadata) Snapshot() Snapshot {
	return Snapshot{
		ID:                         m.id,
		Name:                       m.name,
		IndicatorInfos:             cloneInfos(m.indicatorInfos),
		CustomForecastIndicatorIDs: cloneStrings(m.customForecastIndicatorIDs),
		Sections:                   m.sections.Clone(),
		CreatedAt:                  m.createdAt,
		UpdatedAt:                  m.updatedAt,
	}
}

// InsertIndicatorID は指標を末尾に追加します。sections には自動で追加しません。
func (m *IndicatorBoardMetadata) InsertIndicatorID(info shared.IndicatorInfo) error {
	next := m.currentInfos()
	next = append(next, info)

	if err := rule.Check(
		rule.NewShouldNotDuplicate(shared.IndicatorInfoIDs(next)),
		rule.NewCountShouldNotExceedLimit(m.sectionsWith(info.ID)...),
		rule.NewCountShouldNotExceedLimit(shared.IndicatorInfoIDs(next), m.customForecastIndicatorIDs),
	); err != nil {
		return err
	}

	m.indicatorInfos = next
	m.touch()
	return nil
}

// DeleteIndicatorID removes a registered indicator. Sections keep any reference to it
// until they are replaced through UpdateSections.
func (m *IndicatorBoardMetadata) DeleteIndicatorID(id string) error {
	if err := rule.Check(rule.NewOnlyRegisteredIDCanBeRemoved(m.IndicatorIDs(), id)); err != nil {
		return err
	}

	next := make([]shared.IndicatorInfo, 0, len(m.indicatorInfos))
	for _, info := range m.indicatorInfos {
		if info.ID != id {
			next = append(next, info)
		}
	}

	m.indicatorInfos = next
	m.touch()
	return nil
}

func (m *IndicatorBoardMetadata) InsertCustomForecastIndicatorID(id string) error {
	next := append(cloneStrings(m.customForecastIndicatorIDs), id)

	if err := rule.Check(
		rule.NewShouldNotDuplicate(next),
		rule.NewCountShouldNotExceedLimit(m.sectionsWith(id)...),
		rule.NewCountShouldNotExceedLimit(m.IndicatorIDs(), next),
	); err != nil {
		return err
	}

	m.customForecastIndicatorIDs = next
	m.touch()
	return nil
}

func (m *IndicatorBoardMetadata) DeleteCustomForecastIndicatorID(id string) error {
	if err := rule.Check(rule.NewOnlyRegisteredIDCanBeRemoved(m.customForecastIndicatorIDs, id)); err != nil {
		return err
	}

	next := slices.DeleteFunc(cloneStrings(m.customForecastIndicatorIDs), func(v string) bool {
		return v == id
	})

	m.customForecastIndicatorIDs = next
	m.touch()
	return nil
}

// UpdateIndicatorBoardMetadataName replaces the name as given, without trimming.
func (m *IndicatorBoardMetadata) UpdateIndicatorBoardMetadataName(name string) error {
	if err := rule.Check(rule.NewNameShouldNotBeEmpty(name)); err != nil {
		return err
	}
	m.name = name
	m.touch()
	return nil
}

// UpdateSections は sections を丸ごと置き換えます。
// 全ての id は現在登録されている指標・カスタム予測指標のいずれかでなければなりません。
func (m *IndicatorBoardMetadata) UpdateSections(sections Sections) error {
	next := sections.Clone()
	if next == nil {
		next = Sections{}
	}

	if err := rule.Check(
		rule.NewSectionNameShouldNotDuplicate(next.Names()),
		rule.NewIDInSectionsShouldBeInIndicator(m.IndicatorIDs(), m.customForecastIndicatorIDs, next.Values()),
		rule.NewCountShouldNotExceedLimit(next.Values()...),
	); err != nil {
		return err
	}

	m.sections = next
	m.touch()
	return nil
}

// currentInfos returns a copy of the indicator infos, treating the legacy
// single-empty-id placeholder as an empty collection.
func (m *IndicatorBoardMetadata) currentInfos() []shared.IndicatorInfo {
	if len(m.indicatorInfos) == 1 && m.indicatorInfos[0].ID == "" {
		return []shared.IndicatorInfo{}
	}
	return cloneInfos(m.indicatorInfos)
}

// sectionsWith returns the section id lists plus one group holding id,
// so that a new reference counts against the section limit.
func (m *IndicatorBoardMetadata) sectionsWith(id string) [][]string {
	return append(m.sections.Values(), []string{id})
}

func (m *IndicatorBoardMetadata) touch() {
	m.updatedAt = now()
}

func cloneInfos(infos []shared.IndicatorInfo) []shared.IndicatorInfo {
	if infos == nil {
		return nil
	}
	out := make([]shared.IndicatorInfo, len(infos))
	copy(out, infos)
	return out
}
