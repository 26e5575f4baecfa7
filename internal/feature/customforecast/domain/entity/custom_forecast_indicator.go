// Package entity defines the custom forecast indicator aggregate.
package entity

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	shared "indicator_backend/internal/domain/entity"
	"indicator_backend/internal/domain/rule"
)

// now is replaced in tests.
var now = time.Now

// ErrSourceIndicatorsMismatch is returned when the resolved catalog entries do not line up
// with the weighted sources they were resolved from.
var ErrSourceIndicatorsMismatch = errors.New("resolved source indicators do not match source indicators information")

// SourceIndicatorInformation は予測に使う材料指標とその重みです。
type SourceIndicatorInformation struct {
	SourceIndicatorID string               `json:"sourceIndicatorId"`
	IndicatorType     shared.IndicatorType `json:"indicatorType"`
	Weight            decimal.Decimal      `json:"weight"`
}

// CustomForecastIndicator は材料指標の重み付けから目標指標を予測するユーザー定義の指標です。
type CustomForecastIndicator struct {
	id                          uuid.UUID
	name                        string
	targetIndicator             shared.IndicatorInfo
	sourceIndicatorsInformation []SourceIndicatorInformation
	sourceIndicators            []shared.IndicatorInfo
	createdAt                   time.Time
	updatedAt                   time.Time
}

// Snapshot is the full persisted state of a custom forecast indicator.
type Snapshot struct {
	ID                          uuid.UUID
	Name                        string
	TargetIndicator             shared.IndicatorInfo
	SourceIndicatorsInformation []SourceIndicatorInformation
	SourceIndicators            []shared.IndicatorInfo
	CreatedAt                   time.Time
	UpdatedAt                   time.Time
}

// CreateNew builds an unsaved indicator with no source indicators.
func CreateNew(name string, target shared.IndicatorInfo) (*CustomForecastIndicator, error) {
	if err := rule.Check(rule.NewNameShouldNotBeEmpty(name)); err != nil {
		return nil, err
	}
	t := now()
	return &CustomForecastIndicator{
		name:                        name,
		targetIndicator:             target,
		sourceIndicatorsInformation: []SourceIndicatorInformation{},
		sourceIndicators:            []shared.IndicatorInfo{},
		createdAt:                   t,
		updatedAt:                   t,
	}, nil
}

// Reconstruct rehydrates a stored indicator, rejecting state that already breaks a rule.
func Reconstruct(s Snapshot) (*CustomForecastIndicator, error) {
	infos := cloneSourceInfos(s.SourceIndicatorsInformation)
	if err := checkSources(s.TargetIndicator.ID, infos); err != nil {
		return nil, err
	}
	if err := rule.Check(rule.NewNameShouldNotBeEmpty(s.Name)); err != nil {
		return nil, err
	}
	return &CustomForecastIndicator{
		id:                          s.ID,
		name:                        s.Name,
		targetIndicator:             s.TargetIndicator,
		sourceIndicatorsInformation: infos,
		sourceIndicators:            cloneInfos(s.SourceIndicators),
		createdAt:                   s.CreatedAt,
		updatedAt:                   s.UpdatedAt,
	}, nil
}

func (f *CustomForecastIndicator) ID() uuid.UUID                         { return f.id }
func (f *CustomForecastIndicator) Name() string                          { return f.name }
func (f *CustomForecastIndicator) TargetIndicator() shared.IndicatorInfo { return f.targetIndicator }
func (f *CustomForecastIndicator) CreatedAt() time.Time                  { return f.createdAt }
func (f *CustomForecastIndicator) UpdatedAt() time.Time                  { return f.updatedAt }

func (f *CustomForecastIndicator) SourceIndicatorsInformation() []SourceIndicatorInformation {
	return cloneSourceInfos(f.sourceIndicatorsInformation)
}

func (f *CustomForecastIndicator) SourceIndicators() []shared.IndicatorInfo {
	return cloneInfos(f.sourceIndicators)
}

func (f *CustomForecastIndicator) Snapshot() Snapshot {
	return Snapshot{
		ID:                          f.id,
		Name:                        f.name,
		TargetIndicator:             f.targetIndicator,
		SourceIndicatorsInformation: cloneSourceInfos(f.sourceIndicatorsInformation),
		SourceIndicators:            cloneInfos(f.sourceIndicators),
		CreatedAt:                   f.createdAt,
		UpdatedAt:                   f.updatedAt,
	}
}

func (f *CustomForecastIndicator) UpdateName(name string) error {
	if err := rule.Check(rule.NewNameShouldNotBeEmpty(name)); err != nil {
		return err
	}
	f.name = name
	f.updatedAt = now()
	return nil
}

// UpdateSourceIndicatorsInformation replaces the weighted sources together with the catalog
// entries they resolved to. resolved must follow the order of infos; otherwise
// ErrSourceIndicatorsMismatch is returned and nothing changes.
func (f *CustomForecastIndicator) UpdateSourceIndicatorsInformation(infos []SourceIndicatorInformation, resolved []shared.IndicatorInfo) error {
	next := cloneSourceInfos(infos)
	if next == nil {
		next = []SourceIndicatorInformation{}
	}
	if err := checkSources(f.targetIndicator.ID, next); err != nil {
		return err
	}
	if err := matchResolved(next, resolved); err != nil {
		return err
	}
	sources := cloneInfos(resolved)
	if sources == nil {
		sources = []shared.IndicatorInfo{}
	}

	f.sourceIndicatorsInformation = next
	f.sourceIndicators = sources
	f.updatedAt = now()
	return nil
}

func checkSources(targetID string, infos []SourceIndicatorInformation) error {
	ids := make([]string, 0, len(infos))
	weights := make([]decimal.Decimal, 0, len(infos))
	for _, info := range infos {
		ids = append(ids, info.SourceIndicatorID)
		weights = append(weights, info.Weight)
	}
	return rule.Check(
		rule.NewTargetIndicatorShouldNotBeIncludedInSourceIndicators(ids, targetID),
		rule.NewShouldNotDuplicate(ids),
		rule.NewWeightShouldNotBeNegative(weights),
	)
}

// matchResolved checks that resolved[i] is the catalog entry of infos[i].
// Catalog ids are canonical lower-case uuids, so ids are compared case-insensitively.
func matchResolved(infos []SourceIndicatorInformation, resolved []shared.IndicatorInfo) error {
	if len(infos) != len(resolved) {
		return fmt.Errorf("%w: %d sources, %d resolved", ErrSourceIndicatorsMismatch, len(infos), len(resolved))
	}
	for i, info := range infos {
		if !strings.EqualFold(info.SourceIndicatorID, resolved[i].ID) {
			return fmt.Errorf("%w: source %d is %q, resolved %q", ErrSourceIndicatorsMismatch, i, info.SourceIndicatorID, resolved[i].ID)
		}
	}
	return nil
}

func cloneSourceInfos(in []SourceIndicatorInformation) []SourceIndicatorInformation {
	if in == nil {
		return nil
	}
	out := make([]SourceIndicatorInformation, len(in))
	copy(out, in)
	return out
}

func cloneInfos(in []shared.IndicatorInfo) []shared.IndicatorInfo {
	if in == nil {
		return nil
	}
	out := make([]shared.IndicatorInfo, len(in))
	copy(out, in)
	return out
}
