package accounts

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/shunichi-ikebuchi/bookkeeping/internal/engine"
	"github.com/shunichi-ikebuchi/bookkeeping/internal/models"
)

// ChartAccount is one account declaration in a chart file.
type ChartAccount struct {
	Code string             `yaml:"code"`
	Name string             `yaml:"name"`
	Type models.AccountType `yaml:"type"`
}

// Chart is a deployment-supplied chart of accounts. The engine never
// hard-codes a chart; deployments ship a YAML file covering all five types.
type Chart struct {
	Accounts []ChartAccount `yaml:"accounts"`
}

// LoadChart reads and validates a chart file.
func LoadChart(path string) (*Chart, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read chart file: %w", err)
	}

	var chart Chart
	if err := yaml.Unmarshal(data, &chart); err != nil {
		return nil, fmt.Errorf("failed to parse chart file: %w", err)
	}

	for i, acc := range chart.Accounts {
		if acc.Code == "" || acc.Name == "" {
			return nil, engine.Validationf("chart account %d: code and name are required", i+1)
		}
		if !acc.Type.Valid() {
			return nil, engine.Validationf("chart account %s: unknown account type %q", acc.Code, acc.Type)
		}
	}
	return &chart, nil
}

// Seed inserts every chart account that does not already exist and returns
// the number actually inserted. Existing codes are left untouched, so
// seeding is idempotent and never overwrites a customized chart.
func (s *Service) Seed(chart *Chart) (int, error) {
	inserted := 0
	for _, acc := range chart.Accounts {
		ok, err := s.conn.SeedAccount(acc.Code, acc.Name, acc.Type)
		if err != nil {
			return inserted, engine.Storage("seed chart", err)
		}
		if ok {
			inserted++
		}
	}
	return inserted, nil
}

// SeedFromFile loads a chart file and seeds it.
func (s *Service) SeedFromFile(path string) (int, error) {
	chart, err := LoadChart(path)
	if err != nil {
		return 0, err
	}
	return s.Seed(chart)
}
