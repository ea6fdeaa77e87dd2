package form

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type SidebarItem struct {
	Label string `yaml:"label" json:"label"`
	Value string `yaml:"value" json:"value"`
}

type Sidebar struct {
	Title string        `yaml:"title" json:"title"`
	Items []SidebarItem `yaml:"items" json:"items"`
	Note  string        `yaml:"note" json:"note"`
}

type FieldText struct {
	Label string `yaml:"label" json:"label"`
	Help  string `yaml:"help" json:"help"`
}

// UIConfig holds page text. It never changes field names, order or bounds.
type UIConfig struct {
	Title       string               `yaml:"title" json:"title"`
	Icon        string               `yaml:"icon" json:"icon"`
	FormTitle   string               `yaml:"form_title" json:"form_title"`
	ResultTitle string               `yaml:"result_title" json:"result_title"`
	SubmitLabel string               `yaml:"submit_label" json:"submit_label"`
	Footer      string               `yaml:"footer" json:"footer"`
	Sidebar     Sidebar              `yaml:"sidebar" json:"sidebar"`
	Fields      map[string]FieldText `yaml:"fields" json:"fields"`
}

func DefaultUIConfig() UIConfig {
	return UIConfig{
		Title:       "P_CAT_AI",
		Icon:        "🩺",
		FormTitle:   "🧾 Patient Health Information",
		ResultTitle: "📈 Prediction Result",
		SubmitLabel: "🔍 Predict Risk",
		Footer:      "© 2025 | KWIZERA Elisee| RP Tumba College",
		Sidebar: Sidebar{
			Title: "📌 CAT",
			Items: []SidebarItem{
				{Label: "System", Value: "Diabetes Prediction"},
				{Label: "REG_NUMBER", Value: "25RP18236"},
			},
			Note: "MECHATRONICS",
		},
	}
}

// LoadUIConfig overlays the YAML file at path on DefaultUIConfig. An empty path yields
// the defaults.
func LoadUIConfig(path string) (UIConfig, error) {
	cfg := DefaultUIConfig()
	if path == "" {
		return cfg, nil
	}
	content, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return UIConfig{}, err
	}
	if err := yaml.Unmarshal(content, &cfg); err != nil {
		return UIConfig{}, fmt.Errorf("parse ui config: %w", err)
	}

	known := make(map[string]struct{})
	for _, f := range DefaultFields() {
		known[f.Name] = struct{}{}
	}
	for name := range cfg.Fields {
		if _, ok := known[name]; !ok {
			return UIConfig{}, fmt.Errorf("ui config references unknown field %q", name)
		}
	}
	return cfg, nil
}

// FieldSpecs returns DefaultFields with label and help overrides applied.
func (c UIConfig) FieldSpecs() []FieldSpec {
	fields := DefaultFields()
	for i := range fields {
		text, ok := c.Fields[fields[i].Name]
		if !ok {
			continue
		}
		if text.Label != "" {
			fields[i].Label = text.Label
		}
		if text.Help != "" {
			fields[i].Help = text.Help
		}
	}
	return fields
}
