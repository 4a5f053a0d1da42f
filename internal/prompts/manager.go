package prompts

import (
	"embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed templates/*.yaml
var templateFS embed.FS

// PromptManager loads the embedded YAML templates and fills placeholders
// with simple string replacement.
type PromptManager struct {
	prompts map[string]string // mode -> complete prompt text
}

type promptTemplate struct {
	BasePrompt string `yaml:"base_prompt"`
	Prompt     string `yaml:"prompt"`
}

func NewPromptManager() (*PromptManager, error) {
	pm := &PromptManager{prompts: make(map[string]string)}
	if err := pm.loadPrompts(); err != nil {
		return nil, fmt.Errorf("failed to load prompt templates: %w", err)
	}
	return pm, nil
}

// BuildPrompt fills the template for the given mode. Placeholders use the
// {{.Name}} form and values are substituted literally.
func (pm *PromptManager) BuildPrompt(mode string, data map[string]string) (string, error) {
	prompt, exists := pm.prompts[mode]
	if !exists {
		return "", fmt.Errorf("template not found for mode: %s", mode)
	}
	for key, value := range data {
		prompt = strings.ReplaceAll(prompt, "{{."+key+"}}", value)
	}
	return prompt, nil
}

// Modes lists the loaded template names.
func (pm *PromptManager) Modes() []string {
	modes := make([]string, 0, len(pm.prompts))
	for mode := range pm.prompts {
		modes = append(modes, mode)
	}
	return modes
}

func (pm *PromptManager) loadPrompts() error {
	entries, err := templateFS.ReadDir("templates")
	if err != nil {
		return fmt.Errorf("failed to read templates directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}

		data, err := templateFS.ReadFile("templates/" + entry.Name())
		if err != nil {
			return fmt.Errorf("failed to read template file %s: %w", entry.Name(), err)
		}

		var tmpl promptTemplate
		if err := yaml.Unmarshal(data, &tmpl); err != nil {
			return fmt.Errorf("failed to parse template file %s: %w", entry.Name(), err)
		}

		var full strings.Builder
		if tmpl.BasePrompt != "" {
			full.WriteString(strings.TrimSpace(tmpl.BasePrompt))
			full.WriteString("\n\n")
		}
		full.WriteString(strings.TrimSpace(tmpl.Prompt))

		pm.prompts[strings.TrimSuffix(entry.Name(), ".yaml")] = full.String()
	}

	return nil
}
