package questions

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"text/template"
)

//go:embed prompts/*.tpl.md
var promptFS embed.FS

var (
	systemPrompt   = strings.TrimRight(mustRead("prompts/system.tpl.md"), "\n")
	questionsTmpl  = template.Must(template.New("questions").Parse(mustRead("prompts/questions.tpl.md")))
	defaultPerTech = [2]int{3, 5}
)

// PromptData holds the values interpolated into the question template.
type PromptData struct {
	TechStack  string
	MinPerTech int
	MaxPerTech int
}

func mustRead(name string) string {
	b, err := promptFS.ReadFile(name)
	if err != nil {
		panic(fmt.Sprintf("questions: missing embedded prompt %s: %v", name, err))
	}
	return string(b)
}

// BuildPrompt renders the full prompt sent to the model for techs:
// the persona preamble, a blank line, then the generation instructions.
func BuildPrompt(techs []string) (string, error) {
	var buf bytes.Buffer
	data := PromptData{
		TechStack:  JoinTechs(techs),
		MinPerTech: defaultPerTech[0],
		MaxPerTech: defaultPerTech[1],
	}
	if err := questionsTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render question prompt: %w", err)
	}
	return systemPrompt + "\n\n" + buf.String(), nil
}

// JoinTechs renders a technology list the way it appears in prompts and replies.
func JoinTechs(techs []string) string {
	return strings.Join(techs, ", ")
}
