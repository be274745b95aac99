package llm

import (
	"errors"
	"fmt"
	log "log/slog"
	"os"
	"strings"

	"github.com/tmc/langchaingo/prompts"
)

// ErrTemplateFormat 模板引用了未提供的占位符
var ErrTemplateFormat = errors.New("template format error")

const (
	PlaceholderBotName = "nombre_bot"
	PlaceholderContext = "context"
)

// DefaultSystemTemplate prompt 文件缺失时使用的内置模板
const DefaultSystemTemplate = `
Vamos a pensar paso a paso.
Eres un asistente muy útil, simpático y educado especializado en proporcionar información sobre Sergio.
Tu nombres es {nombre_bot}.
Tus objetivos son:
- Proporcionar información clara y concisa sobre el CV de Sergio cogida del contexto proporcionado.
NO saludes al usuario.
Puedes expresar de otro modo las frases del contexto.
Intenta siempre responder a la pregunta de manera amable.
Responde en el mismo idioma que el usuario.
Recuerda al usuario de vez en cuando que puede descargarse el CV de Sergio desde la barra lateral izquierda.
Recuerda que eres un asistente especializado en responder sobre la vida y la carrera de Sergio.
Recuerda que eres también un amable chatbot teniendo una conversación con un humano y respondiendo sus preguntas en base al contexto.
Utiliza el nombre del usuario en tus respuestas.
NO uses el apellido del usuario. NO uses el nombre completo del usuario, usa sólo su nombre.

% CONTEXTO
{context}
`

// LoadTemplate 从文件读取 system prompt 模板，读取失败时回退到内置模板
func LoadTemplate(path string) string {
	if path == "" {
		return DefaultSystemTemplate
	}
	data, err := os.ReadFile(path)
	if err != nil {
		log.Warn("读取prompt文件失败，使用内置模板", "path", path, "err", err)
		return DefaultSystemTemplate
	}
	return string(data)
}

// BuildSystemPrompt 用机器人名称与简历上下文填充模板
func BuildSystemPrompt(template, botName, context string) (string, error) {
	return FormatPrompt(template, map[string]any{
		PlaceholderBotName: botName,
		PlaceholderContext: context,
	})
}

// FormatPrompt 替换模板中的 {name} 占位符，{{ 与 }} 为转义
func FormatPrompt(template string, values map[string]any) (string, error) {
	names, err := placeholders(template)
	if err != nil {
		return "", err
	}

	var missing []string
	for _, name := range names {
		if _, ok := values[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return "", fmt.Errorf("%w: missing %s", ErrTemplateFormat, strings.Join(missing, ", "))
	}

	tpl := prompts.NewPromptTemplate(template, names)
	tpl.TemplateFormat = prompts.TemplateFormatFString
	out, err := tpl.Format(values)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTemplateFormat, err)
	}
	return out, nil
}

// placeholders 返回模板中去重后的占位符名，按首次出现排序
func placeholders(template string) ([]string, error) {
	seen := make(map[string]struct{})
	var names []string

	for i := 0; i < len(template); i++ {
		switch template[i] {
		case '{':
			if i+1 < len(template) && template[i+1] == '{' {
				i++
				continue
			}
			end := strings.IndexByte(template[i+1:], '}')
			if end < 0 {
				return nil, fmt.Errorf("%w: unclosed '{' at %d", ErrTemplateFormat, i)
			}
			name := template[i+1 : i+1+end]
			if name == "" || strings.ContainsAny(name, "{ \n\t") {
				return nil, fmt.Errorf("%w: invalid placeholder %q", ErrTemplateFormat, name)
			}
			if _, ok := seen[name]; !ok {
				seen[name] = struct{}{}
				names = append(names, name)
			}
			i += end + 1
		case '}':
			if i+1 < len(template) && template[i+1] == '}' {
				i++
				continue
			}
			return nil, fmt.Errorf("%w: single '}' at %d", ErrTemplateFormat, i)
		}
	}
	return names, nil
}
