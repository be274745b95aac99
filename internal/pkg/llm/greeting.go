package llm

import (
	"ChatCV/internal/model"
	"fmt"
	"time"
)

type greetingBucket struct {
	from, to int
	text     string
}

// greetingBuckets 按小时划分的问候语，区间 [from, to) 首尾相接覆盖 0-23
var greetingBuckets = []greetingBucket{
	{0, 7, "¡Buenas noches! "},
	{7, 14, "¡Buenos días! "},
	{14, 17, "¡Muy buenas! "},
	{17, 20, "¡Buenas tardes! "},
	{20, 24, "¡Buenas noches! "},
}

// GreetingForHour 返回指定小时对应的问候语
func GreetingForHour(hour int) string {
	for _, b := range greetingBuckets {
		if hour >= b.from && hour < b.to {
			return b.text
		}
	}
	return greetingBuckets[0].text
}

// Greeter 生成欢迎语，时间以配置时区为准
type Greeter struct {
	loc       *time.Location
	botName   string
	ownerName string
	now       func() time.Time
}

func NewGreeter(botName, ownerName, timezone string) (*Greeter, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", timezone, err)
	}
	return &Greeter{
		loc:       loc,
		botName:   botName,
		ownerName: ownerName,
		now:       time.Now,
	}, nil
}

// Greeting 当前时刻的问候语
func (g *Greeter) Greeting() string {
	return GreetingForHour(g.now().In(g.loc).Hour())
}

// WelcomeMessages 新会话的两条助手开场白
func (g *Greeter) WelcomeMessages() []model.Message {
	welcome := fmt.Sprintf("%sMi nombre es %s 😊.\n"+
		"Soy el asistente personal de %s y puedo responderte a cualquier pregunta que tengas sobre su curriculum.\n"+
		"Si lo deseas también te lo puedes descargar desde la barra lateral izquierda.",
		g.Greeting(), g.botName, g.ownerName)

	return []model.Message{
		model.AssistantMessage(welcome),
		model.AssistantMessage(fmt.Sprintf("¿Qué te gustaría saber sobre %s?", g.ownerName)),
	}
}
