package llm

// defaultPricing 每 token 价格（美元）
var defaultPricing = map[string]float64{
	"gpt-3.5-turbo-1106":     0.0020e-3, // 16K 上下文
	"gpt-3.5-turbo-instruct": 0.0020e-3, // 4K 上下文
	"gpt-4-32k":              0.12e-3,
	"gpt-4":                  0.06e-3,
}

// PricingTable 只读的模型价格表
type PricingTable struct {
	prices map[string]float64
}

// NewPricingTable 以内置价格为底，overrides 覆盖或补充
func NewPricingTable(overrides map[string]float64) *PricingTable {
	prices := make(map[string]float64, len(defaultPricing)+len(overrides))
	for k, v := range defaultPricing {
		prices[k] = v
	}
	for k, v := range overrides {
		prices[k] = v
	}
	return &PricingTable{prices: prices}
}

// Price 未知模型价格为 0
func (p *PricingTable) Price(model string) float64 {
	return p.prices[model]
}

// Cost tokens * 单价
func (p *PricingTable) Cost(tokens int, model string) float64 {
	return float64(tokens) * p.Price(model)
}
